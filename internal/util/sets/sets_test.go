package sets

import (
	"sort"
	"testing"
)

func TestSet(t *testing.T) {
	s := New("a", "b")

	if !s.Has("a") || !s.Has("b") {
		t.Error("Expected initial values to be present")
	}
	if s.Has("c") {
		t.Error("Expected 'c' to be absent")
	}

	s.Add("c")
	if !s.Has("c") {
		t.Error("Expected 'c' after Add")
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}

	s.Delete("a")
	if s.Has("a") {
		t.Error("Expected 'a' to be gone after Delete")
	}
}

func TestSet_HasAny(t *testing.T) {
	s := New(1, 2, 3)

	if !s.HasAny(5, 3) {
		t.Error("Expected HasAny to find 3")
	}
	if s.HasAny(5, 6) {
		t.Error("Expected HasAny to find nothing")
	}
	if s.HasAny() {
		t.Error("Expected HasAny with no arguments to be false")
	}
}

func TestSet_Values(t *testing.T) {
	s := New("b", "a", "c")

	vals := s.Values()
	sort.Strings(vals)
	if len(vals) != 3 || vals[0] != "a" || vals[2] != "c" {
		t.Errorf("unexpected values: %v", vals)
	}
}

func TestSet_Clone(t *testing.T) {
	s := New("a")
	c := s.Clone()
	c.Add("b")

	if s.Has("b") {
		t.Error("Expected clone to be independent of the original")
	}
}
