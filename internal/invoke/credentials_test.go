package invoke

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func lookupFrom(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestProxy_RequiresBothHalvesOfThePair(t *testing.T) {
	cases := []map[string]string{
		{},
		{EnvProxyUsername: "u"},
		{EnvProxyAccessKey: "k"},
		{EnvProxyUsername: "", EnvProxyAccessKey: "k"},
	}
	for _, env := range cases {
		p := &EnvCredentialProvider{Lookup: lookupFrom(env)}
		_, ok := p.Proxy()
		require.False(t, ok, "env %v", env)
	}

	p := &EnvCredentialProvider{Lookup: lookupFrom(map[string]string{
		EnvProxyUsername:  "u",
		EnvProxyAccessKey: "k",
	})}
	creds, ok := p.Proxy()
	require.True(t, ok)
	require.Equal(t, map[string]string{EnvProxyUsername: "u", EnvProxyAccessKey: "k"}, creds)
}

func TestVisualDiff_PlainToken(t *testing.T) {
	p := &EnvCredentialProvider{Lookup: lookupFrom(map[string]string{
		EnvVisualDiffToken: "tok",
	})}

	creds, ok := p.VisualDiff()
	require.True(t, ok)
	require.Equal(t, "tok", creds[EnvVisualDiffToken])
}

func TestVisualDiff_DecodesEncodedTokenFallback(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("secret-token\n"))
	p := &EnvCredentialProvider{Lookup: lookupFrom(map[string]string{
		EnvVisualDiffTokenEncoded: encoded,
	})}

	creds, ok := p.VisualDiff()
	require.True(t, ok)
	require.Equal(t, "secret-token", creds[EnvVisualDiffToken])
}

func TestVisualDiff_PlainTokenWinsOverEncoded(t *testing.T) {
	p := &EnvCredentialProvider{Lookup: lookupFrom(map[string]string{
		EnvVisualDiffToken:        "plain",
		EnvVisualDiffTokenEncoded: base64.StdEncoding.EncodeToString([]byte("encoded")),
	})}

	creds, ok := p.VisualDiff()
	require.True(t, ok)
	require.Equal(t, "plain", creds[EnvVisualDiffToken])
}

func TestVisualDiff_AbsentWhenNothingSet(t *testing.T) {
	p := &EnvCredentialProvider{Lookup: lookupFrom(nil)}

	_, ok := p.VisualDiff()
	require.False(t, ok)
}

func TestVisualDiff_MalformedEncodingIsAbsence(t *testing.T) {
	p := &EnvCredentialProvider{Lookup: lookupFrom(map[string]string{
		EnvVisualDiffTokenEncoded: "%%% not base64 %%%",
	})}

	_, ok := p.VisualDiff()
	require.False(t, ok)
}

func TestVisualDiff_IncludesProjectWhenSet(t *testing.T) {
	p := &EnvCredentialProvider{Lookup: lookupFrom(map[string]string{
		EnvVisualDiffToken:   "tok",
		EnvVisualDiffProject: "site-main",
	})}

	creds, ok := p.VisualDiff()
	require.True(t, ok)
	require.Equal(t, "site-main", creds[EnvVisualDiffProject])
}
