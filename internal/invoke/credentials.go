package invoke

import (
	"encoding/base64"
	"strings"

	"git.home.luguber.info/inful/checkrunner/internal/runctx"
)

// Environment variables consumed by the credential provider.
const (
	EnvProxyUsername  = "PROXY_USERNAME"
	EnvProxyAccessKey = "PROXY_ACCESS_KEY"

	EnvVisualDiffToken        = "VISUAL_DIFF_TOKEN"
	EnvVisualDiffTokenEncoded = "VISUAL_DIFF_TOKEN_ENCODED"
	EnvVisualDiffProject      = "VISUAL_DIFF_PROJECT"
)

// CredentialProvider supplies scoped credential env entries for actions that
// need them. Credentials are never written to the runner's own environment;
// they exist only in the child-process env of the actions flagged as needing
// them, so acquisition and release are scoped by construction on every exit
// path.
type CredentialProvider interface {
	// Proxy returns the network-proxy credential pair for proxy-dependent
	// actions, and whether it is available.
	Proxy() (map[string]string, bool)
	// VisualDiff returns the visual-diff service credentials, and whether they
	// are available. Visual-diff actions are skipped with a notice when absent.
	VisualDiff() (map[string]string, bool)
}

// EnvCredentialProvider reads credentials from the ambient environment via an
// injectable lookup function.
type EnvCredentialProvider struct {
	Lookup runctx.LookupFunc
}

func (p *EnvCredentialProvider) Proxy() (map[string]string, bool) {
	user, okU := p.Lookup(EnvProxyUsername)
	key, okK := p.Lookup(EnvProxyAccessKey)
	if !okU || !okK || user == "" || key == "" {
		return nil, false
	}
	return map[string]string{
		EnvProxyUsername:  user,
		EnvProxyAccessKey: key,
	}, true
}

func (p *EnvCredentialProvider) VisualDiff() (map[string]string, bool) {
	token, _ := p.Lookup(EnvVisualDiffToken)
	if token == "" {
		// Fall back to the encoded form some CI setups provide.
		if enc, ok := p.Lookup(EnvVisualDiffTokenEncoded); ok && enc != "" {
			if decoded, err := base64.StdEncoding.DecodeString(enc); err == nil {
				token = strings.TrimSpace(string(decoded))
			}
		}
	}
	if token == "" {
		return nil, false
	}

	creds := map[string]string{EnvVisualDiffToken: token}
	if project, ok := p.Lookup(EnvVisualDiffProject); ok && project != "" {
		creds[EnvVisualDiffProject] = project
	}
	return creds, true
}
