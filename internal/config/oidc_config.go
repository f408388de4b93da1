package config

type OIDCConfig interface {
	GetOIDCIssuer() string
	GetOIDCClientID() string
	GetOIDCClientSecret() string
	GetOIDCRedirectURL() string
	OIDCEnabled() bool
}

type OIDC struct{}

var _ OIDCConfig = OIDC{}

// GetOIDCIssuer returns the issuer URL of the social sign-in provider,
// e.g. "https://accounts.google.com". Empty disables social sign-in.
func (OIDC) GetOIDCIssuer() string {
	return GetEnv("OIDC_ISSUER", "")
}

func (OIDC) GetOIDCClientID() string {
	return GetEnv("OIDC_CLIENT_ID", "")
}

func (OIDC) GetOIDCClientSecret() string {
	return GetEnv("OIDC_CLIENT_SECRET", "")
}

func (OIDC) GetOIDCRedirectURL() string {
	return GetEnv("OIDC_REDIRECT_URL", EnvVars{}.GetBaseURL()+"/auth/callback")
}

func (o OIDC) OIDCEnabled() bool {
	return o.GetOIDCIssuer() != "" && o.GetOIDCClientID() != "" && o.GetOIDCClientSecret() != ""
}
