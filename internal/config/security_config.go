package config

import "time"

type SecurityConfig interface {
	GetSessionSecret() []byte
	GetSessionCookieName() string
	GetSessionTTL() time.Duration
}

type Security struct{}

var _ SecurityConfig = Security{}

// GetSessionSecret returns the secret used to sign session tokens. It is
// read from the environment at startup; rotating it requires a restart,
// which invalidates every outstanding session.
func (Security) GetSessionSecret() []byte {
	return []byte(GetEnv("SESSION_SECRET", "insecure-dev-secret-change-me-in-prod"))
}

func (Security) GetSessionCookieName() string {
	return GetEnv("SESSION_COOKIE_NAME", "pawtalk_session")
}

func (Security) GetSessionTTL() time.Duration {
	ttl, err := time.ParseDuration(GetEnv("SESSION_TTL", "168h"))
	if err != nil || ttl <= 0 {
		return 168 * time.Hour
	}
	return ttl
}
