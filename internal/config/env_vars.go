package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	baseURLVar    = "BASE_URL"
	backendURLVar = "BACKEND_URL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "PawTalk")
}

// GetBaseURL returns the public URL this frontend is served from. It is
// used for the OIDC redirect URL and absolute links in rendered pages.
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8080")
}

// GetBackendURL returns the base URL of the backend API service that owns
// chat, documents, media and account data.
func (EnvVars) GetBackendURL() string {
	return GetEnv(backendURLVar, "http://localhost:8000")
}

// GetAutocertDomain enables Let's Encrypt TLS when set. Empty means plain
// HTTP (behind a TLS-terminating proxy, or local development).
func (EnvVars) GetAutocertDomain() string {
	return GetEnv("AUTOCERT_DOMAIN", "")
}

func (EnvVars) GetAutocertCacheDir() string {
	return GetEnv("AUTOCERT_CACHE_DIR", "./autocert-cache")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
