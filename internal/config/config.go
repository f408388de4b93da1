package config

type Config interface {
	EnvConfig
	CorsConfig
	SecurityConfig
	OIDCConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetBackendURL() string
	GetAutocertDomain() string
	GetAutocertCacheDir() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() []string
	GetAllowedMethods() []string
	GetAllowedHeaders() []string
}

type mainConfig struct {
	EnvVars
	Cors
	Security
	OIDC
}

func New() Config {
	return mainConfig{}
}
