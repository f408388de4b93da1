package config

import "strings"

type Cors struct{}

var _ CorsConfig = Cors{}

// GetAllowedOrigins returns the origins allowed to call the JSON endpoints.
// Comma-separated in the ALLOWED_ORIGINS env var; defaults to same-origin
// only (the base URL).
func (Cors) GetAllowedOrigins() []string {
	origins := GetEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		return []string{EnvVars{}.GetBaseURL()}
	}
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (Cors) GetAllowedMethods() []string {
	return []string{"GET", "POST", "DELETE"}
}

func (Cors) GetAllowedHeaders() []string {
	return []string{"Content-Type"}
}
