package config

import "os"

type GGAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func NewGGAuthConfig() *GGAuthConfig {
	return &GGAuthConfig{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  strEnv("GOOGLE_REDIRECT_URL", "http://localhost:8082/api/auth/google/callback"),
	}
}
