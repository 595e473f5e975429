package config

import "github.com/joho/godotenv"

type Config interface {
	EnvConfig
	OAuthConfig
	AnalysisConfig
}

type EnvConfig interface {
	GetAppName() string
	GetSessionFile() string
	GetStopwordFile() string
	GetOpenAIKey() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	OAuth
	Analysis
}

func New() Config {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()
	return mainConfig{}
}
