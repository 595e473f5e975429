package config

import "os"

const (
	appNameVar      = "APP_NAME"
	sessionFileVar  = "SESSION_FILE"
	stopwordFileVar = "STOPWORD_FILE"
	openAIKeyVar    = "OPENAI_API_KEY"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "GapScout")
}

// GetSessionFile returns the well-known location of the persisted credential
// bundle.
func (EnvVars) GetSessionFile() string {
	return GetEnv(sessionFileVar, "session.json")
}

// GetStopwordFile returns the path of a YAML stopword dictionary, or empty to
// use the built-in English set.
func (EnvVars) GetStopwordFile() string {
	return GetEnv(stopwordFileVar, "")
}

func (EnvVars) GetOpenAIKey() string {
	return GetEnv(openAIKeyVar, "")
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
