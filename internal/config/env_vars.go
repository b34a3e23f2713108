package config

import "os"

const (
	apiURLEnvVar   = "NAVIGO_API_URL"
	appNameEnvVar  = "NAVIGO_APP_NAME"
	folderEnvVar   = "NAVIGO_DATA_FOLDER"
	logLevelEnvVar = "NAVIGO_LOG_LEVEL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiURLEnvVar, "http://localhost:7000")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameEnvVar, "NaviGo")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelEnvVar, "info")
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
