package config

const (
	// EnvPrefix namespaces every environment variable the app reads.
	EnvPrefix = "SHIFTPLATE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SHIFTPLATE_DB_DSN"
	EnvDBHost = "SHIFTPLATE_DB_HOST"
	EnvDBUser = "SHIFTPLATE_DB_USER"
	EnvDBName = "SHIFTPLATE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
