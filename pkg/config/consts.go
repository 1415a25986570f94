package config

const (
	// EnvPrefix namespaces every environment variable the app reads.
	EnvPrefix = "STOCKSYNC"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "STOCKSYNC_DB_DSN"
	EnvDBHost = "STOCKSYNC_DB_HOST"
	EnvDBUser = "STOCKSYNC_DB_USER"
	EnvDBName = "STOCKSYNC_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
