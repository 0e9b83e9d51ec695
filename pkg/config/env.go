package config

const EnvPrefix = "RESTAURANT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                  = "RESTAURANT_APP_ENV"
	EnvPort                    = "PORT"
	EnvLogLevel                = "RESTAURANT_LOG_LEVEL"
	EnvRequestTimeout          = "RESTAURANT_REQUEST_TIMEOUT"
	EnvDBDSN                   = "RESTAURANT_DB_DSN"
	EnvDBHost                  = "PGHOST"
	EnvDBPort                  = "PGPORT"
	EnvDBUser                  = "PGUSER"
	EnvDBPassword              = "PGPASSWORD"
	EnvDBName                  = "PGDATABASE"
	EnvDBSchema                = "RESTAURANT_DB_SCHEMA"
	EnvRedisURL                = "RESTAURANT_REDIS_URL"
	EnvAddressMaintenanceScope = "RESTAURANT_ADDRESS_MAINTENANCE_DEFAULT_SCOPE"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
