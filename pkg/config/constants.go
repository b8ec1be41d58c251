package config

// EnvPrefix is the envconfig prefix shared by every binary.
const EnvPrefix = "fuelmywork"

const (
	AppEnvDev  = "development"
	AppEnvTest = "test"
	AppEnvProd = "production"
)

const (
	EnvAppEnv                = "FUELMYWORK_APP_ENV"
	EnvAppPort               = "FUELMYWORK_APP_PORT"
	EnvDBDSN                 = "FUELMYWORK_DB_DSN"
	EnvDBHost                = "FUELMYWORK_DB_HOST"
	EnvDBUser                = "FUELMYWORK_DB_USER"
	EnvDBName                = "FUELMYWORK_DB_NAME"
	EnvCredentialsPassphrase = "FUELMYWORK_CREDENTIALS_PASSPHRASE"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
