package config

const (
	// EnvPrefix namespaces every environment variable the service reads.
	EnvPrefix = "STOREFRONT"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside envconfig tags (tests, docs).
const (
	EnvAppEnv            = "STOREFRONT_APP_ENV"
	EnvPort              = "STOREFRONT_APP_PORT"
	EnvRedisURL          = "STOREFRONT_REDIS_URL"
	EnvJWTSecret         = "STOREFRONT_JWT_SECRET"
	EnvJWTIssuer         = "STOREFRONT_JWT_ISSUER"
	EnvContentProjectID  = "STOREFRONT_CONTENT_PROJECT_ID"
	EnvContentDataset    = "STOREFRONT_CONTENT_DATASET"
	EnvContentAPIVersion = "STOREFRONT_CONTENT_API_VERSION"
	EnvContentToken      = "STOREFRONT_CONTENT_TOKEN"
)
