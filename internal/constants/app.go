package constants

// Application metadata
const (
	AppName    = "daybook-api"
	AppVersion = "1.0.0"
)

// Environment names
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// APIBasePath is the path prefix every route (and auth cookie) is scoped to.
const APIBasePath = "/api"
