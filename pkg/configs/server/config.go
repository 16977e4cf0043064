package server

// ServerConfig is everything the API server needs, loaded once at
// startup and passed down explicitly. There is no global settings
// object anywhere.
type ServerConfig struct {
	// port the HTTP server listens on.
	ServerPort string `yaml:"port"`

	// postgres connection string.
	DBURI string `yaml:"dburi"`

	// deployment environment name: "DEV" or "PROD".
	// Interactive route documentation is exposed in DEV only.
	Env string `yaml:"env"`

	// path to the directory of versioned schema definitions.
	SchemaRepository string `yaml:"schemaRepository"`
}

const EnvDev = "DEV"

// DocsEnabled reports whether the route index endpoint is exposed.
func (c *ServerConfig) DocsEnabled() bool {
	return c.Env == EnvDev
}
