package config

// API represents API server configuration
type API struct {
	CORS CORSConfig `yaml:"cors"`
	Auth AuthConfig `yaml:"auth"`
}

// CORSConfig controls cross-origin access to the API
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods"`
}

// AuthConfig holds the login credentials and token settings
type AuthConfig struct {
	Enabled       bool   `yaml:"enabled"`
	JWTSecret     string `yaml:"jwt_secret"`
	JWTExpiration int    `yaml:"jwt_expiration"` // seconds
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
}
