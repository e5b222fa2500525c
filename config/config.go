package config

import (
	"github.com/kelseyhightower/envconfig"
)

// App holds the environment configuration for the backend.
type App struct {
	Env  string `envconfig:"GO_ENV" default:"development"`
	Port string `envconfig:"PORT" default:"8080"`

	MongoURI      string `envconfig:"MONGODB_URI" required:"true"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"urbanmind"`

	RedisAddr     string `envconfig:"REDIS_ADDRESS" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	JWTSecret     string `envconfig:"JWT_SECRET" required:"true"`
	TokenTTLHours int    `envconfig:"TOKEN_TTL_HOURS" default:"72"`

	UploadDir    string `envconfig:"UPLOAD_DIR" default:"uploads"`
	CORSOrigin   string `envconfig:"CORS_ORIGIN" default:"http://localhost:5173"`
	CookieDomain string `envconfig:"DOMAIN"`

	// Daily per-user quota for new issue reports.
	IssueReportLimit int    `envconfig:"ISSUE_REPORT_LIMIT" default:"10"`
	IssueLimitPrefix string `envconfig:"REDIS_QUEUE_FOR_ISSUE_LIMIT" default:"issue-limit"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// C is the loaded configuration, populated once by Load at startup.
var C App

// Load reads the configuration from the environment.
func Load() (App, error) {
	var c App
	if err := envconfig.Process("", &c); err != nil {
		return c, err
	}
	C = c
	return c, nil
}
