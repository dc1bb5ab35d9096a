package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	MongoURI    string `env:"MONGODB_CONNECTION_STRING" envDefault:"mongodb://localhost:27017"`
	MongoDB     string `env:"MONGO_DB" envDefault:"hotel-booking"`
	JWTSecret   string `env:"JWT_SECRET_KEY,required"`
	JWTExpire   int    `env:"JWT_EXPIRE_HOURS" envDefault:"24"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	// FrontendDist points at a built SPA bundle served for non-API paths.
	FrontendDist string `env:"FRONTEND_DIST"`

	CloudinaryCloudName    string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey       string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret    string `env:"CLOUDINARY_API_SECRET"`
	CloudinaryUploadFolder string `env:"CLOUDINARY_UPLOAD_FOLDER" envDefault:"hotels"`

	StripeAPIKey    string `env:"STRIPE_API_KEY"`
	PaymentCurrency string `env:"PAYMENT_CURRENCY" envDefault:"gbp"`
	VerifyPayments  bool   `env:"VERIFY_PAYMENTS" envDefault:"true"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile        string `env:"LOG_FILE"`
	JaegerEndpoint string `env:"JAEGER_ENDPOINT"`
	RateLimitAuth  int    `env:"RATE_LIMIT_AUTH" envDefault:"20"`
}

// Load reads an optional .env file and then parses the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
