package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port          string `mapstructure:"API_PORT"`
	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	AllowOrigins  string `mapstructure:"ALLOW_ORIGINS"`
}

// Load reads configuration from the environment, with .env as a fallback for
// local development. REDIS_ADDR may be left empty to run without the cache.
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("API_PORT", "8080")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "hospital-app")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("ALLOW_ORIGINS", "*")

	// AutomaticEnv alone does not populate Unmarshal, so bind each key.
	for _, key := range []string{"API_PORT", "MONGO_URI", "MONGO_DATABASE", "REDIS_ADDR", "JWT_SECRET", "ALLOW_ORIGINS"} {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
