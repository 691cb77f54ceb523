package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress = "localhost:8080"
	defaultDriver     = "sqlite3"
	defaultDatabase   = "budgetkeeper.db"
	defaultMigrations = "migrations"
)

type Config struct {
	Env    string
	DB     DB
	Server Server
}

type DB struct {
	Driver      string
	DatabaseURI string
	Migrations  string
}

type Server struct {
	RunAddress string
}

// MustLoad reads the server configuration from the environment, optionally
// primed from a .env file in the working directory.
func MustLoad() *Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("failed to load .env, relying on environment variables")
		}
	}

	viper.AutomaticEnv()
	viper.SetDefault("BK_RUN_ADDRESS", defaultRunAddress)
	viper.SetDefault("BK_DATABASE_DRIVER", defaultDriver)
	viper.SetDefault("BK_DATABASE_URI", defaultDatabase)
	viper.SetDefault("BK_MIGRATIONS", defaultMigrations)
	viper.SetDefault("BK_LOG_ENV", EnvLocal)

	return &Config{
		Env: viper.GetString("BK_LOG_ENV"),
		DB: DB{
			Driver:      viper.GetString("BK_DATABASE_DRIVER"),
			DatabaseURI: viper.GetString("BK_DATABASE_URI"),
			Migrations:  viper.GetString("BK_MIGRATIONS"),
		},
		Server: Server{
			RunAddress: viper.GetString("BK_RUN_ADDRESS"),
		},
	}
}
