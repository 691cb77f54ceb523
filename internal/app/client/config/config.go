package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerURL = "http://localhost:8080"
	defaultEnv       = "local"
	defaultDataDir   = ".budgetkeeper"
)

type Config struct {
	Env       string `mapstructure:"bk_log_env"`
	ServerURL string `mapstructure:"bk_server_url"`
	DataDir   string `mapstructure:"bk_data_dir"`
	StorePath string `mapstructure:"bk_store_path"`
}

// MustLoad reads the client configuration from the environment. The data
// directory is created when missing; the local store lives inside it.
func MustLoad() *Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		}
	}

	viper.AutomaticEnv()
	viper.SetDefault("BK_LOG_ENV", defaultEnv)
	viper.SetDefault("BK_SERVER_URL", defaultServerURL)
	viper.SetDefault("BK_DATA_DIR", defaultDataDir)

	dataDir := viper.GetString("BK_DATA_DIR")
	if dataDir == defaultDataDir {
		if home, err := os.UserHomeDir(); err == nil {
			dataDir = filepath.Join(home, dataDir)
		}
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		panic(fmt.Sprintf("failed to create data directory %s: %v", dataDir, err))
	}

	cfg := &Config{
		Env:       viper.GetString("BK_LOG_ENV"),
		ServerURL: viper.GetString("BK_SERVER_URL"),
		DataDir:   dataDir,
		StorePath: filepath.Join(dataDir, "offline.db"),
	}

	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}
	return cfg
}

func (c *Config) validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server URL must not be empty")
	}
	return nil
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}
