// Package config loads application configuration from a YAML file,
// environment variables and an optional .env file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ConfigError reports missing or invalid configuration. It is fatal for the
// whole request that needs the setting: no partial work is attempted.
type ConfigError struct {
	Setting string
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Setting, e.Reason)
}

// Config holds all application configuration.
type Config struct {
	Server    Server    `mapstructure:"server"`
	Schedule  Schedule  `mapstructure:"schedule"`
	Drive     Drive     `mapstructure:"drive"`
	Rewrite   Rewrite   `mapstructure:"rewrite"`
	WordPress WordPress `mapstructure:"wordpress"`
	Publish   Publish   `mapstructure:"publish"`
}

// Server holds HTTP server configuration.
type Server struct {
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
	ReadTimeout  string   `mapstructure:"read_timeout"`
	WriteTimeout string   `mapstructure:"write_timeout"`
	CORSEnabled  bool     `mapstructure:"cors_enabled"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
	CronSecret   string   `mapstructure:"cron_secret"`
}

// Schedule selects and tunes the publication schedule policy.
type Schedule struct {
	// Policy is "fixed" (hour table) or "randomized" (shuffled
	// single-category slots).
	Policy string `mapstructure:"policy"`
	// Rotation is "slots" (wall-clock gate) or "index" (rotation counter).
	Rotation        string `mapstructure:"rotation"`
	IncludeTestSlot bool   `mapstructure:"include_test_slot"`
}

// Drive holds Google Drive access configuration. Credentials come from
// GOOGLE_CREDENTIALS_JSON (raw or base64 service-account JSON) or
// GOOGLE_CREDENTIALS_FILE.
type Drive struct {
	CredentialsJSON string `mapstructure:"credentials_json"`
	CredentialsFile string `mapstructure:"credentials_file"`
	SummariesFolder string `mapstructure:"summaries_folder"`
}

// Rewrite holds the AI rewrite configuration.
type Rewrite struct {
	OpenAIAPIKey          string  `mapstructure:"openai_api_key"`
	OpenAIModel           string  `mapstructure:"openai_model"`
	GeminiAPIKey          string  `mapstructure:"gemini_api_key"`
	GeminiModel           string  `mapstructure:"gemini_model"`
	Temperature           float32 `mapstructure:"temperature"`
	UseOriginalOnFailure  bool    `mapstructure:"use_original_on_failure"`
	InterCallDelaySeconds int     `mapstructure:"inter_call_delay_seconds"`
}

// WordPress holds blog publishing configuration.
type WordPress struct {
	SiteURL     string `mapstructure:"site_url"`
	Username    string `mapstructure:"username"`
	AppPassword string `mapstructure:"app_password"`
}

// Publish tunes the publish pass.
type Publish struct {
	InterCallDelaySeconds int `mapstructure:"inter_call_delay_seconds"`
}

var globalConfig *Config

// Load loads the configuration. A .env file in the working directory is
// applied first, then the optional YAML config file, then environment
// variables.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".newspress")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the cached configuration. Test helper.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "120s")
	viper.SetDefault("server.cors_enabled", false)

	viper.SetDefault("schedule.policy", "fixed")
	viper.SetDefault("schedule.rotation", "slots")
	viper.SetDefault("schedule.include_test_slot", false)

	viper.SetDefault("rewrite.openai_model", "gpt-4o-mini")
	viper.SetDefault("rewrite.gemini_model", "gemini-1.5-flash")
	viper.SetDefault("rewrite.temperature", 0.7)
	viper.SetDefault("rewrite.use_original_on_failure", true)
	viper.SetDefault("rewrite.inter_call_delay_seconds", 1)

	viper.SetDefault("publish.inter_call_delay_seconds", 2)
}

func bindEnvironmentVariables() {
	envBindings := map[string]string{
		"server.cron_secret":     "CRON_SECRET",
		"drive.credentials_json": "GOOGLE_CREDENTIALS_JSON",
		"drive.credentials_file": "GOOGLE_CREDENTIALS_FILE",
		"drive.summaries_folder": "NEWS_SUMMARIES_FOLDER_ID",
		"rewrite.openai_api_key": "OPENAI_API_KEY",
		"rewrite.gemini_api_key": "GEMINI_API_KEY",
		"wordpress.site_url":     "WORDPRESS_SITE_URL",
		"wordpress.username":     "WORDPRESS_USERNAME",
		"wordpress.app_password": "WORDPRESS_APP_PASSWORD",
	}
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to bind %s: %v\n", env, err)
		}
	}
}

// ValidateDrive checks the settings the prepare pass needs.
func (c *Config) ValidateDrive() error {
	if c.Drive.SummariesFolder == "" {
		return &ConfigError{Setting: "drive.summaries_folder", Reason: "NEWS_SUMMARIES_FOLDER_ID is not set"}
	}
	if c.Drive.CredentialsJSON == "" && c.Drive.CredentialsFile == "" {
		return &ConfigError{Setting: "drive.credentials", Reason: "set GOOGLE_CREDENTIALS_JSON or GOOGLE_CREDENTIALS_FILE"}
	}
	return nil
}

// ValidateRewrite checks that at least one AI provider is configured.
func (c *Config) ValidateRewrite() error {
	if c.Rewrite.OpenAIAPIKey == "" && c.Rewrite.GeminiAPIKey == "" {
		return &ConfigError{Setting: "rewrite", Reason: "set OPENAI_API_KEY or GEMINI_API_KEY"}
	}
	return nil
}

// ValidateWordPress checks the settings the publish pass needs.
func (c *Config) ValidateWordPress() error {
	if c.WordPress.SiteURL == "" {
		return &ConfigError{Setting: "wordpress.site_url", Reason: "WORDPRESS_SITE_URL is not set"}
	}
	if c.WordPress.Username == "" {
		return &ConfigError{Setting: "wordpress.username", Reason: "WORDPRESS_USERNAME is not set"}
	}
	if c.WordPress.AppPassword == "" {
		return &ConfigError{Setting: "wordpress.app_password", Reason: "WORDPRESS_APP_PASSWORD is not set"}
	}
	return nil
}
