package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Store       StoreConfig       `toml:"store"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	YouTube YouTubeConfig `toml:"youtube"`
}

// YouTubeConfig contains YouTube Data API credentials.
//
// APIKey may be left blank and supplied through the YOUTUBE_API_KEY
// environment variable (or a .env file) instead.
type YouTubeConfig struct {
	APIKey       string `toml:"api_key"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
	TokenPath    string `toml:"token_path"`
}

// StoreConfig contains flat-file store settings.
type StoreConfig struct {
	DataFile    string `toml:"data_file"`
	UploadsDir  string `toml:"uploads_dir"`
	SessionFile string `toml:"session_file"`
}

// DatabaseConfig contains settings for the sqlite video metadata cache.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	ClientDir string `toml:"client_dir"`
}

// Addr returns the host:port pair the HTTP server binds to.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// A .env file in the working directory is loaded first when present, and
// YOUTUBE_API_KEY overrides the api_key value from the file.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if key := os.Getenv("YOUTUBE_API_KEY"); key != "" {
		config.Credentials.YouTube.APIKey = key
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	_ = godotenv.Load()

	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	if key := os.Getenv("YOUTUBE_API_KEY"); key != "" {
		config.Credentials.YouTube.APIKey = key
	}
	return &config
}

// SaveConfig writes the config to the given path as TOML.
func SaveConfig(path string, config *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
