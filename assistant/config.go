package assistant

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/lectio/library"
)

// FileConfig is the on-disk YAML configuration for the whole assistant.
type FileConfig struct {
	DataDir       string   `yaml:"data_dir"`
	SessionDB     string   `yaml:"session_db"`
	UserDB        string   `yaml:"user_db"`
	WordsPerChunk int      `yaml:"words_per_chunk"`
	LogLevel      string   `yaml:"log_level"`

	Library library.Config `yaml:"library"`

	OpenAI struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`

	Speech struct {
		Endpoint string `yaml:"endpoint"`
		APIKey   string `yaml:"api_key"`
	} `yaml:"speech"`

	// DemoUsers are provisioned at startup when the user database is empty.
	DemoUsers map[string]string `yaml:"demo_users"`
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Defaults returns the configuration used when no file is supplied.
func Defaults() *FileConfig {
	var cfg FileConfig
	cfg.applyDefaults()
	return &cfg
}

func (c *FileConfig) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.SessionDB == "" {
		c.SessionDB = c.DataDir + "/sessions.db"
	}
	if c.UserDB == "" {
		c.UserDB = c.DataDir + "/users.db"
	}
	if c.WordsPerChunk <= 0 {
		c.WordsPerChunk = 80
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
