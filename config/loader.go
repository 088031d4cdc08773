package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// FileReader defines the interface for reading files
type FileReader interface {
	// ReadFile reads the file at the given path and returns the contents
	ReadFile(path string) ([]byte, error)
}

// DefaultFileReader implements FileReader using os.ReadFile
type DefaultFileReader struct{}

func (d *DefaultFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader wraps a FileReader to provide dependency injection for the config
// loading functions
type Loader struct {
	fileReader FileReader
}

// NewLoader creates a Loader with the given FileReader
func NewLoader(fileReader FileReader) *Loader {
	return &Loader{fileReader: fileReader}
}

// NewDefaultLoader creates a Loader with the default file reader
func NewDefaultLoader() *Loader {
	return NewLoader(&DefaultFileReader{})
}

// LoadServerConfig loads the HTTP server config from a toml file
func (l *Loader) LoadServerConfig(configPath string) (*ServerConfig, error) {
	if !strings.HasSuffix(configPath, ".toml") {
		return nil, fmt.Errorf("config file must be a toml file")
	}
	body, err := l.fileReader.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config ServerConfig
	if err := toml.Unmarshal(body, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}

// LoadChainConfig loads the venue config from a toml or json file, applies
// defaults and validates it. RPC_URL from the environment overrides the
// file value so node credentials can stay out of the config.
func (l *Loader) LoadChainConfig(configPath string) (*ChainConfig, error) {
	body, err := l.fileReader.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain config file: %w", err)
	}

	var config ChainConfig
	if strings.HasSuffix(configPath, ".json") {
		if err := json.Unmarshal(body, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	} else {
		if err := toml.Unmarshal(body, &config); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	}

	if url := os.Getenv("RPC_URL"); url != "" {
		config.RPCURL = url
	}
	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid chain config: %w", err)
	}
	return &config, nil
}
