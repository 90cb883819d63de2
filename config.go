package tripgraph

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrConfigNotFound is returned when no config file exists in the
	// directory tree.
	ErrConfigNotFound = errors.New("no tripgraph config file found")

	// ErrMissingURI is returned when no store connection URI is
	// configured. Fatal at startup, never retried.
	ErrMissingURI = errors.New("no connection URI configured")

	// ErrMissingPassword is returned when the store password is absent.
	ErrMissingPassword = errors.New("no connection password configured")
)

// Config represents the .tripgraph.yaml configuration file.
type Config struct {
	// Connection settings for the graph store
	Connection ConnConfig `yaml:"connection"`

	// Embedding holds settings for the embedding service
	Embedding EmbeddingConfig `yaml:"embedding,omitempty"`

	// Data holds default paths for the ingestion source files
	Data DataConfig `yaml:"data,omitempty"`
}

// ConnConfig holds connection settings for the graph store.
type ConnConfig struct {
	// Connection URI (e.g., "neo4j://localhost:7687")
	URI string `yaml:"uri"`

	// Optional credentials (if not in URI)
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	// Database name, empty for the server default
	Database string `yaml:"database,omitempty"`
}

// Validate checks that the connection settings are usable. A missing
// URI or password is a fatal configuration error.
func (c ConnConfig) Validate() error {
	if c.URI == "" {
		return ErrMissingURI
	}

	if c.Username != "" && c.Password == "" {
		return ErrMissingPassword
	}

	return nil
}

// EmbeddingConfig holds settings for the external embedding service.
type EmbeddingConfig struct {
	// Endpoint of the embedding inference service
	Endpoint string `yaml:"endpoint,omitempty"`

	// Dimension of the produced vectors
	Dimension int `yaml:"dimension,omitempty"`
}

// DataConfig holds default paths for the ingestion source files.
type DataConfig struct {
	Hotels     string `yaml:"hotels,omitempty"`
	Travellers string `yaml:"travellers,omitempty"`
	Reviews    string `yaml:"reviews,omitempty"`
	Visas      string `yaml:"visas,omitempty"`
}

// DefaultConfigNames are the filenames we search for.
var DefaultConfigNames = []string{".tripgraph.yaml", ".tripgraph.yml", "tripgraph.yaml", "tripgraph.yml"}

// LoadConfig finds and loads the nearest config file walking up from dir.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}

	return LoadConfigFile(path)
}

// FindConfig searches for a config file starting from dir and walking up.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for dir := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(dir, name)

			_, err := os.Stat(path)
			if err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}

		dir = parent
	}
}

// LoadConfigFile loads a config from a specific path.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
