package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gamekit-dev/gamekit/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "gamekit.json"

	// DefaultStorageDir is the default local storage directory.
	DefaultStorageDir = "BadRPGGame"

	// DefaultSettingsFile is the default settings file inside the storage.
	DefaultSettingsFile = "game.yaml"

	// DefaultAddr is the default live view server address.
	DefaultAddr = "localhost:7070"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
)

// Storage backends.
const (
	BackendDisk = "disk"
	BackendS3   = "s3"
)

// Config represents the complete gamekit.json configuration.
type Config struct {
	// Storage selects where game data lives.
	Storage StorageConfig `json:"storage"`

	// Settings configures the settings file.
	Settings SettingsConfig `json:"settings"`

	// Serve configures the live view server.
	Serve ServeConfig `json:"serve"`

	// Log configures logging.
	Log LogConfig `json:"log"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// StorageConfig contains storage backend configuration.
type StorageConfig struct {
	// Backend is "disk" or "s3".
	Backend string `json:"backend,omitempty"`

	// Dir is the local directory for the disk backend.
	Dir string `json:"dir,omitempty"`

	// Bucket is the S3 bucket.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is the key prefix inside the bucket.
	Prefix string `json:"prefix,omitempty"`

	// Region is the AWS region. When empty the SDK's default chain
	// (AWS_REGION, the shared config profile) decides.
	Region string `json:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, e.g. for MinIO.
	Endpoint string `json:"endpoint,omitempty"`
}

// SettingsConfig contains settings file configuration.
type SettingsConfig struct {
	// Filename is the settings file inside the storage. Its extension
	// picks the format.
	Filename string `json:"filename,omitempty"`
}

// ServeConfig contains live view server configuration.
type ServeConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty"`

	// Watch reloads the settings when the file changes on disk.
	Watch bool `json:"watch,omitempty"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: BackendDisk,
			Dir:     DefaultStorageDir,
		},
		Settings: SettingsConfig{
			Filename: DefaultSettingsFile,
		},
		Serve: ServeConfig{
			Addr: DefaultAddr,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for gamekit.json in the directory.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E141").
				WithDetail("No gamekit.json found in " + filepath.Dir(path)).
				WithSuggestion("Create gamekit.json or run without one to use the defaults")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse gamekit.json: " + err.Error()).
			WithSuggestion("Check that gamekit.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// LoadOrDefault loads gamekit.json from the nearest project root above
// dir, falling back to defaults rooted at dir when there is none.
func LoadOrDefault(dir string) (*Config, error) {
	root, err := FindProjectRoot(dir)
	if err != nil {
		cfg := New()
		abs, absErr := filepath.Abs(dir)
		if absErr != nil {
			return nil, absErr
		}
		cfg.configPath = filepath.Join(abs, ConfigFileName)
		return cfg, nil
	}
	return Load(root)
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendDisk
	}
	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
	if c.Storage.Backend == BackendDisk && c.Storage.Dir == "" {
		c.Storage.Dir = DefaultStorageDir
	}
	if c.Settings.Filename == "" {
		c.Settings.Filename = DefaultSettingsFile
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultAddr
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendDisk:
		if c.Storage.Dir == "" {
			return errors.New("E122").
				WithDetail("storage.dir is required for the disk backend")
		}
	case BackendS3:
		if c.Storage.Bucket == "" {
			return errors.New("E122").
				WithDetail("storage.bucket is required for the s3 backend")
		}
	default:
		return errors.New("E122").
			WithDetail("storage.backend must be \"disk\" or \"s3\", got \"" + c.Storage.Backend + "\"")
	}

	if filepath.IsAbs(c.Settings.Filename) || strings.Contains(c.Settings.Filename, "..") {
		return errors.New("E122").
			WithDetail("settings.filename must be relative to the storage root")
	}

	if _, ok := parseLevel(c.Log.Level); !ok {
		return errors.New("E122").
			WithDetail("log.level must be debug, info, warn or error, got \"" + c.Log.Level + "\"")
	}
	return nil
}

// StorageDir returns the absolute path to the disk storage directory.
func (c *Config) StorageDir() string {
	if filepath.IsAbs(c.Storage.Dir) {
		return c.Storage.Dir
	}
	return filepath.Join(c.Dir(), c.Storage.Dir)
}

// LogLevel returns the configured slog level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing gamekit.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E141").
				WithDetail("No gamekit.json found in " + startDir + " or any parent directory").
				WithSuggestion("Create gamekit.json in your project root")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
