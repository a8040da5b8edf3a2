package config

import (
	"strings"

	"github.com/spf13/viper"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Config holds the immutable runtime configuration, loaded once at
// startup from the environment and passed explicitly to every operation.
type Config struct {
	CloudName     string // cloud account name (required)
	APIKey        string // API key (required)
	APISecret     string // API secret (required)
	Secure        bool   // use https delivery URLs
	DefaultFolder string // remote path segment prepended to folder arguments ("" = root)
	UniqueNames   bool   // let the service generate unique filenames
	MaxFileSizeMB float64
}

// envKeys maps viper keys to their environment variable names.
var envKeys = map[string]string{
	"cloud_name":       "MELTSYNC_CLOUD_NAME",
	"api_key":          "MELTSYNC_API_KEY",
	"api_secret":       "MELTSYNC_API_SECRET",
	"secure":           "MELTSYNC_SECURE",
	"default_folder":   "MELTSYNC_DEFAULT_FOLDER",
	"unique_names":     "MELTSYNC_UNIQUE_NAMES",
	"max_file_size_mb": "MELTSYNC_MAX_FILE_SIZE_MB",
}

// 🎯 Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, errors.Errorf("binding %s: %w", env, err)
		}
	}

	v.SetDefault("secure", true)
	v.SetDefault("default_folder", "")
	v.SetDefault("unique_names", false)
	v.SetDefault("max_file_size_mb", 8.0)

	cfg := &Config{
		CloudName:     v.GetString("cloud_name"),
		APIKey:        v.GetString("api_key"),
		APISecret:     v.GetString("api_secret"),
		Secure:        v.GetBool("secure"),
		DefaultFolder: strings.Trim(v.GetString("default_folder"), "/"),
		UniqueNames:   v.GetBool("unique_names"),
		MaxFileSizeMB: v.GetFloat64("max_file_size_mb"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// 🔍 Validate checks that every required credential is present.
func (cfg *Config) Validate() error {
	var missing []string
	if cfg.CloudName == "" {
		missing = append(missing, envKeys["cloud_name"])
	}
	if cfg.APIKey == "" {
		missing = append(missing, envKeys["api_key"])
	}
	if cfg.APISecret == "" {
		missing = append(missing, envKeys["api_secret"])
	}
	if len(missing) > 0 {
		return errors.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if cfg.MaxFileSizeMB <= 0 {
		return errors.Errorf("max file size must be positive, got %v", cfg.MaxFileSizeMB)
	}
	return nil
}

// ThresholdBytes returns the split threshold in bytes.
func (cfg *Config) ThresholdBytes() int64 {
	return int64(cfg.MaxFileSizeMB * 1024 * 1024)
}

// ConsoleFolderURL returns the media-library URL for a remote folder.
func (cfg *Config) ConsoleFolderURL(folder string) string {
	encoded := strings.ReplaceAll("/"+folder, "/", "%2F")
	return "https://console.cloudinary.com/console/c-" + cfg.CloudName + "/media_library/folders/" + encoded
}
