package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	apperrors "worklog/internal/platform/errors"
)

const (
	DefaultStateFile    = "work_log.json"
	DefaultExportDir    = "journal"
	DefaultTickInterval = 200 * time.Millisecond

	// configName is looked up as worklog.yaml (or any viper extension) inside the data dir.
	configName = "worklog"
	stateDir   = ".worklog"
)

type Config struct {
	DataDir      string
	StatePath    string
	DBPath       string
	LogPath      string
	ExportDir    string
	TickInterval time.Duration
	Location     *time.Location
	Debug        bool
}

// New returns the default configuration rooted at dataDir without reading any file.
func New(dataDir string) (Config, error) {
	return Load(dataDir, "", false)
}

// Load resolves configuration for dataDir. When cfgFile is empty an optional
// worklog.yaml in dataDir is read if present; an explicit cfgFile must exist.
// readFile=false skips file lookup entirely.
func Load(dataDir, cfgFile string, readFile bool) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required: %w", apperrors.ErrInvalidInput)
	}

	v := viper.New()
	v.SetDefault("state_file", DefaultStateFile)
	v.SetDefault("export_dir", DefaultExportDir)
	v.SetDefault("tick_interval", DefaultTickInterval)
	v.SetDefault("timezone", "")
	v.SetDefault("debug", false)

	if readFile || cfgFile != "" {
		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
		} else {
			v.SetConfigName(configName)
			v.SetConfigType("yaml")
			v.AddConfigPath(dataDir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if cfgFile != "" || !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	tick := v.GetDuration("tick_interval")
	if tick <= 0 {
		return Config{}, fmt.Errorf("tick_interval must be positive, got %q: %w", v.GetString("tick_interval"), apperrors.ErrInvalidInput)
	}

	loc := time.Local
	if name := strings.TrimSpace(v.GetString("timezone")); name != "" {
		l, err := time.LoadLocation(name)
		if err != nil {
			return Config{}, fmt.Errorf("timezone %q: %w", name, apperrors.ErrInvalidInput)
		}
		loc = l
	}

	return Config{
		DataDir:      dataDir,
		StatePath:    resolve(dataDir, v.GetString("state_file")),
		DBPath:       filepath.Join(dataDir, stateDir, "worklog.db"),
		LogPath:      filepath.Join(dataDir, stateDir, "worklog.log"),
		ExportDir:    resolve(dataDir, v.GetString("export_dir")),
		TickInterval: tick,
		Location:     loc,
		Debug:        v.GetBool("debug"),
	}, nil
}

func resolve(dataDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dataDir, path)
}
