package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

//go:embed config.json
var defaults embed.FS

const confName = "config.json"

type EditorConfig struct {
	LineNumbers  string `mapstructure:"lineNumbers"`
	MaxLeaf      int    `mapstructure:"maxLeaf"`
	HistoryLimit int    `mapstructure:"historyLimit"`
	ReduceOnSave bool   `mapstructure:"reduceOnSave"`
	LogFile      string `mapstructure:"logFile"`
	LogLevel     string `mapstructure:"logLevel"`
}

func (e EditorConfig) RelativeLineNumbers() bool {
	return e.LineNumbers == "relative"
}

type Config struct {
	log     zerolog.Logger
	viper   *viper.Viper
	watcher *fsnotify.Watcher

	dir, file string

	mu        sync.RWMutex
	editor    EditorConfig
	listeners []func(EditorConfig)
}

func NewConfig(log zerolog.Logger) *Config {
	v := viper.New()
	v.SetConfigType("json")
	v.SetDefault("lineNumbers", "absolute")
	v.SetDefault("maxLeaf", 1024)
	v.SetDefault("historyLimit", 1000)
	v.SetDefault("reduceOnSave", true)
	v.SetDefault("logFile", "app.log")
	v.SetDefault("logLevel", "info")
	return &Config{log: log, viper: v}
}

// Dir returns the directory holding the config file:
// $XDG_CONFIG_HOME/goditor, or ~/.goditor without XDG.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "goditor")
	}
	return filepath.Join(os.Getenv("HOME"), ".goditor")
}

// Init writes the embedded defaults if no config file exists yet and loads it.
func (cfg *Config) Init() error {
	cfg.dir = Dir()
	cfg.file = filepath.Join(cfg.dir, confName)

	if err := cfg.writeConfigIfMissing(); err != nil {
		return err
	}
	cfg.viper.SetConfigFile(cfg.file)
	return cfg.readConfigIntoMemory()
}

func (cfg *Config) writeConfigIfMissing() error {
	if _, err := os.Stat(cfg.file); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	content, err := fs.ReadFile(defaults, confName)
	if err != nil {
		return fmt.Errorf("read embedded config: %w", err)
	}
	if err := os.MkdirAll(cfg.dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(cfg.file, content, 0664); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	cfg.log.Info().Str("file", cfg.file).Msg("wrote default config")
	return nil
}

func (cfg *Config) readConfigIntoMemory() error {
	if err := cfg.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", cfg.file, err)
	}

	var editor EditorConfig
	if err := cfg.viper.Unmarshal(&editor); err != nil {
		return fmt.Errorf("decode config %s: %w", cfg.file, err)
	}
	if editor.MaxLeaf <= 0 {
		editor.MaxLeaf = 1024
	}

	cfg.mu.Lock()
	cfg.editor = editor
	listeners := cfg.listeners
	cfg.mu.Unlock()

	for _, fn := range listeners {
		fn(editor)
	}
	return nil
}

// Editor returns a snapshot of the current settings.
func (cfg *Config) Editor() EditorConfig {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()
	return cfg.editor
}

// OnChange registers fn to run after every successful reload.
func (cfg *Config) OnChange(fn func(EditorConfig)) {
	cfg.mu.Lock()
	cfg.listeners = append(cfg.listeners, fn)
	cfg.mu.Unlock()
}

// Watch rereads the config file whenever it is written, until Cleanup.
func (cfg *Config) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	if err := watcher.Add(cfg.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch config directory: %w", err)
	}
	cfg.watcher = watcher

	go cfg.rereadConfigOnFileChange(watcher)
	return nil
}

func (cfg *Config) rereadConfigOnFileChange(watcher *fsnotify.Watcher) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cfg.file || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			if err := cfg.readConfigIntoMemory(); err != nil {
				cfg.log.Warn().Err(err).Msg("keeping previous config")
				continue
			}
			cfg.log.Info().Str("file", cfg.file).Msg("config reloaded")
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			cfg.log.Error().Err(err).Msg("config watcher")
		}
	}
}

func (cfg *Config) Cleanup() {
	if cfg.watcher != nil {
		cfg.watcher.Close()
	}
}
