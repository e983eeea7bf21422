// Package config loads keyboardist settings from file and environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kpumuk/keyboardist"
)

// EnvPrefix prefixes environment overrides, e.g. KEYBOARDIST_LOG_LEVEL.
const EnvPrefix = "KEYBOARDIST"

// Configuration errors.
var (
	ErrUnknownView   = errors.New("unknown binding view")
	ErrUnknownAction = errors.New("unknown binding action")
	ErrInvalid       = errors.New("invalid setting")
)

// Config holds application configuration.
type Config struct {
	Log      LogConfig
	Monitor  MonitorConfig
	BPM      BPMConfig
	Love     LoveConfig
	Bindings map[string]map[string][]string

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// MonitorConfig holds key monitor settings.
type MonitorConfig struct {
	Enabled bool
	Limit   int
}

// BPMConfig holds the tempo counter bounds.
type BPMConfig struct {
	Initial int
	Min     int
	Max     int
	Step    int
	BigStep int `mapstructure:"big_step"`
}

// LoveConfig holds the love meter speed.
type LoveConfig struct {
	Rate time.Duration
}

// Keys returns the descriptors bound to a view action: the configured
// override when present, the default otherwise.
func (c Config) Keys(view, action string) []string {
	if keys, ok := c.Bindings[view][action]; ok {
		return keys
	}
	return DefaultBindings()[view][action]
}

// DefaultBindings returns the built-in descriptors of every view action.
func DefaultBindings() map[string]map[string][]string {
	return map[string]map[string][]string{
		"global": {
			"quit":      {"q", "ctrl+c"},
			"view1":     {"1"},
			"view2":     {"2"},
			"view3":     {"3"},
			"next_view": {"tab"},
			"prev_view": {"shift+tab"},
			"help":      {"?"},
			"monitor":   {"f12"},
		},
		"keyboardists": {
			"next":      {"down"},
			"skip":      {"shift+down"},
			"prev":      {"up"},
			"skip_back": {"shift+up"},
			"select":    {"enter"},
		},
		"modal": {
			"close": {"esc"},
		},
		"bpm": {
			"increment":     {"up"},
			"decrement":     {"down"},
			"big_increment": {"shift+up"},
			"big_decrement": {"shift+down"},
		},
		"love": {
			"fill":  {"KeyL"},
			"reset": {"r"},
		},
		"help": {
			"close": {"esc", "?"},
			"up":    {"up"},
			"down":  {"down"},
		},
		"monitor": {
			"close": {"esc", "f12"},
			"up":    {"up"},
			"down":  {"down"},
			"clear": {"c"},
		},
	}
}

// Loader reads configuration through one viper instance.
type Loader struct {
	v      *viper.Viper
	path   string
	logger *slog.Logger
}

// NewLoader creates a loader. An empty path falls back to KEYBOARDIST_CONFIG
// and then to config.toml in the user config directory.
func NewLoader(path string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	v := viper.NewWithOptions(viper.WithLogger(logger))
	setDefaults(v)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "keyboardist"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v, path: path, logger: logger}
}

// flagKeys maps command-line flags to the settings they override.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file",
	"monitor":    "monitor.enabled",
}

// BindFlags lets changed command-line flags override file and env values.
// Flags missing from the set are skipped.
func (l *Loader) BindFlags(flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// SetLogger replaces the logger used to report reloads.
func (l *Loader) SetLogger(logger *slog.Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// Load reads configuration from file and env. A missing file is only an
// error when the path was given explicitly.
func Load(path string) (Config, error) {
	return NewLoader(path, nil).Load()
}

// Load reads and validates the configuration.
func (l *Loader) Load() (Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	return l.decode()
}

// Watch calls fn with the reloaded configuration whenever the config file
// changes, until ctx is done. It does nothing when no file was read.
func (l *Loader) Watch(ctx context.Context, fn func(Config, error)) {
	if l.v.ConfigFileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if ctx.Err() != nil {
			return
		}
		l.logger.Info("config changed", "file", e.Name, "op", e.Op.String())
		cfg, err := l.decode()
		fn(cfg, err)
	})
	l.v.WatchConfig()
}

func (l *Loader) decode() (Config, error) {
	var c Config
	if err := l.v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.File = l.v.ConfigFileUsed()
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("monitor.enabled", true)
	v.SetDefault("monitor.limit", 500)
	v.SetDefault("bpm.initial", 140)
	v.SetDefault("bpm.min", 40)
	v.SetDefault("bpm.max", 280)
	v.SetDefault("bpm.step", 1)
	v.SetDefault("bpm.big_step", 10)
	v.SetDefault("love.rate", 100*time.Millisecond)
}

// Validate checks numeric settings and binding overrides. Every problem is
// reported.
func (c Config) Validate() error {
	var errs []error
	if c.BPM.Min <= 0 || c.BPM.Min > c.BPM.Max {
		errs = append(errs, fmt.Errorf("%w: bpm range [%d, %d]", ErrInvalid, c.BPM.Min, c.BPM.Max))
	}
	if c.BPM.Initial < c.BPM.Min || c.BPM.Initial > c.BPM.Max {
		errs = append(errs, fmt.Errorf("%w: bpm.initial %d outside [%d, %d]", ErrInvalid, c.BPM.Initial, c.BPM.Min, c.BPM.Max))
	}
	if c.BPM.Step <= 0 || c.BPM.BigStep <= 0 {
		errs = append(errs, fmt.Errorf("%w: bpm steps must be positive", ErrInvalid))
	}
	if c.Love.Rate <= 0 {
		errs = append(errs, fmt.Errorf("%w: love.rate must be positive", ErrInvalid))
	}
	if c.Monitor.Limit < 0 {
		errs = append(errs, fmt.Errorf("%w: monitor.limit must not be negative", ErrInvalid))
	}
	errs = append(errs, validateBindings(c.Bindings)...)
	return errors.Join(errs...)
}

func validateBindings(bindings map[string]map[string][]string) []error {
	defaults := DefaultBindings()
	views := sortedKeys(defaults)

	var errs []error
	for _, view := range sortedKeys(bindings) {
		known, ok := defaults[view]
		if !ok {
			errs = append(errs, suggestionError(ErrUnknownView, "bindings."+view, view, views))
			continue
		}
		actions := sortedKeys(known)
		for _, action := range sortedKeys(bindings[view]) {
			if _, ok := known[action]; !ok {
				errs = append(errs, suggestionError(ErrUnknownAction, "bindings."+view+"."+action, action, actions))
				continue
			}
			for _, descriptor := range bindings[view][action] {
				if _, err := keyboardist.ParseDescriptor(descriptor); err != nil {
					errs = append(errs, fmt.Errorf("bindings.%s.%s: %w", view, action, err))
				}
			}
		}
	}
	for _, view := range views {
		errs = append(errs, collisions(view, bindings[view], defaults[view])...)
	}
	return errs
}

// collisions reports descriptors that bind the same keys to more than one
// action of a view, counting defaults for actions that are not overridden.
func collisions(view string, overrides, defaults map[string][]string) []error {
	var errs []error
	owners := make(map[keyboardist.Combo]string)
	for _, action := range sortedKeys(defaults) {
		descriptors, ok := overrides[action]
		if !ok {
			descriptors = defaults[action]
		}
		for _, descriptor := range descriptors {
			combo, err := keyboardist.ParseDescriptor(descriptor)
			if err != nil {
				continue
			}
			if owner, ok := owners[combo]; ok {
				errs = append(errs, fmt.Errorf("bindings.%s.%s: %w: %q is also bound to %s", view, action, keyboardist.ErrDuplicateBinding, descriptor, owner))
				continue
			}
			owners[combo] = action
		}
	}
	return errs
}

func suggestionError(sentinel error, path, name string, candidates []string) error {
	if s := keyboardist.Suggest(name, candidates); s != "" {
		return fmt.Errorf("%w %q (did you mean %q?)", sentinel, path, s)
	}
	return fmt.Errorf("%w %q", sentinel, path)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
