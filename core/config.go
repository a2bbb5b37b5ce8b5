package core

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"strconv"

	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfiguration is returned when a configuration value is out of range.
var ErrInvalidConfiguration = zerr.New("invalid configuration")

// Environment variables overriding the configuration file
const (
	EnvLoaderThreads = "LITECRAFT_LOADER_THREADS"
	EnvWindowWidth   = "LITECRAFT_WINDOW_WIDTH"
	EnvWindowHeight  = "LITECRAFT_WINDOW_HEIGHT"
	EnvAssetsRoot    = "LITECRAFT_ASSETS_ROOT"
	EnvLogLevel      = "LITECRAFT_LOG_LEVEL"
)

// Configuration defines a global engine configuration setting.
// Once handed to the engine it is shared between goroutines
// and must be treated as read-only.
type Configuration struct {
	Loader LoaderConfiguration `yaml:"loader"`
	Window WindowConfiguration `yaml:"window"`
	Time   TimeConfiguration   `yaml:"time"`
	Assets AssetsConfiguration `yaml:"assets"`
	Log    LogConfiguration    `yaml:"log"`
}

// LoaderConfiguration is used to configure background resource loading
type LoaderConfiguration struct {
	// Threads is the amount of decode jobs run at the same time
	Threads int `yaml:"threads"`
}

// WindowConfiguration is used to configure the initial window
type WindowConfiguration struct {
	Title  string `yaml:"title"`
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int `yaml:"frames_per_second"`

	// EventPollDelay is the delay between window event polls in milliseconds
	EventPollDelay int `yaml:"event_poll_delay"`
}

// AssetsConfiguration describes where resources are looked up.
// Archives take precedence over the Root directory, in the order given.
type AssetsConfiguration struct {
	Root      string   `yaml:"root"`
	Archives  []string `yaml:"archives"`
	Namespace string   `yaml:"namespace"`
}

// LogConfiguration is used to configure logging
type LogConfiguration struct {
	Level string `yaml:"level"`
}

// DefaultConfiguration returns the configuration used when nothing is overridden
func DefaultConfiguration() Configuration {
	return Configuration{
		Loader: LoaderConfiguration{
			Threads: 4,
		},
		Window: WindowConfiguration{
			Title:  "Litecraft",
			Width:  854,
			Height: 480,
		},
		Time: TimeConfiguration{
			FramesPerSecond: 60,
			EventPollDelay:  10,
		},
		Assets: AssetsConfiguration{
			Root:      "./assets",
			Namespace: "minecraft",
		},
		Log: LogConfiguration{
			Level: "info",
		},
	}
}

// LoadConfiguration reads the configuration file at path on top of the defaults,
// then applies a .env file and environment variables. A missing file
// at path is not an error.
func LoadConfiguration(path string) (*Configuration, error) {
	cfg := DefaultConfiguration()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.WithField("path", path).Debug("configuration file not found, using defaults")
		case err != nil:
			return nil, zerr.With(zerr.Wrap(err, "failed to read configuration"), "path", path)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to parse configuration"), "path", path)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, zerr.Wrap(err, "failed to load .env")
	}
	envy.Reload()

	if err := cfg.applyEnvironment(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Configuration) applyEnvironment() error {
	ints := []struct {
		key string
		max int64
		set func(int64)
	}{
		{EnvLoaderThreads, math.MaxInt32, func(v int64) { c.Loader.Threads = int(v) }},
		{EnvWindowWidth, math.MaxUint32, func(v int64) { c.Window.Width = uint32(v) }},
		{EnvWindowHeight, math.MaxUint32, func(v int64) { c.Window.Height = uint32(v) }},
	}
	for _, e := range ints {
		raw := envy.Get(e.key, "")
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 || v > e.max {
			return zerr.With(zerr.With(zerr.Wrap(ErrInvalidConfiguration, "expected a non-negative integer in range"),
				e.key, raw), "max", e.max)
		}
		e.set(v)
	}

	c.Assets.Root = envy.Get(EnvAssetsRoot, c.Assets.Root)
	c.Log.Level = envy.Get(EnvLogLevel, c.Log.Level)
	return nil
}

// Validate checks that every value is usable
func (c *Configuration) Validate() error {
	if c.Loader.Threads <= 0 {
		return zerr.With(zerr.Wrap(ErrInvalidConfiguration, "loader threads must be positive"), "threads", c.Loader.Threads)
	}
	if c.Window.Width == 0 || c.Window.Height == 0 {
		return zerr.With(zerr.With(zerr.Wrap(ErrInvalidConfiguration, "window size must be positive"),
			"width", c.Window.Width), "height", c.Window.Height)
	}
	if c.Time.FramesPerSecond < 0 {
		return zerr.With(zerr.Wrap(ErrInvalidConfiguration, "frames per second cannot be negative"), "fps", c.Time.FramesPerSecond)
	}
	if c.Assets.Namespace == "" {
		return zerr.Wrap(ErrInvalidConfiguration, "assets namespace is empty")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return zerr.With(zerr.Wrap(ErrInvalidConfiguration, "unknown log level"), "level", c.Log.Level)
	}
	return nil
}

// LogLevel returns the parsed log level, defaulting to info
func (c *Configuration) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
