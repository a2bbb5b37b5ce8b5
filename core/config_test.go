package core_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/litecraft/core"
)

func writeConfig(c *qt.C, content string) string {
	path := filepath.Join(c.TempDir(), "litecraft.yaml")
	c.Assert(os.WriteFile(path, []byte(content), 0o644), qt.IsNil)
	return path
}

func TestLoadConfigurationDefaults(t *testing.T) {
	c := qt.New(t)
	cfg, err := core.LoadConfiguration(filepath.Join(c.TempDir(), "missing.yaml"))
	c.Assert(err, qt.IsNil)
	c.Assert(*cfg, qt.DeepEquals, core.DefaultConfiguration())
	c.Assert(cfg.LogLevel(), qt.Equals, log.InfoLevel)
}

func TestLoadConfigurationFile(t *testing.T) {
	c := qt.New(t)
	path := writeConfig(c, `
loader:
  threads: 2
window:
  width: 1280
  height: 720
assets:
  root: /srv/litecraft
  archives: [base.kar, extra.kar]
log:
  level: debug
`)
	cfg, err := core.LoadConfiguration(path)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Loader.Threads, qt.Equals, 2)
	c.Assert(cfg.Window.Width, qt.Equals, uint32(1280))
	c.Assert(cfg.Window.Title, qt.Equals, "Litecraft")
	c.Assert(cfg.Assets.Archives, qt.DeepEquals, []string{"base.kar", "extra.kar"})
	c.Assert(cfg.Assets.Namespace, qt.Equals, "minecraft")
	c.Assert(cfg.LogLevel(), qt.Equals, log.DebugLevel)
}

func TestLoadConfigurationEnvironment(t *testing.T) {
	c := qt.New(t)
	c.Setenv(core.EnvLoaderThreads, "8")
	c.Setenv(core.EnvWindowHeight, "600")
	c.Setenv(core.EnvAssetsRoot, "/opt/assets")
	c.Setenv(core.EnvLogLevel, "warn")

	cfg, err := core.LoadConfiguration(writeConfig(c, "loader:\n  threads: 2\n"))
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Loader.Threads, qt.Equals, 8)
	c.Assert(cfg.Window.Height, qt.Equals, uint32(600))
	c.Assert(cfg.Assets.Root, qt.Equals, "/opt/assets")
	c.Assert(cfg.LogLevel(), qt.Equals, log.WarnLevel)
}

func TestLoadConfigurationInvalid(t *testing.T) {
	c := qt.New(t)

	_, err := core.LoadConfiguration(writeConfig(c, "loader:\n  threads: 0\n"))
	c.Assert(errors.Is(err, core.ErrInvalidConfiguration), qt.IsTrue)

	_, err = core.LoadConfiguration(writeConfig(c, "loader: [not, a, map]\n"))
	c.Assert(err, qt.Not(qt.IsNil))

	c.Setenv(core.EnvLoaderThreads, "many")
	_, err = core.LoadConfiguration("")
	c.Assert(errors.Is(err, core.ErrInvalidConfiguration), qt.IsTrue)
}

func TestLoadConfigurationEnvironmentOutOfRange(t *testing.T) {
	c := qt.New(t)
	c.Setenv(core.EnvWindowWidth, "4294967297")
	_, err := core.LoadConfiguration("")
	c.Assert(errors.Is(err, core.ErrInvalidConfiguration), qt.IsTrue)

	c.Setenv(core.EnvWindowWidth, "4294967295")
	cfg, err := core.LoadConfiguration("")
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Window.Width, qt.Equals, uint32(math.MaxUint32))
}

func TestValidate(t *testing.T) {
	c := qt.New(t)
	for name, mutate := range map[string]func(*core.Configuration){
		"threads":   func(cfg *core.Configuration) { cfg.Loader.Threads = -1 },
		"width":     func(cfg *core.Configuration) { cfg.Window.Width = 0 },
		"fps":       func(cfg *core.Configuration) { cfg.Time.FramesPerSecond = -5 },
		"namespace": func(cfg *core.Configuration) { cfg.Assets.Namespace = "" },
		"log level": func(cfg *core.Configuration) { cfg.Log.Level = "loud" },
	} {
		cfg := core.DefaultConfiguration()
		mutate(&cfg)
		c.Check(errors.Is(cfg.Validate(), core.ErrInvalidConfiguration), qt.IsTrue, qt.Commentf("%s", name))
	}
	cfg := core.DefaultConfiguration()
	c.Assert(cfg.Validate(), qt.IsNil)
}
