package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/define"
	"portfolio/project"
	"portfolio/typing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, typing.DefaultTiming(), cfg.Typing.Timing())
	assert.Equal(t, "0.0.0.0:9099", cfg.Server.Addr())
	assert.Equal(t, typing.DefaultSetName, cfg.Typing.AutoStart)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8088
typing:
  auto_start: alt
  sets:
    - name: alt
      captions: ["one", "two"]
theme:
  store: sqlite
`), 0o644))

	t.Setenv("PORTFOLIO_TYPING__REVEAL_MS", "80")
	t.Setenv("PORTFOLIO_SERVER__HOST", "127.0.0.1")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, Validate(cfg))

	assert.Equal(t, "127.0.0.1:8088", cfg.Server.Addr())
	assert.Equal(t, 80, cfg.Typing.RevealMS)
	assert.Equal(t, 50, cfg.Typing.DeleteMS)
	assert.Equal(t, []typing.CaptionSet{{Name: "alt", Captions: []string{"one", "two"}}}, cfg.Typing.Sets)
	assert.Equal(t, define.ThemeStoreSQLite, cfg.Theme.Store)
	assert.Equal(t, "data/portfolio.db", cfg.Theme.DBPath)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yml")
	cfg := DefaultConfig()
	cfg.Server.Port = 7000
	cfg.Contact.SendMS = 10

	require.NoError(t, Save(cfg, path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*define.Config){
		"port":      func(c *define.Config) { c.Server.Port = 0 },
		"mode":      func(c *define.Config) { c.Server.Mode = "fast" },
		"reveal":    func(c *define.Config) { c.Typing.RevealMS = 0 },
		"initial":   func(c *define.Config) { c.Typing.InitialMS = -1 },
		"caption":   func(c *define.Config) { c.Typing.Sets[0].Captions = []string{""} },
		"autostart": func(c *define.Config) { c.Typing.AutoStart = "nope" },
		"store":     func(c *define.Config) { c.Theme.Store = "redis" },
		"db_path":   func(c *define.Config) { c.Theme.Store = define.ThemeStoreSQLite; c.Theme.DBPath = "" },
		"project":   func(c *define.Config) { c.Projects = []project.Project{{Key: "x"}} },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(cfg)
		assert.Error(t, Validate(cfg), name)
	}

	cfg := DefaultConfig()
	cfg.Typing.Sets[0].Captions = nil
	assert.ErrorIs(t, Validate(cfg), typing.ErrInvalidCaption)
}
