package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shunt/internal/cache"
	"shunt/internal/engine"
)

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, engine.Postfix, mode)
}

func TestLoadOverridesDefaults(t *testing.T) {
	p := writeFile(t, t.TempDir(), `
[convert]
mode = "prefix"

[cache]
backend = "disk"
dir = "/tmp/shunt-cache"
ttl = "90m"

[advisor]
endpoint = "http://localhost:9000/comment"
timeout = "750ms"
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, p, cfg.Path)

	mode, err := cfg.Mode()
	require.NoError(t, err)
	assert.Equal(t, engine.Prefix, mode)
	assert.Equal(t, "pretty", cfg.Output.Format, "untouched sections keep defaults")
	assert.Equal(t, 750*time.Millisecond, cfg.Advisor.Timeout.Duration)
	assert.Equal(t, 64, cfg.Advisor.MaxSteps)

	cc, err := cfg.CacheStore()
	require.NoError(t, err)
	assert.Equal(t, cache.Config{Backend: cache.BackendDisk, Dir: "/tmp/shunt-cache", TTL: 90 * time.Minute}, cc)
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]string{
		"syntax":        `[convert`,
		"unknown key":   "[convert]\nmood = \"prefix\"\n",
		"mode":          "[convert]\nmode = \"infix\"\n",
		"format":        "[output]\nformat = \"xml\"\n",
		"color":         "[output]\ncolor = \"sometimes\"\n",
		"backend":       "[cache]\nbackend = \"memcached\"\n",
		"redis no addr": "[cache]\nbackend = \"redis\"\n",
		"ttl":           "[cache]\nttl = \"soon\"\n",
		"jobs":          "[batch]\njobs = -1\n",
		"max steps":     "[advisor]\nmax_steps = -3\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, t.TempDir(), body))
			assert.Error(t, err)
		})
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, "")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, ok, err := Find(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestDiscover(t *testing.T) {
	empty := t.TempDir()
	cfg, err := Discover(empty, "")
	require.NoError(t, err)
	if cfg.Path == "" {
		assert.Equal(t, Default(), cfg)
	}

	explicit := writeFile(t, t.TempDir(), "[batch]\njobs = 3\n")
	cfg, err = Discover(empty, explicit)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Batch.Jobs)

	_, err = Discover(empty, filepath.Join(empty, "missing.toml"))
	assert.Error(t, err)
}
