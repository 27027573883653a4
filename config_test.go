package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/tinylisp/compiler"
	"github.com/jcorbin/tinylisp/lisp"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "tinylisp.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.Equal(t, defaultConfig(), cfg)

		mask, err := cfg.Compiler.mask()
		require.NoError(t, err)
		assert.Equal(t, lisp.DefaultMask, mask)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := loadConfig(writeConfig(t, `
[compiler]
mask = "0x1122334455667788"
padding = "trailing"
foreign = ["input"]

[runtime]
timeout = "1.5s"

[output]
format = "cbor"
`))
		require.NoError(t, err)
		assert.Equal(t, Config{
			Compiler: CompilerConfig{
				Mask:    "0x1122334455667788",
				Padding: "trailing",
				Foreign: []string{"input"},
			},
			Runtime: RuntimeConfig{Timeout: duration{1500 * time.Millisecond}},
			Output:  OutputConfig{Format: "cbor", Package: "main", Var: "program"},
		}, cfg)

		opts, err := cfg.Compiler.options()
		require.NoError(t, err)
		c, err := compiler.New(opts...)
		require.NoError(t, err)
		assert.Equal(t, uint64(0x1122334455667788), c.Mask())
		id, ok := c.Symbols().Lookup("input")
		assert.True(t, ok)
		assert.Equal(t, lisp.ForeignAtom(0), id)
	})

	t.Run("missing explicit", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := loadConfig(writeConfig(t, "[compiler\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse error in ")
	})

	t.Run("bad values", func(t *testing.T) {
		cfg, err := loadConfig(writeConfig(t, "[compiler]\nmask = \"twelve\"\n"))
		require.NoError(t, err)
		_, err = cfg.Compiler.options()
		assert.Error(t, err)

		cfg, err = loadConfig(writeConfig(t, "[compiler]\npadding = \"middle\"\n"))
		require.NoError(t, err)
		_, err = cfg.Compiler.options()
		assert.Error(t, err)

		_, err = loadConfig(writeConfig(t, "[runtime]\ntimeout = \"soon\"\n"))
		assert.Error(t, err)
	})
}
