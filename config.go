package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jcorbin/tinylisp/compiler"
	"github.com/jcorbin/tinylisp/internal/artifact"
	"github.com/jcorbin/tinylisp/lisp"
)

// defaultConfigFile is loaded from the working directory when no -config
// flag is given; it need not exist.
const defaultConfigFile = "tinylisp.toml"

// Config is the tinylisp.toml configuration.
type Config struct {
	Compiler CompilerConfig `toml:"compiler"`
	Runtime  RuntimeConfig  `toml:"runtime"`
	Output   OutputConfig   `toml:"output"`
}

// CompilerConfig configures compilation.
type CompilerConfig struct {
	// Mask is the integer literal mask; a string so that all 64 bits may
	// be given in hex.
	Mask    string   `toml:"mask"`
	Padding string   `toml:"padding"`
	Foreign []string `toml:"foreign"`
}

// RuntimeConfig configures evaluation.
type RuntimeConfig struct {
	Timeout duration `toml:"timeout"`
	Trace   bool     `toml:"trace"`
}

// OutputConfig configures compile output.
type OutputConfig struct {
	Format  string `toml:"format"`
	Package string `toml:"package"`
	Var     string `toml:"var"`
}

type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func defaultConfig() Config {
	return Config{
		Compiler: CompilerConfig{
			Mask:    fmt.Sprintf("%#x", lisp.DefaultMask),
			Padding: compiler.PadLeading.String(),
			Foreign: append([]string(nil), compiler.DefaultForeign...),
		},
		Output: OutputConfig{
			Format:  artifact.FormatGo.String(),
			Package: "main",
			Var:     "program",
		},
	}
}

// loadConfig reads path over the defaults. A missing default config file is
// not an error; a missing explicitly named one is.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("cannot read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return cfg, nil
}

func (cc CompilerConfig) mask() (uint64, error) {
	mask, err := strconv.ParseUint(cc.Mask, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid compiler.mask %q: %w", cc.Mask, err)
	}
	return mask, nil
}

func (cc CompilerConfig) options() ([]compiler.Option, error) {
	mask, err := cc.mask()
	if err != nil {
		return nil, err
	}
	pad, err := compiler.ParsePadding(cc.Padding)
	if err != nil {
		return nil, fmt.Errorf("invalid compiler.padding: %w", err)
	}
	return []compiler.Option{
		compiler.WithMask(mask),
		compiler.WithPadding(pad),
		compiler.WithForeign(cc.Foreign...),
	}, nil
}
