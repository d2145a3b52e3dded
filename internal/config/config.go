// Package config holds the settings shared by the headless CLI and the GUI
// viewer, and turns them into engine options.
package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"life-torus/internal/patterns"
	"life-torus/pkg/core"
	"life-torus/pkg/grid/bytegrid"
	"life-torus/pkg/sims/life"
)

// Config controls grid dimensions, storage and run pacing.
type Config struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Store      string `yaml:"store"`
	TrackDirty bool   `yaml:"track_dirty"`
	Seed       int64  `yaml:"seed"`
	// Init is the fill policy: random, empty or stripes.
	Init string `yaml:"init"`
	// Pattern, when set, is stamped at the grid center after the fill.
	Pattern string `yaml:"pattern"`

	Ticks int `yaml:"ticks"`
	TPS   int `yaml:"tps"`
	Scale int `yaml:"scale"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:      64,
		Height:     64,
		Store:      bytegrid.Name,
		TrackDirty: true,
		Seed:       42,
		Init:       life.InitRandom.String(),
		Ticks:      100,
		TPS:        60,
		Scale:      8,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values are ignored and keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["store"]; ok && v != "" {
		c.Store = v
	}
	if v, ok := cfg["dirty"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.TrackDirty = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["init"]; ok && v != "" {
		c.Init = v
	}
	if v, ok := cfg["pattern"]; ok {
		c.Pattern = v
	}
	if v, ok := cfg["ticks"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Ticks = parsed
		}
	}
	if v, ok := cfg["tps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.TPS = parsed
		}
	}
	if v, ok := cfg["scale"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Scale = parsed
		}
	}
	return c
}

// LoadFile reads a YAML file over the defaults. Keys absent from the file
// keep their default values.
func LoadFile(path string) (Config, error) {
	c := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return c, errors.Wrapf(err, "[LoadFile] failed to read file: %+v", path)
	}
	if err = yaml.Unmarshal(data, &c); err != nil {
		return c, errors.Wrapf(err, "[LoadFile] failed to unmarshal data from file: %+v", path)
	}
	return c, nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.IntVarP(&c.Width, "width", "W", c.Width, "grid width in cells")
	fs.IntVarP(&c.Height, "height", "H", c.Height, "grid height in cells")
	fs.StringVar(&c.Store, "store", c.Store, "cell storage strategy (bytes|bits)")
	fs.BoolVar(&c.TrackDirty, "dirty", c.TrackDirty, "track cells changed by each tick")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the random fill")
	fs.StringVar(&c.Init, "init", c.Init, "fill policy (random|empty|stripes)")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "pattern stamped at the grid center")
	fs.IntVarP(&c.Ticks, "ticks", "n", c.Ticks, "generations to simulate (0 runs until interrupted)")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second (0 is unpaced)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
}

// Validate reports the first setting that would make construction fail.
func (c Config) Validate() error {
	if err := core.CheckSize(c.Width, c.Height); err != nil {
		return errors.Wrap(err, "[Validate]")
	}
	if _, err := core.LookupStore(c.Store); err != nil {
		return errors.Wrap(err, "[Validate]")
	}
	if _, err := life.ParseInit(c.Init); err != nil {
		return errors.Wrap(err, "[Validate]")
	}
	if c.Pattern != "" {
		if _, err := patterns.Lookup(c.Pattern); err != nil {
			return errors.Wrap(err, "[Validate]")
		}
	}
	if c.Ticks < 0 {
		return errors.Errorf("[Validate] ticks must be non-negative, got %d", c.Ticks)
	}
	if c.TPS < 0 {
		return errors.Errorf("[Validate] tps must be non-negative, got %d", c.TPS)
	}
	if c.Scale <= 0 {
		return errors.Errorf("[Validate] scale must be positive, got %d", c.Scale)
	}
	return nil
}

// NewLife validates the config and builds the engine it describes.
func (c Config) NewLife(opts ...life.Option) (*life.Life, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	policy, _ := life.ParseInit(c.Init)
	base := []life.Option{
		life.WithStore(c.Store),
		life.WithDirtyTracking(c.TrackDirty),
		life.WithSeed(c.Seed),
		life.WithInit(policy),
	}
	l, err := life.New(c.Width, c.Height, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	if c.Pattern != "" {
		p, _ := patterns.Lookup(c.Pattern)
		cells := patterns.Center(p, l.Size())
		if err := l.SetCells(core.Alive, cells); err != nil {
			return nil, errors.Wrapf(err, "[NewLife] failed to stamp %s", c.Pattern)
		}
	}
	return l, nil
}

// Resolve layers settings: cfg (normally the defaults bound to fs), then
// the YAML file at path, then every flag set explicitly on fs. An empty
// path returns cfg unchanged.
func Resolve(path string, fs *pflag.FlagSet, cfg Config) (Config, error) {
	if path == "" {
		return cfg, nil
	}
	fileCfg, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}

	overlay := pflag.NewFlagSet("overlay", pflag.ContinueOnError)
	fileCfg.Bind(overlay)
	var setErr error
	fs.Visit(func(f *pflag.Flag) {
		if setErr != nil || overlay.Lookup(f.Name) == nil {
			return
		}
		setErr = overlay.Set(f.Name, f.Value.String())
	})
	if setErr != nil {
		return Config{}, errors.Wrap(setErr, "[Resolve] failed to apply flags over file")
	}
	return fileCfg, nil
}
