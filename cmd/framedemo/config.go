package main

import (
	"fmt"
	"strings"
	"time"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
)

type config struct {
	FPS    int         `toml:"fps"`
	Frames int         `toml:"frames"`
	Fixed  bool        `toml:"fixed"`
	Debug  bool        `toml:"debug"`
	Scene  sceneConfig `toml:"scene"`
}

type sceneConfig struct {
	Actors   int           `toml:"actors"`
	Blinks   int           `toml:"blinks"`
	Interval time.Duration `toml:"interval"`
	LoadTime time.Duration `toml:"load_time"`
	Timeout  time.Duration `toml:"timeout"`
	Doorbell time.Duration `toml:"doorbell"`
}

func defaultConfig() config {
	return config{
		FPS: 60,
		Scene: sceneConfig{
			Actors:   3,
			Blinks:   4,
			Interval: 250 * time.Millisecond,
			LoadTime: 500 * time.Millisecond,
			Timeout:  2 * time.Second,
			Doorbell: time.Second,
		},
	}
}

// loadConfig decodes the TOML file at path over cfg.
// Keys that cfg has no field for are reported as errors.
func loadConfig(path string, cfg *config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// applyConfigFile loads the TOML file at path into cfg. Settings for which
// changed reports true were given on the command line and are kept.
func applyConfigFile(path string, cfg *config, changed func(flag string) bool) error {
	file := defaultConfig()
	if err := loadConfig(path, &file); err != nil {
		return err
	}
	if !changed("fps") {
		cfg.FPS = file.FPS
	}
	if !changed("frames") {
		cfg.Frames = file.Frames
	}
	if !changed("fixed") {
		cfg.Fixed = file.Fixed
	}
	if !changed("debug") {
		cfg.Debug = file.Debug
	}
	cfg.Scene = file.Scene
	return nil
}

// framePeriod returns the wall-clock time between two frames.
func (cfg *config) framePeriod() (time.Duration, error) {
	fps, err := safecast.Conv[uint32](cfg.FPS)
	if err != nil || fps == 0 {
		return 0, fmt.Errorf("invalid fps: %d", cfg.FPS)
	}
	return time.Second / time.Duration(fps), nil
}

// frameLimit returns the number of frames to run for, 0 meaning no limit.
func (cfg *config) frameLimit() (uint64, error) {
	n, err := safecast.Conv[uint64](cfg.Frames)
	if err != nil {
		return 0, fmt.Errorf("invalid frames: %d: %w", cfg.Frames, err)
	}
	return n, nil
}

func (cfg *sceneConfig) validate() error {
	switch {
	case cfg.Actors < 0:
		return fmt.Errorf("invalid scene.actors: %d", cfg.Actors)
	case cfg.Blinks < 0:
		return fmt.Errorf("invalid scene.blinks: %d", cfg.Blinks)
	case cfg.Interval <= 0:
		return fmt.Errorf("invalid scene.interval: %v", cfg.Interval)
	}
	return nil
}
