// Package config reads the YAML configuration of the rxanim streamer.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/matt-g-everett/rxanim/animation"
	"github.com/matt-g-everett/rxanim/led"
	"gopkg.in/yaml.v2"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// MQTT configures the broker connection frames are published on.
type MQTT struct {
	URL       string `yaml:"url"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	ClientID  string `yaml:"clientId"`
	KeepAlive int    `yaml:"keepAlive"`
	Topics    struct {
		Stream string `yaml:"stream"`
	} `yaml:"topics"`
}

// LED configures the strip and the pattern cycle.
type LED struct {
	Pixels            int     `yaml:"pixels"`
	TransitionSeconds float64 `yaml:"transitionSeconds"`
	CycleSeconds      float64 `yaml:"cycleSeconds"`
	Easing            string  `yaml:"easing"`
	Brightness        float64 `yaml:"brightness"`
}

// API configures the status server.
type API struct {
	Listen string `yaml:"listen"`
}

// Log configures logging.
type Log struct {
	Level string `yaml:"level"`
}

// Config of the streamer.
type Config struct {
	MQTT MQTT `yaml:"mqtt"`
	LED  LED  `yaml:"led"`
	API  API  `yaml:"api"`
	Log  Log  `yaml:"log"`
}

// Default returns the configuration used for every omitted setting.
func Default() Config {
	var c Config
	c.MQTT.ClientID = "rxanim"
	c.MQTT.KeepAlive = 30
	c.MQTT.Topics.Stream = "led/stream"
	c.LED.Pixels = led.DefaultPixels
	c.LED.TransitionSeconds = 5
	c.LED.CycleSeconds = 30
	c.LED.Easing = "linear"
	c.LED.Brightness = 1
	c.API.Listen = ":3000"
	c.Log.Level = "info"
	return c
}

// Load reads and validates the configuration at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	c := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.SetStrict(true)
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	switch {
	case c.MQTT.URL == "":
		return fmt.Errorf("%w: mqtt.url is required", ErrInvalidConfig)
	case c.MQTT.Topics.Stream == "":
		return fmt.Errorf("%w: mqtt.topics.stream is required", ErrInvalidConfig)
	case c.MQTT.KeepAlive < 1:
		return fmt.Errorf("%w: mqtt.keepAlive must be positive, got %d", ErrInvalidConfig, c.MQTT.KeepAlive)
	case c.LED.Pixels < 1 || c.LED.Pixels > 0xffff:
		return fmt.Errorf("%w: led.pixels must be 1-65535, got %d", ErrInvalidConfig, c.LED.Pixels)
	case animation.FramesFromSeconds(c.LED.TransitionSeconds) < 1:
		return fmt.Errorf("%w: led.transitionSeconds must last at least one frame", ErrInvalidConfig)
	case c.LED.CycleSeconds <= c.LED.TransitionSeconds:
		return fmt.Errorf("%w: led.cycleSeconds must be longer than led.transitionSeconds", ErrInvalidConfig)
	case c.LED.Brightness < 0 || c.LED.Brightness > 1:
		return fmt.Errorf("%w: led.brightness must be 0-1, got %g", ErrInvalidConfig, c.LED.Brightness)
	}
	if _, err := animation.EasingByName(c.LED.Easing); err != nil {
		return fmt.Errorf("%w: led.easing: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// KeepAliveDuration returns the MQTT keep alive interval.
func (m MQTT) KeepAliveDuration() time.Duration {
	return time.Duration(m.KeepAlive) * time.Second
}

// Transition returns the cross-fade duration.
func (l LED) Transition() time.Duration {
	return time.Duration(l.TransitionSeconds * float64(time.Second))
}

// Cycle returns the time each pattern is shown for.
func (l LED) Cycle() time.Duration {
	return time.Duration(l.CycleSeconds * float64(time.Second))
}

// SlogLevel parses the level name.
func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return 0, fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	return level, nil
}
