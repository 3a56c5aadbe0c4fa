// Package config loads the tool configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reincas/nanofab/coord"
	"github.com/reincas/nanofab/elevation"
	"github.com/reincas/nanofab/task"
)

// Controller describes how to reach the ASCII command interface. Setting
// SerialPort selects the RS-232 transport instead of TCP.
type Controller struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	SerialPort string `yaml:"serial_port"`
	SerialBaud int    `yaml:"serial_baud"`
}

// Addr is the TCP address of the ASCII interface.
func (c Controller) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Duration decodes Go duration notation, e.g. "100ms" or "10s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Task bounds the polling loops of task monitors.
type Task struct {
	PollInterval Duration `yaml:"poll_interval"`
	LoadTimeout  Duration `yaml:"load_timeout"`
	StartTimeout Duration `yaml:"start_timeout"`
}

// PollConfig converts the section into a monitor poll configuration.
func (t Task) PollConfig() task.PollConfig {
	return task.PollConfig{
		Interval:     time.Duration(t.PollInterval),
		LoadTimeout:  time.Duration(t.LoadTimeout),
		StartTimeout: time.Duration(t.StartTimeout),
	}
}

// CoordinateSystem describes one drawing space.
type CoordinateSystem struct {
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	// Elevation is a static surface height; probed surfaces replace it
	// at runtime.
	Elevation float64 `yaml:"elevation"`
	Unit      string  `yaml:"unit"`
	DropDown  bool    `yaml:"drop_down"`
}

// System builds the coordinate system. When scanner is set, logical X and
// Y are realized on the galvo axes.
func (c CoordinateSystem) System(scanner bool) (*coord.System, error) {
	unit, err := coord.ParseUnit(c.Unit)
	if err != nil {
		return nil, err
	}
	drop := coord.DropUp
	if c.DropDown {
		drop = coord.DropDown
	}
	var elev coord.Elevation
	if c.Elevation != 0 {
		elev = elevation.Static(c.Elevation)
	}
	sys := coord.NewSystem(c.OffsetX, c.OffsetY, elev, drop, unit)
	if scanner {
		if err := sys.MapAxes(coord.ScannerMap); err != nil {
			return nil, err
		}
	}
	return sys, nil
}

// Config is the root of the configuration file.
type Config struct {
	Controller Controller       `yaml:"controller"`
	Task       Task             `yaml:"task"`
	Stage      CoordinateSystem `yaml:"stage"`
	Scanner    CoordinateSystem `yaml:"scanner"`
}

// Default is the configuration used when no file is given: a local
// controller with standard poll bounds and millimetre stage units.
func Default() *Config {
	return &Config{
		Controller: Controller{Host: "127.0.0.1", Port: 8000, SerialBaud: 115200},
		Task: Task{
			PollInterval: Duration(task.DefaultPollConfig.Interval),
			LoadTimeout:  Duration(task.DefaultPollConfig.LoadTimeout),
			StartTimeout: Duration(task.DefaultPollConfig.StartTimeout),
		},
		Stage:   CoordinateSystem{Unit: "mm"},
		Scanner: CoordinateSystem{Unit: "mm"},
	}
}

// Load reads a configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Controller.SerialPort == "" {
		if c.Controller.Host == "" {
			return fmt.Errorf("controller host must not be empty")
		}
		if c.Controller.Port <= 0 || c.Controller.Port > 65535 {
			return fmt.Errorf("controller port %d out of range", c.Controller.Port)
		}
	} else if c.Controller.SerialBaud <= 0 {
		return fmt.Errorf("serial baud rate %d out of range", c.Controller.SerialBaud)
	}
	if c.Task.PollInterval < 0 || c.Task.LoadTimeout < 0 || c.Task.StartTimeout < 0 {
		return fmt.Errorf("task timeouts must not be negative")
	}
	for _, cs := range []CoordinateSystem{c.Stage, c.Scanner} {
		if _, err := coord.ParseUnit(cs.Unit); err != nil {
			return err
		}
	}
	return nil
}
