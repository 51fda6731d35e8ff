package scene2d

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names a configuration encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Config is the configuration tree of a Render.
type Config struct {
	Scene       SceneConfig      `yaml:"scene" toml:"scene"`
	Viewports   []ViewportConfig `yaml:"viewports" toml:"viewport"`
	Axes        []AxisConfig     `yaml:"axes" toml:"axis"`
	Adaptors    []AdaptorConfig  `yaml:"adaptors" toml:"adaptor"`
	Connections []ConnectConfig  `yaml:"connections" toml:"connect"`
}

// SceneConfig describes the logical scene rectangle.
type SceneConfig struct {
	X            float64 `yaml:"x" toml:"x"`
	Y            float64 `yaml:"y" toml:"y"`
	Width        float64 `yaml:"width" toml:"width"`
	Height       float64 `yaml:"height" toml:"height"`
	Antialiasing bool    `yaml:"antialiasing" toml:"antialiasing"`
	// AspectRatio keeps the viewport aspect ratio when the device is resized.
	AspectRatio bool   `yaml:"aspectRatio" toml:"aspectRatio"`
	Background  string `yaml:"background" toml:"background"`
}

// ViewportConfig declares a named viewport.
type ViewportConfig struct {
	ID     string  `yaml:"id" toml:"id"`
	X      float64 `yaml:"x" toml:"x"`
	Y      float64 `yaml:"y" toml:"y"`
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// AxisConfig declares a named axis. Scale defaults to 1 when omitted.
type AxisConfig struct {
	ID        string   `yaml:"id" toml:"id"`
	Origin    float64  `yaml:"origin" toml:"origin"`
	Scale     *float64 `yaml:"scale" toml:"scale"`
	ScaleType string   `yaml:"scaleType" toml:"scaleType"`
}

// AdaptorConfig declares one adaptor. Config holds the type-specific
// settings and is decoded by the adaptor itself.
type AdaptorConfig struct {
	ID       string         `yaml:"id" toml:"id"`
	Type     string         `yaml:"type" toml:"type"`
	Object   string         `yaml:"object" toml:"object"`
	UID      string         `yaml:"uid" toml:"uid"`
	ZValue   float64        `yaml:"zValue" toml:"zValue"`
	Opacity  *float64       `yaml:"opacity" toml:"opacity"`
	XAxis    string         `yaml:"xAxis" toml:"xAxis"`
	YAxis    string         `yaml:"yAxis" toml:"yAxis"`
	Viewport string         `yaml:"viewport" toml:"viewport"`
	Config   map[string]any `yaml:"config" toml:"config"`
}

// Decode copies the adaptor's type-specific settings into dst, which should
// be a pointer to a struct with yaml tags. Missing settings leave dst as is.
func (c AdaptorConfig) Decode(dst any) error {
	if len(c.Config) == 0 {
		return nil
	}
	data, err := yaml.Marshal(c.Config)
	if err != nil {
		return fmt.Errorf("decode adaptor %q config: %w", c.ID, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return configErr("adaptor", c.ID, fmt.Errorf("decode config: %w", err))
	}
	return nil
}

// ConnectConfig declares a signal/slot connection. Endpoints are written
// "source/name": source is an adaptor id or a composite object key.
// When WaitForKey is set, the connection is held until that object key is
// present in the observed composite.
type ConnectConfig struct {
	WaitForKey string   `yaml:"waitForKey" toml:"waitForKey"`
	Signal     string   `yaml:"signal" toml:"signal"`
	Slots      []string `yaml:"slots" toml:"slots"`
}

// LoadConfig reads and validates a configuration file. The format is
// chosen by extension: .yaml/.yml or .toml.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	format, err := formatFromPath(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data, format)
}

func formatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("load config: unsupported extension %q", filepath.Ext(path))
}

// ParseConfig decodes and validates a configuration tree.
func ParseConfig(data []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("parse config: unknown format %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks mandatory attributes and id uniqueness.
func (c *Config) Validate() error {
	if c.Scene.Width < 0 || c.Scene.Height < 0 {
		return configErr("scene", "", fmt.Errorf("negative extent %vx%v", c.Scene.Width, c.Scene.Height))
	}

	viewports := make(map[string]bool)
	for _, vp := range c.Viewports {
		if vp.ID == "" {
			return configErr("viewport", "", fmt.Errorf("%w: id", ErrMissingAttribute))
		}
		if viewports[vp.ID] {
			return configErr("viewport", vp.ID, ErrDuplicateID)
		}
		if vp.Width < 0 || vp.Height < 0 {
			return configErr("viewport", vp.ID, fmt.Errorf("negative extent %vx%v", vp.Width, vp.Height))
		}
		viewports[vp.ID] = true
	}

	axes := make(map[string]bool)
	for _, ax := range c.Axes {
		if ax.ID == "" {
			return configErr("axis", "", fmt.Errorf("%w: id", ErrMissingAttribute))
		}
		if axes[ax.ID] {
			return configErr("axis", ax.ID, ErrDuplicateID)
		}
		if _, err := ParseScaleType(ax.ScaleType); err != nil {
			return configErr("axis", ax.ID, err)
		}
		axes[ax.ID] = true
	}

	adaptors := make(map[string]bool)
	for _, a := range c.Adaptors {
		if err := validateAdaptor(a, viewports, axes); err != nil {
			return err
		}
		if adaptors[a.ID] {
			return configErr("adaptor", a.ID, ErrDuplicateAdaptor)
		}
		adaptors[a.ID] = true
	}

	for _, cn := range c.Connections {
		if err := validateConnect(cn); err != nil {
			return err
		}
	}
	return nil
}

// checkAdaptorAttrs reports a missing id, type or object.
func checkAdaptorAttrs(a AdaptorConfig) error {
	switch {
	case a.ID == "":
		return configErr("adaptor", "", fmt.Errorf("%w: id", ErrMissingAttribute))
	case a.Type == "":
		return configErr("adaptor", a.ID, fmt.Errorf("%w: type", ErrMissingAttribute))
	case a.Object == "":
		return configErr("adaptor", a.ID, fmt.Errorf("%w: object", ErrMissingAttribute))
	}
	return nil
}

func validateAdaptor(a AdaptorConfig, viewports, axes map[string]bool) error {
	if err := checkAdaptorAttrs(a); err != nil {
		return err
	}
	if a.XAxis != "" && !axes[a.XAxis] {
		return configErr("adaptor", a.ID, fmt.Errorf("unknown x axis %q", a.XAxis))
	}
	if a.YAxis != "" && !axes[a.YAxis] {
		return configErr("adaptor", a.ID, fmt.Errorf("unknown y axis %q", a.YAxis))
	}
	if a.Viewport != "" && !viewports[a.Viewport] {
		return configErr("adaptor", a.ID, fmt.Errorf("unknown viewport %q", a.Viewport))
	}
	return nil
}

func validateConnect(cn ConnectConfig) error {
	if cn.Signal == "" {
		return configErr("connect", cn.WaitForKey, fmt.Errorf("%w: signal", ErrMissingAttribute))
	}
	if len(cn.Slots) == 0 {
		return configErr("connect", cn.Signal, fmt.Errorf("%w: slot", ErrMissingAttribute))
	}
	if _, _, err := splitEndpoint(cn.Signal); err != nil {
		return configErr("connect", cn.Signal, err)
	}
	for _, s := range cn.Slots {
		if _, _, err := splitEndpoint(s); err != nil {
			return configErr("connect", s, err)
		}
	}
	return nil
}

// splitEndpoint splits "source/name" into its two parts.
func splitEndpoint(ref string) (source, name string, err error) {
	i := strings.LastIndexByte(ref, '/')
	if i <= 0 || i == len(ref)-1 {
		return "", "", fmt.Errorf("%w: %q", ErrBadConnection, ref)
	}
	return ref[:i], ref[i+1:], nil
}
