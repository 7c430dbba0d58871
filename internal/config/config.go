package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/wcatz/gridboard/internal/board"
	"github.com/wcatz/gridboard/internal/grid"
	"github.com/wcatz/gridboard/internal/layout"
	"github.com/wcatz/gridboard/internal/registry"
)

// Format is a config file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a file extension. Anything that is not
// .toml is read as YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Store backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// BoardConfig holds grid geometry.
type BoardConfig struct {
	Name       string `yaml:"name" toml:"name"`
	Cols       int    `yaml:"cols" toml:"cols"`
	MinRows    int    `yaml:"min_rows" toml:"min_rows"`
	DragMargin int    `yaml:"drag_margin" toml:"drag_margin"`
}

// ThrottleConfig holds the minimum interval between processed hover events.
type ThrottleConfig struct {
	Pointer time.Duration `yaml:"pointer" toml:"pointer"`
	Touch   time.Duration `yaml:"touch" toml:"touch"`
}

// RedisConfig configures the redis store.
type RedisConfig struct {
	Addr     string `yaml:"addr" toml:"addr"`
	Password string `yaml:"password" toml:"password"`
	DB       int    `yaml:"db" toml:"db"`
	Prefix   string `yaml:"prefix" toml:"prefix"`
}

// MongoConfig configures the mongo store.
type MongoConfig struct {
	URI        string `yaml:"uri" toml:"uri"`
	Database   string `yaml:"database" toml:"database"`
	Collection string `yaml:"collection" toml:"collection"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	Backend string      `yaml:"backend" toml:"backend"`
	Dir     string      `yaml:"dir" toml:"dir"`
	Redis   RedisConfig `yaml:"redis" toml:"redis"`
	Mongo   MongoConfig `yaml:"mongo" toml:"mongo"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// WidgetDef is a widget type in the registry.
type WidgetDef struct {
	W     int         `yaml:"w" toml:"w"`
	H     int         `yaml:"h" toml:"h"`
	Props board.Props `yaml:"props,omitempty" toml:"props,omitempty"`
}

// LayoutEntry is one widget of the built-in default board. Zero sizes use
// the registry default.
type LayoutEntry struct {
	Type  string      `yaml:"type" toml:"type"`
	W     int         `yaml:"w,omitempty" toml:"w,omitempty"`
	H     int         `yaml:"h,omitempty" toml:"h,omitempty"`
	Props board.Props `yaml:"props,omitempty" toml:"props,omitempty"`
}

// Config holds the entire configuration.
type Config struct {
	Board         BoardConfig          `yaml:"board" toml:"board"`
	Throttle      ThrottleConfig       `yaml:"throttle" toml:"throttle"`
	Store         StoreConfig          `yaml:"store" toml:"store"`
	Server        ServerConfig         `yaml:"server" toml:"server"`
	Widgets       map[string]WidgetDef `yaml:"widgets" toml:"widgets"`
	DefaultLayout []LayoutEntry        `yaml:"default_layout" toml:"default_layout"`

	widgetOrder []string
}

// Load reads and parses a config file. overrides replaces individual
// settings after parsing; recognised keys are "board", "addr", "store" and "dir".
func Load(path string, overrides map[string]string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	c, err := LoadFromBytes(data, FormatFor(path))
	if err != nil {
		return nil, err
	}
	c.applyOverrides(overrides)
	return c, nil
}

// LoadFromBytes parses a config from raw bytes (for validation).
func LoadFromBytes(data []byte, format Format) (*Config, error) {
	var c Config
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&c)
		if err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		c.widgetOrder = tomlWidgetOrder(md)
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
		c.widgetOrder = parseWidgetKeyOrder(data)
	}

	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Default returns a config with every default applied and an empty registry.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Board.Name == "" {
		c.Board.Name = "default"
	}
	if c.Board.Cols <= 0 {
		c.Board.Cols = layout.DefaultCols
	}
	if c.Board.MinRows <= 0 {
		c.Board.MinRows = layout.DefaultMinRows
	}
	if c.Board.DragMargin == 0 {
		c.Board.DragMargin = layout.DefaultDragMargin
	}
	if c.Throttle.Pointer <= 0 {
		c.Throttle.Pointer = layout.DefaultPointerInterval
	}
	if c.Throttle.Touch <= 0 {
		c.Throttle.Touch = layout.DefaultTouchInterval
	}
	if c.Store.Backend == "" {
		c.Store.Backend = BackendFile
	}
	if c.Store.Dir == "" {
		c.Store.Dir = "./boards"
	}
	if c.Store.Redis.Addr == "" {
		c.Store.Redis.Addr = "localhost:6379"
	}
	if c.Store.Redis.Prefix == "" {
		c.Store.Redis.Prefix = "gridboard:"
	}
	if c.Store.Mongo.URI == "" {
		c.Store.Mongo.URI = "mongodb://localhost:27017"
	}
	if c.Store.Mongo.Database == "" {
		c.Store.Mongo.Database = "gridboard"
	}
	if c.Store.Mongo.Collection == "" {
		c.Store.Mongo.Collection = "boards"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Widgets == nil {
		c.Widgets = make(map[string]WidgetDef)
	}
}

// Validate rejects settings the rest of the program cannot work with.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendRedis, BackendMongo, BackendMemory:
	default:
		return fmt.Errorf("unknown store backend '%s'", c.Store.Backend)
	}
	for name, def := range c.Widgets {
		if def.W < 1 || def.H < 1 {
			return fmt.Errorf("widget type '%s': size must be at least 1x1, got %dx%d", name, def.W, def.H)
		}
	}
	for i, e := range c.DefaultLayout {
		if _, ok := c.Widgets[e.Type]; !ok {
			return fmt.Errorf("default_layout[%d]: widget type '%s' not defined in config", i, e.Type)
		}
	}
	return nil
}

func (c *Config) applyOverrides(overrides map[string]string) {
	if v := overrides["board"]; v != "" {
		c.Board.Name = v
	}
	if v := overrides["addr"]; v != "" {
		c.Server.Addr = v
	}
	if v := overrides["store"]; v != "" {
		c.Store.Backend = v
	}
	if v := overrides["dir"]; v != "" {
		c.Store.Dir = v
	}
}

// WidgetOrder returns widget type names in the order they appear in the file.
func (c *Config) WidgetOrder() []string {
	seen := make(map[string]bool, len(c.Widgets))
	var order []string
	for _, name := range c.widgetOrder {
		if _, ok := c.Widgets[name]; ok && !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}
	// Types added after parsing go last, sorted for determinism.
	var rest []string
	for name := range c.Widgets {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// Registry builds the widget type registry.
func (c *Config) Registry() *registry.Static[board.Props] {
	r := registry.NewStatic[board.Props]()
	for _, name := range c.WidgetOrder() {
		def := c.Widgets[name]
		r.Register(name, registry.Default[board.Props]{W: def.W, H: def.H, Props: def.Props})
	}
	return r
}

// DefaultBoard lays out default_layout in reading order. It is the board
// used when nothing valid has been stored yet.
func (c *Config) DefaultBoard(ids grid.IDGenerator) []board.Widget {
	flow := grid.NewFlow(c.Board.Cols)
	widgets := make([]board.Widget, 0, len(c.DefaultLayout))
	for _, e := range c.DefaultLayout {
		def, ok := c.Widgets[e.Type]
		if !ok {
			continue
		}
		w, h := def.W, def.H
		if e.W > 0 {
			w = e.W
		}
		if e.H > 0 {
			h = e.H
		}
		props := board.CloneProps(def.Props)
		for k, v := range e.Props {
			if props == nil {
				props = board.Props{}
			}
			props[k] = v
		}
		widgets = append(widgets, board.Widget{
			ID:     ids.Next(),
			Type:   e.Type,
			Props:  props,
			Layout: flow.Place(w, h),
		})
	}
	return widgets
}

// ControllerOptions returns layout options derived from the config. The
// caller fills in Persist, IDs and Fallback.
func (c *Config) ControllerOptions() layout.Options[board.Props] {
	return layout.Options[board.Props]{
		Cols:            c.Board.Cols,
		MinRows:         c.Board.MinRows,
		DragMargin:      c.Board.DragMargin,
		PointerInterval: c.Throttle.Pointer,
		TouchInterval:   c.Throttle.Touch,
		Registry:        c.Registry(),
		CloneProps:      board.CloneProps,
	}
}

// parseWidgetKeyOrder extracts widget key ordering from raw YAML.
func parseWidgetKeyOrder(data []byte) []string {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil
	}
	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 {
		return nil
	}
	root := node.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}
	widgets := findMappingKey(root, "widgets")
	if widgets == nil || widgets.Kind != yaml.MappingNode {
		return nil
	}
	var order []string
	for j := 0; j < len(widgets.Content)-1; j += 2 {
		order = append(order, widgets.Content[j].Value)
	}
	return order
}

// tomlWidgetOrder reads the [widgets.<name>] table order from decode metadata.
func tomlWidgetOrder(md toml.MetaData) []string {
	seen := make(map[string]bool)
	var order []string
	for _, key := range md.Keys() {
		if len(key) < 2 || key[0] != "widgets" || seen[key[1]] {
			continue
		}
		seen[key[1]] = true
		order = append(order, key[1])
	}
	return order
}
