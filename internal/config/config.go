package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"ouroboros/internal/carousel"
	"ouroboros/internal/domain"
	"ouroboros/internal/eventbus"
	"ouroboros/internal/paging"
)

// EnvPrefix prefixes environment overrides, e.g. OUROBOROS_CAROUSEL_ITEMS_PER_PAGE
const EnvPrefix = "OUROBOROS"

// MinItemWidth leaves room for a cell's border, padding and one column of text
const MinItemWidth = 5

// DeriveBuffer as carousel.buffer sizes the buffer from the page size and the viewport
const DeriveBuffer = -1

// ErrNotFound is returned by LoadFromPath when the file does not exist
var ErrNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Version    int              `toml:"version" mapstructure:"version"`
	Carousel   CarouselSettings `toml:"carousel" mapstructure:"carousel"`
	UISettings UISettings       `toml:"ui" mapstructure:"ui"`
	Items      []domain.Item    `toml:"items" mapstructure:"items"`
}

// CarouselSettings mirrors carousel.Config in file form
type CarouselSettings struct {
	ItemsPerPage     int    `toml:"items_per_page" mapstructure:"items_per_page"`
	Buffer           int    `toml:"buffer" mapstructure:"buffer"` // negative derives the buffer from the page size
	AutoPlay         bool   `toml:"autoplay" mapstructure:"autoplay"`
	AutoPlayInterval string `toml:"autoplay_interval" mapstructure:"autoplay_interval"`
	Alignment        string `toml:"alignment" mapstructure:"alignment"`
	StrictWrap       bool   `toml:"strict_wrap" mapstructure:"strict_wrap"`
	TrailingPage     bool   `toml:"trailing_page" mapstructure:"trailing_page"`
	ExemptKeyboard   bool   `toml:"exempt_keyboard" mapstructure:"exempt_keyboard"`
	Trigger          string `toml:"jump_trigger" mapstructure:"jump_trigger"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ItemWidth    int `toml:"item_width" mapstructure:"item_width"`
	ItemSpacing  int `toml:"item_spacing" mapstructure:"item_spacing"`
	AnimationFPS int `toml:"animation_fps" mapstructure:"animation_fps"` // 0 disables scroll animation
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	// Watch reloads the file on change and passes every valid result to callback.
	// The callback runs on the watcher goroutine.
	Watch(callback func(*Config)) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string

	mu sync.Mutex
	v  *viper.Viper
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "ouroboros", "config.toml")
}

// NewConfigService creates a config service for path, or DefaultPath when path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{
		bus:      eventbus.NullBus{},
		filePath: path,
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	if bus != nil {
		cs.bus = bus
	}
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the service's file. A missing file yields the
// defaults with environment overrides applied.
func (cs *configService) Load() (*Config, error) {
	v := newViper()
	if _, err := os.Stat(cs.filePath); err == nil {
		if err := readInto(v, cs.filePath); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	cs.mu.Lock()
	cs.v = v
	cs.mu.Unlock()

	cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, ItemCount: len(cfg.Items)})
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	v := newViper()
	if err := readInto(v, path); err != nil {
		return nil, err
	}
	return decode(v)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if config == nil {
		return errors.New("nil config")
	}
	if err := config.Validate(); err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (cs *configService) Watch(callback func(*Config)) error {
	cs.mu.Lock()
	v := cs.v
	cs.mu.Unlock()
	if v == nil || v.ConfigFileUsed() == "" {
		return fmt.Errorf("cannot watch %s: no config file loaded", cs.filePath)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		cs.mu.Lock()
		cfg, err := decode(v)
		cs.mu.Unlock()
		if err != nil {
			logrus.WithError(err).WithField("path", e.Name).Warn("Ignoring invalid config change")
			cs.bus.Publish(eventbus.ErrorEvent{Message: "config reload failed", Err: err})
			return
		}
		logrus.WithFields(logrus.Fields{
			"path":  e.Name,
			"op":    e.Op.String(),
			"items": len(cfg.Items),
		}).Info("Config changed")
		cs.bus.Publish(eventbus.ConfigChangedEvent{Path: e.Name, Items: cfg.Items})
		callback(cfg)
	})
	v.WatchConfig()
	return nil
}

// newViper returns a viper instance carrying the defaults and env overrides
func newViper() *viper.Viper {
	d := DefaultConfig()
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("version", d.Version)
	v.SetDefault("carousel.items_per_page", d.Carousel.ItemsPerPage)
	v.SetDefault("carousel.buffer", d.Carousel.Buffer)
	v.SetDefault("carousel.autoplay", d.Carousel.AutoPlay)
	v.SetDefault("carousel.autoplay_interval", d.Carousel.AutoPlayInterval)
	v.SetDefault("carousel.alignment", d.Carousel.Alignment)
	v.SetDefault("carousel.strict_wrap", d.Carousel.StrictWrap)
	v.SetDefault("carousel.trailing_page", d.Carousel.TrailingPage)
	v.SetDefault("carousel.exempt_keyboard", d.Carousel.ExemptKeyboard)
	v.SetDefault("carousel.jump_trigger", d.Carousel.Trigger)
	v.SetDefault("ui.item_width", d.UISettings.ItemWidth)
	v.SetDefault("ui.item_spacing", d.UISettings.ItemSpacing)
	v.SetDefault("ui.animation_fps", d.UISettings.AnimationFPS)
	return v
}

func readInto(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	// a file without an items table shows the sample deck; an explicit empty list stays empty
	if !v.IsSet("items") {
		cfg.Items = DefaultItems()
	}
	if cfg.Items == nil {
		cfg.Items = []domain.Item{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be corrected at runtime
func (c *Config) Validate() error {
	if _, err := c.CarouselConfig(); err != nil {
		return err
	}
	if c.UISettings.ItemWidth < MinItemWidth {
		return fmt.Errorf("invalid config: ui.item_width must be at least %d, got %d", MinItemWidth, c.UISettings.ItemWidth)
	}
	if c.UISettings.ItemSpacing < 0 {
		return fmt.Errorf("invalid config: ui.item_spacing must not be negative, got %d", c.UISettings.ItemSpacing)
	}
	if c.UISettings.AnimationFPS < 0 {
		return fmt.Errorf("invalid config: ui.animation_fps must not be negative, got %d", c.UISettings.AnimationFPS)
	}
	return nil
}

// Interval parses the auto-play interval
func (s CarouselSettings) Interval() (time.Duration, error) {
	d, err := time.ParseDuration(s.AutoPlayInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid config: carousel.autoplay_interval: %w", err)
	}
	return d, nil
}

// CarouselConfig converts the file settings into a validated carousel.Config
func (c *Config) CarouselConfig() (carousel.Config, error) {
	s := c.Carousel
	cc := carousel.DefaultConfig()
	cc.ItemsPerPage = s.ItemsPerPage
	cc.AutoPlay = s.AutoPlay
	cc.StrictWrap = s.StrictWrap
	cc.TrailingPage = s.TrailingPage
	cc.ExemptKeyboard = s.ExemptKeyboard
	switch {
	case s.Buffer >= 0:
		cc.BufferOverride = s.Buffer
	case s.Buffer == DeriveBuffer:
		cc.BufferOverride = -1
	default:
		return cc, fmt.Errorf("invalid config: carousel.buffer must be %d or at least 0, got %d", DeriveBuffer, s.Buffer)
	}

	interval, err := s.Interval()
	if err != nil {
		return cc, err
	}
	cc.AutoPlayInterval = interval

	if cc.Alignment, err = paging.ParseAlignment(s.Alignment); err != nil {
		return cc, fmt.Errorf("invalid config: carousel.alignment: %w", err)
	}
	if cc.Trigger, err = carousel.ParseTrigger(s.Trigger); err != nil {
		return cc, fmt.Errorf("invalid config: carousel.jump_trigger: %w", err)
	}
	if err := cc.Validate(); err != nil {
		return cc, fmt.Errorf("invalid config: %w", err)
	}
	return cc, nil
}

// DefaultItems returns the sample deck shown when no items are configured
func DefaultItems() []domain.Item {
	return []domain.Item{
		{Title: "Amber", Subtitle: "one", Color: "214"},
		{Title: "Jade", Subtitle: "two", Color: "36"},
		{Title: "Cobalt", Subtitle: "three", Color: "33"},
		{Title: "Violet", Subtitle: "four", Color: "99"},
		{Title: "Crimson", Subtitle: "five", Color: "160"},
		{Title: "Slate", Subtitle: "six", Color: "246"},
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Carousel: CarouselSettings{
			ItemsPerPage:     1,
			Buffer:           DeriveBuffer,
			AutoPlay:         false,
			AutoPlayInterval: "9s",
			Alignment:        paging.AlignCentered.String(),
			ExemptKeyboard:   true,
			Trigger:          carousel.TriggerFocus.String(),
		},
		UISettings: UISettings{
			ItemWidth:    24,
			ItemSpacing:  2,
			AnimationFPS: 60,
		},
		Items: DefaultItems(),
	}
}
