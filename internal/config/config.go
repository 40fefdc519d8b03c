// Package config loads game settings from defaults, an optional YAML file,
// PONG_ environment variables and command-line flags, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/plus3/pong/internal/logging"
	"github.com/plus3/pong/pong"
)

// Run modes.
const (
	ModeWindow   = "window"
	ModeTerminal = "terminal"
	ModeHeadless = "headless"
)

type Config struct {
	Mode  string `mapstructure:"mode" yaml:"mode"`
	Debug bool   `mapstructure:"debug" yaml:"debug"`
	// TPS is the number of simulation frames per second.
	TPS int `mapstructure:"tps" yaml:"tps"`
	// Duration bounds a headless run. Zero runs until interrupted.
	Duration time.Duration `mapstructure:"duration" yaml:"duration"`

	Field    Field               `mapstructure:"field" yaml:"field"`
	Rules    Rules               `mapstructure:"rules" yaml:"rules"`
	Window   Window              `mapstructure:"window" yaml:"window"`
	Terminal Terminal            `mapstructure:"terminal" yaml:"terminal"`
	Keys     map[string][]string `mapstructure:"-" yaml:"keys"`
	Log      logging.Options     `mapstructure:"log" yaml:"log"`
}

type Field struct {
	Width  float64 `mapstructure:"width" yaml:"width"`
	Height float64 `mapstructure:"height" yaml:"height"`
}

type Rules struct {
	BallRadius      float64 `mapstructure:"ball_radius" yaml:"ball_radius"`
	PaddleWidth     float64 `mapstructure:"paddle_width" yaml:"paddle_width"`
	PaddleHeight    float64 `mapstructure:"paddle_height" yaml:"paddle_height"`
	PaddleSpeed     float64 `mapstructure:"paddle_speed" yaml:"paddle_speed"`
	ServeX          float64 `mapstructure:"serve_x" yaml:"serve_x"`
	ServeY          float64 `mapstructure:"serve_y" yaml:"serve_y"`
	RampFactor      float64 `mapstructure:"ramp_factor" yaml:"ramp_factor"`
	MaxBallSpeed    float64 `mapstructure:"max_ball_speed" yaml:"max_ball_speed"`
	PaddleTolerance float64 `mapstructure:"paddle_tolerance" yaml:"paddle_tolerance"`
	WinScore        int     `mapstructure:"win_score" yaml:"win_score"`
}

type Window struct {
	Title string `mapstructure:"title" yaml:"title"`
	// Sprites are PNG paths. Empty paths use generated shapes.
	BallSprite   string `mapstructure:"ball_sprite" yaml:"ball_sprite"`
	PaddleSprite string `mapstructure:"paddle_sprite" yaml:"paddle_sprite"`
}

type Terminal struct {
	// Hold is how long a paddle key counts as held after its last press.
	Hold time.Duration `mapstructure:"hold" yaml:"hold"`
}

// PongRules converts the rules section.
func (c *Config) PongRules() pong.Rules {
	r := c.Rules
	return pong.Rules{
		BallRadius:      r.BallRadius,
		PaddleWidth:     r.PaddleWidth,
		PaddleHeight:    r.PaddleHeight,
		PaddleSpeed:     r.PaddleSpeed,
		ServeVelocity:   pong.Velocity{X: r.ServeX, Y: r.ServeY},
		RampFactor:      r.RampFactor,
		MaxBallSpeed:    r.MaxBallSpeed,
		PaddleTolerance: r.PaddleTolerance,
		WinScore:        r.WinScore,
	}
}

// Playfield converts the field section.
func (c *Config) Playfield() pong.Playfield {
	return pong.Playfield{Width: c.Field.Width, Height: c.Field.Height}
}

// Bindings converts the keys section, keyed by action name.
func (c *Config) Bindings() (pong.Bindings, error) {
	b := make(pong.Bindings, len(c.Keys))
	for name, keys := range c.Keys {
		action, err := pong.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("keys: %w", err)
		}
		b[action] = keys
	}
	return b, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Mode {
	case ModeWindow, ModeTerminal, ModeHeadless:
	default:
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps must be positive, got %d", c.TPS))
	}
	if c.Duration < 0 {
		errs = append(errs, fmt.Errorf("duration must not be negative, got %s", c.Duration))
	}
	if c.Terminal.Hold <= 0 {
		errs = append(errs, fmt.Errorf("terminal hold must be positive, got %s", c.Terminal.Hold))
	}

	rules := c.PongRules()
	if err := rules.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("rules: %w", err))
	}
	if err := c.Playfield().Validate(rules); err != nil {
		errs = append(errs, fmt.Errorf("field: %w", err))
	}

	if b, err := c.Bindings(); err != nil {
		errs = append(errs, err)
	} else if err := b.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("keys: %w", err))
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Dump renders c as YAML.
func (c *Config) Dump() ([]byte, error) {
	return yaml.Marshal(c)
}

func setDefaults(v *viper.Viper) {
	rules := pong.DefaultRules()
	field := pong.DefaultPlayfield()

	v.SetDefault("mode", ModeWindow)
	v.SetDefault("debug", false)
	v.SetDefault("tps", 60)
	v.SetDefault("duration", time.Duration(0))

	v.SetDefault("field.width", field.Width)
	v.SetDefault("field.height", field.Height)

	v.SetDefault("rules.ball_radius", rules.BallRadius)
	v.SetDefault("rules.paddle_width", rules.PaddleWidth)
	v.SetDefault("rules.paddle_height", rules.PaddleHeight)
	v.SetDefault("rules.paddle_speed", rules.PaddleSpeed)
	v.SetDefault("rules.serve_x", rules.ServeVelocity.X)
	v.SetDefault("rules.serve_y", rules.ServeVelocity.Y)
	v.SetDefault("rules.ramp_factor", rules.RampFactor)
	v.SetDefault("rules.max_ball_speed", rules.MaxBallSpeed)
	v.SetDefault("rules.paddle_tolerance", rules.PaddleTolerance)
	v.SetDefault("rules.win_score", rules.WinScore)

	v.SetDefault("window.title", "Pong")
	v.SetDefault("window.ball_sprite", "")
	v.SetDefault("window.paddle_sprite", "")
	v.SetDefault("terminal.hold", 150*time.Millisecond)

	for action, keys := range pong.DefaultBindings() {
		v.SetDefault("keys."+action.String(), keys)
	}

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
}

// RegisterFlags adds the command-line flags Loader understands to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("config", "c", "", "config file (default ./pong.yaml if present)")
	flags.StringP("mode", "m", ModeWindow, "run mode: window, terminal or headless")
	flags.Bool("debug", false, "show the Dear ImGui debug overlay (window mode)")
	flags.String("log-level", "info", "log level: trace, debug, info, warn, error")
	flags.Bool("print-config", false, "print the effective config as YAML and exit")
	flags.Duration("duration", 0, "stop a headless run after this long")
}

var flagKeys = map[string]string{
	"mode":      "mode",
	"debug":     "debug",
	"log-level": "log.level",
	"duration":  "duration",
}

// Loader reads Config from one viper instance. Keep the Loader to Watch the
// file after Load.
type Loader struct {
	fs afero.Fs
	v  *viper.Viper
}

// NewLoader reads config files from fs.
func NewLoader(fs afero.Fs) *Loader {
	v := viper.New()
	v.SetFs(fs)
	setDefaults(v)
	v.SetEnvPrefix("PONG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return &Loader{fs: fs, v: v}
}

// BindFlags lets flags registered with RegisterFlags override the file and
// environment. Unchanged flags do not override anything.
func (l *Loader) BindFlags(flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads path, or ./pong.yaml when path is empty, and returns the
// validated result. Only a missing ./pong.yaml falls back to defaults; an
// explicit path must exist.
func (l *Loader) Load(path string) (*Config, error) {
	if path != "" {
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName("pong")
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return l.decode()
}

// File returns the config file in use, if any.
func (l *Loader) File() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) decode() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Keys are read one action at a time so a file that rebinds one action
	// keeps the defaults of the others.
	cfg.Keys = make(map[string][]string)
	for _, action := range pong.Actions() {
		keys, err := cast.ToStringSliceE(l.v.Get("keys." + action.String()))
		if err != nil {
			return nil, fmt.Errorf("keys.%s: %w", action, err)
		}
		cfg.Keys[action.String()] = keys
	}
	for name, raw := range l.v.GetStringMap("keys") {
		if _, ok := cfg.Keys[name]; !ok {
			cfg.Keys[name] = cast.ToStringSlice(raw)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Watch re-reads the config file whenever it changes on disk and passes the
// result to fn. It does nothing when no file was loaded.
func (l *Loader) Watch(fn func(*Config, error)) {
	if l.v.ConfigFileUsed() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		fn(l.decode())
	})
	l.v.WatchConfig()
}
