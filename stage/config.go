package stage

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ConfigPath is where native builds look for overrides, relative to the
// working directory.
const ConfigPath = "stage.toml"

type Config struct {
	Speed       float32         `toml:"speed"`
	Keys        KeyMap          `toml:"keys"`
	Character   CharacterConfig `toml:"character"`
	Video       VideoConfig     `toml:"video"`
	Camera      CameraConfig    `toml:"camera"`
	Light       LightConfig     `toml:"light"`
	Grid        GridConfig      `toml:"grid"`
	Chase       ChaseConfig     `toml:"chase"`
	LoadTimeout Duration        `toml:"load_timeout"`
}

type CharacterConfig struct {
	Path  string     `toml:"path"`  // glTF model served to the web build
	Asset string     `toml:"asset"` // converted model for the native build
	Spawn [3]float32 `toml:"spawn"`
}

type VideoConfig struct {
	ID       string     `toml:"id"`
	Width    float32    `toml:"width"`
	Height   float32    `toml:"height"`
	Position [3]float32 `toml:"position"`
	Scale    [3]float32 `toml:"scale"`
}

type CameraConfig struct {
	FoV      float32    `toml:"fov"` // vertical, degrees
	Near     float32    `toml:"near"`
	Far      float32    `toml:"far"`
	Position [3]float32 `toml:"position"`
	Target   [3]float32 `toml:"target"`
}

type LightConfig struct {
	Position         [3]float32 `toml:"position"`
	Intensity        float32    `toml:"intensity"`
	AmbientIntensity float32    `toml:"ambient_intensity"`
}

type GridConfig struct {
	Size      int `toml:"size"`
	Divisions int `toml:"divisions"`
}

// ChaseConfig enables a third-person camera that trails the character.
type ChaseConfig struct {
	Enabled bool       `toml:"enabled"`
	Offset  [3]float32 `toml:"offset"`
}

// Duration is a time.Duration written as a string such as "30s".
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func DefaultConfig() Config {
	return Config{
		Speed: DefaultSpeed,
		Keys:  DefaultKeyMap(),
		Character: CharacterConfig{
			Path:  "/gl/char/SimplePeople2_Barista.glb",
			Asset: "character.dat",
			Spawn: [3]float32{0, 0, 10},
		},
		Video: VideoConfig{
			ID:     "dQw4w9WgXcQ",
			Width:  800,
			Height: 450,
			Scale:  [3]float32{0.05, 0.05, 1},
		},
		Camera: CameraConfig{
			FoV:      75,
			Near:     0.1,
			Far:      2000,
			Position: [3]float32{0, 50, 50},
		},
		Light: LightConfig{
			Position:         [3]float32{0, 50, 100},
			Intensity:        1.0,
			AmbientIntensity: 0.25,
		},
		Grid: GridConfig{
			Size:      100,
			Divisions: 100,
		},
		Chase: ChaseConfig{
			Offset: [3]float32{0, 20, 20},
		},
		LoadTimeout: Duration(30 * time.Second),
	}
}

// LoadConfig reads a TOML file over the defaults. A missing file yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case !positive(c.Speed):
		return fmt.Errorf("%w: speed must be positive", ErrInvalidConfig)
	case c.Character.Path == "":
		return fmt.Errorf("%w: character path is empty", ErrInvalidConfig)
	case !finite(c.Character.Spawn[:]...):
		return fmt.Errorf("%w: character spawn", ErrInvalidConfig)
	case !positive(c.Video.Width) || !positive(c.Video.Height):
		return fmt.Errorf("%w: video size must be positive", ErrInvalidConfig)
	case !finite(c.Video.Position[:]...) || !finite(c.Video.Scale[:]...):
		return fmt.Errorf("%w: video placement", ErrInvalidConfig)
	case !positive(c.Camera.FoV) || c.Camera.FoV >= 180:
		return fmt.Errorf("%w: camera fov out of range", ErrInvalidConfig)
	case !positive(c.Camera.Near) || !positive(c.Camera.Far) || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: camera clip planes", ErrInvalidConfig)
	case !finite(c.Camera.Position[:]...) || !finite(c.Camera.Target[:]...):
		return fmt.Errorf("%w: camera placement", ErrInvalidConfig)
	case !finite(c.Light.Position[:]...) || !finite(c.Light.Intensity, c.Light.AmbientIntensity):
		return fmt.Errorf("%w: light", ErrInvalidConfig)
	case !finite(c.Chase.Offset[:]...):
		return fmt.Errorf("%w: chase offset", ErrInvalidConfig)
	case c.Grid.Size <= 0 || c.Grid.Divisions <= 0:
		return fmt.Errorf("%w: grid size", ErrInvalidConfig)
	case c.LoadTimeout <= 0:
		return fmt.Errorf("%w: load timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

// positive rejects NaN and infinity along with zero and negatives.
func positive(v float32) bool {
	return v > 0 && finite(v)
}

func finite(values ...float32) bool {
	for _, v := range values {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// ApplyParams overrides settings from page URL query parameters:
// video, speed, model and chase.
func (c *Config) ApplyParams(params url.Values) error {
	if v := params.Get("video"); v != "" {
		c.Video.ID = v
	}
	if v := params.Get("model"); v != "" {
		c.Character.Path = v
	}
	if v := params.Get("speed"); v != "" {
		speed, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("%w: speed %q: %w", ErrInvalidConfig, v, err)
		}
		c.Speed = float32(speed)
	}
	if v := params.Get("chase"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: chase %q: %w", ErrInvalidConfig, v, err)
		}
		c.Chase.Enabled = enabled
	}
	return c.Validate()
}
