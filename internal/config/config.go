package config

import (
	"fmt"
	"image/color"
	"math"
	"os"

	css "github.com/mazznoer/csscolorparser"
	"gopkg.in/yaml.v3"
)

type Recipient struct {
	Name string `yaml:"name"`
	Age  int    `yaml:"age"`
}

type Viewport struct {
	Height float64 `yaml:"height"` // px
}

type PageLayout struct {
	TopOffset   float64 `yaml:"top_offset"`
	EntryHeight float64 `yaml:"entry_height"`
	Gap         float64 `yaml:"gap"`
	LastPad     float64 `yaml:"last_pad"`
}

type Assistant struct {
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"` // env var holding the key, e.g. GEMINI_API_KEY
	TimeoutMs int    `yaml:"timeout_ms"`
	Prompt    string `yaml:"prompt,omitempty"` // text/template; empty uses the built-in prompt
}

type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0..1
	BPM     float64 `yaml:"bpm"`
}

// Theme holds CSS color strings ("#22c55e", "rgb(239,68,68)", "gold").
type Theme struct {
	Completed string `yaml:"completed"`
	Current   string `yaml:"current"`
	Pending   string `yaml:"pending"`
	Warning   string `yaml:"warning"`
	Accent    string `yaml:"accent"`
}

type Config struct {
	Recipient Recipient `yaml:"recipient"`
	OrderID   string    `yaml:"order_id"`
	ETA       string    `yaml:"eta"`
	Addr      string    `yaml:"addr"`
	FPS       int       `yaml:"fps"`
	SplashMs  int       `yaml:"splash_ms"`

	Viewport  Viewport   `yaml:"viewport"`
	Layout    PageLayout `yaml:"layout"`
	Assistant Assistant  `yaml:"assistant"`
	Audio     Audio      `yaml:"audio"`
	Theme     Theme      `yaml:"theme"`

	TrackingFile string `yaml:"tracking_file,omitempty"`
}

// Defaults mirrors the original page: Ivan, nine, ETA 06.01 - 09.01.
func Defaults() *Config {
	return &Config{
		Recipient: Recipient{Name: "Иван", Age: 9},
		OrderID:   "SANTA-IVAN-2026-X",
		ETA:       "06.01 - 09.01",
		Addr:      ":8080",
		FPS:       60,
		SplashMs:  2500,
		Viewport:  Viewport{Height: 900},
		Layout:    PageLayout{TopOffset: 1400, EntryHeight: 420, Gap: 24, LastPad: 240},
		Assistant: Assistant{Model: "gemini-3-flash-preview", APIKeyEnv: "GEMINI_API_KEY", TimeoutMs: 15000},
		Audio:     Audio{Enabled: true, Volume: 0.5, BPM: 150},
		Theme: Theme{
			Completed: "#22c55e",
			Current:   "#facc15",
			Pending:   "#6b7280",
			Warning:   "#ef4444",
			Accent:    "#a855f7",
		},
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Merge fills every zero field of c from d and returns c.
func (c *Config) Merge(d *Config) *Config {
	if c.Recipient.Name == "" {
		c.Recipient.Name = d.Recipient.Name
	}
	c.Recipient.Age = firstNonZeroInt(c.Recipient.Age, d.Recipient.Age)
	c.OrderID = firstNonEmpty(c.OrderID, d.OrderID)
	c.ETA = firstNonEmpty(c.ETA, d.ETA)
	c.Addr = firstNonEmpty(c.Addr, d.Addr)
	c.FPS = firstNonZeroInt(c.FPS, d.FPS)
	c.SplashMs = firstNonZeroInt(c.SplashMs, d.SplashMs)
	c.Viewport.Height = firstNonZeroFloat(c.Viewport.Height, d.Viewport.Height)

	c.Layout.TopOffset = firstNonZeroFloat(c.Layout.TopOffset, d.Layout.TopOffset)
	c.Layout.EntryHeight = firstNonZeroFloat(c.Layout.EntryHeight, d.Layout.EntryHeight)
	c.Layout.Gap = firstNonZeroFloat(c.Layout.Gap, d.Layout.Gap)
	c.Layout.LastPad = firstNonZeroFloat(c.Layout.LastPad, d.Layout.LastPad)

	c.Assistant.Model = firstNonEmpty(c.Assistant.Model, d.Assistant.Model)
	c.Assistant.APIKeyEnv = firstNonEmpty(c.Assistant.APIKeyEnv, d.Assistant.APIKeyEnv)
	c.Assistant.TimeoutMs = firstNonZeroInt(c.Assistant.TimeoutMs, d.Assistant.TimeoutMs)
	c.Assistant.Prompt = firstNonEmpty(c.Assistant.Prompt, d.Assistant.Prompt)

	c.Audio.Volume = firstNonZeroFloat(c.Audio.Volume, d.Audio.Volume)
	c.Audio.BPM = firstNonZeroFloat(c.Audio.BPM, d.Audio.BPM)

	c.Theme.Completed = firstNonEmpty(c.Theme.Completed, d.Theme.Completed)
	c.Theme.Current = firstNonEmpty(c.Theme.Current, d.Theme.Current)
	c.Theme.Pending = firstNonEmpty(c.Theme.Pending, d.Theme.Pending)
	c.Theme.Warning = firstNonEmpty(c.Theme.Warning, d.Theme.Warning)
	c.Theme.Accent = firstNonEmpty(c.Theme.Accent, d.Theme.Accent)

	c.TrackingFile = firstNonEmpty(c.TrackingFile, d.TrackingFile)
	return c
}

// Palette is a parsed Theme.
type Palette struct {
	Completed, Current, Pending, Warning, Accent color.NRGBA
}

// Palette parses every theme color; the first bad one is reported.
func (t Theme) Palette() (Palette, error) {
	var p Palette
	for _, f := range []struct {
		name string
		src  string
		dst  *color.NRGBA
	}{
		{"completed", t.Completed, &p.Completed},
		{"current", t.Current, &p.Current},
		{"pending", t.Pending, &p.Pending},
		{"warning", t.Warning, &p.Warning},
		{"accent", t.Accent, &p.Accent},
	} {
		c, err := ParseColor(f.src)
		if err != nil {
			return Palette{}, fmt.Errorf("theme.%s: %w", f.name, err)
		}
		*f.dst = c
	}
	return p, nil
}

func ParseColor(str string) (color.NRGBA, error) {
	c, err := css.Parse(str)
	if err != nil {
		return color.NRGBA{}, err
	}
	return color.NRGBA{
		R: uint8(math.Round(255 * c.R)),
		G: uint8(math.Round(255 * c.G)),
		B: uint8(math.Round(255 * c.B)),
		A: uint8(math.Round(255 * c.A)),
	}, nil
}

// Hex formats c as #RRGGBB for the page stylesheet.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func firstNonZeroFloat(v, fallback float64) float64 {
	if v != 0 {
		return v
	}
	return fallback
}

func firstNonZeroInt(v, fallback int) int {
	if v != 0 {
		return v
	}
	return fallback
}

func firstNonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
