package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Outputs     OutputsConfig     `yaml:"outputs"`
	Extraction  ExtractionConfig  `yaml:"extraction"`
	Narration   NarrationConfig   `yaml:"narration"`
	Timeline    TimelineConfig    `yaml:"timeline"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Render      RenderConfig      `yaml:"render"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type PathsConfig struct {
	Input           string `yaml:"input"`
	Output          string `yaml:"output"`
	Temp            string `yaml:"temp"`
	PlaceholderIcon string `yaml:"placeholder_icon"`
}

type OutputsConfig struct {
	DeckName   string `yaml:"deck_name"`
	VideoName  string `yaml:"video_name"`
	TempPrefix string `yaml:"temp_prefix"`
}

type ExtractionConfig struct {
	TargetSections  int `yaml:"target_sections"`
	MinSectionChars int `yaml:"min_section_chars"`
}

type NarrationConfig struct {
	Provider       string        `yaml:"provider"`
	SecondsPerWord float64       `yaml:"seconds_per_word"`
	Language       string        `yaml:"language"`
	Voice          string        `yaml:"voice"`
	Model          string        `yaml:"model"`
	Timeout        time.Duration `yaml:"timeout"`

	// APIKeys is populated from GEMINI_API_KEY, never from the YAML file.
	APIKeys []string `yaml:"-"`
}

type TimelineConfig struct {
	PadSeconds float64 `yaml:"pad_seconds"`
	ZoomFactor float64 `yaml:"zoom_factor"`
	FadeIn     float64 `yaml:"fade_in"`
	FadeOut    float64 `yaml:"fade_out"`
	FPS        int     `yaml:"fps"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
}

type FFmpegConfig struct {
	Binary       string `yaml:"binary"`
	Encoder      string `yaml:"encoder"`
	Preset       string `yaml:"preset"`
	CRF          int    `yaml:"crf"`
	AudioCodec   string `yaml:"audio_codec"`
	AudioBitrate string `yaml:"audio_bitrate"`
}

type RenderConfig struct {
	Mode           string        `yaml:"mode"`
	Timeout        time.Duration `yaml:"timeout"`
	DPI            int           `yaml:"dpi"`
	SofficeBinary  string        `yaml:"soffice_binary"`
	PdftoppmBinary string        `yaml:"pdftoppm_binary"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	// Format is "text" (timestamped lines) or "plain" (no timestamps, for supervisors that add their own)
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	// SynthesisWorkers > 1 synthesizes narration for several slides at once.
	SynthesisWorkers int `yaml:"synthesis_workers"`
	// MaxConcurrent bounds documents processed at once in watch mode.
	MaxConcurrent int `yaml:"max_concurrent"`
}

const (
	ProviderGemini     = "gemini"
	ProviderGTranslate = "gtranslate"
	ProviderSilent     = "silent"

	RenderManual      = "manual"
	RenderLibreOffice = "libreoffice"

	LogFormatText  = "text"
	LogFormatPlain = "plain"
)

// Load reads a YAML config file and validates it
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := seeded()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault behaves like Load but returns Default() when path does not exist
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Default returns a validated config with every default applied
func Default() *Config {
	cfg := seeded()
	// an empty config only ever fills defaults
	_ = cfg.Validate()
	return &cfg
}

// seeded holds defaults for fields where zero is a valid setting (no fade, no zoom).
// yaml leaves absent keys untouched, so only an explicit value replaces them.
func seeded() Config {
	return Config{
		Timeline: TimelineConfig{
			ZoomFactor: 0.1,
			FadeIn:     1.0,
			FadeOut:    1.0,
		},
	}
}

// LoadEnv reads secrets from the environment, loading envFile first when it exists.
// GEMINI_API_KEY may hold several comma-separated keys; they are rotated on quota errors.
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	c.Narration.APIKeys = nil
	for _, key := range strings.Split(os.Getenv("GEMINI_API_KEY"), ",") {
		if key = strings.TrimSpace(key); key != "" {
			c.Narration.APIKeys = append(c.Narration.APIKeys, key)
		}
	}

	if c.Narration.Provider == ProviderGemini && len(c.Narration.APIKeys) == 0 {
		return fmt.Errorf("narration.provider is %q but GEMINI_API_KEY is not set", ProviderGemini)
	}
	return nil
}

// Validate rejects impossible values and fills defaults for missing ones
func (c *Config) Validate() error {
	if c.Timeline.PadSeconds < 0 {
		return fmt.Errorf("timeline.pad_seconds must be positive")
	}
	if c.Timeline.ZoomFactor < 0 {
		return fmt.Errorf("timeline.zoom_factor must not be negative")
	}
	if c.Timeline.FadeIn < 0 || c.Timeline.FadeOut < 0 {
		return fmt.Errorf("timeline fades must not be negative")
	}
	if c.Timeline.FPS < 0 {
		return fmt.Errorf("timeline.fps must be positive")
	}
	if c.Narration.SecondsPerWord < 0 {
		return fmt.Errorf("narration.seconds_per_word must not be negative")
	}
	if c.Extraction.TargetSections < 0 {
		return fmt.Errorf("extraction.target_sections must not be negative")
	}

	switch c.Narration.Provider {
	case "":
		c.Narration.Provider = ProviderGTranslate
	case ProviderGemini, ProviderGTranslate, ProviderSilent:
	default:
		return fmt.Errorf("narration.provider %q is not one of gemini, gtranslate, silent", c.Narration.Provider)
	}

	switch c.Render.Mode {
	case "":
		c.Render.Mode = RenderManual
	case RenderManual, RenderLibreOffice:
	default:
		return fmt.Errorf("render.mode %q is not one of manual, libreoffice", c.Render.Mode)
	}

	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "output"
	}
	if c.Paths.PlaceholderIcon == "" {
		c.Paths.PlaceholderIcon = "assets/icon_default.png"
	}
	if c.Outputs.DeckName == "" {
		c.Outputs.DeckName = "slides.docx"
	}
	if c.Outputs.VideoName == "" {
		c.Outputs.VideoName = "video.mp4"
	}
	if c.Outputs.TempPrefix == "" {
		c.Outputs.TempPrefix = "doc2video-audio"
	}
	if c.Extraction.TargetSections == 0 {
		c.Extraction.TargetSections = 8
	}
	if c.Extraction.MinSectionChars == 0 {
		c.Extraction.MinSectionChars = 100
	}
	if c.Narration.SecondsPerWord == 0 {
		c.Narration.SecondsPerWord = 0.5
	}
	if c.Narration.Language == "" {
		c.Narration.Language = "en"
	}
	if c.Narration.Voice == "" {
		c.Narration.Voice = "Kore"
	}
	if c.Narration.Model == "" {
		c.Narration.Model = "gemini-2.5-flash-preview-tts"
	}
	if c.Narration.Timeout == 0 {
		c.Narration.Timeout = 30 * time.Second
	}
	if c.Timeline.PadSeconds == 0 {
		c.Timeline.PadSeconds = 1.0
	}
	if c.Timeline.FPS == 0 {
		c.Timeline.FPS = 24
	}
	if c.Timeline.Width == 0 {
		c.Timeline.Width = 1280
	}
	if c.Timeline.Height == 0 {
		c.Timeline.Height = 720
	}
	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.FFmpeg.Encoder == "" {
		c.FFmpeg.Encoder = "libx264"
	}
	if c.FFmpeg.Preset == "" {
		c.FFmpeg.Preset = "ultrafast"
	}
	if c.FFmpeg.CRF == 0 {
		c.FFmpeg.CRF = 23
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "aac"
	}
	if c.FFmpeg.AudioBitrate == "" {
		c.FFmpeg.AudioBitrate = "192k"
	}
	if c.Render.Timeout == 0 {
		c.Render.Timeout = 30 * time.Minute
	}
	if c.Render.DPI == 0 {
		c.Render.DPI = 150
	}
	if c.Render.SofficeBinary == "" {
		c.Render.SofficeBinary = "soffice"
	}
	if c.Render.PdftoppmBinary == "" {
		c.Render.PdftoppmBinary = "pdftoppm"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	switch c.Logging.Format {
	case "":
		c.Logging.Format = LogFormatText
	case LogFormatText, LogFormatPlain:
	default:
		return fmt.Errorf("logging.format %q is not one of text, plain", c.Logging.Format)
	}
	if c.Performance.SynthesisWorkers == 0 {
		c.Performance.SynthesisWorkers = 1
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}

	return nil
}
