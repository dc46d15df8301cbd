package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"smartwaste/dashboard/models"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host           string   `yaml:"host"`
		Port           string   `yaml:"port"`
		GinMode        string   `yaml:"gin_mode"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Map struct {
		CenterLat float64 `yaml:"center_lat"`
		CenterLon float64 `yaml:"center_lon"`
		Zoom      int     `yaml:"zoom"`
		Width     int     `yaml:"width"`
		Height    int     `yaml:"height"`
		TileURL   string  `yaml:"tile_url"`
	} `yaml:"map"`
	RateLimit struct {
		PerMinute int `yaml:"per_minute"`
	} `yaml:"rate_limit"`
}

const (
	defaultHost      = "0.0.0.0"
	defaultPort      = "8080"
	defaultGinMode   = "release"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultCenterLat = 40.7138
	defaultCenterLon = -74.0060
	defaultZoom      = 13
	defaultWidth     = 700
	defaultHeight    = 400
	defaultTileURL   = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	defaultRateLimit = 120
)

// Load reads the optional YAML file at path, then applies environment
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.Server.GinMode = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = parseList(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("MAP_TILE_URL"); v != "" {
		cfg.Map.TileURL = v
	}

	var err error
	if cfg.Map.CenterLat, err = getEnvAsFloat("MAP_CENTER_LAT", cfg.Map.CenterLat); err != nil {
		return err
	}
	if cfg.Map.CenterLon, err = getEnvAsFloat("MAP_CENTER_LON", cfg.Map.CenterLon); err != nil {
		return err
	}
	if cfg.Map.Zoom, err = getEnvAsInt("MAP_ZOOM", cfg.Map.Zoom); err != nil {
		return err
	}
	if cfg.RateLimit.PerMinute, err = getEnvAsInt("RATE_LIMIT_PER_MINUTE", cfg.RateLimit.PerMinute); err != nil {
		return err
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = defaultHost
	}
	if cfg.Server.Port == "" {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.GinMode == "" {
		cfg.Server.GinMode = defaultGinMode
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaultLogFormat
	}
	if cfg.Map.CenterLat == 0 && cfg.Map.CenterLon == 0 {
		cfg.Map.CenterLat = defaultCenterLat
		cfg.Map.CenterLon = defaultCenterLon
	}
	if cfg.Map.Zoom == 0 {
		cfg.Map.Zoom = defaultZoom
	}
	if cfg.Map.Width == 0 {
		cfg.Map.Width = defaultWidth
	}
	if cfg.Map.Height == 0 {
		cfg.Map.Height = defaultHeight
	}
	if cfg.Map.TileURL == "" {
		cfg.Map.TileURL = defaultTileURL
	}
	if cfg.RateLimit.PerMinute == 0 {
		cfg.RateLimit.PerMinute = defaultRateLimit
	}
}

// Addr is the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// MapSettings converts the map section to the render settings.
func (c *Config) MapSettings() models.MapSettings {
	return models.MapSettings{
		Center: models.Point{Lat: c.Map.CenterLat, Lon: c.Map.CenterLon},
		Zoom:   c.Map.Zoom,
		Width:  c.Map.Width,
		Height: c.Map.Height,
	}
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}

func getEnvAsInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func parseList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
