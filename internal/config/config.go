package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Pipeline  PipelineConfig
	Providers ProvidersConfig
	Cache     CacheConfig
	Log       LogConfig
}

type PipelineConfig struct {
	RelevanceRadiusM     float64
	SideCenterThresholdM float64
	DupDistanceM         float64
	ProviderPriority     []string
	QualityLowThreshold  int
	SearchStepKm         float64
	SearchRadiusM        float64
}

type ProvidersConfig struct {
	Overpass OverpassConfig
	Mapbox   MapboxConfig
	HERE     HEREConfig
	Google   GoogleConfig
}

type OverpassConfig struct {
	BaseURL        string
	RequestTimeout int
	MinInterval    time.Duration
}

type MapboxConfig struct {
	BaseURL        string
	AccessToken    string
	RequestTimeout int
	MinInterval    time.Duration
}

type HEREConfig struct {
	BaseURL        string
	APIKey         string
	RequestTimeout int
	MinInterval    time.Duration
}

type GoogleConfig struct {
	BaseURL        string
	APIKey         string
	RequestTimeout int
	MinInterval    time.Duration
}

type CacheConfig struct {
	RouteCacheTTL     time.Duration
	RouteCacheCleanup time.Duration
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Pipeline: PipelineConfig{
			RelevanceRadiusM:     viper.GetFloat64("PIPELINE_RELEVANCE_RADIUS_M"),
			SideCenterThresholdM: viper.GetFloat64("PIPELINE_SIDE_CENTER_THRESHOLD_M"),
			DupDistanceM:         viper.GetFloat64("PIPELINE_DUP_DISTANCE_M"),
			ProviderPriority:     parseList(viper.GetString("PIPELINE_PROVIDER_PRIORITY")),
			QualityLowThreshold:  viper.GetInt("PIPELINE_QUALITY_LOW_THRESHOLD"),
			SearchStepKm:         viper.GetFloat64("PIPELINE_SEARCH_STEP_KM"),
			SearchRadiusM:        viper.GetFloat64("PIPELINE_SEARCH_RADIUS_M"),
		},
		Providers: ProvidersConfig{
			Overpass: OverpassConfig{
				BaseURL:        viper.GetString("OVERPASS_BASE_URL"),
				RequestTimeout: viper.GetInt("OVERPASS_REQUEST_TIMEOUT"),
				MinInterval:    time.Duration(viper.GetInt("OVERPASS_MIN_INTERVAL_MS")) * time.Millisecond,
			},
			Mapbox: MapboxConfig{
				BaseURL:        viper.GetString("MAPBOX_BASE_URL"),
				AccessToken:    viper.GetString("MAPBOX_ACCESS_TOKEN"),
				RequestTimeout: viper.GetInt("MAPBOX_REQUEST_TIMEOUT"),
				MinInterval:    time.Duration(viper.GetInt("MAPBOX_MIN_INTERVAL_MS")) * time.Millisecond,
			},
			HERE: HEREConfig{
				BaseURL:        viper.GetString("HERE_BASE_URL"),
				APIKey:         viper.GetString("HERE_API_KEY"),
				RequestTimeout: viper.GetInt("HERE_REQUEST_TIMEOUT"),
				MinInterval:    time.Duration(viper.GetInt("HERE_MIN_INTERVAL_MS")) * time.Millisecond,
			},
			Google: GoogleConfig{
				BaseURL:        viper.GetString("GOOGLE_BASE_URL"),
				APIKey:         viper.GetString("GOOGLE_API_KEY"),
				RequestTimeout: viper.GetInt("GOOGLE_REQUEST_TIMEOUT"),
				MinInterval:    time.Duration(viper.GetInt("GOOGLE_MIN_INTERVAL_MS")) * time.Millisecond,
			},
		},
		Cache: CacheConfig{
			RouteCacheTTL:     time.Duration(viper.GetInt("ROUTE_CACHE_TTL")) * time.Second,
			RouteCacheCleanup: time.Duration(viper.GetInt("ROUTE_CACHE_CLEANUP")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults устанавливает значения по умолчанию для незаданных опций
func applyDefaults(cfg *Config) {
	if cfg.Pipeline.RelevanceRadiusM == 0 {
		cfg.Pipeline.RelevanceRadiusM = 1000
	}
	if cfg.Pipeline.SideCenterThresholdM == 0 {
		cfg.Pipeline.SideCenterThresholdM = 50
	}
	if cfg.Pipeline.DupDistanceM == 0 {
		cfg.Pipeline.DupDistanceM = 50
	}
	if len(cfg.Pipeline.ProviderPriority) == 0 {
		cfg.Pipeline.ProviderPriority = []string{"here", "google", "osm", "mapbox"}
	}
	if cfg.Pipeline.QualityLowThreshold == 0 {
		cfg.Pipeline.QualityLowThreshold = 40
	}
	if cfg.Pipeline.SearchStepKm == 0 {
		cfg.Pipeline.SearchStepKm = 25
	}
	if cfg.Pipeline.SearchRadiusM == 0 {
		cfg.Pipeline.SearchRadiusM = 5000
	}

	if cfg.Providers.Overpass.BaseURL == "" {
		cfg.Providers.Overpass.BaseURL = "https://overpass-api.de"
	}
	if cfg.Providers.Mapbox.BaseURL == "" {
		cfg.Providers.Mapbox.BaseURL = "https://api.mapbox.com"
	}
	if cfg.Providers.HERE.BaseURL == "" {
		cfg.Providers.HERE.BaseURL = "https://browse.search.hereapi.com"
	}
	if cfg.Providers.Google.BaseURL == "" {
		cfg.Providers.Google.BaseURL = "https://maps.googleapis.com"
	}

	for _, timeout := range []*int{
		&cfg.Providers.Overpass.RequestTimeout,
		&cfg.Providers.Mapbox.RequestTimeout,
		&cfg.Providers.HERE.RequestTimeout,
		&cfg.Providers.Google.RequestTimeout,
	} {
		if *timeout == 0 {
			*timeout = 30
		}
	}

	if cfg.Cache.RouteCacheTTL == 0 {
		cfg.Cache.RouteCacheTTL = 10 * time.Minute
	}
	if cfg.Cache.RouteCacheCleanup == 0 {
		cfg.Cache.RouteCacheCleanup = 30 * time.Minute
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
