// Package config loads the matchview configuration file and exposes
// typed accessors for each subsystem's settings.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// PlaybackConfig holds the transport timing parameters.
type PlaybackConfig struct {
	SampleRate    float64       `json:"sampleRate" mapstructure:"sampleRate"`
	FastForward   float64       `json:"fastForward" mapstructure:"fastForward"`
	Rewind        float64       `json:"rewind" mapstructure:"rewind"`
	HoldThreshold time.Duration `json:"holdThreshold" mapstructure:"holdThreshold"`
	PlayerCount   int           `json:"playerCount" mapstructure:"playerCount"`
}

// DisplayConfig holds presentation sizing for the renderer.
type DisplayConfig struct {
	PlayerRadius  float64 `json:"playerRadius" mapstructure:"playerRadius"`
	BallRadius    float64 `json:"ballRadius" mapstructure:"ballRadius"`
	BallMaxRadius float64 `json:"ballMaxRadius" mapstructure:"ballMaxRadius"`
	Columns       int     `json:"columns" mapstructure:"columns"`
	Rows          int     `json:"rows" mapstructure:"rows"`
}

// SourceConfig selects and parameterizes the timeline source.
type SourceConfig struct {
	Type        string `json:"type" mapstructure:"type"` // json, sqlite, postgres, tracking, remote
	Path        string `json:"path" mapstructure:"path"` // file path, or URL for remote
	RecordingID uint   `json:"recordingId" mapstructure:"recordingId"`
	APIKey      string `json:"apiKey" mapstructure:"apiKey"`
}

// InfluxConfig holds the optional playback telemetry sink settings.
type InfluxConfig struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
	Protocol string `json:"protocol" mapstructure:"protocol"`
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Token    string `json:"token" mapstructure:"token"`
	Org      string `json:"org" mapstructure:"org"`
	Bucket   string `json:"bucket" mapstructure:"bucket"`
}

// OTelConfig holds OpenTelemetry metric export settings.
type OTelConfig struct {
	Enabled     bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName string        `json:"serviceName" mapstructure:"serviceName"`
	Endpoint    string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure    bool          `json:"insecure" mapstructure:"insecure"`
	Interval    time.Duration `json:"interval" mapstructure:"interval"`
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./matchviewlogs")

	viper.SetDefault("playback.sampleRate", 30.0)
	viper.SetDefault("playback.fastForward", 5.0)
	viper.SetDefault("playback.rewind", 5.0)
	viper.SetDefault("playback.holdThreshold", "300ms")
	viper.SetDefault("playback.playerCount", 22)

	viper.SetDefault("display.playerRadius", 14.0)
	viper.SetDefault("display.ballRadius", 6.0)
	viper.SetDefault("display.ballMaxRadius", 20.0)
	viper.SetDefault("display.columns", 80)
	viper.SetDefault("display.rows", 24)

	viper.SetDefault("source.type", "json")
	viper.SetDefault("source.path", "./sample_data.json")
	viper.SetDefault("source.recordingId", 0)
	viper.SetDefault("source.apiKey", "")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "matchview")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.token", "")
	viper.SetDefault("influx.org", "matchview")
	viper.SetDefault("influx.bucket", "playback")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "matchview")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
	viper.SetDefault("otel.interval", "10s")

	viper.SetConfigName("matchview.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetPlaybackConfig returns the transport timing settings.
func GetPlaybackConfig() PlaybackConfig {
	return PlaybackConfig{
		SampleRate:    viper.GetFloat64("playback.sampleRate"),
		FastForward:   viper.GetFloat64("playback.fastForward"),
		Rewind:        viper.GetFloat64("playback.rewind"),
		HoldThreshold: viper.GetDuration("playback.holdThreshold"),
		PlayerCount:   viper.GetInt("playback.playerCount"),
	}
}

// GetDisplayConfig returns the renderer sizing settings.
func GetDisplayConfig() DisplayConfig {
	return DisplayConfig{
		PlayerRadius:  viper.GetFloat64("display.playerRadius"),
		BallRadius:    viper.GetFloat64("display.ballRadius"),
		BallMaxRadius: viper.GetFloat64("display.ballMaxRadius"),
		Columns:       viper.GetInt("display.columns"),
		Rows:          viper.GetInt("display.rows"),
	}
}

// GetSourceConfig returns the timeline source settings.
func GetSourceConfig() SourceConfig {
	return SourceConfig{
		Type:        viper.GetString("source.type"),
		Path:        viper.GetString("source.path"),
		RecordingID: viper.GetUint("source.recordingId"),
		APIKey:      viper.GetString("source.apiKey"),
	}
}

// GetInfluxConfig returns the playback telemetry sink settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:  viper.GetBool("influx.enabled"),
		Protocol: viper.GetString("influx.protocol"),
		Host:     viper.GetString("influx.host"),
		Port:     viper.GetString("influx.port"),
		Token:    viper.GetString("influx.token"),
		Org:      viper.GetString("influx.org"),
		Bucket:   viper.GetString("influx.bucket"),
	}
}

// GetOTelConfig returns the OpenTelemetry metric export settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:     viper.GetBool("otel.enabled"),
		ServiceName: viper.GetString("otel.serviceName"),
		Endpoint:    viper.GetString("otel.endpoint"),
		Insecure:    viper.GetBool("otel.insecure"),
		Interval:    viper.GetDuration("otel.interval"),
	}
}
