package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"playback": { "sampleRate": 25, "fastForward": 8 },
		"source": { "type": "sqlite", "path": "/tmp/match.db" }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "matchview.cfg.json"), []byte(cfg), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, 25.0, viper.GetFloat64("playback.sampleRate"))
	assert.Equal(t, 8.0, viper.GetFloat64("playback.fastForward"))
	assert.Equal(t, "sqlite", viper.GetString("source.type"))
	assert.Equal(t, "/tmp/match.db", viper.GetString("source.path"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "matchview.cfg.json"), []byte(`{}`), 0644))

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./matchviewlogs", viper.GetString("logsDir"))
	assert.Equal(t, 30.0, viper.GetFloat64("playback.sampleRate"))
	assert.Equal(t, 5.0, viper.GetFloat64("playback.fastForward"))
	assert.Equal(t, 5.0, viper.GetFloat64("playback.rewind"))
	assert.Equal(t, "300ms", viper.GetString("playback.holdThreshold"))
	assert.Equal(t, 22, viper.GetInt("playback.playerCount"))
	assert.Equal(t, "json", viper.GetString("source.type"))
	assert.Equal(t, "localhost", viper.GetString("db.host"))
	assert.Equal(t, "5432", viper.GetString("db.port"))
	assert.Equal(t, "matchview", viper.GetString("db.database"))
	assert.Equal(t, false, viper.GetBool("graylog.enabled"))
	assert.Equal(t, "localhost:12201", viper.GetString("graylog.address"))
	assert.Equal(t, false, viper.GetBool("influx.enabled"))
	assert.Equal(t, "playback", viper.GetString("influx.bucket"))
	assert.Equal(t, false, viper.GetBool("otel.enabled"))
	assert.Equal(t, "matchview", viper.GetString("otel.serviceName"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGetPlaybackConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"playback": {
			"sampleRate": 10,
			"fastForward": 4,
			"rewind": 6,
			"holdThreshold": "500ms",
			"playerCount": 10
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "matchview.cfg.json"), []byte(cfg), 0644))
	require.NoError(t, Load(dir))

	pc := GetPlaybackConfig()
	assert.Equal(t, 10.0, pc.SampleRate)
	assert.Equal(t, 4.0, pc.FastForward)
	assert.Equal(t, 6.0, pc.Rewind)
	assert.Equal(t, 500*time.Millisecond, pc.HoldThreshold)
	assert.Equal(t, 10, pc.PlayerCount)
}

func TestGetPlaybackConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "matchview.cfg.json"), []byte(`{}`), 0644))
	require.NoError(t, Load(dir))

	pc := GetPlaybackConfig()
	assert.Equal(t, 30.0, pc.SampleRate)
	assert.Equal(t, 300*time.Millisecond, pc.HoldThreshold)
	assert.Equal(t, 22, pc.PlayerCount)
}

func TestGetDisplayConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "matchview.cfg.json"), []byte(`{}`), 0644))
	require.NoError(t, Load(dir))

	dc := GetDisplayConfig()
	assert.Equal(t, 14.0, dc.PlayerRadius)
	assert.Equal(t, 6.0, dc.BallRadius)
	assert.Equal(t, 20.0, dc.BallMaxRadius)
	assert.Equal(t, 80, dc.Columns)
	assert.Equal(t, 24, dc.Rows)
}

func TestGetSourceConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"source": { "type": "postgres", "recordingId": 7 }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "matchview.cfg.json"), []byte(cfg), 0644))
	require.NoError(t, Load(dir))

	sc := GetSourceConfig()
	assert.Equal(t, "postgres", sc.Type)
	assert.Equal(t, uint(7), sc.RecordingID)
}

func TestGetInfluxConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"influx": {
			"enabled": true,
			"host": "influx.local",
			"token": "secret",
			"bucket": "replays"
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "matchview.cfg.json"), []byte(cfg), 0644))
	require.NoError(t, Load(dir))

	ic := GetInfluxConfig()
	assert.Equal(t, true, ic.Enabled)
	assert.Equal(t, "influx.local", ic.Host)
	assert.Equal(t, "secret", ic.Token)
	assert.Equal(t, "replays", ic.Bucket)
	assert.Equal(t, "http", ic.Protocol)
}

func TestGetOTelConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"otel": {
			"enabled": true,
			"serviceName": "replay-bench",
			"endpoint": "localhost:4318",
			"insecure": false,
			"interval": "30s"
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "matchview.cfg.json"), []byte(cfg), 0644))
	require.NoError(t, Load(dir))

	oc := GetOTelConfig()
	assert.Equal(t, true, oc.Enabled)
	assert.Equal(t, "replay-bench", oc.ServiceName)
	assert.Equal(t, "localhost:4318", oc.Endpoint)
	assert.Equal(t, false, oc.Insecure)
	assert.Equal(t, 30*time.Second, oc.Interval)
}
