// matchview replays recorded football matches in the terminal. The
// default command loads the configured timeline source and starts an
// interactive playback session; the remaining commands manage stored
// recordings.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/matchview/replay/internal/config"
	"github.com/matchview/replay/internal/logging"
	intOtel "github.com/matchview/replay/internal/otel"
)

// Version and BuildDate can be set at build time via ldflags.
var (
	Version   string = "0.0.1"
	BuildDate string = "unknown"
)

const appName = "matchview"

func main() {
	configDir := flag.String("config", ".", "directory containing matchview.cfg.json")
	flag.Usage = usage
	flag.Parse()

	sessionStart := time.Now()
	configErr := config.Load(*configDir)

	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "cannot create logs directory %s: %v\n", logsDir, err)
		os.Exit(1)
	}

	logFilePath := logging.LogFilePath(logsDir, appName, sessionStart)
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file %s: %v\n", logFilePath, err)
		os.Exit(1)
	}
	defer logFile.Close()

	log := logging.New(logging.Options{
		Level:          config.GetString("logLevel"),
		File:           logFile,
		GraylogEnabled: config.GetBool("graylog.enabled"),
		GraylogAddress: config.GetString("graylog.address"),
	})
	log.Info().Str("version", Version).Str("buildDate", BuildDate).Msg("matchview starting")

	if configErr != nil {
		log.Warn().Err(configErr).Str("configDir", *configDir).
			Msg("Config file not loaded, using defaults")
	}

	provider, err := setupMetrics(log, logsDir, sessionStart)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		// Flush first so the partial export interval still gets its
		// own window before shutdown's deadline.
		if err := provider.Flush(ctx); err != nil {
			log.Error().Err(err).Msg("Metric flush failed")
		}
		if err := provider.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Metric shutdown failed")
		}
	}()

	args := flag.Args()
	cmd := "play"
	if len(args) > 0 {
		cmd = strings.ToLower(args[0])
		args = args[1:]
	}

	switch cmd {
	case "play":
		err = runPlay(log)
	case "script":
		err = runScriptCommand(log, args)
	case "export":
		err = exportRecording(log, args)
	case "import":
		err = importRecording(log, args)
	case "info":
		err = showInfo(log, args)
	default:
		usage()
		err = fmt.Errorf("unknown command: %s", cmd)
	}
	if err != nil {
		log.Error().Err(err).Str("command", cmd).Msg("Command failed")
		os.Exit(1)
	}
}

func setupMetrics(log zerolog.Logger, logsDir string, sessionStart time.Time) (*intOtel.Provider, error) {
	otelCfg := config.GetOTelConfig()
	if !otelCfg.Enabled {
		return intOtel.New(intOtel.Config{Enabled: false})
	}

	metricPath := filepath.Join(logsDir,
		fmt.Sprintf("%s.%s.metrics.json", appName, sessionStart.Format("20060102_150405")))
	metricFile, err := os.OpenFile(metricPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("cannot open metric file %s: %w", metricPath, err)
	}

	log.Info().Str("path", metricPath).Str("endpoint", otelCfg.Endpoint).
		Msg("Metric export enabled")
	return intOtel.New(intOtel.Config{
		Enabled:      true,
		ServiceName:  otelCfg.ServiceName,
		Interval:     otelCfg.Interval,
		MetricWriter: metricFile,
		Endpoint:     otelCfg.Endpoint,
		Insecure:     otelCfg.Insecure,
	})
}

// recordingName labels telemetry and exports for the active source.
func recordingName() string {
	src := config.GetSourceConfig()
	switch src.Type {
	case "sqlite", "postgres":
		return fmt.Sprintf("recording-%d", src.RecordingID)
	default:
		return filepath.Base(src.Path)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `matchview %s (%s)

Usage:
  matchview [-config dir]                 interactive playback (default)
  matchview [-config dir] play            interactive playback
  matchview [-config dir] script <file>   scripted playback
  matchview [-config dir] export <id> <out.json.gz>
  matchview [-config dir] import <name> <in.json>
  matchview [-config dir] info [id]

Interactive commands (one per line):
  p   toggle play/pause     r   restart
  <   step back one sample  >   step forward one sample
  <<  hold rewind           >>  hold fast-forward
  .   release held inputs   q   quit
`, Version, BuildDate)
}
