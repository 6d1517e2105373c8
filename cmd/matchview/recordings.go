package main

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/matchview/replay/internal/config"
	"github.com/matchview/replay/internal/source"
	"github.com/matchview/replay/internal/source/database"
	"github.com/matchview/replay/internal/source/jsonfile"
)

// recordingsDB connects to the recording store. With a database source
// configured it reuses those settings; otherwise it falls back to a
// local SQLite file next to the binary.
func recordingsDB(log zerolog.Logger) (*database.Manager, error) {
	srcCfg := config.GetSourceConfig()

	kind, path := "sqlite", "./matchview.db"
	switch srcCfg.Type {
	case "postgres":
		kind = "postgres"
	case "sqlite":
		path = srcCfg.Path
	}

	mgr := database.NewManager(log)
	if err := mgr.Connect(kind, path); err != nil {
		return nil, err
	}
	return mgr, nil
}

func parseRecordingID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad recording id %q: %w", arg, err)
	}
	return uint(id), nil
}

// exportRecording writes one stored recording as a JSON file readable by
// the json source. A .gz suffix selects gzip compression.
func exportRecording(log zerolog.Logger, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: matchview export <id> <out.json[.gz]>")
	}
	id, err := parseRecordingID(args[0])
	if err != nil {
		return err
	}
	outPath := args[1]

	mgr, err := recordingsDB(log)
	if err != nil {
		return err
	}

	start := time.Now()
	timeline, err := database.NewLoader(mgr, id).Load()
	if err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer out.Close()

	var w io.Writer = out
	if strings.HasSuffix(outPath, ".gz") {
		gz := gzip.NewWriter(out)
		defer gz.Close()
		w = gz
	}
	if err := jsonfile.Encode(w, timeline); err != nil {
		return fmt.Errorf("encoding recording: %w", err)
	}

	log.Info().Uint("recordingId", id).Int("samples", timeline.Len()).
		Str("path", outPath).Dur("elapsed", time.Since(start)).Msg("Recording exported")
	return nil
}

// importRecording stores a JSON recording in the database under a name.
func importRecording(log zerolog.Logger, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: matchview import <name> <in.json[.gz]>")
	}
	name, inPath := args[0], args[1]

	pb := config.GetPlaybackConfig()
	timeline, err := source.Validated(jsonfile.New(inPath), pb.PlayerCount).Load()
	if err != nil {
		return err
	}

	mgr, err := recordingsDB(log)
	if err != nil {
		return err
	}

	id, err := mgr.SaveRecording(name, pb.SampleRate, timeline)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %q as recording %d (%d samples)\n", name, id, timeline.Len())
	return nil
}

// showInfo lists stored recordings, or details one of them.
func showInfo(log zerolog.Logger, args []string) error {
	mgr, err := recordingsDB(log)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		recs, err := mgr.ListRecordings()
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Println("No recordings stored.")
			return nil
		}
		fmt.Printf("%-6s %-24s %-10s %-8s %s\n", "ID", "NAME", "RATE", "PLAYERS", "SAMPLES")
		for _, r := range recs {
			fmt.Printf("%-6d %-24s %-10g %-8d %d\n",
				r.ID, r.Name, r.SampleRate, r.PlayerCount, r.SampleCount)
		}
		return nil
	}

	id, err := parseRecordingID(args[0])
	if err != nil {
		return err
	}
	rec, err := mgr.GetRecording(id)
	if err != nil {
		return err
	}

	duration := 0.0
	if rec.SampleRate > 0 {
		duration = float64(rec.SampleCount) / rec.SampleRate
	}
	fmt.Printf("Recording %d: %s\n", rec.ID, rec.Name)
	fmt.Printf("  samples:     %d\n", rec.SampleCount)
	fmt.Printf("  players:     %d\n", rec.PlayerCount)
	fmt.Printf("  sample rate: %g Hz\n", rec.SampleRate)
	fmt.Printf("  duration:    %.1f s\n", duration)
	fmt.Printf("  stored:      %s\n", rec.CreatedAt.Format(time.RFC3339))
	return nil
}
