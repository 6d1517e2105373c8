package database

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/matchview/replay/pkg/core"
)

// ErrRecordingNotFound is returned when the requested recording id does
// not exist.
var ErrRecordingNotFound = errors.New("recording not found")

// Loader reads one recording into a timeline.
type Loader struct {
	mgr *Manager
	id  uint
}

// NewLoader creates a loader for the given recording id. An id of 0
// selects the most recently stored recording.
func NewLoader(mgr *Manager, id uint) *Loader {
	return &Loader{mgr: mgr, id: id}
}

// Load fetches the recording's samples ordered by time.
func (l *Loader) Load() (core.Timeline, error) {
	rec, err := l.mgr.findRecording(l.id)
	if err != nil {
		return nil, err
	}

	var rows []SampleRow
	err = l.mgr.DB.Where("recording_id = ?", rec.ID).Order("time").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("loading samples for recording %d: %w", rec.ID, err)
	}

	timeline := make(core.Timeline, 0, len(rows))
	for _, row := range rows {
		var players []core.Position
		if err := json.Unmarshal(row.Players, &players); err != nil {
			return nil, fmt.Errorf("decoding players for sample at t=%g: %w", row.Time, err)
		}
		timeline = append(timeline, core.Sample{
			Time:    row.Time,
			Ball:    core.BallPosition{X: row.BallX, Y: row.BallY, Z: row.BallZ},
			Players: players,
		})
	}
	return timeline, nil
}

func (m *Manager) findRecording(id uint) (Recording, error) {
	var rec Recording
	q := m.DB.Model(&Recording{})
	if id == 0 {
		q = q.Order("id desc")
	} else {
		q = q.Where("id = ?", id)
	}
	if err := q.First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Recording{}, ErrRecordingNotFound
		}
		return Recording{}, fmt.Errorf("looking up recording: %w", err)
	}
	return rec, nil
}

// SaveRecording stores a validated timeline under the given name and
// returns the new recording id.
func (m *Manager) SaveRecording(name string, sampleRate float64, t core.Timeline) (uint, error) {
	rec := Recording{
		Name:        name,
		SampleRate:  sampleRate,
		PlayerCount: t.PlayersPerSample(),
		SampleCount: t.Len(),
	}
	if err := m.DB.Create(&rec).Error; err != nil {
		return 0, fmt.Errorf("creating recording: %w", err)
	}

	rows := make([]SampleRow, 0, t.Len())
	for _, s := range t {
		players, err := json.Marshal(s.Players)
		if err != nil {
			return 0, fmt.Errorf("encoding players at t=%g: %w", s.Time, err)
		}
		rows = append(rows, SampleRow{
			RecordingID: rec.ID,
			Time:        s.Time,
			BallX:       s.Ball.X,
			BallY:       s.Ball.Y,
			BallZ:       s.Ball.Z,
			Players:     datatypes.JSON(players),
		})
	}
	if err := m.DB.Create(&rows).Error; err != nil {
		return 0, fmt.Errorf("storing %d samples: %w", len(rows), err)
	}

	m.Logger.Info().Uint("recordingId", rec.ID).Int("samples", t.Len()).
		Str("name", name).Msg("Stored recording")
	return rec.ID, nil
}

// ListRecordings returns all stored recordings, newest first.
func (m *Manager) ListRecordings() ([]Recording, error) {
	var recs []Recording
	if err := m.DB.Order("id desc").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing recordings: %w", err)
	}
	return recs, nil
}

// GetRecording returns the metadata for one recording id (0 = latest).
func (m *Manager) GetRecording(id uint) (Recording, error) {
	return m.findRecording(id)
}
