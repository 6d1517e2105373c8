package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recording is one stored match timeline.
type Recording struct {
	gorm.Model
	Name        string  `json:"name" gorm:"size:255"`
	SampleRate  float64 `json:"sampleRate"`
	PlayerCount int     `json:"playerCount"`
	SampleCount int     `json:"sampleCount"`
}

// SampleRow is one snapshot within a recording. Player positions are a
// JSON array of [x,y] pairs in sample order; the order is semantic and
// must survive the round trip unchanged.
type SampleRow struct {
	ID          uint           `gorm:"primarykey"`
	RecordingID uint           `gorm:"index:idx_sample_recording"`
	Recording   Recording      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:RecordingID"`
	Time        float64        `gorm:"index:idx_sample_time"`
	BallX       float64
	BallY       float64
	BallZ       float64
	Players     datatypes.JSON
}
