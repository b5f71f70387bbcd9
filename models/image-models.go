package models

import "time"

type GenerationStatus string

const (
	StatusPending   GenerationStatus = "pending"
	StatusCompleted GenerationStatus = "completed"
	StatusFailed    GenerationStatus = "failed"
)

func (s GenerationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further transitions can happen from s.
func (s GenerationStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

type ImageGeneration struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	UserID      uint             `json:"user_id" gorm:"not null;index"`
	Prompt      string           `json:"prompt" gorm:"type:text;not null"`
	ImageURL    string           `json:"image_url"`
	Filename    string           `json:"filename" gorm:"not null"`
	Status      GenerationStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
	CompletedAt *time.Time       `json:"completed_at"`
}

func (g *ImageGeneration) OwnerID() uint {
	return g.UserID
}
