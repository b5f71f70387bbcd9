package models

import "time"

// GalleryImage is a completed generation a user chose to keep. A user can
// save a given generation at most once.
type GalleryImage struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	UserID            uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_gallery_user_generation"`
	ImageGenerationID uint      `json:"image_generation_id" gorm:"not null;uniqueIndex:idx_gallery_user_generation;index"`
	Title             *string   `json:"title" gorm:"size:100"`
	IsPublic          bool      `json:"is_public" gorm:"not null;default:false"`
	CreatedAt         time.Time `json:"created_at" gorm:"index"`

	ImageGeneration *ImageGeneration `json:"image_generation,omitempty" gorm:"foreignKey:ImageGenerationID"`
}

func (g *GalleryImage) OwnerID() uint {
	return g.UserID
}

func (g *GalleryImage) Visible() bool {
	return g.IsPublic
}
