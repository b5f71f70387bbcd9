package gallery

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/krishkalaria12/snap-studio/access"
	"github.com/krishkalaria12/snap-studio/apperr"
	"github.com/krishkalaria12/snap-studio/generation"
	"github.com/krishkalaria12/snap-studio/models"
	"gorm.io/gorm"
)

const MaxTitleLength = 100

var (
	// One message for missing, foreign and unfinished generations so callers
	// cannot probe which one it was.
	ErrGenerationUnavailable = apperr.NotFound("image generation not found, does not belong to user, or is not completed")
	ErrAlreadySaved          = apperr.Conflict("image already saved to gallery")
	ErrGalleryImageNotFound  = apperr.NotFound("gallery image not found")
	ErrShareDenied           = apperr.AccessDenied("gallery image not found or no permission")
	ErrShareNotPublic        = apperr.InvalidState("only public images can be shared")
)

type SaveInput struct {
	ImageGenerationID uint    `json:"image_generation_id"`
	Title             *string `json:"title"`
	IsPublic          bool    `json:"is_public"`
}

type UpdateInput struct {
	Title    OptionalString `json:"title"`
	IsPublic *bool          `json:"is_public"`
}

type ShareLink struct {
	ShareURL string `json:"shareUrl"`
}

type Service struct {
	db      *gorm.DB
	baseURL string
}

// NewService builds the gallery service. baseURL is the public origin used
// for share links.
func NewService(db *gorm.DB, baseURL string) *Service {
	return &Service{db: db, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (s *Service) SaveToGallery(ctx context.Context, userID uint, input SaveInput) (*models.GalleryImage, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}

	var gen models.ImageGeneration
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND status = ?", input.ImageGenerationID, userID, models.StatusCompleted).
		First(&gen).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenerationUnavailable
		}
		return nil, fmt.Errorf("lookup image generation: %w", err)
	}

	var existing int64
	err = s.db.WithContext(ctx).Model(&models.GalleryImage{}).
		Where("user_id = ? AND image_generation_id = ?", userID, gen.ID).
		Count(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("lookup gallery image: %w", err)
	}
	if existing > 0 {
		return nil, ErrAlreadySaved
	}

	image := models.GalleryImage{
		UserID:            userID,
		ImageGenerationID: gen.ID,
		Title:             input.Title,
		IsPublic:          input.IsPublic,
	}
	if err := s.db.WithContext(ctx).Create(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySaved
		}
		return nil, fmt.Errorf("create gallery image: %w", err)
	}
	return &image, nil
}

// UpdateGalleryImage changes only the fields present in input. An empty
// input returns the stored record unchanged.
func (s *Service) UpdateGalleryImage(ctx context.Context, id, userID uint, input UpdateInput) (*models.GalleryImage, error) {
	image, err := s.findOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Title.Set {
		if err := validateTitle(input.Title.Value); err != nil {
			return nil, err
		}
		updates["title"] = input.Title.Value
	}
	if input.IsPublic != nil {
		updates["is_public"] = *input.IsPublic
	}
	if len(updates) == 0 {
		return image, nil
	}

	if err := s.db.WithContext(ctx).Model(image).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update gallery image: %w", err)
	}
	return s.findOwned(ctx, id, userID)
}

func (s *Service) DeleteGalleryImage(ctx context.Context, id, userID uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.GalleryImage{})
	if res.Error != nil {
		return fmt.Errorf("delete gallery image: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrGalleryImageNotFound
	}
	return nil
}

// ListUserGallery returns the user's gallery newest first, with the linked
// generation loaded for display.
func (s *Service) ListUserGallery(ctx context.Context, userID uint, limit, offset int) ([]models.GalleryImage, error) {
	limit, offset = generation.NormalizePage(limit, offset)

	images := []models.GalleryImage{}
	err := s.db.WithContext(ctx).
		Preload("ImageGeneration").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("list gallery images: %w", err)
	}
	return images, nil
}

// ShareImage returns a link for a public gallery image. Each call mints a new
// random token; tokens are not stored.
func (s *Service) ShareImage(ctx context.Context, id, userID uint) (*ShareLink, error) {
	var image models.GalleryImage
	if err := s.db.WithContext(ctx).First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareDenied
		}
		return nil, fmt.Errorf("get gallery image: %w", err)
	}
	if !access.IsOwner(&image, userID) {
		return nil, ErrShareDenied
	}
	if !access.IsVisible(&image) {
		return nil, ErrShareNotPublic
	}

	token, err := shareToken()
	if err != nil {
		return nil, err
	}
	return &ShareLink{ShareURL: fmt.Sprintf("%s/shared/%d?token=%s", s.baseURL, image.ID, token)}, nil
}

func (s *Service) findOwned(ctx context.Context, id, userID uint) (*models.GalleryImage, error) {
	var image models.GalleryImage
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryImageNotFound
		}
		return nil, fmt.Errorf("get gallery image: %w", err)
	}
	return &image, nil
}

func validateTitle(title *string) error {
	if title != nil && utf8.RuneCountInString(*title) > MaxTitleLength {
		return apperr.Validation(fmt.Sprintf("title too long (max %d characters)", MaxTitleLength))
	}
	return nil
}

func shareToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate share token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
