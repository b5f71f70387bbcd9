package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/krishkalaria12/snap-studio/access"
	"github.com/krishkalaria12/snap-studio/apperr"
	"github.com/krishkalaria12/snap-studio/models"
	"github.com/krishkalaria12/snap-studio/provider"
	"gorm.io/gorm"
)

const (
	MaxPromptLength = 1000
	DefaultLimit    = 20
	MaxLimit        = 100
)

type ListInput struct {
	Status models.GenerationStatus
	Limit  int
	Offset int
}

type Download struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

type Service struct {
	db       *gorm.DB
	provider provider.Provider
	timeout  time.Duration
	log      *slog.Logger
}

func NewService(db *gorm.DB, p provider.Provider, timeout time.Duration, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{db: db, provider: p, timeout: timeout, log: log}
}

// GenerateImage records a pending generation, asks the provider for the
// image and stores the terminal outcome. Provider failures end up as a
// failed record, not as an error.
func (s *Service) GenerateImage(ctx context.Context, userID uint, prompt string) (*models.ImageGeneration, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, apperr.Validation("prompt is required")
	}
	if utf8.RuneCountInString(prompt) > MaxPromptLength {
		return nil, apperr.Validation(fmt.Sprintf("prompt too long (max %d characters)", MaxPromptLength))
	}

	var users int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&users).Error; err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if users == 0 {
		return nil, apperr.NotFound("user not found")
	}

	gen := models.ImageGeneration{
		UserID:   userID,
		Prompt:   prompt,
		Filename: fmt.Sprintf("generated_%s.png", uuid.NewString()),
		Status:   models.StatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&gen).Error; err != nil {
		return nil, fmt.Errorf("create image generation: %w", err)
	}

	// The record must reach a terminal state even if the caller goes away.
	bg := context.WithoutCancel(ctx)
	genCtx := bg
	if s.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(bg, s.timeout)
		defer cancel()
	}

	url, genErr := s.provider.Generate(genCtx, prompt, gen.Filename)

	now := time.Now()
	updates := map[string]any{"completed_at": now}
	if genErr != nil {
		s.log.Warn("image generation failed", "generation_id", gen.ID, "user_id", userID, "error", genErr)
		updates["status"] = models.StatusFailed
	} else {
		updates["status"] = models.StatusCompleted
		updates["image_url"] = url
	}

	if err := s.db.WithContext(bg).Model(&gen).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update image generation: %w", err)
	}

	gen.CompletedAt = &now
	if genErr != nil {
		gen.Status = models.StatusFailed
	} else {
		gen.Status = models.StatusCompleted
		gen.ImageURL = url
	}
	return &gen, nil
}

// ListUserGenerations returns the user's generations newest first.
func (s *Service) ListUserGenerations(ctx context.Context, userID uint, input ListInput) ([]models.ImageGeneration, error) {
	if input.Status != "" && !input.Status.Valid() {
		return nil, apperr.Validation("invalid status")
	}
	limit, offset := NormalizePage(input.Limit, input.Offset)

	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if input.Status != "" {
		query = query.Where("status = ?", input.Status)
	}

	generations := []models.ImageGeneration{}
	err := query.Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&generations).Error
	if err != nil {
		return nil, fmt.Errorf("list image generations: %w", err)
	}
	return generations, nil
}

// DownloadImage hands out the image of a completed generation to its owner,
// or to anyone once the generation has a public gallery entry.
func (s *Service) DownloadImage(ctx context.Context, generationID, requesterID uint) (*Download, error) {
	var gen models.ImageGeneration
	if err := s.db.WithContext(ctx).First(&gen, generationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("image generation not found")
		}
		return nil, fmt.Errorf("get image generation: %w", err)
	}

	if gen.Status != models.StatusCompleted {
		return nil, apperr.InvalidState("image generation is not completed")
	}

	if !access.IsOwner(&gen, requesterID) {
		var public []models.GalleryImage
		err := s.db.WithContext(ctx).
			Where("image_generation_id = ? AND is_public = ?", gen.ID, true).
			Limit(1).
			Find(&public).Error
		if err != nil {
			return nil, fmt.Errorf("lookup gallery visibility: %w", err)
		}

		entries := make([]access.Visible, 0, len(public))
		for i := range public {
			entries = append(entries, &public[i])
		}
		if !access.CanReadImage(&gen, requesterID, entries...) {
			return nil, apperr.AccessDenied("you do not have permission to download this image")
		}
	}

	return &Download{URL: gen.ImageURL, Filename: gen.Filename}, nil
}

// NormalizePage applies the listing defaults: limit 20 (capped at 100) and
// offset 0.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
