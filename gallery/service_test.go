package gallery

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/krishkalaria12/snap-studio/apperr"
	"github.com/krishkalaria12/snap-studio/models"
	"github.com/krishkalaria12/snap-studio/testutils"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testutils.SetupDB(t)
	return NewService(db, "https://snap.example.com/"), db
}

func createUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	u := models.User{Email: name + "@example.com", Username: name, Password: "x"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createGeneration(t *testing.T, db *gorm.DB, userID uint, status models.GenerationStatus) models.ImageGeneration {
	t.Helper()
	g := models.ImageGeneration{UserID: userID, Prompt: "sunset", Filename: "f.png", Status: status}
	if status == models.StatusCompleted {
		g.ImageURL = "https://img.example.com/f.png"
	}
	if err := db.Create(&g).Error; err != nil {
		t.Fatalf("create generation: %v", err)
	}
	return g
}

func strPtr(s string) *string { return &s }

func TestSaveToGallery(t *testing.T) {
	svc, db := setup(t)
	u := createUser(t, db, "alice")
	gen := createGeneration(t, db, u.ID, models.StatusCompleted)

	img, err := svc.SaveToGallery(context.Background(), u.ID, SaveInput{ImageGenerationID: gen.ID, Title: strPtr("My Sunset")})
	if err != nil {
		t.Fatalf("SaveToGallery: %v", err)
	}
	if img.ID == 0 || img.IsPublic || img.Title == nil || *img.Title != "My Sunset" {
		t.Fatalf("unexpected gallery image: %+v", img)
	}
}

func TestSaveToGallery_SecondSaveConflicts(t *testing.T) {
	svc, db := setup(t)
	u := createUser(t, db, "alice")
	gen := createGeneration(t, db, u.ID, models.StatusCompleted)
	ctx := context.Background()

	if _, err := svc.SaveToGallery(ctx, u.ID, SaveInput{ImageGenerationID: gen.ID}); err != nil {
		t.Fatalf("SaveToGallery: %v", err)
	}
	_, err := svc.SaveToGallery(ctx, u.ID, SaveInput{ImageGenerationID: gen.ID, IsPublic: true})
	appErr, ok := apperr.As(err)
	if !ok || appErr.Code != apperr.CodeConflict || appErr.Message != "image already saved to gallery" {
		t.Fatalf("expected conflict, got %v", err)
	}

	var count int64
	db.Model(&models.GalleryImage{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single row, got %d", count)
	}
}

func TestSaveToGallery_UnavailableGenerationSharesMessage(t *testing.T) {
	svc, db := setup(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	ctx := context.Background()

	foreign := createGeneration(t, db, bob.ID, models.StatusCompleted)
	pending := createGeneration(t, db, alice.ID, models.StatusPending)
	failed := createGeneration(t, db, alice.ID, models.StatusFailed)

	for _, id := range []uint{9999, foreign.ID, pending.ID, failed.ID} {
		_, err := svc.SaveToGallery(ctx, alice.ID, SaveInput{ImageGenerationID: id})
		appErr, ok := apperr.As(err)
		if !ok || appErr.Code != apperr.CodeNotFound || appErr != ErrGenerationUnavailable {
			t.Fatalf("SaveToGallery(%d) = %v", id, err)
		}
	}
}

func TestSaveToGallery_TitleTooLong(t *testing.T) {
	svc, db := setup(t)
	u := createUser(t, db, "alice")
	gen := createGeneration(t, db, u.ID, models.StatusCompleted)

	_, err := svc.SaveToGallery(context.Background(), u.ID, SaveInput{ImageGenerationID: gen.ID, Title: strPtr(strings.Repeat("t", MaxTitleLength+1))})
	if !apperr.Is(err, apperr.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateGalleryImage(t *testing.T) {
	svc, db := setup(t)
	u := createUser(t, db, "alice")
	gen := createGeneration(t, db, u.ID, models.StatusCompleted)
	ctx := context.Background()

	img, err := svc.SaveToGallery(ctx, u.ID, SaveInput{ImageGenerationID: gen.ID, Title: strPtr("Original")})
	if err != nil {
		t.Fatalf("SaveToGallery: %v", err)
	}

	unchanged, err := svc.UpdateGalleryImage(ctx, img.ID, u.ID, UpdateInput{})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if unchanged.Title == nil || *unchanged.Title != "Original" || unchanged.IsPublic {
		t.Fatalf("empty update changed the record: %+v", unchanged)
	}

	public := true
	updated, err := svc.UpdateGalleryImage(ctx, img.ID, u.ID, UpdateInput{IsPublic: &public})
	if err != nil {
		t.Fatalf("visibility update: %v", err)
	}
	if !updated.IsPublic || updated.Title == nil || *updated.Title != "Original" {
		t.Fatalf("is_public update must leave title alone: %+v", updated)
	}

	renamed, err := svc.UpdateGalleryImage(ctx, img.ID, u.ID, UpdateInput{Title: SetString("Renamed")})
	if err != nil || renamed.Title == nil || *renamed.Title != "Renamed" || !renamed.IsPublic {
		t.Fatalf("title update: %+v, %v", renamed, err)
	}

	cleared, err := svc.UpdateGalleryImage(ctx, img.ID, u.ID, UpdateInput{Title: NullString()})
	if err != nil || cleared.Title != nil {
		t.Fatalf("explicit null must clear title: %+v, %v", cleared, err)
	}
}

func TestUpdateGalleryImage_NotOwned(t *testing.T) {
	svc, db := setup(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	gen := createGeneration(t, db, alice.ID, models.StatusCompleted)
	ctx := context.Background()

	img, err := svc.SaveToGallery(ctx, alice.ID, SaveInput{ImageGenerationID: gen.ID})
	if err != nil {
		t.Fatalf("SaveToGallery: %v", err)
	}

	public := true
	if _, err := svc.UpdateGalleryImage(ctx, img.ID, bob.ID, UpdateInput{IsPublic: &public}); !apperr.Is(err, apperr.CodeNotFound) {
		t.Fatalf("expected not found for non-owner, got %v", err)
	}
	if _, err := svc.UpdateGalleryImage(ctx, 9999, alice.ID, UpdateInput{}); !apperr.Is(err, apperr.CodeNotFound) {
		t.Fatalf("expected not found for missing id, got %v", err)
	}
}

func TestUpdateInput_JSONDistinguishesNullFromAbsent(t *testing.T) {
	tests := []struct {
		body     string
		wantSet  bool
		wantNil  bool
		wantFlag bool
	}{
		{`{}`, false, true, false},
		{`{"is_public": true}`, false, true, true},
		{`{"title": null}`, true, true, false},
		{`{"title": "Dusk"}`, true, false, false},
	}
	for _, tt := range tests {
		var in UpdateInput
		if err := json.Unmarshal([]byte(tt.body), &in); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.body, err)
		}
		if in.Title.Set != tt.wantSet || (in.Title.Value == nil) != tt.wantNil || (in.IsPublic != nil) != tt.wantFlag {
			t.Fatalf("%s decoded to %+v", tt.body, in)
		}
	}
}

func TestDeleteGalleryImage(t *testing.T) {
	svc, db := setup(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	gen := createGeneration(t, db, alice.ID, models.StatusCompleted)
	ctx := context.Background()

	img, err := svc.SaveToGallery(ctx, alice.ID, SaveInput{ImageGenerationID: gen.ID})
	if err != nil {
		t.Fatalf("SaveToGallery: %v", err)
	}

	if err := svc.DeleteGalleryImage(ctx, img.ID, bob.ID); !apperr.Is(err, apperr.CodeNotFound) {
		t.Fatalf("expected not found for non-owner, got %v", err)
	}
	if err := svc.DeleteGalleryImage(ctx, img.ID, alice.ID); err != nil {
		t.Fatalf("DeleteGalleryImage: %v", err)
	}
	if err := svc.DeleteGalleryImage(ctx, img.ID, alice.ID); !apperr.Is(err, apperr.CodeNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}

	var stillThere models.ImageGeneration
	if err := db.First(&stillThere, gen.ID).Error; err != nil {
		t.Fatalf("generation must survive gallery deletion: %v", err)
	}

	if _, err := svc.SaveToGallery(ctx, alice.ID, SaveInput{ImageGenerationID: gen.ID}); err != nil {
		t.Fatalf("re-saving after delete should work: %v", err)
	}
}

func TestListUserGallery(t *testing.T) {
	svc, db := setup(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		gen := createGeneration(t, db, alice.ID, models.StatusCompleted)
		entry := models.GalleryImage{UserID: alice.ID, ImageGenerationID: gen.ID, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := db.Create(&entry).Error; err != nil {
			t.Fatalf("create entry: %v", err)
		}
	}
	bobGen := createGeneration(t, db, bob.ID, models.StatusCompleted)
	if _, err := svc.SaveToGallery(ctx, bob.ID, SaveInput{ImageGenerationID: bobGen.ID}); err != nil {
		t.Fatalf("SaveToGallery: %v", err)
	}

	all, err := svc.ListUserGallery(ctx, alice.ID, 0, 0)
	if err != nil {
		t.Fatalf("ListUserGallery: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	for i, img := range all {
		if img.UserID != alice.ID || img.ImageGeneration == nil || img.ImageGeneration.ID != img.ImageGenerationID {
			t.Fatalf("entry %d not enriched: %+v", i, img)
		}
		if i > 0 && all[i-1].CreatedAt.Before(img.CreatedAt) {
			t.Fatalf("entries not ordered newest first")
		}
	}

	page, err := svc.ListUserGallery(ctx, alice.ID, 2, 2)
	if err != nil || len(page) != 1 || page[0].ID != all[2].ID {
		t.Fatalf("pagination: %+v, %v", page, err)
	}

	empty, err := svc.ListUserGallery(ctx, alice.ID, 10, 100)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("out of range offset should be empty, got %v, %v", empty, err)
	}
}

func TestShareImage(t *testing.T) {
	svc, db := setup(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	gen := createGeneration(t, db, alice.ID, models.StatusCompleted)
	ctx := context.Background()

	img, err := svc.SaveToGallery(ctx, alice.ID, SaveInput{ImageGenerationID: gen.ID})
	if err != nil {
		t.Fatalf("SaveToGallery: %v", err)
	}

	if _, err := svc.ShareImage(ctx, img.ID, alice.ID); err != ErrShareNotPublic {
		t.Fatalf("expected private share to be rejected, got %v", err)
	}
	if _, err := svc.ShareImage(ctx, img.ID, bob.ID); err != ErrShareDenied {
		t.Fatalf("expected non-owner share to be denied, got %v", err)
	}
	if _, err := svc.ShareImage(ctx, 9999, alice.ID); err != ErrShareDenied {
		t.Fatalf("expected missing image share to be denied, got %v", err)
	}

	public := true
	if _, err := svc.UpdateGalleryImage(ctx, img.ID, alice.ID, UpdateInput{IsPublic: &public}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	first, err := svc.ShareImage(ctx, img.ID, alice.ID)
	if err != nil {
		t.Fatalf("ShareImage: %v", err)
	}
	second, err := svc.ShareImage(ctx, img.ID, alice.ID)
	if err != nil {
		t.Fatalf("ShareImage: %v", err)
	}

	prefix := "https://snap.example.com/shared/"
	if !strings.HasPrefix(first.ShareURL, prefix) || !strings.Contains(first.ShareURL, "?token=") {
		t.Fatalf("unexpected share url %q", first.ShareURL)
	}
	if first.ShareURL == second.ShareURL {
		t.Fatalf("each share call must mint a new token")
	}
}
