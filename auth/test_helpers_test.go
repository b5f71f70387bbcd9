package auth

import (
	"testing"
	"time"

	"github.com/krishkalaria12/snap-studio/testutils"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db := testutils.SetupDB(t)
	tokens := NewTokenService(TokenOptions{
		Secret:   "test-secret",
		Issuer:   "snap-studio-test",
		Duration: time.Hour,
	})
	return NewService(db, tokens)
}
