package auth

import (
	"testing"
	"time"

	"github.com/krishkalaria12/snap-studio/models"
)

func TestToken_RoundTrip(t *testing.T) {
	tokens := NewTokenService(TokenOptions{Secret: "s", Issuer: "test", Duration: time.Hour})

	tokenStr, err := tokens.Issue(&models.User{ID: 42, Email: "alice@example.com", Username: "alice"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	identity, err := tokens.Parse(tokenStr)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if identity.UserID != 42 || identity.Email != "alice@example.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestToken_FreshPerIssue(t *testing.T) {
	tokens := NewTokenService(TokenOptions{Secret: "s", Issuer: "test", Duration: time.Hour})
	user := &models.User{ID: 1, Email: "a@example.com"}

	first, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	second, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct tokens")
	}
	for _, tok := range []string{first, second} {
		if _, err := tokens.Parse(tok); err != nil {
			t.Fatalf("token should stay valid: %v", err)
		}
	}
}

func TestToken_Expired(t *testing.T) {
	tokens := NewTokenService(TokenOptions{Secret: "s", Issuer: "test", Duration: -time.Minute})

	tokenStr, err := tokens.Issue(&models.User{ID: 1, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := tokens.Parse(tokenStr); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestToken_WrongSecret(t *testing.T) {
	issuer := NewTokenService(TokenOptions{Secret: "one", Issuer: "test", Duration: time.Hour})
	verifier := NewTokenService(TokenOptions{Secret: "two", Issuer: "test", Duration: time.Hour})

	tokenStr, err := issuer.Issue(&models.User{ID: 1, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Parse(tokenStr); err == nil {
		t.Fatalf("expected signature mismatch to be rejected")
	}
	if _, err := verifier.Parse("not-a-token"); err == nil {
		t.Fatalf("expected garbage to be rejected")
	}
}
