// Package provider generates images for prompts. The generation service only
// sees the Provider interface, so a real backend can replace the mock without
// touching service logic.
package provider

import (
	"context"
	"errors"
)

var ErrGenerationFailed = errors.New("image generation failed")

type Provider interface {
	// Generate produces an image for prompt, stores it under filename and
	// returns its public URL.
	Generate(ctx context.Context, prompt, filename string) (string, error)
}
