package provider

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type MockOptions struct {
	BaseURL        string
	FailureTrigger string
	Delay          time.Duration
}

// Mock answers every prompt with a placeholder URL. Prompts containing the
// failure trigger (case-insensitive) fail instead.
type Mock struct {
	baseURL string
	trigger string
	delay   time.Duration
}

func NewMock(opts MockOptions) *Mock {
	return &Mock{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		trigger: strings.ToLower(opts.FailureTrigger),
		delay:   opts.Delay,
	}
}

func (m *Mock) Generate(ctx context.Context, prompt, filename string) (string, error) {
	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	if m.trigger != "" && strings.Contains(strings.ToLower(prompt), m.trigger) {
		return "", fmt.Errorf("%w: prompt rejected by mock provider", ErrGenerationFailed)
	}

	return m.baseURL + "/" + filename, nil
}
