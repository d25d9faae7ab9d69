package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// ExhaustedError reports that every provider in the ordered fallback list
// was attempted and all failed. Last carries the final classified failure.
type ExhaustedError struct {
	Attempts int
	Last     *ModelError
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("ai: all %d models failed, last: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

// FallbackProvider tries each wrapped provider in order until one succeeds.
// The retry is unconditional: no backoff, no attempt budget, every provider
// gets exactly one try per call.
type FallbackProvider struct {
	providers []Provider
}

func NewFallbackProvider(providers ...Provider) (*FallbackProvider, error) {
	if len(providers) == 0 {
		return nil, errors.New("ai: fallback requires at least one provider")
	}
	return &FallbackProvider{providers: providers}, nil
}

// NewGeminiFallback builds the ordered Gemini model chain.
func NewGeminiFallback(baseURL, apiKey string, models []string) (*FallbackProvider, error) {
	if len(models) == 0 {
		return nil, errors.New("ai: gemini fallback requires at least one model")
	}
	providers := make([]Provider, 0, len(models))
	for _, m := range models {
		providers = append(providers, NewGeminiProvider(baseURL, apiKey, m))
	}
	return NewFallbackProvider(providers...)
}

func (f *FallbackProvider) Generate(ctx context.Context, prompt string) (string, error) {
	var last *ModelError
	for _, p := range f.providers {
		text, err := p.Generate(ctx, prompt)
		if err == nil {
			return text, nil
		}

		var me *ModelError
		if !errors.As(err, &me) {
			me = &ModelError{Kind: KindUnknown, Err: err}
		}
		last = me
		log.Printf("ai: model %s failed (%s), trying next", me.Model, me.Kind)
	}
	return "", &ExhaustedError{Attempts: len(f.providers), Last: last}
}
