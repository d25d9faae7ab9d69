package ai

import (
	"context"
	"errors"
	"testing"
)

type stubProvider struct {
	name  string
	reply string
	err   error
	calls int
}

func (p *stubProvider) Generate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

func TestFallbackFirstSucceeds(t *testing.T) {
	first := &stubProvider{name: "a", reply: "hello"}
	second := &stubProvider{name: "b", reply: "unused"}

	f, err := NewFallbackProvider(first, second)
	if err != nil {
		t.Fatalf("new fallback: %v", err)
	}

	got, err := f.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "hello" {
		t.Fatalf("unexpected reply %q", got)
	}
	if second.calls != 0 {
		t.Fatalf("second provider must not be called when first succeeds")
	}
}

func TestFallbackAdvancesOnFailure(t *testing.T) {
	first := &stubProvider{name: "a", err: &ModelError{Kind: KindQuota, Model: "a", Err: errors.New("quota")}}
	second := &stubProvider{name: "b", err: &ModelError{Kind: KindNotFound, Model: "b", Err: errors.New("gone")}}
	third := &stubProvider{name: "c", reply: "works"}

	f, err := NewFallbackProvider(first, second, third)
	if err != nil {
		t.Fatalf("new fallback: %v", err)
	}

	got, err := f.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "works" {
		t.Fatalf("unexpected reply %q", got)
	}
	if first.calls != 1 || second.calls != 1 || third.calls != 1 {
		t.Fatalf("expected one attempt each, got %d/%d/%d", first.calls, second.calls, third.calls)
	}
}

func TestFallbackExhausted(t *testing.T) {
	first := &stubProvider{name: "a", err: &ModelError{Kind: KindAuth, Model: "a", Err: errors.New("bad key")}}
	second := &stubProvider{name: "b", err: &ModelError{Kind: KindQuota, Model: "b", Err: errors.New("quota")}}

	f, err := NewFallbackProvider(first, second)
	if err != nil {
		t.Fatalf("new fallback: %v", err)
	}

	_, err = f.Generate(context.Background(), "prompt")
	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ExhaustedError, got %v", err)
	}
	if exhausted.Attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", exhausted.Attempts)
	}
	if exhausted.Last == nil || exhausted.Last.Kind != KindQuota {
		t.Fatalf("expected last failure to be quota, got %+v", exhausted.Last)
	}
}

func TestFallbackWrapsUnclassifiedErrors(t *testing.T) {
	only := &stubProvider{name: "a", err: errors.New("plain failure")}

	f, err := NewFallbackProvider(only)
	if err != nil {
		t.Fatalf("new fallback: %v", err)
	}

	_, err = f.Generate(context.Background(), "prompt")
	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ExhaustedError, got %v", err)
	}
	if exhausted.Last.Kind != KindUnknown {
		t.Fatalf("expected unknown kind, got %s", exhausted.Last.Kind)
	}
}

func TestFallbackRequiresProviders(t *testing.T) {
	if _, err := NewFallbackProvider(); err == nil {
		t.Fatalf("expected error for empty provider list")
	}
	if _, err := NewGeminiFallback("", "key", nil); err == nil {
		t.Fatalf("expected error for empty model list")
	}
}
