package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiGenerateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "models/gemini-test:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "secret" {
			t.Errorf("api key missing from request")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  hi there  "}]}}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "secret", "gemini-test")
	got, err := p.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got != "hi there" {
		t.Fatalf("expected trimmed text, got %q", got)
	}
}

func TestGeminiStatusClassification(t *testing.T) {
	cases := []struct {
		status int
		want   ErrorKind
	}{
		{401, KindAuth},
		{403, KindAuth},
		{429, KindQuota},
		{404, KindNotFound},
		{500, KindUnknown},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		p := NewGeminiProvider(srv.URL, "secret", "gemini-test")
		_, err := p.Generate(context.Background(), "prompt")
		srv.Close()

		var me *ModelError
		if !errors.As(err, &me) {
			t.Fatalf("status %d: expected ModelError, got %v", tc.status, err)
		}
		if me.Kind != tc.want {
			t.Fatalf("status %d: expected kind %s, got %s", tc.status, tc.want, me.Kind)
		}
	}
}

func TestGeminiEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"   "}]}}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "secret", "gemini-test")
	_, err := p.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGeminiMissingAPIKey(t *testing.T) {
	p := NewGeminiProvider("http://unused", "", "gemini-test")
	_, err := p.Generate(context.Background(), "prompt")
	var me *ModelError
	if !errors.As(err, &me) || me.Kind != KindAuth {
		t.Fatalf("expected auth ModelError, got %v", err)
	}
}
