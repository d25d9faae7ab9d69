package ai

import (
	"context"
	"errors"
	"fmt"
)

// Provider is the language-model capability: one prompt in, one reply out.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrEmptyResponse marks a model call that succeeded at the transport level
// but produced no text. Callers treat it like any other model failure.
var ErrEmptyResponse = errors.New("ai: empty response from model")

type ErrorKind string

const (
	KindAuth     ErrorKind = "auth"
	KindQuota    ErrorKind = "quota"
	KindNotFound ErrorKind = "not_found"
	KindUnknown  ErrorKind = "unknown"
)

// ModelError classifies a failed model invocation. It is never surfaced to
// end users; the chat dispatcher maps it to a fixed fallback reply.
type ModelError struct {
	Kind  ErrorKind
	Model string
	Err   error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("ai: model %s failed (%s): %v", e.Model, e.Kind, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

func classifyStatus(status int) ErrorKind {
	switch {
	case status == 401 || status == 403:
		return KindAuth
	case status == 429:
		return KindQuota
	case status == 404:
		return KindNotFound
	default:
		return KindUnknown
	}
}
