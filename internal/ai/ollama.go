package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// OllamaProvider talks to a local Ollama daemon. It exists so the backend
// can run without Gemini credentials during development.
type OllamaProvider struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3:latest"
	}
	return &OllamaProvider{
		BaseURL: baseURL,
		Model:   model,
		Client:  &http.Client{Timeout: 90 * time.Second},
	}
}

type ollamaGenerateReq struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResp struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

func (p *OllamaProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.Client == nil {
		return "", &ModelError{Kind: KindUnknown, Model: p.Model, Err: errors.New("ollama: http client is nil")}
	}

	b, err := json.Marshal(ollamaGenerateReq{Model: p.Model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", &ModelError{Kind: KindUnknown, Model: p.Model, Err: err}
	}

	url := fmt.Sprintf("%s/api/generate", p.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", &ModelError{Kind: KindUnknown, Model: p.Model, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", &ModelError{Kind: KindUnknown, Model: p.Model, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ModelError{
			Kind:  classifyStatus(resp.StatusCode),
			Model: p.Model,
			Err:   fmt.Errorf("ollama: status %d", resp.StatusCode),
		}
	}

	var decoded ollamaGenerateResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &ModelError{Kind: KindUnknown, Model: p.Model, Err: err}
	}
	if decoded.Error != "" {
		return "", &ModelError{Kind: KindUnknown, Model: p.Model, Err: errors.New(decoded.Error)}
	}

	text := strings.TrimSpace(decoded.Response)
	if text == "" {
		return "", &ModelError{Kind: KindUnknown, Model: p.Model, Err: ErrEmptyResponse}
	}
	return text, nil
}
