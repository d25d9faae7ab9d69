package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type GeminiProvider struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerateReq struct {
	Contents []geminiContent `json:"contents"`
}

type geminiGenerateResp struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func NewGeminiProvider(baseURL, apiKey, model string) *GeminiProvider {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	return &GeminiProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		Client:  &http.Client{Timeout: 90 * time.Second},
	}
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.Client == nil {
		return "", &ModelError{Kind: KindUnknown, Model: p.Model, Err: errors.New("gemini: http client is nil")}
	}
	if strings.TrimSpace(p.APIKey) == "" {
		return "", &ModelError{Kind: KindAuth, Model: p.Model, Err: errors.New("gemini: api key is required")}
	}
	model := strings.TrimSpace(p.Model)
	if model == "" {
		return "", &ModelError{Kind: KindNotFound, Model: p.Model, Err: errors.New("gemini: model is required")}
	}

	reqBody := geminiGenerateReq{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ModelError{Kind: KindUnknown, Model: model, Err: err}
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(p.BaseURL, "/"), model, p.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", &ModelError{Kind: KindUnknown, Model: model, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", &ModelError{Kind: KindUnknown, Model: model, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return "", &ModelError{
			Kind:  classifyStatus(resp.StatusCode),
			Model: model,
			Err:   fmt.Errorf("gemini: %s", msg),
		}
	}

	var decoded geminiGenerateResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &ModelError{Kind: KindUnknown, Model: model, Err: err}
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return "", &ModelError{
			Kind:  classifyStatus(decoded.Error.Code),
			Model: model,
			Err:   errors.New(decoded.Error.Message),
		}
	}

	text := ""
	if len(decoded.Candidates) > 0 {
		var sb strings.Builder
		for _, part := range decoded.Candidates[0].Content.Parts {
			sb.WriteString(part.Text)
		}
		text = strings.TrimSpace(sb.String())
	}
	if text == "" {
		return "", &ModelError{Kind: KindUnknown, Model: model, Err: ErrEmptyResponse}
	}
	return text, nil
}
