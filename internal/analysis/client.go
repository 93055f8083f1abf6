// Package analysis is the client for the external vision-language
// service that answers questions about viewer screenshots.
package analysis

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrorKind categorizes analysis failures for the chat UI. Every failure
// surfaces as a message; none of them may crash the viewer.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotConfigured
	KindPayloadTooLarge
	KindRateLimited
	KindTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotConfigured:
		return "not-configured"
	case KindPayloadTooLarge:
		return "payload-too-large"
	case KindRateLimited:
		return "rate-limited"
	case KindTimeout:
		return "timeout"
	}
	return "unknown"
}

// ServiceError is a categorized analysis failure.
type ServiceError struct {
	Kind    ErrorKind
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("analysis: %s: %s", e.Kind, e.Message)
}

// Config holds the external service coordinates.
type Config struct {
	Endpoint      string
	APIKey        string
	Model         string
	Timeout       time.Duration
	MaxImageBytes int
}

// Client calls the vision service. Zero-value configs are usable: every
// request then fails with a not-configured error instead of panicking.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds a client; Timeout and MaxImageBytes get defaults when
// unset.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxImageBytes <= 0 {
		cfg.MaxImageBytes = 4 << 20
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{},
	}
}

type analyzeRequest struct {
	Model    string `json:"model,omitempty"`
	Question string `json:"question"`
	Image    string `json:"image"` // base64 WebP
	MimeType string `json:"mime_type"`
}

type analyzeResponse struct {
	Answer string `json:"answer"`
	Error  string `json:"error,omitempty"`
}

// Analyze sends the question plus a WebP screenshot and returns the
// service's answer text. All failures come back as *ServiceError.
func (c *Client) Analyze(ctx context.Context, question string, imageWebP []byte) (string, error) {
	if c.cfg.Endpoint == "" || c.cfg.APIKey == "" {
		return "", &ServiceError{Kind: KindNotConfigured, Message: "analysis service endpoint or API key not configured"}
	}
	if len(imageWebP) > c.cfg.MaxImageBytes {
		return "", &ServiceError{
			Kind:    KindPayloadTooLarge,
			Message: fmt.Sprintf("screenshot is %d bytes, limit %d", len(imageWebP), c.cfg.MaxImageBytes),
		}
	}

	body, err := json.Marshal(analyzeRequest{
		Model:    c.cfg.Model,
		Question: question,
		Image:    base64.StdEncoding.EncodeToString(imageWebP),
		MimeType: "image/webp",
	})
	if err != nil {
		return "", &ServiceError{Kind: KindUnknown, Message: err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &ServiceError{Kind: KindUnknown, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &ServiceError{Kind: KindTimeout, Message: "analysis request timed out"}
		}
		return "", &ServiceError{Kind: KindUnknown, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &ServiceError{Kind: KindRateLimited, Message: "analysis service rate limit exceeded"}
	case resp.StatusCode == http.StatusRequestEntityTooLarge:
		return "", &ServiceError{Kind: KindPayloadTooLarge, Message: "analysis service rejected the image size"}
	case resp.StatusCode != http.StatusOK:
		return "", &ServiceError{
			Kind:    KindUnknown,
			Message: fmt.Sprintf("analysis service returned %d: %s", resp.StatusCode, truncate(raw, 200)),
		}
	}

	var out analyzeResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &ServiceError{Kind: KindUnknown, Message: "undecodable analysis response"}
	}
	if out.Error != "" {
		return "", &ServiceError{Kind: KindUnknown, Message: out.Error}
	}
	return out.Answer, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "…"
}
