// Package renderer talks to the booklet rendering service, which turns a
// submitted draft envelope into a printable HTML loan booklet.
package renderer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"loan-booklet-be/pkg/booklet"
)

// Renderer renders a submission envelope into the final booklet document.
type Renderer interface {
	Render(ctx context.Context, env *booklet.Envelope) (string, error)
}

type HTTPRenderer struct {
	BaseURL string
	Client  *http.Client
}

var _ Renderer = &HTTPRenderer{}

func NewHTTPRenderer(baseURL string, timeout time.Duration) *HTTPRenderer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPRenderer{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Render posts the envelope to the scheme's booklet endpoint and returns the
// rendered HTML body.
func (r *HTTPRenderer) Render(ctx context.Context, env *booklet.Envelope) (string, error) {
	path, err := booklet.SubmitPath(env.Scheme)
	if err != nil {
		return "", err
	}

	payload, err := env.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("marshal envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.BaseURL+path, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("renderer request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read renderer response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("renderer returned status %d: %s", resp.StatusCode, string(body))
	}
	return string(body), nil
}
