// Package prediction talks to the external stiffness prediction service and
// delivers its results to the viewer as discrete update events.
package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	gomath "math"
	"net/http"
	"time"
)

// Lesion is a labeled lesion site reported alongside a prediction. Lesion
// labels select which configured hotspots are active; the values never enter
// the field math.
type Lesion struct {
	Label            string     `json:"label"`
	RelativePosition [3]float32 `json:"relative_position"`
	Severity         float32    `json:"severity"`
}

// PredictResponse mirrors the prediction service's /predict payload.
type PredictResponse struct {
	Prediction float32  `json:"prediction"`
	Stiffness  float32  `json:"stiffness"`
	Confidence float32  `json:"confidence"`
	RiskLevel  string   `json:"risk_level"`
	Timestamp  string   `json:"timestamp"`
	Lesions    []Lesion `json:"lesions,omitempty"`
}

// HealthResponse mirrors the service's /health payload.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// Client is an HTTP client for the prediction service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Predict requests a fresh global stiffness prediction. The returned
// stiffness is sanitized: non-finite values fall back to a neutral 3.0 kPa,
// matching the service's own guard for untrained models.
func (c *Client) Predict(ctx context.Context) (*PredictResponse, error) {
	body := bytes.NewBufferString("{}")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predict request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("predict: service returned %s", resp.Status)
	}

	var out PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("predict: decoding response: %w", err)
	}

	if gomath.IsNaN(float64(out.Stiffness)) || gomath.IsInf(float64(out.Stiffness), 0) {
		out.Stiffness = 3.0
	}
	return &out, nil
}

// Health checks service availability.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("health: service returned %s", resp.Status)
	}

	var out HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("health: decoding response: %w", err)
	}
	return &out, nil
}
