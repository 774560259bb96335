package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/fixmycity/fixmycity-backend/internal/config"
)

// HTTPClassifier calls a remote prediction endpoint with the raw base64
// image and interprets its label field.
type HTTPClassifier struct {
	url    string
	client *http.Client
}

func NewHTTPClassifier(cfg *config.Config) *HTTPClassifier {
	return &HTTPClassifier{
		url:    cfg.ClassifierURL,
		client: &http.Client{Timeout: cfg.ClassifierTimeout},
	}
}

type predictRequest struct {
	ImageBase64 string `json:"image_base64"`
}

type predictResponse struct {
	Prediction string  `json:"prediction"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

func (c *HTTPClassifier) Predict(ctx context.Context, imageData string) (*Prediction, error) {
	payload, err := json.Marshal(predictRequest{ImageBase64: StripDataURL(imageData)})
	if err != nil {
		return nil, fmt.Errorf("marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call classifier: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read classifier response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode classifier response: %w", err)
	}

	label := out.Prediction
	if label == "" {
		label = out.Label
	}

	return &Prediction{
		Label:      label,
		Confidence: out.Confidence,
		Raw:        json.RawMessage(body),
	}, nil
}
