// Package classifier maps report images to authority labels. The shipped
// implementation calls a remote prediction endpoint; the interface admits an
// in-process model as an alternate strategy chosen at composition time.
package classifier

import (
	"context"
	"encoding/json"
	"strings"
)

// Uncertain is the classifier's explicit no-match marker. Callers treat it
// the same as a missing label.
const Uncertain = "Uncertain"

type Prediction struct {
	Label      string
	Confidence float64
	// Raw is the untouched response body, persisted with the report.
	Raw json.RawMessage
}

type Classifier interface {
	Predict(ctx context.Context, imageData string) (*Prediction, error)
}

// StripDataURL removes a "data:<mime>;base64," prefix, leaving raw base64.
// Input without the prefix passes through unchanged.
func StripDataURL(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.Index(s, ";base64,"); i >= 0 {
		return s[i+len(";base64,"):]
	}
	return s
}
