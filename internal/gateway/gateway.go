// Package gateway talks to the external AI service that turns prescription
// images into structured medication candidates and checks drug interactions.
package gateway

import (
	"context"

	"pillpal/internal/models"
)

// Parser defines the extraction operations required by the application core.
// Both operations are best-effort: the caller treats any error as "nothing
// extracted" / "no warning" rather than surfacing it to the user.
type Parser interface {
	// ParsePrescription extracts medication candidates from a base64-encoded
	// prescription image. An empty slice is a valid, non-error result.
	ParsePrescription(ctx context.Context, imageBase64 string) ([]models.Candidate, error)
	// CheckInteractions returns a human-readable warning for the given set of
	// medication names, or "" when there is nothing to warn about. Fewer than
	// two names short-circuits to "" without consulting the service.
	CheckInteractions(ctx context.Context, names []string) (string, error)
}

// Stub is a Parser that recognizes nothing and never warns. It stands in when
// no API key is configured and keeps tests off the network.
type Stub struct{}

// ParsePrescription returns an empty candidate list.
func (Stub) ParsePrescription(ctx context.Context, imageBase64 string) ([]models.Candidate, error) {
	return []models.Candidate{}, nil
}

// CheckInteractions returns no warning.
func (Stub) CheckInteractions(ctx context.Context, names []string) (string, error) {
	return "", nil
}
