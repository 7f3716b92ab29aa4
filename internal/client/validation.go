package client

import (
	"strconv"
	"strings"

	apperrors "github.com/createmusic-space/musicgen/internal/errors"
	"github.com/createmusic-space/musicgen/internal/models"
)

// ValidationMessage is shown to the user when the generator form is rejected
const ValidationMessage = "Please select a scale and enter a valid length."

// ValidateGenerationForm checks raw form input and builds the request body.
// No request may be issued unless this returns a nil error.
func ValidateGenerationForm(scale, length string) (models.GenerationRequest, error) {
	if strings.TrimSpace(scale) == "" {
		return models.GenerationRequest{}, apperrors.NewValidationError("scale", apperrors.ErrNoScale)
	}
	s, ok := models.LookupScale(scale)
	if !ok {
		return models.GenerationRequest{}, apperrors.NewValidationError("scale", apperrors.ErrNoScale)
	}

	n, err := strconv.Atoi(strings.TrimSpace(length))
	if err != nil || n <= 0 {
		return models.GenerationRequest{}, apperrors.NewValidationError("length", apperrors.ErrInvalidLength)
	}

	return models.GenerationRequest{Scale: s.Value(), Length: n}, nil
}
