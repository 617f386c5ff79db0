package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/moodshopapp/moodshop-server/internal/errors"
)

type feedbackInput struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
	Mood    string `json:"mood" validate:"required"`
}

func TestValidate_Passes(t *testing.T) {
	v := New()

	err := v.Validate(feedbackInput{Rating: 5, Mood: "happy"})
	assert.NoError(t, err)
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	v := New()

	err := v.Validate(feedbackInput{Rating: 9})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, domainerrors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "rating")
	assert.Contains(t, details, "mood")
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(feedbackInput{})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, domainerrors.As(err, &domainErr))
	details := domainErr.Details.(map[string]string)

	_, hasGoName := details["Rating"]
	assert.False(t, hasGoName, "details should use json names: %v", details)
	assert.Contains(t, details, "rating")
}
