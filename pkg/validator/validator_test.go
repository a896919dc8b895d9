package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Notes    string `json:"notes" validate:"omitempty,max=10"`
	Slot     string `json:"slot" validate:"omitempty,timeslot"`
}

func TestValidatePassesValidStruct(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&sampleRequest{
		Email:    "budi@example.com",
		Password: "supersecret",
		Slot:     "09:30",
	})

	assert.NoError(t, err)
}

func TestFormatValidationErrorsUsesJSONNames(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&sampleRequest{
		Email:    "not-an-email",
		Password: "short",
		Notes:    "way too long for the cap",
	})
	require.Error(t, err)

	formatted := cv.FormatValidationErrors(err)
	assert.Equal(t, "email must be a valid email address", formatted["email"])
	assert.Equal(t, "password must be at least 8 characters", formatted["password"])
	assert.Equal(t, "notes must be at most 10 characters", formatted["notes"])
}

func TestFormatValidationErrorsRequired(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&sampleRequest{})
	require.Error(t, err)

	formatted := cv.FormatValidationErrors(err)
	assert.Equal(t, "email is required", formatted["email"])
	assert.Equal(t, "password is required", formatted["password"])
}

func TestTimeslotRule(t *testing.T) {
	cv := NewValidator()

	for _, slot := range []string{"00:00", "09:30", "23:59"} {
		err := cv.Validate(&sampleRequest{
			Email:    "budi@example.com",
			Password: "supersecret",
			Slot:     slot,
		})
		assert.NoError(t, err, slot)
	}

	for _, slot := range []string{"24:00", "9:30", "09:60", "0930", "morning"} {
		err := cv.Validate(&sampleRequest{
			Email:    "budi@example.com",
			Password: "supersecret",
			Slot:     slot,
		})
		require.Error(t, err, slot)
		formatted := cv.FormatValidationErrors(err)
		assert.Equal(t, "slot must be a time in HH:MM format", formatted["slot"])
	}
}
