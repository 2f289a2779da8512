package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleForm struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,email"`
	Message string `validate:"required,min=10"`
}

func TestValidate_Valid(t *testing.T) {
	fields := Validate(&sampleForm{
		Name:    "Aizhan",
		Email:   "aizhan@example.kz",
		Message: "the heating in unit 4 is broken",
	})

	assert.Nil(t, fields)
}

func TestValidate_ReportsPerField(t *testing.T) {
	fields := Validate(&sampleForm{Email: "not-an-email", Message: "short"})

	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be at least 10 characters", fields["message"])
}
