package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	type req struct {
		PlanID string `json:"planId" validate:"required"`
		Email  string `json:"email" validate:"required,email"`
	}

	err := validator.New().Struct(req{Email: "not-an-email"})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "field PlanID is a required field, field Email must be a valid email", resp.Message)
}

func TestOKAndError(t *testing.T) {
	assert.Equal(t, Response{Status: StatusOK, Message: "done", Data: 1}, OK("done", 1))
	assert.Equal(t, Response{Status: StatusError, Message: "boom"}, Error("boom"))
}
