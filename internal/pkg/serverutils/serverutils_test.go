package serverutils

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int64
		totalPages int
	}{
		{"exact division", 1, 10, 30, 3},
		{"rounds up", 1, 10, 25, 3},
		{"single partial page", 1, 10, 3, 1},
		{"empty", 1, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.page, p.CurrentPage)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.total, p.TotalItems)
			assert.Equal(t, tt.limit, p.ItemsPerPage)
		})
	}
}

func TestValidateRequestUsesJsonFieldNames(t *testing.T) {
	type payload struct {
		Title string `json:"title" validate:"required,max=5"`
		Color string `json:"color" validate:"omitempty,len=7,hexcolor"`
	}

	err := ValidateRequest(payload{})
	require.Error(t, err)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Validation failed", appErr.Message)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, "title", appErr.Details[0].Field)
	assert.Equal(t, "title is required", appErr.Details[0].Message)

	err = ValidateRequest(payload{Title: "toolong", Color: "#12345"})
	require.ErrorAs(t, err, &appErr)
	require.Len(t, appErr.Details, 2)

	assert.NoError(t, ValidateRequest(payload{Title: "ok", Color: "#A1b2C3"}))
}

func TestValidateRequestRejectsShorthandHexColor(t *testing.T) {
	type payload struct {
		Color string `json:"color" validate:"omitempty,len=7,hexcolor"`
	}
	// #fff passes the bare hexcolor tag, the length gate closes that hole.
	assert.Error(t, ValidateRequest(payload{Color: "#fff"}))
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := assert.AnError
	err := NewInternalError(cause)
	assert.Equal(t, fiber.StatusInternalServerError, err.Status)
	assert.Equal(t, "Server error", err.Message)
	assert.ErrorIs(t, err, cause)
}
