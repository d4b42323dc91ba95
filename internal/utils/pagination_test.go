package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query string
		want  PaginationParams
	}{
		{"", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"?page=3&limit=10", PaginationParams{Page: 3, Limit: 10, Offset: 20}},
		{"?page=0&limit=500", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
		{"?page=abc&limit=-1", PaginationParams{Page: 1, Limit: 20, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/items"+tt.query, nil)
			assert.Equal(t, tt.want, GetPaginationParams(c))
		})
	}
}

func TestNewPaginationResponse(t *testing.T) {
	params := NewPaginationParams(2, 10)

	assert.Equal(t, 3, NewPaginationResponse(params, 21).TotalPages)
	assert.Equal(t, 2, NewPaginationResponse(params, 20).TotalPages)
	assert.Equal(t, 0, NewPaginationResponse(params, 0).TotalPages)
}
