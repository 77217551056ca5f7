package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftsupply/backend/internal/interfaces/http/dto"
)

type validationInput struct {
	Email  string `json:"email" binding:"required,email"`
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Status string `json:"status" binding:"omitempty,order_status"`
	Role   string `json:"role" binding:"omitempty,user_role"`
	Filter string `json:"filter" binding:"omitempty,inquiry_status"`
}

func newValidationRouter() *gin.Engine {
	SetupValidator()

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req validationInput
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return router
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleValidationError_ListsFieldsByJSONName(t *testing.T) {
	rec := postJSON(newValidationRouter(), `{"email":"not-an-email","rating":9}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

	messages := map[string]string{}
	for _, d := range resp.Error.Details {
		messages[d.Field] = d.Message
	}
	assert.Equal(t, "Invalid email format", messages["email"])
	assert.Equal(t, "Must be at most 5", messages["rating"])
}

func TestHandleValidationError_MalformedJSON(t *testing.T) {
	rec := postJSON(newValidationRouter(), `{"email":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
	assert.Empty(t, resp.Error.Details)
}

func TestSetupValidator_MarketplaceTags(t *testing.T) {
	router := newValidationRouter()
	base := `"email":"buyer@example.com","rating":4`

	tests := []struct {
		name      string
		extra     string
		wantField string
	}{
		{"lower-case order status", `"status":"confirmed"`, ""},
		{"unknown order status", `"status":"shipped"`, "status"},
		{"mixed-case role", `"role":"Seller"`, ""},
		{"unknown role", `"role":"admin"`, "role"},
		{"inquiry status", `"filter":"RESPONDED"`, ""},
		{"unknown inquiry status", `"filter":"open"`, "filter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(router, "{"+base+","+tt.extra+"}")
			if tt.wantField == "" {
				assert.Equal(t, http.StatusOK, rec.Code)
				return
			}
			require.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec)
			require.Len(t, resp.Error.Details, 1)
			assert.Equal(t, tt.wantField, resp.Error.Details[0].Field)
		})
	}
}
