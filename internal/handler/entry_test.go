package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ashdowne/daybook/internal/constants"
	"github.com/ashdowne/daybook/internal/dto"
	"github.com/ashdowne/daybook/internal/model"
	"github.com/gin-gonic/gin"
)

// A malformed user_id must be rejected as a client error before any lookup
// runs, never panic.
func TestEntryQueriesRejectMalformedUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dto.RegisterValidations()
	h := &EntryHandler{}

	tests := []struct {
		name   string
		target string
		invoke func(c *gin.Context)
	}{
		{
			name:   "ByDate",
			target: "/api/v1/entries/date/2024-03-15?user_id=not-a-uuid",
			invoke: func(c *gin.Context) {
				c.Params = gin.Params{{Key: "date", Value: "2024-03-15"}}
				h.ByDate(c)
			},
		},
		{
			name:   "Calendar",
			target: "/api/v1/entries/calendar?user_id=not-a-uuid&start_date=2024-03-01&end_date=2024-03-31",
			invoke: func(c *gin.Context) {
				h.Calendar(c)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, tt.target, nil)
			c.Set(constants.GinKeyCurrentUser, &model.User{})

			tt.invoke(c)

			if w.Code != http.StatusUnprocessableEntity {
				t.Errorf("Expected status 422, got %d", w.Code)
			}
		})
	}
}
