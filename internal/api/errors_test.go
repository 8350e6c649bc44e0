package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodgram/internal/service"

	"github.com/gin-gonic/gin"
)

func newTestContext(w *httptest.ResponseRecorder) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/test", nil)
	return c
}

func TestErrorResponseWithDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c := newTestContext(w)

	ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeValidation, "invalid request", map[string]string{"name": "required"})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}

	var response APIError
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if response.Code != ErrCodeValidation {
		t.Errorf("expected code %s, got %s", ErrCodeValidation, response.Code)
	}
	if response.Details == nil {
		t.Error("expected details to be set")
	}
}

func TestServiceErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		expectedMsg    string
	}{
		{
			name:           "AlreadyExists",
			err:            &service.Error{Kind: service.KindAlreadyExists, Message: "recipe already in favorites"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrCodeAlreadyExists,
			expectedMsg:    "recipe already in favorites",
		},
		{
			name:           "RelationMissing",
			err:            &service.Error{Kind: service.KindRelationMissing, Message: "recipe was not in favorites"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrCodeRelationMissing,
			expectedMsg:    "recipe was not in favorites",
		},
		{
			name:           "SelfReference",
			err:            &service.Error{Kind: service.KindSelfReference, Message: "cannot subscribe to yourself"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrCodeSelfReference,
			expectedMsg:    "cannot subscribe to yourself",
		},
		{
			name:           "EmptyCart",
			err:            &service.Error{Kind: service.KindEmptyCart, Message: "shopping cart is empty"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrCodeEmptyCart,
			expectedMsg:    "shopping cart is empty",
		},
		{
			name:           "NotFound",
			err:            &service.Error{Kind: service.KindNotFound, Message: "recipe not found"},
			expectedStatus: http.StatusNotFound,
			expectedCode:   ErrCodeNotFound,
			expectedMsg:    "recipe not found",
		},
		{
			name:           "Forbidden",
			err:            &service.Error{Kind: service.KindForbidden, Message: "only the author can change this recipe"},
			expectedStatus: http.StatusForbidden,
			expectedCode:   ErrCodeForbidden,
			expectedMsg:    "only the author can change this recipe",
		},
		{
			name:           "Unexpected",
			err:            errors.New("database is locked"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   ErrCodeInternalError,
			expectedMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c := newTestContext(w)

			ServiceError(c, tt.err, "test")

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			var response APIError
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if response.Code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, response.Code)
			}
			if response.Message != tt.expectedMsg {
				t.Errorf("expected message %s, got %s", tt.expectedMsg, response.Message)
			}
		})
	}
}

func TestShortcutFunctions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		call   func(c *gin.Context)
		status int
	}{
		{"BadRequest", func(c *gin.Context) { BadRequest(c, ErrCodeInvalidRequest, "bad") }, http.StatusBadRequest},
		{"Unauthorized", func(c *gin.Context) { Unauthorized(c, "login required") }, http.StatusUnauthorized},
		{"Forbidden", func(c *gin.Context) { Forbidden(c, "admin only") }, http.StatusForbidden},
		{"NotFound", func(c *gin.Context) { NotFound(c, ErrCodeNotFound, "missing") }, http.StatusNotFound},
		{"InternalError", func(c *gin.Context) { InternalError(c, "boom") }, http.StatusInternalServerError},
		{"InvalidPayload", func(c *gin.Context) { InvalidPayload(c, errors.New("EOF")) }, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tc.call(newTestContext(w))
			if w.Code != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, w.Code)
			}
		})
	}
}
