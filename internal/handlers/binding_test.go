package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/iotest"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/billing-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    services.CreateClientInput
		expectError bool
	}{
		{
			name:     "Nested Structure",
			key:      "client",
			body:     `{"client": {"name": "Acme", "assignedTo": 3}}`,
			expected: services.CreateClientInput{Name: "Acme", AssignedTo: uintPtr(3)},
		},
		{
			name:     "Flat Structure",
			key:      "client",
			body:     `{"name": "Acme"}`,
			expected: services.CreateClientInput{Name: "Acme"},
		},
		{
			name:     "Missing Key Falls Back To Flat",
			key:      "client",
			body:     `{"other": "value", "name": "Globex"}`,
			expected: services.CreateClientInput{Name: "Globex"},
		},
		{
			name:        "Invalid Flat Content",
			key:         "client",
			body:        `{"name": 42}`,
			expectError: true,
		},
		{
			name:        "Invalid Nested Content",
			key:         "client",
			body:        `{"client": {"assignedTo": "three"}}`,
			expectError: true,
		},
		{
			name:        "Nested Key With Wrong Type",
			key:         "client",
			body:        `{"client": "Acme"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result services.CreateClientInput
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestBindBody_EnumTags(t *testing.T) {
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	tests := []struct {
		name    string
		body    string
		ok      bool
		message string
	}{
		{"valid method", `{"billId": 1, "amount": "10", "method": "CHEQUE"}`, true, ""},
		{"default method", `{"billId": 1, "amount": "10"}`, true, ""},
		{"unknown method", `{"billId": 1, "amount": "10", "method": "BARTER"}`, false, "method must be one of CASH, BANK_TRANSFER, CHEQUE, ONLINE"},
		{"malformed amount", `{"billId": 1, "amount": "ten"}`, false, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/payments", bytes.NewBufferString(tt.body))

			var req services.RecordPaymentInput
			ok := bindBody(c, "payment", &req)
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.JSONEq(t, `{"error":"`+tt.message+`"}`, w.Body.String())
			}
		})
	}
}

func uintPtr(v uint) *uint { return &v }

func TestBindNestedOrFlat_ReadError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	readErr := errors.New("connection reset")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", iotest.ErrReader(readErr))

	var input services.CreateClientInput
	err := BindNestedOrFlat(c, "client", &input)
	assert.ErrorIs(t, err, readErr)

	c.Request = httptest.NewRequest(http.MethodPost, "/", iotest.ErrReader(readErr))
	assert.False(t, bindBody(c, "client", &input))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
