// AngelaMos | 2026
// validation_test.go

package core

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=owner staff"`
}

func TestFieldErrors_UsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Struct(signupForm{Email: "not-an-email", Password: "short", Role: "admin"})
	require.Error(t, err)

	details := FieldErrors(err)
	assert.Equal(t, "must be a valid email address", details["email"])
	assert.Equal(t, "must be at least 8", details["password"])
	assert.Equal(t, "must be one of [owner staff]", details["role"])
}

type orderForm struct {
	Customer string      `json:"customer" validate:"required,notblank"`
	Lines    []orderLine `json:"lines"    validate:"required,min=1,dive"`
}

type orderLine struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

func TestFieldErrors_RejectsBlankStrings(t *testing.T) {
	v := NewValidator()

	for _, name := range []string{"   ", "\t\n"} {
		err := v.Struct(orderForm{Customer: name, Lines: []orderLine{{Quantity: 1}}})
		require.Error(t, err)
		assert.Equal(t, "must not be blank", FieldErrors(err)["customer"])
	}

	assert.NoError(t, v.Struct(orderForm{Customer: " Ada ", Lines: []orderLine{{Quantity: 1}}}))
}

func TestFieldErrors_KeepsNestedPaths(t *testing.T) {
	v := NewValidator()

	err := v.Struct(orderForm{
		Customer: "Ada",
		Lines:    []orderLine{{Quantity: 0}, {Quantity: 2}, {Quantity: -1}},
	})
	require.Error(t, err)

	details := FieldErrors(err)
	assert.Len(t, details, 2)
	assert.Equal(t, "must be greater than 0", details["lines[0].quantity"])
	assert.Equal(t, "must be greater than 0", details["lines[2].quantity"])
	assert.NotContains(t, details, "quantity")
}

func TestDecodeAndValidate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name       string
		body       string
		wantOK     bool
		wantStatus int
	}{
		{
			name:   "valid",
			body:   `{"email":"a@b.co","password":"longenough"}`,
			wantOK: true,
		},
		{
			name:       "malformed json",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing field",
			body:       `{"email":"a@b.co"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			var form signupForm
			ok := DecodeAndValidate(rec, req, v, &form)

			assert.Equal(t, tc.wantOK, ok)
			if !tc.wantOK {
				assert.Equal(t, tc.wantStatus, rec.Code)
			}
		})
	}
}
