package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	accountdomain "github.com/smallbiznis/scootfleet/internal/account/domain"
	"github.com/smallbiznis/scootfleet/internal/authorization"
	paymentdomain "github.com/smallbiznis/scootfleet/internal/payment/domain"
	rentaldomain "github.com/smallbiznis/scootfleet/internal/rental/domain"
	scooterdomain "github.com/smallbiznis/scootfleet/internal/scooter/domain"
	"github.com/smallbiznis/scootfleet/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{name: "engine not found", err: rentaldomain.NotFound("account"), status: http.StatusNotFound, kind: "not_found"},
		{name: "engine conflict", err: rentaldomain.Conflict("scooter is not available"), status: http.StatusConflict, kind: "conflict"},
		{name: "engine invalid state", err: rentaldomain.InvalidState("rental is not active"), status: http.StatusUnprocessableEntity, kind: "invalid_state"},
		{name: "wrapped engine error", err: fmt.Errorf("start: %w", rentaldomain.Conflict("busy")), status: http.StatusConflict, kind: "conflict"},
		{name: "email taken", err: accountdomain.ErrEmailTaken, status: http.StatusConflict, kind: "conflict"},
		{name: "scooter rented", err: scooterdomain.ErrScooterRented, status: http.StatusConflict, kind: "conflict"},
		{name: "payment transition", err: paymentdomain.ErrInvalidTransition, status: http.StatusUnprocessableEntity, kind: "invalid_state"},
		{name: "account validation", err: accountdomain.ErrInvalidEmail, status: http.StatusBadRequest, kind: "validation_error"},
		{name: "page token", err: pagination.ErrInvalidPageToken, status: http.StatusBadRequest, kind: "validation_error"},
		{name: "casbin forbidden", err: authorization.ErrForbidden, status: http.StatusForbidden, kind: "forbidden"},
		{name: "unauthorized", err: ErrUnauthorized, status: http.StatusUnauthorized, kind: "unauthorized"},
		{name: "rate limited", err: ErrRateLimited, status: http.StatusTooManyRequests, kind: "rate_limited"},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError, kind: "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, payload := mapError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.kind, payload.Type)
		})
	}
}

func TestMapErrorHidesInternalDetails(t *testing.T) {
	_, payload := mapError(errors.New("pq: connection refused"))
	assert.Equal(t, "internal server error", payload.Message)
}

func TestClassifyErrorForLog(t *testing.T) {
	kind, code := classifyErrorForLog(rentaldomain.Conflict("scooter is not available"))
	assert.Equal(t, "conflict", kind)
	assert.Equal(t, "conflict", code)

	kind, code = classifyErrorForLog(scooterdomain.ErrInvalidBattery)
	assert.Equal(t, "validation_error", kind)
	assert.Equal(t, "invalid_battery_level", code)

	kind, code = classifyErrorForLog(accountdomain.ErrEmailTaken)
	assert.Equal(t, "conflict", kind)
	assert.Equal(t, "email_taken", code)

	kind, code = classifyErrorForLog(errors.New("boom"))
	assert.Equal(t, "internal_error", kind)
	assert.Equal(t, "internal_error", code)
}
