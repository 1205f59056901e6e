package server

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var errInvalidUUID = errors.New("invalid_uuid")

func parseOptionalFloat(value string) (*float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseOptionalUUID(value string) (*uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil || parsed == uuid.Nil {
		return nil, errInvalidUUID
	}
	return &parsed, nil
}

func parseUUIDParam(value string, field string) (uuid.UUID, error) {
	parsed, err := parseOptionalUUID(value)
	if err != nil || parsed == nil {
		return uuid.Nil, newValidationError(field, "invalid_"+field, "invalid "+field)
	}
	return *parsed, nil
}
