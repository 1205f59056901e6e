package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRentalReceipt(t *testing.T) {
	out, err := New().GenerateRentalReceipt(context.Background(), ReceiptData{
		CompanyName:  "Scootfleet",
		RentalID:     "5e0f8c1a-1c1e-4c1a-9a51-1c6c1b8f9a11",
		AccountName:  "Ana",
		AccountEmail: "ana@example.com",
		ScooterID:    "b1d7a1a0-3b1d-4d8c-9d1a-2f1c9c0e7d22",
		ScooterModel: "Xiaomi Pro 2",
		RentalType:   "HOURLY",
		StartedAt:    "2026-10-14 09:00 UTC",
		EndedAt:      "2026-10-14 11:00 UTC",
		Hours:        "2.00",
		Distance:     "10.00",
		Total:        "10.00",
		Balance:      "90.00",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateRentalReceiptRequiresRentalID(t *testing.T) {
	_, err := New().GenerateRentalReceipt(context.Background(), ReceiptData{})
	assert.ErrorIs(t, err, ErrMissingRentalID)
}
