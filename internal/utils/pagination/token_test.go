package pagination_test

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/finbooks/finbooks_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	entryDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 3, 15, 9, 42, 17, 123456789, time.UTC)
	rowID := uuid.NewString()

	token := pagination.EncodeToken(entryDate, createdAt, rowID)

	gotDate, gotCreated, gotID, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, gotDate.Equal(entryDate))
	assert.True(t, gotCreated.Equal(createdAt))
	assert.Equal(t, rowID, gotID)
}

func TestEncodeToken_RowIDBreaksTies(t *testing.T) {
	// Rows written in one transaction share both timestamps; the cursor must
	// still distinguish them.
	entryDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 3, 15, 9, 42, 17, 0, time.UTC)

	first := pagination.EncodeToken(entryDate, createdAt, uuid.NewString())
	second := pagination.EncodeToken(entryDate, createdAt, uuid.NewString())

	assert.NotEqual(t, first, second)
}

func TestDecodeToken_RejectsNonBase64(t *testing.T) {
	_, _, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeToken_RejectsMissingParts(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("2026-03-15T00:00:00Z|2026-03-15T09:42:17Z"))
	_, _, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
}

func TestDecodeToken_RejectsUnparsableTimes(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("yesterday|today|some-id"))
	_, _, _, err := pagination.DecodeToken(token)
	assert.Error(t, err)
}
