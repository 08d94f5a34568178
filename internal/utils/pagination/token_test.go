package pagination_test

import (
	"testing"
	"time"

	"github.com/caseledger/caseledger/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken_RoundTrip(t *testing.T) {
	entryDate := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, time.February, 10, 14, 5, 3, 123456789, time.UTC)

	token := pagination.EncodeToken(entryDate, createdAt)

	gotDate, gotCreated, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, entryDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeToken("aGVsbG8=") // decodes, but no separator
	assert.Error(t, err)
}

func TestDateBasedToken_RoundTrip(t *testing.T) {
	date := time.Date(2025, time.February, 10, 14, 5, 3, 0, time.UTC)

	token := pagination.EncodeDateBasedToken(date)
	got, err := pagination.DecodeDateBasedToken(token)
	require.NoError(t, err)
	assert.True(t, date.Equal(got))
}
