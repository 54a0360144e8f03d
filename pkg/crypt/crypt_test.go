package crypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpenRoundtrip(t *testing.T) {
	sealed, err := Seal("session-id-12345")
	require.NoError(t, err)
	assert.NotEqual(t, "session-id-12345", sealed)

	plain, err := Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "session-id-12345", plain)
}

func TestSealProducesFreshNonce(t *testing.T) {
	a, err := Seal("same input")
	require.NoError(t, err)
	b, err := Seal("same input")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestOpenRejectsTampering(t *testing.T) {
	sealed, err := Seal("cookie value")
	require.NoError(t, err)

	// Flip a character inside the ciphertext.
	mid := len(sealed) / 2
	altered := sealed[:mid] + "A" + sealed[mid+1:]
	if altered == sealed {
		altered = sealed[:mid] + "B" + sealed[mid+1:]
	}

	_, err = Open(altered)
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestOpenRejectsGarbage(t *testing.T) {
	_, err := Open("not base64 at all!!!")
	assert.ErrorIs(t, err, ErrDecrypt)

	_, err = Open("")
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestJSONRoundtrip(t *testing.T) {
	type payload struct {
		StaffID uint   `json:"staff_id"`
		Role    string `json:"role"`
	}

	sealed, err := SealJSON(payload{StaffID: 7, Role: "manager"})
	require.NoError(t, err)

	var got payload
	require.NoError(t, OpenJSON(sealed, &got))
	assert.Equal(t, uint(7), got.StaffID)
	assert.Equal(t, "manager", got.Role)
}
