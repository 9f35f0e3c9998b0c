package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	raw, err := encode("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", string(raw))

	raw, err = encode(struct {
		ID   string `json:"id"`
		Rent int    `json:"rent"`
	}{ID: "turf-1", Rent: 700})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"turf-1","rent":700}`, string(raw))

	_, err = encode(make(chan int))
	assert.Error(t, err)
}
