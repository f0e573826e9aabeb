package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSplitPart(t *testing.T) {
	part, err := GetSplitPart("https://ikman.lk/en/ad/land-in-nugegoda", "/", 5)
	assert.NoError(t, err)
	assert.Equal(t, "land-in-nugegoda", part)

	_, err = GetSplitPart("a/b", "/", 5)
	assert.Error(t, err)
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("Land for sale in Nugegoda", []string{"nugegoda"}))
	assert.True(t, ContainsAny("MAHARAGAMA town", []string{"kandy", "Maharagama"}))
	assert.False(t, ContainsAny("Land in Galle", []string{"colombo"}))
	assert.False(t, ContainsAny("Land in Galle", nil))
	assert.False(t, ContainsAny("Land in Galle", []string{"  "}))
}
