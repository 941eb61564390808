package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBundleByID(t *testing.T) {
	bundle, ok := BundleByID("bundle_25")
	assert.True(t, ok)
	assert.Equal(t, int64(2500), bundle.AmountMinor)
	assert.Equal(t, int64(300), bundle.Credits)

	_, ok = BundleByID("bundle_9000")
	assert.False(t, ok)
}

func TestCreditsForAmount(t *testing.T) {
	credits, ok := CreditsForAmount(5000)
	assert.True(t, ok)
	assert.Equal(t, int64(750), credits)

	_, ok = CreditsForAmount(4999)
	assert.False(t, ok)
}
