package tkhttp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStatusFillsKnownReason(t *testing.T) {
	s := NewStatus(404, "")
	assert.Equal(t, "Not Found", s.Reason)
	assert.Equal(t, "404 Not Found", s.String())
}

func TestNewStatusKeepsExplicitReason(t *testing.T) {
	s := NewStatus(200, "Superb")
	assert.Equal(t, "Superb", s.Reason)
}

func TestNewStatusUnknownCodeReason(t *testing.T) {
	s := NewStatus(499, "")
	assert.Equal(t, "Unknown", s.Reason)
}

func TestHasBodyInformationalAndNoContent(t *testing.T) {
	assert.False(t, HasBody(100))
	assert.False(t, HasBody(204))
	assert.False(t, HasBody(304))
}

func TestHasBodyOrdinaryStatus(t *testing.T) {
	assert.True(t, HasBody(200))
	assert.True(t, HasBody(404))
	assert.True(t, HasBody(500))
}
