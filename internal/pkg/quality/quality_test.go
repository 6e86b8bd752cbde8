package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSLA(t *testing.T) {
	assert.Equal(t, 100, SLA(0, 100))
	assert.Equal(t, 95, SLA(5, 100))
	assert.Equal(t, 0, SLA(100, 100))
	// integer truncation, not rounding
	assert.Equal(t, 99, SLA(1, 300))
}

func TestSLANoCalls(t *testing.T) {
	assert.Equal(t, 100, SLA(0, 0))
}

func TestApdex(t *testing.T) {
	assert.Equal(t, 100, Apdex(100, 0, 0))
	assert.Equal(t, 0, Apdex(0, 0, 100))
	// 80 satisfied + 10 (half of 20 tolerating) out of 100
	assert.Equal(t, 90, Apdex(80, 20, 0))
	assert.Equal(t, 50, Apdex(25, 50, 25))
}

func TestApdexNoSamples(t *testing.T) {
	assert.Equal(t, 100, Apdex(0, 0, 0))
}
