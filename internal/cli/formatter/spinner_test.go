package formatter

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinner_WritesAndClears(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, LoadingText)
	time.Sleep(2 * spinnerInterval)
	stop()

	out := stripANSI(buf.String())
	assert.Contains(t, out, LoadingText)
	assert.Contains(t, buf.String(), "\r\033[K")
}

func TestSpinner_StopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "x")
	s.Stop()
	s.Start()
	s.Stop()
	s.Stop()
}
