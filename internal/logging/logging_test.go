package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info().Str("order_id", "702-1234567-1234567").Msg("parsed order")

	got := buf.String()
	assert.Contains(t, got, `"order_id":"702-1234567-1234567"`)
	assert.Contains(t, got, `"message":"parsed order"`)
	assert.Contains(t, got, `"time"`)
}
