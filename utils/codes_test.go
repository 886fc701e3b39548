package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenCooperativeNumber(t *testing.T) {
	at := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "KOP-2025-000001", GenCooperativeNumber(1, at))
	assert.Equal(t, "KOP-2025-001234", GenCooperativeNumber(1234, at))
}

func TestGenOrderNumber(t *testing.T) {
	at := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD-20250701-00001", GenOrderNumber(1, at))
	assert.Equal(t, "ORD-20250701-00042", GenOrderNumber(42, at))
}
