package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	logg := NewLogger()
	assert.NotNil(t, logg)

	// The logger must be usable right after construction
	logg.Infof("logger ready: %v", true)
}
