package observability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitSentryDisabled(t *testing.T) {
	flush, err := InitSentry("", "dev", "test")
	require.NoError(t, err)
	require.NotNil(t, flush)
	assert.NotPanics(t, flush)
	assert.NotPanics(t, func() { CaptureErr(errors.New("boom")) })
	assert.NotPanics(t, func() { CaptureErr(nil) })
}

func TestInitSentryBadDSN(t *testing.T) {
	_, err := InitSentry("not a dsn", "dev", "test")
	assert.Error(t, err)
}
