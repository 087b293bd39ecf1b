package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRunStoreConnectionInvalidDSN(t *testing.T) {
	// A malformed keyword/value DSN fails at ping time without any network
	// access; the helper must surface the error rather than hand back a
	// half-configured pool.
	db, err := NewRunStoreConnection("=bad dsn=")

	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "run store")
}
