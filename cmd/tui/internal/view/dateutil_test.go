package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate(t *testing.T) {
	now := time.Date(2024, 1, 15, 18, 30, 0, 0, time.UTC)

	due, err := parseDueDate("", now)
	require.NoError(t, err)
	assert.Nil(t, due)

	due, err = parseDueDate("2024-01-15", now)
	require.NoError(t, err)
	require.NotNil(t, due)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *due)

	_, err = parseDueDate("2024-01-14", now)
	assert.ErrorIs(t, err, errDueInPast)

	_, err = parseDueDate("15/01/2024", now)
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Jan 05, 2024", FormatDate(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-01-05", today(time.Date(2024, 1, 5, 23, 0, 0, 0, time.UTC)))
}
