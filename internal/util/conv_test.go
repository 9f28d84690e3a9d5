package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList("  "))
	assert.Equal(t, []string{"study", "sleep"}, SplitList("study, sleep,,study"))
}

func TestParseDateRange(t *testing.T) {
	from, to, err := ParseDateRange("2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, 2024, from.Year())
	assert.Equal(t, time.March, from.Month())
	assert.Equal(t, 31, to.Day())

	from, to, err = ParseDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)

	// 同一天是合法的闭区间
	_, _, err = ParseDateRange("2024-03-01", "2024-03-01")
	assert.NoError(t, err)

	_, _, err = ParseDateRange("2024-04-01", "2024-03-01")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, _, err = ParseDateRange("03/01/2024", "")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestJWTRoundTrip(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"
	token, err := GenerateJWT(42, "a@example.com", secret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)

	_, err = ParseJWT(token, "another-secret-another-secret-xx")
	assert.Error(t, err)

	expired, err := GenerateJWT(42, "", secret, -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, secret)
	assert.Error(t, err)
}
