package utils_test

import (
	"testing"

	"github.com/aromex/aromex_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := utils.HashPassword("correct horse battery staple")

	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.True(t, utils.CheckPasswordHash("correct horse battery staple", hash))
}

func TestCheckPasswordHash_RejectsWrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.False(t, utils.CheckPasswordHash("incorrect horse", hash))
	assert.False(t, utils.CheckPasswordHash("correct horse battery staple", "not-a-bcrypt-hash"))
}
