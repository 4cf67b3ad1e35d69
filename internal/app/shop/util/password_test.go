package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Success(t *testing.T) {
	hash, err := HashPassword("mysecretpassword123")

	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "mysecretpassword123", hash)
}

func TestHashPassword_DifferentHashesForSamePassword(t *testing.T) {
	hash1, err1 := HashPassword("mysecretpassword123")
	hash2, err2 := HashPassword("mysecretpassword123")

	require.NoError(t, err1)
	require.NoError(t, err2)
	// bcrypt использует случайную соль, хэши разные
	assert.NotEqual(t, hash1, hash2)
}

func TestCheckPassword_CorrectPassword(t *testing.T) {
	hash, _ := HashPassword("correctpassword123")

	assert.True(t, CheckPassword("correctpassword123", hash))
}

func TestCheckPassword_WrongPassword(t *testing.T) {
	hash, _ := HashPassword("correctpassword123")

	assert.False(t, CheckPassword("wrongpassword", hash))
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	assert.False(t, CheckPassword("somepassword", "not-a-valid-bcrypt-hash"))
}

func TestCheckPassword_CaseSensitive(t *testing.T) {
	hash, _ := HashPassword("MyPassword123")

	assert.True(t, CheckPassword("MyPassword123", hash))
	assert.False(t, CheckPassword("mypassword123", hash))
}
