package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestGenerateRandomPassword(t *testing.T) {
	password := GenerateRandomPassword(12)
	assert.Len(t, password, 12)

	// generated passwords must satisfy the registration minimum so the
	// employee can change them through the normal flow
	longer := GenerateRandomPassword(8)
	assert.Len(t, longer, 8)
}

func TestGenerateRandomUser(t *testing.T) {
	user, err := GenerateRandomUser("hunter2hunter2")
	require.NoError(t, err)

	assert.NotEmpty(t, user.Username)
	assert.True(t, strings.HasSuffix(user.Email, "@example.com"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter2hunter2")))
}

func TestGenerateRandomOTP(t *testing.T) {
	otp := GenerateRandomOTP()
	assert.Len(t, otp, 6)
	for _, c := range otp {
		assert.Contains(t, "0123456789", string(c))
	}
}
