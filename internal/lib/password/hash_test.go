package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHash_And_CompareHash(t *testing.T) {
	hash, err := GetHash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, CompareHash(hash, "correct horse battery staple"))
	assert.Error(t, CompareHash(hash, "wrong password"))
}

func TestGetHash_SamePasswordDifferentHashes(t *testing.T) {
	first, err := GetHash("user1234")
	require.NoError(t, err)
	second, err := GetHash("user1234")
	require.NoError(t, err)

	// bcrypt солит каждый хэш
	assert.NotEqual(t, first, second)
	assert.NoError(t, CompareHash(first, "user1234"))
	assert.NoError(t, CompareHash(second, "user1234"))
}
