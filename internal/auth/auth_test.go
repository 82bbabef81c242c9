package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerify(t *testing.T) {
	creds := map[string]string{
		"admin@gameverse.com": "admin123",
		"owner@gameverse.com": "hunter2",
	}

	assert.True(t, Verify(creds, "admin@gameverse.com", "admin123"))
	assert.True(t, Verify(creds, "owner@gameverse.com", "hunter2"))

	assert.False(t, Verify(creds, "admin@gameverse.com", "wrong"))
	assert.False(t, Verify(creds, "unknown@gameverse.com", "admin123"))
	assert.False(t, Verify(creds, "admin@gameverse.com", ""))
	assert.False(t, Verify(nil, "admin@gameverse.com", "admin123"))
}

func TestVerify_CrossedCredentials(t *testing.T) {
	creds := map[string]string{
		"a@gameverse.com": "secret-a",
		"b@gameverse.com": "secret-b",
	}

	// A known secret only opens its own identifier.
	assert.False(t, Verify(creds, "a@gameverse.com", "secret-b"))
}
