package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddToSet(t *testing.T) {
	s := []string{"a", "b"}
	s = AddToSet(s, "c")
	assert.Equal(t, []string{"a", "b", "c"}, s)

	// adding again is a no-op
	s = AddToSet(s, "c")
	assert.Equal(t, []string{"a", "b", "c"}, s)

	assert.Equal(t, []string{"x"}, AddToSet(nil, "x"))
}

func TestRemoveFromSet(t *testing.T) {
	s := []string{"a", "b", "a", "c"}
	assert.Equal(t, []string{"b", "c"}, RemoveFromSet(s, "a"))
	assert.Equal(t, []string{"a", "b", "a", "c"}, RemoveFromSet(s, "z"))
	assert.Empty(t, RemoveFromSet(nil, "a"))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains([]string{"a", "b"}, "z"))
	assert.False(t, Contains(nil, "a"))
}

func TestGenerateID(t *testing.T) {
	id := GenerateID(14)
	assert.Len(t, id, 14)
	assert.NotEqual(t, id, GenerateID(14))
}

func TestGenerateRandomDigitString(t *testing.T) {
	code := GenerateRandomDigitString(8)
	assert.Len(t, code, 8)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9')
	}
}
