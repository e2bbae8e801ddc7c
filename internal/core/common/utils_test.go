package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, []string{"how", "do", "i", "reset", "my", "password"}, Normalize("How do I reset my password?"))
	assert.Equal(t, []string{"i", "cant", "log", "in"}, Normalize("I can't log in!!"))
	assert.Equal(t, []string{"settings", "reset"}, Normalize("  Settings > reset "))
	assert.Empty(t, Normalize("?!. ,"))
	assert.Empty(t, Normalize(""))
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("Reset, reset RESET password")
	assert.Len(t, set, 2)
	assert.Contains(t, set, "reset")
	assert.Contains(t, set, "password")
}

func TestKeywords(t *testing.T) {
	assert.Equal(t, []string{"password", "reset"}, Keywords([]string{"Reset", "password", "RESET"}))
	assert.Equal(t, []string{"hours", "office"}, Keywords([]string{"office hours"}))
	assert.Empty(t, Keywords(nil))
}

func TestDeriveKeywords(t *testing.T) {
	assert.Equal(t, []string{"hours", "office", "working"}, DeriveKeywords("What are the office working hours?"))
	assert.Equal(t, []string{"apply", "leave"}, DeriveKeywords("How to apply for leave?"))
}

func TestContainsPhrase(t *testing.T) {
	tokens := Normalize("my laptop is not working again")
	assert.True(t, ContainsPhrase(tokens, []string{"not", "working"}))
	assert.True(t, ContainsPhrase(tokens, []string{"laptop"}))
	assert.False(t, ContainsPhrase(tokens, []string{"working", "not"}))
	assert.False(t, ContainsPhrase(tokens, nil))
	assert.False(t, ContainsPhrase([]string{"not"}, []string{"not", "working"}))
}
