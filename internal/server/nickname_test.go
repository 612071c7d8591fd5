package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateNickname(t *testing.T) {
	t.Parallel()

	for i := 0; i < 100; i++ {
		name := GenerateNickname()
		assert.NotEmpty(t, name)

		// Every nickname is an adjective + noun pair from the word lists
		found := false
		for _, adj := range adjectives {
			for _, noun := range nouns {
				if name == adj+noun {
					found = true
				}
			}
		}
		assert.True(t, found, "unexpected nickname: %s", name)
	}
}
