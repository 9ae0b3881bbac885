package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootHelpNamesCycleKeywords(t *testing.T) {
	assert.NotContains(t, rootCmd.Long, "do-while")
	for _, kw := range []string{"while", "for", "loop", "ciclo"} {
		assert.Contains(t, rootCmd.Long, kw)
	}
}
