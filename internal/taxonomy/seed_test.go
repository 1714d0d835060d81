package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validTaxonomy = `
categories:
  - name: sports
    topics:
      - slug: tennis
        name: Tennis
        description: Professional tennis tours and tournaments
      - slug: soccer
        name: Soccer
  - name: technology
    topics:
      - slug: artificial-intelligence
        name: Artificial Intelligence
`

func TestParse(t *testing.T) {
	t.Run("valid taxonomy", func(t *testing.T) {
		topics, err := Parse([]byte(validTaxonomy))
		require.NoError(t, err)
		require.Len(t, topics, 3)

		assert.Equal(t, "tennis", topics[0].Slug)
		assert.Equal(t, "Tennis", topics[0].Name)
		assert.Equal(t, "sports", topics[0].Category)
		assert.Equal(t, "Professional tennis tours and tournaments", topics[0].Description)
		assert.Equal(t, "technology", topics[2].Category)
	})

	t.Run("no categories", func(t *testing.T) {
		_, err := Parse([]byte(`categories: []`))
		assert.ErrorContains(t, err, "no categories")
	})

	t.Run("category without topics", func(t *testing.T) {
		_, err := Parse([]byte("categories:\n  - name: sports\n    topics: []\n"))
		assert.ErrorContains(t, err, "has no topics")
	})

	t.Run("duplicate slug across categories", func(t *testing.T) {
		data := `
categories:
  - name: sports
    topics:
      - slug: tennis
        name: Tennis
  - name: lifestyle
    topics:
      - slug: tennis
        name: Tennis Again
`
		_, err := Parse([]byte(data))
		assert.ErrorContains(t, err, "duplicate topic slug")
	})

	t.Run("missing slug", func(t *testing.T) {
		data := `
categories:
  - name: sports
    topics:
      - name: Tennis
`
		_, err := Parse([]byte(data))
		assert.ErrorContains(t, err, "without a slug")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("categories: [whoops"))
		assert.Error(t, err)
	})
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topics.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validTaxonomy), 0644))

	topics, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Len(t, topics, 3)

	_, err = LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
