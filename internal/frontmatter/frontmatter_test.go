package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitNoFrontMatter(t *testing.T) {
	src := []byte("# Heading\n\nBody text.\n")
	meta, body, err := Split(src)
	require.NoError(t, err)
	assert.Equal(t, Meta{}, meta)
	assert.Equal(t, src, body)
}

func TestSplitWithFrontMatter(t *testing.T) {
	src := []byte("---\ntitle: The Awakening\ndescription: In which things happen.\n---\n# Heading\n")
	meta, body, err := Split(src)
	require.NoError(t, err)
	assert.Equal(t, "The Awakening", meta.Title)
	assert.Equal(t, "In which things happen.", meta.Description)
	assert.Equal(t, "# Heading\n", string(body))
}

func TestSplitEmptyBlock(t *testing.T) {
	meta, body, err := Split([]byte("---\n---\nBody\n"))
	require.NoError(t, err)
	assert.Equal(t, Meta{}, meta)
	assert.Equal(t, "Body\n", string(body))
}

func TestSplitDocumentEndMarker(t *testing.T) {
	meta, body, err := Split([]byte("---\ntitle: T\n...\nBody\n"))
	require.NoError(t, err)
	assert.Equal(t, "T", meta.Title)
	assert.Equal(t, "Body\n", string(body))
}

func TestSplitUnclosed(t *testing.T) {
	src := []byte("---\ntitle: T\nno closing fence")
	_, body, err := Split(src)
	require.Error(t, err)
	assert.Equal(t, src, body)
}

func TestSplitInvalidYAML(t *testing.T) {
	src := []byte("---\ntitle: [unclosed\n---\nBody\n")
	_, body, err := Split(src)
	require.Error(t, err)
	assert.Equal(t, src, body)
}

func TestSplitHorizontalRuleNotFrontMatter(t *testing.T) {
	// A thematic break later in the document must not be mistaken for a fence.
	src := []byte("Intro\n\n---\n\nMore\n")
	meta, body, err := Split(src)
	require.NoError(t, err)
	assert.Equal(t, Meta{}, meta)
	assert.Equal(t, src, body)
}

func TestSplitUnknownKeysIgnored(t *testing.T) {
	meta, body, err := Split([]byte("---\ntitle: T\ntags: [a, b]\n---\nBody\n"))
	require.NoError(t, err)
	assert.Equal(t, "T", meta.Title)
	assert.Equal(t, "Body\n", string(body))
}
