package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURLLines(t *testing.T) {
	text := "https://x.test/a.pdf\n# comment\n\nhttps://x.test/b.pdf"
	urls := ParseURLLines(text)
	assert.Equal(t, []string{"https://x.test/a.pdf", "https://x.test/b.pdf"}, urls)
}

func TestParseURLLinesRejectsNonURLContent(t *testing.T) {
	// A stray non-URL line disqualifies line mode entirely so the caller
	// can fall back to pattern extraction.
	assert.Nil(t, ParseURLLines("https://x.test/a.pdf\nsome,csv,row"))
	assert.Nil(t, ParseURLLines(""))
}

func TestExtractURLs(t *testing.T) {
	text := `id,link,notes
1,"see https://x.test/a.pdf for details",ok
2,https://x.test/b.PDF,dup below
3,https://x.test/a.pdf,duplicate
4,https://x.test/page.html,not a pdf`

	urls := ExtractURLs(text)
	assert.Equal(t, []string{"https://x.test/a.pdf", "https://x.test/b.PDF"}, urls)
}

func TestReadSourceLiteralURL(t *testing.T) {
	urls, err := ReadSource("https://x.test/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://x.test/a.pdf"}, urls)
}

func TestReadSourceFallsBackToExtraction(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mixed.csv")
	content := "\ufeffurl,reviewed\nhttps://x.test/a.pdf,yes\nhttps://x.test/b.pdf,no\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	urls, err := ReadSource(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://x.test/a.pdf", "https://x.test/b.pdf"}, urls)
}

func TestReadSourceMissingFile(t *testing.T) {
	_, err := ReadSource(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestStripBOM(t *testing.T) {
	assert.Equal(t, "url", StripBOM("\ufeffurl"))
	assert.Equal(t, "url", StripBOM("url"))
}
