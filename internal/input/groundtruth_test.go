package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const truthHeader = `url,Review: Is this a form,Reviewer: Form Type,"Reviewer: Does this form ask for SSN, DL#, financial, health info or criminal history?",Review: Reviewed by,Reviewer: Notes (optional)`

func TestParseGroundTruth(t *testing.T) {
	text := truthHeader + "\n" +
		`https://x.test/a.pdf,Yes,Fillable PDF,Yes,alex,"looks standard"` + "\n" +
		`https://x.test/page.html,No,,,sam,skipped - not a pdf` + "\n" +
		`,Yes,,,pat,no url` + "\n" +
		`https://x.test/b.pdf,No,,"No",sam,`

	records, err := ParseGroundTruth(text)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "https://x.test/a.pdf", records[0].URL)
	assert.Equal(t, "Yes", records[0].IsFormRaw)
	assert.Equal(t, "Fillable PDF", records[0].FormTypeRaw)
	assert.Equal(t, "Yes", records[0].SensitivityRaw)
	assert.Equal(t, "alex", records[0].ReviewerName)
	assert.Equal(t, "looks standard", records[0].Notes)

	assert.Equal(t, "https://x.test/b.pdf", records[1].URL)
	assert.Equal(t, "No", records[1].IsFormRaw)
}

func TestParseGroundTruthMissingColumn(t *testing.T) {
	_, err := ParseGroundTruth("url,Review: Is this a form\nhttps://x.test/a.pdf,Yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestParseGroundTruthEmpty(t *testing.T) {
	_, err := ParseGroundTruth("")
	assert.Error(t, err)
}

func TestReadGroundTruthStripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "truth.csv")
	content := "\ufeff" + truthHeader + "\nhttps://x.test/a.pdf,Yes,pdf,No,alex,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	records, err := ReadGroundTruth(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "https://x.test/a.pdf", records[0].URL)
}

func TestParseGroundTruthRaggedRows(t *testing.T) {
	text := truthHeader + "\nhttps://x.test/a.pdf,Yes\n"
	records, err := ParseGroundTruth(text)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Yes", records[0].IsFormRaw)
	assert.Empty(t, records[0].FormTypeRaw)
}
