package doctor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamadomran/Oul/internal/catalog"
	"github.com/mohamadomran/Oul/internal/domain"
)

// writeCatalogAssets materializes a dummy file for every catalog phrase.
func writeCatalogAssets(t *testing.T, cat *catalog.Catalog, dir string) {
	t.Helper()

	for _, category := range domain.Categories() {
		for _, phrase := range cat.PhrasesByCategory(category) {
			relative := catalog.ResolveAudioPath(phrase.AudioFile)
			path := filepath.Join(dir, filepath.FromSlash(relative))
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
			require.NoError(t, os.WriteFile(path, []byte("not real audio"), 0o644))
		}
	}
}

func TestRun_AllAssetsPresent(t *testing.T) {
	cat, err := catalog.New()
	require.NoError(t, err)

	dir := t.TempDir()
	writeCatalogAssets(t, cat, dir)

	report := Run(cat, dir)
	assert.True(t, report.OK())
	assert.Equal(t, 0, report.Failures())

	// One check per phrase plus the directory check itself.
	assert.Len(t, report.Checks, cat.Count()+1)
}

func TestRun_UnparseableMetadataOnlyWarns(t *testing.T) {
	cat, err := catalog.New()
	require.NoError(t, err)

	dir := t.TempDir()
	writeCatalogAssets(t, cat, dir)

	report := Run(cat, dir)
	require.True(t, report.OK())

	// Dummy bytes carry no ID3 header, so the phrase checks warn.
	warns := 0
	for _, check := range report.Checks {
		if check.Warn {
			warns++
		}
	}
	assert.Equal(t, cat.Count(), warns)
	assert.Contains(t, report.String(), "[WARN]")
}

func TestRun_MissingAssetFails(t *testing.T) {
	cat, err := catalog.New()
	require.NoError(t, err)

	dir := t.TempDir()
	writeCatalogAssets(t, cat, dir)
	require.NoError(t, os.Remove(filepath.Join(dir, "pain", "head.mp3")))

	report := Run(cat, dir)
	assert.False(t, report.OK())
	assert.Equal(t, 1, report.Failures())
	assert.Contains(t, report.String(), "audio file missing: pain/head.mp3")
}

func TestRun_MissingAssetsDir(t *testing.T) {
	cat, err := catalog.New()
	require.NoError(t, err)

	report := Run(cat, filepath.Join(t.TempDir(), "nope"))
	assert.False(t, report.OK())
	require.Len(t, report.Checks, 1)
	assert.Equal(t, "assets_dir", report.Checks[0].Name)
}

func TestReport_String(t *testing.T) {
	report := Report{Checks: []Check{
		{Name: "a", Pass: true, Message: "fine"},
		{Name: "b", Pass: false, Message: "broken"},
	}}

	lines := strings.Split(report.String(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[OK] a: fine", lines[0])
	assert.Equal(t, "[FAIL] b: broken", lines[1])
}
