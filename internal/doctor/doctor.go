// Package doctor verifies that the bundled audio assets referenced by the
// phrase catalog actually exist and are readable. It backs the --doctor flag,
// which packagers run after assembling an app bundle.
package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"github.com/mohamadomran/Oul/internal/catalog"
	"github.com/mohamadomran/Oul/internal/domain"
)

// Check is one asset assertion result.
type Check struct {
	Name    string
	Pass    bool
	Warn    bool
	Message string
}

// Report is the full doctor output.
type Report struct {
	Checks []Check
}

// OK returns true when no check failed. Warnings do not fail the report.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// Failures returns the number of failed checks.
func (r Report) Failures() int {
	n := 0
	for _, check := range r.Checks {
		if !check.Pass {
			n++
		}
	}
	return n
}

// String renders the report as user-facing text.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		switch {
		case !check.Pass:
			status = "FAIL"
		case check.Warn:
			status = "WARN"
		}
		fmt.Fprintf(&b, "[%s] %s: %s\n", status, check.Name, check.Message)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run checks every catalog phrase's audio file under assetsDir.
//
// A missing or unreadable file fails. A file whose metadata cannot be parsed
// only warns: clips without ID3 tags still play fine, but an unparseable
// header often means a truncated export.
func Run(cat *catalog.Catalog, assetsDir string) Report {
	var checks []Check

	info, err := os.Stat(assetsDir)
	if err != nil || !info.IsDir() {
		checks = append(checks, Check{
			Name:    "assets_dir",
			Pass:    false,
			Message: fmt.Sprintf("not a readable directory: %s", assetsDir),
		})
		return Report{Checks: checks}
	}
	checks = append(checks, Check{
		Name:    "assets_dir",
		Pass:    true,
		Message: assetsDir,
	})

	for _, category := range domain.Categories() {
		for _, phrase := range cat.PhrasesByCategory(category) {
			checks = append(checks, checkPhraseAudio(assetsDir, phrase))
		}
	}

	return Report{Checks: checks}
}

// checkPhraseAudio verifies a single phrase's resolved audio file.
func checkPhraseAudio(assetsDir string, phrase domain.Phrase) Check {
	name := string(phrase.Category) + "/" + phrase.ID
	relative := catalog.ResolveAudioPath(phrase.AudioFile)
	path := filepath.Join(assetsDir, filepath.FromSlash(relative))

	file, err := os.Open(path)
	if err != nil {
		return Check{
			Name:    name,
			Pass:    false,
			Message: fmt.Sprintf("audio file missing: %s", relative),
		}
	}
	defer func() { _ = file.Close() }()

	if _, err := tag.ReadFrom(file); err != nil {
		return Check{
			Name:    name,
			Pass:    true,
			Warn:    true,
			Message: fmt.Sprintf("no readable metadata in %s: %v", relative, err),
		}
	}

	return Check{
		Name:    name,
		Pass:    true,
		Message: relative,
	}
}
