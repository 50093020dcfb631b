package publish

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/alexjbarnes/wiki-publish/internal/render"
)

// suffixSeparator joins a canonical title to the discovery suffix in a
// page's display title. Two spaces, so the suffix reads as a trailing
// marker rather than part of the document name.
const suffixSeparator = "  "

// CanonicalTitle returns the canonical page title for a filesystem
// entry: its path relative to the publish root with separators
// normalized to forward slashes. Unicode is normalized to NFC so that
// the same name produces the same title regardless of how the local
// filesystem encodes it (macOS stores NFD). Relative paths are unique
// per entry, which is what keeps same-named files in different
// directories apart in the shared title namespace.
func CanonicalTitle(entryPath, rootPath string) string {
	rel, err := filepath.Rel(rootPath, entryPath)
	if err != nil {
		// Both paths are absolute and the entry sits under the root, so
		// Rel cannot fail during traversal. Fall back to the raw path.
		rel = entryPath
	}

	return norm.NFC.String(filepath.ToSlash(rel))
}

// FullTitle composes the remote display title from a canonical title
// and the discovery suffix.
func FullTitle(title, suffix string) string {
	return title + suffixSeparator + suffix
}

// TrimTitleSuffix recovers the canonical title from a remote display
// title. Reports false when the display title does not end with the
// discovery suffix, meaning the page is not one of ours.
func TrimTitleSuffix(fullTitle, suffix string) (string, bool) {
	return strings.CutSuffix(fullTitle, suffixSeparator+suffix)
}

// isMarkdown reports whether a filename has the markdown extension,
// case-insensitively.
func isMarkdown(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".md")
}

// BuildExpectedSet walks the publish root once and returns the set of
// canonical titles that should exist remotely: one per directory
// (including empty ones, which still become container pages) and one
// per publishable markdown file. Symlinks and non-markdown files are
// never published, hence never expected. The frontmatter publish toggle
// is honored here with the same rule the publisher applies, so the two
// traversals agree on what exists.
func BuildExpectedSet(rootPath string) (map[string]struct{}, error) {
	expected := make(map[string]struct{})

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == rootPath {
			return nil
		}

		if d.IsDir() {
			expected[CanonicalTitle(path, rootPath)] = struct{}{}
			return nil
		}

		if !d.Type().IsRegular() || !isMarkdown(d.Name()) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		if !render.ShouldPublish(content) {
			return nil
		}

		expected[CanonicalTitle(path, rootPath)] = struct{}{}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", rootPath, err)
	}

	return expected, nil
}
