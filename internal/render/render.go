// Package render converts markdown documents into the page store's
// storage markup. Local image references are rewritten to attachment
// embed tags and reported back so the caller can upload the files.
package render

import (
	"bytes"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ChildrenMacro is the storage-format body for directory container
// pages. The store renders it as a listing of the page's children.
const ChildrenMacro = `<ac:structured-macro ac:name="children" ac:schema-version="2" ac:macro-id="80b8c33e-cc87-4987-8f88-dd36ee991b15"/>`

// banner is prepended to every published page so readers know edits
// will be overwritten on the next run.
const banner = `<p style="background-color:#e7be17;">⚠️ This page is auto-generated. Do not edit manually - changes will be overwritten on the next publish.</p>`

// imageRefPattern matches a markdown image reference that fills the
// whole line, capturing the target. Remote (http/https) targets are
// filtered separately because RE2 has no lookahead.
var imageRefPattern = regexp.MustCompile(`^!\[[^\]]*\]\(([^)]+)\)\s*$`)

// Renderer converts markdown text to storage markup. It is stateless
// and safe for concurrent use by the file-upsert workers.
type Renderer struct {
	md goldmark.Markdown
}

// New creates a renderer with GFM tables and fenced code enabled.
// Raw HTML passthrough is required so rewritten attachment tags survive
// the conversion.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Render converts a raw markdown document to storage markup. It strips
// YAML frontmatter, rewrites local image references to attachment embed
// tags, converts the remainder and prepends the autogeneration banner.
// The returned slice holds the bare filenames of every image that needs
// to be attached to the page.
func (r *Renderer) Render(raw []byte) (string, []string, error) {
	_, body := splitFrontmatter(raw)

	rewritten, attachments := rewriteImageRefs(body)

	var buf bytes.Buffer
	if err := r.md.Convert(rewritten, &buf); err != nil {
		return "", nil, fmt.Errorf("converting markdown: %w", err)
	}

	return banner + buf.String(), attachments, nil
}

// rewriteImageRefs replaces whole-line local image references with the
// store's attachment embed tag and collects the referenced filenames.
// Remote image links are left for the markdown converter.
func rewriteImageRefs(body []byte) ([]byte, []string) {
	var (
		out         bytes.Buffer
		attachments []string
	)

	for rest := string(body); rest != ""; {
		var line string
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i+1], rest[i+1:]
		} else {
			line, rest = rest, ""
		}
		m := imageRefPattern.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
		if m == nil || strings.HasPrefix(m[1], "http://") || strings.HasPrefix(m[1], "https://") {
			out.WriteString(line)
			continue
		}

		filename := path.Base(m[1])
		attachments = append(attachments, filename)
		out.WriteString(`<ac:image> <ri:attachment ri:filename="` + filename + `" /></ac:image>` + "\n")
	}

	return out.Bytes(), attachments
}
