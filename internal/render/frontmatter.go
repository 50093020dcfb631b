package render

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// Frontmatter holds the YAML frontmatter fields this tool understands.
type Frontmatter struct {
	// Publish excludes a document from publishing when set to false.
	// Absent means publish.
	Publish *bool `yaml:"publish"`
}

// ShouldPublish reports whether a document's frontmatter allows it to
// be published. Documents without frontmatter, or with frontmatter that
// fails to parse, are published.
func ShouldPublish(content []byte) bool {
	fm, _ := splitFrontmatter(content)
	if fm == nil || fm.Publish == nil {
		return true
	}

	return *fm.Publish
}

// splitFrontmatter extracts YAML frontmatter from markdown content and
// returns it alongside the remaining document body. Returns (nil,
// content) if no frontmatter is found or it does not parse.
func splitFrontmatter(content []byte) (*Frontmatter, []byte) {
	if !bytes.HasPrefix(content, []byte("---")) {
		return nil, content
	}

	// Find the closing delimiter. It must be on its own line.
	rest := content[3:]
	// Skip the rest of the opening line (could be "---\n" or "---\r\n").
	idx := bytes.IndexByte(rest, '\n')
	if idx < 0 {
		return nil, content
	}
	rest = rest[idx+1:]

	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return nil, content
	}

	block := rest[:end]

	body := rest[end+len("\n---"):]
	// Drop the remainder of the closing delimiter line.
	if idx := bytes.IndexByte(body, '\n'); idx >= 0 {
		body = body[idx+1:]
	} else {
		body = nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal(block, &fm); err != nil {
		return nil, content
	}

	return &fm, body
}
