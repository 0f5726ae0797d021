package markdown

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Meta is the YAML frontmatter a tutorial page may carry.
type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

// SplitFrontmatter separates a `---` delimited YAML frontmatter block from
// the Markdown body. Documents without a leading delimiter pass through with
// zero Meta and the full input as body.
func SplitFrontmatter(content []byte) (Meta, []byte, error) {
	var meta Meta

	open := []byte("---\n")
	if !bytes.HasPrefix(content, open) {
		return meta, content, nil
	}

	rest := content[len(open):]
	closeSeq := []byte("\n---\n")
	if bytes.HasPrefix(rest, []byte("---\n")) {
		return meta, rest[len("---\n"):], nil
	}
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		return meta, nil, fmt.Errorf("frontmatter: missing closing delimiter")
	}

	raw := rest[:idx+1]
	body := rest[idx+len(closeSeq):]
	if err := yaml.Unmarshal(raw, &meta); err != nil {
		return meta, nil, fmt.Errorf("frontmatter: %w", err)
	}
	return meta, body, nil
}
