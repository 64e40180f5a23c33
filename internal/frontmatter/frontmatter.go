// Package frontmatter separates a leading YAML block (`---` delimited) from
// the Markdown body of a content file and decodes it into caller-defined
// record shapes.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Block is a content file split into its front-matter and body.
type Block struct {
	// Raw is the YAML between the delimiters (without them). Empty when the
	// block is present but has no fields.
	Raw []byte
	// Body is everything after the closing delimiter, or the whole input when
	// Present is false.
	Body []byte
	// Present reports whether the input started with a front-matter block.
	Present bool
	// Newline is the line ending detected in the input ("\n" or "\r\n").
	Newline string
}

// Split separates YAML front-matter from the Markdown body.
//
// If the document does not start with a `---` line, Present is false and Body
// is the full input. A closing delimiter may be followed by a newline or by
// the end of the input.
func Split(content []byte) (Block, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	nl := detectNewline(content)
	block := Block{Body: content, Newline: nl}

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return block, nil
	}

	start := len(open)
	rest := content[start:]
	if bytes.HasPrefix(rest, open) {
		return Block{Raw: []byte{}, Body: rest[len(open):], Present: true, Newline: nl}, nil
	}
	if bytes.Equal(rest, []byte("---")) {
		return Block{Raw: []byte{}, Body: []byte{}, Present: true, Newline: nl}, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	if idx := bytes.Index(rest, closeSeq); idx >= 0 {
		return Block{
			Raw:     rest[:idx+len(nl)],
			Body:    rest[idx+len(closeSeq):],
			Present: true,
			Newline: nl,
		}, nil
	}

	closeAtEOF := []byte(nl + "---")
	if bytes.HasSuffix(rest, closeAtEOF) {
		return Block{
			Raw:     rest[:len(rest)-len(closeAtEOF)+len(nl)],
			Body:    []byte{},
			Present: true,
			Newline: nl,
		}, nil
	}

	return Block{Newline: nl}, ErrMissingClosingDelimiter
}

// Decode unmarshals raw YAML front-matter into target, which must be a
// pointer. Fields not declared by the target are ignored. Empty input leaves
// target untouched.
func Decode(raw []byte, target any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode front matter into %T: %w", target, err)
	}
	return nil
}

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

func detectNewline(content []byte) string {
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			if i > 0 && content[i-1] == '\r' {
				return "\r\n"
			}
			return "\n"
		}
	}
	return "\n"
}
