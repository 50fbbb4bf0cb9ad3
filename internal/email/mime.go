package email

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Part is a node of a message's MIME tree. Leaves carry Data, containers
// carry Parts.
type Part struct {
	MimeType string
	Headers  []Header
	Data     string // base64url as delivered by the provider
	Parts    []*Part
}

// Bodies are the decoded text bodies of a message
type Bodies struct {
	Plain string
	HTML  string
}

// Combined prefers the HTML body
func (b Bodies) Combined() string {
	if b.HTML != "" {
		return b.HTML
	}
	return b.Plain
}

// ExtractBodies walks the tree depth-first and keeps the first text/plain and
// the first text/html body found. A root without children is a single-part
// message: its body is HTML when typed text/html and plain otherwise.
func ExtractBodies(root *Part) Bodies {
	var b Bodies
	if root == nil {
		return b
	}

	if len(root.Parts) == 0 {
		if root.Data == "" {
			return b
		}
		if mediaType(root.MimeType) == "text/html" {
			b.HTML = DecodeBody(root.Data)
		} else {
			b.Plain = DecodeBody(root.Data)
		}
		return b
	}

	for _, p := range root.Parts {
		walk(p, &b)
	}
	return b
}

func walk(p *Part, b *Bodies) {
	if p == nil {
		return
	}

	if p.Data != "" {
		switch mediaType(p.MimeType) {
		case "text/plain":
			if b.Plain == "" {
				b.Plain = DecodeBody(p.Data)
			}
		case "text/html":
			if b.HTML == "" {
				b.HTML = DecodeBody(p.Data)
			}
		}
	}

	for _, child := range p.Parts {
		walk(child, b)
	}
}

// mediaType lowercases and drops any parameters
func mediaType(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// DecodeBody decodes a base64url body, padded or not. Bytes that are not
// valid UTF-8, or that decode to U+FFFD, are re-read as ISO-8859-1. An
// undecodable body yields "".
func DecodeBody(data string) string {
	raw, ok := decodeBase64(data)
	if !ok {
		return ""
	}

	if utf8.Valid(raw) && !strings.ContainsRune(string(raw), utf8.RuneError) {
		return string(raw)
	}

	latin, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "�")
	}
	return string(latin)
}

func decodeBase64(data string) ([]byte, bool) {
	s := strings.TrimRight(strings.TrimSpace(data), "=")
	s = strings.NewReplacer("-", "+", "_", "/").Replace(s)

	raw, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		return nil, false
	}
	return raw, true
}
