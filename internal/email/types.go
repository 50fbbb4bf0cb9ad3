package email

import (
	"regexp"
	"strings"
)

// Summary is one inbox row
type Summary struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Sender  string `json:"sender"`
	Time    string `json:"time"`
}

// Detail is a single decoded message
type Detail struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	From      string `json:"from"`
	Date      string `json:"date"`
	BodyPlain string `json:"bodyPlain"`
	BodyHTML  string `json:"bodyHtml"`
	Body      string `json:"body"` // BodyHTML when present, else BodyPlain
	Snippet   string `json:"snippet"`
}

// NoSubject is shown when a message has neither subject nor snippet
const NoSubject = "(No subject)"

// Header is a single message header
type Header struct {
	Name  string
	Value string
}

// HeaderValue returns the first header matching name case-insensitively, or ""
func HeaderValue(headers []Header, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

var bracketedAddrRe = regexp.MustCompile(`<[^>]+>`)

// DisplayName strips every <address> from a From header. A header that is
// only an address is returned unchanged.
//
//	"Jane Doe <jane@x.com>" -> "Jane Doe"
//	"jane@x.com"            -> "jane@x.com"
func DisplayName(from string) string {
	name := strings.TrimSpace(bracketedAddrRe.ReplaceAllString(from, ""))
	if name == "" {
		return from
	}
	return name
}
