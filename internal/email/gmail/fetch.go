package gmail

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"

	"github.com/meadbax/hub/internal/email"
)

// summarize reduces a message to an inbox row
func summarize(msg *gmail.Message, now time.Time, loc *time.Location) email.Summary {
	headers := messageHeaders(msg)

	subject := email.HeaderValue(headers, "Subject")
	if subject == "" {
		subject = email.NoSubject
	}

	label := ""
	if raw := email.HeaderValue(headers, "Date"); raw != "" {
		if t, err := parseDate(raw); err == nil {
			label = email.RelativeLabel(t, now, loc)
		} else {
			label = raw
		}
	}

	return email.Summary{
		ID:      msg.Id,
		Subject: subject,
		Sender:  email.DisplayName(email.HeaderValue(headers, "From")),
		Time:    label,
	}
}

// detail converts a full-format message
func detail(msg *gmail.Message, loc *time.Location) *email.Detail {
	headers := messageHeaders(msg)
	snippet := strings.TrimSpace(msg.Snippet)

	subject := email.HeaderValue(headers, "Subject")
	if subject == "" {
		subject = snippet
	}
	if subject == "" {
		subject = email.NoSubject
	}

	date := email.HeaderValue(headers, "Date")
	if date != "" {
		if t, err := parseDate(date); err == nil {
			date = email.FormatDetailDate(t, loc)
		}
	}

	bodies := email.ExtractBodies(convertPart(msg.Payload))

	return &email.Detail{
		ID:        msg.Id,
		Subject:   subject,
		From:      email.DisplayName(email.HeaderValue(headers, "From")),
		Date:      date,
		BodyPlain: bodies.Plain,
		BodyHTML:  bodies.HTML,
		Body:      bodies.Combined(),
		Snippet:   snippet,
	}
}

// messageHeaders returns the payload headers, or those of the first part
// when the payload carries none
func messageHeaders(msg *gmail.Message) []email.Header {
	if msg.Payload == nil {
		return nil
	}

	headers := convertHeaders(msg.Payload.Headers)
	if len(headers) == 0 && len(msg.Payload.Parts) > 0 && msg.Payload.Parts[0] != nil {
		headers = convertHeaders(msg.Payload.Parts[0].Headers)
	}
	return headers
}

func convertHeaders(in []*gmail.MessagePartHeader) []email.Header {
	out := make([]email.Header, 0, len(in))
	for _, h := range in {
		if h == nil {
			continue
		}
		out = append(out, email.Header{Name: h.Name, Value: h.Value})
	}
	return out
}

// convertPart copies the Gmail MIME tree into email.Part
func convertPart(p *gmail.MessagePart) *email.Part {
	if p == nil {
		return nil
	}

	part := &email.Part{
		MimeType: p.MimeType,
		Headers:  convertHeaders(p.Headers),
	}
	if p.Body != nil {
		part.Data = p.Body.Data
	}
	for _, child := range p.Parts {
		if c := convertPart(child); c != nil {
			part.Parts = append(part.Parts, c)
		}
	}
	return part
}

// parseDate attempts to parse various date formats
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	if t, err := mail.ParseDate(s); err == nil {
		return t, nil
	}

	formats := []string{
		time.RFC1123Z,
		time.RFC1123,
		"Mon, 2 Jan 2006 15:04:05 -0700",
		"Mon, 2 Jan 2006 15:04:05 MST",
		"2 Jan 2006 15:04:05 -0700",
		"Mon, 02 Jan 2006 15:04:05 -0700 (MST)",
		time.RFC3339,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", s)
}
