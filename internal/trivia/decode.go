package trivia

import (
	"html"
	"net/url"
)

// DecodeText reverses the encodings the trivia API applies to text fields:
// URL percent-escapes first, then HTML entities such as &amp; and &#39;.
// Malformed escapes pass through best effort, and already-decoded text comes
// back unchanged, so the function is idempotent on plain strings.
func DecodeText(s string) string {
	unescaped, err := url.PathUnescape(s)
	if err != nil {
		unescaped = s
	}
	return html.UnescapeString(unescaped)
}
