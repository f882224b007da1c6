package trivia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "url encoded", in: "Hello%20World", want: "Hello World"},
		{name: "html entities", in: "&quot;Hello&quot;", want: `"Hello"`},
		{name: "mixed", in: "Test%20&amp;%20More", want: "Test & More"},
		{name: "angle brackets", in: "&lt;tag&gt;", want: "<tag>"},
		{name: "apostrophe", in: "Don&apos;t stop", want: "Don't stop"},
		{name: "numeric entity", in: "caf&#233;", want: "café"},
		{name: "plain text unchanged", in: "What is 2 + 2?", want: "What is 2 + 2?"},
		{name: "empty", in: "", want: ""},
		{name: "malformed percent escape", in: "100%", want: "100%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeText(tt.in))
		})
	}
}

func TestDecodeTextIdempotent(t *testing.T) {
	decoded := DecodeText("Test%20&amp;%20More")
	assert.Equal(t, decoded, DecodeText(decoded))
}
