package htmltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text passes through",
			input: "react projemde sorun var",
			want:  "react projemde sorun var",
		},
		{
			name:  "strips tags and joins inline text",
			input: "<p>React projemde <strong>state</strong> sorunu var</p>",
			want:  "React projemde state sorunu var",
		},
		{
			name:  "block elements become newlines",
			input: "<p>Birinci paragraf</p><p>İkinci paragraf</p>",
			want:  "Birinci paragraf\nİkinci paragraf",
		},
		{
			name:  "ignores script and style content",
			input: `<p>Merhaba</p><script>alert("x")</script><style>p{}</style>`,
			want:  "Merhaba",
		},
		{
			name:  "empty input",
			input: "   ",
			want:  "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Extract(tc.input))
		})
	}
}
