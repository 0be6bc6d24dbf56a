package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		prefix   string
		wantName string
		wantArgs []string
		wantOK   bool
	}{
		{"bare command", "!ping", "!", "ping", []string{}, true},
		{"with args", "!echo hello world", "!", "echo", []string{"hello", "world"}, true},
		{"double space keeps empty token", "!echo a  b", "!", "echo", []string{"a", "", "b"}, true},
		{"trailing space", "!ping ", "!", "ping", []string{""}, true},
		{"prefix only", "!", "!", "", []string{}, true},
		{"multi char prefix", "bot>ping x", "bot>", "ping", []string{"x"}, true},
		{"no prefix", "ping", "!", "", nil, false},
		{"prefix not at start", " !ping", "!", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args, ok := Parse(tt.content, tt.prefix)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFormatUsage(t *testing.T) {
	assert.Equal(t, "!echo <Message>", FormatUsage("%f <Message>", "!", "echo"))
	assert.Equal(t, "! then echo, again echo", FormatUsage("%p then %c, again %c", "!", "echo"))
	assert.Empty(t, FormatUsage("", "!", "echo"))
}

func TestFormatUsage_NoDoubleExpansion(t *testing.T) {
	assert.Equal(t, "%c!x", FormatUsage("%f", "%c!", "x"))
}
