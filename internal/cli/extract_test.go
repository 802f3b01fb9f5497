package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractOption(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		option     string
		args       []string
		value      string
		options    []string
		positional []string
	}{
		{
			name:       "separated value",
			option:     "-m",
			args:       []string{"foo", "-m", "blub", "--export", "flah"},
			value:      "blub",
			options:    []string{"--export"},
			positional: []string{"foo", "flah"},
		},
		{
			name:       "equals form",
			option:     "--message",
			args:       []string{"--message=hello", "branch"},
			value:      "hello",
			options:    []string{},
			positional: []string{"branch"},
		},
		{
			name:       "attached short form",
			option:     "-m",
			args:       []string{"-mblub", "foo"},
			value:      "blub",
			options:    []string{},
			positional: []string{"foo"},
		},
		{
			name:       "option absent",
			option:     "-b",
			args:       []string{"checkout", "--quiet", "feature"},
			value:      "",
			options:    []string{"--quiet"},
			positional: []string{"checkout", "feature"},
		},
		{
			name:       "empty name extracts nothing",
			option:     "",
			args:       []string{"-x", "foo"},
			value:      "",
			options:    []string{"-x"},
			positional: []string{"foo"},
		},
		{
			name:       "option at the end without a value",
			option:     "-m",
			args:       []string{"foo", "-m"},
			value:      "",
			options:    []string{},
			positional: []string{"foo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			value, options, positional := ExtractOption(tt.option, tt.args)
			require.Equal(t, tt.value, value)
			require.Equal(t, tt.options, options)
			require.Equal(t, tt.positional, positional)
		})
	}
}
