package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllowedOutputFormats(t *testing.T) {
	t.Parallel()

	formats := AllowedOutputFormats()
	require.Equal(t, OutputFormats{FormatJSON, FormatText, FormatYAML}, formats)
	require.Equal(t, "json, text, yaml", formats.String())
}

func TestOutputFormat_Set(t *testing.T) {
	t.Parallel()

	tc := []struct {
		name    string
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{name: "json", input: "json", want: FormatJSON},
		{name: "yaml", input: "yaml", want: FormatYAML},
		{name: "text", input: "text", want: FormatText},
		{name: "mixed case", input: "JSON", want: FormatJSON},
		{name: "surrounding whitespace", input: "  text  ", want: FormatText},
		{name: "unknown", input: "xml", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, testCase := range tc {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var f OutputFormat
			err := f.Set(testCase.input)
			if testCase.wantErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), "invalid format")
				return
			}
			require.NoError(t, err)
			require.Equal(t, testCase.want, f)
		})
	}
}

func TestOutputFormat_Type(t *testing.T) {
	t.Parallel()

	f := FormatJSON
	require.Equal(t, "format", f.Type())
}
