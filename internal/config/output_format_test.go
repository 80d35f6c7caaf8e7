package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOutputFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		wantErr bool
	}{
		"empty string is valid":   {input: "", wantErr: false},
		"text is valid":           {input: "text", wantErr: false},
		"json is valid":           {input: "json", wantErr: false},
		"table is valid":          {input: "table", wantErr: false},
		"uppercase JSON is valid": {input: "JSON", wantErr: false},
		"whitespace trimmed":      {input: "  table  ", wantErr: false},
		"invalid format errors":   {input: "yaml", wantErr: true},
		"number errors":           {input: "123", wantErr: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := ValidateOutputFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid format")
				assert.Contains(t, err.Error(), "valid options:")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeOutputFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		"empty returns text":  {input: "", want: OutputFormatText},
		"text normalized":     {input: "text", want: OutputFormatText},
		"json normalized":     {input: "Json", want: OutputFormatJSON},
		"table normalized":    {input: " table", want: OutputFormatTable},
		"invalid returns err": {input: "xml", wantErr: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeOutputFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, string(tt.want), got.String())
		})
	}
}
