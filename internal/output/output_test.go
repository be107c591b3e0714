package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestDefaultFormatIsJSON(t *testing.T) {
	// The package default must agree with the root command's --output
	// flag default.
	if DefaultFormat != FormatJSON {
		t.Errorf("default format: got %q, want %q", DefaultFormat, FormatJSON)
	}
	if GetFormat() != DefaultFormat {
		t.Errorf("initial format: got %q, want the default %q", GetFormat(), DefaultFormat)
	}
}

func TestSetFormat(t *testing.T) {
	defer SetFormat(string(DefaultFormat))

	tests := []struct {
		in   string
		want Format
	}{
		{"yaml", FormatYAML},
		{"json", FormatJSON},
		{"bogus", DefaultFormat},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			SetFormat(tt.in)
			if got := GetFormat(); got != tt.want {
				t.Errorf("format after SetFormat(%q): got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriteTo(t *testing.T) {
	data := map[string]int{"notes": 4}

	var buf bytes.Buffer
	if err := WriteTo(&buf, FormatJSON, data); err != nil {
		t.Fatalf("json write failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"notes": 4`) {
		t.Errorf("json output: %q", buf.String())
	}

	buf.Reset()
	if err := WriteTo(&buf, FormatYAML, data); err != nil {
		t.Fatalf("yaml write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "notes: 4") {
		t.Errorf("yaml output: %q", buf.String())
	}

	if err := WriteTo(&buf, Format("toml"), data); err == nil {
		t.Error("expected error for unknown format")
	}
}
