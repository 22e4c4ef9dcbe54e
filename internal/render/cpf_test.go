package render

import "testing"

func TestFormatCPF(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"1", "1"},
		{"123", "123"},
		{"1234", "123.4"},
		{"123456", "123.456"},
		{"1234567", "123.456.7"},
		{"123456789", "123.456.789"},
		{"1234567890", "123.456.789-0"},
		{"12345678901", "123.456.789-01"},
		{"123456789012345", "123.456.789-01"},
		{"123.456.789-01", "123.456.789-01"},
		{"abc123def456", "123.456"},
		{" 529 982 247 25 ", "529.982.247-25"},
	}
	for _, tt := range tests {
		if got := FormatCPF(tt.in); got != tt.want {
			t.Errorf("FormatCPF(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
