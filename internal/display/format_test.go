package display

import "testing"

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{512, "512.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{10 * 1024 * 1024, "10.00 MB"},
		{1 << 30, "1.00 GB"},
		{1 << 40, "1.00 TB"},
		{1 << 50, "1.00 PB"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.in); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParsePathFormat(t *testing.T) {
	tests := []struct {
		in   string
		want PathFormat
	}{
		{"absolute", FormatAbsolute},
		{"relative", FormatRelative},
		{"basename", FormatBasename},
		{"", FormatRelative},
		{"  Relative ", FormatRelative},
	}
	for _, tt := range tests {
		got, err := ParsePathFormat(tt.in)
		if err != nil {
			t.Errorf("ParsePathFormat(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePathFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParsePathFormat("fullpath"); err == nil {
		t.Error("ParsePathFormat(\"fullpath\") = nil error, want error")
	}
}

func TestFormatPath(t *testing.T) {
	root := "/data"

	tests := []struct {
		path   string
		format PathFormat
		want   string
	}{
		{"/data/logs/app.log", FormatAbsolute, "/data/logs/app.log"},
		{"/data/logs/app.log", FormatRelative, "logs/app.log"},
		{"/data/logs/app.log", FormatBasename, "app.log"},
		{"/data", FormatRelative, "."},
	}
	for _, tt := range tests {
		if got := FormatPath(tt.path, root, tt.format); got != tt.want {
			t.Errorf("FormatPath(%q, %v) = %q, want %q", tt.path, tt.format, got, tt.want)
		}
	}
}
