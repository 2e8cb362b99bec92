package youtube

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"standard", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"standard no www", "https://youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"standard http", "http://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"standard extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s&list=PLx", "dQw4w9WgXcQ"},
		{"standard v not first", "https://www.youtube.com/watch?list=PLx&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short with params", "https://youtu.be/dQw4w9WgXcQ?si=abc123", "dQw4w9WgXcQ"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed no www http", "http://youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"shorts", "https://youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"legacy v path", "https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"mobile host", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"no scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"inside message", "check this out https://youtu.be/dQw4w9WgXcQ thanks", "dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := Extract(tt.input)
			if !ok {
				t.Fatalf("expected match for %q", tt.input)
			}
			if ref.ID != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, ref.ID)
			}
		})
	}
}

func TestExtractNoMatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"plain text", "hello there"},
		{"emoji only", "🎥🎥🎥"},
		{"other platform", "https://vimeo.com/12345"},
		{"youtube home", "https://www.youtube.com/"},
		{"watch without id", "https://www.youtube.com/watch?t=42"},
		{"short without id", "https://youtu.be/"},
		{"bad scheme", "ftp://youtube.com/watch?v=dQw4w9WgXcQ"},
		{"channel page", "https://www.youtube.com/@somechannel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ref, ok := Extract(tt.input); ok {
				t.Errorf("expected no match, got %q", ref.ID)
			}
		})
	}
}

func TestExtractPlatform(t *testing.T) {
	ref, ok := Extract("https://youtu.be/dQw4w9WgXcQ")
	if !ok {
		t.Fatal("expected match")
	}
	if ref.Platform != "youtube" {
		t.Errorf("expected platform youtube, got %s", ref.Platform)
	}
}
