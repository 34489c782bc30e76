package language

import "testing"

func TestDisplayNameEnglish(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"eng", "English"},
		{"ita", "Italian"},
		{"fr", "French"},
		{"de", "German"},
		{" ja ", "Japanese"},
		// Unparseable codes fall back to the capitalized code
		{"xyz1", "Xyz1"},
		// Blank
		{"", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DisplayName(tt.input); got != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNamerLocalizes(t *testing.T) {
	namer, err := NewNamer("fr")
	if err != nil {
		t.Fatalf("NewNamer returned error: %v", err)
	}
	if got := namer.DisplayName("eng"); got != "anglais" {
		t.Fatalf("DisplayName(eng) in fr = %q, want anglais", got)
	}
}

func TestNewNamerRejectsInvalidLocale(t *testing.T) {
	if _, err := NewNamer("not a tag"); err == nil {
		t.Fatal("expected error for invalid locale")
	}
	namer, err := NewNamer("")
	if err != nil {
		t.Fatalf("blank locale should default to English: %v", err)
	}
	if got := namer.DisplayName("spa"); got != "Spanish" {
		t.Fatalf("DisplayName(spa) = %q", got)
	}
}

func TestParse(t *testing.T) {
	if tag, ok := Parse("eng"); !ok || tag.String() != "en" {
		t.Fatalf("Parse(eng) = %v,%v", tag, ok)
	}
	if _, ok := Parse(""); ok {
		t.Fatal("blank code should not parse")
	}
	if _, ok := Parse("???"); ok {
		t.Fatal("garbage should not parse")
	}
}
