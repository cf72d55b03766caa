package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "This is a much longer piece of content that should still hash consistently",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestSection_ContentID(t *testing.T) {
	tests := []struct {
		name    string
		section Section
	}{
		{
			name:    "basic section",
			section: Section{Name: "Problem"},
		},
		{
			name:    "section with spaces",
			section: Section{Name: "Market Size"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.section.ContentID()
			want := IDFromContent(tt.section.Name)
			if got != want {
				t.Errorf("Section.ContentID() = %v, want %v", got, want)
			}
		})
	}
}

func TestSection_ContentID_IgnoresDescription(t *testing.T) {
	a := Section{Name: "Traction", Description: "Growth and adoption"}
	b := Section{Name: "Traction", Description: "Completely different text"}

	if a.ContentID() != b.ContentID() {
		t.Error("Section.ContentID() should depend on name only")
	}
}
