package utils

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestMatchRole(t *testing.T) {
	roles := []*discordgo.Role{
		{ID: "111", Name: "Muted"},
		{ID: "222", Name: "Moderator"},
		{ID: "333", Name: "muted"}, // name collides with 111 ignoring case
	}

	tests := []struct {
		name  string
		input string
		want  string // expected role ID, "" for no match
	}{
		{"mention", "<@&222>", "222"},
		{"raw id", "111", "111"},
		{"exact name", "Moderator", "222"},
		{"case-insensitive name", "MUTED", "111"},
		{"id wins over name", "333", "333"},
		{"no match", "Admin", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matchRole(roles, tt.input)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("matchRole(%q) = %v, want nil", tt.input, got.ID)
				}
				return
			}
			if got == nil || got.ID != tt.want {
				t.Fatalf("matchRole(%q) = %v, want role %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractRoleID(t *testing.T) {
	if got := ExtractRoleID("<@&123>"); got != "123" {
		t.Errorf("mention = %q, want 123", got)
	}
	if got := ExtractRoleID("123"); got != "123" {
		t.Errorf("raw input = %q, want passthrough", got)
	}
}
