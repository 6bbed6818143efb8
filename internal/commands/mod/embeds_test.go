package mod

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/voidswithin/cipher/pkg/models"
	"github.com/voidswithin/cipher/pkg/warnings"
)

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}

	got := truncate(strings.Repeat("x", 50), 10)
	if utf8.RuneCountInString(got) != 10 {
		t.Errorf("truncated length = %d runes, want 10", utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated value %q should end with ellipsis", got)
	}

	// Cutting must happen on rune boundaries, never mid-character
	got = truncate(strings.Repeat("é", 50), 10)
	if !utf8.ValidString(got) {
		t.Fatalf("truncated value %q is not valid UTF-8", got)
	}
	if want := strings.Repeat("é", 7) + "..."; got != want {
		t.Errorf("truncated value = %q, want %q", got, want)
	}

	if got := truncate(strings.Repeat("é", 10), 10); got != strings.Repeat("é", 10) {
		t.Errorf("value at the limit should pass through, got %q", got)
	}
}

func TestTag(t *testing.T) {
	tests := []struct {
		name string
		user *discordgo.User
		want string
	}{
		{"nil user", nil, "unknown"},
		{"legacy discriminator", &discordgo.User{Username: "void", Discriminator: "1234"}, "void#1234"},
		{"new username system", &discordgo.User{Username: "void", Discriminator: "0"}, "void"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tag(tt.user); got != tt.want {
				t.Errorf("tag() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIssuedEmbedFields(t *testing.T) {
	moderator := warnings.Actor{ID: "1", Username: "mod", Discriminator: "0"}
	target := warnings.Actor{ID: "2", Username: "member", Discriminator: "0"}
	template := models.WarningTemplate{ID: 1, Title: "Spamming", Description: "Repeated unsolicited messages"}

	t.Run("without notes or severity", func(t *testing.T) {
		embed := issuedEmbed(moderator, target, template, nil, models.SeverityUnset)

		if embed.Color != colorBrand {
			t.Errorf("Color = %#x, want %#x", embed.Color, colorBrand)
		}
		if len(embed.Fields) != 3 {
			t.Fatalf("Fields = %d, want 3", len(embed.Fields))
		}
		if embed.Fields[2].Value != "No additional notes provided" {
			t.Errorf("notes field = %q", embed.Fields[2].Value)
		}
	})

	t.Run("with notes and severity", func(t *testing.T) {
		notes := "second offence"
		embed := issuedEmbed(moderator, target, template, &notes, models.SeverityHigh)

		if len(embed.Fields) != 4 {
			t.Fatalf("Fields = %d, want 4", len(embed.Fields))
		}
		if embed.Fields[2].Value != notes {
			t.Errorf("notes field = %q, want %q", embed.Fields[2].Value, notes)
		}
		if embed.Fields[3].Value != "high" {
			t.Errorf("severity field = %q, want high", embed.Fields[3].Value)
		}
	})
}

func TestWarningDMEmbedOmitsEmptyNotes(t *testing.T) {
	template := models.WarningTemplate{ID: 1, Title: "Spamming", Description: "Repeated unsolicited messages"}

	embed := warningDMEmbed(template, nil, models.SeverityUnset)
	if len(embed.Fields) != 2 {
		t.Fatalf("Fields = %d, want 2", len(embed.Fields))
	}

	notes := "please stop"
	embed = warningDMEmbed(template, &notes, models.SeverityLow)
	if len(embed.Fields) != 4 {
		t.Fatalf("Fields = %d, want 4", len(embed.Fields))
	}
}

func TestPageControlsDisabledAtEdges(t *testing.T) {
	view := warnings.NewPageView("owner", 3)

	row := pageControls(view, "prev", "next")[0].(discordgo.ActionsRow)
	prev := row.Components[0].(discordgo.Button)
	next := row.Components[1].(discordgo.Button)

	if !prev.Disabled {
		t.Error("Previous should be disabled on the first page")
	}
	if next.Disabled {
		t.Error("Next should be enabled on the first page")
	}

	view.Next()
	view.Next()
	row = pageControls(view, "prev", "next")[0].(discordgo.ActionsRow)
	if row.Components[0].(discordgo.Button).Disabled {
		t.Error("Previous should be enabled on the last page")
	}
	if !row.Components[1].(discordgo.Button).Disabled {
		t.Error("Next should be disabled on the last page")
	}
}
