package profile

import (
	"strings"
	"testing"

	"github.com/sh0bas/osrs-advisor/internal/model"
)

func TestRender(t *testing.T) {
	p := model.PlayerProfile{
		DisplayName:     "Zezima",
		TotalExperience: 4600000000,
		Skills: []model.SkillRecord{
			{Name: "Attack", Level: 99, Experience: 200000000},
			{Name: "Overall", Level: 2277, Experience: 4600000000},
		},
		RecentActivities: []string{"Gained 150k Slayer XP"},
	}
	out := Render(p)
	if !strings.Contains(out, "Zezima · 4600.0M XP total") {
		t.Fatalf("missing header: %q", out)
	}
	lines := strings.Split(out, "\n")
	var header, attackRow string
	for _, line := range lines {
		if strings.HasPrefix(line, "Skill") {
			header = line
		}
		if strings.HasPrefix(line, "Attack") {
			attackRow = line
		}
	}
	if header == "" || attackRow == "" {
		t.Fatalf("missing table rows: %q", out)
	}
	if !strings.Contains(out, "  - Gained 150k Slayer XP") {
		t.Fatalf("missing activity line: %q", out)
	}
}

func TestFormatTableAlignment(t *testing.T) {
	lines := formatTable(
		[]string{"Skill", "Level"},
		[][]string{{"Attack", "99"}, {"Runecraft", "5"}},
		map[int]bool{1: true},
	)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1] != "Attack        99" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if lines[2] != "Runecraft      5" {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}
