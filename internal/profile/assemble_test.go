package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/sh0bas/osrs-advisor/internal/model"
	"github.com/sh0bas/osrs-advisor/internal/wom"
)

type fakeSource struct {
	stats    wom.PlayerStats
	statsErr error
	gains    wom.Gains
	gainsErr error

	gainsPeriod string
}

func (f *fakeSource) FetchPlayerStats(_ context.Context, _ string) (wom.PlayerStats, error) {
	return f.stats, f.statsErr
}

func (f *fakeSource) FetchGains(_ context.Context, _, period string) (wom.Gains, error) {
	f.gainsPeriod = period
	return f.gains, f.gainsErr
}

func testStats() wom.PlayerStats {
	return wom.PlayerStats{
		DisplayName:     "Zezima",
		TotalExperience: 4600000000,
		Skills: []wom.SkillEntry{
			skillEntry("overall", 2277, 4600000000),
			skillEntry("attack", 99, 200000000),
		},
	}
}

func TestAssembleSuccess(t *testing.T) {
	source := &fakeSource{
		stats: testStats(),
		gains: wom.Gains{
			Skills: []wom.MetricGain{{Key: "slayer", Gained: 150000}},
		},
	}
	assembler := NewAssembler(source, "", 0, 0)
	p, err := assembler.Assemble(context.Background(), "Zezima")
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if source.gainsPeriod != "week" {
		t.Fatalf("unexpected gains period: %q", source.gainsPeriod)
	}
	if p.DisplayName != "Zezima" || p.TotalExperience != 4600000000 {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if len(p.Skills) != 2 || p.Skills[1].Name != "Overall" {
		t.Fatalf("unexpected skills: %+v", p.Skills)
	}
	if len(p.RecentActivities) != 1 || p.RecentActivities[0] != "Gained 150k Slayer XP" {
		t.Fatalf("unexpected activities: %v", p.RecentActivities)
	}
}

func TestAssembleGainsFailureIsPartial(t *testing.T) {
	source := &fakeSource{
		stats:    testStats(),
		gainsErr: errors.New("timeout"),
	}
	assembler := NewAssembler(source, "week", 5, 3)
	p, err := assembler.Assemble(context.Background(), "Zezima")
	if err != nil {
		t.Fatalf("expected success despite gains failure, got %v", err)
	}
	if len(p.Skills) == 0 {
		t.Fatalf("expected populated skills")
	}
	if len(p.RecentActivities) != 1 || p.RecentActivities[0] != MsgActivityUnavailable {
		t.Fatalf("unexpected activities: %v", p.RecentActivities)
	}
}

func TestAssembleStatsNotFound(t *testing.T) {
	source := &fakeSource{
		statsErr: &wom.StatusError{StatusCode: 404},
	}
	assembler := NewAssembler(source, "week", 5, 3)
	_, err := assembler.Assemble(context.Background(), "doesnotexist123")
	if err == nil {
		t.Fatalf("expected error")
	}
	var lookupErr *model.LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected LookupError, got %v", err)
	}
	if lookupErr.Category != model.CategoryNotFound {
		t.Fatalf("unexpected category: %v", lookupErr.Category)
	}
	if lookupErr.Message != wom.MsgNotFound {
		t.Fatalf("unexpected message: %q", lookupErr.Message)
	}
}

func TestAssembleStatsUnavailable(t *testing.T) {
	source := &fakeSource{
		statsErr: errors.New("connection refused"),
	}
	assembler := NewAssembler(source, "week", 5, 3)
	_, err := assembler.Assemble(context.Background(), "Zezima")
	var lookupErr *model.LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected LookupError, got %v", err)
	}
	if lookupErr.Category != model.CategoryUnavailable {
		t.Fatalf("unexpected category: %v", lookupErr.Category)
	}
}

func TestAssembleMalformedStats(t *testing.T) {
	source := &fakeSource{
		stats: wom.PlayerStats{
			DisplayName: "Zezima",
			Skills: []wom.SkillEntry{
				skillEntry("attack", 99, 200000000),
			},
		},
	}
	assembler := NewAssembler(source, "week", 5, 3)
	_, err := assembler.Assemble(context.Background(), "Zezima")
	var lookupErr *model.LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("expected LookupError, got %v", err)
	}
	if lookupErr.Category != model.CategoryMalformedInput {
		t.Fatalf("unexpected category: %v", lookupErr.Category)
	}
}
