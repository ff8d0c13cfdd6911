package profile

import (
	"context"

	"github.com/sh0bas/osrs-advisor/internal/model"
	"github.com/sh0bas/osrs-advisor/internal/wom"
)

// StatsSource is the subset of the WiseOldMan client the assembler needs.
type StatsSource interface {
	FetchPlayerStats(ctx context.Context, username string) (wom.PlayerStats, error)
	FetchGains(ctx context.Context, username, period string) (wom.Gains, error)
}

// Assembler builds player profiles from a stats source.
type Assembler struct {
	source    StatsSource
	period    string
	topSkills int
	topBosses int
}

// NewAssembler constructs an assembler. An empty period defaults to "week";
// non-positive caps fall back to the summary defaults.
func NewAssembler(source StatsSource, period string, topSkills, topBosses int) *Assembler {
	if period == "" {
		period = "week"
	}
	return &Assembler{
		source:    source,
		period:    period,
		topSkills: topSkills,
		topBosses: topBosses,
	}
}

// Assemble fetches and normalizes stats, then fetches and summarizes period
// gains, for a single profile. A gains failure degrades to a placeholder
// activity line and still succeeds; a stats failure is classified and
// returns no profile. The caller must pass a non-empty username.
func (a *Assembler) Assemble(ctx context.Context, username string) (model.PlayerProfile, error) {
	stats, err := a.source.FetchPlayerStats(ctx, username)
	if err != nil {
		return model.PlayerProfile{}, wom.Classify(err)
	}
	skills, err := NormalizeSkills(stats.Skills)
	if err != nil {
		return model.PlayerProfile{}, err
	}

	var activities []string
	gains, err := a.source.FetchGains(ctx, username, a.period)
	if err != nil {
		// Partial failure: stats resolved but gains did not. The profile is
		// still usable, so surface a placeholder instead of an error.
		activities = []string{MsgActivityUnavailable}
	} else {
		activities = SummarizeGains(gains, a.topSkills, a.topBosses)
	}

	return model.PlayerProfile{
		DisplayName:      stats.DisplayName,
		TotalExperience:  stats.TotalExperience,
		Skills:           skills,
		RecentActivities: activities,
	}, nil
}
