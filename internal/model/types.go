// Package model defines shared data structures.
package model

import "time"

// SkillRecord holds one trainable skill's level and cumulative experience.
// The synthetic "Overall" record aggregates total level and experience.
type SkillRecord struct {
	Name       string
	Level      int
	Experience int64
}

// PlayerProfile is the merged, normalized view of a player's current stats
// and recent activity. Assembled fresh on each lookup and never mutated.
type PlayerProfile struct {
	DisplayName      string
	TotalExperience  int64
	Skills           []SkillRecord
	RecentActivities []string
}

// GainKind distinguishes the metric behind a gain entry.
type GainKind string

// Gain kinds.
const (
	GainExperience GainKind = "experience"
	GainKills      GainKind = "kills"
)

// GainEntry is an intermediate ranked gain produced while summarizing
// period gains. It is consumed to build activity strings and discarded.
type GainEntry struct {
	Subject     string
	MetricDelta int64
	Kind        GainKind
}

// LookupRecord is one entry of the lookup history.
type LookupRecord struct {
	Username        string
	DisplayName     string
	TotalExperience int64
	LookedUpAt      time.Time
}

// Config defines advisor settings resolved from flags, config file and
// defaults.
type Config struct {
	APIKey    string
	Model     string
	Period    string
	TopSkills int
	TopBosses int
	WOMBase   string
	LLMBase   string
}
