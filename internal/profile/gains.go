package profile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sh0bas/osrs-advisor/internal/model"
	"github.com/sh0bas/osrs-advisor/internal/wom"
)

// Default caps for the activity summary.
const (
	DefaultTopSkills = 5
	DefaultTopBosses = 3
)

// Placeholder activity strings.
const (
	MsgNoActivity          = "No recent activity found."
	MsgActivityUnavailable = "Activity data unavailable. Try updating the player on WiseOldMan."
)

// SummarizeGains ranks period gains into human-readable activity strings:
// the top skill XP gains first, then the top boss kill gains. Ties keep
// response order. Zero qualifying entries yields a single placeholder line.
func SummarizeGains(gains wom.Gains, topSkills, topBosses int) []string {
	if topSkills <= 0 {
		topSkills = DefaultTopSkills
	}
	if topBosses <= 0 {
		topBosses = DefaultTopBosses
	}

	skills := rankGains(gains.Skills, model.GainExperience, topSkills)
	bosses := rankGains(gains.Bosses, model.GainKills, topBosses)

	activities := make([]string, 0, len(skills)+len(bosses))
	for _, entry := range skills {
		activities = append(activities,
			fmt.Sprintf("Gained %s %s XP", FormatXP(entry.MetricDelta), titleFirst(entry.Subject)))
	}
	for _, entry := range bosses {
		activities = append(activities,
			fmt.Sprintf("Killed %d %s", entry.MetricDelta, bossDisplayName(entry.Subject)))
	}
	if len(activities) == 0 {
		return []string{MsgNoActivity}
	}
	return activities
}

// rankGains filters to positive deltas, sorts descending with response order
// breaking ties, and caps the result.
func rankGains(raw []wom.MetricGain, kind model.GainKind, top int) []model.GainEntry {
	entries := make([]model.GainEntry, 0, len(raw))
	for _, gain := range raw {
		if gain.Gained <= 0 {
			continue
		}
		entries = append(entries, model.GainEntry{
			Subject:     gain.Key,
			MetricDelta: gain.Gained,
			Kind:        kind,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].MetricDelta > entries[j].MetricDelta
	})
	if top > len(entries) {
		top = len(entries)
	}
	return entries[:top]
}

// FormatXP renders an experience value with unit scaling: one-decimal
// millions from 1M up, floored thousands from 1k up, bare integer below.
func FormatXP(xp int64) string {
	switch {
	case xp >= 1_000_000:
		tenths := xp / 100_000
		return fmt.Sprintf("%d.%dM", tenths/10, tenths%10)
	case xp >= 1_000:
		return fmt.Sprintf("%dk", xp/1_000)
	default:
		return fmt.Sprintf("%d", xp)
	}
}

// bossDisplayName turns a raw boss key like "chambers_of_xeric" into
// "Chambers Of Xeric".
func bossDisplayName(key string) string {
	words := strings.Split(key, "_")
	for i, word := range words {
		words[i] = titleFirst(word)
	}
	return strings.Join(words, " ")
}
