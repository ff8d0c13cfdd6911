// Package advisor builds advisory prompts and calls the recommendation
// service.
package advisor

import (
	"fmt"
	"strings"

	"github.com/sh0bas/osrs-advisor/internal/model"
)

// guidanceRules is the fixed heuristic block appended to every prompt. Only
// the player-specific sections above it vary between calls.
var guidanceRules = []string{
	"Treat skills below 50 as early game, 50-69 as mid game, 70-89 as late game and 90+ as end game; match the suggestion to the tier of the skill involved.",
	"Combat skills are Attack, Strength, Defence, Hitpoints, Ranged, Magic and Prayer.",
	"Profitable options open up around Slayer 70+, Farming 65+ (herb runs), Hunter 63+ and Thieving 49+; prefer these when the player seems focused on making money.",
	"Low-intensity options are Fishing, Woodcutting, Firemaking and Cooking; suggest one when the recent activity looks like a long grind.",
	"Do not suggest a skill that already dominates the recent activity list; the player just trained it.",
	"Never suggest content that requires a level the player does not have.",
	"Do not suggest quests or achievement diaries; completion is not tracked here.",
	"For processing skills such as Smithing, Crafting, Fletching, Herblore and Cooking, point to the OSRS Wiki training guide instead of inventing a method.",
	"Only suggest Prayer training while it is below 77; beyond that the remaining unlocks rarely justify the cost.",
}

// BuildPrompt deterministically renders the advisory prompt for a profile:
// display name, skills in profile order, recent activities in profile order
// and the constant guidance block. It fails only when the profile was never
// assembled.
func BuildPrompt(p model.PlayerProfile) (string, error) {
	if p.DisplayName == "" && len(p.Skills) == 0 {
		return "", fmt.Errorf("profile is empty")
	}

	var b strings.Builder
	b.WriteString("You are an Old School RuneScape activity advisor. Suggest one specific activity for this player in 2-4 sentences.\n\n")
	fmt.Fprintf(&b, "Player: %s\n\n", p.DisplayName)

	b.WriteString("Skills:\n")
	for _, skill := range p.Skills {
		fmt.Fprintf(&b, "- %s: level %d (%d XP)\n", skill.Name, skill.Level, skill.Experience)
	}

	b.WriteString("\nRecent activity:\n")
	for _, activity := range p.RecentActivities {
		fmt.Fprintf(&b, "- %s\n", activity)
	}

	b.WriteString("\nGuidelines:\n")
	for i, rule := range guidanceRules {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rule)
	}
	return b.String(), nil
}
