// Package profile turns raw WiseOldMan payloads into player profiles.
package profile

import (
	"unicode"

	"github.com/sh0bas/osrs-advisor/internal/model"
	"github.com/sh0bas/osrs-advisor/internal/wom"
)

const overallKey = "overall"

// MsgMalformed is shown when a service response violates the stats contract.
const MsgMalformed = "Something went wrong reading player stats. Please try again later."

// NormalizeSkills converts raw skill entries into skill records with display
// names. The "overall" entry is renamed "Overall" and moved last; every other
// entry keeps its relative order and gets its first rune upper-cased. A
// missing "overall" entry or an entry without level/experience is a
// malformed-input failure.
func NormalizeSkills(entries []wom.SkillEntry) ([]model.SkillRecord, error) {
	records := make([]model.SkillRecord, 0, len(entries))
	var overall *model.SkillRecord
	for _, entry := range entries {
		if entry.Level == nil || entry.Experience == nil {
			return nil, &model.LookupError{
				Category: model.CategoryMalformedInput,
				Message:  MsgMalformed,
			}
		}
		record := model.SkillRecord{
			Name:       titleFirst(entry.Key),
			Level:      *entry.Level,
			Experience: *entry.Experience,
		}
		if entry.Key == overallKey {
			overall = &record
			continue
		}
		records = append(records, record)
	}
	if overall == nil {
		return nil, &model.LookupError{
			Category: model.CategoryMalformedInput,
			Message:  MsgMalformed,
		}
	}
	return append(records, *overall), nil
}

// titleFirst upper-cases the first rune and leaves the rest unchanged, so
// "runecraft" becomes "Runecraft".
func titleFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
