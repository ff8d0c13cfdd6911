package profile

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sh0bas/osrs-advisor/internal/model"
)

// Render formats a profile as plain text for one-shot CLI output: a header,
// a skills table and the recent-activity list.
func Render(p model.PlayerProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s · %s XP total\n\n", p.DisplayName, FormatXP(p.TotalExperience))

	rows := make([][]string, 0, len(p.Skills))
	for _, skill := range p.Skills {
		rows = append(rows, []string{
			skill.Name,
			fmt.Sprintf("%d", skill.Level),
			fmt.Sprintf("%d", skill.Experience),
		})
	}
	headers := []string{"Skill", "Level", "Experience"}
	rightAlign := map[int]bool{1: true, 2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString("\nRecent activity:\n")
	for _, activity := range p.RecentActivities {
		fmt.Fprintf(&b, "  - %s\n", activity)
	}
	return b.String()
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = displayWidth(header)
	}
	for _, row := range rows {
		for i := 0; i < colCount; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	var b strings.Builder
	for i := 0; i < len(widths); i++ {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(padCell(cell, widths[i], rightAlignCols[i]))
	}
	return b.String()
}

func padCell(value string, width int, rightAlign bool) string {
	valueWidth := displayWidth(value)
	if valueWidth >= width {
		return value
	}
	padding := width - valueWidth
	if rightAlign {
		return strings.Repeat(" ", padding) + value
	}
	return value + strings.Repeat(" ", padding)
}

func displayWidth(value string) int {
	return utf8.RuneCountInString(value)
}
