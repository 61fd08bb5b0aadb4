package itinerary

import (
	"fmt"
	"strings"

	"github.com/jiamizhongshifu/xiaozhou/internal/types"
)

const (
	issueEmpty        = "empty content"
	issueVagueWording = `Day %d contains vague wording (e.g. "free time"), should provide concrete suggestions`
)

// Validate checks text against the section and daily time-slot schema for the
// given trip. It never panics; an internal failure is reported as an issue.
func Validate(text string, params types.TripParameters) (report types.ValidationReport) {
	report = types.ValidationReport{
		Issues:        []string{},
		SectionsFound: make(map[string]bool, len(Sections)),
		Itinerary:     text,
	}
	defer func() {
		if r := recover(); r != nil {
			report.Valid = false
			report.Issues = []string{fmt.Sprintf("unable to validate: %v", r)}
		}
	}()

	if strings.TrimSpace(text) == "" {
		report.Issues = append(report.Issues, issueEmpty)
		return report
	}

	for _, rule := range Sections {
		found := anyMatch(rule.Patterns, text)
		report.SectionsFound[rule.Key] = found
		if rule.Required && !found {
			report.Issues = append(report.Issues, fmt.Sprintf("Missing section %q", rule.DisplayName))
		}
	}

	days := params.DayCount()
	present := presentDays(text)
	for day := 1; day <= days; day++ {
		if !present[day] {
			report.Issues = append(report.Issues, fmt.Sprintf("Missing day %d itinerary", day))
		}
	}

	if report.SectionsFound[SectionDailyPlan] {
		plan, _ := ExtractSection(text, mustSection(SectionDailyPlan).Patterns)
		for day := 1; day <= days; day++ {
			content, ok := ExtractDay(plan, day)
			if !ok {
				continue
			}
			report.Issues = append(report.Issues, dayIssues(day, content)...)
		}
	}

	report.Valid = len(report.Issues) == 0
	return report
}

func dayIssues(day int, content string) []string {
	var issues []string
	for _, slot := range DailySlots {
		if slot.Required && !anyMatch(slot.Patterns, content) {
			issues = append(issues, fmt.Sprintf("Day %d missing %s schedule", day, slot.Key))
		}
	}
	if anyMatch(ForbiddenPatterns, content) {
		issues = append(issues, fmt.Sprintf(issueVagueWording, day))
	}
	return issues
}
