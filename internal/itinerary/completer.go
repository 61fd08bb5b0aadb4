package itinerary

import (
	"regexp"
	"strings"

	"github.com/jiamizhongshifu/xiaozhou/internal/types"
)

// maxVagueReplacements bounds how many vague phrases of one kind are
// rewritten in a single day.
const maxVagueReplacements = 64

var (
	accommodationAnchor = regexp.MustCompile(`(?m)^#{1,3}[ \t]*(?:住宿推荐|住宿建议)`)
	dayLine             = regexp.MustCompile(`(?m)^[ \t]*(?:#{1,3}[ \t]*)?(?:第\d+天|(?i:Day)[ \t]*\d+)`)
)

// Complete fills every gap reported by Validate with synthesized content and
// returns the new text. A valid report is returned untouched, and so is the
// original text if completion fails.
func Complete(report types.ValidationReport, params types.TripParameters) (out string) {
	if report.Valid {
		return report.Itinerary
	}
	defer func() {
		if r := recover(); r != nil {
			out = report.Itinerary
		}
	}()

	profile := LookupProfile(params.Destination)
	text := report.Itinerary

	if !report.Found(SectionOverview) {
		overview := overviewSection(params)
		if text == "" {
			text = overview
		} else {
			text = overview + "\n\n" + text
		}
	}

	if report.Found(SectionDailyPlan) {
		text = completeDailyPlan(text, params, profile)
	} else {
		plan := dailyPlanSection(params, profile)
		if accommodationAnchor.MatchString(text) {
			text = Splice(text, accommodationAnchor, plan+"\n\n", Before)
		} else {
			text = appendBlock(text, plan)
		}
	}

	appended := []struct {
		key   string
		build func() string
	}{
		{SectionAccommodation, func() string { return accommodationSection(params, profile) }},
		{SectionFood, func() string { return foodSection(params, profile) }},
		{SectionTransportation, func() string { return transportationSection(params, profile) }},
		{SectionTips, func() string { return tipsSection(profile) }},
		{SectionBudget, func() string { return budgetSection(params) }},
	}
	for _, s := range appended {
		if !report.Found(s.key) {
			text = appendBlock(text, s.build())
		}
	}
	return text
}

// completeDailyPlan first inserts every missing day, then repairs each day in
// place so that no later insertion can widen a repaired block.
func completeDailyPlan(text string, params types.TripParameters, profile DestinationProfile) string {
	sec, ok := locateSection(text, mustSection(SectionDailyPlan).Patterns)
	if !ok {
		return text
	}
	plan := sec.of(text)
	days := params.DayCount()

	for day := 1; day <= days; day++ {
		if _, ok := locateDay(plan, day); !ok {
			plan = insertDay(plan, day, completeDay(day, params, profile))
		}
	}
	for day := 1; day <= days; day++ {
		s, ok := locateDay(plan, day)
		if !ok {
			continue
		}
		plan = plan[:s.start] + repairDay(s.of(plan), day, params, profile) + plan[s.end:]
	}

	return text[:sec.start] + plan + text[sec.end:]
}

// insertDay places block after the nearest earlier day, or ahead of the first
// day of the plan, or at the end of the plan when it lists no day at all.
func insertDay(plan string, day int, block string) string {
	for prev := day - 1; prev >= 1; prev-- {
		if s, ok := locateDay(plan, prev); ok {
			return insertAt(plan, s.end, "\n\n"+block)
		}
	}
	if loc := dayLine.FindStringIndex(plan); loc != nil {
		return insertAt(plan, loc[0], block+"\n\n")
	}
	return appendBlock(plan, block)
}

// repairDay adds the missing time slots right below the day heading and
// rewrites vague phrases into concrete activities.
func repairDay(block string, day int, params types.TripParameters, profile DestinationProfile) string {
	var missing []string
	for _, slot := range DailySlots {
		if slot.Required && !anyMatch(slot.Patterns, block) {
			missing = append(missing, slotLine(slot.Key, day, params, profile))
		}
	}
	if len(missing) > 0 {
		eol := strings.IndexByte(block, '\n')
		if eol < 0 {
			eol = len(block)
		}
		block = insertAt(block, eol, "\n\n"+strings.Join(missing, "\n\n"))
	}

	occurrence := 0
	for _, p := range ForbiddenPatterns {
		for i := 0; i < maxVagueReplacements; i++ {
			loc := p.FindStringIndex(block)
			if loc == nil {
				break
			}
			block = block[:loc[0]] + concreteActivity(day, occurrence, profile) + block[loc[1]:]
			occurrence++
		}
	}
	return block
}

// appendBlock adds block at the end of text separated by one blank line,
// without touching what is already there.
func appendBlock(text, block string) string {
	switch {
	case text == "":
		return block
	case strings.HasSuffix(text, "\n\n"):
		return text + block
	case strings.HasSuffix(text, "\n"):
		return text + "\n" + block
	default:
		return text + "\n\n" + block
	}
}

// Draft writes a whole itinerary from the trip parameters alone.
func Draft(params types.TripParameters) string {
	return Complete(types.ValidationReport{}, params)
}
