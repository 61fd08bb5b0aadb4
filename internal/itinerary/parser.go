package itinerary

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jiamizhongshifu/xiaozhou/internal/types"
)

var (
	itineraryHint = regexp.MustCompile(`第\d+天|行程安排|旅游攻略|旅行计划|详细行程|行程概览|深度之旅`)
	transportLine = regexp.MustCompile(`今日交通(?:\*\*)?[ \t]*[:：][ \t]*(.+)`)
	foodLine      = regexp.MustCompile(`今日美食推荐(?:\*\*)?[ \t]*[:：][ \t]*(.+)`)
	itemSplit     = regexp.MustCompile(`\n[ \t]*[-•*][ \t]*`)
	anyDayNumber  = regexp.MustCompile(`第(\d+)天`)
)

// daySplitter cuts a daily plan into day blocks. Each block runs from its
// start match to the next start match or the first boundary match after it.
type daySplitter struct {
	start    *regexp.Regexp
	boundary *regexp.Regexp
}

var daySplitters = []daySplitter{
	{start: regexp.MustCompile(`###[ \t]*第(\d+)天`), boundary: regexp.MustCompile(`\n#{1,2}[ \t]*[^#第\s]`)},
	{start: regexp.MustCompile(`##[ \t]*第(\d+)天`), boundary: regexp.MustCompile(`\n#{1,2}[ \t]*[^#第\s]`)},
	{start: regexp.MustCompile(`(?m)^[ \t]*第(\d+)天`), boundary: regexp.MustCompile(`\n##`)},
}

type dayBlock struct {
	number int
	text   string
}

func (d daySplitter) split(text string) []dayBlock {
	locs := d.start.FindAllStringSubmatchIndex(text, -1)
	blocks := make([]dayBlock, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if b := d.boundary.FindStringIndex(text[loc[1]:end]); b != nil {
			end = loc[1] + b[0]
		}
		blocks = append(blocks, dayBlock{number: capturedNumber(text, loc), text: text[loc[0]:end]})
	}
	return blocks
}

// splitByKeyword is the last resort: it cuts the text at every day marker
// whose number keeps increasing, wherever the marker sits.
func splitByKeyword(text string) []dayBlock {
	var starts [][]int
	last := 0
	for _, loc := range anyDayNumber.FindAllStringSubmatchIndex(text, -1) {
		if n := capturedNumber(text, loc); n > last {
			starts = append(starts, loc)
			last = n
		}
	}
	blocks := make([]dayBlock, 0, len(starts))
	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		blocks = append(blocks, dayBlock{number: capturedNumber(text, loc), text: text[loc[0]:end]})
	}
	return blocks
}

// Parse extracts the day and period structure of an itinerary. Text that
// does not look like an itinerary, or has no day markers, yields an empty
// slice. It never panics.
func Parse(text string) (days []types.ParsedDay) {
	days = []types.ParsedDay{}
	defer func() {
		if r := recover(); r != nil {
			days = []types.ParsedDay{}
		}
	}()

	text = strings.ReplaceAll(text, "\r\n", "\n")
	if !itineraryHint.MatchString(text) {
		return days
	}

	scope := text
	if plan, ok := ExtractSection(text, mustSection(SectionDailyPlan).Patterns); ok {
		scope = plan
	}

	var blocks []dayBlock
	for _, s := range daySplitters {
		if blocks = s.split(scope); len(blocks) > 0 {
			break
		}
	}
	if len(blocks) == 0 {
		blocks = splitByKeyword(text)
	}

	for _, b := range blocks {
		if b.number < 1 {
			continue
		}
		days = append(days, parseDay(b))
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].DayNumber < days[j].DayNumber })
	return days
}

func parseDay(b dayBlock) types.ParsedDay {
	day := types.ParsedDay{DayNumber: b.number}
	for _, slot := range DailySlots {
		content := extractPeriod(b.text, slot.Key)
		switch slot.Key {
		case SlotMorning:
			day.Periods.Morning = content
		case SlotAfternoon:
			day.Periods.Afternoon = content
		case SlotEvening:
			day.Periods.Evening = content
		}
	}
	day.Transport = labelValue(transportLine, b.text)
	day.Food = labelValue(foodLine, b.text)
	return day
}

func labelValue(re *regexp.Regexp, text string) *string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m[1]), "**"))
	if v == "" {
		return nil
	}
	return &v
}

// periodPatterns holds the compiled layouts of one time slot.
type periodPatterns struct {
	keywords []string
	bold     *regexp.Regexp
	bulleted *regexp.Regexp
	bare     *regexp.Regexp
}

// periodMatcher pulls the content of one period out of a day block, or
// returns "" when its layout does not apply.
type periodMatcher func(block string, p periodPatterns) string

var periodMatchers = []periodMatcher{
	boldPeriod,
	bulletedBoldPeriod,
	barePeriod,
	scanPeriod,
}

var (
	periodKeywords  = allPeriodKeywords()
	boldBoundary    = regexp.MustCompile(`\*\*|###|##|第\d+天`)
	bulletBoundary  = regexp.MustCompile(`\n[ \t]*[-•]|###|##|第\d+天`)
	bareBoundary    = regexp.MustCompile(`\n[ \t]*` + keywordGroup(periodKeywords) + `|###|##|第\d+天`)
	dayMarkerInLine = regexp.MustCompile(`第\d+天`)
	slotPatterns    = compileSlotPatterns()
)

func allPeriodKeywords() []string {
	var all []string
	for _, slot := range DailySlots {
		all = append(all, slot.Keywords...)
	}
	return all
}

func keywordGroup(keywords []string) string {
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}

func compileSlotPatterns() map[string]periodPatterns {
	patterns := make(map[string]periodPatterns, len(DailySlots))
	for _, slot := range DailySlots {
		kw := keywordGroup(slot.Keywords)
		patterns[slot.Key] = periodPatterns{
			keywords: slot.Keywords,
			bold:     regexp.MustCompile(`\*\*` + kw + `[^*\n]*\*\*[ \t]*[:：][ \t]*`),
			bulleted: regexp.MustCompile(`[-•][ \t]*\*\*` + kw + `[^*\n]*\*\*[ \t]*[:：][ \t]*`),
			bare:     regexp.MustCompile(kw + `[ \t]*[:：][ \t]*`),
		}
	}
	return patterns
}

func extractPeriod(block, slot string) *types.PeriodContent {
	p := slotPatterns[slot]
	for _, match := range periodMatchers {
		raw := cleanPeriod(match(block, p))
		if raw != "" {
			return &types.PeriodContent{RawText: raw, Items: splitItems(raw)}
		}
	}
	return nil
}

// between returns the text after the start match up to the first boundary.
func between(block string, start, boundary *regexp.Regexp) string {
	loc := start.FindStringIndex(block)
	if loc == nil {
		return ""
	}
	rest := block[loc[1]:]
	if b := boundary.FindStringIndex(rest); b != nil {
		rest = rest[:b[0]]
	}
	return rest
}

func boldPeriod(block string, p periodPatterns) string {
	return between(block, p.bold, boldBoundary)
}

func bulletedBoldPeriod(block string, p periodPatterns) string {
	return between(block, p.bulleted, bulletBoundary)
}

func barePeriod(block string, p periodPatterns) string {
	return between(block, p.bare, bareBoundary)
}

// scanPeriod takes the first line mentioning the period and every following
// line until another period, another day or a heading shows up.
func scanPeriod(block string, p periodPatterns) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		k := firstKeyword(line, p.keywords)
		if k < 0 {
			continue
		}
		collected := []string{strings.TrimLeft(line[k:], " \t:：*")}
		for _, next := range lines[i+1:] {
			trimmed := strings.TrimSpace(next)
			if strings.HasPrefix(trimmed, "##") || dayMarkerInLine.MatchString(trimmed) ||
				firstKeyword(trimmed, periodKeywords) >= 0 {
				break
			}
			collected = append(collected, next)
		}
		return strings.Join(collected, "\n")
	}
	return ""
}

// firstKeyword returns the offset just past the first keyword found in line,
// or -1.
func firstKeyword(line string, keywords []string) int {
	for _, k := range keywords {
		if i := strings.Index(line, k); i >= 0 {
			return i + len(k)
		}
	}
	return -1
}

func cleanPeriod(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, " \t\n-•*"))
}

func splitItems(raw string) []string {
	if !strings.ContainsAny(raw, "-*•") {
		return []string{raw}
	}
	var items []string
	for _, part := range itemSplit.Split(raw, -1) {
		part = strings.TrimSpace(strings.TrimLeft(part, "-•* \t"))
		part = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(part, "**"), "**"))
		if part != "" {
			items = append(items, part)
		}
	}
	if len(items) == 0 {
		return []string{raw}
	}
	return items
}
