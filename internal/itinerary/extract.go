package itinerary

import (
	"regexp"
	"strconv"
	"strings"
)

// span is a half-open byte range of a text.
type span struct {
	start, end int
}

func (s span) of(text string) string {
	return text[s.start:s.end]
}

var dayTitle = regexp.MustCompile(`(?i)^(?:第\d+天|Day[ \t]*\d+)`)

// ExtractSection returns the block introduced by the first pattern that
// matches, running up to the next level one or two heading that is not a day
// heading, or to the end of the text.
func ExtractSection(text string, patterns []*regexp.Regexp) (string, bool) {
	s, ok := locateSection(text, patterns)
	if !ok {
		return "", false
	}
	return s.of(text), true
}

func locateSection(text string, patterns []*regexp.Regexp) (span, bool) {
	for _, p := range patterns {
		loc := p.FindStringIndex(text)
		if loc == nil {
			continue
		}
		return span{start: loc[0], end: sectionEnd(text, loc[1])}, true
	}
	return span{}, false
}

// sectionEnd returns the offset of the newline that precedes the next
// top-level heading after from.
func sectionEnd(text string, from int) int {
	pos := from
	for {
		nl := strings.IndexByte(text[pos:], '\n')
		if nl < 0 {
			return len(text)
		}
		lineStart := pos + nl + 1
		line := text[lineStart:]
		if i := strings.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
		}
		if isTopHeading(line) {
			return lineStart - 1
		}
		pos = lineStart
	}
}

func isTopHeading(line string) bool {
	level := len(line) - len(strings.TrimLeft(line, "#"))
	if level < 1 || level > 2 {
		return false
	}
	return !dayTitle.MatchString(strings.TrimSpace(line[level:]))
}

// dayMatcher finds the block of one numbered day. start must capture the day
// number in its first non-empty group; the block ends where boundary next
// matches after the start match.
type dayMatcher struct {
	start    *regexp.Regexp
	boundary *regexp.Regexp
}

// dayMatchers are tried in order and the first one that finds the day wins.
var dayMatchers = []dayMatcher{
	{start: regexp.MustCompile(`###[ \t]*第(\d+)天`), boundary: regexp.MustCompile(`\n##`)},
	{start: regexp.MustCompile(`##[ \t]*第(\d+)天`), boundary: regexp.MustCompile(`\n##`)},
	{start: regexp.MustCompile(`第(\d+)天`), boundary: regexp.MustCompile(`\n(?:第\d+天|##)`)},
	{start: regexp.MustCompile(`(?i)Day[ \t]*(\d+)`), boundary: regexp.MustCompile(`(?i)\n(?:Day[ \t]*\d+|##)`)},
}

func (m dayMatcher) locate(text string, day int) (span, bool) {
	for _, loc := range m.start.FindAllStringSubmatchIndex(text, -1) {
		if capturedNumber(text, loc) != day {
			continue
		}
		end := len(text)
		if b := m.boundary.FindStringIndex(text[loc[1]:]); b != nil {
			end = loc[1] + b[0]
		}
		return span{start: loc[0], end: end}, true
	}
	return span{}, false
}

// capturedNumber returns the first captured group of a submatch index as an
// integer, or -1.
func capturedNumber(text string, loc []int) int {
	for g := 2; g+1 < len(loc); g += 2 {
		if loc[g] < 0 {
			continue
		}
		n, err := strconv.Atoi(text[loc[g]:loc[g+1]])
		if err != nil {
			return -1
		}
		return n
	}
	return -1
}

// ExtractDay returns the block of the given day inside a daily plan.
func ExtractDay(dailyPlan string, day int) (string, bool) {
	s, ok := locateDay(dailyPlan, day)
	if !ok {
		return "", false
	}
	return s.of(dailyPlan), true
}

func locateDay(dailyPlan string, day int) (span, bool) {
	for _, m := range dayMatchers {
		if s, ok := m.locate(dailyPlan, day); ok {
			return s, true
		}
	}
	return span{}, false
}

// presentDays collects every day number announced anywhere in text.
func presentDays(text string) map[int]bool {
	days := make(map[int]bool)
	for _, loc := range dayMarker.FindAllStringSubmatchIndex(text, -1) {
		if n := capturedNumber(text, loc); n > 0 {
			days[n] = true
		}
	}
	return days
}
