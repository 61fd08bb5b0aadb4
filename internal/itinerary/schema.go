// Package itinerary validates, completes and parses free-text travel
// itineraries written as Chinese Markdown. Everything in it is pure: no I/O,
// no logging and no shared mutable state.
package itinerary

import "regexp"

// Section keys.
const (
	SectionOverview       = "overview"
	SectionDailyPlan      = "dailyPlan"
	SectionAccommodation  = "accommodation"
	SectionFood           = "food"
	SectionTransportation = "transportation"
	SectionTips           = "tips"
	SectionBudget         = "budget"
)

// Slot keys.
const (
	SlotMorning   = "morning"
	SlotAfternoon = "afternoon"
	SlotEvening   = "evening"
)

// SectionRule declares one top-level block an itinerary may contain.
type SectionRule struct {
	Key         string
	Required    bool
	DisplayName string
	Patterns    []*regexp.Regexp
}

// SlotRule declares one time slot a day block must mention.
type SlotRule struct {
	Key      string
	Label    string
	Required bool
	Keywords []string
	Patterns []*regexp.Regexp
}

func headingPatterns(titles ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(titles))
	for _, title := range titles {
		patterns = append(patterns, regexp.MustCompile(`#{1,3}[ \t]*`+regexp.QuoteMeta(title)))
	}
	return patterns
}

func literalPatterns(words ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		patterns = append(patterns, regexp.MustCompile(regexp.QuoteMeta(w)))
	}
	return patterns
}

// Sections is the section schema in document order.
var Sections = []SectionRule{
	{Key: SectionOverview, Required: true, DisplayName: "行程概览", Patterns: headingPatterns("行程概览", "旅行概览")},
	{Key: SectionDailyPlan, Required: true, DisplayName: "详细行程", Patterns: headingPatterns("详细行程", "每日行程")},
	{Key: SectionAccommodation, Required: true, DisplayName: "住宿推荐", Patterns: headingPatterns("住宿推荐", "住宿建议")},
	{Key: SectionFood, Required: true, DisplayName: "美食推荐", Patterns: headingPatterns("美食推荐", "餐饮建议")},
	{Key: SectionTransportation, Required: true, DisplayName: "交通指南", Patterns: headingPatterns("交通指南", "交通建议")},
	{Key: SectionTips, Required: true, DisplayName: "旅行小贴士", Patterns: headingPatterns("旅行小贴士", "旅游贴士")},
	{Key: SectionBudget, Required: false, DisplayName: "预算估算", Patterns: headingPatterns("预算估算", "费用估算")},
}

// DailySlots lists the time slots every day block must cover.
var DailySlots = []SlotRule{
	requiredSlot(SlotMorning, "上午", "早上", "早晨"),
	requiredSlot(SlotAfternoon, "下午"),
	requiredSlot(SlotEvening, "晚上", "傍晚", "夜晚"),
}

func requiredSlot(key, label string, aliases ...string) SlotRule {
	keywords := append([]string{label}, aliases...)
	return SlotRule{Key: key, Label: label, Required: true, Keywords: keywords, Patterns: literalPatterns(keywords...)}
}

// ForbiddenPatterns match vague placeholders that stand in for a concrete plan.
var ForbiddenPatterns = literalPatterns("自由活动", "自由安排", "自由探索", "自由游览")

// dayMarker matches every way a day can be announced anywhere in the text.
var dayMarker = regexp.MustCompile(`(?i)(?:#{0,3}[ \t]*第(\d+)天|Day[ \t]*(\d+))`)

// SectionByKey returns the rule registered under key.
func SectionByKey(key string) (SectionRule, bool) {
	for _, rule := range Sections {
		if rule.Key == key {
			return rule, true
		}
	}
	return SectionRule{}, false
}

func mustSection(key string) SectionRule {
	rule, ok := SectionByKey(key)
	if !ok {
		panic("itinerary: unknown section " + key)
	}
	return rule
}

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
