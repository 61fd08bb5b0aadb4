package planner

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jiamizhongshifu/xiaozhou/internal/types"
)

const (
	// Greeting answers chat messages that are not about travel.
	Greeting = "您好！我是旅行规划师小周。我可以帮您规划旅行行程，推荐景点，提供美食和住宿建议。请告诉我您想去哪里旅行，或者您需要什么帮助？"

	unknownDestination = "未指定目的地"
	defaultChatDays    = 3
	defaultChatBudget  = "中等"
)

var (
	travelKeywords     = []string{"旅行", "旅游", "出行", "景点", "玩", "游玩", "行程"}
	destinationPattern = regexp.MustCompile(`去(.+?)(?:旅行|旅游|玩|游玩)`)
	durationPattern    = regexp.MustCompile(`(\d+)\s*天`)
)

// DetectTrip reads a chat message for a trip request. It reports false when
// the message says nothing about travel.
func DetectTrip(message string) (types.TripParameters, bool) {
	isTravel := false
	for _, kw := range travelKeywords {
		if strings.Contains(message, kw) {
			isTravel = true
			break
		}
	}
	if !isTravel {
		return types.TripParameters{}, false
	}

	params := types.TripParameters{
		Destination: unknownDestination,
		Duration:    defaultChatDays,
		Travelers:   1,
		Budget:      defaultChatBudget,
		Interests:   []string{defaultInterest},
	}
	if m := destinationPattern.FindStringSubmatch(message); m != nil {
		if dest := strings.TrimSpace(m[1]); dest != "" {
			params.Destination = dest
		}
	}
	if m := durationPattern.FindStringSubmatch(message); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 {
			params.Duration = min(n, MaxDuration)
		}
	}
	return params, true
}
