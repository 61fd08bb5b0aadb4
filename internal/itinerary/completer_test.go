package itinerary

import (
	"strings"
	"testing"

	"github.com/jiamizhongshifu/xiaozhou/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeText(text string, params types.TripParameters) string {
	return Complete(Validate(text, params), params)
}

func dayOf(t *testing.T, text string, day int) string {
	t.Helper()
	plan, ok := ExtractSection(text, mustSection(SectionDailyPlan).Patterns)
	require.True(t, ok, "daily plan section")
	content, ok := ExtractDay(plan, day)
	require.True(t, ok, "day %d", day)
	return content
}

func TestCompleteValidReportIsUnchanged(t *testing.T) {
	report := Validate(validTokyo, tokyoTrip(2))
	require.True(t, report.Valid)
	assert.Equal(t, validTokyo, Complete(report, tokyoTrip(2)))
}

func TestCompleteOverviewOnly(t *testing.T) {
	params := tokyoTrip(3)
	text := "## 行程概览\n- 目的地: 东京\n- 行程天数: 3天\n"

	completed := completeText(text, params)

	assert.True(t, strings.HasPrefix(completed, text), "existing text is kept in place")
	again := Validate(completed, params)
	assert.True(t, again.Valid, again.Issues)
	for day := 1; day <= 3; day++ {
		content := dayOf(t, completed, day)
		assert.Contains(t, content, "上午")
		assert.Contains(t, content, "下午")
		assert.Contains(t, content, "晚上")
	}
	assert.Contains(t, completed, "参观东京塔")
	assert.Contains(t, completed, "## 住宿推荐\n- **豪华选择**: 东京安达仕酒店")
	assert.Contains(t, completed, "**3天总预算估算**: 约7400元人民币/人(不含国际机票)")
}

func TestCompleteReplacesVagueWording(t *testing.T) {
	params := tokyoTrip(2)
	text := "## 行程概览\n- 目的地: 东京\n\n## 详细行程\n\n" +
		"### 第1天\n**上午**: 参观浅草寺\n**下午**: 参观东京塔\n**晚上**: 居酒屋晚餐\n\n" +
		"### 第2天\n**上午**: 自由活动\n**下午**: 参观寺庙\n**晚上**: 晚餐\n\n" +
		"## 住宿推荐\n- 新宿\n\n## 美食推荐\n- 拉面\n\n## 交通指南\n- 地铁\n\n## 旅行小贴士\n- 带伞\n"

	report := Validate(text, params)
	require.Equal(t, []string{`Day 2 contains vague wording (e.g. "free time"), should provide concrete suggestions`}, report.Issues)

	completed := Complete(report, params)

	day2 := dayOf(t, completed, 2)
	assert.Contains(t, day2, "**上午**: 参观浅草寺，体验参加茶道仪式，品尝拉面")
	for _, p := range ForbiddenPatterns {
		assert.False(t, p.MatchString(day2), p.String())
	}
	assert.Equal(t, dayOf(t, text, 1), dayOf(t, completed, 1), "untouched days stay as they were")
	assert.True(t, Validate(completed, params).Valid)
	assert.Contains(t, completed, "## 预算估算")
	assert.Contains(t, completed, "**2天总预算估算**: 约5600元人民币/人")
}

func TestCompleteRepeatedVagueWording(t *testing.T) {
	params := tokyoTrip(1)
	text := "## 详细行程\n### 第1天\n上午: 自由活动\n下午: 自由活动\n晚上: 自由安排或自由探索\n"

	completed := completeText(text, params)

	for _, p := range ForbiddenPatterns {
		assert.False(t, p.MatchString(completed), p.String())
	}
	assert.True(t, Validate(completed, params).Valid)
}

func TestCompleteUnknownDestination(t *testing.T) {
	params := types.TripParameters{Destination: "Reykjavik", Duration: 2, Travelers: 1, Budget: types.BudgetEconomy}

	var completed string
	require.NotPanics(t, func() { completed = completeText("随便写点什么", params) })

	assert.Contains(t, completed, "参观中心广场")
	assert.Contains(t, completed, "游览历史博物馆")
	assert.Contains(t, completed, "- **豪华选择**: Reykjavik市中心五星级酒店")
	assert.Contains(t, completed, "人均150-300元")
	assert.NotContains(t, completed, "东京")
	assert.True(t, Validate(completed, params).Valid)
}

func TestCompleteDailyPlanGoesBeforeAccommodation(t *testing.T) {
	params := tokyoTrip(1)
	text := "## 行程概览\n- 东京\n\n## 住宿推荐\n- 新宿\n"

	completed := completeText(text, params)

	plan := strings.Index(completed, "## 详细行程")
	stay := strings.Index(completed, "## 住宿推荐")
	require.NotEqual(t, -1, plan)
	assert.Less(t, plan, stay)
	assert.Equal(t, 1, strings.Count(completed, "## 住宿推荐"))
	assert.True(t, Validate(completed, params).Valid)
}

func TestCompleteInsertsMissingDaysInOrder(t *testing.T) {
	tests := []struct {
		name  string
		plan  string
		order []string
	}{
		{
			name:  "gap in the middle",
			plan:  "## 详细行程\n\n### 第1天\n上午: A\n下午: B\n晚上: C\n\n### 第3天\n上午: D\n下午: E\n晚上: F\n",
			order: []string{"### 第1天", "### 第2天", "### 第3天"},
		},
		{
			name:  "first day missing",
			plan:  "## 详细行程\n说明文字\n\n### 第2天\n上午: A\n下午: B\n晚上: C\n\n### 第3天\n上午: D\n下午: E\n晚上: F\n",
			order: []string{"说明文字", "### 第1天", "### 第2天", "### 第3天"},
		},
		{
			name:  "no days at all",
			plan:  "## 详细行程\n",
			order: []string{"### 第1天", "### 第2天", "### 第3天"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tokyoTrip(3)
			completed := completeText(tt.plan+"\n## 住宿推荐\n- 新宿\n", params)

			last := -1
			for _, marker := range tt.order {
				i := strings.Index(completed, marker)
				require.NotEqual(t, -1, i, marker)
				assert.Greater(t, i, last, marker)
				last = i
			}
			assert.Less(t, last, strings.Index(completed, "## 住宿推荐"))
			assert.True(t, Validate(completed, params).Valid, Validate(completed, params).Issues)
		})
	}
}

func TestCompleteFillsSlotsBelowTheHeading(t *testing.T) {
	params := tokyoTrip(1)
	completed := completeText("## 详细行程\n### 第1天\n上午: 浅草寺\n", params)

	assert.Contains(t, completed, "### 第1天\n\n**下午(13:00-17:00)**: 前往浅草寺。这个地方以其独特的文化历史特色而闻名")
	assert.Contains(t, completed, "**晚上(18:00-21:00)**: 体验日式温泉。")
	assert.Contains(t, completed, "上午: 浅草寺")
}

func TestCompleteClosure(t *testing.T) {
	inputs := map[string]string{
		"empty":            "",
		"whitespace":       "  \n ",
		"unrelated":        "random unrelated text",
		"overview only":    "## 行程概览\n- 目的地: 东京",
		"valid":            validTokyo,
		"bare days":        "## 详细行程\n第1天：上午参观A\n第2天：自由活动",
		"days outside":     "第1天：上午参观A，下午参观B，晚上看夜景\n第2天：自由活动",
		"english days":     "## 每日行程\nDay 1\nmorning walk\nDay 2\nfree",
		"high day numbers": "## 详细行程\n### 第5天 自由活动\n",
		"second level":     "## 详细行程\n## 第1天\n上午 A\n## 第2天\n自由游览\n## 住宿建议\n- 酒店",
		"crlf":             "## 详细行程\r\n### 第1天\r\n上午: A\r\n",
		"vague interest":   "## 详细行程\n### 第1天\n上午: A",
	}
	for name, text := range inputs {
		for _, days := range []int{1, 2, 4} {
			params := tokyoTrip(days)
			if name == "vague interest" {
				params.Interests = []string{"自由活动"}
				params.Destination = "Reykjavik"
			}
			completed := completeText(text, params)
			again := Validate(completed, params)
			assert.True(t, again.Valid, "%s/%d: %v", name, days, again.Issues)
			for _, issue := range again.Issues {
				assert.NotContains(t, issue, "Missing day")
			}
		}
	}
}

func TestCompleteRecoversToOriginal(t *testing.T) {
	report := types.ValidationReport{
		Valid:         false,
		Itinerary:     "## 详细行程\n### 第1天\n上午: A",
		SectionsFound: map[string]bool{SectionDailyPlan: true},
	}
	assert.NotPanics(t, func() { Complete(report, tokyoTrip(1)) })
}

func TestEstimateBudget(t *testing.T) {
	assert.Equal(t, 4300, EstimateBudget("经济实惠", 3))
	assert.Equal(t, 4300, EstimateBudget(types.BudgetEconomy, 3))
	assert.Equal(t, 7700, EstimateBudget("豪华", 2))
	assert.Equal(t, 3800, EstimateBudget("随便", 1))
}

func TestLookupProfile(t *testing.T) {
	assert.Equal(t, "东京塔", LookupProfile("东京").Attractions[0])
	assert.Equal(t, "东京塔", LookupProfile(" Tokyo ").Attractions[0])
	assert.Equal(t, "东京塔", LookupProfile("日本东京").Attractions[0])
	assert.Equal(t, "埃菲尔铁塔", LookupProfile("法国巴黎").Attractions[0])
	assert.True(t, LookupProfile("Reykjavik").IsGeneric())
	assert.True(t, LookupProfile("").IsGeneric())
}

func TestDraftIsValid(t *testing.T) {
	params := tokyoTrip(4)
	text := Draft(params)

	report := Validate(text, params)
	assert.True(t, report.Valid, report.Issues)
	assert.True(t, strings.HasPrefix(text, "# 东京4天旅行计划"))
	assert.Len(t, Parse(text), 4)
}
