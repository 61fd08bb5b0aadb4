package itinerary

import (
	"testing"

	"github.com/jiamizhongshifu/xiaozhou/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRobustness(t *testing.T) {
	for _, text := range []string{"", "random unrelated text", "## 行程概览\n没有任何天数", "第天\n**上午**:"} {
		var days []types.ParsedDay
		assert.NotPanics(t, func() { days = Parse(text) })
		assert.NotNil(t, days, text)
		assert.Empty(t, days, text)
	}
}

func TestParseBoldBulletedDay(t *testing.T) {
	text := "## 详细行程\n### 第1天\n- **上午(9:00-12:00)**: 参观浅草寺\n- **下午(13:00-17:00)**: 游览上野公园\n- **晚上(18:00-21:00)**: 银座晚餐\n"

	days := Parse(text)

	require.Len(t, days, 1)
	day := days[0]
	assert.Equal(t, 1, day.DayNumber)
	require.NotNil(t, day.Periods.Morning)
	require.Len(t, day.Periods.Morning.Items, 1)
	assert.Contains(t, day.Periods.Morning.Items[0], "浅草寺")
	require.NotNil(t, day.Periods.Afternoon)
	assert.Equal(t, "游览上野公园", day.Periods.Afternoon.RawText)
	require.NotNil(t, day.Periods.Evening)
	assert.Equal(t, "银座晚餐", day.Periods.Evening.RawText)
}

func TestParseCompletedItinerary(t *testing.T) {
	params := tokyoTrip(3)
	completed := completeText("## 行程概览\n- 目的地: 东京\n", params)

	days := Parse(completed)

	require.Len(t, days, 3)
	for i, day := range days {
		assert.Equal(t, i+1, day.DayNumber)
		assert.NotNil(t, day.Periods.Morning, "day %d morning", day.DayNumber)
		assert.NotNil(t, day.Periods.Afternoon, "day %d afternoon", day.DayNumber)
		assert.NotNil(t, day.Periods.Evening, "day %d evening", day.DayNumber)
	}
	first := days[0]
	assert.Equal(t, "参观东京塔", first.Periods.Morning.Items[0])
	assert.Contains(t, first.Periods.Morning.Items, "游览时间: 约2小时")
	assert.Equal(t, "品尝当地特色美食，适应时差", first.Periods.Evening.Items[0])
	require.NotNil(t, first.Transport)
	assert.Equal(t, "建议使用地铁前往各景点", *first.Transport)
	require.NotNil(t, first.Food)
	assert.Equal(t, "寿司", *first.Food)
}

func TestParseBareLabels(t *testing.T) {
	text := "第1天\n上午: 参观故宫\n下午: 游览颐和园\n晚上: 吃烤鸭\n今日交通：地铁\n第2天\n上午：八达岭长城\n"

	days := Parse(text)

	require.Len(t, days, 2)
	assert.Equal(t, "参观故宫", days[0].Periods.Morning.RawText)
	assert.Equal(t, "游览颐和园", days[0].Periods.Afternoon.RawText)
	require.NotNil(t, days[0].Transport)
	assert.Equal(t, "地铁", *days[0].Transport)
	assert.Equal(t, "八达岭长城", days[1].Periods.Morning.RawText)
	assert.Nil(t, days[1].Periods.Afternoon)
	assert.Nil(t, days[1].Periods.Evening)
	assert.Nil(t, days[1].Food)
}

func TestParseLineScan(t *testing.T) {
	text := "旅行计划\n第1天\n早上去公园散步\n然后喝咖啡\n下午看展览\n"

	days := Parse(text)

	require.Len(t, days, 1)
	require.NotNil(t, days[0].Periods.Morning)
	assert.Equal(t, "去公园散步\n然后喝咖啡", days[0].Periods.Morning.RawText)
	assert.Equal(t, []string{"去公园散步\n然后喝咖啡"}, days[0].Periods.Morning.Items)
	require.NotNil(t, days[0].Periods.Afternoon)
	assert.Equal(t, "看展览", days[0].Periods.Afternoon.RawText)
	assert.Nil(t, days[0].Periods.Evening)
}

func TestParseBulletItems(t *testing.T) {
	text := "### 第1天\n- **上午**:\n  - 参观A\n  - 参观B\n- **下午**: C\n"

	days := Parse(text)

	require.Len(t, days, 1)
	require.NotNil(t, days[0].Periods.Morning)
	assert.Equal(t, []string{"参观A", "参观B"}, days[0].Periods.Morning.Items)
}

func TestParseOrdersByDayNumber(t *testing.T) {
	days := Parse("### 第2天\n上午: B\n### 第1天\n上午: A\n")

	require.Len(t, days, 2)
	assert.Equal(t, 1, days[0].DayNumber)
	assert.Equal(t, "A", days[0].Periods.Morning.RawText)
	assert.Equal(t, 2, days[1].DayNumber)
}

func TestParseKeywordSplit(t *testing.T) {
	days := Parse("旅游攻略：第1天上午: 看海，第2天下午: 爬山")

	require.Len(t, days, 2)
	assert.Equal(t, 1, days[0].DayNumber)
	require.NotNil(t, days[0].Periods.Morning)
	assert.Equal(t, "看海，", days[0].Periods.Morning.RawText)
	assert.Equal(t, 2, days[1].DayNumber)
	require.NotNil(t, days[1].Periods.Afternoon)
	assert.Equal(t, "爬山", days[1].Periods.Afternoon.RawText)
}

func TestParseBoldPeriodStopsAtNextBold(t *testing.T) {
	text := "## 详细行程\n### 第1天\n**上午**: 参观**浅草寺**和雷门\n**下午**: 上野公园\n"

	days := Parse(text)

	require.Len(t, days, 1)
	require.NotNil(t, days[0].Periods.Morning)
	assert.Equal(t, "参观", days[0].Periods.Morning.RawText)
	assert.Equal(t, []string{"参观"}, days[0].Periods.Morning.Items)
	require.NotNil(t, days[0].Periods.Afternoon)
	assert.Equal(t, "上野公园", days[0].Periods.Afternoon.RawText)
}
