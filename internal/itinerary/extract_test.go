package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSection(t *testing.T) {
	text := "# 东京之旅\n\n## 行程概览\n- 目的地: 东京\n\n## 详细行程\n### 第1天\n上午: 浅草寺\n### 第2天\n上午: 东京塔\n\n## 住宿推荐\n- 新宿"

	t.Run("runs until the next top-level heading", func(t *testing.T) {
		plan, ok := ExtractSection(text, mustSection(SectionDailyPlan).Patterns)
		require.True(t, ok)
		assert.Equal(t, "## 详细行程\n### 第1天\n上午: 浅草寺\n### 第2天\n上午: 东京塔\n", plan)
	})

	t.Run("runs to the end of the text", func(t *testing.T) {
		section, ok := ExtractSection(text, mustSection(SectionAccommodation).Patterns)
		require.True(t, ok)
		assert.Equal(t, "## 住宿推荐\n- 新宿", section)
	})

	t.Run("second-level day headings stay inside the plan", func(t *testing.T) {
		plan, ok := ExtractSection("## 每日行程\n## 第1天\n上午: A\n## 第2天\n下午: B\n## 美食推荐", mustSection(SectionDailyPlan).Patterns)
		require.True(t, ok)
		assert.Contains(t, plan, "## 第2天\n下午: B")
		assert.NotContains(t, plan, "美食推荐")
	})

	t.Run("accepts any heading level", func(t *testing.T) {
		for _, heading := range []string{"# 交通指南", "## 交通指南", "### 交通建议"} {
			_, ok := ExtractSection(heading+"\n- 地铁", mustSection(SectionTransportation).Patterns)
			assert.True(t, ok, heading)
		}
	})

	t.Run("miss", func(t *testing.T) {
		section, ok := ExtractSection(text, mustSection(SectionTips).Patterns)
		assert.False(t, ok)
		assert.Empty(t, section)
	})
}

func TestExtractDay(t *testing.T) {
	tests := []struct {
		name string
		plan string
		day  int
		want string
	}{
		{
			name: "third-level heading",
			plan: "## 详细行程\n### 第1天\n上午: A\n### 第2天\n上午: B",
			day:  1,
			want: "### 第1天\n上午: A",
		},
		{
			name: "does not confuse day 1 with day 11",
			plan: "### 第11天\n上午: K\n### 第1天\n上午: A",
			day:  1,
			want: "### 第1天\n上午: A",
		},
		{
			name: "second-level heading",
			plan: "## 第1天\n上午: A\n## 第2天\n下午: B",
			day:  2,
			want: "## 第2天\n下午: B",
		},
		{
			name: "bare day lines",
			plan: "第1天 上午游览A\n第2天 下午游览B\n第3天 晚上看C",
			day:  2,
			want: "第2天 下午游览B",
		},
		{
			name: "english day markers",
			plan: "Day 1\nmorning walk\nDay 2\nevening show",
			day:  2,
			want: "Day 2\nevening show",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractDay(tt.plan, tt.day)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("miss", func(t *testing.T) {
		_, ok := ExtractDay("### 第1天\n上午: A", 2)
		assert.False(t, ok)
	})
}

func TestSplice(t *testing.T) {
	anchor := accommodationAnchor
	text := "## 行程概览\n\n## 住宿推荐\n- 酒店"

	assert.Equal(t, "## 行程概览\n\nX\n## 住宿推荐\n- 酒店", Splice(text, anchor, "X\n", Before))
	assert.Equal(t, "## 行程概览\n\n## 住宿推荐 X\n- 酒店", Splice(text, anchor, " X", After))
	assert.Equal(t, text+"X", Splice(text, anchor, "X", Append))
	assert.Equal(t, "abcX", Splice("abc", anchor, "X", Before), "falls back to append without an anchor match")
	assert.Equal(t, "abcX", Splice("abc", nil, "X", After))
}
