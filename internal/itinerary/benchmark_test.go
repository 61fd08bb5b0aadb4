package itinerary

import (
	"fmt"
	"strings"
	"testing"
)

func longTrip(days int) string {
	var b strings.Builder
	b.WriteString("# 东京旅行\n\n## 行程概览\n- 目的地: 东京\n\n## 详细行程\n\n")
	for d := 1; d <= days; d += 2 {
		fmt.Fprintf(&b, "### 第%d天\n- **上午**: 浅草寺\n- **下午**: 自由活动\n\n", d)
	}
	b.WriteString("## 住宿推荐\n- 新宿\n")
	return b.String()
}

func BenchmarkValidate(b *testing.B) {
	text := longTrip(14)
	params := tokyoTrip(14)
	b.ReportAllocs()
	for b.Loop() {
		Validate(text, params)
	}
}

func BenchmarkComplete(b *testing.B) {
	params := tokyoTrip(14)
	report := Validate(longTrip(14), params)
	b.ReportAllocs()
	for b.Loop() {
		Complete(report, params)
	}
}

func BenchmarkParse(b *testing.B) {
	text := Draft(tokyoTrip(14))
	b.ReportAllocs()
	for b.Loop() {
		Parse(text)
	}
}

func BenchmarkDraft(b *testing.B) {
	params := tokyoTrip(7)
	b.ReportAllocs()
	for b.Loop() {
		Draft(params)
	}
}
