package planner

import (
	"fmt"
	"strings"

	"github.com/jiamizhongshifu/xiaozhou/internal/itinerary"
	"github.com/jiamizhongshifu/xiaozhou/internal/types"
)

// SystemPrompt sets the model up as an itinerary planner that writes the
// Markdown layout the validator understands.
const SystemPrompt = `你是一位专业的旅行规划专家，擅长制定详细、可执行的旅行计划。

请根据用户提供的旅行需求，制定一个结构清晰、内容翔实的行程规划。你的建议应该基于实际地理位置、交通可行性和景点开放时间。

每个行程计划必须包含:
1. 精确的时间安排 - 每天上午、下午、晚上的具体活动
2. 详细的景点描述 - 包含文化背景和游览价值
3. 实用的交通信息 - 不同景点间的最佳交通方式和预计时间
4. 合理的地理规划 - 相近景点安排在同一天，避免不必要的来回奔波
5. 针对性的用餐建议 - 基于当地特色和用户预算
6. 差异化的住宿选择 - 根据不同价位提供有特色的住宿选项
7. 实用的旅行小贴士 - 如插座类型、支付方式、穿着建议等

严格避免"自由活动"等模糊表述，应提供具体、可行的活动建议。输出必须使用清晰的markdown格式，确保信息易于阅读和理解。`

const defaultInterest = "文化历史"

func interestList(params types.TripParameters) string {
	if len(params.Interests) == 0 {
		return defaultInterest
	}
	return strings.Join(params.Interests, "、")
}

func buildPrompt(params types.TripParameters) string {
	interests := interestList(params)

	var b strings.Builder
	fmt.Fprintf(&b, "请为我详细规划一次%s的旅行行程，按照以下要求生成高质量、可执行的详细计划：\n\n", params.Destination)
	b.WriteString("【基本信息】\n")
	fmt.Fprintf(&b, "- 目的地: %s\n", params.Destination)
	fmt.Fprintf(&b, "- 行程天数: %d天\n", params.DayCount())
	if params.StartDate != "" && params.EndDate != "" {
		fmt.Fprintf(&b, "- 出行日期: %s 至 %s\n", params.StartDate, params.EndDate)
	}
	fmt.Fprintf(&b, "- 旅行人数: %d人\n", max(params.Travelers, 1))
	fmt.Fprintf(&b, "- 预算级别: %s\n", itinerary.BudgetLabel(params.Budget))
	fmt.Fprintf(&b, "- 特别兴趣: %s\n\n", interests)

	b.WriteString("【输出要求】\n")
	b.WriteString("1. 每天行程必须包含以下三个时间段的具体安排:\n")
	b.WriteString("   * 上午(9:00-12:00): 至少1个景点/活动，包含具体地点名称、游览时间、文化背景\n")
	b.WriteString("   * 下午(13:00-17:00): 至少1个景点/活动，包含具体地点名称、游览时间、文化背景\n")
	b.WriteString("   * 晚上(18:00-21:00): 餐厅推荐或夜间活动，包含具体名称和特色\n\n")
	b.WriteString("2. 每天必须包含:\n")
	fmt.Fprintf(&b, "   * 至少2个符合\"%s\"主题的景点/活动\n", interests)
	b.WriteString("   * 每个景点/活动的预计游览时间\n")
	b.WriteString("   * 相邻景点间的交通方式和预计时间\n\n")
	b.WriteString("3. 行程建议需考虑实际地理位置和交通可行性，相近景点安排在同一天\n\n")
	b.WriteString("4. 额外必须提供的信息:\n")
	b.WriteString("   * 住宿推荐: 至少3个不同价位选择(经济/中档/豪华)，包含地理位置优势\n")
	b.WriteString("   * 美食推荐: 每天至少1处当地特色美食推荐\n")
	b.WriteString("   * 交通指南: 城市间和市内交通详细建议\n")
	fmt.Fprintf(&b, "   * 旅行小贴士: 至少5条针对%s的实用建议\n", params.Destination)
	b.WriteString("   * 预算估算: 各部分预计花费范围\n\n")
	b.WriteString("5. 使用\"## 行程概览\"、\"## 详细行程\"、\"### 第N天\"、\"## 住宿推荐\"、\"## 美食推荐\"、\"## 交通指南\"、\"## 旅行小贴士\"、\"## 预算估算\"作为标题\n\n")
	b.WriteString("请确保内容翔实、实用，避免模糊表述如\"自由活动\"，应提供具体可行的活动建议。")
	return b.String()
}

// failureItinerary is shown in place of an itinerary when generation fails.
func failureItinerary(destination string, err error) string {
	return fmt.Sprintf("# 生成%s行程时遇到问题\n\n非常抱歉，在生成您的%s行程时遇到了问题。请稍后再试。\n\n错误信息: %s",
		destination, destination, err.Error())
}
