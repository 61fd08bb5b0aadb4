package itinerary

import (
	"fmt"
	"strings"

	"github.com/jiamizhongshifu/xiaozhou/internal/types"
)

var (
	transportModes  = []string{"地铁", "公交", "出租车", "步行", "电车"}
	eveningRotation = []string{
		"%s特色餐厅晚餐，尝试当地美食",
		"参观当地夜市，体验民间文化",
		"欣赏当地传统表演或艺术活动",
		"在酒店附近散步，感受当地夜景",
		"品尝当地特色小吃",
	}
	baseTips = []string{
		"提前查看天气预报，准备适合的衣物",
		"保管好护照和贵重物品",
		"建议购买旅行保险",
		"保存紧急联系电话",
		"尊重当地文化和习俗",
	}
)

// BudgetTier maps a budget value to economy, standard or luxury. Unknown
// free text counts as standard.
func BudgetTier(budget string) string {
	switch strings.ToLower(strings.TrimSpace(budget)) {
	case types.BudgetEconomy, "经济实惠", "经济":
		return types.BudgetEconomy
	case types.BudgetLuxury, "豪华":
		return types.BudgetLuxury
	default:
		return types.BudgetStandard
	}
}

// BudgetLabel is the Chinese wording of a budget value.
func BudgetLabel(budget string) string {
	switch strings.ToLower(strings.TrimSpace(budget)) {
	case "", types.BudgetStandard:
		return "中等"
	case types.BudgetEconomy:
		return "经济实惠"
	case types.BudgetLuxury:
		return "豪华"
	default:
		return budget
	}
}

// sanitize strips vague placeholders from caller supplied words so they can
// never leak into a synthesized day.
func sanitize(s string) string {
	for _, p := range ForbiddenPatterns {
		s = p.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}

func destinationName(params types.TripParameters) string {
	if d := sanitize(params.Destination); d != "" {
		return d
	}
	return "未知目的地"
}

func primaryInterest(params types.TripParameters) string {
	for _, interest := range params.Interests {
		if s := sanitize(interest); s != "" {
			return s
		}
	}
	return "文化"
}

func at(list []string, i int) string {
	if len(list) == 0 {
		return ""
	}
	return list[i%len(list)]
}

func overviewSection(params types.TripParameters) string {
	dest := destinationName(params)
	travelers := params.Travelers
	if travelers < 1 {
		travelers = 1
	}
	interests := make([]string, 0, len(params.Interests))
	for _, interest := range params.Interests {
		if s := sanitize(interest); s != "" {
			interests = append(interests, s)
		}
	}
	if len(interests) == 0 {
		interests = []string{"文化历史"}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s%d天旅行计划\n\n## 行程概览\n", dest, params.DayCount())
	fmt.Fprintf(&b, "- 目的地: %s\n", dest)
	fmt.Fprintf(&b, "- 行程天数: %d天\n", params.DayCount())
	if params.StartDate != "" && params.EndDate != "" {
		fmt.Fprintf(&b, "- 出行日期: %s 至 %s\n", params.StartDate, params.EndDate)
	}
	fmt.Fprintf(&b, "- 人数: %d人\n", travelers)
	fmt.Fprintf(&b, "- 预算: %s\n", sanitize(BudgetLabel(params.Budget)))
	fmt.Fprintf(&b, "- 特别兴趣: %s", strings.Join(interests, "、"))
	return b.String()
}

func eveningPlan(day, days int, dest string) string {
	switch {
	case day == 1:
		return "品尝当地特色美食，适应时差"
	case day == days:
		return "享用告别晚餐，整理行装准备返程"
	}
	tpl := eveningRotation[(day-1)%len(eveningRotation)]
	if strings.Contains(tpl, "%s") {
		return fmt.Sprintf(tpl, dest)
	}
	return tpl
}

// plannedDay renders a full day for an itinerary that had no daily plan.
func plannedDay(day int, params types.TripParameters, profile DestinationProfile) string {
	n := len(profile.Attractions)
	morning := (day - 1) % n
	afternoon := day % n
	if afternoon == morning {
		afternoon = (day + 1) % n
	}
	price := "人均300-600元"
	if BudgetTier(params.Budget) == types.BudgetEconomy {
		price = "人均150-300元"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### 第%d天\n\n", day)
	fmt.Fprintf(&b, "- **上午(9:00-12:00)**: 参观%s\n", profile.Attractions[morning])
	fmt.Fprintf(&b, "  * %s建议游览2-3小时，可以了解当地的历史文化和自然风光。\n", activityLead(profile, morning))
	b.WriteString("  * 游览时间: 约2小时\n")
	b.WriteString("  * 交通建议: 乘坐公共交通到达\n\n")
	fmt.Fprintf(&b, "- **下午(13:00-17:00)**: 游览%s\n", profile.Attractions[afternoon])
	fmt.Fprintf(&b, "  * %s建议游览约2小时，随后可以在附近的商业区休息片刻。\n", activityLead(profile, afternoon))
	b.WriteString("  * 游览时间: 约2.5小时\n")
	b.WriteString("  * 交通建议: 从上午景点乘坐公交约20分钟可到达\n\n")
	fmt.Fprintf(&b, "- **晚上(18:00-21:00)**: %s\n", eveningPlan(day, params.DayCount(), destinationName(params)))
	b.WriteString("  * 地点: 距离下午景点步行10分钟\n")
	fmt.Fprintf(&b, "  * 价格: %s\n\n", price)
	fmt.Fprintf(&b, "**今日美食推荐**: %s\n\n", at(profile.Foods, day-1))
	fmt.Fprintf(&b, "**今日交通**: 建议使用%s前往各景点", transportModes[(day-1)%len(transportModes)])
	return b.String()
}

// activityLead names the activity paired with an attraction, if there is one.
func activityLead(profile DestinationProfile, i int) string {
	if i >= len(profile.Activities) {
		return ""
	}
	return profile.Activities[i] + "，"
}

func dailyPlanSection(params types.TripParameters, profile DestinationProfile) string {
	days := make([]string, 0, params.DayCount())
	for day := 1; day <= params.DayCount(); day++ {
		days = append(days, plannedDay(day, params, profile))
	}
	return "## 详细行程\n\n" + strings.Join(days, "\n\n")
}

// slotLine renders the single line that fills a missing time slot of a day.
func slotLine(slot string, day int, params types.TripParameters, profile DestinationProfile) string {
	index := (day - 1) % len(profile.Attractions)
	next := (index + 1) % len(profile.Attractions)
	switch slot {
	case SlotMorning:
		return fmt.Sprintf("**上午(9:00-12:00)**: 参观%s。这里是%s的标志性景点，建议游览2-3小时，可以了解当地的历史文化和自然风光。",
			profile.Attractions[index], destinationName(params))
	case SlotAfternoon:
		return fmt.Sprintf("**下午(13:00-17:00)**: 前往%s。这个地方以其独特的%s特色而闻名，游览约2小时，随后可以在附近的商业区休息片刻。",
			profile.Attractions[next], primaryInterest(params))
	default:
		return fmt.Sprintf("**晚上(18:00-21:00)**: %s。晚餐后可以欣赏当地夜景或参加有特色的夜间文化活动。",
			at(profile.Activities, index))
	}
}

// concreteActivity replaces the occurrence-th vague phrase found in a day.
func concreteActivity(day, occurrence int, profile DestinationProfile) string {
	i := day - 1 + occurrence
	return fmt.Sprintf("参观%s，体验%s，品尝%s", at(profile.Attractions, i), at(profile.Activities, i), at(profile.Foods, i))
}

// completeDay renders a day block inserted into an existing daily plan.
func completeDay(day int, params types.TripParameters, profile DestinationProfile) string {
	return fmt.Sprintf("### 第%d天\n\n%s\n\n%s\n\n%s\n\n**今日美食推荐**: %s\n\n**今日交通**: 建议使用%s前往各景点",
		day,
		slotLine(SlotMorning, day, params, profile),
		slotLine(SlotAfternoon, day, params, profile),
		slotLine(SlotEvening, day, params, profile),
		at(profile.Foods, day-1),
		transportModes[(day-1)%len(transportModes)])
}

func accommodationSection(params types.TripParameters, profile DestinationProfile) string {
	body := profile.Accommodation
	if body == "" {
		body = fmt.Sprintf("- **豪华选择**: %s市中心五星级酒店，提供优质服务和便利位置\n"+
			"- **中档选择**: 交通便利区域的四星级酒店，性价比高\n"+
			"- **经济选择**: 干净舒适的商务酒店或精品旅馆，价格实惠", destinationName(params))
	}
	return "## 住宿推荐\n" + body
}

func foodSection(params types.TripParameters, profile DestinationProfile) string {
	body := profile.Food
	if body == "" {
		body = fmt.Sprintf("- 推荐尝试%s的当地特色美食\n"+
			"- 可以在当地市场购买新鲜食材\n"+
			"- 尝试当地街头小吃，体验真实的本地风味", destinationName(params))
	}
	return "## 美食推荐\n" + body
}

func transportationSection(params types.TripParameters, profile DestinationProfile) string {
	body := profile.Transportation
	if body == "" {
		body = fmt.Sprintf("- 了解%s的公共交通系统，选择合适的交通卡\n"+
			"- 主要景点之间考虑使用公共交通，节省时间和金钱\n"+
			"- 偏远景点可能需要包车或参加当地一日游", destinationName(params))
	}
	return "## 交通指南\n" + body
}

func tipsSection(profile DestinationProfile) string {
	tips := append(append([]string{}, baseTips...), profile.ExtraTips...)
	lines := make([]string, len(tips))
	for i, tip := range tips {
		lines[i] = fmt.Sprintf("%d. %s", i+1, tip)
	}
	return "## 旅行小贴士\n" + strings.Join(lines, "\n")
}

// budgetRates holds the per-day and fixed part of the per-person estimate.
var budgetRates = map[string][2]int{
	types.BudgetEconomy:  {1000, 1300},
	types.BudgetStandard: {1800, 2000},
	types.BudgetLuxury:   {2500, 2700},
}

// EstimateBudget returns the per-person total in RMB, excluding flights.
func EstimateBudget(budget string, days int) int {
	rate := budgetRates[BudgetTier(budget)]
	return rate[0]*days + rate[1]
}

func budgetSection(params types.TripParameters) string {
	var lines string
	switch BudgetTier(params.Budget) {
	case types.BudgetEconomy:
		lines = "- **住宿**: 每晚300-600元人民币\n- **餐饮**: 每人每天150-300元人民币\n" +
			"- **交通**: 约500元人民币(不含国际机票)\n- **门票**: 约800元人民币\n- **购物**: 视个人情况而定"
	case types.BudgetLuxury:
		lines = "- **住宿**: 每晚1500元人民币以上\n- **餐饮**: 每人每天500元人民币以上\n" +
			"- **交通**: 约1500元人民币(不含国际机票)\n- **门票**: 约1200元人民币(含特色体验)\n- **购物**: 视个人情况而定"
	default:
		lines = "- **住宿**: 每晚600-1200元人民币\n- **餐饮**: 每人每天300-500元人民币\n" +
			"- **交通**: 约1000元人民币(不含国际机票)\n- **门票**: 约1000元人民币\n- **购物**: 视个人情况而定"
	}
	days := params.DayCount()
	return fmt.Sprintf("## 预算估算\n%s\n\n**%d天总预算估算**: 约%d元人民币/人(不含国际机票)",
		lines, days, EstimateBudget(params.Budget, days))
}
