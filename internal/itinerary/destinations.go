package itinerary

import "strings"

// DestinationProfile is the curated knowledge used to synthesize content for
// one destination. The optional texts replace the generic section templates.
type DestinationProfile struct {
	Names          []string
	Attractions    []string
	Activities     []string
	Foods          []string
	Accommodation  string
	Food           string
	Transportation string
	ExtraTips      []string
}

var profiles = []DestinationProfile{
	{
		Names: []string{"东京", "日本", "tokyo", "japan"},
		Attractions: []string{
			"东京塔", "浅草寺", "明治神宫", "新宿御苑", "上野公园",
			"皇居东御苑", "涩谷十字路口", "六本木之丘", "台场海滨公园",
			"秋叶原电器街", "银座", "东京迪士尼乐园", "富士山",
		},
		Activities: []string{
			"体验日式温泉", "参加茶道仪式", "穿和服漫步", "观看相扑比赛",
			"学习寿司制作", "赏樱/赏枫", "参观动漫博物馆", "乘坐新干线",
			"体验居酒屋文化", "泡东京咖啡馆",
		},
		Foods: []string{
			"寿司", "拉面", "天妇罗", "烤肉", "章鱼烧", "大阪烧",
			"荞麦面", "乌冬面", "咖喱饭", "铁板烧", "和牛",
		},
		Accommodation: "- **豪华选择**: 东京安达仕酒店(Andaz Tokyo)或东京丽思卡尔顿酒店，位于市中心，设施一流\n" +
			"- **中档选择**: 新宿地区的京王广场酒店，交通便利，服务优质\n" +
			"- **经济选择**: 涩谷或上野地区的商务酒店如东横INN，干净舒适价格合理",
		Food: "- 必尝美食：寿司、拉面、天妇罗、烤肉、居酒屋料理\n" +
			"- 推荐前往筑地市场品尝新鲜海鲜\n" +
			"- 新宿思出横丁的小店，体验地道日本酒馆文化",
		Transportation: "- **市区交通卡**: 购买西瓜卡(Suica)或PASMO卡，可用于地铁、公交和便利店\n" +
			"- **地铁系统**: 东京地铁网络发达，建议下载东京地铁APP查询路线\n" +
			"- **JR山手线**: 环绕东京主要区域，是连接各大景点的便捷选择",
		ExtraTips: []string{
			"日本社会非常注重礼节，请遵守公共场所规则",
			"大部分场所可以使用信用卡，但仍建议随身携带现金",
			"退税需在购物达到5000日元以上，并出示护照",
		},
	},
	{
		Names: []string{"北京", "中国", "beijing", "china"},
		Attractions: []string{
			"故宫博物院", "颐和园", "天坛公园", "八达岭长城", "圆明园",
			"北海公园", "国家博物馆", "798艺术区", "南锣鼓巷", "鸟巢",
			"水立方", "景山公园", "恭王府花园",
		},
		Activities: []string{
			"品茶文化体验", "京剧表演欣赏", "胡同游览", "皇家园林漫步",
			"四合院参观", "烤鸭制作体验", "太极拳学习", "夜游什刹海",
			"爬长城", "逛王府井",
		},
		Foods: []string{
			"北京烤鸭", "炸酱面", "豆汁", "爆肚", "涮羊肉", "豆腐脑",
			"驴打滚", "艾窝窝", "卤煮火烧", "糖葫芦",
		},
	},
	{
		Names: []string{"巴黎", "法国", "paris", "france"},
		Attractions: []string{
			"埃菲尔铁塔", "卢浮宫", "凯旋门", "巴黎圣母院", "凡尔赛宫",
			"蒙马特高地", "奥赛博物馆", "协和广场", "卢森堡公园",
			"塞纳河", "杜乐丽花园", "先贤祠", "红磨坊",
		},
		Activities: []string{
			"塞纳河游船", "品酒体验", "学做可颂", "巴黎咖啡馆体验",
			"时装街区购物", "参观艺术画廊", "城市夜景观赏", "巴黎歌剧院欣赏表演",
			"花神咖啡馆文化体验", "参观小众博物馆",
		},
		Foods: []string{
			"法式可颂", "法棍面包", "马卡龙", "焦糖布丁", "法式蜗牛",
			"鹅肝酱", "牛排薯条", "法式奶酪", "可丽饼", "法式洋葱汤",
			"蓝带鸡肉",
		},
		Accommodation: "- **豪华选择**: 巴黎丽兹酒店或巴黎四季酒店，位于市中心，提供顶级服务\n" +
			"- **中档选择**: 巴黎歌剧院附近的酒店，交通便利，设施完善\n" +
			"- **经济选择**: 拉丁区的精品酒店或青年旅舍，价格实惠",
		Food: "- 经典法式料理：牛排、鹅肝、焗蜗牛、法式奶酪\n" +
			"- 甜点推荐：马卡龙、可颂、闪电泡芙\n" +
			"- 推荐在圣米歇尔区的咖啡馆享用正宗法式早餐",
		Transportation: "- **地铁与公交**: 购买Paris Visite卡或Navigo周卡，可无限次乘坐公共交通\n" +
			"- **出租车**: 在指定站点乘坐，巴黎出租车起步价较高\n" +
			"- **自行车租赁**: Vélib自行车系统覆盖全城，是观光的好选择",
		ExtraTips: []string{
			"法国人习惯用法语交流，学几句简单法语会有帮助",
			"巴黎部分区域晚上不宜单独行动",
			"小费文化:餐厅通常已包含服务费，可额外留小费表示满意",
		},
	},
	{
		Names: []string{"纽约", "美国", "new york", "usa"},
		Attractions: []string{
			"自由女神像", "中央公园", "帝国大厦", "时代广场", "布鲁克林大桥",
			"第五大道", "现代艺术博物馆", "大都会艺术博物馆", "洛克菲勒中心",
			"华尔街", "高线公园", "9/11纪念馆", "百老汇",
		},
		Activities: []string{
			"百老汇观剧", "顶层露台观景", "中央公园野餐", "博物馆巡游",
			"乘坐直升机游览", "参观联合国总部", "纽约公共图书馆参观",
			"品尝多元美食", "纽约夜景巡游", "参加体育赛事",
		},
		Foods: []string{
			"纽约披萨", "百吉饼", "热狗", "芝士蛋糕", "牛排",
			"龙虾卷", "早餐煎饼", "意式美食", "中国城点心", "街边小吃",
			"精酿啤酒",
		},
	},
	{
		Names: []string{"曼谷", "泰国", "bangkok", "thailand"},
		Attractions: []string{
			"大皇宫", "卧佛寺", "郑王庙", "考山路", "洽图洽周末市场",
			"暹罗广场", "湄南河", "泰国国家博物馆", "拉差达火车夜市",
			"四面佛", "素可泰古城", "丹嫩沙多水上市场", "安帕瓦水上市场",
		},
		Activities: []string{
			"传统泰式按摩", "泰式料理烹饪课", "水上市场游览", "泰拳表演",
			"水灯节体验", "传统长尾船游览", "泰式传统舞蹈学习", "热带水果品尝",
			"清迈夜间动物园", "海岛浮潜",
		},
		Foods: []string{
			"冬阴功汤", "泰式炒河粉", "绿咖喱", "芒果糯米饭", "泰式炒饭",
			"泰式春卷", "椰香咖喱蟹", "泰式烤鸡", "榴莲糯米饭", "泰式奶茶",
			"水果冰沙",
		},
	},
	{
		Names: []string{"悉尼", "澳大利亚", "sydney", "australia"},
		Attractions: []string{
			"悉尼歌剧院", "悉尼海港大桥", "邦迪海滩", "皇家植物园",
			"达令港", "塔隆加动物园", "蓝山国家公园", "悉尼鱼市场",
			"悉尼塔", "库克船长登陆点", "悉尼水族馆", "曼利海滩",
			"悉尼国家公园",
		},
		Activities: []string{
			"攀登海港大桥", "冲浪体验", "野生动物园探访", "澳洲农场体验",
			"葡萄酒品尝之旅", "悉尼港游船", "观看海豚表演", "澳洲土著文化体验",
			"大堡礁浮潜", "热气球之旅",
		},
		Foods: []string{
			"澳洲牛排", "海鲜拼盘", "袋鼠肉", "鳄鱼肉", "澳洲派",
			"薰衣草冰淇淋", "蜂蜜蛋糕", "澳洲奶酪", "维吉麦特", "澳洲咖啡",
			"澳洲葡萄酒",
		},
	},
}

var genericProfile = DestinationProfile{
	Attractions: []string{
		"中心广场", "历史博物馆", "艺术博物馆", "国家公园", "文化中心",
		"历史古迹", "中央市场", "购物中心", "主题公园", "著名海滩",
		"历史街区", "古城区", "风景区",
	},
	Activities: []string{
		"当地导览游", "特色美食品尝", "传统工艺体验", "手工艺品制作",
		"风景摄影", "日落/日出观赏", "传统表演欣赏", "当地节日体验",
		"特色店铺购物", "夜景游览",
	},
	Foods: []string{
		"当地特色菜", "传统小吃", "特色甜点", "地方风味菜", "知名餐厅",
		"街头美食", "海鲜大餐", "农家菜", "国宴菜系", "米制品",
		"面点小吃",
	},
}

// LookupProfile returns the profile of a known destination, preferring an
// exact name over a name contained in the destination. Unknown destinations
// get the generic profile.
func LookupProfile(destination string) DestinationProfile {
	name := strings.ToLower(strings.TrimSpace(destination))
	if name == "" {
		return genericProfile
	}
	for _, p := range profiles {
		for _, n := range p.Names {
			if name == n {
				return p
			}
		}
	}
	for _, p := range profiles {
		for _, n := range p.Names {
			if strings.Contains(name, n) {
				return p
			}
		}
	}
	return genericProfile
}

// IsGeneric reports whether p is the fallback profile.
func (p DestinationProfile) IsGeneric() bool {
	return len(p.Names) == 0
}
