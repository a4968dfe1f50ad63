package timeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"travelfuse/internal/domain"
	"travelfuse/internal/timeline"
)

func TestPeriodRanges_Fixed(t *testing.T) {
	want := map[string]string{
		"上午": "09:00-12:00",
		"下午": "14:00-17:00",
		"晚上": "19:00-21:00",
		"早上": "08:00-10:00",
		"中午": "12:00-14:00",
	}
	for label, r := range want {
		assert.Equal(t, r, timeline.NormalizeTime(label), label)
		assert.Equal(t, r, timeline.BuildActivity(label, "自由活动时间安排", pctx).Time, label)
	}
}

func TestNormalizeTime(t *testing.T) {
	assert.Equal(t, "09:00-12:00", timeline.NormalizeTime("9:00-12:00"))
	assert.Equal(t, "09:30-11:00", timeline.NormalizeTime("9：30~11:00"))
	assert.Equal(t, "08:00-10:00", timeline.NormalizeTime("8点-10点"))
	assert.Equal(t, "全天", timeline.NormalizeTime("全天"))
}

func TestPeriodForHour_Boundaries(t *testing.T) {
	assert.Equal(t, domain.PeriodMorning, timeline.PeriodForHour(11))
	assert.Equal(t, domain.PeriodNoon, timeline.PeriodForHour(12))
	assert.Equal(t, domain.PeriodAfternoon, timeline.PeriodForHour(17))
	assert.Equal(t, domain.PeriodEvening, timeline.PeriodForHour(18))
}

func TestResolvePeriod(t *testing.T) {
	assert.Equal(t, domain.PeriodMorning, timeline.ResolvePeriod("早上", "08:00-10:00"))
	assert.Equal(t, domain.PeriodNoon, timeline.ResolvePeriod("中午", "12:00-14:00"))
	assert.Equal(t, domain.PeriodNoon, timeline.ResolvePeriod("12:00-13:00", "12:00-13:00"))
	assert.Equal(t, domain.PeriodEvening, timeline.ResolvePeriod("18:00-20:00", "18:00-20:00"))
	assert.Equal(t, domain.PeriodNoon, timeline.ResolvePeriod("全天", "全天"))
}

func TestBuildActivity_Category(t *testing.T) {
	cases := []struct {
		desc     string
		category domain.ActivityCategory
		icon     string
		cost     int
	}{
		{"游览景山公园俯瞰紫禁城", domain.CategorySightseeing, "🏛️", 100},
		{"在簋街品尝麻辣小龙虾", domain.CategoryFood, "🍜", 80},
		{"三里屯商场逛街", domain.CategoryShopping, "🛍️", 60},
		{"回酒店休息调整", domain.CategoryRest, "🏨", 60},
		{"前往北京南站", domain.CategoryTransport, "🚗", 25},
		{"自由活动", domain.CategoryOther, "📍", 60},
		// first matching row wins
		{"参观后前往餐厅", domain.CategorySightseeing, "🏛️", 100},
	}
	for _, tc := range cases {
		act := timeline.BuildActivity("下午", tc.desc, pctx)
		assert.Equal(t, tc.category, act.Category, tc.desc)
		assert.Equal(t, tc.icon, act.Icon, tc.desc)
		assert.Equal(t, tc.cost, act.Cost, tc.desc)
		assert.NotEmpty(t, act.DisplayAccent, tc.desc)
	}
}

func TestBuildActivity_CostPatterns(t *testing.T) {
	assert.Equal(t, 45, timeline.BuildActivity("上午", "参观天坛，¥45含联票", pctx).Cost)
	assert.Equal(t, 35, timeline.BuildActivity("上午", "参观天坛，门票：35元", pctx).Cost)
	assert.Equal(t, 120, timeline.BuildActivity("上午", "乘船游湖，费用120元", pctx).Cost)
	assert.Equal(t, 88, timeline.BuildActivity("上午", "自助早餐88元", pctx).Cost)
}

func TestBuildActivity_Duration(t *testing.T) {
	assert.Equal(t, "1小时30分钟", timeline.BuildActivity("上午", "爬长城约1小时30分钟", pctx).Duration)
	assert.Equal(t, "2小时", timeline.BuildActivity("上午", "游览2小时", pctx).Duration)
	assert.Equal(t, "45分钟", timeline.BuildActivity("上午", "步行45分钟", pctx).Duration)
	assert.Equal(t, timeline.DefaultDuration, timeline.BuildActivity("上午", "自由活动", pctx).Duration)
}

func TestBuildActivity_Title(t *testing.T) {
	assert.Equal(t, "游览故宫", timeline.BuildActivity("上午", "游览故宫：从午门进入", pctx).Title)

	long := "，一段以标点开头并且非常非常非常长的描述文字内容"
	assert.Equal(t, []rune(long)[:20], []rune(timeline.BuildActivity("上午", long, pctx).Title))
}

func TestEnhanceDescription(t *testing.T) {
	raw := "09:00-12:00：**游览故宫博物院中轴线建筑群**\n- 门票60元\n- 乘坐地铁1号线\n- 建议提前预约\n- 开放至17点\n- 午门\n- 拍照留念很好"

	got := timeline.EnhanceDescription(raw)

	assert.Equal(t, "游览故宫博物院中轴线建筑群\n💰 门票60元\n🚗 乘坐地铁1号线\n💡 建议提前预约\n⏰ 开放至17点\n• 拍照留念很好", got)
}

func TestEnhanceDescription_LeadOnlyFromFirstLine(t *testing.T) {
	got := timeline.EnhanceDescription("午门\n漫步紫禁城感受明清两代皇家气象")

	assert.Equal(t, "• 漫步紫禁城感受明清两代皇家气象", got)
}
