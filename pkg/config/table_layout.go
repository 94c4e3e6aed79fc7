package config

// 牌桌布局配置常量
// 本文件定义了牌桌场景中的布局参数，包括牌堆位置、手牌槽位几何等
// 所有坐标使用"根动画表面坐标系"（屏幕左上角为原点，逻辑分辨率 800x600）

const (
	// TableWindowWidth 逻辑屏幕宽度
	TableWindowWidth = 800

	// TableWindowHeight 逻辑屏幕高度
	TableWindowHeight = 600

	// CardSlotWidth 是单个卡牌槽位的宽度（像素）
	CardSlotWidth = 70.0

	// CardSlotHeight 是单个卡牌槽位的高度（像素）
	CardSlotHeight = 100.0

	// CardSlotSpacing 是相邻手牌槽位的水平间距（像素）
	CardSlotSpacing = 12.0

	// DrawPileX 抽牌堆左上角X坐标
	// 牌堆位置整局固定，开局后 Registry 会冻结其包围盒
	DrawPileX = 280.0

	// DrawPileY 抽牌堆左上角Y坐标
	DrawPileY = 250.0

	// DiscardPileX 弃牌堆左上角X坐标
	DiscardPileX = 450.0

	// DiscardPileY 弃牌堆左上角Y坐标
	DiscardPileY = 250.0

	// DisplaySlotX 临时展示槽位左上角X坐标（桌面中央偏上）
	// 被规则引擎拒绝的出牌先移动到这里，再原路退回
	DisplaySlotX = 365.0

	// DisplaySlotY 临时展示槽位左上角Y坐标
	DisplaySlotY = 130.0

	// SelfHandY 本方手牌行的Y坐标（屏幕下方）
	SelfHandY = 470.0

	// OpponentHandY 对手手牌行的Y坐标（屏幕上方）
	OpponentHandY = 30.0

	// MaxHandSlots 单个玩家手牌槽位上限
	// 只用于布局居中计算，不是规则限制
	MaxHandSlots = 6
)

// CalculateHandSlotPosition 计算某行手牌中第 N 个槽位的左上角坐标
//
// 手牌行以屏幕水平中心对齐：handSize 张牌整体居中，
// 槽位下标从左到右 0-based
//
// 参数：
//   - rowY: 手牌行Y坐标（SelfHandY 或 OpponentHandY）
//   - handSize: 该玩家当前手牌数
//   - index: 槽位下标（0-based）
//
// 返回：
//   - x, y: 槽位左上角坐标
func CalculateHandSlotPosition(rowY float64, handSize, index int) (x, y float64) {
	if handSize <= 0 {
		handSize = 1
	}
	totalWidth := float64(handSize)*CardSlotWidth + float64(handSize-1)*CardSlotSpacing
	startX := (TableWindowWidth - totalWidth) / 2.0
	x = startX + float64(index)*(CardSlotWidth+CardSlotSpacing)
	return x, rowY
}
