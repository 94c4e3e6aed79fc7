package components

import (
	"github.com/decker502/cardduel/pkg/types"
)

// CardSpriteComponent 桌面上一张静置卡牌的渲染数据
// 由桌面布局系统每帧根据合成视图同步
type CardSpriteComponent struct {
	// Card 卡牌内容（背面朝上的牌 Rank 不可见）
	Card types.Card
	// SlotKey 卡牌所在槽位的键（如 "hand:self:0"、"pile:draw"）
	SlotKey string
	// Hidden 槽位被活动过渡腾空时为 true，渲染时跳过
	Hidden bool
}
