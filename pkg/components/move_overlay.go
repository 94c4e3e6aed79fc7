package components

import (
	"github.com/decker502/cardduel/pkg/types"
)

// MoveOverlayComponent 一张正在槽位之间飞行的卡牌覆盖层
// 位置由覆盖层系统每帧从活动过渡回写到 BoundsComponent
type MoveOverlayComponent struct {
	// DescriptorID 所属过渡描述符的标识
	DescriptorID string
	// Card 飞行中的卡牌
	Card types.Card
}
