package components

import (
	"github.com/decker502/cardduel/pkg/types"
)

// FlashOverlayComponent 槽位高亮闪烁覆盖层
// 透明度由覆盖层系统每帧从活动过渡回写
type FlashOverlayComponent struct {
	// DescriptorID 所属过渡描述符的标识
	DescriptorID string
	// Slots 被高亮的槽位包围盒（偷看一个槽位，交换两个）
	Slots []types.Bounds
	// Opacity 当前闪烁透明度 [0,1]
	Opacity float64
}
