package entities

import (
	"github.com/decker502/cardduel/pkg/components"
	"github.com/decker502/cardduel/pkg/ecs"
	"github.com/decker502/cardduel/pkg/types"
)

// NewCardEntity 创建一张静置卡牌实体
// 参数:
//   - manager: EntityManager 实例
//   - card: 卡牌内容
//   - slotKey: 所在槽位键
//   - bounds: 槽位包围盒
//
// 返回: 创建的实体ID
func NewCardEntity(manager *ecs.EntityManager, card types.Card, slotKey string, bounds types.Bounds) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.CardSpriteComponent{
		Card:    card,
		SlotKey: slotKey,
	})
	manager.AddComponent(id, &components.BoundsComponent{
		Bounds: bounds,
	})

	return id
}

// NewMoveOverlayEntity 创建一张飞行卡牌覆盖层实体
// 覆盖层位置由覆盖层系统每帧回写
func NewMoveOverlayEntity(manager *ecs.EntityManager, descriptorID string, card types.Card, bounds types.Bounds) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.MoveOverlayComponent{
		DescriptorID: descriptorID,
		Card:         card,
	})
	manager.AddComponent(id, &components.BoundsComponent{
		Bounds: bounds,
	})

	return id
}

// NewFlashOverlayEntity 创建槽位闪烁覆盖层实体
func NewFlashOverlayEntity(manager *ecs.EntityManager, descriptorID string, slots []types.Bounds) ecs.EntityID {
	id := manager.CreateEntity()

	manager.AddComponent(id, &components.FlashOverlayComponent{
		DescriptorID: descriptorID,
		Slots:        slots,
	})

	return id
}
