package systems

import (
	"github.com/decker502/cardduel/pkg/components"
	"github.com/decker502/cardduel/pkg/ecs"
	"github.com/decker502/cardduel/pkg/entities"
	"github.com/decker502/cardduel/pkg/transitions"
)

// OverlaySystem 过渡覆盖层系统
//
// 把调度器的活动过渡镜像为覆盖层实体：移动类过渡对应一张飞行卡牌
// （位置每帧按插值回写），闪烁过渡对应槽位高亮（透明度每帧回写）。
// 过渡结束后对应实体随之销毁
type OverlaySystem struct {
	entityManager *ecs.EntityManager
	scheduler     *transitions.Scheduler

	// 描述符ID → 覆盖层实体
	overlays map[string]ecs.EntityID
}

// NewOverlaySystem 创建过渡覆盖层系统
func NewOverlaySystem(em *ecs.EntityManager, scheduler *transitions.Scheduler) *OverlaySystem {
	return &OverlaySystem{
		entityManager: em,
		scheduler:     scheduler,
		overlays:      make(map[string]ecs.EntityID),
	}
}

// Update 同步覆盖层实体
func (s *OverlaySystem) Update(dt float64) {
	seen := make(map[string]bool)

	for _, at := range s.scheduler.Active() {
		key := at.Desc.ID
		seen[key] = true

		id, exists := s.overlays[key]
		if !exists {
			if at.Desc.Kind == transitions.KindFlash {
				id = entities.NewFlashOverlayEntity(s.entityManager, key, at.FlashBounds)
			} else {
				id = entities.NewMoveOverlayEntity(s.entityManager, key, at.Desc.Payload, at.Bounds())
			}
			s.overlays[key] = id
		}

		// 每帧回写插值结果
		if at.Desc.Kind == transitions.KindFlash {
			if fc, ok := ecs.GetComponent[*components.FlashOverlayComponent](s.entityManager, id); ok {
				fc.Opacity = at.Opacity()
			}
		} else {
			if bc, ok := ecs.GetComponent[*components.BoundsComponent](s.entityManager, id); ok {
				bc.Bounds = at.Bounds()
			}
		}
	}

	// 不再活动的过渡：覆盖层实体销毁
	for key, id := range s.overlays {
		if !seen[key] {
			s.entityManager.DestroyEntity(id)
			delete(s.overlays, key)
		}
	}
}
