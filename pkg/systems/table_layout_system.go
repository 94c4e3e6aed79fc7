package systems

import (
	"github.com/decker502/cardduel/pkg/components"
	"github.com/decker502/cardduel/pkg/config"
	"github.com/decker502/cardduel/pkg/ecs"
	"github.com/decker502/cardduel/pkg/entities"
	"github.com/decker502/cardduel/pkg/game"
	"github.com/decker502/cardduel/pkg/transitions"
	"github.com/decker502/cardduel/pkg/types"
)

// TableLayoutSystem 桌面布局系统
//
// 每帧根据调度器的合成视图同步静置卡牌实体（本方手牌行、对方手牌行、
// 抽牌堆、弃牌堆），并按节流间隔把所有槽位的包围盒上报给槽位注册表。
// 手牌槽位使用固定网格（MaxHandSlots 个槽位），抽牌目标槽位的坐标
// 因此在卡牌到位之前就已存在
type TableLayoutSystem struct {
	entityManager *ecs.EntityManager
	scheduler     *transitions.Scheduler
	selfID        string

	// 上报节流
	reportInterval float64
	sinceReport    float64

	// slotKey → 卡牌实体
	slotEntities map[string]ecs.EntityID
}

// NewTableLayoutSystem 创建桌面布局系统
// selfID 是本端玩家标识，决定哪一行手牌画在屏幕下方
func NewTableLayoutSystem(em *ecs.EntityManager, scheduler *transitions.Scheduler, cfg *config.TransitionConfig, selfID string) *TableLayoutSystem {
	if cfg == nil {
		cfg = config.DefaultTransitionConfig()
	}
	return &TableLayoutSystem{
		entityManager:  em,
		scheduler:      scheduler,
		selfID:         selfID,
		reportInterval: cfg.BoundsScanThrottle(),
		sinceReport:    cfg.BoundsScanThrottle(), // 首帧立即上报
		slotEntities:   make(map[string]ecs.EntityID),
	}
}

// Update 同步卡牌实体并按节流上报槽位包围盒
func (s *TableLayoutSystem) Update(dt float64) {
	view := s.scheduler.Read()

	s.sinceReport += dt
	if s.sinceReport >= s.reportInterval {
		s.reportSlotBounds(&view)
		s.sinceReport = 0
	}

	vacated := s.vacatedSlots()
	desired := s.desiredCards(&view)

	// 同步：更新已有实体，创建新出现的槽位卡牌
	for key, card := range desired {
		bounds, _ := s.scheduler.Registry().ResolveKey(key)

		id, exists := s.slotEntities[key]
		if !exists {
			id = entities.NewCardEntity(s.entityManager, card, key, bounds)
			s.slotEntities[key] = id
		}

		if sprite, ok := ecs.GetComponent[*components.CardSpriteComponent](s.entityManager, id); ok {
			sprite.Card = card
			sprite.Hidden = vacated[key]
		}
		if bc, ok := ecs.GetComponent[*components.BoundsComponent](s.entityManager, id); ok {
			bc.Bounds = bounds
		}
	}

	// 清理：槽位上不再有卡牌的实体销毁
	for key, id := range s.slotEntities {
		if _, stillThere := desired[key]; !stillThere {
			s.entityManager.DestroyEntity(id)
			delete(s.slotEntities, key)
		}
	}
}

// desiredCards 从合成视图计算每个槽位应当显示的卡牌
func (s *TableLayoutSystem) desiredCards(view *game.MergedView) map[string]types.Card {
	desired := make(map[string]types.Card)

	for i := range view.Hands {
		hand := &view.Hands[i]
		for idx, card := range hand.Cards {
			if idx >= config.MaxHandSlots {
				break
			}
			desired[types.HandRef(hand.PlayerID, idx).Key()] = card
		}
	}

	// 牌堆只渲染顶牌：抽牌堆背面朝上，弃牌堆正面朝上
	if n := len(view.DrawPile); n > 0 {
		desired[types.DrawPileRef().Key()] = types.Card{ID: view.DrawPile[n-1]}
	}
	if n := len(view.DiscardPile); n > 0 {
		desired[types.DiscardPileRef().Key()] = types.Card{ID: view.DiscardPile[n-1], FaceUp: true}
	}

	return desired
}

// vacatedSlots 收集活动腾空移动的源槽位
// 这些槽位上的静置卡牌本帧不渲染（卡牌正在飞行覆盖层里）
func (s *TableLayoutSystem) vacatedSlots() map[string]bool {
	vacated := make(map[string]bool)
	for _, at := range s.scheduler.Active() {
		if at.Desc.Kind == transitions.KindMoveWithVacatedSlot {
			vacated[at.Desc.Source.Key()] = true
		}
	}
	return vacated
}

// reportSlotBounds 上报全部槽位的包围盒
// 牌堆槽位由注册表冻结首个上报值，重复上报无害
func (s *TableLayoutSystem) reportSlotBounds(view *game.MergedView) {
	registry := s.scheduler.Registry()

	report := func(key string, x, y float64) {
		if !registry.IsRegistered(key) {
			registry.RegisterSlot(key)
		}
		registry.ReportBounds(key, types.Bounds{
			X: x, Y: y,
			Width:  config.CardSlotWidth,
			Height: config.CardSlotHeight,
		})
	}

	report(types.DrawPileRef().Key(), config.DrawPileX, config.DrawPileY)
	report(types.DiscardPileRef().Key(), config.DiscardPileX, config.DiscardPileY)
	report(types.DisplayRef().Key(), config.DisplaySlotX, config.DisplaySlotY)

	for i := range view.Hands {
		playerID := view.Hands[i].PlayerID
		rowY := config.OpponentHandY
		if playerID == s.selfID {
			rowY = config.SelfHandY
		}
		for idx := 0; idx < config.MaxHandSlots; idx++ {
			x, y := config.CalculateHandSlotPosition(rowY, config.MaxHandSlots, idx)
			report(types.HandRef(playerID, idx).Key(), x, y)
		}
	}
}
