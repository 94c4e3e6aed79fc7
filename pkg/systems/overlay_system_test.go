package systems

import (
	"testing"

	"github.com/decker502/cardduel/pkg/components"
	"github.com/decker502/cardduel/pkg/ecs"
	"github.com/decker502/cardduel/pkg/game"
	"github.com/decker502/cardduel/pkg/transitions"
	"github.com/decker502/cardduel/pkg/types"
)

// newOverlayFixture 构造调度器（槽位坐标就位）+ 覆盖层系统
func newOverlayFixture(t *testing.T) (*ecs.EntityManager, *transitions.Scheduler, *OverlaySystem, *TableLayoutSystem) {
	t.Helper()
	em := ecs.NewEntityManager()
	scheduler := transitions.NewScheduler(nil, nil, duelSnapshot())
	layout := NewTableLayoutSystem(em, scheduler, nil, "self")
	layout.Update(1.0 / 60.0)
	return em, scheduler, NewOverlaySystem(em, scheduler), layout
}

// TestOverlayMirrorsMove 测试移动过渡镜像为飞行卡牌实体
func TestOverlayMirrorsMove(t *testing.T) {
	em, scheduler, overlay, _ := newOverlayFixture(t)

	snap := duelSnapshot()
	snap.Players[0].Hand = append(snap.Players[0].Hand, types.Card{ID: "C", Rank: 5})
	snap.DrawPile = []types.CardID{"D"}
	snap.Players[0].Actions = []game.ActionRecord{
		{ID: "act-1", Name: "drawn_card", Data: game.ActionData{CardIndex: 2}},
	}
	scheduler.Push(snap)

	overlay.Update(1.0 / 60.0)

	ids := ecs.GetEntitiesWith2[*components.MoveOverlayComponent, *components.BoundsComponent](em)
	if len(ids) != 1 {
		t.Fatalf("move overlay entities = %d, want 1", len(ids))
	}

	mo, _ := ecs.GetComponent[*components.MoveOverlayComponent](em, ids[0])
	if mo.Card.ID != "C" {
		t.Errorf("overlay card = %s, want C", mo.Card.ID)
	}

	// 起点是抽牌堆槽位
	bc, _ := ecs.GetComponent[*components.BoundsComponent](em, ids[0])
	start := bc.Bounds

	// 推进到中段后位置必须移动过
	for i := 0; i < 15; i++ {
		scheduler.Update(1.0 / 60.0)
	}
	overlay.Update(1.0 / 60.0)
	if bc.Bounds == start {
		t.Error("overlay bounds did not advance with the driver")
	}
}

// TestOverlayRemovedAfterCompletion 测试过渡结束后覆盖层实体销毁
func TestOverlayRemovedAfterCompletion(t *testing.T) {
	em, scheduler, overlay, _ := newOverlayFixture(t)

	snap := duelSnapshot()
	snap.Players[0].Hand = append(snap.Players[0].Hand, types.Card{ID: "C", Rank: 5})
	snap.DrawPile = []types.CardID{"D"}
	snap.Players[0].Actions = []game.ActionRecord{
		{ID: "act-1", Name: "drawn_card", Data: game.ActionData{CardIndex: 2}},
	}
	scheduler.Push(snap)
	overlay.Update(1.0 / 60.0)

	// 播完整个批次（默认移动时长450ms）
	for i := 0; i < 60; i++ {
		scheduler.Update(1.0 / 60.0)
	}
	overlay.Update(1.0 / 60.0)
	em.RemoveMarkedEntities()

	if ids := ecs.GetEntitiesWith1[*components.MoveOverlayComponent](em); len(ids) != 0 {
		t.Errorf("move overlay entities after completion = %d, want 0", len(ids))
	}
}

// TestOverlayIDLessFlashesStayDistinct 测试无服务端ID的并发闪烁各有覆盖层
// 两条缺失ID的动作记录并发播放时不能共用同一个覆盖层实体
func TestOverlayIDLessFlashesStayDistinct(t *testing.T) {
	em, scheduler, overlay, _ := newOverlayFixture(t)

	snap := duelSnapshot()
	snap.Players[0].Actions = []game.ActionRecord{
		{Name: "peeked_card", Data: game.ActionData{CardIndex: 0}},
		{Name: "peeked_card", Data: game.ActionData{CardIndex: 1}},
	}
	scheduler.Push(snap)

	// 闪烁是非阻塞的：两个同时活动
	if got := len(scheduler.Active()); got != 2 {
		t.Fatalf("active transitions = %d, want 2 concurrent flashes", got)
	}

	overlay.Update(1.0 / 60.0)

	if ids := ecs.GetEntitiesWith1[*components.FlashOverlayComponent](em); len(ids) != 2 {
		t.Errorf("flash overlay entities = %d, want 2 (one per descriptor)", len(ids))
	}
}

// TestOverlayFlashOpacityWriteback 测试闪烁覆盖层透明度每帧回写
func TestOverlayFlashOpacityWriteback(t *testing.T) {
	em, scheduler, overlay, _ := newOverlayFixture(t)

	snap := duelSnapshot()
	snap.Players[0].Actions = []game.ActionRecord{
		{ID: "act-1", Name: "peeked_card", Data: game.ActionData{CardIndex: 0}},
	}
	scheduler.Push(snap)

	overlay.Update(1.0 / 60.0)

	ids := ecs.GetEntitiesWith1[*components.FlashOverlayComponent](em)
	if len(ids) != 1 {
		t.Fatalf("flash overlay entities = %d, want 1", len(ids))
	}
	fc, _ := ecs.GetComponent[*components.FlashOverlayComponent](em, ids[0])
	if len(fc.Slots) != 1 {
		t.Errorf("flash slots = %d, want 1 (peek highlights one slot)", len(fc.Slots))
	}

	// 推进到第一个脉冲中段，透明度应当大于0
	for i := 0; i < 9; i++ { // 150ms / 900ms ≈ 第一个脉冲的保持段
		scheduler.Update(1.0 / 60.0)
	}
	overlay.Update(1.0 / 60.0)
	if fc.Opacity <= 0 {
		t.Errorf("flash opacity mid-pulse = %.2f, want > 0", fc.Opacity)
	}
}
