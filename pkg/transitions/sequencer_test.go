package transitions

import (
	"testing"

	"github.com/decker502/cardduel/pkg/config"
	"github.com/decker502/cardduel/pkg/game"
	"github.com/decker502/cardduel/pkg/types"
)

// reportAllSlots 为测试上报所有槽位的包围盒
func reportAllSlots(s *Scheduler) {
	r := s.Registry()
	r.ReportBounds("pile:draw", types.Bounds{X: 280, Y: 250, Width: 70, Height: 100})
	r.ReportBounds("pile:discard", types.Bounds{X: 450, Y: 250, Width: 70, Height: 100})
	r.ReportBounds("display", types.Bounds{X: 365, Y: 130, Width: 70, Height: 100})
	for i := 0; i < 4; i++ {
		r.ReportBounds(types.HandRef("self", i).Key(), types.Bounds{X: float64(242 + i*82), Y: 470, Width: 70, Height: 100})
		r.ReportBounds(types.HandRef("opponent", i).Key(), types.Bounds{X: float64(242 + i*82), Y: 30, Width: 70, Height: 100})
	}
}

// newTestScheduler 构造带初始快照和完整槽位坐标的调度器
func newTestScheduler(cfg *config.TransitionConfig) *Scheduler {
	s := NewScheduler(cfg, nil, twoPlayerSnapshot())
	reportAllSlots(s)
	return s
}

// step 以 60fps 模拟推进给定秒数
func step(s *Scheduler, seconds float64) {
	dt := 1.0 / 60.0
	for elapsed := 0.0; elapsed < seconds; elapsed += dt {
		s.Update(dt)
	}
}

// drawSnapshot 返回 self 抽到 C 之后的快照（附带动作记录）
func drawSnapshot(actionID string) *game.Snapshot {
	snap := twoPlayerSnapshot()
	snap.Players[0].Hand = append(snap.Players[0].Hand, types.Card{ID: "C", Rank: 5})
	snap.DrawPile = []types.CardID{"D"}
	snap.Players[0].Actions = []game.ActionRecord{
		{ID: actionID, Name: "drawn_card", Data: game.ActionData{CardIndex: 2}},
	}
	return snap
}

// TestDrawnCardPlayback 测试抽牌场景端到端播放
// 场景：hand [A,B] + drawn_card{cardIndex:2} → 批次完成后
// read() 的手牌第2位是 C
func TestDrawnCardPlayback(t *testing.T) {
	s := newTestScheduler(nil)

	var started []*Descriptor
	s.SetOnDescriptorStarted(func(d *Descriptor) { started = append(started, d) })

	s.Push(drawSnapshot("act-1"))

	if !s.Draining() {
		t.Fatal("scheduler should be draining after push with pending action")
	}

	// 动画完成前影子视图保持旧状态
	view := s.Read()
	if len(view.Hand("self").Cards) != 2 {
		t.Errorf("mid-batch hand size = %d, want 2 (shadow must lag)", len(view.Hand("self").Cards))
	}

	step(s, 1.0) // 默认移动时长 450ms

	if s.Draining() {
		t.Fatal("batch should have completed")
	}
	if len(started) != 1 || started[0].Kind != KindMove {
		t.Fatalf("started descriptors = %v, want one Move", started)
	}

	view = s.Read()
	hand := view.Hand("self")
	if len(hand.Cards) != 3 || hand.Cards[2].ID != "C" {
		t.Errorf("post-batch hand = %v, want [A B C]", hand.Cards)
	}
}

// TestCoalescingLatestWins 测试排空期间快照合并（latest-wins，深度恒为1）
// 场景：排空中连续到达两个快照，期望之后恰好再跑一个批次（用第二个）
func TestCoalescingLatestWins(t *testing.T) {
	s := newTestScheduler(nil)

	batches := 0
	s.SetOnBatchStarted(func() { batches++ })

	s.Push(drawSnapshot("act-1"))
	if batches != 1 {
		t.Fatalf("batches = %d, want 1", batches)
	}

	// 排空期间到达两个后续快照：opponent 也各抽一张牌
	mid := drawSnapshot("act-1")
	mid.Players[1].Hand = append(mid.Players[1].Hand, types.Card{ID: "D", Rank: 2})
	mid.DrawPile = nil
	mid.Players[1].Actions = []game.ActionRecord{
		{ID: "act-2", Name: "drawn_card", Data: game.ActionData{CardIndex: 2}},
	}

	final := mid.Clone()
	final.Players[1].Hand[2] = types.Card{ID: "E", Rank: 4}
	final.Players[1].Actions = []game.ActionRecord{
		{ID: "act-3", Name: "drawn_card", Data: game.ActionData{CardIndex: 2}},
	}

	s.Push(mid)
	s.Push(final) // 替换缓存中的 mid，绝不排队加深

	step(s, 3.0)

	// 第一个批次 + 合并后恰好一个补跑批次
	if batches != 2 {
		t.Errorf("total batches = %d, want exactly 2 (intermediate snapshot skipped)", batches)
	}

	// 最终收敛到最后一个快照
	view := s.Read()
	opp := view.Hand("opponent")
	if len(opp.Cards) != 3 || opp.Cards[2].ID != "E" {
		t.Errorf("converged opponent hand = %v, want third card E", opp.Cards)
	}
}

// TestBatchTimeout 测试批级超时强制完成
// 驱动器永远走不完（时长远超超时）时，批次必须在超时点附近完成
func TestBatchTimeout(t *testing.T) {
	cfg := config.DefaultTransitionConfig()
	cfg.MoveDurationMs = 60000 // 实际上不会自然完成
	cfg.BatchTimeoutMs = 500

	s := newTestScheduler(cfg)
	s.Push(drawSnapshot("act-1"))

	// 超时前仍在排空
	step(s, 0.4)
	if !s.Draining() {
		t.Fatal("batch should still be draining before timeout")
	}

	// 超时点之后必须强制完成（0.5s + 少量帧余量）
	step(s, 0.2)
	if s.Draining() {
		t.Error("batch should be force-completed by timeout")
	}

	// 权威状态立即可见
	view := s.Read()
	if len(view.Hand("self").Cards) != 3 {
		t.Errorf("hand size after timeout = %d, want 3", len(view.Hand("self").Cards))
	}
}

// TestBatchTimeoutRestartsPerDescriptor 测试批级计时器在每个描述符开始时重置
// 两段400ms的往返移动配600ms超时：计时器若按整批累计会在0.6s处
// 错误地强制完成；按描述符重置则两段都自然播完
func TestBatchTimeoutRestartsPerDescriptor(t *testing.T) {
	cfg := config.DefaultTransitionConfig()
	cfg.MoveDurationMs = 400
	cfg.BatchTimeoutMs = 600

	s := newTestScheduler(cfg)

	var started []*Descriptor
	s.SetOnDescriptorStarted(func(d *Descriptor) { started = append(started, d) })

	snap := twoPlayerSnapshot()
	snap.Players[0].Actions = []game.ActionRecord{
		{ID: "act-1", Name: "rejected_card", Data: game.ActionData{CardIndex: 1}},
	}
	s.Push(snap)

	// 0.7s：第一段已播完（0.4s时计时器重置），第二段仍在播
	step(s, 0.7)
	if !s.Draining() {
		t.Fatal("batch should still be draining at 0.7s (timer restarts per descriptor)")
	}

	// 第二段在0.8s自然走完，批次不经超时路径结束
	step(s, 0.3)
	if s.Draining() {
		t.Fatal("batch should have completed naturally")
	}
	if len(started) != 2 {
		t.Errorf("started descriptors = %d, want 2 (both legs played)", len(started))
	}
}

// TestNoBoundsFallback 测试缺失包围盒时描述符被丢弃且批次不挂起
func TestNoBoundsFallback(t *testing.T) {
	// 不上报任何槽位坐标
	s := NewScheduler(nil, nil, twoPlayerSnapshot())

	var started []*Descriptor
	s.SetOnDescriptorStarted(func(d *Descriptor) { started = append(started, d) })

	s.Push(drawSnapshot("act-1"))
	step(s, 0.5)

	if s.Draining() {
		t.Error("batch must not hang waiting on unresolvable bounds")
	}
	if len(started) != 0 {
		t.Errorf("started descriptors = %d, want 0 (dropped)", len(started))
	}

	// 状态变化瞬时应用
	view := s.Read()
	if len(view.Hand("self").Cards) != 3 {
		t.Errorf("hand size = %d, want 3 (instant state application)", len(view.Hand("self").Cards))
	}
}

// TestSwapPlaybackOrder 测试交换动作的播放顺序与并发性
func TestSwapPlaybackOrder(t *testing.T) {
	s := newTestScheduler(nil)

	var started []Kind
	s.SetOnDescriptorStarted(func(d *Descriptor) { started = append(started, d.Kind) })

	snap := twoPlayerSnapshot()
	snap.Players[0].Hand[0] = types.Card{ID: "Y", Rank: 9}
	snap.Players[1].Hand[1] = types.Card{ID: "A", Rank: 3}
	snap.Players[0].Actions = []game.ActionRecord{
		{ID: "act-1", Name: "swapped_cards", Data: game.ActionData{
			CardIndex: 0, TargetPlayerID: "opponent", Card2Index: 1,
		}},
	}
	s.Push(snap)

	// 闪烁是非阻塞覆盖层：推入后闪烁和第一段移动应当同时活动
	active := s.Active()
	if len(active) != 2 {
		t.Fatalf("active transitions right after push = %d, want 2 (flash + move1)", len(active))
	}
	if active[0].Desc.Kind != KindFlash || active[1].Desc.Kind != KindMoveWithVacatedSlot {
		t.Errorf("active kinds = [%s %s], want [Flash MoveWithVacatedSlot]",
			active[0].Desc.Kind, active[1].Desc.Kind)
	}

	step(s, 2.0)

	// 启动顺序固定：Flash → 移动1 → 移动2
	want := []Kind{KindFlash, KindMoveWithVacatedSlot, KindMoveWithVacatedSlot}
	if len(started) != len(want) {
		t.Fatalf("started sequence length = %d, want %d", len(started), len(want))
	}
	for i := range want {
		if started[i] != want[i] {
			t.Errorf("started[%d] = %s, want %s", i, started[i], want[i])
		}
	}
	if s.Draining() {
		t.Error("swap batch should have completed")
	}
}

// TestConvergenceAfterBurst 测试任意快照序列最终收敛到最后一个
func TestConvergenceAfterBurst(t *testing.T) {
	s := newTestScheduler(nil)

	// 连发5个快照：手牌第0张换成不同的牌，最后一个才带动作
	var last *game.Snapshot
	for i := 0; i < 5; i++ {
		snap := twoPlayerSnapshot()
		snap.Players[0].Hand[0] = types.Card{ID: types.CardID(rune('P' + i)), Rank: i}
		if i == 4 {
			snap.Players[0].Actions = []game.ActionRecord{
				{ID: "burst-act", Name: "peeked_card", Data: game.ActionData{CardIndex: 0}},
			}
		}
		s.Push(snap)
		last = snap
	}

	step(s, 3.0)

	if s.Draining() {
		t.Fatal("all batches should have settled")
	}
	view := s.Read()
	if got := view.Hand("self").Cards[0].ID; got != last.Players[0].Hand[0].ID {
		t.Errorf("converged card = %s, want %s (last snapshot wins)", got, last.Players[0].Hand[0].ID)
	}
}

// TestReducedMotionInstantApply 测试减少动态效果设置跳过全部动画
func TestReducedMotionInstantApply(t *testing.T) {
	settings := game.DefaultAnimationSettings()
	settings.ReducedMotion = true

	s := NewScheduler(nil, settings, twoPlayerSnapshot())
	reportAllSlots(s)

	batches := 0
	s.SetOnBatchStarted(func() { batches++ })

	s.Push(drawSnapshot("act-1"))

	if s.Draining() {
		t.Error("reduced motion should skip draining entirely")
	}
	if batches != 0 {
		t.Errorf("batches = %d, want 0", batches)
	}
	if got := len(s.Read().Hand("self").Cards); got != 3 {
		t.Errorf("hand size = %d, want 3 (instant apply)", got)
	}
}

// TestDisposeMidBatch 测试批次中途释放调度器
func TestDisposeMidBatch(t *testing.T) {
	s := newTestScheduler(nil)
	s.Push(drawSnapshot("act-1"))

	if !s.Draining() {
		t.Fatal("should be draining")
	}

	s.Dispose()

	// 释放后权威状态仍然可见（正确性优先于动画保真）
	view := s.Read()
	if len(view.Hand("self").Cards) != 3 {
		t.Errorf("hand size after dispose = %d, want 3", len(view.Hand("self").Cards))
	}

	// 释放后的推送与推进是空操作
	s.Push(twoPlayerSnapshot())
	s.Update(1.0 / 60.0)
}
