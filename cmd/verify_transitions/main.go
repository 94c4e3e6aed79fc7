// 过渡调度验证工具
//
// 不开窗口，用固定步长时钟驱动调度器，逐项检查抽牌回放、
// 合并策略、超时兜底和无坐标降级的行为。
// 用法: go run cmd/verify_transitions/main.go
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/cardduel/pkg/config"
	"github.com/decker502/cardduel/pkg/game"
	"github.com/decker502/cardduel/pkg/transitions"
	"github.com/decker502/cardduel/pkg/types"
)

var failures int

func check(name string, ok bool, detail string) {
	if ok {
		fmt.Printf("  [PASS] %s\n", name)
	} else {
		fmt.Printf("  [FAIL] %s: %s\n", name, detail)
		failures++
	}
}

// step 以 60fps 推进调度器
func step(s *transitions.Scheduler, seconds float64) {
	dt := 1.0 / 60.0
	for elapsed := 0.0; elapsed < seconds; elapsed += dt {
		s.Update(dt)
	}
}

// reportSlots 上报牌桌全部槽位坐标
func reportSlots(s *transitions.Scheduler) {
	r := s.Registry()
	r.ReportBounds(types.DrawPileRef().Key(), types.Bounds{X: config.DrawPileX, Y: config.DrawPileY, Width: config.CardSlotWidth, Height: config.CardSlotHeight})
	r.ReportBounds(types.DiscardPileRef().Key(), types.Bounds{X: config.DiscardPileX, Y: config.DiscardPileY, Width: config.CardSlotWidth, Height: config.CardSlotHeight})
	r.ReportBounds(types.DisplayRef().Key(), types.Bounds{X: config.DisplaySlotX, Y: config.DisplaySlotY, Width: config.CardSlotWidth, Height: config.CardSlotHeight})
	for _, pid := range []string{"self", "opponent"} {
		rowY := config.OpponentHandY
		if pid == "self" {
			rowY = config.SelfHandY
		}
		for i := 0; i < config.MaxHandSlots; i++ {
			x, y := config.CalculateHandSlotPosition(rowY, config.MaxHandSlots, i)
			r.ReportBounds(types.HandRef(pid, i).Key(), types.Bounds{X: x, Y: y, Width: config.CardSlotWidth, Height: config.CardSlotHeight})
		}
	}
}

func baseSnapshot() *game.Snapshot {
	return &game.Snapshot{
		Players: []game.PlayerState{
			{ID: "self", Hand: []types.Card{{ID: "A", Rank: 3}, {ID: "B", Rank: 7}}},
			{ID: "opponent", Hand: []types.Card{{ID: "X", Rank: 1}, {ID: "Y", Rank: 9}}},
		},
		DrawPile:        []types.CardID{"C", "D"},
		DiscardPile:     []types.CardID{"Z"},
		CurrentPlayerID: "self",
	}
}

func drawSnapshot(actionID string) *game.Snapshot {
	snap := baseSnapshot()
	snap.Players[0].Hand = append(snap.Players[0].Hand, types.Card{ID: "C", Rank: 5})
	snap.DrawPile = []types.CardID{"D"}
	snap.Players[0].Actions = []game.ActionRecord{
		{ID: actionID, Name: "drawn_card", Data: game.ActionData{CardIndex: 2}},
	}
	return snap
}

func verifyDrawnCard() {
	fmt.Println("场景1: 抽牌回放")
	s := transitions.NewScheduler(nil, nil, baseSnapshot())
	reportSlots(s)

	s.Push(drawSnapshot("v-1"))
	check("push enters draining", s.Draining(), "not draining")
	check("shadow lags mid-batch", len(s.Read().Hand("self").Cards) == 2,
		fmt.Sprintf("hand size %d", len(s.Read().Hand("self").Cards)))

	step(s, 1.0)
	hand := s.Read().Hand("self")
	check("batch completed", !s.Draining(), "still draining")
	check("hand converged to [A B C]", len(hand.Cards) == 3 && hand.Cards[2].ID == "C",
		fmt.Sprintf("hand %v", hand.Cards))
	s.Dispose()
}

func verifyCoalescing() {
	fmt.Println("场景2: latest-wins 合并")
	s := transitions.NewScheduler(nil, nil, baseSnapshot())
	reportSlots(s)

	batches := 0
	s.SetOnBatchStarted(func() { batches++ })

	s.Push(drawSnapshot("v-1"))

	mid := drawSnapshot("v-1")
	mid.Players[1].Hand = append(mid.Players[1].Hand, types.Card{ID: "D", Rank: 2})
	mid.Players[1].Actions = []game.ActionRecord{
		{ID: "v-2", Name: "drawn_card", Data: game.ActionData{CardIndex: 2}},
	}
	final := mid.Clone()
	final.Players[1].Hand[2] = types.Card{ID: "E", Rank: 4}
	final.Players[1].Actions = []game.ActionRecord{
		{ID: "v-3", Name: "drawn_card", Data: game.ActionData{CardIndex: 2}},
	}
	s.Push(mid)
	s.Push(final)

	step(s, 3.0)
	opp := s.Read().Hand("opponent")
	check("exactly 2 batches", batches == 2, fmt.Sprintf("batches = %d", batches))
	check("converged to final snapshot", len(opp.Cards) == 3 && opp.Cards[2].ID == "E",
		fmt.Sprintf("opponent hand %v", opp.Cards))
	s.Dispose()
}

func verifyTimeout() {
	fmt.Println("场景3: 批次超时兜底")
	cfg := config.DefaultTransitionConfig()
	cfg.MoveDurationMs = 60000
	cfg.BatchTimeoutMs = 500

	s := transitions.NewScheduler(cfg, nil, baseSnapshot())
	reportSlots(s)
	s.Push(drawSnapshot("v-1"))

	step(s, 0.4)
	check("still draining before timeout", s.Draining(), "completed early")
	step(s, 0.2)
	check("force-completed at timeout", !s.Draining(), "still draining")
	check("state applied after timeout", len(s.Read().Hand("self").Cards) == 3,
		fmt.Sprintf("hand size %d", len(s.Read().Hand("self").Cards)))
	s.Dispose()
}

func verifyNoBounds() {
	fmt.Println("场景4: 无坐标降级")
	s := transitions.NewScheduler(nil, nil, baseSnapshot())
	// 故意不上报任何槽位坐标

	started := 0
	s.SetOnDescriptorStarted(func(*transitions.Descriptor) { started++ })
	s.Push(drawSnapshot("v-1"))
	step(s, 0.5)

	check("no descriptors started", started == 0, fmt.Sprintf("started = %d", started))
	check("batch did not hang", !s.Draining(), "still draining")
	check("state applied instantly", len(s.Read().Hand("self").Cards) == 3,
		fmt.Sprintf("hand size %d", len(s.Read().Hand("self").Cards)))
	s.Dispose()
}

func main() {
	log.SetOutput(io.Discard)

	verifyDrawnCard()
	verifyCoalescing()
	verifyTimeout()
	verifyNoBounds()

	if failures > 0 {
		fmt.Printf("\n%d 项检查失败\n", failures)
		os.Exit(1)
	}
	fmt.Println("\n全部检查通过")
}
