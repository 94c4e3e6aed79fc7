// 复合过渡验证工具
//
// 检查交换与拒绝退回两种复合动作的展开顺序和播放时序。
// 用法: go run cmd/verify_swap/main.go
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

func step(s *transitions.Scheduler, seconds float64) {
	dt := 1.0 / 60.0
	for elapsed := 0.0; elapsed < seconds; elapsed += dt {
		s.Update(dt)
	}
}

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
		DrawPile:        []types.CardID{"C"},
		DiscardPile:     []types.CardID{"Z"},
		CurrentPlayerID: "self",
	}
}

func verifySwap() {
	fmt.Println("场景1: 交换动作展开与播放")
	s := transitions.NewScheduler(nil, nil, baseSnapshot())
	reportSlots(s)

	var started []transitions.Kind
	s.SetOnDescriptorStarted(func(d *transitions.Descriptor) { started = append(started, d.Kind) })

	snap := baseSnapshot()
	snap.Players[0].Hand[0] = types.Card{ID: "Y", Rank: 9}
	snap.Players[1].Hand[1] = types.Card{ID: "A", Rank: 3}
	snap.Players[0].Actions = []game.ActionRecord{
		{ID: "v-1", Name: "swapped_cards", Data: game.ActionData{
			CardIndex: 0, TargetPlayerID: "opponent", Card2Index: 1,
		}},
	}
	s.Push(snap)

	active := s.Active()
	check("flash plays concurrently with move1", len(active) == 2,
		fmt.Sprintf("active = %d", len(active)))

	step(s, 2.0)

	order := fmt.Sprintf("%v", started)
	check("expansion order Flash, Move1, Move2",
		len(started) == 3 &&
			started[0] == transitions.KindFlash &&
			started[1] == transitions.KindMoveWithVacatedSlot &&
			started[2] == transitions.KindMoveWithVacatedSlot,
		order)
	check("batch completed", !s.Draining(), "still draining")

	hand := s.Read().Hand("self")
	check("swap converged", hand.Cards[0].ID == "Y", fmt.Sprintf("self:0 = %s", hand.Cards[0].ID))
	s.Dispose()
}

func verifyRejectReturn() {
	fmt.Println("场景2: 拒绝退回往返")
	s := transitions.NewScheduler(nil, nil, baseSnapshot())
	reportSlots(s)

	var started []*transitions.Descriptor
	s.SetOnDescriptorStarted(func(d *transitions.Descriptor) { started = append(started, d) })

	snap := baseSnapshot()
	snap.Players[0].Actions = []game.ActionRecord{
		{ID: "v-1", Name: "rejected_card", Data: game.ActionData{CardIndex: 1}},
	}
	s.Push(snap)
	step(s, 2.0)

	check("two back-to-back moves", len(started) == 2, fmt.Sprintf("started = %d", len(started)))
	if len(started) == 2 {
		check("leg1 ends at display slot", started[0].Dest.Key() == "display", started[0].Dest.Key())
		check("leg2 returns to source", started[1].Dest.Key() == "hand:self:1", started[1].Dest.Key())
		check("same card both legs", started[0].Payload.ID == "B" && started[1].Payload.ID == "B",
			fmt.Sprintf("%s / %s", started[0].Payload.ID, started[1].Payload.ID))
	}
	check("hand unchanged after round trip", s.Read().Hand("self").Cards[1].ID == "B",
		fmt.Sprintf("self:1 = %s", s.Read().Hand("self").Cards[1].ID))
	s.Dispose()
}

func main() {
	log.SetOutput(io.Discard)

	verifySwap()
	verifyRejectReturn()

	if failures > 0 {
		fmt.Printf("\n%d 项检查失败\n", failures)
		os.Exit(1)
	}
	fmt.Println("\n全部检查通过")
}
