package scenes

import (
	"github.com/decker502/cardduel/pkg/game"
	"github.com/decker502/cardduel/pkg/types"
)

// ScriptStep 脚本中的一步：在指定时刻推送一个权威快照
type ScriptStep struct {
	// At 相对牌局开始的时刻（秒）
	At float64
	// Snapshot 到点推送的快照
	Snapshot *game.Snapshot
}

// ScriptedMatch 脚本化状态源
//
// 按时间轴回放一串预制快照，代替真实的服务端推送。
// 演示模式和验证工具都用它驱动牌局场景
type ScriptedMatch struct {
	steps   []ScriptStep
	elapsed float64
	next    int
}

// NewScriptedMatch 创建脚本化状态源
// steps 必须按 At 升序排列
func NewScriptedMatch(steps []ScriptStep) *ScriptedMatch {
	return &ScriptedMatch{steps: steps}
}

// Due 推进脚本时钟，返回本帧到点的快照（按时间顺序）
func (m *ScriptedMatch) Due(dt float64) []*game.Snapshot {
	m.elapsed += dt

	var due []*game.Snapshot
	for m.next < len(m.steps) && m.steps[m.next].At <= m.elapsed {
		due = append(due, m.steps[m.next].Snapshot)
		m.next++
	}
	return due
}

// Finished 返回脚本是否已全部推送完
func (m *ScriptedMatch) Finished() bool {
	return m.next >= len(m.steps)
}

// DemoScript 返回演示牌局的开局快照和完整脚本
//
// 时间轴覆盖每种动作各一次，结尾用一组密集快照演示合并策略：
// 抽牌 → 弃牌 → 偷看 → 窥探 → 交换 → 对手抽牌 → 出牌被拒（密集推送）
func DemoScript() (*game.Snapshot, *ScriptedMatch) {
	initial := &game.Snapshot{
		Players: []game.PlayerState{
			{ID: "self", Hand: []types.Card{
				{ID: "c01", Rank: 3}, {ID: "c02", Rank: 7}, {ID: "c03", Rank: 2}, {ID: "c04", Rank: 9},
			}},
			{ID: "opponent", Hand: []types.Card{
				{ID: "c11", Rank: 1}, {ID: "c12", Rank: 5}, {ID: "c13", Rank: 8}, {ID: "c14", Rank: 4},
			}},
		},
		DrawPile:        []types.CardID{"c21", "c22", "c23", "c24"},
		DiscardPile:     []types.CardID{"c31"},
		CurrentPlayerID: "self",
		TurnSecondsLeft: 30,
		Phase:           "playing",
		Scores:          map[string]int{"self": 0, "opponent": 0},
	}

	var steps []ScriptStep
	state := initial

	push := func(at float64, mutate func(s *game.Snapshot)) {
		next := state.Clone()
		for i := range next.Players {
			next.Players[i].Actions = nil
		}
		next.TurnSecondsLeft = 30 - at
		mutate(next)
		steps = append(steps, ScriptStep{At: at, Snapshot: next})
		state = next
	}

	// 自己抽牌：c24 从牌堆进入 hand:self:4
	push(1.0, func(s *game.Snapshot) {
		s.Players[0].Hand = append(s.Players[0].Hand, types.Card{ID: "c24", Rank: 6, FaceUp: true})
		s.DrawPile = s.DrawPile[:3]
		s.Players[0].Actions = []game.ActionRecord{
			{ID: "demo-1", Name: "drawn_card", Data: game.ActionData{CardIndex: 4}},
		}
	})

	// 弃掉刚抽的牌
	push(3.0, func(s *game.Snapshot) {
		s.Players[0].Hand = s.Players[0].Hand[:4]
		s.DiscardPile = append(s.DiscardPile, "c24")
		s.Players[0].Actions = []game.ActionRecord{
			{ID: "demo-2", Name: "discarded_card", Data: game.ActionData{CardIndex: 4}},
		}
	})

	// 偷看自己的第0张
	push(5.0, func(s *game.Snapshot) {
		s.Players[0].Actions = []game.ActionRecord{
			{ID: "demo-3", Name: "peeked_card", Data: game.ActionData{CardIndex: 0}},
		}
	})

	// 窥探对手的第1张
	push(7.0, func(s *game.Snapshot) {
		s.CurrentPlayerID = "opponent"
		s.Players[1].Actions = []game.ActionRecord{
			{ID: "demo-4", Name: "spied_card", Data: game.ActionData{CardIndex: 1, TargetPlayerID: "self"}},
		}
	})

	// 交换：self:0 的 c01 与 opponent:2 的 c13 互换
	push(9.0, func(s *game.Snapshot) {
		s.Players[0].Hand[0], s.Players[1].Hand[2] = s.Players[1].Hand[2], s.Players[0].Hand[0]
		s.Players[0].Actions = []game.ActionRecord{
			{ID: "demo-5", Name: "swapped_cards", Data: game.ActionData{
				CardIndex: 0, TargetPlayerID: "opponent", Card2Index: 2,
			}},
		}
	})

	// 对手抽牌
	push(12.0, func(s *game.Snapshot) {
		s.Players[1].Hand = append(s.Players[1].Hand, types.Card{ID: "c23", Rank: 0})
		s.DrawPile = s.DrawPile[:2]
		s.Players[1].Actions = []game.ActionRecord{
			{ID: "demo-6", Name: "drawn_card", Data: game.ActionData{CardIndex: 4}},
		}
	})

	// 密集推送：第一个快照播放期间第二个到达，演示 latest-wins 合并
	push(14.0, func(s *game.Snapshot) {
		s.CurrentPlayerID = "self"
		s.Players[0].Actions = []game.ActionRecord{
			{ID: "demo-7", Name: "peeked_card", Data: game.ActionData{CardIndex: 3}},
		}
	})
	push(14.1, func(s *game.Snapshot) {
		s.Players[0].Actions = []game.ActionRecord{
			{ID: "demo-8", Name: "rejected_card", Data: game.ActionData{CardIndex: 3}},
		}
		s.Scores = map[string]int{"self": 2, "opponent": 1}
	})

	return initial, NewScriptedMatch(steps)
}
