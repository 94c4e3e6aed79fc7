package scenes

import (
	"testing"

	"github.com/decker502/cardduel/pkg/game"
)

// TestScriptedMatchDue 测试脚本按时间轴吐出快照
func TestScriptedMatchDue(t *testing.T) {
	a := &game.Snapshot{CurrentPlayerID: "self"}
	b := &game.Snapshot{CurrentPlayerID: "opponent"}
	m := NewScriptedMatch([]ScriptStep{
		{At: 0.5, Snapshot: a},
		{At: 1.0, Snapshot: b},
	})

	if due := m.Due(0.3); len(due) != 0 {
		t.Errorf("Due(0.3) = %d snapshots, want 0", len(due))
	}
	if due := m.Due(0.3); len(due) != 1 || due[0] != a {
		t.Errorf("Due at 0.6s should yield the first snapshot")
	}

	// 一帧内跨过多个时间点：按顺序全部吐出
	if due := m.Due(5.0); len(due) != 1 || due[0] != b {
		t.Errorf("Due at 5.6s should yield the second snapshot")
	}
	if !m.Finished() {
		t.Error("script should be finished")
	}
}

// TestDemoScriptConsistency 测试演示脚本的快照前后一致
// 每一步的动作记录必须与该步快照的状态变化吻合
func TestDemoScriptConsistency(t *testing.T) {
	initial, m := DemoScript()

	if got := len(initial.Players); got != 2 {
		t.Fatalf("demo players = %d, want 2", got)
	}

	// 回放全部快照，检查最终状态
	var last *game.Snapshot
	for !m.Finished() {
		for _, snap := range m.Due(1.0) {
			last = snap
		}
	}

	if last == nil {
		t.Fatal("demo script yielded no snapshots")
	}

	// 交换之后 c13 在本方第0位
	self := last.Player("self")
	if self.Hand[0].ID != "c13" {
		t.Errorf("self hand[0] = %s, want c13 (after swap)", self.Hand[0].ID)
	}
	// 对手在第12秒抽到第5张牌
	if got := len(last.Player("opponent").Hand); got != 5 {
		t.Errorf("opponent hand size = %d, want 5", got)
	}
	// 弃牌堆顶是中途弃掉的 c24
	if top := last.DiscardPile[len(last.DiscardPile)-1]; top != "c24" {
		t.Errorf("discard top = %s, want c24", top)
	}
}
