package layout

import (
	"testing"

	"github.com/decker502/cardduel/pkg/types"
)

// TestResolveUnmeasuredSlot 测试未测量槽位返回未命中而非崩溃
func TestResolveUnmeasuredSlot(t *testing.T) {
	r := NewRegistry()
	r.RegisterSlot("hand:self:0")

	// 已注册但未上报过坐标
	if _, ok := r.Resolve(types.HandRef("self", 0)); ok {
		t.Error("unmeasured slot should resolve to NotFound")
	}
	if !r.IsRegistered("hand:self:0") {
		t.Error("slot should be registered")
	}
}

// TestHandSlotAlwaysLatest 测试手牌槽位总是读取最新上报值
func TestHandSlotAlwaysLatest(t *testing.T) {
	r := NewRegistry()
	ref := types.HandRef("self", 2)

	r.ReportBounds(ref.Key(), types.Bounds{X: 100, Y: 470, Width: 70, Height: 100})
	r.ReportBounds(ref.Key(), types.Bounds{X: 130, Y: 470, Width: 70, Height: 100})

	b, ok := r.Resolve(ref)
	if !ok {
		t.Fatal("measured slot should resolve")
	}
	if b.X != 130 {
		t.Errorf("hand slot X = %.0f, want latest report 130", b.X)
	}
}

// TestPileBoundsFrozen 测试牌堆槽位在首次上报后冻结
func TestPileBoundsFrozen(t *testing.T) {
	r := NewRegistry()
	ref := types.DrawPileRef()

	first := types.Bounds{X: 280, Y: 250, Width: 70, Height: 100}
	r.ReportBounds(ref.Key(), first)

	// 后续布局抖动不影响牌堆解析结果
	r.ReportBounds(ref.Key(), types.Bounds{X: 999, Y: 999, Width: 70, Height: 100})

	b, ok := r.Resolve(ref)
	if !ok {
		t.Fatal("pile slot should resolve after first report")
	}
	if b != first {
		t.Errorf("pile bounds = %+v, want frozen first report %+v", b, first)
	}
}

// TestResetUnfreezesPiles 测试新一局重置后牌堆重新冻结
func TestResetUnfreezesPiles(t *testing.T) {
	r := NewRegistry()
	ref := types.DiscardPileRef()

	r.ReportBounds(ref.Key(), types.Bounds{X: 450, Y: 250})
	r.Reset()

	if _, ok := r.Resolve(ref); ok {
		t.Error("pile should be unmeasured after Reset")
	}

	second := types.Bounds{X: 460, Y: 260}
	r.ReportBounds(ref.Key(), second)
	if b, _ := r.Resolve(ref); b != second {
		t.Errorf("pile bounds after reset = %+v, want %+v", b, second)
	}
}
