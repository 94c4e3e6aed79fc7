// Package transitions 实现动画过渡的检测、排队与时序调度
//
// 数据流：状态源推送新快照 → Detector 对照影子状态把动作记录
// 分类为过渡描述符 → Sequencer 逐个执行（批级超时兜底）→
// 批次完成后影子状态切换为新快照
package transitions

import (
	"fmt"

	"github.com/decker502/cardduel/pkg/types"
)

// Kind 过渡描述符的种类（封闭的带标签联合）
// 动作数据在检测器边界一次性解码成对应种类的显式字段，
// 下游消费者不再做任何动态字段探测
type Kind int

const (
	// KindMove 普通移动：卡牌从源槽位滑到目标槽位
	KindMove Kind = iota
	// KindMoveWithVacatedSlot 移动并腾空源槽位
	// 移动期间源槽位渲染为空，避免两张卡牌叠在同一槽位上
	KindMoveWithVacatedSlot
	// KindFlash 高亮闪烁：一个或多个槽位同时播放三脉冲高亮
	// 闪烁是非阻塞覆盖层，可与普通移动并发播放
	KindFlash
	// KindCompoundRejectReturn 复合：出牌被拒绝后原路退回
	// 展开为两个首尾相接的普通移动（源→展示槽位→源）
	KindCompoundRejectReturn
	// KindCompoundSwap 复合：两张卡牌交换位置
	// 展开为一次双槽位闪烁加两个顺序的腾空移动
	KindCompoundSwap
)

// String 返回种类的字符串表示
func (k Kind) String() string {
	switch k {
	case KindMove:
		return "Move"
	case KindMoveWithVacatedSlot:
		return "MoveWithVacatedSlot"
	case KindFlash:
		return "Flash"
	case KindCompoundRejectReturn:
		return "CompoundRejectReturn"
	case KindCompoundSwap:
		return "CompoundSwap"
	default:
		return "Unknown"
	}
}

// Descriptor 过渡描述符：对一次逻辑过渡的完整动画指令
//
// 生命周期：Detector 从一条动作记录创建 → Sequencer 在批次开始时
// 将复合种类展开为 2~3 个子描述符 → 执行恰好一次 → 完成后丢弃。
// 槽位引用在执行时才解析为屏幕坐标（创建时坐标可能尚不存在）
type Descriptor struct {
	// ID 描述符标识（源动作标识，展开的子描述符带 #序号 后缀）
	ID string

	// Kind 过渡种类
	Kind Kind

	// Payload 移动中的卡牌（Flash 不携带卡牌）
	Payload types.Card

	// Payload2 交换动作中的第二张卡牌（仅 CompoundSwap 父描述符）
	Payload2 types.Card

	// Source 源槽位引用
	Source types.SlotRef

	// Dest 目标槽位引用
	Dest types.SlotRef

	// FlashSlots 闪烁高亮的槽位集合（仅 KindFlash）
	FlashSlots []types.SlotRef

	// DurationMs 动画时长（毫秒）
	DurationMs int

	// Curve 缓动曲线名称
	Curve string
}

// String 返回描述符的日志表示
func (d *Descriptor) String() string {
	if d.Kind == KindFlash {
		return fmt.Sprintf("%s[%s slots=%v]", d.Kind, d.ID, d.FlashSlots)
	}
	return fmt.Sprintf("%s[%s card=%s %s->%s]", d.Kind, d.ID, d.Payload.ID, d.Source, d.Dest)
}

// IsCompound 判断是否为需要展开的复合种类
func (d *Descriptor) IsCompound() bool {
	return d.Kind == KindCompoundRejectReturn || d.Kind == KindCompoundSwap
}

// Expand 把复合描述符展开为有序的子描述符序列
//
// 顺序是固定的，绝不重排：
//   - CompoundSwap → [Flash(两槽位), MoveWithVacatedSlot(A: 1→2), MoveWithVacatedSlot(B: 2→1)]
//     先闪后移、两次移动顺序执行，画面上不会出现两张卡牌同时占据一个槽位
//   - CompoundRejectReturn → [Move(源→展示), Move(展示→源)]
//     背靠背播放，呈现一次连续的往返动画
//
// 非复合描述符原样返回自身
func (d *Descriptor) Expand(flashDurationMs int) []*Descriptor {
	switch d.Kind {
	case KindCompoundSwap:
		return []*Descriptor{
			{
				ID:         d.ID + "#0",
				Kind:       KindFlash,
				FlashSlots: []types.SlotRef{d.Source, d.Dest},
				DurationMs: flashDurationMs,
				Curve:      "linear",
			},
			{
				ID:         d.ID + "#1",
				Kind:       KindMoveWithVacatedSlot,
				Payload:    d.Payload,
				Source:     d.Source,
				Dest:       d.Dest,
				DurationMs: d.DurationMs,
				Curve:      d.Curve,
			},
			{
				ID:         d.ID + "#2",
				Kind:       KindMoveWithVacatedSlot,
				Payload:    d.Payload2,
				Source:     d.Dest,
				Dest:       d.Source,
				DurationMs: d.DurationMs,
				Curve:      d.Curve,
			},
		}

	case KindCompoundRejectReturn:
		display := types.DisplayRef()
		return []*Descriptor{
			{
				ID:         d.ID + "#0",
				Kind:       KindMove,
				Payload:    d.Payload,
				Source:     d.Source,
				Dest:       display,
				DurationMs: d.DurationMs,
				Curve:      d.Curve,
			},
			{
				ID:         d.ID + "#1",
				Kind:       KindMove,
				Payload:    d.Payload,
				Source:     display,
				Dest:       d.Source,
				DurationMs: d.DurationMs,
				Curve:      d.Curve,
			},
		}

	default:
		return []*Descriptor{d}
	}
}
