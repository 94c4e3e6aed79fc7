package transitions

import (
	"fmt"
	"log"

	"github.com/decker502/cardduel/pkg/config"
	"github.com/decker502/cardduel/pkg/game"
	"github.com/decker502/cardduel/pkg/types"
)

// descriptorBuilder 把一条动作记录构造成过渡描述符
// 构造依赖新快照（移动后的卡牌内容只能从新快照反查）
type descriptorBuilder func(d *Detector, snap *game.Snapshot, playerID string, rec game.ActionRecord) (*Descriptor, error)

// actionTable 动作名称到构造器的静态分类表
// 表中声明了每种动作的源/目标槽位取自 actionData 的哪些字段
var actionTable = map[string]descriptorBuilder{
	"drawn_card":         (*Detector).buildDrawnCard,
	"drawn_from_discard": (*Detector).buildDrawnFromDiscard,
	"discarded_card":     (*Detector).buildDiscardedCard,
	"peeked_card":        (*Detector).buildPeekedCard,
	"spied_card":         (*Detector).buildSpiedCard,
	"swapped_cards":      (*Detector).buildSwappedCards,
	"rejected_card":      (*Detector).buildRejectedCard,
}

// Detector 过渡检测器
// 对照影子状态，把新快照携带的动作记录分类为有序的过渡描述符列表
//
// Processed-Action Set：同一个动作标识至多产生一个描述符，
// 即使同一快照被重复观察（如处理期间的重入通知）也不会重复播放
type Detector struct {
	cfg       *config.TransitionConfig
	processed map[string]struct{}
}

// NewDetector 创建过渡检测器
func NewDetector(cfg *config.TransitionConfig) *Detector {
	if cfg == nil {
		cfg = config.DefaultTransitionConfig()
	}
	return &Detector{
		cfg:       cfg,
		processed: make(map[string]struct{}),
	}
}

// Detect 把快照中的待播报动作分类为过渡描述符
//
// 输出顺序即批内执行顺序（玩家声明顺序）。
// 已处理过的动作标识被静默丢弃；无法识别的动作名跳过并记录日志
func (d *Detector) Detect(snap *game.Snapshot) []*Descriptor {
	if snap == nil {
		return nil
	}

	var descriptors []*Descriptor
	for i := range snap.Players {
		playerID := snap.Players[i].ID
		for _, rec := range snap.Players[i].Actions {
			key := actionKey(playerID, rec)
			if _, done := d.processed[key]; done {
				// 幂等：同一动作标识绝不产生第二个描述符
				continue
			}

			builder, known := actionTable[rec.Name]
			if !known {
				log.Printf("[Detector] Warning: unrecognized action %q from player %s, skipping", rec.Name, playerID)
				continue
			}

			// 无论构造成功与否都标记已处理：
			// 构造失败按"无法动画"降级，重试没有意义
			d.processed[key] = struct{}{}

			desc, err := builder(d, snap, playerID, rec)
			if err != nil {
				log.Printf("[Detector] Warning: cannot build descriptor for %s: %v (state applied instantly)", rec.Name, err)
				continue
			}

			// 描述符标识沿用去重键：没有服务端动作ID的记录
			// 退化为内容键，同批并发的描述符标识仍然互不相同
			desc.ID = key
			descriptors = append(descriptors, desc)
		}
	}

	return descriptors
}

// actionKey 返回动作记录的去重键
// 优先使用服务端分配的动作标识；缺失时退化为内容键，
// 保证重复观察同一快照仍然去重
func actionKey(playerID string, rec game.ActionRecord) string {
	if rec.ID != "" {
		return rec.ID
	}
	return fmt.Sprintf("%s/%s/%d/%d/%s", playerID, rec.Name, rec.Data.CardIndex, rec.Data.Card2Index, rec.Data.TargetPlayerID)
}

// handCard 从新快照反查某玩家手牌槽位上的卡牌
func handCard(snap *game.Snapshot, playerID string, index int) (types.Card, error) {
	p := snap.Player(playerID)
	if p == nil {
		return types.Card{}, fmt.Errorf("unknown player %s", playerID)
	}
	if index < 0 || index >= len(p.Hand) {
		return types.Card{}, fmt.Errorf("hand index %d out of range for player %s (hand size %d)", index, playerID, len(p.Hand))
	}
	return p.Hand[index], nil
}

// buildDrawnCard 抽牌：pile:draw → hand:<playerId>:<cardIndex>
func (d *Detector) buildDrawnCard(snap *game.Snapshot, playerID string, rec game.ActionRecord) (*Descriptor, error) {
	card, err := handCard(snap, playerID, rec.Data.CardIndex)
	if err != nil {
		return nil, err
	}
	return &Descriptor{
		ID:         rec.ID,
		Kind:       KindMove,
		Payload:    card,
		Source:     types.DrawPileRef(),
		Dest:       types.HandRef(playerID, rec.Data.CardIndex),
		DurationMs: d.cfg.MoveDurationMs,
		Curve:      d.cfg.Curve,
	}, nil
}

// buildDrawnFromDiscard 从弃牌堆取牌：pile:discard → hand:<playerId>:<cardIndex>
func (d *Detector) buildDrawnFromDiscard(snap *game.Snapshot, playerID string, rec game.ActionRecord) (*Descriptor, error) {
	card, err := handCard(snap, playerID, rec.Data.CardIndex)
	if err != nil {
		return nil, err
	}
	return &Descriptor{
		ID:         rec.ID,
		Kind:       KindMove,
		Payload:    card,
		Source:     types.DiscardPileRef(),
		Dest:       types.HandRef(playerID, rec.Data.CardIndex),
		DurationMs: d.cfg.MoveDurationMs,
		Curve:      d.cfg.Curve,
	}, nil
}

// buildDiscardedCard 弃牌：hand:<playerId>:<cardIndex> → pile:discard
// 移动期间源手牌槽位腾空
func (d *Detector) buildDiscardedCard(snap *game.Snapshot, playerID string, rec game.ActionRecord) (*Descriptor, error) {
	if len(snap.DiscardPile) == 0 {
		return nil, fmt.Errorf("discard pile empty after discarded_card")
	}
	// 弃掉的牌是新快照弃牌堆的顶牌
	top := snap.DiscardPile[len(snap.DiscardPile)-1]
	return &Descriptor{
		ID:         rec.ID,
		Kind:       KindMoveWithVacatedSlot,
		Payload:    types.Card{ID: top, FaceUp: true},
		Source:     types.HandRef(playerID, rec.Data.CardIndex),
		Dest:       types.DiscardPileRef(),
		DurationMs: d.cfg.MoveDurationMs,
		Curve:      d.cfg.Curve,
	}, nil
}

// buildPeekedCard 偷看自己的牌：本方槽位闪烁
func (d *Detector) buildPeekedCard(snap *game.Snapshot, playerID string, rec game.ActionRecord) (*Descriptor, error) {
	return &Descriptor{
		ID:         rec.ID,
		Kind:       KindFlash,
		FlashSlots: []types.SlotRef{types.HandRef(playerID, rec.Data.CardIndex)},
		DurationMs: d.cfg.FlashDurationMs,
		Curve:      "linear",
	}, nil
}

// buildSpiedCard 偷看对手的牌：对手槽位闪烁
func (d *Detector) buildSpiedCard(snap *game.Snapshot, playerID string, rec game.ActionRecord) (*Descriptor, error) {
	target := rec.Data.TargetPlayerID
	if snap.Player(target) == nil {
		return nil, fmt.Errorf("spied_card targets unknown player %s", target)
	}
	return &Descriptor{
		ID:         rec.ID,
		Kind:       KindFlash,
		FlashSlots: []types.SlotRef{types.HandRef(target, rec.Data.CardIndex)},
		DurationMs: d.cfg.FlashDurationMs,
		Curve:      "linear",
	}, nil
}

// buildSwappedCards 两张卡牌交换位置（可跨玩家）
//
// 新快照中交换已经发生：原来在槽位1的卡牌A现在位于对方的槽位2，
// 反之亦然，因此 A 从对方槽位反查、B 从本方槽位反查
func (d *Detector) buildSwappedCards(snap *game.Snapshot, playerID string, rec game.ActionRecord) (*Descriptor, error) {
	target := rec.Data.TargetPlayerID
	if target == "" {
		target = playerID // 同一玩家手内交换
	}

	cardA, err := handCard(snap, target, rec.Data.Card2Index)
	if err != nil {
		return nil, fmt.Errorf("swap card A: %w", err)
	}
	cardB, err := handCard(snap, playerID, rec.Data.CardIndex)
	if err != nil {
		return nil, fmt.Errorf("swap card B: %w", err)
	}

	return &Descriptor{
		ID:         rec.ID,
		Kind:       KindCompoundSwap,
		Payload:    cardA,
		Payload2:   cardB,
		Source:     types.HandRef(playerID, rec.Data.CardIndex),
		Dest:       types.HandRef(target, rec.Data.Card2Index),
		DurationMs: d.cfg.MoveDurationMs,
		Curve:      d.cfg.Curve,
	}, nil
}

// buildRejectedCard 出牌被规则引擎拒绝：往返动画
// 卡牌仍在原槽位（新快照中位置未变），取原槽位卡牌作为载荷
func (d *Detector) buildRejectedCard(snap *game.Snapshot, playerID string, rec game.ActionRecord) (*Descriptor, error) {
	card, err := handCard(snap, playerID, rec.Data.CardIndex)
	if err != nil {
		return nil, err
	}
	return &Descriptor{
		ID:         rec.ID,
		Kind:       KindCompoundRejectReturn,
		Payload:    card,
		Source:     types.HandRef(playerID, rec.Data.CardIndex),
		Dest:       types.DisplayRef(),
		DurationMs: d.cfg.MoveDurationMs,
		Curve:      d.cfg.Curve,
	}, nil
}
