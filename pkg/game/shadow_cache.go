package game

import (
	"github.com/decker502/cardduel/pkg/types"
)

// HandView 合成视图中的单个玩家手牌
type HandView struct {
	PlayerID string
	Cards    []types.Card
}

// MergedView 表现层唯一应当渲染的状态视图
//
// 结构性合成：携带实体位置的字段（手牌、牌堆）来自影子快照，
// 其余字段（回合归属、倒计时、阶段、比分）永远来自实时快照。
// 绝不做整体替换，否则回合指示等合法实时信息会在动画期间闪回旧值
type MergedView struct {
	// 影子字段（最后一次完成渲染的状态）
	Hands       []HandView
	DrawPile    []types.CardID
	DiscardPile []types.CardID

	// 实时字段
	CurrentPlayerID string
	TurnSecondsLeft float64
	Phase           string
	Scores          map[string]int
}

// Hand 按玩家ID查找手牌视图，找不到返回 nil
// 值接收者：可以直接在 Read() 的返回值上链式调用
func (v MergedView) Hand(playerID string) *HandView {
	for i := range v.Hands {
		if v.Hands[i].PlayerID == playerID {
			return &v.Hands[i]
		}
	}
	return nil
}

// shadowFields 影子状态只保存参与覆盖的子树
// 其余字段从不拷贝，始终实时读取
type shadowFields struct {
	hands       []HandView
	drawPile    []types.CardID
	discardPile []types.CardID
}

// ShadowCache 影子状态缓存
//
// 保存最后一个"已完成渲染"的快照的实体位置字段；动画播放期间
// 表现层读这里而不是实时状态，卡牌视觉才不会抢在动画前面跳位。
// Update 只由 Sequencer 在批次结束（自然完成或超时）时调用
type ShadowCache struct {
	shadow shadowFields
	live   *Snapshot
}

// NewShadowCache 创建影子状态缓存
// 初始影子内容等于初始快照（开局无需动画）
func NewShadowCache(initial *Snapshot) *ShadowCache {
	sc := &ShadowCache{}
	sc.SetLive(initial)
	sc.Update(initial)
	return sc
}

// SetLive 更新实时快照引用
// 每当状态源推送新快照时调用，使实时字段立即可见
func (sc *ShadowCache) SetLive(live *Snapshot) {
	sc.live = live
}

// Update 用给定快照替换影子内容
// 只深拷贝参与覆盖的字段（手牌、牌堆），其余字段不保存
func (sc *ShadowCache) Update(snapshot *Snapshot) {
	if snapshot == nil {
		return
	}

	hands := make([]HandView, len(snapshot.Players))
	for i, p := range snapshot.Players {
		hands[i] = HandView{
			PlayerID: p.ID,
			Cards:    append([]types.Card(nil), p.Hand...),
		}
	}

	sc.shadow = shadowFields{
		hands:       hands,
		drawPile:    append([]types.CardID(nil), snapshot.DrawPile...),
		discardPile: append([]types.CardID(nil), snapshot.DiscardPile...),
	}
}

// Read 返回合成视图
// 每次调用都返回新副本，调用方可安全持有（写时复制语义由此保证）
func (sc *ShadowCache) Read() MergedView {
	view := MergedView{
		Hands:       make([]HandView, len(sc.shadow.hands)),
		DrawPile:    append([]types.CardID(nil), sc.shadow.drawPile...),
		DiscardPile: append([]types.CardID(nil), sc.shadow.discardPile...),
	}

	for i, h := range sc.shadow.hands {
		view.Hands[i] = HandView{
			PlayerID: h.PlayerID,
			Cards:    append([]types.Card(nil), h.Cards...),
		}
	}

	if sc.live != nil {
		view.CurrentPlayerID = sc.live.CurrentPlayerID
		view.TurnSecondsLeft = sc.live.TurnSecondsLeft
		view.Phase = sc.live.Phase
		if sc.live.Scores != nil {
			view.Scores = make(map[string]int, len(sc.live.Scores))
			for k, v := range sc.live.Scores {
				view.Scores[k] = v
			}
		}
	}

	return view
}
