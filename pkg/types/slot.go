package types

import "fmt"

// SlotKind 定义逻辑槽位的种类
type SlotKind int

const (
	// SlotUnknown 未知槽位
	SlotUnknown SlotKind = iota
	// SlotDrawPile 抽牌堆（整局游戏位置固定）
	SlotDrawPile
	// SlotDiscardPile 弃牌堆（整局游戏位置固定）
	SlotDiscardPile
	// SlotHand 某玩家手牌的第 N 个槽位
	SlotHand
	// SlotDisplay 桌面中央的临时展示槽位
	// 用于"出牌被拒绝后退回"的往返动画中转点
	SlotDisplay
)

// String 返回槽位种类的字符串表示
func (k SlotKind) String() string {
	switch k {
	case SlotDrawPile:
		return "drawPile"
	case SlotDiscardPile:
		return "discardPile"
	case SlotHand:
		return "hand"
	case SlotDisplay:
		return "display"
	default:
		return "unknown"
	}
}

// SlotRef 是对一个逻辑槽位的引用
// 槽位引用在描述符创建时生成，但只在执行时才解析为屏幕坐标
// （创建时对应的槽位可能尚未完成布局）
type SlotRef struct {
	// Kind 槽位种类
	Kind SlotKind

	// PlayerID 所属玩家（仅 SlotHand 有效）
	PlayerID string

	// Index 手牌槽位下标（仅 SlotHand 有效，0-based）
	Index int
}

// DrawPileRef 返回抽牌堆槽位引用
func DrawPileRef() SlotRef {
	return SlotRef{Kind: SlotDrawPile}
}

// DiscardPileRef 返回弃牌堆槽位引用
func DiscardPileRef() SlotRef {
	return SlotRef{Kind: SlotDiscardPile}
}

// DisplayRef 返回临时展示槽位引用
func DisplayRef() SlotRef {
	return SlotRef{Kind: SlotDisplay}
}

// HandRef 返回指定玩家手牌槽位引用
func HandRef(playerID string, index int) SlotRef {
	return SlotRef{Kind: SlotHand, PlayerID: playerID, Index: index}
}

// Key 返回槽位的注册键，用于 Position Registry 的查询
// 格式：
//   - "pile:draw" / "pile:discard" / "display"
//   - "hand:<playerId>:<index>"
func (r SlotRef) Key() string {
	switch r.Kind {
	case SlotDrawPile:
		return "pile:draw"
	case SlotDiscardPile:
		return "pile:discard"
	case SlotDisplay:
		return "display"
	case SlotHand:
		return fmt.Sprintf("hand:%s:%d", r.PlayerID, r.Index)
	default:
		return "unknown"
	}
}

// String 返回槽位引用的可读表示（用于日志）
func (r SlotRef) String() string {
	return r.Key()
}

// IsPile 判断是否为位置固定的牌堆槽位
// 牌堆槽位的屏幕坐标在开局后冻结（见 layout.Registry）
func (r SlotRef) IsPile() bool {
	return r.Kind == SlotDrawPile || r.Kind == SlotDiscardPile
}
