// Package game 定义牌局状态模型、影子状态缓存和跨场景管理器
package game

import (
	"github.com/decker502/cardduel/pkg/types"
)

// ActionData 动作记录的数据字段（封闭集合，在检测器边界一次性解码）
// 不同动作只使用其中一部分字段，未使用的字段为零值
type ActionData struct {
	// CardIndex 主卡牌的手牌槽位下标
	CardIndex int `yaml:"cardIndex"`

	// Card2Index 交换动作中第二张卡牌的手牌槽位下标
	Card2Index int `yaml:"card2Index"`

	// TargetPlayerID 交换/偷看动作中对方玩家ID
	TargetPlayerID string `yaml:"targetPlayerId"`
}

// ActionRecord 一条待播报的玩家动作记录
// 由规则引擎附加在快照上，描述自上一个快照以来该玩家做了什么
type ActionRecord struct {
	// ID 服务端分配的动作标识，Processed-Action Set 以它为键
	// 同一标识至多产生一个过渡描述符（幂等）
	ID string `yaml:"id"`

	// Name 动作名称（如 "drawn_card"、"swapped_cards"）
	Name string `yaml:"name"`

	// Data 动作数据
	Data ActionData `yaml:"data"`
}

// PlayerState 单个玩家的权威状态
type PlayerState struct {
	ID      string         `yaml:"id"`
	Hand    []types.Card   `yaml:"hand"`
	Status  string         `yaml:"status"`
	Actions []ActionRecord `yaml:"actions"`
}

// Snapshot 一次完整的权威牌局状态
// 由状态源（规则引擎/网络层）推送，调度层视为不可变
type Snapshot struct {
	Players     []PlayerState  `yaml:"players"`
	DrawPile    []types.CardID `yaml:"drawPile"`
	DiscardPile []types.CardID `yaml:"discardPile"`

	// 以下为实时字段：渲染时永远读取最新值，不参与影子覆盖
	// （回合归属、倒计时等信息在动画播放期间也不允许视觉滞后）

	CurrentPlayerID string         `yaml:"currentPlayerId"`
	TurnSecondsLeft float64        `yaml:"turnSecondsLeft"`
	Phase           string         `yaml:"phase"`
	Scores          map[string]int `yaml:"scores"`
}

// Player 按ID查找玩家状态，找不到返回 nil
func (s *Snapshot) Player(id string) *PlayerState {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// HandSize 返回指定玩家的手牌数，玩家不存在返回 0
func (s *Snapshot) HandSize(playerID string) int {
	if p := s.Player(playerID); p != nil {
		return len(p.Hand)
	}
	return 0
}

// PendingActions 按玩家声明顺序收集所有待播报动作
// 批内描述符的执行顺序就是这里的产出顺序
func (s *Snapshot) PendingActions() []ActionRecord {
	var records []ActionRecord
	for i := range s.Players {
		records = append(records, s.Players[i].Actions...)
	}
	return records
}

// Clone 返回快照的深拷贝
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}

	clone := &Snapshot{
		Players:         make([]PlayerState, len(s.Players)),
		DrawPile:        append([]types.CardID(nil), s.DrawPile...),
		DiscardPile:     append([]types.CardID(nil), s.DiscardPile...),
		CurrentPlayerID: s.CurrentPlayerID,
		TurnSecondsLeft: s.TurnSecondsLeft,
		Phase:           s.Phase,
	}

	for i, p := range s.Players {
		clone.Players[i] = PlayerState{
			ID:      p.ID,
			Hand:    append([]types.Card(nil), p.Hand...),
			Status:  p.Status,
			Actions: append([]ActionRecord(nil), p.Actions...),
		}
	}

	if s.Scores != nil {
		clone.Scores = make(map[string]int, len(s.Scores))
		for k, v := range s.Scores {
			clone.Scores[k] = v
		}
	}

	return clone
}
