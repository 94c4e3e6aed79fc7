// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// CardID 是卡牌的唯一标识符（由服务端分配的不透明字符串）
// 一局游戏内卡牌不会被销毁，只会在槽位之间移动或改变正反面状态
type CardID string

// Card 表示一张卡牌的权威状态
type Card struct {
	// ID 卡牌唯一标识
	ID CardID `yaml:"id"`

	// Rank 牌面点数（仅用于渲染，调度层不关心）
	Rank int `yaml:"rank"`

	// FaceUp 是否正面朝上
	// 正反面状态独立于屏幕位置，翻面不产生移动过渡
	FaceUp bool `yaml:"faceUp"`
}

// Clone 返回卡牌的副本
func (c Card) Clone() Card {
	return c
}
