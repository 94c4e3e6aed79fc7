package types

// Bounds 表示一个槽位在根动画表面坐标系中的包围盒
// 坐标由表现层在每次布局后上报，调度层只读
//
// 注意：包围盒只对采集它的那一帧有效，启动新过渡前必须重新查询
// （见 layout.Registry.Resolve）
type Bounds struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// CenterX 返回包围盒中心X坐标
func (b Bounds) CenterX() float64 {
	return b.X + b.Width/2
}

// CenterY 返回包围盒中心Y坐标
func (b Bounds) CenterY() float64 {
	return b.Y + b.Height/2
}

// Lerp 在两个包围盒之间做线性插值
// t=0 返回 a，t=1 返回 b，角点和尺寸分别独立插值
func Lerp(a, b Bounds, t float64) Bounds {
	return Bounds{
		X:      a.X + (b.X-a.X)*t,
		Y:      a.Y + (b.Y-a.Y)*t,
		Width:  a.Width + (b.Width-a.Width)*t,
		Height: a.Height + (b.Height-a.Height)*t,
	}
}
