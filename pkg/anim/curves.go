// Package anim 提供插值驱动器和缓动曲线
// 驱动器由宿主帧时钟推进（每帧 Advance(dt)），产出 0→1 的进度值；
// 渲染侧把进度映射为插值后的位置/尺寸/透明度
package anim

// Curve 缓动曲线：把线性时间进度映射为缓动后的进度
// 定义域和值域都是 [0,1]，必须满足 f(0)=0、f(1)=1
type Curve func(t float64) float64

// Linear 线性曲线
func Linear(t float64) float64 {
	return t
}

// EaseInQuad 二次缓入
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutQuad 二次缓出
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}

// EaseInOutQuad 二次缓入缓出
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// CurveByName 根据配置中的曲线名称返回曲线函数
// 未知名称回退为 EaseInOutQuad（与默认配置一致）
func CurveByName(name string) Curve {
	switch name {
	case "linear":
		return Linear
	case "easeInQuad":
		return EaseInQuad
	case "easeOutQuad":
		return EaseOutQuad
	case "easeInOutQuad":
		return EaseInOutQuad
	default:
		return EaseInOutQuad
	}
}

// 三脉冲闪烁的单脉冲内部时间划分
const (
	flashFadeInPortion  = 0.3 // 脉冲前 30% 淡入
	flashHoldPortion    = 0.4 // 中间 40% 保持
	flashFadeOutPortion = 0.3 // 后 30% 淡出
)

// FlashOpacity 三脉冲闪烁透明度函数
// 把 [0,1] 切成不相交的三等份，每份内执行一次对称的淡入/保持/淡出，
// 产生三次高亮脉冲；t 超出 [0,1] 时返回 0
func FlashOpacity(t float64) float64 {
	if t < 0 || t >= 1 {
		return 0
	}

	// 映射到单个脉冲的局部进度 [0,1)
	u := t * 3
	for u >= 1 {
		u -= 1
	}

	switch {
	case u < flashFadeInPortion:
		return u / flashFadeInPortion
	case u < flashFadeInPortion+flashHoldPortion:
		return 1
	default:
		return (1 - u) / flashFadeOutPortion
	}
}
