package anim

// Driver 插值驱动器
// 每个活动过渡持有一个驱动器实例，由宿主帧时钟推进进度（0→1）
//
// 生命周期：
//  1. NewDriver 创建（时长、曲线来自过渡配置）
//  2. 每帧 Advance(dt) 推进，Progress() 取缓动后的进度
//  3. 自然走完或被 Cancel 后，完成回调只触发一次，随后丢弃实例
//
// 超时取消时进度直接跳到 1，最后一帧呈现终点状态而不是突然消失
type Driver struct {
	duration   float64 // 总时长（秒）
	curve      Curve
	elapsed    float64
	done       bool
	notified   bool
	onComplete func()
}

// NewDriver 创建插值驱动器
//
// duration <= 0 被视为瞬时完成（第一次 Advance 即结束），
// 避免 elapsed/duration 除零；曲线为 nil 时使用线性曲线
func NewDriver(duration float64, curve Curve) *Driver {
	if curve == nil {
		curve = Linear
	}
	return &Driver{
		duration: duration,
		curve:    curve,
	}
}

// SetOnComplete 设置完成回调（自然完成或取消时触发，至多一次）
func (d *Driver) SetOnComplete(fn func()) {
	d.onComplete = fn
}

// Advance 按帧时钟推进驱动器
//
// 参数：
//   - dt: 距上一帧的时间增量（秒）
//
// 返回：
//   - bool: 本次推进后是否已完成
func (d *Driver) Advance(dt float64) bool {
	if d.done {
		return true
	}

	d.elapsed += dt
	if d.duration <= 0 || d.elapsed >= d.duration {
		d.complete()
	}
	return d.done
}

// Progress 返回缓动后的进度值 [0,1]
func (d *Driver) Progress() float64 {
	if d.done || d.duration <= 0 {
		return 1
	}
	t := d.elapsed / d.duration
	if t > 1 {
		t = 1
	}
	return d.curve(t)
}

// RawProgress 返回未经曲线映射的线性进度 [0,1]
// 闪烁脉冲等非位移映射使用线性进度作为输入
func (d *Driver) RawProgress() float64 {
	if d.done || d.duration <= 0 {
		return 1
	}
	t := d.elapsed / d.duration
	if t > 1 {
		t = 1
	}
	return t
}

// Done 返回驱动器是否已完成
func (d *Driver) Done() bool {
	return d.done
}

// Cancel 取消驱动器（批次超时时调用）
// 进度跳到最终状态并触发完成回调，重复取消无副作用
func (d *Driver) Cancel() {
	d.complete()
}

// complete 标记完成并触发一次回调
func (d *Driver) complete() {
	if d.done {
		return
	}
	d.done = true
	d.elapsed = d.duration

	if d.onComplete != nil && !d.notified {
		d.notified = true
		d.onComplete()
	}
}
