// Package layout 维护逻辑槽位到屏幕包围盒的注册表
//
// 表现层在每次布局后调用 ReportBounds 推送最新坐标（推模式，
// 调度层不反向探测任何 UI 框架的渲染对象）；检测器和执行器
// 只在启动过渡的那一刻调用 Resolve 取最新值，绝不缓存跨帧的结果
package layout

import (
	"github.com/decker502/cardduel/pkg/types"
)

// Registry 槽位位置注册表
//
// 写入方：表现层（每次布局后整值替换，读方不会看到半更新的包围盒）
// 读取方：过渡检测器和执行器
//
// 牌堆槽位（pile:draw / pile:discard）在开局后第一次上报时冻结，
// 此后布局抖动不影响它们的解析结果
type Registry struct {
	registered map[string]struct{}
	bounds     map[string]types.Bounds
	frozen     map[string]types.Bounds
}

// NewRegistry 创建槽位注册表
// 每局游戏创建新实例（牌堆冻结值随之作废）
func NewRegistry() *Registry {
	return &Registry{
		registered: make(map[string]struct{}),
		bounds:     make(map[string]types.Bounds),
		frozen:     make(map[string]types.Bounds),
	}
}

// RegisterSlot 预注册一个槽位键
// 注册本身不提供坐标，只声明槽位存在；未上报过坐标的槽位解析仍返回未命中
func (r *Registry) RegisterSlot(key string) {
	r.registered[key] = struct{}{}
}

// IsRegistered 查询槽位键是否已注册
func (r *Registry) IsRegistered(key string) bool {
	_, ok := r.registered[key]
	return ok
}

// ReportBounds 上报一个槽位的最新包围盒
// 表现层在每次布局完成后调用；每个键整值替换
func (r *Registry) ReportBounds(key string, b types.Bounds) {
	r.bounds[key] = b

	// 牌堆槽位位置整局固定：第一次上报即冻结
	if isPileKey(key) {
		if _, done := r.frozen[key]; !done {
			r.frozen[key] = b
		}
	}
}

// Resolve 解析槽位引用为当前包围盒
//
// 返回：
//   - types.Bounds: 槽位包围盒
//   - bool: false 表示槽位从未被测量（被滚动隐藏或尚未布局）
//
// 未命中不是错误：调用方必须把它当作"此过渡无法动画"，
// 降级为瞬时状态切换，绝不能因此崩溃或阻塞批次
func (r *Registry) Resolve(ref types.SlotRef) (types.Bounds, bool) {
	key := ref.Key()

	// 牌堆读冻结值，避免瞬时布局抖动影响
	if ref.IsPile() {
		if b, ok := r.frozen[key]; ok {
			return b, true
		}
		return types.Bounds{}, false
	}

	b, ok := r.bounds[key]
	return b, ok
}

// ResolveKey 按原始键解析（调试与测试辅助）
func (r *Registry) ResolveKey(key string) (types.Bounds, bool) {
	if isPileKey(key) {
		b, ok := r.frozen[key]
		return b, ok
	}
	b, ok := r.bounds[key]
	return b, ok
}

// Reset 清空注册表（开始新一局时调用，解除牌堆冻结）
func (r *Registry) Reset() {
	r.registered = make(map[string]struct{})
	r.bounds = make(map[string]types.Bounds)
	r.frozen = make(map[string]types.Bounds)
}

// isPileKey 判断键是否属于位置固定的牌堆槽位
func isPileKey(key string) bool {
	return key == types.DrawPileRef().Key() || key == types.DiscardPileRef().Key()
}
