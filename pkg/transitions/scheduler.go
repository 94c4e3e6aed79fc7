package transitions

import (
	"log"

	"github.com/decker502/cardduel/pkg/config"
	"github.com/decker502/cardduel/pkg/game"
	"github.com/decker502/cardduel/pkg/layout"
)

// Scheduler 过渡调度器：一局游戏的调度入口
//
// 显式构造、显式作用域：由牌局场景创建并持有，场景退出时调用
// Dispose()。没有进程级单例——新开一局就换一个全新的调度器实例
// （槽位注册表一并重建，牌堆冻结值随之作废）
type Scheduler struct {
	registry  *layout.Registry
	shadow    *game.ShadowCache
	detector  *Detector
	sequencer *Sequencer
	disposed  bool
}

// NewScheduler 创建一局游戏的过渡调度器
//
// 参数：
//   - cfg: 过渡时序配置（nil 使用默认值）
//   - settings: 动画设置（可为 nil，按原速播放）
//   - initial: 开局快照（开局状态不需要动画，直接作为影子基线）
func NewScheduler(cfg *config.TransitionConfig, settings *game.AnimationSettings, initial *game.Snapshot) *Scheduler {
	if cfg == nil {
		cfg = config.DefaultTransitionConfig()
	}

	registry := layout.NewRegistry()
	shadow := game.NewShadowCache(initial)
	detector := NewDetector(cfg)
	sequencer := NewSequencer(cfg, registry, shadow, detector, settings)

	// 开局快照携带的动作记录视为已播报（不回放历史）
	if initial != nil {
		for i := range initial.Players {
			for _, rec := range initial.Players[i].Actions {
				detector.processed[actionKey(initial.Players[i].ID, rec)] = struct{}{}
			}
		}
	}

	return &Scheduler{
		registry:  registry,
		shadow:    shadow,
		detector:  detector,
		sequencer: sequencer,
	}
}

// Registry 返回槽位注册表（表现层布局后向它上报坐标）
func (s *Scheduler) Registry() *layout.Registry {
	return s.registry
}

// Push 接收新的权威快照
func (s *Scheduler) Push(snap *game.Snapshot) {
	s.sequencer.Push(snap)
}

// Update 帧时钟推进
func (s *Scheduler) Update(dt float64) {
	s.sequencer.Update(dt)
}

// Read 返回表现层应当渲染的合成视图
func (s *Scheduler) Read() game.MergedView {
	return s.shadow.Read()
}

// Active 返回当前活动过渡（渲染覆盖层用）
func (s *Scheduler) Active() []*ActiveTransition {
	return s.sequencer.Active()
}

// Draining 返回是否有批次正在排空
func (s *Scheduler) Draining() bool {
	return s.sequencer.State() == BatchDraining
}

// SetOnBatchStarted 注册批次开始回调
func (s *Scheduler) SetOnBatchStarted(fn func()) {
	s.sequencer.OnBatchStarted = fn
}

// SetOnDescriptorStarted 注册描述符开始回调
func (s *Scheduler) SetOnDescriptorStarted(fn func(*Descriptor)) {
	s.sequencer.OnDescriptorStarted = fn
}

// SetOnBatchCompleted 注册批次完成回调
func (s *Scheduler) SetOnBatchCompleted(fn func()) {
	s.sequencer.OnBatchCompleted = fn
}

// Dispose 释放调度器
// 取消在播动画并把影子状态推进到最后已知的权威快照
func (s *Scheduler) Dispose() {
	if s.disposed {
		return
	}
	s.sequencer.Dispose()
	s.registry.Reset()
	s.disposed = true
	log.Printf("[Scheduler] Disposed")
}
