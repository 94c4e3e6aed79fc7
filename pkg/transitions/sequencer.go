package transitions

import (
	"log"

	"github.com/decker502/cardduel/pkg/anim"
	"github.com/decker502/cardduel/pkg/config"
	"github.com/decker502/cardduel/pkg/game"
	"github.com/decker502/cardduel/pkg/layout"
	"github.com/decker502/cardduel/pkg/types"
)

// BatchState 批次状态机的状态
type BatchState int

const (
	// BatchIdle 空闲：没有正在播放的批次
	BatchIdle BatchState = iota
	// BatchDraining 排空中：按序执行当前批次的描述符
	BatchDraining
)

// ActiveTransition 一个正在播放的过渡
// 渲染侧每帧读取它计算覆盖层的位置和透明度
type ActiveTransition struct {
	// Desc 所属描述符
	Desc *Descriptor

	// From/To 执行开始时解析出的起止包围盒（仅移动类）
	From types.Bounds
	To   types.Bounds

	// FlashBounds 闪烁槽位的包围盒（仅 KindFlash）
	FlashBounds []types.Bounds

	driver *anim.Driver
}

// Bounds 返回当前插值后的包围盒（移动类）
func (a *ActiveTransition) Bounds() types.Bounds {
	return types.Lerp(a.From, a.To, a.driver.Progress())
}

// Opacity 返回当前闪烁透明度（KindFlash）
func (a *ActiveTransition) Opacity() float64 {
	return anim.FlashOpacity(a.driver.RawProgress())
}

// Progress 返回缓动后的进度 [0,1]
func (a *ActiveTransition) Progress() float64 {
	return a.driver.Progress()
}

// Sequencer 过渡队列与时序器
//
// 每个批次的状态机：Idle → Draining → Idle。批内描述符严格顺序执行
// （等待前一个完成再开始下一个），唯一例外是 Flash——它是非阻塞
// 覆盖层，与普通移动并发播放。
//
// 合并策略（latest-wins）：排空期间到达的新快照只缓存最新一个，
// 旧缓存被替换而不是排队；突发更新下中间状态允许被视觉跳过，
// 但最终状态保证恰好渲染一次。
//
// 超时兜底：批级计时器（默认4秒，在每个描述符开始时重置）触发后
// 强制取消所有活动驱动器并立即完成批次，影子状态绝不会被卡死
type Sequencer struct {
	cfg      *config.TransitionConfig
	registry *layout.Registry
	shadow   *game.ShadowCache
	detector *Detector
	settings *game.AnimationSettings // 可为 nil（无设置时按原速播放）

	state          BatchState
	plan           []*Descriptor // 当前批次展开后的执行计划
	nextIndex      int
	active         []*ActiveTransition
	blocking       *ActiveTransition // 当前阻塞执行的过渡（nil 表示无）
	batchSnapshot  *game.Snapshot    // 触发当前批次的快照
	pending        *game.Snapshot    // latest-wins 缓存的下一个快照
	timeoutElapsed float64
	disposed       bool

	// 观察者回调（表现层据此决定何时重绘、绘制哪种覆盖层）

	OnBatchStarted      func()
	OnDescriptorStarted func(*Descriptor)
	OnBatchCompleted    func()
}

// NewSequencer 创建过渡时序器
func NewSequencer(cfg *config.TransitionConfig, registry *layout.Registry, shadow *game.ShadowCache, detector *Detector, settings *game.AnimationSettings) *Sequencer {
	if cfg == nil {
		cfg = config.DefaultTransitionConfig()
	}
	return &Sequencer{
		cfg:      cfg,
		registry: registry,
		shadow:   shadow,
		detector: detector,
		settings: settings,
	}
}

// State 返回批次状态机的当前状态
func (s *Sequencer) State() BatchState {
	return s.state
}

// Active 返回当前活动过渡的快照副本（渲染侧只读）
func (s *Sequencer) Active() []*ActiveTransition {
	return append([]*ActiveTransition(nil), s.active...)
}

// Push 接收一个新的权威快照
//
// 实时字段立即对渲染可见（影子缓存的实时引用先行更新）。
// 空闲时立即开始新批次；排空中则缓存（替换旧缓存，绝不排队加深）
func (s *Sequencer) Push(snap *game.Snapshot) {
	if s.disposed || snap == nil {
		return
	}

	s.shadow.SetLive(snap)

	if s.state == BatchDraining {
		if s.pending != nil {
			log.Printf("[Sequencer] Coalescing: replacing cached snapshot (intermediate state skipped)")
		}
		s.pending = snap
		return
	}

	s.startBatch(snap)
}

// Update 帧时钟推进
// 这是唯一推进批次执行的入口，必须与 Push 在同一逻辑线程调用
func (s *Sequencer) Update(dt float64) {
	if s.disposed || s.state != BatchDraining {
		return
	}

	s.timeoutElapsed += dt

	// 推进所有活动驱动器，收割已完成的过渡
	remaining := s.active[:0]
	for _, at := range s.active {
		if at.driver.Advance(dt) {
			if at == s.blocking {
				s.blocking = nil
			}
			continue
		}
		remaining = append(remaining, at)
	}
	s.active = remaining

	// 阻塞位空出后继续执行计划
	if s.blocking == nil {
		s.advancePlan()
	}

	// 超时兜底：强制完成批次，权威状态立即可见
	if s.state == BatchDraining && s.timeoutElapsed >= s.cfg.BatchTimeout() {
		log.Printf("[Sequencer] Warning: batch timeout after %.1fs, forcing completion (%d transition(s) cancelled)",
			s.cfg.BatchTimeout(), len(s.active))
		s.cancelActive()
		s.completeBatch()
		return
	}

	// 计划执行完且无活动过渡：批次自然完成
	if s.state == BatchDraining && s.nextIndex >= len(s.plan) && len(s.active) == 0 {
		s.completeBatch()
	}
}

// Dispose 释放时序器
// 取消所有活动驱动器并把影子状态推进到最后已知的权威快照
func (s *Sequencer) Dispose() {
	if s.disposed {
		return
	}
	if s.state == BatchDraining {
		s.cancelActive()
		if s.batchSnapshot != nil {
			s.shadow.Update(s.batchSnapshot)
		}
	}
	if s.pending != nil {
		s.shadow.Update(s.pending)
		s.pending = nil
	}
	s.state = BatchIdle
	s.plan = nil
	s.active = nil
	s.blocking = nil
	s.disposed = true
}

// startBatch 从快照开始一个新批次
func (s *Sequencer) startBatch(snap *game.Snapshot) {
	descriptors := s.detector.Detect(snap)

	// 展开复合描述符，得到最终执行计划
	var plan []*Descriptor
	for _, d := range descriptors {
		plan = append(plan, d.Expand(s.cfg.FlashDurationMs)...)
	}

	// 减少动态效果：跳过全部动画，瞬时应用
	if s.settings != nil && s.settings.ReducedMotion {
		plan = nil
	}

	if len(plan) == 0 {
		// 无事可播：直接落影子状态，不发批次事件
		s.shadow.Update(snap)
		return
	}

	s.state = BatchDraining
	s.batchSnapshot = snap
	s.plan = plan
	s.nextIndex = 0
	s.active = nil
	s.blocking = nil
	s.timeoutElapsed = 0

	if s.OnBatchStarted != nil {
		s.OnBatchStarted()
	}

	s.advancePlan()
}

// advancePlan 顺序启动计划中的描述符，直到遇到阻塞过渡或计划耗尽
// Flash 启动后不占用阻塞位，后续描述符立即跟上（并发覆盖层）
func (s *Sequencer) advancePlan() {
	for s.nextIndex < len(s.plan) && s.blocking == nil {
		desc := s.plan[s.nextIndex]
		s.nextIndex++
		s.startDescriptor(desc)
	}
}

// startDescriptor 启动单个描述符
// 包围盒在此刻解析（绝不使用创建时的过期值）；解析失败按
// "无法动画"降级：跳过该描述符，批次继续，绝不阻塞
func (s *Sequencer) startDescriptor(desc *Descriptor) {
	at := &ActiveTransition{Desc: desc}

	if desc.Kind == KindFlash {
		for _, ref := range desc.FlashSlots {
			b, ok := s.registry.Resolve(ref)
			if !ok {
				log.Printf("[Sequencer] Warning: bounds missing for flash slot %s, dropping %s", ref, desc)
				return
			}
			at.FlashBounds = append(at.FlashBounds, b)
		}
	} else {
		from, ok := s.registry.Resolve(desc.Source)
		if !ok {
			log.Printf("[Sequencer] Warning: bounds missing for source %s, dropping %s (state applied instantly)", desc.Source, desc)
			return
		}
		to, ok := s.registry.Resolve(desc.Dest)
		if !ok {
			log.Printf("[Sequencer] Warning: bounds missing for dest %s, dropping %s (state applied instantly)", desc.Dest, desc)
			return
		}
		at.From = from
		at.To = to
	}

	at.driver = anim.NewDriver(s.scaledDuration(desc.DurationMs), anim.CurveByName(desc.Curve))
	s.active = append(s.active, at)
	if desc.Kind != KindFlash {
		s.blocking = at
	}

	// 批级超时计时器在每个描述符开始时重置
	s.timeoutElapsed = 0

	if s.OnDescriptorStarted != nil {
		s.OnDescriptorStarted(desc)
	}
}

// completeBatch 完成当前批次（自然完成或超时强制）
// 影子状态切换为触发本批次的快照；若排空期间缓存了更新的快照，
// 立即以它开始下一个批次
func (s *Sequencer) completeBatch() {
	s.shadow.Update(s.batchSnapshot)
	s.state = BatchIdle
	s.plan = nil
	s.nextIndex = 0
	s.active = nil
	s.blocking = nil
	s.batchSnapshot = nil

	if s.OnBatchCompleted != nil {
		s.OnBatchCompleted()
	}

	if s.pending != nil {
		next := s.pending
		s.pending = nil
		s.startBatch(next)
	}
}

// cancelActive 取消所有活动驱动器
// 被取消的驱动器进度跳到终点，最后一帧呈现落定状态
func (s *Sequencer) cancelActive() {
	for _, at := range s.active {
		at.driver.Cancel()
	}
	s.active = nil
	s.blocking = nil
}

// scaledDuration 应用动画速度倍率，返回时长（秒）
func (s *Sequencer) scaledDuration(durationMs int) float64 {
	d := float64(durationMs) / 1000.0
	if s.settings != nil && s.settings.SpeedScale > 0 {
		d /= s.settings.SpeedScale
	}
	return d
}
