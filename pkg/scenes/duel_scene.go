package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/decker502/cardduel/pkg/config"
	"github.com/decker502/cardduel/pkg/ecs"
	"github.com/decker502/cardduel/pkg/game"
	"github.com/decker502/cardduel/pkg/systems"
	"github.com/decker502/cardduel/pkg/transitions"
)

// DuelScene 牌局场景
//
// 每局牌对应一个场景实例：场景创建时构造自己的过渡调度器，
// 场景退出时 Dispose() 一并释放（槽位注册表随之作废，
// 下一局重新测量、重新冻结牌堆坐标）
type DuelScene struct {
	matchID string
	selfID  string

	scheduler       *transitions.Scheduler
	settingsManager *game.SettingsManager

	entityManager *ecs.EntityManager
	layoutSystem  *systems.TableLayoutSystem
	overlaySystem *systems.OverlaySystem
	renderSystem  *systems.RenderSystem

	// 状态源（演示/验证模式下为脚本，联机模式下由外部 Push）
	script *ScriptedMatch

	// HUD 显示用：当前批次里最近启动的过渡种类
	lastDescriptor string
}

// NewDuelScene 创建牌局场景
// script 可为 nil，此时快照完全由外部通过 PushSnapshot 注入
func NewDuelScene(cfg *config.TransitionConfig, settingsManager *game.SettingsManager, matchID, selfID string, initial *game.Snapshot, script *ScriptedMatch) *DuelScene {
	var settings *game.AnimationSettings
	if settingsManager != nil {
		settings = settingsManager.GetSettings()
	}

	scheduler := transitions.NewScheduler(cfg, settings, initial)

	em := ecs.NewEntityManager()
	scene := &DuelScene{
		matchID:         matchID,
		selfID:          selfID,
		scheduler:       scheduler,
		settingsManager: settingsManager,
		entityManager:   em,
		layoutSystem:    systems.NewTableLayoutSystem(em, scheduler, cfg, selfID),
		overlaySystem:   systems.NewOverlaySystem(em, scheduler),
		renderSystem:    systems.NewRenderSystem(em),
		script:          script,
	}

	scheduler.SetOnBatchStarted(func() {
		log.Printf("[DuelScene] Transition batch started (match %s)", matchID)
	})
	scheduler.SetOnDescriptorStarted(func(d *transitions.Descriptor) {
		scene.lastDescriptor = d.Kind.String()
		log.Printf("[DuelScene] Transition started: %s", d)
	})
	scheduler.SetOnBatchCompleted(func() {
		scene.lastDescriptor = ""
		log.Printf("[DuelScene] Transition batch completed (match %s)", matchID)
	})

	// 开局先跑一遍布局，槽位坐标在第一次推送之前就位
	scene.layoutSystem.Update(0)

	log.Printf("[DuelScene] Match %s started (self=%s)", matchID, selfID)
	return scene
}

// PushSnapshot 注入一个权威快照（联机模式的入口）
func (s *DuelScene) PushSnapshot(snap *game.Snapshot) {
	s.scheduler.Push(snap)
}

// Update 更新场景逻辑
func (s *DuelScene) Update(deltaTime float64) {
	if s.script != nil {
		for _, snap := range s.script.Due(deltaTime) {
			s.scheduler.Push(snap)
		}
	}

	s.scheduler.Update(deltaTime)
	s.layoutSystem.Update(deltaTime)
	s.overlaySystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制场景
func (s *DuelScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen)
	s.drawHUD(screen)
}

// drawHUD 绘制回合信息
// 回合归属、倒计时、比分都是实时字段，动画播放期间照常刷新
func (s *DuelScene) drawHUD(screen *ebiten.Image) {
	view := s.scheduler.Read()

	hud := fmt.Sprintf("match: %s  phase: %s\nturn: %s  %.0fs left",
		s.matchID, view.Phase, view.CurrentPlayerID, view.TurnSecondsLeft)
	if len(view.Scores) > 0 {
		hud += fmt.Sprintf("\nscore: self %d / opponent %d", view.Scores["self"], view.Scores["opponent"])
	}
	if s.scheduler.Draining() {
		hud += "\nanimating: " + s.lastDescriptor
	}
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)
}

// Dispose 释放场景持有的资源
func (s *DuelScene) Dispose() {
	s.scheduler.Dispose()
	log.Printf("[DuelScene] Match %s disposed", s.matchID)
}
