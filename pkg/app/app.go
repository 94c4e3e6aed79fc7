// Package app 提供游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：打开设置存储、加载过渡配置、
// 创建场景管理器并进入演示牌局。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/cardduel/pkg/config"
	"github.com/decker502/cardduel/pkg/game"
	"github.com/decker502/cardduel/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// SpeedScale 覆盖动画速度倍率（0 表示使用已保存的设置）
	SpeedScale float64
	// ReducedMotion 本次启动强制跳过全部动画
	ReducedMotion bool
	// TransitionConfigPath 过渡配置文件路径，为空则使用默认路径
	TransitionConfigPath string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settingsManager          *game.SettingsManager
	verbose                  bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 打开设置存储（失败时降级为会话内设置）
	gdataManager, err := gdata.Open(gdata.Config{AppName: "cardduel"})
	if err != nil {
		log.Printf("[App] Warning: settings storage unavailable: %v", err)
		gdataManager = nil
	}
	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("设置加载失败: %w", err)
	}

	// 命令行覆盖只影响本次会话，不写回存储
	if cfg.SpeedScale > 0 {
		settingsManager.SetSpeedScale(cfg.SpeedScale)
	}
	if cfg.ReducedMotion {
		settingsManager.SetReducedMotion(true)
	}

	// 加载过渡配置，文件缺失时回退默认值
	configPath := cfg.TransitionConfigPath
	if configPath == "" {
		configPath = "assets/config/transitions.yaml"
	}
	transitionConfig, err := config.LoadTransitionConfig(configPath)
	if err != nil {
		log.Printf("[App] Warning: %v, using default transition config", err)
		transitionConfig = config.DefaultTransitionConfig()
	}
	log.Printf("[Config] Transition config: move=%dms flash=%dms timeout=%dms",
		transitionConfig.MoveDurationMs, transitionConfig.FlashDurationMs, transitionConfig.BatchTimeoutMs)

	// 创建场景管理器，注册牌局场景工厂
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(matchID string) game.Scene {
		initial, script := scenes.DemoScript()
		return scenes.NewDuelScene(transitionConfig, settingsManager, matchID, "self", initial, script)
	})

	// 进入演示牌局
	sceneManager.LoadMatch("demo")
	log.Printf("[App] Demo match loaded")

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
		verbose:         cfg.Verbose,
	}, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.TableWindowWidth, config.TableWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.TableWindowWidth, config.TableWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	// R 键切换减少动态效果并保存设置
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		current := a.settingsManager.GetSettings().ReducedMotion
		a.settingsManager.SetReducedMotion(!current)
		if err := a.settingsManager.Save(); err != nil {
			log.Printf("[App] Warning: failed to save settings: %v", err)
		}
		log.Printf("[App] ReducedMotion = %v", !current)
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	// 使用线性滤波绘制游戏画面，提高缩放质量
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.TableWindowWidth, config.TableWindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
