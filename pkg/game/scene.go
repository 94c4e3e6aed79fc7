package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (e.g., match table, menu).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Disposable 是一个可选接口，用于需要显式释放资源的场景
// 场景被切换出去时，SceneManager 会调用 Dispose()
// （牌桌场景据此释放其持有的过渡调度器）
type Disposable interface {
	Dispose()
}
