package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/cardduel/pkg/app"
	"github.com/decker502/cardduel/pkg/config"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	speed := flag.Float64("speed", 0, "动画速度倍率（0.25~4.0，0 使用已保存设置）")
	reducedMotion := flag.Bool("reduced-motion", false, "跳过全部动画，状态瞬时应用")
	flag.Parse()

	application, err := app.NewApp(app.Config{
		Verbose:       *verbose,
		SpeedScale:    *speed,
		ReducedMotion: *reducedMotion,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.TableWindowWidth, config.TableWindowHeight)
	ebiten.SetWindowTitle("卡牌对决")

	if err := ebiten.RunGame(application); err != nil {
		log.Fatal(err)
	}
}
