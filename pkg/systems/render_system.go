package systems

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/cardduel/pkg/components"
	"github.com/decker502/cardduel/pkg/ecs"
	"github.com/decker502/cardduel/pkg/types"
)

// 桌面配色
var (
	tableColor     = color.RGBA{R: 24, G: 96, B: 48, A: 255}
	cardFaceColor  = color.RGBA{R: 244, G: 240, B: 228, A: 255}
	cardBackColor  = color.RGBA{R: 42, G: 64, B: 128, A: 255}
	cardBorderMain = color.RGBA{R: 16, G: 16, B: 16, A: 255}
)

// RenderSystem 渲染系统
// 绘制顺序：桌面底色 → 静置卡牌 → 飞行卡牌覆盖层 → 槽位闪烁高亮
type RenderSystem struct {
	entityManager *ecs.EntityManager
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{entityManager: em}
}

// Draw 绘制一帧桌面
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(tableColor)

	s.drawCardSprites(screen)
	s.drawMoveOverlays(screen)
	s.drawFlashOverlays(screen)
}

// drawCardSprites 绘制所有静置卡牌
func (s *RenderSystem) drawCardSprites(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith2[*components.CardSpriteComponent, *components.BoundsComponent](s.entityManager)
	sortEntityIDs(ids)

	for _, id := range ids {
		sprite, ok := ecs.GetComponent[*components.CardSpriteComponent](s.entityManager, id)
		if !ok || sprite.Hidden {
			continue
		}
		bc, ok := ecs.GetComponent[*components.BoundsComponent](s.entityManager, id)
		if !ok || bc.Bounds.Width <= 0 {
			// 槽位尚未测量，本帧跳过
			continue
		}
		drawCard(screen, sprite.Card, bc.Bounds)
	}
}

// drawMoveOverlays 绘制飞行中的卡牌（盖在静置卡牌之上）
func (s *RenderSystem) drawMoveOverlays(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith2[*components.MoveOverlayComponent, *components.BoundsComponent](s.entityManager)
	sortEntityIDs(ids)

	for _, id := range ids {
		mo, ok := ecs.GetComponent[*components.MoveOverlayComponent](s.entityManager, id)
		if !ok {
			continue
		}
		bc, ok := ecs.GetComponent[*components.BoundsComponent](s.entityManager, id)
		if !ok {
			continue
		}
		drawCard(screen, mo.Card, bc.Bounds)
	}
}

// drawFlashOverlays 绘制槽位闪烁高亮（最顶层）
func (s *RenderSystem) drawFlashOverlays(screen *ebiten.Image) {
	ids := ecs.GetEntitiesWith1[*components.FlashOverlayComponent](s.entityManager)
	sortEntityIDs(ids)

	for _, id := range ids {
		fc, ok := ecs.GetComponent[*components.FlashOverlayComponent](s.entityManager, id)
		if !ok || fc.Opacity <= 0 {
			continue
		}
		alpha := uint8(fc.Opacity * 140)
		highlight := color.RGBA{R: 255, G: 236, B: 120, A: alpha}
		for _, b := range fc.Slots {
			vector.DrawFilledRect(screen,
				float32(b.X)-4, float32(b.Y)-4,
				float32(b.Width)+8, float32(b.Height)+8,
				highlight, true)
		}
	}
}

// drawCard 绘制单张卡牌
func drawCard(screen *ebiten.Image, card types.Card, b types.Bounds) {
	fill := cardBackColor
	if card.FaceUp {
		fill = cardFaceColor
	}

	vector.DrawFilledRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.Width), float32(b.Height),
		fill, true)
	vector.StrokeRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.Width), float32(b.Height),
		2, cardBorderMain, true)

	if card.FaceUp {
		label := fmt.Sprintf("%s\n%d", card.ID, card.Rank)
		ebitenutil.DebugPrintAt(screen, label, int(b.X)+6, int(b.Y)+6)
	}
}

// sortEntityIDs 按实体ID排序，保证绘制顺序稳定
func sortEntityIDs(ids []ecs.EntityID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
