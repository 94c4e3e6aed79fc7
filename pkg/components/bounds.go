package components

import (
	"github.com/decker502/cardduel/pkg/types"
)

// BoundsComponent 实体在屏幕上的包围盒
type BoundsComponent struct {
	Bounds types.Bounds
}
