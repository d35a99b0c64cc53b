package sim

import "github.com/magoocas/life-of-a-burrb/internal/core"

// Interaction distances, px.
const (
	doorEnterRange   = 30.0 // outdoor door interaction
	interiorExitDist = TileSize * 1.5
)

// CanMoveTo reports whether the player can stand at a world position.
// The test uses the burrb's foot box, not its full sprite, so the body can
// overlap a building face while the feet stay on the sidewalk.
func CanMoveTo(x, y float64, buildings []*Building) bool {
	if x < 20 || x > WorldW-20 || y < 20 || y > WorldH-20 {
		return false
	}
	feet := core.NewRectF(x-10, y+5, 20, 14)
	for _, b := range buildings {
		if feet.Intersects(b.Rect()) {
			return false
		}
	}
	return true
}

// CanMoveInterior reports whether a position inside a building is standable.
// All four corners of the entity box must land on walkable tiles.
func CanMoveInterior(b *Building, x, y float64) bool {
	for _, c := range [4][2]float64{
		{x - 6, y - 6},
		{x + 6, y - 6},
		{x - 6, y + 6},
		{x + 6, y + 6},
	} {
		if !b.TileAt(c[0], c[1]).Walkable() {
			return false
		}
	}
	return true
}

// NearbyDoorBuilding returns the index of the building whose door is within
// interaction range of the given position, or -1 when none is.
func NearbyDoorBuilding(x, y float64, buildings []*Building) int {
	for i, b := range buildings {
		ex, ey := b.EntryPoint()
		if core.Dist(x, y, ex, ey) < doorEnterRange {
			return i
		}
	}
	return -1
}

// AtInteriorDoor reports whether an interior position is close enough to
// the exit tile to leave.
func AtInteriorDoor(b *Building, x, y float64) bool {
	dx, dy := b.InteriorDoorCenter()
	return core.Dist(x, y, dx, dy) < interiorExitDist
}

// ResolveMove applies a desired displacement with per-axis sliding: the
// full displacement is tried first, then the horizontal component alone,
// then the vertical component alone, before giving up and staying put.
// The predicate decides standability, so the same resolver serves both the
// open world and building interiors.
func ResolveMove(x, y, dx, dy float64, can func(x, y float64) bool) (float64, float64) {
	if dx == 0 && dy == 0 {
		return x, y
	}
	if can(x+dx, y+dy) {
		return x + dx, y + dy
	}
	if dx != 0 && can(x+dx, y) {
		return x + dx, y
	}
	if dy != 0 && can(x, y+dy) {
		return x, y + dy
	}
	return x, y
}
