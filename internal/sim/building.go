package sim

import "github.com/magoocas/life-of-a-burrb/internal/core"

// Interior grid dimensions. Every building shares the same room size
// regardless of its outer footprint, so small houses feel bigger inside.
const (
	InteriorCols = 20
	InteriorRows = 16
	TileSize     = 24.0 // pixels per interior tile
)

// Interior entity speeds, px/s.
const (
	ResidentSpeed = 108.0
	MonsterSpeed  = 132.0 // faster than the resident
)

// TileKind is one interior grid cell. Floor, the door tile and sofas are
// walkable; everything else blocks movement.
type TileKind uint8

const (
	TileFloor TileKind = iota
	TileWall
	TileFurniture
	TileDoor
	TileSofa
	TileTV
	TileCloset
	TileBed
)

// Walkable reports whether an entity can stand on this tile.
func (t TileKind) Walkable() bool {
	switch t {
	case TileFloor, TileDoor, TileSofa:
		return true
	default:
		return false
	}
}

// Building is a city building with a procedurally generated interior.
// The interior derives from the building position alone, so a building
// always gets the same room no matter what order generation visits it in.
// Buildings are immutable after generation; what a visit changes (stolen
// chips, opened closets, the resident's mood) lives on the Game.
type Building struct {
	X, Y, W, H float64

	Tiles [InteriorRows][InteriorCols]TileKind

	DoorRow, DoorCol int // interior exit tile

	// Interior points of interest, px inside the room. Zero means the
	// furniture failed to place and the interaction is simply absent.
	ResidentX, ResidentY float64
	ChipsX, ChipsY       float64
	ClosetX, ClosetY     float64
	BedX, BedY           float64
}

// NewBuilding places a building and generates its interior.
func NewBuilding(x, y, w, h float64) *Building {
	b := &Building{X: x, Y: y, W: w, H: h}
	b.generateInterior()
	b.locateFurniture()
	return b
}

// Rect returns the outdoor footprint.
func (b *Building) Rect() core.RectF {
	return core.NewRectF(b.X, b.Y, b.W, b.H)
}

// Door returns the outdoor door rect, 16x24 at the bottom center.
func (b *Building) Door() core.RectF {
	return core.NewRectF(b.X+b.W/2-8, b.Y+b.H-24, 16, 24)
}

// EntryPoint returns the spot on the sidewalk where the door opens.
func (b *Building) EntryPoint() (float64, float64) {
	d := b.Door()
	return d.X + 8, d.Y + 24
}

// InteriorSpawn returns where the player stands after stepping inside:
// just above the interior door tile.
func (b *Building) InteriorSpawn() (float64, float64) {
	x := float64(b.DoorCol)*TileSize + TileSize/2
	y := float64(b.DoorRow-1)*TileSize + TileSize/2
	return x, y
}

// InteriorDoorCenter returns the center of the exit tile.
func (b *Building) InteriorDoorCenter() (float64, float64) {
	x := float64(b.DoorCol)*TileSize + TileSize/2
	y := float64(b.DoorRow)*TileSize + TileSize/2
	return x, y
}

// TileAt returns the tile under an interior position, or a wall when the
// position is outside the grid.
func (b *Building) TileAt(x, y float64) TileKind {
	col := int(x / TileSize)
	row := int(y / TileSize)
	if x < 0 || y < 0 || row < 0 || row >= InteriorRows || col < 0 || col >= InteriorCols {
		return TileWall
	}
	return b.Tiles[row][col]
}

func (b *Building) generateInterior() {
	rng := core.NewRNG(int64(b.X)*1000 + int64(b.Y))

	for row := 0; row < InteriorRows; row++ {
		for col := 0; col < InteriorCols; col++ {
			switch {
			case row == 0 || col == 0 || col == InteriorCols-1:
				b.Tiles[row][col] = TileWall
			case row == InteriorRows-1:
				if col == InteriorCols/2 {
					b.Tiles[row][col] = TileDoor
				} else {
					b.Tiles[row][col] = TileWall
				}
			default:
				b.Tiles[row][col] = TileFloor
			}
		}
	}
	b.DoorRow = InteriorRows - 1
	b.DoorCol = InteriorCols / 2

	// Tables, some two tiles wide.
	numTables := rng.IntRange(1, 3)
	for i := 0; i < numTables; i++ {
		tr := rng.IntRange(3, InteriorRows-4)
		tc := rng.IntRange(3, InteriorCols-4)
		if b.Tiles[tr][tc] == TileFloor {
			b.Tiles[tr][tc] = TileFurniture
			if rng.Float64() > 0.5 && tc+1 < InteriorCols-1 && b.Tiles[tr][tc+1] == TileFloor {
				b.Tiles[tr][tc+1] = TileFurniture
			}
		}
	}

	// Shelves along the top, left and right walls.
	numShelves := rng.IntRange(2, 5)
	for i := 0; i < numShelves; i++ {
		switch rng.Intn(3) {
		case 0:
			sc := rng.IntRange(2, InteriorCols-3)
			if b.Tiles[1][sc] == TileFloor {
				b.Tiles[1][sc] = TileFurniture
			}
		case 1:
			sr := rng.IntRange(2, InteriorRows-3)
			if b.Tiles[sr][1] == TileFloor {
				b.Tiles[sr][1] = TileFurniture
			}
		case 2:
			sr := rng.IntRange(2, InteriorRows-3)
			if b.Tiles[sr][InteriorCols-2] == TileFloor {
				b.Tiles[sr][InteriorCols-2] = TileFurniture
			}
		}
	}

	// Sometimes a counter: a horizontal run of furniture.
	if rng.Float64() > 0.4 {
		counterRow := rng.IntRange(4, InteriorRows-5)
		counterStart := rng.IntRange(3, InteriorCols/2-1)
		counterLen := rng.IntRange(3, 6)
		for c := counterStart; c < counterStart+counterLen && c < InteriorCols-2; c++ {
			if b.Tiles[counterRow][c] == TileFloor {
				b.Tiles[counterRow][c] = TileFurniture
			}
		}
	}

	// Living room: a TV against the top wall, a two-tile sofa facing it.
	// The TV overwrites any shelf in its spot; the sofa yields to whatever
	// landed there first.
	tvCol := InteriorCols - 5
	b.Tiles[1][tvCol] = TileTV
	sofaRow, sofaCol := 4, tvCol
	if b.Tiles[sofaRow][sofaCol] == TileFloor {
		b.Tiles[sofaRow][sofaCol] = TileSofa
	}
	if sofaCol+1 < InteriorCols-1 && b.Tiles[sofaRow][sofaCol+1] == TileFloor {
		b.Tiles[sofaRow][sofaCol+1] = TileSofa
	}

	// A closet against the left wall, falling back to the right.
	closetRow := rng.IntRange(3, InteriorRows-4)
	closetCol := 1
	if b.Tiles[closetRow][closetCol] != TileFloor {
		closetCol = InteriorCols - 2
	}
	if b.Tiles[closetRow][closetCol] == TileFloor {
		b.Tiles[closetRow][closetCol] = TileCloset
	}

	// A bed against the right wall, falling back to the left.
	bedRow := rng.IntRange(3, InteriorRows-4)
	bedCol := InteriorCols - 2
	if b.Tiles[bedRow][bedCol] != TileFloor {
		bedCol = 1
	}
	if b.Tiles[bedRow][bedCol] == TileFloor {
		b.Tiles[bedRow][bedCol] = TileBed
	}
}

// locateFurniture records pixel positions for the interactive furniture.
// The resident sits on the first sofa tile with the chip bag one tile over.
func (b *Building) locateFurniture() {
	for row := 0; row < InteriorRows; row++ {
		for col := 0; col < InteriorCols; col++ {
			cx := float64(col)*TileSize + TileSize/2
			cy := float64(row)*TileSize + TileSize/2
			switch b.Tiles[row][col] {
			case TileSofa:
				if b.ResidentX == 0 {
					b.ResidentX = cx
					b.ResidentY = cy
					b.ChipsX = float64(col+1)*TileSize + TileSize/2
					b.ChipsY = cy
				}
			case TileCloset:
				if b.ClosetX == 0 {
					b.ClosetX = cx
					b.ClosetY = cy
				}
			case TileBed:
				if b.BedX == 0 {
					b.BedX = cx
					b.BedY = cy
				}
			}
		}
	}
}
