package sim

import (
	"fmt"
	"math"
	"strings"

	"github.com/magoocas/life-of-a-burrb/internal/core"
)

// Viewport cell size in world pixels. Terminal cells are roughly twice as
// tall as wide, so the vertical scale doubles the horizontal one.
const (
	viewScaleX = 16.0
	viewScaleY = 32.0
	hudRows    = 2
)

// Render draws the session: HUD on top, then the world viewport or the
// room the player is standing in, then transient overlays.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.player.Indoors() {
		g.renderInterior(dst)
	} else {
		g.renderWorld(dst)
	}
	g.renderHUD(dst)
	g.renderOverlays(dst)
}

func (g *Game) renderWorld(dst *core.Screen) {
	w := dst.Width()
	h := dst.Height() - hudRows
	if w <= 0 || h <= 0 {
		return
	}

	camX, camY := g.camX, g.camY
	if g.abilities.QuakeShake > 0 {
		camX += math.Sin(float64(g.tickCount)*1.7) * 6
		camY += math.Cos(float64(g.tickCount)*2.3) * 6
	}
	originX := camX - float64(w)/2*viewScaleX
	originY := camY - float64(h)/2*viewScaleY

	toCell := func(x, y float64) (int, int) {
		return int(math.Floor((x - originX) / viewScaleX)),
			hudRows + int(math.Floor((y-originY)/viewScaleY))
	}
	viewRect := core.NewRectF(originX-60, originY-60,
		float64(w)*viewScaleX+120, float64(h)*viewScaleY+120)

	// Ground pass.
	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			wx := originX + (float64(cx)+0.5)*viewScaleX
			wy := originY + (float64(cy)+0.5)*viewScaleY
			if r, col := groundGlyph(wx, wy); r != ' ' {
				dst.SetCell(cx, cy+hudRows, r, col)
			}
		}
	}

	// Parks overwrite the city ground.
	for _, park := range g.world.Parks {
		if !park.Intersects(viewRect) {
			continue
		}
		x0, y0 := toCell(park.X, park.Y)
		x1, y1 := toCell(park.Right(), park.Bottom())
		for cy := y0; cy <= y1; cy++ {
			for cx := x0; cx <= x1; cx++ {
				if cy >= hudRows {
					dst.SetCell(cx, cy, '"', core.ColorDarkGreen)
				}
			}
		}
	}

	for _, obj := range g.world.Objects {
		if !viewRect.Contains(obj.X, obj.Y) {
			continue
		}
		cx, cy := toCell(obj.X, obj.Y)
		r, col := objectGlyph(obj.Kind)
		dst.SetCell(cx, cy, r, col)
	}

	for i := range g.collectibles {
		c := &g.collectibles[i]
		if c.Collected || !viewRect.Contains(c.X, c.Y) {
			continue
		}
		cx, cy := toCell(c.X, c.Y)
		r, col := collectibleGlyph(c.Currency)
		dst.SetCell(cx, cy, r, col)
	}

	for _, b := range g.world.Buildings {
		if !b.Rect().Intersects(viewRect) {
			continue
		}
		x0, y0 := toCell(b.X, b.Y)
		x1, y1 := toCell(b.X+b.W, b.Y+b.H)
		for cy := y0; cy <= y1; cy++ {
			for cx := x0; cx <= x1; cx++ {
				if cy >= hudRows {
					dst.SetCell(cx, cy, '█', core.ColorBrown)
				}
			}
		}
		door := b.Door()
		dx, dy := toCell(door.X+door.W/2, door.Y+door.H/2)
		dst.SetCell(dx, dy, '▯', core.ColorYellow)
	}

	m := g.abilities
	for _, seg := range m.FireTrail {
		cx, cy := toCell(seg.X, seg.Y)
		dst.SetCell(cx, cy, '^', core.ColorBrightRed)
	}
	for _, seg := range m.IceWalls {
		cx, cy := toCell(seg.X, seg.Y)
		dst.SetCell(cx, cy, '#', core.ColorBrightCyan)
	}
	for _, pc := range m.PoisonClouds {
		cx, cy := toCell(pc.X, pc.Y)
		dst.SetCell(cx, cy, '§', core.ColorGreen)
		dst.SetCell(cx-1, cy, '░', core.ColorGreen)
		dst.SetCell(cx+1, cy, '░', core.ColorGreen)
	}

	for i := range g.cars {
		c := &g.cars[i]
		if !viewRect.Contains(c.X, c.Y) {
			continue
		}
		cx, cy := toCell(c.X, c.Y)
		col := core.ColorBrightBlue
		if c.Speed == 0 {
			col = core.ColorGray
		}
		dst.SetCell(cx, cy, '■', col)
	}

	for i := range g.npcs {
		n := &g.npcs[i]
		if !viewRect.Contains(n.X, n.Y) {
			continue
		}
		cx, cy := toCell(n.X, n.Y)
		r, col := npcGlyph(n)
		dst.SetCell(cx, cy, r, col)
	}

	if m.Monster.Active {
		cx, cy := toCell(m.Monster.X, m.Monster.Y)
		dst.SetCell(cx, cy, 'W', core.ColorBrightGreen)
	}
	for _, can := range m.SodaCans {
		cx, cy := toCell(can.X, can.Y)
		dst.SetCell(cx, cy, 'c', core.ColorBrightYellow)
	}

	g.renderPlayer(dst, toCell)
}

func (g *Game) renderPlayer(dst *core.Screen, toCell func(x, y float64) (int, int)) {
	p := &g.player
	m := g.abilities
	cx, cy := toCell(p.X, p.Y)

	// The tongue lies flat between mouth and tip.
	if p.Tongue.Active {
		steps := int(p.Tongue.Length / viewScaleX)
		dir := 1
		if p.Tongue.Angle > 1 { // pi means left
			dir = -1
		}
		for i := 1; i <= steps; i++ {
			dst.SetCell(cx+i*dir, cy, '─', core.ColorPink)
		}
		dst.SetCell(cx+(steps+1)*dir, cy, '●', core.ColorPink)
	}

	lift := int(m.BounceHeight / viewScaleY * 2)
	if lift > 0 {
		dst.SetCell(cx, cy, '·', core.ColorGray) // shadow on the ground
	}

	glyph := '@'
	col := core.ColorBrightYellow
	switch {
	case p.DeathTimer > 0:
		glyph, col = '%', core.ColorGray
	case m.IsActive(AbilityInvisibility) || m.IsActive(AbilityCamouflage):
		glyph, col = '∙', core.ColorGray
	case p.HurtTimer > 0:
		col = core.ColorBrightRed
	}
	dst.SetCell(cx, cy-lift, glyph, col)
	if m.GiantScale > 1.75 {
		dst.SetCell(cx-1, cy-lift, '(', col)
		dst.SetCell(cx+1, cy-lift, ')', col)
	}
}

func (g *Game) renderInterior(dst *core.Screen) {
	b := g.world.Buildings[g.player.Building]
	st := &g.interiors[g.player.Building]

	offX := (dst.Width() - InteriorCols) / 2
	offY := hudRows + (dst.Height()-hudRows-InteriorRows)/2
	if offY < hudRows {
		offY = hudRows
	}

	for row := 0; row < InteriorRows; row++ {
		for col := 0; col < InteriorCols; col++ {
			r, c := tileGlyph(b.Tiles[row][col])
			dst.SetCell(offX+col, offY+row, r, c)
		}
	}

	tile := func(x, y float64) (int, int) {
		return offX + int(x/TileSize), offY + int(y/TileSize)
	}

	if !st.ChipsStolen && b.ChipsX > 0 {
		cx, cy := tile(b.ChipsX, b.ChipsY)
		dst.SetCell(cx, cy, '*', core.ColorBrightYellow)
	}
	if st.ResidentX > 0 || st.ResidentY > 0 {
		cx, cy := tile(st.ResidentX, st.ResidentY)
		col := core.ColorWhite
		if st.ResidentAngry {
			col = core.ColorBrightRed
		}
		dst.SetCell(cx, cy, 'R', col)
	}
	if st.MonsterActive {
		cx, cy := tile(st.MonsterX, st.MonsterY)
		dst.SetCell(cx, cy, 'M', core.ColorBrightGreen)
	}

	px, py := tile(g.player.InteriorX, g.player.InteriorY)
	col := core.ColorBrightYellow
	if g.abilities.PlayerHidden() {
		col = core.ColorGray
	}
	dst.SetCell(px, py, '@', col)
}

func (g *Game) renderHUD(dst *core.Screen) {
	p := &g.player

	hearts := strings.Repeat("♥", core.Max(0, p.Health)) +
		strings.Repeat("♡", core.Max(0, g.cfg.Gameplay.MaxHealth-p.Health))
	dst.DrawTextColored(0, 0, hearts, core.ColorBrightRed)

	where := BiomeAt(p.X, p.Y).String()
	if p.Indoors() {
		where = "inside"
	}
	status := fmt.Sprintf("%s  %s", where, formatClock(g.elapsed))
	dst.DrawTextColored(dst.Width()-len(status), 0, status, core.ColorWhite)

	x := 0
	for c := Currency(0); c < currencyCount; c++ {
		seg := fmt.Sprintf("%s %d", c.String(), p.Wallet[c])
		dst.DrawTextColored(x, 1, seg, currencyColor(c))
		x += len(seg) + 2
	}

	// Running ability windows on the right of the wallet row.
	var actives []string
	for id := AbilityID(0); id < abilityCount; id++ {
		if left := g.abilities.ActiveLeft(id); left > 0 {
			actives = append(actives, fmt.Sprintf("%s %.1f", abilityDefs[id].Name, left))
		}
	}
	if len(actives) > 0 {
		line := strings.Join(actives, " · ")
		dst.DrawTextColored(dst.Width()-len(line), 1, line, core.ColorBrightCyan)
	}
}

func (g *Game) renderOverlays(dst *core.Screen) {
	h := dst.Height()
	if g.message != "" {
		dst.DrawTextCentered(h-2, g.message)
	}
	if g.player.DeathTimer > 0 {
		dst.DrawTextCentered(h/2, "You fainted...")
	}
	if g.player.Indoors() && g.jumpscareTimer > 0 {
		dst.DrawTextCentered(h/2, "!!! SOMETHING WAS IN THE CLOSET !!!")
	}
}

func groundGlyph(x, y float64) (rune, core.Color) {
	if x < 0 || x >= WorldW || y < 0 || y >= WorldH {
		return '▒', core.ColorGray
	}
	if SpawnSquare().Contains(x, y) {
		return '░', core.ColorYellow
	}
	b := BiomeAt(x, y)
	if b == BiomeCity {
		mx := math.Mod(x-CityLeft, cityBlockStep)
		my := math.Mod(y-CityTop, cityBlockStep)
		onRoadX := mx >= BlockSize
		onRoadY := my >= BlockSize
		switch {
		case onRoadX && onRoadY:
			return '▒', core.ColorGray
		case onRoadX:
			if math.Abs(mx-(BlockSize+RoadWidth/2)) < viewScaleX/2 {
				return '¦', core.ColorWhite
			}
			return '▒', core.ColorGray
		case onRoadY:
			if math.Abs(my-(BlockSize+RoadWidth/2)) < viewScaleY/2 {
				return '-', core.ColorWhite
			}
			return '▒', core.ColorGray
		}
		sideX := mx < SidewalkWidth || mx >= BlockSize-SidewalkWidth
		sideY := my < SidewalkWidth || my >= BlockSize-SidewalkWidth
		if sideX || sideY {
			return '░', core.ColorGray
		}
		return ' ', core.ColorDefault
	}

	// Sparse biome texture, stable per world cell.
	ix, iy := int(x/viewScaleX), int(y/viewScaleY)
	if (ix*73+iy*151)%11 != 0 {
		return ' ', core.ColorDefault
	}
	switch b {
	case BiomeForest:
		return '"', core.ColorDarkGreen
	case BiomeSnow:
		return '.', core.ColorBrightWhite
	case BiomeSwamp:
		return '~', core.ColorCyan
	default:
		return '.', core.ColorYellow
	}
}

func objectGlyph(k ObjectKind) (rune, core.Color) {
	switch k {
	case ObjectTree:
		return '♣', core.ColorGreen
	case ObjectMushroomPatch:
		return 'm', core.ColorRed
	case ObjectFlower:
		return '*', core.ColorPink
	case ObjectSnowTree:
		return '♠', core.ColorBrightWhite
	case ObjectSnowman:
		return '☃', core.ColorBrightCyan
	case ObjectIcePatch:
		return '○', core.ColorCyan
	case ObjectDeadTree:
		return '†', core.ColorGray
	case ObjectLilyPad:
		return 'o', core.ColorDarkGreen
	case ObjectPuddle:
		return '~', core.ColorBlue
	case ObjectCactus:
		return 'Ψ', core.ColorBrightGreen
	case ObjectRock:
		return '●', core.ColorGray
	default:
		return '◌', core.ColorBrown
	}
}

func collectibleGlyph(c Currency) (rune, core.Color) {
	switch c {
	case CurrencyBerries:
		return '•', core.ColorBrightRed
	case CurrencyGems:
		return '◆', core.ColorBrightYellow
	case CurrencySnowflakes:
		return '❄', core.ColorBrightCyan
	case CurrencyMushrooms:
		return '¶', core.ColorBrightMagenta
	default:
		return '•', core.ColorYellow
	}
}

func npcGlyph(n *NPC) (rune, core.Color) {
	if n.Type == NPCRock {
		return '●', core.ColorGray
	}
	if !n.Alive {
		return 'x', core.ColorGray
	}
	if n.HurtFlash > 0 {
		return 'B', core.ColorBrightRed
	}
	if n.Chasing {
		return 'B', core.ColorBrightRed
	}
	if n.Aggressive {
		return 'B', core.ColorOrange
	}
	return 'b', core.ColorWhite
}

func tileGlyph(t TileKind) (rune, core.Color) {
	switch t {
	case TileWall:
		return '█', core.ColorGray
	case TileFurniture:
		return '▒', core.ColorBrown
	case TileDoor:
		return '◊', core.ColorYellow
	case TileSofa:
		return '=', core.ColorMagenta
	case TileTV:
		return '▀', core.ColorBrightBlue
	case TileCloset:
		return '▯', core.ColorBrown
	case TileBed:
		return 'Ξ', core.ColorBlue
	default:
		return '·', core.ColorDefault
	}
}

func currencyColor(c Currency) core.Color {
	switch c {
	case CurrencyChips:
		return core.ColorBrightYellow
	case CurrencyBerries:
		return core.ColorBrightRed
	case CurrencyGems:
		return core.ColorYellow
	case CurrencySnowflakes:
		return core.ColorBrightCyan
	default:
		return core.ColorBrightMagenta
	}
}

func formatClock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
