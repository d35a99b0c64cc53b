package sim

import (
	"math"

	"github.com/magoocas/life-of-a-burrb/internal/core"
)

// Interior interaction tuning. Distances px, times seconds.
const (
	interactRange      = 30.0
	residentCatchRange = 14.0
	residentShove      = 8.0
	monsterCatchRange  = 14.0
	monsterShove       = 10.0
	closetChips        = 2
	closetScareChance  = 0.1
	jumpscareDuration  = 1.5
	messageDuration    = 2.0
)

// interiorState is the mutable per-building session state. The buildings
// themselves stay immutable; everything a visit changes lives here.
type interiorState struct {
	Visited       bool
	ChipsStolen   bool
	ClosetOpened  bool
	ClosetScare   bool
	BedShaken     bool
	ResidentAngry bool
	ResidentX     float64
	ResidentY     float64
	ResidentWalk  int
	MonsterActive bool
	MonsterX      float64
	MonsterY      float64
	MonsterWalk   int
}

// interact handles the context action: entering a door outdoors, or working
// through the furniture indoors.
func (g *Game) interact() {
	if g.player.Indoors() {
		g.interactIndoors()
		return
	}
	idx := NearbyDoorBuilding(g.player.X, g.player.Y, g.world.Buildings)
	if idx >= 0 {
		g.enterBuilding(idx)
	}
}

func (g *Game) enterBuilding(idx int) {
	p := &g.player
	b := g.world.Buildings[idx]
	st := &g.interiors[idx]

	p.savedAngle = p.Angle
	p.Building = idx
	p.InteriorX, p.InteriorY = b.InteriorSpawn()
	p.Angle = math.Pi * 1.5
	p.Tongue = Tongue{HitNPC: -1}

	if !st.Visited {
		st.Visited = true
		st.ResidentX, st.ResidentY = b.ResidentX, b.ResidentY
	}
	g.pushEvent(Event{Kind: EventEnteredBuilding, X: b.X, Y: b.Y})
}

func (g *Game) exitBuilding() {
	p := &g.player
	st := &g.interiors[p.Building]
	b := g.world.Buildings[p.Building]

	// The bed monster does not follow outside.
	st.MonsterActive = false

	p.Building = -1
	p.Angle = p.savedAngle
	g.pushEvent(Event{Kind: EventExitedBuilding, X: b.X, Y: b.Y})
}

// interactIndoors tries every interior interaction in a fixed order:
// closet, chip bag, bed, then the way out.
func (g *Game) interactIndoors() {
	p := &g.player
	b := g.world.Buildings[p.Building]
	st := &g.interiors[p.Building]

	// The closet: one open per building, with a small chance something is
	// hiding inside instead of snacks.
	if !st.ClosetOpened && b.ClosetX > 0 && g.jumpscareTimer <= 0 &&
		core.Dist(p.InteriorX, p.InteriorY, b.ClosetX, b.ClosetY) < interactRange {
		st.ClosetOpened = true
		if g.rng.Chance(closetScareChance) {
			st.ClosetScare = true
			g.jumpscareTimer = jumpscareDuration
			g.pushEvent(Event{Kind: EventJumpscare, X: b.ClosetX, Y: b.ClosetY})
		} else {
			p.Wallet[CurrencyChips] += closetChips
			g.showMessage("Found chips in the closet!")
			g.pushEvent(Event{Kind: EventClosetChips, X: b.ClosetX, Y: b.ClosetY})
		}
	}

	// The chip bag on the sofa table. Stealing it is what makes the
	// resident angry.
	if !st.ChipsStolen && b.ChipsX > 0 &&
		core.Dist(p.InteriorX, p.InteriorY, b.ChipsX, b.ChipsY) < interactRange {
		st.ChipsStolen = true
		st.ResidentAngry = true
		p.Wallet[CurrencyChips]++
		g.showMessage("Yoink! The resident saw that.")
		g.pushEvent(Event{Kind: EventChipsStolen, X: b.ChipsX, Y: b.ChipsY})
	}

	// Shaking the bed wakes whatever sleeps under it. Once per session.
	if !st.BedShaken && b.BedX > 0 &&
		core.Dist(p.InteriorX, p.InteriorY, b.BedX, b.BedY) < interactRange {
		st.BedShaken = true
		st.MonsterActive = true
		st.MonsterX, st.MonsterY = b.BedX, b.BedY
		g.showMessage("Something stirs under the bed...")
		g.pushEvent(Event{Kind: EventBedMonster, X: b.BedX, Y: b.BedY})
	}

	if AtInteriorDoor(b, p.InteriorX, p.InteriorY) {
		g.exitBuilding()
	}
}

// advanceInterior runs the resident and the bed monster while the player is
// inside. Nobody moves in an empty house.
func (g *Game) advanceInterior(dt float64) {
	p := &g.player
	if !p.Indoors() {
		return
	}
	b := g.world.Buildings[p.Building]
	st := &g.interiors[p.Building]

	if st.ResidentAngry {
		if g.abilities.PlayerHidden() {
			// The thief vanished: pace around confused.
			a := math.Sin(float64(st.ResidentWalk)*0.05) * 0.8
			moveInterior(b, &st.ResidentX, &st.ResidentY,
				math.Cos(a)*ResidentSpeed*0.5*dt, math.Sin(a)*ResidentSpeed*0.5*dt)
			st.ResidentWalk++
		} else {
			dx := p.InteriorX - st.ResidentX
			dy := p.InteriorY - st.ResidentY
			d := math.Hypot(dx, dy)
			if d > 0 {
				moveInterior(b, &st.ResidentX, &st.ResidentY,
					dx/d*ResidentSpeed*dt, dy/d*ResidentSpeed*dt)
				st.ResidentWalk++
			}
			cdx := p.InteriorX - st.ResidentX
			cdy := p.InteriorY - st.ResidentY
			cd := math.Hypot(cdx, cdy)
			if cd < residentCatchRange && cd > 0 {
				moveInterior(b, &p.InteriorX, &p.InteriorY,
					cdx/cd*residentShove, cdy/cd*residentShove)
			}
		}
	}

	if st.MonsterActive {
		dx := p.InteriorX - st.MonsterX
		dy := p.InteriorY - st.MonsterY
		d := math.Hypot(dx, dy)
		if d > 0 {
			moveInterior(b, &st.MonsterX, &st.MonsterY,
				dx/d*MonsterSpeed*dt, dy/d*MonsterSpeed*dt)
			st.MonsterWalk++
		}
		cdx := p.InteriorX - st.MonsterX
		cdy := p.InteriorY - st.MonsterY
		cd := math.Hypot(cdx, cdy)
		if cd < monsterCatchRange && cd > 0 {
			moveInterior(b, &p.InteriorX, &p.InteriorY,
				cdx/cd*monsterShove, cdy/cd*monsterShove)
		}
	}
}

// moveInterior applies a displacement one axis at a time against the room's
// tile grid.
func moveInterior(b *Building, x, y *float64, dx, dy float64) {
	if CanMoveInterior(b, *x+dx, *y) {
		*x += dx
	}
	if CanMoveInterior(b, *x, *y+dy) {
		*y += dy
	}
}

// unstuck nudges the player out of invalid geometry, for the rare landing
// or knockback that wedges the burrb against a building edge.
func (g *Game) unstuck() {
	p := &g.player
	if p.Indoors() {
		b := g.world.Buildings[p.Building]
		if !CanMoveInterior(b, p.InteriorX, p.InteriorY) {
			p.InteriorX, p.InteriorY = b.InteriorSpawn()
		}
		return
	}
	if CanMoveTo(p.X, p.Y, g.world.Buildings) {
		return
	}
	// Search outward in rings for the nearest clear spot.
	for radius := 20.0; radius <= 400; radius += 20 {
		for step := 0; step < 16; step++ {
			a := float64(step) * (math.Pi / 8)
			nx := core.ClampF(p.X+math.Cos(a)*radius, 20, WorldW-20)
			ny := core.ClampF(p.Y+math.Sin(a)*radius, 20, WorldH-20)
			if CanMoveTo(nx, ny, g.world.Buildings) {
				p.X, p.Y = nx, ny
				return
			}
		}
	}
	p.X, p.Y = SpawnX, SpawnY
}

// collectPickups grabs any uncollected treasure the player walks over.
func (g *Game) collectPickups() {
	p := &g.player
	for i := range g.collectibles {
		c := &g.collectibles[i]
		if c.Collected {
			continue
		}
		if core.Dist(p.X, p.Y, c.X, c.Y) < collectRadius {
			c.Collected = true
			p.Wallet[c.Currency]++
			g.pushEvent(Event{Kind: EventCollected, Currency: c.Currency, X: c.X, Y: c.Y})
		}
	}
}

const collectRadius = 25.0
