package sim

import "math"

// Player timing constants, seconds.
const (
	playerHurtFlashTime = 20.0 / 60.0
	playerHurtCooldown  = 1.0
	deathDuration       = 2.0
	respawnGrace        = 2.0
)

// Tongue tuning. The tongue extends as an animated segment and only the tip
// can land a hit.
const (
	tongueMaxLength     = 120.0
	tongueSpeed         = 480.0 // extension, px/s
	tongueRetractFactor = 1.5
	tongueHitRadius     = 16.0
	tongueKnockback     = 20.0
)

// Facing is the 4-way look direction used by the renderer and snapshots.
type Facing int

const (
	FacingEast Facing = iota
	FacingSouth
	FacingWest
	FacingNorth
)

func (f Facing) String() string {
	switch f {
	case FacingEast:
		return "east"
	case FacingSouth:
		return "south"
	case FacingWest:
		return "west"
	case FacingNorth:
		return "north"
	default:
		return "unknown"
	}
}

// Tongue is the player's attack. It fires horizontally from the mouth,
// sticks to the first burrb it touches and snaps back.
type Tongue struct {
	Active     bool
	Length     float64
	Retracting bool
	Angle      float64
	HitNPC     int // index of the npc the tip stuck to, -1 when none
}

// Player is the burrb under the player's control.
type Player struct {
	X, Y       float64 // world position; frozen while indoors
	Angle      float64 // look direction in radians, follows movement
	FacingLeft bool
	Walking    bool
	WalkFrame  int

	Health       int
	HurtTimer    float64 // red flash remaining, seconds
	HurtCooldown float64 // invulnerability remaining, seconds
	DeathTimer   float64 // faint animation remaining, seconds

	Tongue Tongue

	// Interior context. Building is an index into the world's buildings,
	// -1 while outdoors. The outdoor position and angle are parked here
	// for the walk back out.
	Building             int
	InteriorX, InteriorY float64
	savedAngle           float64

	Wallet [currencyCount]int
}

func newPlayer(maxHealth, startingChips int) Player {
	p := Player{
		X:        SpawnX,
		Y:        SpawnY,
		Health:   maxHealth,
		Building: -1,
		Tongue:   Tongue{HitNPC: -1},
	}
	p.Wallet[CurrencyChips] = startingChips
	return p
}

// Indoors reports whether the player is inside a building.
func (p *Player) Indoors() bool {
	return p.Building >= 0
}

// Pos returns the position movement and combat should use: the interior
// position while inside, the world position otherwise.
func (p *Player) Pos() (float64, float64) {
	if p.Indoors() {
		return p.InteriorX, p.InteriorY
	}
	return p.X, p.Y
}

// Facing derives the 4-way facing from the look angle. Screen-down is
// south because world Y grows downward.
func (p *Player) Facing() Facing {
	c, s := math.Cos(p.Angle), math.Sin(p.Angle)
	if math.Abs(c) >= math.Abs(s) {
		if c >= 0 {
			return FacingEast
		}
		return FacingWest
	}
	if s >= 0 {
		return FacingSouth
	}
	return FacingNorth
}
