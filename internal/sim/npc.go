package sim

import (
	"math"

	"github.com/magoocas/life-of-a-burrb/internal/core"
)

// NPC tuning. Speeds are px/s, times are seconds.
const (
	npcWanderSpeedMin  = 30.0
	npcWanderSpeedMax  = 90.0
	npcChaseSpeedMin   = 120.0
	npcChaseSpeedMax   = 180.0
	npcAttackCooldown  = 40.0 / 60.0
	npcAttackKnockback = 15.0
	npcHurtFlashTime   = 15.0 / 60.0
)

// NPCType distinguishes town burrbs from inert rocks. Rocks never move,
// never fight and shrug off every ability; they exist so desert props can
// share the npc pipeline.
type NPCType int

const (
	NPCBurrb NPCType = iota
	NPCRock
)

func (t NPCType) String() string {
	if t == NPCRock {
		return "rock"
	}
	return "burrb"
}

// NPC is one townsfolk burrb wandering the world.
type NPC struct {
	X, Y float64
	Type NPCType

	Speed     float64 // wander speed, px/s; abilities zero or slow it
	Angle     float64
	DirTimer  float64 // seconds until the next wander direction change
	WalkFrame int

	Aggressive bool
	ChaseSpeed float64
	Chasing    bool

	AttackCooldown float64
	HP             int
	HurtFlash      float64
	Alive          bool
}

// npcEnv is the slice of the world an npc brain reads. Keeping it explicit
// makes the brain testable without a full session.
type npcEnv struct {
	PlayerX, PlayerY float64
	// PlayerVisible is false while the player is indoors or hidden by
	// invisibility or camouflage; invisible prey cannot be chased.
	PlayerVisible bool
	SightRange    float64
	Buildings     []*Building
}

// advance runs one tick of wander-or-chase. Aggressive burrbs re-derive
// the chase decision every tick, so stepping out of sight or into the
// spawn square breaks pursuit immediately.
func (n *NPC) advance(env npcEnv, rng *core.RNG, dt float64) {
	if !n.Alive || n.Type == NPCRock {
		return
	}
	n.WalkFrame++
	if n.AttackCooldown > 0 {
		n.AttackCooldown -= dt
	}
	if n.HurtFlash > 0 {
		n.HurtFlash -= dt
	}

	n.Chasing = false
	if n.Aggressive && env.PlayerVisible {
		dx := env.PlayerX - n.X
		dy := env.PlayerY - n.Y
		dist := math.Hypot(dx, dy)
		if dist < env.SightRange && !SpawnSquare().Contains(env.PlayerX, env.PlayerY) {
			n.Chasing = true
			if dist > 1 {
				nx := n.X + dx/dist*n.ChaseSpeed*dt
				ny := n.Y + dy/dist*n.ChaseSpeed*dt
				if !npcBlocked(nx, ny, env.Buildings) {
					n.X = nx
					n.Y = ny
				}
				n.Angle = math.Atan2(dy, dx)
			}
			return
		}
	}

	n.DirTimer -= dt
	if n.DirTimer <= 0 {
		n.Angle = rng.Range(0, 2*math.Pi)
		n.Speed = rng.Range(npcWanderSpeedMin, npcWanderSpeedMax)
		n.DirTimer = rng.Range(1.0, 4.0)
	}

	nx := n.X + math.Cos(n.Angle)*n.Speed*dt
	ny := n.Y + math.Sin(n.Angle)*n.Speed*dt
	if npcBlocked(nx, ny, env.Buildings) {
		n.Angle = rng.Range(0, 2*math.Pi)
		n.DirTimer = rng.Range(0.5, 2.0)
	} else {
		n.X = nx
		n.Y = ny
	}
}

// npcBlocked reports whether an npc body box collides with a building or
// the world edge.
func npcBlocked(x, y float64, buildings []*Building) bool {
	if x < 30 || x > WorldW-30 || y < 30 || y > WorldH-30 {
		return true
	}
	body := core.NewRectF(x-6, y-6, 12, 12)
	for _, b := range buildings {
		if body.Intersects(b.Rect()) {
			return true
		}
	}
	return false
}
