package sim

import "github.com/magoocas/life-of-a-burrb/internal/core"

// ZoneObject is a transient point effect an ability leaves in the world: a
// fire trail segment, an ice wall segment or a poison cloud. Zones never
// block movement; they act by pushing.
type ZoneObject struct {
	X, Y float64
	TTL  float64 // seconds left
}

// SwampMonster is the summoned ally. It exists only while its window runs.
type SwampMonster struct {
	Active bool
	X, Y   float64
	TTL    float64
	Walk   int
}

// SodaCan is one member of the starter crew.
type SodaCan struct {
	X, Y           float64
	TTL            float64
	Walk           int
	AttackCooldown float64
}

// pushNPCsFrom shoves every non-rock npc within radius straight away from a
// point. Defeated burrbs slide too; only rocks stay put.
func pushNPCsFrom(g *Game, x, y, radius, amount float64) {
	for i := range g.npcs {
		n := &g.npcs[i]
		if n.Type == NPCRock {
			continue
		}
		d := core.Dist(x, y, n.X, n.Y)
		if d < radius && d > 1 {
			n.X += (n.X - x) / d * amount
			n.Y += (n.Y - y) / d * amount
		}
	}
}

func (m *AbilityManager) tickFireTrail(g *Game, dt float64) {
	alive := m.FireTrail[:0]
	for _, seg := range m.FireTrail {
		seg.TTL -= dt
		if seg.TTL > 0 {
			alive = append(alive, seg)
		}
	}
	m.FireTrail = alive
	for _, seg := range m.FireTrail {
		pushNPCsFrom(g, seg.X, seg.Y, fireTrailRadius, fireTrailPush*dt)
	}
}

func (m *AbilityManager) tickIceWalls(g *Game, dt float64) {
	alive := m.IceWalls[:0]
	for _, seg := range m.IceWalls {
		seg.TTL -= dt
		if seg.TTL > 0 {
			alive = append(alive, seg)
		}
	}
	m.IceWalls = alive
	for _, seg := range m.IceWalls {
		pushNPCsFrom(g, seg.X, seg.Y, iceWallRadius, iceWallPush*dt)
	}
}

// tickPoisonClouds ages and applies every cloud, then drops the dead ones.
// A cloud still pushes on the tick it expires.
func (m *AbilityManager) tickPoisonClouds(g *Game, dt float64) {
	for i := range m.PoisonClouds {
		m.PoisonClouds[i].TTL -= dt
		pushNPCsFrom(g, m.PoisonClouds[i].X, m.PoisonClouds[i].Y, poisonCloudRadius, poisonCloudPush*dt)
	}
	alive := m.PoisonClouds[:0]
	for _, pc := range m.PoisonClouds {
		if pc.TTL > 0 {
			alive = append(alive, pc)
		}
	}
	m.PoisonClouds = alive
}

// tickSwampMonster runs the ally: shove the nearest burrb in range, or
// trail behind the player when nothing is close.
func (m *AbilityManager) tickSwampMonster(g *Game, dt float64) {
	if !m.Monster.Active {
		return
	}
	m.Monster.TTL -= dt
	m.Monster.Walk++
	if m.Monster.TTL <= 0 {
		m.Monster.Active = false
		return
	}

	var target *NPC
	best := swampMonsterRadius
	for i := range g.npcs {
		n := &g.npcs[i]
		if n.Type == NPCRock {
			continue
		}
		d := core.Dist(n.X, n.Y, m.Monster.X, m.Monster.Y)
		if d < best {
			best = d
			target = n
		}
	}
	if target != nil {
		d := best
		if d > 1 {
			m.Monster.X += (target.X - m.Monster.X) / d * swampMonsterSpeed * dt
			m.Monster.Y += (target.Y - m.Monster.Y) / d * swampMonsterSpeed * dt
		}
		if d < 20 && d > 1 {
			target.X += (target.X - m.Monster.X) / d * swampMonsterPush
			target.Y += (target.Y - m.Monster.Y) / d * swampMonsterPush
		}
	} else {
		d := core.Dist(g.player.X, g.player.Y, m.Monster.X, m.Monster.Y)
		if d > 50 {
			m.Monster.X += (g.player.X - m.Monster.X) / d * swampMonsterSpeed * dt
			m.Monster.Y += (g.player.Y - m.Monster.Y) / d * swampMonsterSpeed * dt
		}
	}
}

// tickSodaCans ages the crew, then lets each can chase and bonk the nearest
// living burrb, or waddle back toward the player.
func (m *AbilityManager) tickSodaCans(g *Game, dt float64) {
	if m.SodaCooldown > 0 {
		m.SodaCooldown = core.ClampF(m.SodaCooldown-dt, 0, sodaCanCooldownTime)
	}
	alive := m.SodaCans[:0]
	for _, can := range m.SodaCans {
		can.TTL -= dt
		can.Walk++
		if can.AttackCooldown > 0 {
			can.AttackCooldown -= dt
		}
		if can.TTL > 0 {
			alive = append(alive, can)
		}
	}
	m.SodaCans = alive

	for i := range m.SodaCans {
		can := &m.SodaCans[i]
		var target *NPC
		best := sodaCanSightRadius
		for j := range g.npcs {
			n := &g.npcs[j]
			if n.Type == NPCRock || !n.Alive {
				continue
			}
			d := core.Dist(n.X, n.Y, can.X, can.Y)
			if d < best {
				best = d
				target = n
			}
		}
		if target != nil {
			d := best
			if d > 1 {
				can.X += (target.X - can.X) / d * sodaCanSpeed * dt
				can.Y += (target.Y - can.Y) / d * sodaCanSpeed * dt
			}
			if d < sodaCanAttackRange && can.AttackCooldown <= 0 {
				can.AttackCooldown = sodaCanAttackCooldown
				if d > 1 {
					target.X = core.ClampF(target.X+(target.X-can.X)/d*sodaCanKnockback, 30, WorldW-30)
					target.Y = core.ClampF(target.Y+(target.Y-can.Y)/d*sodaCanKnockback, 30, WorldH-30)
				}
				g.damageNPC(target, 1)
			}
		} else {
			d := core.Dist(g.player.X, g.player.Y, can.X, can.Y)
			if d > sodaCanFollowDist {
				can.X += (g.player.X - can.X) / d * sodaCanSpeed * dt
				can.Y += (g.player.Y - can.Y) / d * sodaCanSpeed * dt
			}
		}
	}
}
