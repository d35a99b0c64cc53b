package sim

import (
	"math"

	"github.com/magoocas/life-of-a-burrb/internal/core"
)

// damageNPC applies damage and handles the alive-to-dead transition exactly
// once, paying the defeat reward whoever landed the blow.
func (g *Game) damageNPC(n *NPC, dmg int) {
	if n.Type == NPCRock || !n.Alive {
		return
	}
	n.HP -= dmg
	n.HurtFlash = npcHurtFlashTime
	if n.HP <= 0 {
		n.Alive = false
		g.npcsDefeated++
		g.player.Wallet[CurrencyChips] += g.cfg.NPC.DefeatReward
		g.pushEvent(Event{Kind: EventNPCDefeated, X: n.X, Y: n.Y})
	}
}

// startTongue fires the tongue if it is not already out. The tongue is an
// outdoor weapon and shoots flat left or right.
func (g *Game) startTongue() {
	p := &g.player
	if p.Tongue.Active || p.Indoors() {
		return
	}
	angle := 0.0
	if p.FacingLeft {
		angle = math.Pi
	}
	p.Tongue = Tongue{Active: true, Angle: angle, HitNPC: -1}
}

// updateTongue animates extension and retraction. Only the tip lands hits;
// the first burrb touched takes the hit and the tongue snaps back.
func (g *Game) updateTongue(dt float64) {
	t := &g.player.Tongue
	if !t.Active {
		return
	}
	maxLen := tongueMaxLength * g.abilities.ReachMultiplier()
	if !t.Retracting {
		t.Length += tongueSpeed * dt
		if t.Length >= maxLen {
			t.Length = maxLen
			t.Retracting = true
		}
		tipX := g.player.X + math.Cos(t.Angle)*t.Length
		tipY := g.player.Y + math.Sin(t.Angle)*t.Length
		for i := range g.npcs {
			n := &g.npcs[i]
			if n.Type == NPCRock || !n.Alive {
				continue
			}
			d := core.Dist(tipX, tipY, n.X, n.Y)
			if d < tongueHitRadius {
				t.HitNPC = i
				t.Retracting = true
				// Knockback never pushes a burrb into a building: a
				// blocked destination leaves it where it stood.
				if d > 1 {
					kx := core.ClampF(n.X+(n.X-tipX)/d*tongueKnockback, 30, WorldW-30)
					ky := core.ClampF(n.Y+(n.Y-tipY)/d*tongueKnockback, 30, WorldH-30)
					if CanMoveTo(kx, ky, g.world.Buildings) {
						n.X, n.Y = kx, ky
					}
				}
				g.damageNPC(n, 1)
				break
			}
		}
	} else {
		t.Length -= tongueSpeed * tongueRetractFactor * dt
		if t.Length <= 0 {
			*t = Tongue{HitNPC: -1}
		}
	}
}

// resolveNPCAttacks lets aggressive burrbs bite. The global hurt cooldown
// and the per-npc attack cooldown together give strike invulnerability.
func (g *Game) resolveNPCAttacks(dt float64) {
	p := &g.player
	if p.HurtCooldown > 0 {
		p.HurtCooldown = math.Max(0, p.HurtCooldown-dt)
	}
	if p.HurtTimer > 0 {
		p.HurtTimer = math.Max(0, p.HurtTimer-dt)
	}
	if p.Indoors() || p.DeathTimer > 0 {
		return
	}
	for i := range g.npcs {
		n := &g.npcs[i]
		if !n.Aggressive || n.Type == NPCRock || !n.Alive || n.AttackCooldown > 0 {
			continue
		}
		dx := p.X - n.X
		dy := p.Y - n.Y
		d := math.Hypot(dx, dy)
		if d >= g.cfg.NPC.AttackRange {
			continue
		}
		if g.abilities.DamageShielded() {
			// The bite passes through; the npc keeps lunging.
			continue
		}
		if p.HurtCooldown > 0 {
			continue
		}
		p.Health = core.Max(0, p.Health-g.cfg.NPC.AttackDamage)
		p.HurtTimer = playerHurtFlashTime
		p.HurtCooldown = playerHurtCooldown
		n.AttackCooldown = npcAttackCooldown
		g.pushEvent(Event{Kind: EventPlayerHurt, X: n.X, Y: n.Y})
		if d > 1 {
			p.X = core.ClampF(p.X+dx/d*npcAttackKnockback, 20, WorldW-20)
			p.Y = core.ClampF(p.Y+dy/d*npcAttackKnockback, 20, WorldH-20)
		}
	}
}

// updateDeath starts the faint exactly once when health empties, runs the
// clock, and respawns at the town square with a grace window.
func (g *Game) updateDeath(dt float64) {
	p := &g.player
	if p.Health <= 0 && p.DeathTimer <= 0 {
		p.Health = 0
		p.DeathTimer = deathDuration
		g.deaths++
		g.pushEvent(Event{Kind: EventPlayerDied, X: p.X, Y: p.Y})
	}
	if p.DeathTimer > 0 {
		p.DeathTimer -= dt
		if p.DeathTimer <= 0 {
			p.DeathTimer = 0
			p.Health = g.cfg.Gameplay.MaxHealth
			p.X, p.Y = SpawnX, SpawnY
			p.HurtCooldown = respawnGrace
			p.HurtTimer = 0
			p.Tongue = Tongue{HitNPC: -1}
			p.Building = -1
			g.pushEvent(Event{Kind: EventPlayerRespawned, X: p.X, Y: p.Y})
		}
	}
}
