// Package sim implements the Life of a Burrb simulation: a deterministic,
// fixed-order world step covering movement, collision, the 21-ability
// catalog, combat, npc and traffic brains, building interiors and the shop.
// The package is pure: no I/O, no rendering dependencies, no goroutines.
// Hosts drive it by calling Step with an Intent and a dt and draw the
// result; replaying the same seed and (dt, intent) sequence reproduces the
// session exactly.
package sim

import (
	"math"

	"github.com/magoocas/life-of-a-burrb/internal/config"
	"github.com/magoocas/life-of-a-burrb/internal/core"
)

// Session phases reported to the host.
const (
	StatePlaying = "playing"
	StateDead    = "dead" // faint animation running; input ignored
)

// Camera easing per tick.
const camLerpRate = 0.08

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath overrides the gameplay config file location.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset applies a named preset on top of the loaded config.
// Unknown names clear the preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	default:
		difficultyPreset = ""
	}
}

// Intent is the player input for one tick, assembled by the host from
// whatever keys are down.
type Intent struct {
	Move     core.Vec2 // desired direction; clamped to unit length
	Sprint   bool
	Tongue   bool
	Interact bool
	Unstuck  bool
	SodaCans bool
	Casts    []AbilityID
}

// GameState is the host-facing summary of a session.
type GameState struct {
	Phase             string
	Seconds           float64
	Health            int
	MaxHealth         int
	Wallet            [currencyCount]int
	Indoors           bool
	Biome             Biome
	NPCsDefeated      int
	Deaths            int
	AbilitiesUnlocked int
}

// StepResult is returned by Step after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Game is one Life of a Burrb session. Not safe for concurrent use; the
// host goroutine is the sole mutator.
type Game struct {
	world   *WorldData
	cfg     config.BurrbConfig
	runtime core.RuntimeConfig
	rng     *core.RNG

	player       Player
	npcs         []NPC
	cars         []Car
	collectibles []Collectible
	interiors    []interiorState
	abilities    *AbilityManager

	elapsed      float64
	tickCount    int
	npcsDefeated int
	deaths       int

	jumpscareTimer float64
	message        string
	messageTimer   float64

	bounceArmed    bool
	bounceTakeoffX float64
	bounceTakeoffY float64

	camX, camY float64

	events []Event
}

// New creates an empty session. Call Reset before stepping.
func New() *Game {
	return &Game{}
}

// Reset builds a fresh session: loads config, generates the world from the
// runtime seed and places the player at the town square. The world
// generator and the runtime use separate rng streams so ability dice never
// disturb terrain.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadBurrb(configPath)
	if err != nil {
		cfg = config.DefaultBurrbConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBurrbPreset(&cfg, difficultyPreset)
	}

	g.cfg = cfg
	g.runtime = runtime
	g.world = GenerateWorld(runtime.Seed, cfg)
	g.rng = core.NewRNG(runtime.Seed + 1)

	g.player = newPlayer(cfg.Gameplay.MaxHealth, cfg.Gameplay.StartingChips)
	g.npcs = append([]NPC(nil), g.world.NPCs...)
	g.cars = append([]Car(nil), g.world.Cars...)
	g.collectibles = append([]Collectible(nil), g.world.Collectibles...)
	g.interiors = make([]interiorState, len(g.world.Buildings))
	g.abilities = newAbilityManager()

	g.elapsed = 0
	g.tickCount = 0
	g.npcsDefeated = 0
	g.deaths = 0
	g.jumpscareTimer = 0
	g.message = ""
	g.messageTimer = 0
	g.bounceArmed = false
	g.camX, g.camY = g.player.X, g.player.Y
	g.events = nil
}

// Step advances the simulation by dt seconds. The phase order is fixed;
// reordering it changes observable behavior.
func (g *Game) Step(in Intent, dt float64) StepResult {
	g.tickCount++
	g.elapsed += dt

	alive := g.player.DeathTimer <= 0

	// Movement intent, resolved against buildings or the room grid.
	if alive {
		g.movePlayer(in, dt)
	} else {
		g.player.Walking = false
	}

	// Ability clocks, zone objects and expiry releases.
	g.abilities.Tick(g, dt)
	g.resolveBounceLanding()

	// This tick's activation requests.
	if alive {
		g.processCasts(in)
	}

	// Combat: tongue first, then bites, then the faint clock.
	if alive && in.Tongue {
		g.startTongue()
	}
	g.updateTongue(dt)
	g.resolveNPCAttacks(dt)
	g.updateDeath(dt)

	// The rest of the town.
	if alive && in.Interact {
		g.interact()
	}
	g.advanceNPCs(dt)
	g.advanceCars(dt)
	g.advanceInterior(dt)
	if alive && in.Unstuck {
		g.unstuck()
	}
	if !g.player.Indoors() {
		g.collectPickups()
	}

	if g.jumpscareTimer > 0 {
		g.jumpscareTimer = math.Max(0, g.jumpscareTimer-dt)
	}
	if g.messageTimer > 0 {
		g.messageTimer = math.Max(0, g.messageTimer-dt)
		if g.messageTimer == 0 {
			g.message = ""
		}
	}

	g.updateCamera()

	// Events raised between ticks (shop purchases) ride along with the
	// next tick's result, so the buffer drains here rather than on entry.
	out := StepResult{State: g.State(), Events: append([]Event(nil), g.events...)}
	g.events = g.events[:0]
	return out
}

func (g *Game) movePlayer(in Intent, dt float64) {
	p := &g.player
	move := in.Move.ClampLen(1)
	if move.X == 0 && move.Y == 0 {
		p.Walking = false
		return
	}
	p.Walking = true
	p.WalkFrame++
	p.Angle = math.Atan2(move.Y, move.X)
	if move.X < 0 {
		p.FacingLeft = true
	} else if move.X > 0 {
		p.FacingLeft = false
	}

	speed := g.cfg.Gameplay.WalkSpeed * g.abilities.SpeedMultiplier(in.Sprint)
	dx := move.X * speed * dt
	dy := move.Y * speed * dt

	if p.Indoors() {
		b := g.world.Buildings[p.Building]
		p.InteriorX, p.InteriorY = ResolveMove(p.InteriorX, p.InteriorY, dx, dy,
			func(x, y float64) bool { return CanMoveInterior(b, x, y) })
		return
	}

	if g.abilities.Airborne() {
		// Mid-bounce the rooftops pass underneath; only the world edge
		// can stop us.
		p.X = core.ClampF(p.X+dx, 20, WorldW-20)
		p.Y = core.ClampF(p.Y+dy, 20, WorldH-20)
		return
	}

	p.X, p.Y = ResolveMove(p.X, p.Y, dx, dy,
		func(x, y float64) bool { return CanMoveTo(x, y, g.world.Buildings) })
}

// resolveBounceLanding checks the touchdown spot once the arc ends; a
// blocked landing snaps back to the takeoff point.
func (g *Game) resolveBounceLanding() {
	if !g.bounceArmed || g.abilities.Airborne() {
		return
	}
	g.bounceArmed = false
	p := &g.player
	if !CanMoveTo(p.X, p.Y, g.world.Buildings) {
		p.X, p.Y = g.bounceTakeoffX, g.bounceTakeoffY
	}
}

func (g *Game) processCasts(in Intent) {
	// Holding sprint fires dash automatically once both clocks are clear.
	if in.Sprint && g.abilities.Unlocked(AbilityDash) {
		g.abilities.Activate(g, AbilityDash)
	}
	for _, id := range in.Casts {
		res := g.abilities.Activate(g, id)
		if res == ActivationOK {
			g.armBounceTakeoff(id)
			g.pushEvent(Event{Kind: EventAbilityCast, Ability: id, Result: res})
		} else {
			g.pushEvent(Event{Kind: EventAbilityRejected, Ability: id, Result: res})
		}
	}
	if in.SodaCans {
		if g.abilities.CastSodaCans(g) == ActivationOK {
			g.pushEvent(Event{Kind: EventSodaCansDeployed, X: g.player.X, Y: g.player.Y})
		}
	}
}

// armBounceTakeoff remembers where a bounce started so the landing check
// has somewhere safe to fall back to.
func (g *Game) armBounceTakeoff(id AbilityID) {
	if id != AbilityBounce {
		return
	}
	g.bounceArmed = true
	g.bounceTakeoffX = g.player.X
	g.bounceTakeoffY = g.player.Y
}

// advanceNPCs runs every npc brain. Freeze halts the whole crowd,
// cooldowns included.
func (g *Game) advanceNPCs(dt float64) {
	if g.abilities.FreezeActive() {
		return
	}
	env := npcEnv{
		PlayerX:       g.player.X,
		PlayerY:       g.player.Y,
		PlayerVisible: !g.player.Indoors() && !g.abilities.PlayerHidden(),
		SightRange:    g.cfg.NPC.SightRange,
		Buildings:     g.world.Buildings,
	}
	for i := range g.npcs {
		g.npcs[i].advance(env, g.rng, dt)
	}
}

// advanceCars moves traffic. The city idles while the player is indoors.
func (g *Game) advanceCars(dt float64) {
	if g.player.Indoors() {
		return
	}
	for i := range g.cars {
		g.cars[i].advance(g.rng, dt)
	}
}

func (g *Game) updateCamera() {
	tx, ty := g.player.X, g.player.Y
	if g.player.Indoors() {
		tx, ty = g.player.InteriorX, g.player.InteriorY
	}
	g.camX += (tx - g.camX) * camLerpRate
	g.camY += (ty - g.camY) * camLerpRate
}

func (g *Game) showMessage(msg string) {
	g.message = msg
	g.messageTimer = messageDuration
}

// State summarizes the session for the host.
func (g *Game) State() GameState {
	phase := StatePlaying
	if g.player.DeathTimer > 0 {
		phase = StateDead
	}
	return GameState{
		Phase:             phase,
		Seconds:           g.elapsed,
		Health:            g.player.Health,
		MaxHealth:         g.cfg.Gameplay.MaxHealth,
		Wallet:            g.player.Wallet,
		Indoors:           g.player.Indoors(),
		Biome:             BiomeAt(g.player.X, g.player.Y),
		NPCsDefeated:      g.npcsDefeated,
		Deaths:            g.deaths,
		AbilitiesUnlocked: g.abilities.UnlockedCount(),
	}
}

// World exposes the immutable world data for renderers and tests.
func (g *Game) World() *WorldData {
	return g.world
}

// Seed returns the seed this session's world was generated from.
func (g *Game) Seed() int64 {
	return g.world.Seed
}

// Elapsed returns the session play time in seconds.
func (g *Game) Elapsed() float64 {
	return g.elapsed
}

// Message returns the transient status line, empty when none is showing.
func (g *Game) Message() string {
	return g.message
}
