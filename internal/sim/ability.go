package sim

import (
	"math"

	"github.com/magoocas/life-of-a-burrb/internal/core"
)

// AbilityID identifies one of the 21 unlockable abilities. The catalog is a
// closed enum; the shop lists it grouped by currency in this order.
type AbilityID int

const (
	AbilityDash AbilityID = iota
	AbilitySuperSpeed
	AbilityMegaTongue
	AbilityFreeze
	AbilityInvisibility
	AbilityGiantMode
	AbilityBounce
	AbilityTeleport
	AbilityEarthquake
	AbilityVineTrap
	AbilityCamouflage
	AbilityNatureHeal
	AbilitySandstorm
	AbilityMagnet
	AbilityFireDash
	AbilityIceWall
	AbilityBlizzard
	AbilitySnowCloak
	AbilityPoisonCloud
	AbilityShadowStep
	AbilitySwampMonster

	abilityCount
)

// AbilityCount is the size of the catalog.
const AbilityCount = int(abilityCount)

func (id AbilityID) String() string {
	if id < 0 || id >= abilityCount {
		return "unknown"
	}
	return abilityDefs[id].Name
}

// AbilityKind describes how an ability's clocks behave.
type AbilityKind int

const (
	KindTimed   AbilityKind = iota // active window plus cooldown
	KindInstant                    // one-shot effect plus cooldown
	KindHold                       // active while the sprint intent is held
	KindPassive                    // always on once unlocked
)

func (k AbilityKind) String() string {
	switch k {
	case KindTimed:
		return "timed"
	case KindInstant:
		return "instant"
	case KindHold:
		return "hold"
	default:
		return "passive"
	}
}

// AbilityCategory groups abilities for the shop and HUD.
type AbilityCategory int

const (
	CategoryMovement AbilityCategory = iota
	CategoryCombat
	CategoryDefense
	CategoryUtility
)

func (c AbilityCategory) String() string {
	switch c {
	case CategoryMovement:
		return "movement"
	case CategoryCombat:
		return "combat"
	case CategoryDefense:
		return "defense"
	default:
		return "utility"
	}
}

// ActivationResult is the synchronous outcome of an activation request.
// Failures are values, not errors; the session always continues.
type ActivationResult int

const (
	ActivationOK ActivationResult = iota
	ActivationNotUnlocked
	ActivationOnCooldown
	ActivationNotHere // outdoor-only ability used inside a building
)

func (r ActivationResult) String() string {
	switch r {
	case ActivationOK:
		return "ok"
	case ActivationNotUnlocked:
		return "not unlocked"
	case ActivationOnCooldown:
		return "on cooldown"
	default:
		return "only works outside"
	}
}

// AbilityDef is the static definition of one catalog entry. Durations and
// cooldowns are seconds; zero duration means the effect is instantaneous.
type AbilityDef struct {
	ID          AbilityID
	Name        string
	Key         string // display key on the HUD and shop
	Cost        int
	Currency    Currency
	Category    AbilityCategory
	Kind        AbilityKind
	Duration    float64
	Cooldown    float64
	OutdoorOnly bool
	Blurb       string

	cast func(g *Game) // one-shot effects applied at activation
}

// Def returns the static definition for an ability.
func Def(id AbilityID) AbilityDef {
	return abilityDefs[id]
}

// abilityDefs is the full catalog. Costs come from the shop listing; the
// chip tab carries nine entries, each biome currency three.
var abilityDefs = [abilityCount]AbilityDef{
	AbilityDash: {
		ID: AbilityDash, Name: "Dash", Key: "sprint", Cost: 2, Currency: CurrencyChips,
		Category: CategoryMovement, Kind: KindTimed, Duration: 0.2, Cooldown: 0.75,
		Blurb: "Zoom forward super fast!",
	},
	AbilitySuperSpeed: {
		ID: AbilitySuperSpeed, Name: "Super Speed", Key: "sprint", Cost: 3, Currency: CurrencyChips,
		Category: CategoryMovement, Kind: KindHold,
		Blurb: "Run much faster while sprinting.",
	},
	AbilityMegaTongue: {
		ID: AbilityMegaTongue, Name: "Mega Tongue", Key: "auto", Cost: 3, Currency: CurrencyChips,
		Category: CategoryCombat, Kind: KindPassive,
		Blurb: "Your tongue reaches twice as far.",
	},
	AbilityFreeze: {
		ID: AbilityFreeze, Name: "Freeze", Key: "f", Cost: 4, Currency: CurrencyChips,
		Category: CategoryDefense, Kind: KindTimed, Duration: 5.0, Cooldown: 5.0,
		Blurb: "Freeze every burrb in town solid.",
	},
	AbilityInvisibility: {
		ID: AbilityInvisibility, Name: "Invisibility", Key: "i", Cost: 5, Currency: CurrencyChips,
		Category: CategoryDefense, Kind: KindTimed, Duration: 5.0, Cooldown: 5.0,
		Blurb: "Nobody can see you. Nobody.",
	},
	AbilityGiantMode: {
		ID: AbilityGiantMode, Name: "Giant Mode", Key: "g", Cost: 6, Currency: CurrencyChips,
		Category: CategoryMovement, Kind: KindTimed, Duration: 8.0, Cooldown: 8.0,
		Blurb: "Grow huge. Stomp slowly.",
	},
	AbilityBounce: {
		ID: AbilityBounce, Name: "Bounce", Key: "b", Cost: 4, Currency: CurrencyChips,
		Category: CategoryMovement, Kind: KindTimed, Duration: 0.75, Cooldown: 1.0,
		OutdoorOnly: true,
		Blurb:       "Boing! Jump clean over buildings.",
	},
	AbilityTeleport: {
		ID: AbilityTeleport, Name: "Teleport", Key: "t", Cost: 5, Currency: CurrencyChips,
		Category: CategoryUtility, Kind: KindInstant, Cooldown: 1.5,
		OutdoorOnly: true, cast: castTeleport,
		Blurb: "Blink 200 px the way you face.",
	},
	AbilityEarthquake: {
		ID: AbilityEarthquake, Name: "Earthquake", Key: "q", Cost: 7, Currency: CurrencyChips,
		Category: CategoryCombat, Kind: KindTimed, Duration: 4.0, Cooldown: 6.0,
		OutdoorOnly: true, cast: castEarthquake,
		Blurb: "Shake the ground. Stop traffic.",
	},
	AbilityVineTrap: {
		ID: AbilityVineTrap, Name: "Vine Trap", Key: "v", Cost: 3, Currency: CurrencyBerries,
		Category: CategoryCombat, Kind: KindTimed, Duration: 4.0, Cooldown: 5.0,
		OutdoorOnly: true, cast: castVineTrap,
		Blurb: "Vines root nearby burrbs in place.",
	},
	AbilityCamouflage: {
		ID: AbilityCamouflage, Name: "Camouflage", Key: "c", Cost: 4, Currency: CurrencyBerries,
		Category: CategoryDefense, Kind: KindTimed, Duration: 5.0, Cooldown: 5.0,
		Blurb: "Blend into the undergrowth.",
	},
	AbilityNatureHeal: {
		ID: AbilityNatureHeal, Name: "Nature Heal", Key: "h", Cost: 5, Currency: CurrencyBerries,
		Category: CategoryCombat, Kind: KindTimed, Duration: 0.5, Cooldown: 5.0,
		OutdoorOnly: true, cast: castNatureHeal,
		Blurb: "A green pulse shoves everyone back.",
	},
	AbilitySandstorm: {
		ID: AbilitySandstorm, Name: "Sandstorm", Key: "n", Cost: 4, Currency: CurrencyGems,
		Category: CategoryCombat, Kind: KindTimed, Duration: 4.0, Cooldown: 6.0,
		OutdoorOnly: true, cast: castSandstorm,
		Blurb: "Grit in everyone's eyes. They crawl.",
	},
	AbilityMagnet: {
		ID: AbilityMagnet, Name: "Magnet", Key: "m", Cost: 3, Currency: CurrencyGems,
		Category: CategoryUtility, Kind: KindTimed, Duration: 5.0, Cooldown: 6.0,
		Blurb: "Treasure crawls toward you.",
	},
	AbilityFireDash: {
		ID: AbilityFireDash, Name: "Fire Dash", Key: "r", Cost: 5, Currency: CurrencyGems,
		Category: CategoryMovement, Kind: KindTimed, Duration: 20.0 / 60.0, Cooldown: 1.5,
		OutdoorOnly: true,
		Blurb:       "Sprint on fire, leave a burning trail.",
	},
	AbilityIceWall: {
		ID: AbilityIceWall, Name: "Ice Wall", Key: "l", Cost: 3, Currency: CurrencySnowflakes,
		Category: CategoryUtility, Kind: KindInstant, Cooldown: 3.0,
		OutdoorOnly: true, cast: castIceWall,
		Blurb: "Raise a wall of ice ahead of you.",
	},
	AbilityBlizzard: {
		ID: AbilityBlizzard, Name: "Blizzard", Key: "z", Cost: 5, Currency: CurrencySnowflakes,
		Category: CategoryCombat, Kind: KindTimed, Duration: 3.0, Cooldown: 6.0,
		OutdoorOnly: true, cast: castBlizzard,
		Blurb: "A whiteout freezes burrbs where they stand.",
	},
	AbilitySnowCloak: {
		ID: AbilitySnowCloak, Name: "Snow Cloak", Key: "x", Cost: 4, Currency: CurrencySnowflakes,
		Category: CategoryMovement, Kind: KindTimed, Duration: 5.0, Cooldown: 6.0,
		Blurb: "Glide over the ground like a flurry.",
	},
	AbilityPoisonCloud: {
		ID: AbilityPoisonCloud, Name: "Poison Cloud", Key: "p", Cost: 3, Currency: CurrencyMushrooms,
		Category: CategoryCombat, Kind: KindInstant, Cooldown: 4.0,
		OutdoorOnly: true, cast: castPoisonCloud,
		Blurb: "Drop a lingering stink nobody can stand.",
	},
	AbilityShadowStep: {
		ID: AbilityShadowStep, Name: "Shadow Step", Key: "j", Cost: 4, Currency: CurrencyMushrooms,
		Category: CategoryUtility, Kind: KindInstant, Cooldown: 2.0,
		OutdoorOnly: true, cast: castShadowStep,
		Blurb: "Vanish into the nearest tree's shadow.",
	},
	AbilitySwampMonster: {
		ID: AbilitySwampMonster, Name: "Swamp Monster", Key: "k", Cost: 6, Currency: CurrencyMushrooms,
		Category: CategoryCombat, Kind: KindTimed, Duration: 10.0,
		OutdoorOnly: true,
		Blurb:       "Something rises from the bog to help.",
	},
}

// castSwampMonster reads abilityDefs, so its cast hook is wired here to
// avoid an initialization cycle in the catalog literal.
func init() {
	abilityDefs[AbilitySwampMonster].cast = castSwampMonster
}

// Effect tuning shared by casts and the per-tick update. Distances px,
// rates px/s, times seconds.
const (
	dashMultiplier   = 4.0
	superSpeedMult   = 2.2
	fireDashMult     = 5.0
	snowCloakMult    = 3.0
	giantSpeedMult   = 0.8
	giantTargetScale = 2.5
	giantLerpRate    = 0.15 // per tick

	bounceArcHeight = 80.0

	teleportDistance  = 200.0
	teleportFlashTime = 0.25

	quakeRadius    = 300.0
	quakePush      = 20.0
	quakeRootTime  = 4.0
	quakeShakeTime = 0.5

	vineRadius   = 200.0
	vineRootTime = 4.0

	healRadius = 250.0
	healPush   = 40.0

	sandstormRadius    = 300.0
	sandstormSlowSpeed = 18.0
	sandstormSlowTime  = 4.0

	magnetRadius  = 400.0
	magnetPull    = 180.0
	magnetMinDist = 5.0

	fireTrailLife   = 1.0
	fireTrailRadius = 15.0
	fireTrailPush   = 300.0

	iceWallSegments = 5
	iceWallAhead    = 40.0
	iceWallSpacing  = 25.0
	iceWallLife     = 8.0
	iceWallRadius   = 20.0
	iceWallPush     = 180.0

	blizzardRadius   = 250.0
	blizzardPush     = 25.0
	blizzardRootTime = 3.0

	poisonCloudLife   = 6.0
	poisonCloudRadius = 60.0
	poisonCloudPush   = 120.0

	shadowStepMinDist = 50.0
	shadowStepMaxDist = 500.0

	swampMonsterRadius = 300.0
	swampMonsterSpeed  = 120.0
	swampMonsterPush   = 8.0

	sodaCanCount          = 3
	sodaCanSpawnRadius    = 25.0
	sodaCanLife           = 8.0
	sodaCanCooldownTime   = 5.0
	sodaCanSightRadius    = 250.0
	sodaCanSpeed          = 168.0
	sodaCanAttackRange    = 14.0
	sodaCanAttackCooldown = 0.5
	sodaCanKnockback      = 10.0
	sodaCanFollowDist     = 40.0
)

// abilityState is the dynamic side of one catalog entry.
type abilityState struct {
	Unlocked bool
	Cooldown float64 // seconds until the next activation
	Active   float64 // seconds of effect remaining
}

// AbilityManager owns unlock flags, the independent active/cooldown clocks,
// and everything abilities leave lying around the world: fire trails, ice
// walls, poison clouds, the swamp monster and the soda can crew.
type AbilityManager struct {
	states [abilityCount]abilityState

	GiantScale    float64
	BounceHeight  float64
	TeleportFlash float64
	QuakeShake    float64

	FireTrail    []ZoneObject
	IceWalls     []ZoneObject
	PoisonClouds []ZoneObject
	Monster      SwampMonster
	SodaCans     []SodaCan
	SodaCooldown float64
}

func newAbilityManager() *AbilityManager {
	return &AbilityManager{GiantScale: 1.0}
}

// Unlocked reports whether the ability has been purchased.
func (m *AbilityManager) Unlocked(id AbilityID) bool {
	return m.states[id].Unlocked
}

// Unlock marks the ability purchased. Idempotent; clocks are untouched.
func (m *AbilityManager) Unlock(id AbilityID) {
	m.states[id].Unlocked = true
}

// UnlockedCount returns how many abilities have been purchased.
func (m *AbilityManager) UnlockedCount() int {
	n := 0
	for i := range m.states {
		if m.states[i].Unlocked {
			n++
		}
	}
	return n
}

// IsActive reports whether the ability's effect window is running.
func (m *AbilityManager) IsActive(id AbilityID) bool {
	return m.states[id].Active > 0
}

// ActiveLeft returns the seconds of effect remaining.
func (m *AbilityManager) ActiveLeft(id AbilityID) float64 {
	return m.states[id].Active
}

// CooldownLeft returns the seconds until the ability can fire again.
func (m *AbilityManager) CooldownLeft(id AbilityID) float64 {
	return m.states[id].Cooldown
}

// FreezeActive gates the whole npc update while true.
func (m *AbilityManager) FreezeActive() bool {
	return m.states[AbilityFreeze].Active > 0
}

// PlayerHidden reports whether sight-based AI can target the player.
func (m *AbilityManager) PlayerHidden() bool {
	return m.states[AbilityInvisibility].Active > 0 || m.states[AbilityCamouflage].Active > 0
}

// DamageShielded reports whether a defensive ability suppresses incoming
// damage this tick.
func (m *AbilityManager) DamageShielded() bool {
	return m.states[AbilityFreeze].Active > 0 ||
		m.states[AbilityInvisibility].Active > 0 ||
		m.states[AbilityCamouflage].Active > 0
}

// Airborne reports whether a bounce arc is in progress.
func (m *AbilityManager) Airborne() bool {
	return m.states[AbilityBounce].Active > 0
}

// ReachMultiplier scales the tongue's maximum length.
func (m *AbilityManager) ReachMultiplier() float64 {
	if m.states[AbilityMegaTongue].Unlocked {
		return 2.0
	}
	return 1.0
}

// SpeedMultiplier combines every movement modifier: the strongest burst
// wins, then giant mode slows the result.
func (m *AbilityManager) SpeedMultiplier(sprint bool) float64 {
	mult := 1.0
	if m.states[AbilitySuperSpeed].Unlocked && sprint {
		mult = superSpeedMult
	}
	if m.states[AbilityDash].Active > 0 {
		mult = math.Max(mult, dashMultiplier)
	}
	if m.states[AbilityFireDash].Active > 0 {
		mult = math.Max(mult, fireDashMult)
	}
	if m.states[AbilitySnowCloak].Active > 0 {
		mult = math.Max(mult, snowCloakMult)
	}
	if m.states[AbilityGiantMode].Active > 0 {
		mult *= giantSpeedMult
	}
	return mult
}

// Activate runs the uniform gate: unlocked, both clocks clear, and outdoors
// where required. Failure changes nothing. Success starts the active window
// and the cooldown together and fires the one-shot cast.
func (m *AbilityManager) Activate(g *Game, id AbilityID) ActivationResult {
	if id < 0 || id >= abilityCount {
		return ActivationNotUnlocked
	}
	def := &abilityDefs[id]
	st := &m.states[id]
	if !st.Unlocked {
		return ActivationNotUnlocked
	}
	if def.Kind == KindPassive || def.Kind == KindHold {
		return ActivationOK
	}
	if st.Active > 0 || st.Cooldown > 0 {
		return ActivationOnCooldown
	}
	if def.OutdoorOnly && g.player.Indoors() {
		return ActivationNotHere
	}
	st.Active = def.Duration
	st.Cooldown = def.Cooldown
	if def.cast != nil {
		def.cast(g)
	}
	return ActivationOK
}

// CastSodaCans deploys the starter crew. It is never locked; the gates are
// an empty field, its own cooldown, and being outdoors.
func (m *AbilityManager) CastSodaCans(g *Game) ActivationResult {
	if len(m.SodaCans) > 0 || m.SodaCooldown > 0 {
		return ActivationOnCooldown
	}
	if g.player.Indoors() {
		return ActivationNotHere
	}
	for i := 0; i < sodaCanCount; i++ {
		a := float64(i) * (2 * math.Pi / sodaCanCount)
		m.SodaCans = append(m.SodaCans, SodaCan{
			X:   g.player.X + math.Cos(a)*sodaCanSpawnRadius,
			Y:   g.player.Y + math.Sin(a)*sodaCanSpawnRadius,
			TTL: sodaCanLife,
		})
	}
	m.SodaCooldown = sodaCanCooldownTime
	return ActivationOK
}

// Tick advances every clock and zone object by dt. Release effects fire at
// the zero crossing of their active window. Runs before combat so a window
// ending this tick is already gone when damage resolves.
func (m *AbilityManager) Tick(g *Game, dt float64) {
	p := &g.player

	for i := range m.states {
		if m.states[i].Cooldown > 0 {
			m.states[i].Cooldown = math.Max(0, m.states[i].Cooldown-dt)
		}
	}

	m.decayActive(AbilityDash, dt)
	m.decayActive(AbilityFreeze, dt)
	m.decayActive(AbilityInvisibility, dt)

	// Bounce arc height tracks the remaining window.
	if st := &m.states[AbilityBounce]; st.Active > 0 {
		st.Active = math.Max(0, st.Active-dt)
		m.BounceHeight = math.Sin(st.Active/abilityDefs[AbilityBounce].Duration*math.Pi) * bounceArcHeight
	} else {
		m.BounceHeight = 0
	}

	if m.TeleportFlash > 0 {
		m.TeleportFlash = math.Max(0, m.TeleportFlash-dt)
	}
	if m.QuakeShake > 0 {
		m.QuakeShake = math.Max(0, m.QuakeShake-dt)
	}

	// Earthquake release sends every rooted burrb back to a fresh wander.
	if m.decayActiveCrossed(AbilityEarthquake, dt) {
		for i := range g.npcs {
			n := &g.npcs[i]
			if n.Type != NPCRock {
				n.Speed = g.rng.Range(npcWanderSpeedMin, npcWanderSpeedMax)
				n.DirTimer = g.rng.Range(0.5, 2.0)
			}
		}
	}

	// Giant scale eases toward its target each tick.
	target := 1.0
	if m.decayActiveKeep(AbilityGiantMode, dt) {
		target = giantTargetScale
	}
	m.GiantScale += (target - m.GiantScale) * giantLerpRate

	if m.decayActiveCrossed(AbilityVineTrap, dt) {
		m.releaseRooted(g)
	}

	m.decayActive(AbilityCamouflage, dt)
	m.decayActive(AbilityNatureHeal, dt)

	if m.decayActiveCrossed(AbilitySandstorm, dt) {
		m.releaseSlowed(g, npcWanderSpeedMin)
	}

	// Magnet drags loose treasure toward the player while outdoors.
	if m.states[AbilityMagnet].Active > 0 {
		m.decayActive(AbilityMagnet, dt)
		if !p.Indoors() {
			m.pullCollectibles(g, dt)
		}
	}

	// Fire dash lays trail while it burns.
	if m.states[AbilityFireDash].Active > 0 {
		m.decayActive(AbilityFireDash, dt)
		if !p.Indoors() {
			m.FireTrail = append(m.FireTrail, ZoneObject{X: p.X, Y: p.Y, TTL: fireTrailLife})
		}
	}
	m.tickFireTrail(g, dt)
	m.tickIceWalls(g, dt)

	if m.decayActiveCrossed(AbilityBlizzard, dt) {
		m.releaseRooted(g)
	}

	m.decayActive(AbilitySnowCloak, dt)

	m.tickPoisonClouds(g, dt)

	// The monster window and its world presence count down together.
	m.decayActive(AbilitySwampMonster, dt)
	m.tickSwampMonster(g, dt)

	m.tickSodaCans(g, dt)
}

func (m *AbilityManager) decayActive(id AbilityID, dt float64) {
	st := &m.states[id]
	if st.Active > 0 {
		st.Active = math.Max(0, st.Active-dt)
	}
}

// decayActiveKeep decays the window and reports whether it is still open.
func (m *AbilityManager) decayActiveKeep(id AbilityID, dt float64) bool {
	st := &m.states[id]
	if st.Active > 0 {
		st.Active = math.Max(0, st.Active-dt)
	}
	return st.Active > 0
}

// decayActiveCrossed decays the window and reports whether it hit zero on
// this tick.
func (m *AbilityManager) decayActiveCrossed(id AbilityID, dt float64) bool {
	st := &m.states[id]
	if st.Active <= 0 {
		return false
	}
	st.Active = math.Max(0, st.Active-dt)
	return st.Active == 0
}

// releaseRooted redraws the wander of every burrb whose speed was zeroed.
func (m *AbilityManager) releaseRooted(g *Game) {
	for i := range g.npcs {
		n := &g.npcs[i]
		if n.Type != NPCRock && n.Speed == 0 {
			n.Speed = g.rng.Range(npcWanderSpeedMin, npcWanderSpeedMax)
			n.DirTimer = g.rng.Range(0.5, 2.0)
		}
	}
}

// releaseSlowed frees burrbs still crawling below the given speed.
func (m *AbilityManager) releaseSlowed(g *Game, below float64) {
	for i := range g.npcs {
		n := &g.npcs[i]
		if n.Type != NPCRock && n.Speed < below {
			n.Speed = g.rng.Range(npcWanderSpeedMin, npcWanderSpeedMax)
			n.DirTimer = g.rng.Range(0.5, 2.0)
		}
	}
}

func (m *AbilityManager) pullCollectibles(g *Game, dt float64) {
	p := &g.player
	for i := range g.collectibles {
		c := &g.collectibles[i]
		if c.Collected {
			continue
		}
		d := core.Dist(p.X, p.Y, c.X, c.Y)
		if d < magnetRadius && d > magnetMinDist {
			c.X += (p.X - c.X) / d * magnetPull * dt
			c.Y += (p.Y - c.Y) / d * magnetPull * dt
		}
	}
}

// --- one-shot casts ---

func castTeleport(g *Game) {
	p := &g.player
	g.abilities.TeleportFlash = teleportFlashTime
	tx := core.ClampF(p.X+math.Cos(p.Angle)*teleportDistance, 30, WorldW-30)
	ty := core.ClampF(p.Y+math.Sin(p.Angle)*teleportDistance, 30, WorldH-30)
	if !CanMoveTo(tx, ty, g.world.Buildings) {
		// Walk the blink back toward the player until a clear spot shows.
		found := false
		for shrink := 1; shrink < 10; shrink++ {
			shorter := teleportDistance * (1.0 - float64(shrink)*0.1)
			sx := core.ClampF(p.X+math.Cos(p.Angle)*shorter, 30, WorldW-30)
			sy := core.ClampF(p.Y+math.Sin(p.Angle)*shorter, 30, WorldH-30)
			if CanMoveTo(sx, sy, g.world.Buildings) {
				tx, ty = sx, sy
				found = true
				break
			}
		}
		if !found {
			tx, ty = p.X, p.Y
		}
	}
	p.X, p.Y = tx, ty
}

func castEarthquake(g *Game) {
	p := &g.player
	g.abilities.QuakeShake = quakeShakeTime
	for i := range g.npcs {
		n := &g.npcs[i]
		if n.Type == NPCRock {
			continue
		}
		d := core.Dist(p.X, p.Y, n.X, n.Y)
		if d < quakeRadius {
			if d > 1 {
				n.X += (n.X - p.X) / d * quakePush
				n.Y += (n.Y - p.Y) / d * quakePush
			}
			n.Speed = 0
			n.DirTimer = quakeRootTime
		}
	}
	for i := range g.cars {
		c := &g.cars[i]
		if core.Dist(p.X, p.Y, c.X, c.Y) < quakeRadius {
			c.Speed = 0
		}
	}
}

func castVineTrap(g *Game) {
	p := &g.player
	for i := range g.npcs {
		n := &g.npcs[i]
		if n.Type == NPCRock {
			continue
		}
		if core.Dist(p.X, p.Y, n.X, n.Y) < vineRadius {
			n.Speed = 0
			n.DirTimer = vineRootTime
		}
	}
}

func castNatureHeal(g *Game) {
	p := &g.player
	for i := range g.npcs {
		n := &g.npcs[i]
		if n.Type == NPCRock {
			continue
		}
		d := core.Dist(p.X, p.Y, n.X, n.Y)
		if d < healRadius && d > 1 {
			n.X += (n.X - p.X) / d * healPush
			n.Y += (n.Y - p.Y) / d * healPush
		}
	}
}

func castSandstorm(g *Game) {
	p := &g.player
	for i := range g.npcs {
		n := &g.npcs[i]
		if n.Type == NPCRock {
			continue
		}
		if core.Dist(p.X, p.Y, n.X, n.Y) < sandstormRadius {
			n.Speed = sandstormSlowSpeed
			n.DirTimer = sandstormSlowTime
		}
	}
}

func castIceWall(g *Game) {
	p := &g.player
	cx := p.X + math.Cos(p.Angle)*iceWallAhead
	cy := p.Y + math.Sin(p.Angle)*iceWallAhead
	perp := p.Angle + math.Pi/2
	for i := 0; i < iceWallSegments; i++ {
		off := float64(i-iceWallSegments/2) * iceWallSpacing
		g.abilities.IceWalls = append(g.abilities.IceWalls, ZoneObject{
			X:   cx + math.Cos(perp)*off,
			Y:   cy + math.Sin(perp)*off,
			TTL: iceWallLife,
		})
	}
}

func castBlizzard(g *Game) {
	p := &g.player
	for i := range g.npcs {
		n := &g.npcs[i]
		if n.Type == NPCRock {
			continue
		}
		d := core.Dist(p.X, p.Y, n.X, n.Y)
		if d < blizzardRadius {
			n.Speed = 0
			n.DirTimer = blizzardRootTime
			if d > 1 {
				n.X += (n.X - p.X) / d * blizzardPush
				n.Y += (n.Y - p.Y) / d * blizzardPush
			}
		}
	}
}

func castPoisonCloud(g *Game) {
	p := &g.player
	g.abilities.PoisonClouds = append(g.abilities.PoisonClouds, ZoneObject{
		X: p.X, Y: p.Y, TTL: poisonCloudLife,
	})
}

func castShadowStep(g *Game) {
	p := &g.player
	bestDist := shadowStepMaxDist
	var bestX, bestY float64
	found := false
	for _, obj := range g.world.Objects {
		if !obj.Kind.ShadowAnchor() {
			continue
		}
		d := core.Dist(p.X, p.Y, obj.X, obj.Y)
		if d > shadowStepMinDist && d < bestDist {
			bestDist = d
			bestX, bestY = obj.X, obj.Y
			found = true
		}
	}
	if found {
		p.X = core.ClampF(bestX+20, 30, WorldW-30)
		p.Y = core.ClampF(bestY+20, 30, WorldH-30)
		g.abilities.TeleportFlash = teleportFlashTime
	}
}

func castSwampMonster(g *Game) {
	p := &g.player
	g.abilities.Monster = SwampMonster{
		Active: true,
		X:      p.X + 30,
		Y:      p.Y + 30,
		TTL:    abilityDefs[AbilitySwampMonster].Duration,
	}
}
