package sim

import "math"

// Snapshot is the immutable per-tick view of the session. Renderers and the
// spectator feed read it; determinism tests hash it. Primitive fields only,
// with JSON tags for the wire.
type Snapshot struct {
	Tick    int     `json:"tick"`
	Seconds float64 `json:"seconds"`
	Phase   string  `json:"phase"`
	Seed    int64   `json:"seed"`

	Player       Player2D        `json:"player"`
	NPCs         []NPC2D         `json:"npcs"`
	Cars         []Car2D         `json:"cars"`
	Zones        Zones2D         `json:"zones"`
	Abilities    []AbilityStatus `json:"abilities"`
	Collectibles []Collectible2D `json:"collectibles"`
	Interior     *Interior2D     `json:"interior,omitempty"`
	Message      string          `json:"message,omitempty"`

	CamX       float64 `json:"cam_x"`
	CamY       float64 `json:"cam_y"`
	QuakeShake float64 `json:"quake_shake"`
	Flash      float64 `json:"flash"`

	RNGState uint64 `json:"-"`
}

// Player2D is the player's slice of a snapshot.
type Player2D struct {
	X            float64            `json:"x"`
	Y            float64            `json:"y"`
	Facing       string             `json:"facing"`
	Walking      bool               `json:"walking"`
	WalkFrame    int                `json:"walk_frame"`
	Health       int                `json:"health"`
	MaxHealth    int                `json:"max_health"`
	Wallet       [currencyCount]int `json:"wallet"`
	HurtTimer    float64            `json:"hurt_timer"`
	DeathTimer   float64            `json:"death_timer"`
	Scale        float64            `json:"scale"`
	BounceHeight float64            `json:"bounce_height"`
	TongueOut    bool               `json:"tongue_out"`
	TongueLength float64            `json:"tongue_length"`
	TongueAngle  float64            `json:"tongue_angle"`
	Indoors      bool               `json:"indoors"`
}

// NPC2D is one npc in a snapshot.
type NPC2D struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Type       string  `json:"type"`
	Alive      bool    `json:"alive"`
	Aggressive bool    `json:"aggressive"`
	Chasing    bool    `json:"chasing"`
	HP         int     `json:"hp"`
	HurtFlash  float64 `json:"hurt_flash"`
	WalkFrame  int     `json:"walk_frame"`
}

// Car2D is one car in a snapshot.
type Car2D struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Dir     string  `json:"dir"`
	Stopped bool    `json:"stopped"`
}

// ZoneMark is a transient effect location.
type ZoneMark struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	TTL float64 `json:"ttl"`
}

// Monster2D is the summoned ally in a snapshot.
type Monster2D struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	TTL  float64 `json:"ttl"`
	Walk int     `json:"walk"`
}

// Can2D is one soda can helper in a snapshot.
type Can2D struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	TTL  float64 `json:"ttl"`
	Walk int     `json:"walk"`
}

// Zones2D gathers every transient world effect.
type Zones2D struct {
	Fire    []ZoneMark `json:"fire,omitempty"`
	Ice     []ZoneMark `json:"ice,omitempty"`
	Poison  []ZoneMark `json:"poison,omitempty"`
	Monster *Monster2D `json:"monster,omitempty"`
	Cans    []Can2D    `json:"cans,omitempty"`
}

// AbilityStatus is one HUD row: the catalog entry plus its live clocks.
type AbilityStatus struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Key      string  `json:"key"`
	Unlocked bool    `json:"unlocked"`
	Active   float64 `json:"active"`
	Cooldown float64 `json:"cooldown"`
}

// Collectible2D is one uncollected pickup.
type Collectible2D struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Currency string  `json:"currency"`
}

// Interior2D is the view while the player is inside a building.
type Interior2D struct {
	Building      int     `json:"building"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	ResidentX     float64 `json:"resident_x"`
	ResidentY     float64 `json:"resident_y"`
	ResidentAngry bool    `json:"resident_angry"`
	MonsterActive bool    `json:"monster_active"`
	MonsterX      float64 `json:"monster_x"`
	MonsterY      float64 `json:"monster_y"`
	ChipsStolen   bool    `json:"chips_stolen"`
	Jumpscare     bool    `json:"jumpscare"`
}

// Snapshot captures the current session state.
func (g *Game) Snapshot() Snapshot {
	p := &g.player
	m := g.abilities

	phase := StatePlaying
	if p.DeathTimer > 0 {
		phase = StateDead
	}

	snap := Snapshot{
		Tick:    g.tickCount,
		Seconds: g.elapsed,
		Phase:   phase,
		Seed:    g.world.Seed,
		Player: Player2D{
			X:            p.X,
			Y:            p.Y,
			Facing:       p.Facing().String(),
			Walking:      p.Walking,
			WalkFrame:    p.WalkFrame,
			Health:       p.Health,
			MaxHealth:    g.cfg.Gameplay.MaxHealth,
			Wallet:       p.Wallet,
			HurtTimer:    p.HurtTimer,
			DeathTimer:   p.DeathTimer,
			Scale:        m.GiantScale,
			BounceHeight: m.BounceHeight,
			TongueOut:    p.Tongue.Active,
			TongueLength: p.Tongue.Length,
			TongueAngle:  p.Tongue.Angle,
			Indoors:      p.Indoors(),
		},
		Message:    g.message,
		CamX:       g.camX,
		CamY:       g.camY,
		QuakeShake: m.QuakeShake,
		Flash:      m.TeleportFlash,
		RNGState:   g.rng.State(),
	}

	snap.NPCs = make([]NPC2D, len(g.npcs))
	for i := range g.npcs {
		n := &g.npcs[i]
		snap.NPCs[i] = NPC2D{
			X: n.X, Y: n.Y,
			Type:       n.Type.String(),
			Alive:      n.Alive,
			Aggressive: n.Aggressive,
			Chasing:    n.Chasing,
			HP:         n.HP,
			HurtFlash:  n.HurtFlash,
			WalkFrame:  n.WalkFrame,
		}
	}

	snap.Cars = make([]Car2D, len(g.cars))
	for i := range g.cars {
		c := &g.cars[i]
		snap.Cars[i] = Car2D{X: c.X, Y: c.Y, Dir: c.Dir.String(), Stopped: c.Speed == 0}
	}

	snap.Zones.Fire = zoneMarks(m.FireTrail)
	snap.Zones.Ice = zoneMarks(m.IceWalls)
	snap.Zones.Poison = zoneMarks(m.PoisonClouds)
	if m.Monster.Active {
		snap.Zones.Monster = &Monster2D{X: m.Monster.X, Y: m.Monster.Y, TTL: m.Monster.TTL, Walk: m.Monster.Walk}
	}
	for _, can := range m.SodaCans {
		snap.Zones.Cans = append(snap.Zones.Cans, Can2D{X: can.X, Y: can.Y, TTL: can.TTL, Walk: can.Walk})
	}

	snap.Abilities = make([]AbilityStatus, abilityCount)
	for id := AbilityID(0); id < abilityCount; id++ {
		def := &abilityDefs[id]
		snap.Abilities[id] = AbilityStatus{
			ID:       int(id),
			Name:     def.Name,
			Key:      def.Key,
			Unlocked: m.Unlocked(id),
			Active:   m.ActiveLeft(id),
			Cooldown: m.CooldownLeft(id),
		}
	}

	for i := range g.collectibles {
		c := &g.collectibles[i]
		if c.Collected {
			continue
		}
		snap.Collectibles = append(snap.Collectibles, Collectible2D{
			X: c.X, Y: c.Y, Currency: c.Currency.String(),
		})
	}

	if p.Indoors() {
		st := &g.interiors[p.Building]
		snap.Interior = &Interior2D{
			Building:      p.Building,
			X:             p.InteriorX,
			Y:             p.InteriorY,
			ResidentX:     st.ResidentX,
			ResidentY:     st.ResidentY,
			ResidentAngry: st.ResidentAngry,
			MonsterActive: st.MonsterActive,
			MonsterX:      st.MonsterX,
			MonsterY:      st.MonsterY,
			ChipsStolen:   st.ChipsStolen,
			Jumpscare:     g.jumpscareTimer > 0,
		}
	}

	return snap
}

func zoneMarks(zs []ZoneObject) []ZoneMark {
	if len(zs) == 0 {
		return nil
	}
	marks := make([]ZoneMark, len(zs))
	for i, z := range zs {
		marks[i] = ZoneMark{X: z.X, Y: z.Y, TTL: z.TTL}
	}
	return marks
}

// Hash folds the snapshot into a single value for determinism tests: two
// runs of the same seed and input sequence must produce equal hashes tick
// for tick.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick) //#nosec G115 -- tick count is always positive
	h = h*31 + math.Float64bits(snap.Seconds)
	h = h*31 + uint64(snap.Seed) //#nosec G115 -- hash computation
	h = h*31 + hashString(snap.Phase)

	h = h*31 + math.Float64bits(snap.Player.X)
	h = h*31 + math.Float64bits(snap.Player.Y)
	h = h*31 + uint64(snap.Player.Health) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Player.HurtTimer)
	h = h*31 + math.Float64bits(snap.Player.DeathTimer)
	h = h*31 + math.Float64bits(snap.Player.Scale)
	h = h*31 + math.Float64bits(snap.Player.TongueLength)
	h = h*31 + hashBool(snap.Player.Indoors)
	for _, w := range snap.Player.Wallet {
		h = h*31 + uint64(w) //#nosec G115 -- hash computation
	}

	h = h*31 + uint64(len(snap.NPCs)) //#nosec G115 -- hash computation
	for i := range snap.NPCs {
		n := &snap.NPCs[i]
		h = h*31 + math.Float64bits(n.X)
		h = h*31 + math.Float64bits(n.Y)
		h = h*31 + uint64(n.HP) //#nosec G115 -- hash computation
		h = h*31 + hashBool(n.Alive)
		h = h*31 + hashBool(n.Chasing)
	}

	h = h*31 + uint64(len(snap.Cars)) //#nosec G115 -- hash computation
	for i := range snap.Cars {
		c := &snap.Cars[i]
		h = h*31 + math.Float64bits(c.X)
		h = h*31 + math.Float64bits(c.Y)
		h = h*31 + hashBool(c.Stopped)
	}

	h = h*31 + uint64(len(snap.Zones.Fire))   //#nosec G115 -- hash computation
	h = h*31 + uint64(len(snap.Zones.Ice))    //#nosec G115 -- hash computation
	h = h*31 + uint64(len(snap.Zones.Poison)) //#nosec G115 -- hash computation
	h = h*31 + uint64(len(snap.Zones.Cans))   //#nosec G115 -- hash computation

	for i := range snap.Abilities {
		a := &snap.Abilities[i]
		h = h*31 + hashBool(a.Unlocked)
		h = h*31 + math.Float64bits(a.Active)
		h = h*31 + math.Float64bits(a.Cooldown)
	}

	h = h*31 + uint64(len(snap.Collectibles)) //#nosec G115 -- hash computation

	h = h*31 + snap.RNGState
	return h
}

func hashBool(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func hashString(s string) uint64 {
	var h uint64
	for _, r := range s {
		h = h*31 + uint64(r)
	}
	return h
}
