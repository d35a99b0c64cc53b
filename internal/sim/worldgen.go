package sim

import (
	"math"

	"github.com/magoocas/life-of-a-burrb/internal/config"
	"github.com/magoocas/life-of-a-burrb/internal/core"
)

// cityBlockStep is the pitch of the city grid: one block plus one road.
const cityBlockStep = BlockSize + RoadWidth

// GenerateWorld builds the whole town from a seed: the city grid with its
// buildings, four biome corners, parks, collectibles, townsfolk and
// traffic. Pure function of its arguments; identical seed, identical world.
func GenerateWorld(seed int64, cfg config.BurrbConfig) *WorldData {
	rng := core.NewRNG(seed)
	w := &WorldData{Seed: seed}

	generateCity(rng, w)
	generateParks(rng, w)
	generateBiomes(rng, w)
	generateCollectibles(rng, w)
	w.NPCs = spawnNPCs(rng, w.Buildings, cfg)
	w.Cars = spawnCars(rng, cfg)
	clearSpawnSquare(w)
	return w
}

func generateCity(rng *core.RNG, w *WorldData) {
	for bx := CityLeft; bx < CityRight; bx += cityBlockStep {
		for by := CityTop; by < CityBottom; by += cityBlockStep {
			numBuildings := rng.IntRange(3, 6)
			for i := 0; i < numBuildings; i++ {
				bw := float64(rng.IntRange(30, 80))
				bh := float64(rng.IntRange(30, 70))
				const margin = SidewalkWidth + 2
				maxX := bx + BlockSize - bw - margin
				maxY := by + BlockSize - bh - margin
				if maxX <= bx+margin || maxY <= by+margin {
					continue
				}
				px := float64(rng.IntRange(int(bx+margin), int(maxX)))
				py := float64(rng.IntRange(int(by+margin), int(maxY)))
				if intersectsAny(core.NewRectF(px-2, py-2, bw+4, bh+4), w.Buildings) {
					continue
				}
				w.Buildings = append(w.Buildings, NewBuilding(px, py, bw, bh))
			}

			// The occasional street tree on the block.
			for i := 0; i < rng.IntRange(0, 1); i++ {
				const treeMargin = SidewalkWidth + 8
				tx := float64(rng.IntRange(int(bx+treeMargin), int(bx+BlockSize-treeMargin)))
				ty := float64(rng.IntRange(int(by+treeMargin), int(by+BlockSize-treeMargin)))
				if intersectsAny(core.NewRectF(tx-8, ty-8, 16, 16), w.Buildings) {
					continue
				}
				w.Objects = append(w.Objects, WorldObject{
					Kind: ObjectTree, X: tx, Y: ty,
					Size: float64(rng.IntRange(12, 22)),
				})
			}
		}
	}
}

// generateParks carves five green squares out of the city. A park evicts
// whatever buildings it lands on and plants its own trees.
func generateParks(rng *core.RNG, w *WorldData) {
	for i := 0; i < 5; i++ {
		px := float64(rng.IntRange(3200, 6600))
		py := float64(rng.IntRange(3200, 6600))
		size := float64(rng.IntRange(120, 220))
		w.Parks = append(w.Parks, core.NewRectF(px, py, size, size))

		cleared := core.NewRectF(px-10, py-10, size+20, size+20)
		kept := w.Buildings[:0]
		for _, b := range w.Buildings {
			if !cleared.Intersects(b.Rect()) {
				kept = append(kept, b)
			}
		}
		w.Buildings = kept

		for t := 0; t < 8; t++ {
			tx := float64(rng.IntRange(int(px)+20, int(px+size)-20))
			ty := float64(rng.IntRange(int(py)+20, int(py+size)-20))
			w.Objects = append(w.Objects, WorldObject{
				Kind: ObjectTree, X: tx, Y: ty,
				Size: float64(rng.IntRange(14, 24)),
			})
		}
	}
}

func generateBiomes(rng *core.RNG, w *WorldData) {
	scatter := func(count int, kind ObjectKind, x1, y1, x2, y2, sizeMin, sizeMax int) {
		for i := 0; i < count; i++ {
			ox := float64(rng.IntRange(x1, x2))
			oy := float64(rng.IntRange(y1, y2))
			if nearCity(ox, oy) {
				continue
			}
			w.Objects = append(w.Objects, WorldObject{
				Kind: kind, X: ox, Y: oy,
				Size: float64(rng.IntRange(sizeMin, sizeMax)),
			})
		}
	}

	// Forest, north-west.
	scatter(300, ObjectTree, 100, 100, 4900, 4900, 16, 30)
	scatter(60, ObjectMushroomPatch, 100, 100, 4900, 4900, 6, 12)
	scatter(40, ObjectFlower, 100, 100, 4900, 4900, 4, 8)

	// Snow, north-east.
	scatter(200, ObjectSnowTree, 5100, 100, 9900, 4900, 14, 26)
	scatter(25, ObjectSnowman, 5200, 200, 9800, 4800, 10, 16)
	scatter(40, ObjectIcePatch, 5100, 100, 9900, 4900, 20, 50)

	// Swamp, south-west.
	scatter(180, ObjectDeadTree, 100, 5100, 4900, 9900, 12, 24)
	scatter(80, ObjectLilyPad, 100, 5100, 4900, 9900, 6, 14)
	scatter(50, ObjectPuddle, 100, 5100, 4900, 9900, 15, 40)

	// Desert, south-east.
	scatter(120, ObjectCactus, 5100, 5100, 9900, 9900, 10, 22)
	scatter(80, ObjectRock, 5100, 5100, 9900, 9900, 8, 18)
	scatter(30, ObjectTumbleweed, 5100, 5100, 9900, 9900, 6, 12)
}

func generateCollectibles(rng *core.RNG, w *WorldData) {
	drop := func(count int, cur Currency, x1, y1, x2, y2 int) {
		for i := 0; i < count; i++ {
			cx := float64(rng.IntRange(x1, x2))
			cy := float64(rng.IntRange(y1, y2))
			if nearCity(cx, cy) {
				continue
			}
			w.Collectibles = append(w.Collectibles, Collectible{X: cx, Y: cy, Currency: cur})
		}
	}
	drop(12, CurrencyBerries, 200, 200, 4800, 4800)
	drop(12, CurrencySnowflakes, 5200, 200, 9800, 4800)
	drop(12, CurrencyMushrooms, 200, 5200, 4800, 9800)
	drop(12, CurrencyGems, 5200, 5200, 9800, 9800)
}

// spawnNPCs makes count attempts at random town positions; attempts landing
// on a building are discarded, so crowded seeds yield slightly fewer burrbs.
func spawnNPCs(rng *core.RNG, buildings []*Building, cfg config.BurrbConfig) []NPC {
	npcs := make([]NPC, 0, cfg.NPC.Count)
	for i := 0; i < cfg.NPC.Count; i++ {
		x := float64(rng.IntRange(100, int(WorldW)-100))
		y := float64(rng.IntRange(100, int(WorldH)-100))
		if intersectsAny(core.NewRectF(x-10, y-10, 20, 20), buildings) {
			continue
		}
		npcs = append(npcs, NPC{
			X: x, Y: y,
			Type:       NPCBurrb,
			Speed:      rng.Range(npcWanderSpeedMin, npcWanderSpeedMax),
			Angle:      rng.Range(0, 2*math.Pi),
			DirTimer:   rng.Range(1.0, 4.0),
			Aggressive: rng.Chance(cfg.NPC.AggressiveFraction),
			ChaseSpeed: rng.Range(npcChaseSpeedMin, npcChaseSpeedMax),
			HP:         cfg.NPC.MaxHP,
			Alive:      true,
		})
	}
	return npcs
}

// spawnCars seeds right-hand traffic on every city road, a few cars per
// road in each direction's lane.
func spawnCars(rng *core.RNG, cfg config.BurrbConfig) []Car {
	var cars []Car
	for by := CityTop; by < CityBottom; by += cityBlockStep {
		roadCenter := by + BlockSize + RoadWidth/2
		num := rng.IntRange(cfg.World.CarsPerRoadMin, cfg.World.CarsPerRoadMax)
		for i := 0; i < num; i++ {
			x := float64(rng.IntRange(int(CityLeft)+50, int(CityRight)-50))
			dir := CarEast
			lane := roadCenter + carLaneOffset
			if rng.Chance(0.5) {
				dir = CarWest
				lane = roadCenter - carLaneOffset
			}
			cars = append(cars, Car{X: x, Y: lane, Dir: dir, Speed: rng.Range(carSpeedMin, carSpeedMax)})
		}
	}
	for bx := CityLeft; bx < CityRight; bx += cityBlockStep {
		roadCenter := bx + BlockSize + RoadWidth/2
		num := rng.IntRange(cfg.World.CarsPerRoadMin, cfg.World.CarsPerRoadMax)
		for i := 0; i < num; i++ {
			y := float64(rng.IntRange(int(CityTop)+50, int(CityBottom)-50))
			dir := CarSouth
			lane := roadCenter + carLaneOffset
			if rng.Chance(0.5) {
				dir = CarNorth
				lane = roadCenter - carLaneOffset
			}
			cars = append(cars, Car{X: lane, Y: y, Dir: dir, Speed: rng.Range(carSpeedMin, carSpeedMax)})
		}
	}
	return cars
}

// clearSpawnSquare evicts everything from the safe square at world center
// so a fresh burrb always starts in the open.
func clearSpawnSquare(w *WorldData) {
	safe := SpawnSquare()
	safe.X -= 10
	safe.Y -= 10
	safe.W += 20
	safe.H += 20

	kb := w.Buildings[:0]
	for _, b := range w.Buildings {
		if !safe.Intersects(b.Rect()) {
			kb = append(kb, b)
		}
	}
	w.Buildings = kb

	kp := w.Parks[:0]
	for _, p := range w.Parks {
		if !safe.Intersects(p) {
			kp = append(kp, p)
		}
	}
	w.Parks = kp

	ko := w.Objects[:0]
	for _, o := range w.Objects {
		if !safe.Contains(o.X, o.Y) {
			ko = append(ko, o)
		}
	}
	w.Objects = ko

	kc := w.Collectibles[:0]
	for _, c := range w.Collectibles {
		if !safe.Contains(c.X, c.Y) {
			kc = append(kc, c)
		}
	}
	w.Collectibles = kc

	kn := w.NPCs[:0]
	for _, n := range w.NPCs {
		if !safe.Contains(n.X, n.Y) {
			kn = append(kn, n)
		}
	}
	w.NPCs = kn

	kcar := w.Cars[:0]
	for _, c := range w.Cars {
		if !safe.Contains(c.X, c.Y) {
			kcar = append(kcar, c)
		}
	}
	w.Cars = kcar
}

// nearCity reports whether a point falls in the city or its 50 px apron.
func nearCity(x, y float64) bool {
	return x > CityLeft-50 && x < CityRight+50 && y > CityTop-50 && y < CityBottom+50
}

func intersectsAny(r core.RectF, buildings []*Building) bool {
	for _, b := range buildings {
		if r.Intersects(b.Rect()) {
			return true
		}
	}
	return false
}
