package sim

import (
	"math"

	"github.com/magoocas/life-of-a-burrb/internal/core"
)

// Car tuning. Speeds are px/s.
const (
	carSpeedMin   = 72.0
	carSpeedMax   = 150.0
	carWrapMargin = 50.0
	carLaneOffset = 17.0 // quarter of the road width, right-hand traffic
	carTurnWindow = 8.0  // distance to a road centerline that allows a turn
)

// CarDir is a cardinal travel direction on the city road grid.
type CarDir int

const (
	CarEast CarDir = iota
	CarSouth
	CarWest
	CarNorth
)

func (d CarDir) String() string {
	switch d {
	case CarEast:
		return "east"
	case CarSouth:
		return "south"
	case CarWest:
		return "west"
	default:
		return "north"
	}
}

// Car is city traffic. Cars never collide with anything; an earthquake
// zeroes their speed for the rest of the session.
type Car struct {
	X, Y         float64
	Dir          CarDir
	Speed        float64
	TurnCooldown float64
}

// advance moves the car along its lane, wraps it at the city edge, and
// occasionally turns it at an intersection.
func (c *Car) advance(rng *core.RNG, dt float64) {
	switch c.Dir {
	case CarEast:
		c.X += c.Speed * dt
	case CarSouth:
		c.Y += c.Speed * dt
	case CarWest:
		c.X -= c.Speed * dt
	case CarNorth:
		c.Y -= c.Speed * dt
	}

	if c.X > CityRight+carWrapMargin {
		c.X = CityLeft - carWrapMargin
	} else if c.X < CityLeft-carWrapMargin {
		c.X = CityRight + carWrapMargin
	}
	if c.Y > CityBottom+carWrapMargin {
		c.Y = CityTop - carWrapMargin
	} else if c.Y < CityTop-carWrapMargin {
		c.Y = CityBottom + carWrapMargin
	}

	c.TurnCooldown -= dt
	if c.TurnCooldown > 0 {
		return
	}
	if !nearRoadCenter(c.X) || !nearRoadCenter(c.Y) {
		return
	}
	roll := rng.Float64()
	switch {
	case roll < 0.3:
		c.Dir = (c.Dir + 1) % 4
		c.TurnCooldown = 1.0
	case roll < 0.5:
		c.Dir = (c.Dir + 3) % 4
		c.TurnCooldown = 1.0
	default:
		// Straight through, but don't reconsider until the next block.
		c.TurnCooldown = 0.5
	}
}

// nearRoadCenter reports whether a coordinate sits within the turn window
// of a road centerline on the city grid.
func nearRoadCenter(v float64) bool {
	step := BlockSize + RoadWidth
	for b := CityLeft; b < CityRight+step; b += step {
		if math.Abs(v-(b+BlockSize+RoadWidth/2)) < carTurnWindow {
			return true
		}
	}
	return false
}
