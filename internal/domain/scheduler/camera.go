package scheduler

import (
	"math"
	"time"

	"github.com/okian/podium/internal/domain/model"
)

// Dolly parameters: the position target oscillates on Z by
// sin(clock*dollyFrequency)*dollyAmplitude.
const (
	dollyFrequency = 0.2
	dollyAmplitude = 0.5
)

// Vec3 is a point in scene space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Lerp moves v toward to by factor f.
func (v Vec3) Lerp(to Vec3, f float64) Vec3 {
	return Vec3{
		X: v.X + (to.X-v.X)*f,
		Y: v.Y + (to.Y-v.Y)*f,
		Z: v.Z + (to.Z-v.Z)*f,
	}
}

// Camera is a camera pose.
type Camera struct {
	Position Vec3 `json:"position"`
	LookAt   Vec3 `json:"lookAt"`
}

// InitialCamera is the pose before the first tick.
func InitialCamera() Camera {
	return Camera{Position: Vec3{0, 5, 10}, LookAt: Vec3{0, 1, 0}}
}

// TargetFor returns the resting pose for mode.
func TargetFor(mode model.DisplayMode) Camera {
	switch mode {
	case model.ModeTop3:
		return Camera{Position: Vec3{0, 5, 12}, LookAt: Vec3{0, 2, 0}}
	case model.ModeRanks4_7:
		return Camera{Position: Vec3{0, 6, 14}, LookAt: Vec3{0, 1, 0}}
	case model.ModeRanks8_10:
		return Camera{Position: Vec3{0, 5, 12}, LookAt: Vec3{0, 1, 0}}
	default:
		return Camera{Position: Vec3{0, 4, 11}, LookAt: Vec3{0, 1, 0}}
	}
}

// Step moves the camera one tick toward target. The position target carries
// the dolly offset for the given clock.
func (c Camera) Step(target Camera, clock time.Duration, f float64) Camera {
	pos := target.Position
	pos.Z += math.Sin(clock.Seconds()*dollyFrequency) * dollyAmplitude
	return Camera{
		Position: c.Position.Lerp(pos, f),
		LookAt:   c.LookAt.Lerp(target.LookAt, f),
	}
}
