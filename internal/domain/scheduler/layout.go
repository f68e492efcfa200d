package scheduler

import (
	"strconv"

	"github.com/okian/podium/internal/domain/model"
)

// tierBounds maps each tier to its [start,end) positions in the ranked list.
var tierBounds = map[model.DisplayMode][2]int{ //nolint:gochecknoglobals // fixed table
	model.ModeTop3:      {0, 3},
	model.ModeRanks4_7:  {3, 7},
	model.ModeRanks8_10: {7, 10},
}

// Subset returns the slice of ranked shown in mode. Subsetting is by
// position, so ties across a tier boundary are split, never duplicated.
// INTRO and short lists yield fewer or no entries.
func Subset(mode model.DisplayMode, ranked []model.RankedStudent) []model.RankedStudent {
	b, ok := tierBounds[mode]
	if !ok || b[0] >= len(ranked) {
		return []model.RankedStudent{}
	}
	end := min(b[1], len(ranked))
	out := make([]model.RankedStudent, end-b[0])
	copy(out, ranked[b[0]:end])
	return out
}

// Pedestal places one ranked student in the scene.
type Pedestal struct {
	Student     model.RankedStudent `json:"student"`
	Position    Vec3                `json:"position"`
	Height      float64             `json:"height"`
	Scale       float64             `json:"scale"`
	Label       string              `json:"label"`
	PointsLabel string              `json:"pointsLabel"`
}

var top3Slots = [3]struct { //nolint:gochecknoglobals // fixed table
	pos           Vec3
	height, scale float64
}{
	{Vec3{0, 0, 0}, 3.0, 1.0},
	{Vec3{-3.5, 0, 1}, 2.4, 0.85},
	{Vec3{3.5, 0, 1}, 2.0, 0.75},
}

// Layout assigns scene placement to a tier subset. The winner stands in the
// centre of TOP3 with second and third to the left and right; the lower tiers
// stand in a row with descending heights.
func Layout(mode model.DisplayMode, subset []model.RankedStudent) []Pedestal {
	out := make([]Pedestal, 0, len(subset))
	for i, s := range subset {
		p := Pedestal{
			Student:     s,
			Label:       RomanNumeral(s.Rank),
			PointsLabel: PointsLabel(s.Points),
		}
		fi := float64(i)
		switch mode {
		case model.ModeTop3:
			if i >= len(top3Slots) {
				continue
			}
			slot := top3Slots[i]
			p.Position, p.Height, p.Scale = slot.pos, slot.height, slot.scale
		case model.ModeRanks4_7:
			p.Position = Vec3{X: (fi - 1.5) * 3}
			p.Height = 2.5 - fi*0.2
			p.Scale = 0.8
		case model.ModeRanks8_10:
			p.Position = Vec3{X: (fi - 1) * 3}
			p.Height = 2.0 - fi*0.1
			p.Scale = 0.75
		default:
			continue
		}
		out = append(out, p)
	}
	return out
}

var romanNumerals = [...]string{"", "I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"} //nolint:gochecknoglobals // lookup table

// RomanNumeral renders ranks 1..10 as I..X and anything else as a decimal.
func RomanNumeral(rank int) string {
	if rank >= 1 && rank < len(romanNumerals) {
		return romanNumerals[rank]
	}
	return strconv.Itoa(rank)
}

// PointsLabel is the caption shown under a pedestal.
func PointsLabel(points int) string {
	return strconv.Itoa(points) + " балів"
}
