package models

// Mode is a transport mode for a single leg.
type Mode string

const (
	ModeBicycle Mode = "BICYCLE"
	ModeBus     Mode = "BUS"
	ModeCoach   Mode = "COACH"
	ModeFerry   Mode = "FERRY"
	ModeRail    Mode = "RAIL"
	ModeTram    Mode = "TRAM"
	ModeWalk    Mode = "WALK"
)

// IsTransit reports whether the mode is a scheduled public-transport mode,
// as opposed to walking or cycling under the traveller's own power.
func (m Mode) IsTransit() bool {
	switch m {
	case ModeBus, ModeCoach, ModeFerry, ModeRail, ModeTram:
		return true
	}
	return false
}
