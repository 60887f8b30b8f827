package domain

import "sort"

type UserID string

// DefaultZoneName identifies the single zone group every user has today.
// Named groups ("Alison's zones") are future work; the name is already part
// of the stored key so existing data survives that migration.
const DefaultZoneName = "default"

// Zone is one tracked date interval. Identity for upsert purposes is
// (UserID, BeginDate): adding a zone with an existing begin date replaces
// its end date.
type Zone struct {
	UserID    UserID `json:"-" toml:"-"`
	BeginDate Date   `json:"beginDate"`
	EndDate   Date   `json:"endDate"`
	Active    bool   `json:"isActive"`
}

func (z Zone) LengthDays() int {
	return ZoneLengthDays(z.BeginDate, z.EndDate)
}

// Distance returns the day distance from target to the zone interval:
// zero when target falls inside [BeginDate, EndDate], otherwise the day
// count to the nearer boundary.
func (z Zone) Distance(target Date) int {
	if target.Before(z.BeginDate) {
		return ZoneLengthDays(target, z.BeginDate)
	}
	if target.After(z.EndDate) {
		return ZoneLengthDays(z.EndDate, target)
	}
	return 0
}

// NearestZone returns the zone with the minimum Distance to target,
// breaking ties by earliest begin date. ok is false for an empty slice.
func NearestZone(zones []Zone, target Date) (nearest Zone, ok bool) {
	best := -1
	for _, zone := range zones {
		distance := zone.Distance(target)
		switch {
		case best < 0 || distance < best:
			best = distance
			nearest = zone
			ok = true
		case distance == best && zone.BeginDate.Before(nearest.BeginDate):
			nearest = zone
		}
	}

	return nearest, ok
}

// SortZones orders zones by begin date ascending.
func SortZones(zones []Zone) {
	sort.Slice(zones, func(i, j int) bool {
		return zones[i].BeginDate.Before(zones[j].BeginDate)
	})
}
