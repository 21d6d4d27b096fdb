package domain

import "time"

type Gender string

const (
	GenderGents  Gender = "Gents"
	GenderLadies Gender = "Ladies"
)

// Group is the weekday sewa group a sewadar belongs to, or "Ladies".
// Sessions additionally use GroupGlobal for consolidated duties.
type Group string

const (
	GroupMonday    Group = "Monday"
	GroupTuesday   Group = "Tuesday"
	GroupWednesday Group = "Wednesday"
	GroupThursday  Group = "Thursday"
	GroupFriday    Group = "Friday"
	GroupSaturday  Group = "Saturday"
	GroupSunday    Group = "Sunday"
	GroupLadies    Group = "Ladies"
	GroupGlobal    Group = "Global"
)

var GentsGroups = []Group{
	GroupMonday, GroupTuesday, GroupWednesday, GroupThursday,
	GroupFriday, GroupSaturday, GroupSunday,
}

func IsRosterGroup(g Group) bool {
	if g == GroupLadies {
		return true
	}
	for _, gg := range GentsGroups {
		if g == gg {
			return true
		}
	}
	return false
}

type Sewadar struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Gender    Gender    `json:"gender"`
	HomeGroup Group     `json:"homeGroup"`
	IsCustom  bool      `json:"isCustom"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
