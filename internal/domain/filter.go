package domain

import "fmt"

// FilterKind is a closed, ordinal-indexed category detectable by keyword
// presence in a game's store detail payload. Ordinals are persisted, so
// the order of this block must never change; new kinds append only.
type FilterKind int

const (
	FilterMultiplayer FilterKind = iota
	FilterCoop
	FilterCrossPlatformMultiplayer
	FilterAchievements
	FilterTradingCards
	FilterWorkshop
	FilterCloud
	FilterControllerSupport
)

var filterKinds = [...]struct {
	name    string
	keyword string
}{
	FilterMultiplayer:              {"multiplayer", "Multi-player"},
	FilterCoop:                     {"coop", "Co-op"},
	FilterCrossPlatformMultiplayer: {"cross-platform-multiplayer", "Cross-Platform Multiplayer"},
	FilterAchievements:             {"achievements", "Steam Achievements"},
	FilterTradingCards:             {"trading-cards", "Steam Trading Cards"},
	FilterWorkshop:                 {"workshop", "Steam Workshop"},
	FilterCloud:                    {"cloud", "Steam Cloud"},
	FilterControllerSupport:        {"controller-support", "Full controller support"},
}

// AllFilterKinds returns every kind in ordinal order.
func AllFilterKinds() []FilterKind {
	kinds := make([]FilterKind, len(filterKinds))
	for i := range filterKinds {
		kinds[i] = FilterKind(i)
	}
	return kinds
}

// ParseFilterKind maps an API/CLI name to its kind.
func ParseFilterKind(name string) (FilterKind, error) {
	for i := range filterKinds {
		if filterKinds[i].name == name {
			return FilterKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}

func (k FilterKind) Valid() bool {
	return k >= 0 && int(k) < len(filterKinds)
}

func (k FilterKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("FilterKind(%d)", int(k))
	}
	return filterKinds[k].name
}

// Keyword is the category string scanned for, quoted, in the raw detail
// payload.
func (k FilterKind) Keyword() string {
	return filterKinds[k].keyword
}

// FilterSet is the set of kinds known for one game.
type FilterSet map[FilterKind]struct{}

func NewFilterSet(kinds ...FilterKind) FilterSet {
	s := make(FilterSet, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

func (s FilterSet) Add(k FilterKind) {
	s[k] = struct{}{}
}

func (s FilterSet) Contains(k FilterKind) bool {
	_, ok := s[k]
	return ok
}

// ContainsAll reports whether every requested kind is present.
func (s FilterSet) ContainsAll(kinds []FilterKind) bool {
	for _, k := range kinds {
		if !s.Contains(k) {
			return false
		}
	}
	return true
}

// Kinds returns the members in ordinal order.
func (s FilterSet) Kinds() []FilterKind {
	kinds := make([]FilterKind, 0, len(s))
	for i := range filterKinds {
		if s.Contains(FilterKind(i)) {
			kinds = append(kinds, FilterKind(i))
		}
	}
	return kinds
}
