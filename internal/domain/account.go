package domain

import "strconv"

// Account is a resolved Steam account. SteamID64 is the stable identity;
// Name is display-only.
type Account struct {
	SteamID64 uint64 `json:"steamId64"`
	Name      string `json:"name"`
}

func (a Account) String() string {
	if a.Name != "" {
		return a.Name + " (" + strconv.FormatUint(a.SteamID64, 10) + ")"
	}
	return strconv.FormatUint(a.SteamID64, 10)
}
