package domain

// Game is a single catalog entry in a user's library. AppID is the
// identity used for set membership; Name is advisory and must never be
// compared.
type Game struct {
	AppID uint32 `json:"appId"`
	Name  string `json:"name"`
}

// Library is one account's owned-game collection.
type Library struct {
	Account Account `json:"account"`
	Games   []Game  `json:"games"`
}
