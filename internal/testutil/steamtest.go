package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/HSAR/GamesInCommon/internal/domain"
	"github.com/go-chi/chi/v5"
)

// FakeSteam serves the community and store endpoints the client talks
// to: vanity/numeric profiles, owned-games lists, and app detail
// payloads with an optional 429 budget per game.
type FakeSteam struct {
	Server *httptest.Server

	mu             sync.Mutex
	vanity         map[string]domain.Account
	profiles       map[uint64]domain.Account
	libraries      map[uint64][]domain.Game
	hanging        map[uint64]bool
	details        map[uint32]string
	throttlesLeft  map[uint32]int
	detailRequests map[uint32]int
}

func NewFakeSteam() *FakeSteam {
	f := &FakeSteam{
		vanity:         make(map[string]domain.Account),
		profiles:       make(map[uint64]domain.Account),
		libraries:      make(map[uint64][]domain.Game),
		hanging:        make(map[uint64]bool),
		details:        make(map[uint32]string),
		throttlesLeft:  make(map[uint32]int),
		detailRequests: make(map[uint32]int),
	}

	r := chi.NewRouter()
	r.Get("/id/{name}", f.handleVanity)
	r.Get("/profiles/{id64}", f.handleProfile)
	r.Get("/profiles/{id64}/games", f.handleGames)
	r.Get("/api/appdetails/", f.handleDetails)

	f.Server = httptest.NewServer(r)
	return f
}

func (f *FakeSteam) Close() {
	f.Server.Close()
}

func (f *FakeSteam) URL() string {
	return f.Server.URL
}

// AddAccount registers a vanity name resolving to the account and a
// numeric profile for it.
func (f *FakeSteam) AddAccount(vanityName string, account domain.Account, games []domain.Game) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if vanityName != "" {
		f.vanity[vanityName] = account
	}
	f.profiles[account.SteamID64] = account
	f.libraries[account.SteamID64] = games
}

// RemoveLibrary makes the account's games request fail while the
// profile keeps resolving.
func (f *FakeSteam) RemoveLibrary(id64 uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.libraries, id64)
}

// HangLibrary makes the account's games request block until the caller
// gives up, for cancellation tests.
func (f *FakeSteam) HangLibrary(id64 uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hanging[id64] = true
}

// SetDetails sets the raw detail payload returned for a game.
func (f *FakeSteam) SetDetails(appID uint32, payload string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.details[appID] = payload
}

// ThrottleNext makes the next n detail requests for the game answer 429.
func (f *FakeSteam) ThrottleNext(appID uint32, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.throttlesLeft[appID] = n
}

// DetailRequests counts detail requests seen for the game, 429s included.
func (f *FakeSteam) DetailRequests(appID uint32) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.detailRequests[appID]
}

func (f *FakeSteam) handleVanity(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	f.mu.Lock()
	account, ok := f.vanity[name]
	f.mu.Unlock()

	if !ok {
		fmt.Fprint(w, `<?xml version="1.0"?><response><error>The specified profile could not be found.</error></response>`)
		return
	}
	writeProfile(w, account)
}

func (f *FakeSteam) handleProfile(w http.ResponseWriter, r *http.Request) {
	id64, err := strconv.ParseUint(chi.URLParam(r, "id64"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	account, ok := f.profiles[id64]
	f.mu.Unlock()

	if !ok {
		fmt.Fprint(w, `<?xml version="1.0"?><response><error>The specified profile could not be found.</error></response>`)
		return
	}
	writeProfile(w, account)
}

func writeProfile(w http.ResponseWriter, account domain.Account) {
	fmt.Fprintf(w, `<?xml version="1.0"?><profile><steamID64>%d</steamID64><steamID>%s</steamID></profile>`,
		account.SteamID64, account.Name)
}

func (f *FakeSteam) handleGames(w http.ResponseWriter, r *http.Request) {
	id64, err := strconv.ParseUint(chi.URLParam(r, "id64"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	hang := f.hanging[id64]
	games, ok := f.libraries[id64]
	f.mu.Unlock()

	if hang {
		<-r.Context().Done()
		return
	}
	if !ok {
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0"?><gamesList><games>`)
	for _, g := range games {
		fmt.Fprintf(&sb, `<game><appID>%d</appID><name>%s</name></game>`, g.AppID, g.Name)
	}
	sb.WriteString(`</games></gamesList>`)
	fmt.Fprint(w, sb.String())
}

func (f *FakeSteam) handleDetails(w http.ResponseWriter, r *http.Request) {
	appID64, err := strconv.ParseUint(r.URL.Query().Get("appids"), 10, 32)
	if err != nil {
		http.Error(w, "bad appids", http.StatusBadRequest)
		return
	}
	appID := uint32(appID64)

	f.mu.Lock()
	f.detailRequests[appID]++
	throttle := f.throttlesLeft[appID] > 0
	if throttle {
		f.throttlesLeft[appID]--
	}
	payload, ok := f.details[appID]
	f.mu.Unlock()

	if throttle {
		w.WriteHeader(http.StatusTooManyRequests)
		return
	}
	if !ok {
		http.Error(w, "unknown app", http.StatusNotFound)
		return
	}
	fmt.Fprint(w, payload)
}
