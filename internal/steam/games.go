package steam

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"github.com/HSAR/GamesInCommon/internal/domain"
)

// gamesListResponse is the community owned-games XML (games?xml=1).
type gamesListResponse struct {
	XMLName xml.Name `xml:"gamesList"`
	Games   []struct {
		AppID uint32 `xml:"appID"`
		Name  string `xml:"name"`
	} `xml:"games>game"`
	Error string `xml:"error"`
}

// OwnedGames lists every game the account owns. Duplicate app ids in
// the response collapse to one entry.
func (c *Client) OwnedGames(ctx context.Context, account domain.Account) ([]domain.Game, error) {
	u := fmt.Sprintf("%s/profiles/%d/games?tab=all&xml=1", c.communityURL, account.SteamID64)

	resp, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("games request failed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(ctxReader{ctx: ctx, r: resp.Body}, MaxBodySize))
	if err != nil {
		return nil, err
	}

	var list gamesListResponse
	if err := xml.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to parse games list: %w", err)
	}
	if list.Error != "" {
		return nil, fmt.Errorf("games list error: %s", list.Error)
	}

	seen := make(map[uint32]struct{}, len(list.Games))
	games := make([]domain.Game, 0, len(list.Games))
	for _, g := range list.Games {
		if _, dup := seen[g.AppID]; dup {
			continue
		}
		seen[g.AppID] = struct{}{}
		games = append(games, domain.Game{AppID: g.AppID, Name: g.Name})
	}

	c.logger.Debug().Stringer("account", account).Int("games", len(games)).Msg("fetched library")
	return games, nil
}
