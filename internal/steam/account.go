package steam

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/HSAR/GamesInCommon/internal/domain"
)

// profileResponse is the community profile XML (?xml=1). Unknown
// profiles come back as a <response> with an <error> element instead of
// a <profile>, so the root element name is deliberately not pinned.
type profileResponse struct {
	SteamID64 uint64 `xml:"steamID64"`
	SteamID   string `xml:"steamID"`
	Error     string `xml:"error"`
}

// ResolveAccount turns a vanity name or a numeric SteamID64 into a
// resolved account. The vanity lookup is tried first; if it fails and
// the input parses as a number, the numeric profile is tried instead.
func (c *Client) ResolveAccount(ctx context.Context, nameOrID string) (domain.Account, error) {
	account, vanityErr := c.profileByVanityName(ctx, nameOrID)
	if vanityErr == nil {
		return account, nil
	}

	if id64, parseErr := strconv.ParseUint(nameOrID, 10, 64); parseErr == nil {
		if account, err := c.profileByID(ctx, id64); err == nil {
			return account, nil
		}
	}

	return domain.Account{}, fmt.Errorf("%w: %q: %v", domain.ErrAccountLookup, nameOrID, vanityErr)
}

func (c *Client) profileByVanityName(ctx context.Context, name string) (domain.Account, error) {
	u := fmt.Sprintf("%s/id/%s?xml=1", c.communityURL, url.PathEscape(name))
	return c.fetchProfile(ctx, u)
}

func (c *Client) profileByID(ctx context.Context, id64 uint64) (domain.Account, error) {
	u := fmt.Sprintf("%s/profiles/%d?xml=1", c.communityURL, id64)
	return c.fetchProfile(ctx, u)
}

func (c *Client) fetchProfile(ctx context.Context, u string) (domain.Account, error) {
	resp, err := c.get(ctx, u)
	if err != nil {
		return domain.Account{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Account{}, fmt.Errorf("profile request failed: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(ctxReader{ctx: ctx, r: resp.Body}, MaxBodySize))
	if err != nil {
		return domain.Account{}, err
	}

	var profile profileResponse
	if err := xml.Unmarshal(body, &profile); err != nil {
		return domain.Account{}, fmt.Errorf("failed to parse profile: %w", err)
	}
	if profile.Error != "" {
		return domain.Account{}, fmt.Errorf("profile error: %s", profile.Error)
	}
	if profile.SteamID64 == 0 {
		return domain.Account{}, fmt.Errorf("profile has no steamID64")
	}

	return domain.Account{SteamID64: profile.SteamID64, Name: profile.SteamID}, nil
}
