package steam

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/cenkalti/backoff/v4"
)

var errThrottled = errors.New("throttled by store endpoint")

// AppDetails fetches the store detail payload for a game. The body is
// opaque to this client; callers scan it as raw text.
//
// A 429 is not a failure: the call waits the configured throttle
// interval and retries the same request, with no cap on the retry
// count, until it succeeds or the context is cancelled. Any other error
// is permanent for this call.
func (c *Client) AppDetails(ctx context.Context, appID uint32) ([]byte, error) {
	u := fmt.Sprintf("%s/api/appdetails/?appids=%d", c.storeURL, appID)

	var payload []byte
	attempt := func() error {
		resp, err := c.get(ctx, u)
		if err != nil {
			return backoff.Permanent(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			c.logger.Warn().
				Uint32("appId", appID).
				Dur("wait", c.throttleWait).
				Msg("too many requests, waiting before retry")
			return errThrottled
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("detail request failed: status %d", resp.StatusCode))
		}

		body, err := io.ReadAll(io.LimitReader(ctxReader{ctx: ctx, r: resp.Body}, MaxBodySize))
		if err != nil {
			return backoff.Permanent(err)
		}
		payload = body
		return nil
	}

	policy := backoff.WithContext(backoff.NewConstantBackOff(c.throttleWait), ctx)
	if err := backoff.Retry(attempt, policy); err != nil {
		return nil, err
	}
	return payload, nil
}
