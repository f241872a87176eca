package twitch

import (
	"context"
	"net/url"
)

// Users looks up users by login name. Unknown logins are simply absent from the result.
// Requests are batched at MaxPerRequest names
func (c *Client) Users(ctx context.Context, logins []string) ([]User, error) {
	var out []User
	for _, batch := range chunk(logins, MaxPerRequest) {
		q := url.Values{}
		for _, l := range batch {
			q.Add("login", l)
		}
		var p page[User]
		if err := c.get(ctx, "/users", q, &p); err != nil {
			return nil, err
		}
		out = append(out, p.Data...)
	}
	return out, nil
}

// Streams returns the live streams among userIDs. Offline users are absent
func (c *Client) Streams(ctx context.Context, userIDs []string) ([]Stream, error) {
	var out []Stream
	for _, batch := range chunk(userIDs, MaxPerRequest) {
		q := url.Values{}
		q.Set("first", "100")
		for _, id := range batch {
			q.Add("user_id", id)
		}
		var p page[Stream]
		if err := c.get(ctx, "/streams", q, &p); err != nil {
			return nil, err
		}
		out = append(out, p.Data...)
	}
	return out, nil
}

// chunk splits xs into runs of at most n, dropping nothing
func chunk(xs []string, n int) [][]string {
	if len(xs) == 0 {
		return nil
	}
	out := make([][]string, 0, (len(xs)+n-1)/n)
	for len(xs) > n {
		out = append(out, xs[:n])
		xs = xs[n:]
	}
	return append(out, xs)
}
