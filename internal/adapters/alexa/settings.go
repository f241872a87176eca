// Package alexa reads device settings from the Alexa settings API
package alexa

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	perr "devstreams/internal/platform/errors"
	"devstreams/internal/platform/logger"
)

const defaultTimeout = 2 * time.Second

// apiHosts are the regional settings API hosts. The endpoint arrives in the
// request body, anything else is refused so the bearer token stays with Amazon
var apiHosts = map[string]bool{
	"api.amazonalexa.com":    true,
	"api.eu.amazonalexa.com": true,
	"api.fe.amazonalexa.com": true,
}

// Device identifies the caller device and carries the short lived token
// issued with each skill request
type Device struct {
	APIEndpoint    string
	APIAccessToken string
	DeviceID       string
}

// Valid reports whether the device carries enough to call the settings API
func (d Device) Valid() bool {
	return d.APIEndpoint != "" && d.APIAccessToken != "" && d.DeviceID != ""
}

// Settings fetches per device settings
type Settings struct {
	http *http.Client
	log  logger.Logger
}

// NewSettings returns a settings client. A zero timeout uses the default
func NewSettings(timeout time.Duration, tr http.RoundTripper) *Settings {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Settings{
		http: &http.Client{
			Timeout:   timeout,
			Transport: tr,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		log: *logger.Named("alexa"),
	}
}

// TimeZone returns the IANA zone configured on the device, e.g. "Europe/London"
func (s *Settings) TimeZone(ctx context.Context, d Device) (string, error) {
	if !d.Valid() {
		return "", perr.InvalidArgf("alexa device context incomplete")
	}
	host, err := apiHost(d.APIEndpoint)
	if err != nil {
		return "", err
	}
	u := "https://" + host + "/v2/devices/" + url.PathEscape(d.DeviceID) + "/settings/System.timeZone"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "alexa new request failed")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.APIAccessToken)

	resp, err := s.http.Do(req)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "alexa settings failed")
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.log.Error().Err(cerr).Msg("alexa close body failed")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnavailable, "alexa settings read failed")
	}
	if resp.StatusCode != http.StatusOK {
		return "", perr.Newf(perr.ErrorCodeUnavailable, "alexa settings status %d", resp.StatusCode)
	}
	return parseZone(body), nil
}

// apiHost returns the host of endpoint when it is an https URL on one of the
// settings API hosts
func apiHost(endpoint string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "alexa api endpoint unparseable")
	}
	host := strings.ToLower(u.Hostname())
	if u.Scheme != "https" || u.User != nil || !apiHosts[host] || (u.Port() != "" && u.Port() != "443") {
		return "", perr.WithField(perr.InvalidArgf("alexa api endpoint %q not allowed", endpoint), "apiEndpoint")
	}
	return host, nil
}

// parseZone accepts a JSON string literal or a bare name
func parseZone(b []byte) string {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.Trim(strings.TrimSpace(string(b)), `"`)
}
