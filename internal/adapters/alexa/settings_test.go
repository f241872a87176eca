package alexa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	perr "devstreams/internal/platform/errors"
)

// toServer sends every request to srv, keeping path and headers
type toServer struct{ target *url.URL }

func (ts toServer) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.URL.Scheme = ts.target.Scheme
	r.URL.Host = ts.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

func newSettings(t *testing.T, h http.HandlerFunc) *Settings {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	return NewSettings(0, toServer{target: u})
}

func TestTimeZone(t *testing.T) {
	s := newSettings(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/devices/dev-1/settings/System.timeZone" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Host != "api.eu.amazonalexa.com" {
			t.Errorf("host = %s", r.Host)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("auth = %q", r.Header.Get("Authorization"))
		}
		_, _ = w.Write([]byte(`"Europe/London"`))
	})

	tz, err := s.TimeZone(context.Background(), Device{APIEndpoint: "https://api.eu.amazonalexa.com/", APIAccessToken: "tok", DeviceID: "dev-1"})
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if tz != "Europe/London" {
		t.Fatalf("tz = %q", tz)
	}
}

func TestTimeZone_EscapesDeviceID(t *testing.T) {
	s := newSettings(t, func(w http.ResponseWriter, r *http.Request) {
		if r.RequestURI != "/v2/devices/a%2F..%2Fb%3Fx/settings/System.timeZone" {
			t.Errorf("uri = %s", r.RequestURI)
		}
		_, _ = w.Write([]byte(`"UTC"`))
	})

	if _, err := s.TimeZone(context.Background(), Device{APIEndpoint: "https://api.amazonalexa.com", APIAccessToken: "t", DeviceID: "a/../b?x"}); err != nil {
		t.Fatalf("err = %v", err)
	}
}

func TestTimeZone_RejectsForeignEndpoint(t *testing.T) {
	var hits atomic.Int32
	s := newSettings(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`"UTC"`))
	})

	for _, ep := range []string{
		"https://attacker.example",
		"http://api.amazonalexa.com",
		"https://api.amazonalexa.com.attacker.example",
		"https://user@api.amazonalexa.com",
		"https://api.amazonalexa.com:8443",
		"https://169.254.169.254/latest",
		"://broken",
	} {
		_, err := s.TimeZone(context.Background(), Device{APIEndpoint: ep, APIAccessToken: "t", DeviceID: "d"})
		if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
			t.Errorf("endpoint %q: code = %v", ep, perr.CodeOf(err))
		}
	}
	if n := hits.Load(); n != 0 {
		t.Fatalf("%d requests left the process", n)
	}
}

func TestTimeZone_Status(t *testing.T) {
	s := newSettings(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := s.TimeZone(context.Background(), Device{APIEndpoint: "https://api.fe.amazonalexa.com", APIAccessToken: "t", DeviceID: "d"})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("code = %v", perr.CodeOf(err))
	}
}

func TestTimeZone_NoRedirects(t *testing.T) {
	s := newSettings(t, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://attacker.example/steal", http.StatusFound)
	})

	_, err := s.TimeZone(context.Background(), Device{APIEndpoint: "https://api.amazonalexa.com", APIAccessToken: "t", DeviceID: "d"})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("code = %v", perr.CodeOf(err))
	}
}

func TestTimeZone_IncompleteDevice(t *testing.T) {
	_, err := NewSettings(0, nil).TimeZone(context.Background(), Device{DeviceID: "d"})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("code = %v", perr.CodeOf(err))
	}
}

func TestParseZone(t *testing.T) {
	for in, want := range map[string]string{
		`"America/Chicago"`: "America/Chicago",
		"Asia/Tokyo\n":      "Asia/Tokyo",
		`"Europe/Paris`:     "Europe/Paris",
	} {
		if got := parseZone([]byte(in)); got != want {
			t.Errorf("parseZone(%q) = %q, want %q", in, got, want)
		}
	}
}
