package version

import (
	"runtime"
	"testing"
)

func TestInfo(t *testing.T) {
	bi := Info()
	if bi.Service != "devstreams-api" || bi.Version != "dev" || bi.GoVersion != runtime.Version() {
		t.Fatalf("info = %+v", bi)
	}
	if bi.Commit == "" || bi.Date == "" {
		t.Fatalf("commit and date need a fallback: %+v", bi)
	}
}

func TestInfoPrefersLinkerValues(t *testing.T) {
	oldCommit, oldDate := commit, date
	t.Cleanup(func() { commit, date = oldCommit, oldDate })

	commit, date = "a1b2c3", "2026-03-01T10:00:00Z"
	if bi := Info(); bi.Commit != "a1b2c3" || bi.Date != "2026-03-01T10:00:00Z" {
		t.Fatalf("info = %+v", bi)
	}
}

func TestSetService(t *testing.T) {
	old := service
	t.Cleanup(func() { service = old })

	SetService("")
	if Info().Service != old {
		t.Fatal("empty name should be ignored")
	}
	SetService("devstreams-cli")
	if Info().Service != "devstreams-cli" {
		t.Fatalf("service = %q", Info().Service)
	}
}
