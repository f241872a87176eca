package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("DOTENV_TWITCH_CLIENT_ID=abc\nDOTENV_KEEP=file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOTENV_KEEP", "env")
	t.Setenv("DOTENV_TWITCH_CLIENT_ID", "")
	_ = os.Unsetenv("DOTENV_TWITCH_CLIENT_ID")

	loaded, err := LoadDotEnv(filepath.Join(dir, "missing.env"), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != path {
		t.Fatalf("loaded = %v", loaded)
	}
	c := New().Prefix("DOTENV_")
	if got := c.MayString("TWITCH_CLIENT_ID", ""); got != "abc" {
		t.Fatalf("client id = %q", got)
	}
	if got := c.MayString("KEEP", ""); got != "env" {
		t.Fatalf("existing env overwritten: %q", got)
	}
}
