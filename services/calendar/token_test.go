package calendar

import (
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestTokenStoreRoundTrip(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "auth", "token.json"))

	if tok := store.Load(); tok != nil {
		t.Fatalf("expected nil before first save, got %+v", tok)
	}

	want := &oauth2.Token{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).UTC(),
	}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := store.Load()
	if got == nil {
		t.Fatal("Load returned nil after save")
	}
	if got.AccessToken != want.AccessToken || got.RefreshToken != want.RefreshToken {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

type staticTokenSource struct {
	tok *oauth2.Token
}

func (s *staticTokenSource) Token() (*oauth2.Token, error) { return s.tok, nil }

func TestPersistingTokenSourceKeepsRefreshToken(t *testing.T) {
	store := NewTokenStore(filepath.Join(t.TempDir(), "token.json"))
	initial := &oauth2.Token{AccessToken: "access-1", RefreshToken: "refresh-1"}
	if err := store.Save(initial); err != nil {
		t.Fatal(err)
	}

	// A refresh response typically omits the refresh token.
	refreshed := &oauth2.Token{AccessToken: "access-2"}
	src := &persistingTokenSource{
		src:   &staticTokenSource{tok: refreshed},
		store: store,
		last:  initial,
	}

	tok, err := src.Token()
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if tok.RefreshToken != "refresh-1" {
		t.Errorf("refresh token lost: %+v", tok)
	}

	saved := store.Load()
	if saved == nil || saved.AccessToken != "access-2" || saved.RefreshToken != "refresh-1" {
		t.Errorf("persisted token mismatch: %+v", saved)
	}
}
