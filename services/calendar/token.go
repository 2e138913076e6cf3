package calendar

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

// TokenStore persists the OAuth token to disk so the one-time consent
// survives restarts. Refreshed tokens are written back through Save.
type TokenStore struct {
	path string
	mu   sync.Mutex
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Load returns the saved token, or nil when none has been stored yet.
func (s *TokenStore) Load() *oauth2.Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil
	}
	return &tok
}

func (s *TokenStore) Save(tok *oauth2.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// persistingTokenSource wraps a TokenSource and writes refreshed tokens
// back to the store.
type persistingTokenSource struct {
	src   oauth2.TokenSource
	store *TokenStore
	last  *oauth2.Token
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := p.src.Token()
	if err != nil {
		return nil, err
	}
	if p.last == nil || tok.AccessToken != p.last.AccessToken {
		// Keep the refresh token when Google omits it on refresh.
		if tok.RefreshToken == "" && p.last != nil {
			tok.RefreshToken = p.last.RefreshToken
		}
		if err := p.store.Save(tok); err == nil {
			p.last = tok
		}
	}
	return tok, nil
}
