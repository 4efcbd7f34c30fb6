package utils

import (
	"sync"
	"time"
)

// Blacklist -> token admin yang sudah logout
type Blacklist struct {
	tokens map[string]time.Time
	mu     sync.RWMutex
}

func NewBlacklist() *Blacklist {
	return &Blacklist{tokens: make(map[string]time.Time)}
}

func (b *Blacklist) Add(token string, expiry time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[token] = expiry
	b.sweepLocked(time.Now())
}

func (b *Blacklist) Contains(token string) bool {
	b.mu.RLock()
	expiry, exists := b.tokens[token]
	b.mu.RUnlock()
	return exists && time.Now().Before(expiry)
}

// Hapus token kadaluarsa, dipanggil saat Add
func (b *Blacklist) sweepLocked(now time.Time) {
	for token, expiry := range b.tokens {
		if now.After(expiry) {
			delete(b.tokens, token)
		}
	}
}
