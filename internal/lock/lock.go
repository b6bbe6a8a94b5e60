// Package lock guards a profile's state behind an optional passcode.
// Locking is in-process: the bcrypt hash lives in memory and a restart
// clears it.
package lock

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const minPasscodeLen = 4

var (
	// ErrBadPasscode indicates the supplied passcode does not match.
	ErrBadPasscode = errors.New("invalid passcode")
	// ErrNotLocked indicates an unlock attempt on an unlocked profile.
	ErrNotLocked = errors.New("profile is not locked")
	// ErrAlreadyLocked indicates a lock attempt on a locked profile.
	ErrAlreadyLocked = errors.New("profile is already locked")
	// ErrPasscodeTooShort indicates the passcode is below the minimum length.
	ErrPasscodeTooShort = fmt.Errorf("passcode must be at least %d characters", minPasscodeLen)
)

// Guard holds per-profile passcode hashes. Safe for concurrent use.
type Guard struct {
	mu     sync.Mutex
	hashes map[string][]byte
}

func NewGuard() *Guard {
	return &Guard{hashes: make(map[string][]byte)}
}

// Lock sets a passcode on the profile.
func (g *Guard) Lock(profile, passcode string) error {
	if len(passcode) < minPasscodeLen {
		return ErrPasscodeTooShort
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.hashes[profile]; ok {
		return ErrAlreadyLocked
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash passcode: %w", err)
	}
	g.hashes[profile] = hash
	return nil
}

// Unlock removes the passcode after verifying it.
func (g *Guard) Unlock(profile, passcode string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	hash, ok := g.hashes[profile]
	if !ok {
		return ErrNotLocked
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(passcode)); err != nil {
		return ErrBadPasscode
	}
	delete(g.hashes, profile)
	return nil
}

// Verify checks the passcode without changing the lock state. An
// unlocked profile accepts any passcode.
func (g *Guard) Verify(profile, passcode string) error {
	g.mu.Lock()
	hash, ok := g.hashes[profile]
	g.mu.Unlock()

	if !ok {
		return nil
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(passcode)); err != nil {
		return ErrBadPasscode
	}
	return nil
}

// Locked reports whether the profile has a passcode set.
func (g *Guard) Locked(profile string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.hashes[profile]
	return ok
}
