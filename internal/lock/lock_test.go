package lock

import (
	"errors"
	"testing"
)

func TestLockUnlock(t *testing.T) {
	g := NewGuard()

	if g.Locked("default") {
		t.Fatal("fresh guard should be unlocked")
	}
	if err := g.Lock("default", "s3cret"); err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	if !g.Locked("default") {
		t.Fatal("profile should be locked")
	}

	if err := g.Unlock("default", "wrong"); !errors.Is(err, ErrBadPasscode) {
		t.Fatalf("Unlock(wrong) error = %v, want ErrBadPasscode", err)
	}
	if !g.Locked("default") {
		t.Fatal("failed unlock must not clear the lock")
	}

	if err := g.Unlock("default", "s3cret"); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
	if g.Locked("default") {
		t.Fatal("profile should be unlocked")
	}
}

func TestLockValidation(t *testing.T) {
	g := NewGuard()

	if err := g.Lock("default", "abc"); !errors.Is(err, ErrPasscodeTooShort) {
		t.Fatalf("short passcode error = %v", err)
	}
	if err := g.Lock("default", "s3cret"); err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	if err := g.Lock("default", "another"); !errors.Is(err, ErrAlreadyLocked) {
		t.Fatalf("double lock error = %v", err)
	}
	if err := g.Unlock("other", "s3cret"); !errors.Is(err, ErrNotLocked) {
		t.Fatalf("unlock unlocked error = %v", err)
	}
}

func TestVerify(t *testing.T) {
	g := NewGuard()

	if err := g.Verify("default", ""); err != nil {
		t.Fatalf("unlocked profile should accept any passcode: %v", err)
	}

	if err := g.Lock("default", "s3cret"); err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	if err := g.Verify("default", "s3cret"); err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if err := g.Verify("default", "nope"); !errors.Is(err, ErrBadPasscode) {
		t.Fatalf("Verify(bad) error = %v", err)
	}
	if !g.Locked("default") {
		t.Fatal("Verify must not change lock state")
	}
}

func TestProfilesIndependent(t *testing.T) {
	g := NewGuard()
	if err := g.Lock("alpha", "s3cret"); err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	if g.Locked("beta") {
		t.Fatal("beta should be unaffected")
	}
}
