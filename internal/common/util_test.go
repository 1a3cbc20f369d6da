package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestSentinels_AreDistinctAndWrappable(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidCredential, ErrAccountSuspended,
		ErrDuplicateEmail, ErrAlreadyExists, ErrProtectedAccount,
		ErrValidation, ErrNoSession,
	}
	for i, a := range all {
		wrapped := fmt.Errorf("op failed: %w", a)
		if !errors.Is(wrapped, a) {
			t.Fatalf("%v is lost after wrapping", a)
		}
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Fatalf("%v must not match %v", a, b)
			}
		}
	}
}
