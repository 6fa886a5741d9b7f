// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package assert

import "testing"

func TestThatPanicsOnFalseWhenEnabled(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(true)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a failed assertion")
		}
	}()
	That(false, "boom")
}

func TestThatNoopWhenDisabled(t *testing.T) {
	SetEnabled(false)
	defer SetEnabled(true)

	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic with assertions disabled: %v", r)
		}
	}()
	That(false, "should not panic")
}

func TestThatDoesNothingOnTrue(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(true)
	That(true, "never reached")
}
