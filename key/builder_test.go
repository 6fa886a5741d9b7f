// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package key

import "testing"

func TestBuilderFinalizeConcatenatesPushes(t *testing.T) {
	b := NewBuilder()
	b.PushUint32(4).PushUint32(2).PushUint64(0xAAAA).PushUint64(0xBBBB).PushUint32(0)

	k, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	want := []byte{
		4, 0, 0, 0, // tag
		2, 0, 0, 0, // setLayoutCount
		0xAA, 0xAA, 0, 0, 0, 0, 0, 0, // handle 0
		0xBB, 0xBB, 0, 0, 0, 0, 0, 0, // handle 1
		0, 0, 0, 0, // pushCount
	}
	if k.Len() != len(want) {
		t.Fatalf("len = %d, want %d", k.Len(), len(want))
	}
	if !k.Equal(NewHashKey(want)) {
		t.Fatalf("bytes = %x, want %x", k.Bytes(), want)
	}
}

func TestBuilderOrderSensitive(t *testing.T) {
	a := NewBuilder()
	a.PushUint32(4).PushUint32(2).PushUint64(0xAAAA).PushUint64(0xBBBB).PushUint32(0)
	ka, err := a.Finalize()
	if err != nil {
		t.Fatal(err)
	}

	b := NewBuilder()
	b.PushUint32(4).PushUint32(2).PushUint64(0xBBBB).PushUint64(0xAAAA).PushUint32(0)
	kb, err := b.Finalize()
	if err != nil {
		t.Fatal(err)
	}

	if ka.Equal(kb) {
		t.Fatal("keys built from reordered handles must differ")
	}
}

func TestBuilderEquivalentInputsProduceIdenticalKeys(t *testing.T) {
	build := func() HashKey {
		b := NewBuilder()
		b.PushUint32(7).PushBool(true).PushBlob([]byte{1, 2, 3})
		k, err := b.Finalize()
		if err != nil {
			t.Fatal(err)
		}
		return k
	}

	k1, k2 := build(), build()
	if !k1.Equal(k2) {
		t.Fatal("two builds from logically identical pushes must be byte-identical")
	}
	if k1.Hash() != k2.Hash() {
		t.Fatal("hash must be stable for identical keys")
	}
}

func TestBuilderCompareSelf(t *testing.T) {
	b := NewBuilder()
	b.Push([]byte("anything"))
	k, err := b.Finalize()
	if err != nil {
		t.Fatal(err)
	}
	if !k.Equal(k) {
		t.Fatal("compare(k, k) must be 0/equal")
	}
}

func TestBuilderFailureIsSticky(t *testing.T) {
	b := &Builder{}
	b.failed = true // simulate an earlier overflow
	b.PushUint32(1)
	if !b.Failed() {
		t.Fatal("failure must remain sticky across further pushes")
	}
	if _, err := b.Finalize(); err != ErrBuilderFailed {
		t.Fatalf("Finalize() err = %v, want ErrBuilderFailed", err)
	}
}

func TestBuilderOverflowMarksFailed(t *testing.T) {
	b := NewBuilder()
	big := make([]byte, maxKeyBytes+1)
	b.Push(big)
	if !b.Failed() {
		t.Fatal("pushing past maxKeyBytes must mark the builder failed")
	}
	if _, err := b.Finalize(); err == nil {
		t.Fatal("Finalize should fail after overflow")
	}
}

func TestBuilderResetClearsFailure(t *testing.T) {
	b := NewBuilder()
	b.Push(make([]byte, maxKeyBytes+1))
	if !b.Failed() {
		t.Fatal("expected failure before reset")
	}
	b.Reset()
	if b.Failed() {
		t.Fatal("Reset must clear failure state")
	}
	b.PushByte(1)
	if _, err := b.Finalize(); err != nil {
		t.Fatalf("Finalize after reset: %v", err)
	}
}
