// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package config

import (
	"strings"
	"testing"
)

func TestDefaultDependencyConfigSetsWaitCapacity(t *testing.T) {
	cfg := DefaultDependencyConfig()
	if cfg.WaitCapacity == 0 {
		t.Fatal("DefaultDependencyConfig().WaitCapacity = 0, want a positive default pool size")
	}
}

func TestParseOverridesWaitCapacityFromYAML(t *testing.T) {
	doc := `
dependency:
  waitCapacity: 256
`
	cfg, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Dependency.WaitCapacity != 256 {
		t.Fatalf("Dependency.WaitCapacity = %d, want 256", cfg.Dependency.WaitCapacity)
	}
	// Fields the document doesn't mention still fall back to Default.
	if cfg.Pool.MaxSetsPerBlock != DefaultPoolConfig().MaxSetsPerBlock {
		t.Fatalf("Pool.MaxSetsPerBlock = %d, want the default", cfg.Pool.MaxSetsPerBlock)
	}
}

func TestParseEmptyDocumentUsesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Dependency != DefaultDependencyConfig() {
		t.Fatalf("Dependency = %+v, want Default()", cfg.Dependency)
	}
}
