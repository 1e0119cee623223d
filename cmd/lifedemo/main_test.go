// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"testing"

	"github.com/gogpu/life"
)

func TestUint32Flag(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"0", 0, false},
		{"512", 512, false},
		{"4294967295", 4294967295, false},
		{"4294967296", 0, true},
		{"-1", 0, true},
		{"wide", 0, true},
	}
	for _, tt := range tests {
		var f uint32Flag
		err := f.Set(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Set(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && uint32(f) != tt.want {
			t.Errorf("Set(%q) = %d, want %d", tt.in, f, tt.want)
		}
	}

	f := uint32Flag(64)
	if f.String() != "64" {
		t.Errorf("String() = %q, want 64", f.String())
	}
}

func TestDemoReturnsErrors(t *testing.T) {
	cfg := config{width: 0, height: 8, surfW: 16, surfH: 16, backend: "software", frames: 1}
	if err := demo(cfg); !errors.Is(err, life.ErrInvalidDimensions) {
		t.Errorf("demo error = %v, want ErrInvalidDimensions", err)
	}
}
