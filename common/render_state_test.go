package common

import "testing"

func TestEffectiveCullMode(t *testing.T) {
	tests := []struct {
		name     string
		mode     CullMode
		reversed bool
		want     CullMode
	}{
		{name: "cw not reversed", mode: CullCW, reversed: false, want: CullCW},
		{name: "cw reversed flips", mode: CullCW, reversed: true, want: CullCCW},
		{name: "ccw reversed flips", mode: CullCCW, reversed: true, want: CullCW},
		{name: "none never flips", mode: CullNone, reversed: true, want: CullNone},
		{name: "none not reversed", mode: CullNone, reversed: false, want: CullNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EffectiveCullMode(tt.mode, tt.reversed); got != tt.want {
				t.Errorf("EffectiveCullMode(%v, %v) = %v, want %v", tt.mode, tt.reversed, got, tt.want)
			}
		})
	}
}

func TestResolveCullMode(t *testing.T) {
	tests := []struct {
		name     string
		passMode CullMode
		matMode  CullMode
		reversed bool
		want     CullMode
	}{
		{name: "pass wins over material", passMode: CullCW, matMode: CullCCW, reversed: false, want: CullCW},
		{name: "inherit falls back to material", passMode: CullInherit, matMode: CullCCW, reversed: false, want: CullCCW},
		{name: "inherit with reversal", passMode: CullInherit, matMode: CullCCW, reversed: true, want: CullCW},
		{name: "pass none survives reversal", passMode: CullNone, matMode: CullCCW, reversed: true, want: CullNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveCullMode(tt.passMode, tt.matMode, tt.reversed); got != tt.want {
				t.Errorf("ResolveCullMode(%v, %v, %v) = %v, want %v", tt.passMode, tt.matMode, tt.reversed, got, tt.want)
			}
		})
	}
}
