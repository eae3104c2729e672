package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiredLamports(t *testing.T) {
	cases := []struct {
		name string
		fee  float64
		want int64
	}{
		{"zero fee", 0, 0},
		{"exact fraction", 0.05, 50_000_000},
		{"whole sol", 1, LamportsPerSol},
		// 0.29 is not exactly representable; a bare int64 cast would
		// yield 289_999_999.
		{"inexact fraction", 0.29, 290_000_000},
		{"inexact fraction 2", 0.57, 570_000_000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &Config{PlatformFeeSOL: tc.fee}
			assert.Equal(t, tc.want, cfg.RequiredLamports())
		})
	}
}
