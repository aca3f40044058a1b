package assertion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type flag bool

func (f flag) Truth() bool { return bool(f) }

func TestTruthy(t *testing.T) {
	var nilPtr *int
	var nilMap map[string]int
	var nilFunc func()
	one := 1

	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"zero int", 0, false},
		{"int", -1, true},
		{"zero uint", uint8(0), false},
		{"zero float", 0.0, false},
		{"nan", math.NaN(), true},
		{"zero complex", complex(0, 0), false},
		{"complex", complex(0, 1), true},
		{"empty string", "", false},
		{"string", "x", true},
		{"empty array", [0]int{}, false},
		{"array", [1]int{0}, true},
		{"nil slice", []int(nil), false},
		{"empty slice", []int{}, false},
		{"slice", []int{0}, true},
		{"nil map", nilMap, false},
		{"empty map", map[string]int{}, false},
		{"map", map[string]int{"k": 0}, true},
		{"nil pointer", nilPtr, false},
		{"pointer", &one, true},
		{"nil func", nilFunc, false},
		{"func", func() {}, true},
		{"nil chan", (chan int)(nil), false},
		{"chan", make(chan int), true},
		{"struct", struct{}{}, true},
		{"truther false", flag(false), false},
		{"truther true", flag(true), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truthy(tt.v))
		})
	}
}
