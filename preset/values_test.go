package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFraction(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1/2", "50%", true},
		{"1/3", "33.333333%", true},
		{"2/3", "66.666667%", true},
		{"11/12", "91.666667%", true},
		{"3/0", "", false},
		{"1/x", "", false},
		{"4", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := fraction(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsLength(t *testing.T) {
	for _, v := range []string{"14px", "1.5rem", ".5em", "100%", "0", "calc(100% - 1rem)", "clamp(1rem, 2vw, 3rem)"} {
		assert.True(t, isLength(v), v)
	}
	for _, v := range []string{"#333", "red", "rgb(0 0 0)", "var(--c)", "px"} {
		assert.False(t, isLength(v), v)
	}
}

func TestColor(t *testing.T) {
	th := Theme()

	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"black", "#000000", true},
		{"red-500", "#ef4444", true},
		{"gray-950", "#030712", true},
		{"[#abc]", "#abc", true},
		{"red", "", false},
		{"red-501", "", false},
		{"nope-500", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := color(th, tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScale(t *testing.T) {
	th := Theme()
	s := scale{group: "spacing", fractions: true, keywords: map[string]string{"auto": "auto"}}

	v, ok := s.value(th, "4")
	assert.True(t, ok)
	assert.Equal(t, "1rem", v)

	v, ok = s.value(th, "auto")
	assert.True(t, ok)
	assert.Equal(t, "auto", v)

	v, ok = s.value(th, "1/4")
	assert.True(t, ok)
	assert.Equal(t, "25%", v)

	v, ok = s.value(th, "[7px]")
	assert.True(t, ok)
	assert.Equal(t, "7px", v)

	_, ok = s.value(th, "13")
	assert.False(t, ok)
}
