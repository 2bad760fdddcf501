package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionAllowed(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{"pending", "in_progress", true},
		{"pending", "approved", true},
		{"pending", "rejected", true},
		{"pending", "cancelled", true},
		{"pending", "completed", false},
		{"in_progress", "approved", true},
		{"in_progress", "rejected", true},
		{"approved", "completed", true},
		{"approved", "rejected", false},
		{"rejected", "approved", false},
		{"completed", "pending", false},
		{"cancelled", "in_progress", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, transitionAllowed(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}
