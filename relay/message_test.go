package relay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/digipath/relay"
)

func TestRequestKey(t *testing.T) {
	base := relay.Request{ID: "a", Origin: "6", Target: "46", Moves: []string{"81", "99"}, Excluded: []string{"18"}}

	same := base
	same.ID = "b"
	same.Moves = []string{"99", "81", "81"}
	assert.Equal(t, base.Key(), same.Key(), "ID, order and duplicates are ignored")
	assert.Len(t, base.Key(), 64)

	for name, mutate := range map[string]func(*relay.Request){
		"origin":        func(r *relay.Request) { r.Origin = "1" },
		"target":        func(r *relay.Request) { r.Target = "17" },
		"moves":         func(r *relay.Request) { r.Moves = []string{"81"} },
		"excluded":      func(r *relay.Request) { r.Excluded = nil },
		"initial abi":   func(r *relay.Request) { r.InitialABI = 5 },
		"informational": func(r *relay.Request) { r.InformationalABI = true },
	} {
		other := base
		mutate(&other)
		assert.NotEqual(t, base.Key(), other.Key(), name)
	}
}
