package relay

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/katalvlaran/digipath/abi"
	"github.com/katalvlaran/digipath/pathfind"
)

var validate = validator.New()

// Request asks for a route. It is a plain value; nothing in it is shared
// with the worker that serves it.
type Request struct {
	// ID correlates the response; Pool assigns a UUID when empty.
	ID string `json:"id,omitempty"`

	Origin string `json:"origin" validate:"required"`
	Target string `json:"target" validate:"required"`

	// Moves that must be secured on the way.
	Moves []string `json:"moves,omitempty" validate:"dive,required"`

	// Excluded digimon may not appear anywhere on the route.
	Excluded []string `json:"excluded,omitempty" validate:"dive,required"`

	InitialABI       int  `json:"initialAbi,omitempty" validate:"gte=0,lte=200"`
	InformationalABI bool `json:"informationalAbi,omitempty"`
}

// Validate checks the request fields.
func (r Request) Validate() error {
	return validate.Struct(r)
}

// Key returns a digest of everything that affects the answer. Move and
// exclusion order and duplicates do not change it; ID is not part of it.
func (r Request) Key() string {
	canonical := struct {
		Origin        string   `json:"o"`
		Target        string   `json:"t"`
		Moves         []string `json:"m"`
		Excluded      []string `json:"x"`
		InitialABI    int      `json:"a"`
		Informational bool     `json:"i"`
	}{
		Origin:        r.Origin,
		Target:        r.Target,
		Moves:         sortedSet(r.Moves),
		Excluded:      sortedSet(r.Excluded),
		InitialABI:    abi.Clamp(r.InitialABI),
		Informational: r.InformationalABI,
	}
	// Marshalling plain strings, ints and bools cannot fail.
	data, _ := json.Marshal(canonical)
	sum := sha256.Sum256(data)

	return hex.EncodeToString(sum[:])
}

// options converts the request into search options.
func (r Request) options() []pathfind.Option {
	opts := []pathfind.Option{
		pathfind.WithMoves(r.Moves...),
		pathfind.WithExcluded(r.Excluded...),
		pathfind.WithInitialABI(r.InitialABI),
	}
	if r.InformationalABI {
		opts = append(opts, pathfind.WithInformationalABI())
	}

	return opts
}

func sortedSet(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)

	return out
}

// Response is the answer to a Request.
type Response struct {
	ID      string           `json:"id"`
	Found   bool             `json:"found"`
	Outcome pathfind.Outcome `json:"outcome,omitempty"`
	Cost    int              `json:"cost"`
	Path    []pathfind.Step  `json:"path,omitempty"`
	Stats   pathfind.Stats   `json:"stats"`

	// Cached is true when the answer came from the result cache.
	Cached bool `json:"cached,omitempty"`

	// Error is set by Submit when the request failed.
	Error string `json:"error,omitempty"`
}

func newResponse(res *pathfind.Result) Response {
	return Response{
		Found:   res.Found(),
		Outcome: res.Outcome,
		Cost:    res.Cost,
		Path:    res.Path,
		Stats:   res.Stats,
	}
}
