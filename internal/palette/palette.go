// Package palette assigns display colors to newly created entities. The pick
// is uniform over a fixed palette with no no-repeat guarantee; identity never
// depends on color.
package palette

import "math/rand"

// Default is the tag palette used when the caller supplies none.
var Default = []string{
	"blue-500",
	"green-500",
	"yellow-500",
	"purple-500",
	"pink-500",
	"red-500",
	"orange-500",
	"teal-500",
	"cyan-500",
	"indigo-500",
}

// Assigner picks colors from a fixed palette using an injectable random
// source so tests can make picks deterministic.
type Assigner struct {
	colors []string
	random *rand.Rand
}

// New creates an Assigner over the supplied palette; a nil or empty palette
// falls back to Default, a nil source to the global one.
func New(colors []string, random *rand.Rand) *Assigner {
	if len(colors) == 0 {
		colors = Default
	}
	return &Assigner{colors: colors, random: random}
}

// Pick returns a color tag selected uniformly from the palette.
func (a *Assigner) Pick() string {
	if a.random != nil {
		return a.colors[a.random.Intn(len(a.colors))]
	}
	return a.colors[rand.Intn(len(a.colors))]
}
