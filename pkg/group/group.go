package group

import "github.com/matzehuels/kleinian/pkg/mobius"

// Group is a generating set: generators followed by their inverses.
type Group []mobius.Mobius

// Make returns gens followed by the inverse of each generator.
func Make(gens ...mobius.Mobius) Group {
	g := make(Group, 0, 2*len(gens))
	g = append(g, gens...)
	for _, m := range gens {
		g = append(g, m.Inverse())
	}
	return g
}

// Generators returns the first half of the group, the maps the recipe
// produced before inverses were appended.
func (g Group) Generators() []mobius.Mobius {
	return g[:len(g)/2]
}

// ApollonianGasket returns the "glowing gasket" of Indra's Pearls chapter 7.
func ApollonianGasket() Group {
	return Make(
		mobius.New(1, 0, -2i, 1),
		mobius.New(1-1i, 1, 1, 1+1i),
	)
}
