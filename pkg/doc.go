// Package pkg provides the libraries behind kleinian, a generator of
// Kleinian group fractals for flame renderers.
//
// # Overview
//
// Kleinian groups are discrete groups of Möbius transformations. Their limit
// sets are the fractals this project draws. The pkg directory is organized
// into three areas:
//
//  1. Math: [mobius] (transformations), [cline] (circles and lines),
//     [group] (generator sets and Grandma's recipe), [parametric] (curves
//     through parameter space)
//  2. Output: [flame] (Apophysis/Chaotica .flame XML), [atlas] (lattice
//     sweeps), [animation] (frame sequences from description files)
//  3. Infrastructure: [pipeline] (cached jobs), [cache], [api] (HTTP),
//     [observability], [errors], [buildinfo]
//
// # Data Flow
//
//	traces (ta, tb)
//	      ↓
//	[group] Grandma's recipe → 4 Möbius generators
//	      ↓
//	[flame] one xform per generator
//	      ↓
//	.flame file → external renderer
//
// # Quick Start
//
//	gens, err := group.GrandmasRecipe(2, 2, group.MinusRoot)
//	if err != nil {
//	    // INVALID_PARAMETERS: the traces admit no group
//	}
//	pack := flame.Pack{Name: "Gasket", Flames: []flame.Flame{{
//	    Name:    "Gasket",
//	    Xforms:  gens,
//	    Palette: flame.RandomPalette(flame.NewRand(42)),
//	    Zoom:    1,
//	    Size:    flame.DefaultSize,
//	}}}
//	err = pack.Export("gasket.flame")
//
// The math packages never log and never panic on bad input: every
// division that can vanish returns an error carrying a code from [errors].
package pkg
