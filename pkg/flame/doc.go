// Package flame writes groups of Möbius maps as flame fractal parameters
// for Apophysis and Chaotica.
//
// # Overview
//
// kleinian does not render fractals. It produces .flame files: XML that
// an external renderer iterates. Each [Flame] lists one <xform> per map in
// a [group.Group] with the mobius variation enabled and the eight real
// coefficients Re_A … Im_D, a <finalxform> whose linear weight acts as a
// zoom, and a 256 color [Palette]. A [Pack] bundles many flames into one
// file, such as all frames of an animation or a whole atlas sweep.
//
//	pack := flame.Pack{Name: "Demo", Flames: []flame.Flame{{
//	    Name:    "gasket",
//	    Xforms:  group.ApollonianGasket(),
//	    Palette: flame.RandomPalette(flame.NewRand(42)),
//	    Zoom:    1,
//	    Size:    flame.DefaultSize,
//	}}}
//	err := pack.Export("demo.flame")
//
// Names, sizes and output paths are checked with the validators in
// [github.com/matzehuels/kleinian/pkg/errors] before anything is written.
package flame
