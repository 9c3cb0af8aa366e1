// Package group derives generating sets of Kleinian groups from algebraic
// recipes.
//
// # Overview
//
// A [Group] is the ordered list of generators a recipe produced, followed
// by their inverses in the same order. Renderers treat it as an unordered
// set of transformations ("xforms") and iterate words in them; closing the
// set under inversion up front means nothing downstream has to.
//
// # Grandma's Recipe
//
// [GrandmasRecipe] is the two-generator recipe from chapter 6 of Indra's
// Pearls. Given the traces ta and tb of generators a and b it builds a group
// whose commutator abAB is parabolic (trace -2):
//
//  1. tab solves x² - ta·tb·x + (ta² + tb²) = 0
//  2. z0 = (tab - 2)·tb / (tb·tab - 2ta + 2i·tab)
//  3. a and b are written down from ta, tb, tab and z0
//
// The quadratic has two roots and both give valid, different groups, so the
// caller names one with [PlusRoot] or [MinusRoot]. The zero [Root] is
// rejected.
//
//	g, err := group.GrandmasRecipe(2, 2, group.MinusRoot)
//	if kerrors.Is(err, kerrors.ErrCodeInvalidParameters) {
//	    // skip this trace pair
//	}
//
// # Failures
//
// Some trace pairs make a denominator vanish. These are expected while
// sweeping a lattice of traces and come back as a [*ParameterError] that
// carries the inputs and wraps the DIVIDE_BY_ZERO cause, so a caller can
// count and skip them without aborting a batch.
package group
