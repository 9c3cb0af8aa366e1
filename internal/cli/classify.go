package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kleinian/pkg/cline"
	kerrors "github.com/matzehuels/kleinian/pkg/errors"
	"github.com/matzehuels/kleinian/pkg/mobius"
)

// classifyCommand creates the classify command.
func (c *CLI) classifyCommand() *cobra.Command {
	var normalize bool

	cmd := &cobra.Command{
		Use:   "classify <a> <b> <c> <d>",
		Short: "Classify the Möbius transformation (az + b)/(cz + d)",
		Long: `Print the class (elliptic, parabolic, hyperbolic or loxodromic), trace,
determinant and fixed points of a Möbius transformation. Coefficients are
complex numbers such as 2, -1i or 1.5+0.5i. Put -- before the coefficients
when one of them starts with a minus sign.`,
		Example: `  kleinian classify 1 1 0 1
  kleinian classify --normalize 2 0 0 1
  kleinian classify -- 1 -1i 1 1i`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMobius(args)
			if err != nil {
				return err
			}
			if normalize {
				if m, err = m.Normalize(); err != nil {
					return err
				}
			}

			c.out.keyValue("map", m.String())
			c.out.keyValue("class", m.Classify().String())
			c.out.keyValue("trace", fmt.Sprint(m.Trace()))
			c.out.keyValue("det", fmt.Sprint(m.Det()))
			fp, err := m.FixedPoints()
			if err != nil {
				c.out.keyValue("fixed", kerrors.UserMessage(err))
				return nil
			}
			for _, z := range fp.Points() {
				c.out.keyValue("fixed", fmt.Sprint(z))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&normalize, "normalize", false, "scale to determinant 1 first")
	return cmd
}

// clineCommand creates the cline command.
func (c *CLI) clineCommand() *cobra.Command {
	var (
		center string
		radius string
		coefs  []string
		cayley bool
	)

	cmd := &cobra.Command{
		Use:   "cline",
		Short: "Move a circle with a Möbius transformation",
		Long: `Build the cline of the circle |z - center| = radius, apply a Möbius
transformation and print the image with its shape. Without --map or
--cayley the identity is applied.`,
		Example: `  kleinian cline --center 1 --radius 1 --cayley
  kleinian cline --center 0 --radius 2 --map 0,1,1,0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			z0, err := parseComplex("--center", center)
			if err != nil {
				return err
			}
			r, err := parseComplex("--radius", radius)
			if err != nil {
				return err
			}

			m := mobius.New(1, 0, 0, 1)
			switch {
			case cayley && len(coefs) > 0:
				return kerrors.New(kerrors.ErrCodeInvalidInput, "use either --cayley or --map")
			case cayley:
				m = mobius.CayleyMap
			case len(coefs) > 0:
				if m, err = parseMobius(coefs); err != nil {
					return err
				}
			}

			in := cline.FromCircle(z0, r)
			out, err := in.Transform(m)
			if err != nil {
				return err
			}
			c.out.keyValue("cline", in.String())
			c.out.keyValue("map", m.String())
			c.out.keyValue("image", out.String())
			c.out.keyValue("kind", out.Classify().String())
			shape, err := out.Params()
			if err != nil {
				c.out.keyValue("params", kerrors.UserMessage(err))
				return nil
			}
			c.out.keyValue("params", describeShape(shape))
			return nil
		},
	}

	cmd.Flags().StringVar(&center, "center", "0", "circle center")
	cmd.Flags().StringVar(&radius, "radius", "1", "circle radius")
	cmd.Flags().StringSliceVar(&coefs, "map", nil, "transformation coefficients a,b,c,d")
	cmd.Flags().BoolVar(&cayley, "cayley", false, "apply the Cayley map (z - i)/(z + i)")
	return cmd
}

func parseMobius(args []string) (mobius.Mobius, error) {
	if len(args) != 4 {
		return mobius.Mobius{}, kerrors.New(kerrors.ErrCodeInvalidInput, "need 4 coefficients, got %d", len(args))
	}
	var z [4]complex128
	for i, name := range []string{"a", "b", "c", "d"} {
		v, err := parseComplex(name, args[i])
		if err != nil {
			return mobius.Mobius{}, err
		}
		z[i] = v
	}
	return mobius.New(z[0], z[1], z[2], z[3]), nil
}

func describeShape(s cline.Shape) string {
	switch s := s.(type) {
	case cline.Circle:
		return fmt.Sprintf("circle center=%v radius=%g", s.Center, s.Radius)
	case cline.Point:
		return fmt.Sprintf("point %v", s.Center)
	case cline.Line:
		return fmt.Sprintf("line %g·x + %g·y = %g", s.A, s.B, s.C)
	}
	return s.Kind().String()
}
