package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kleinian/pkg/animation"
	"github.com/matzehuels/kleinian/pkg/cache"
	kerrors "github.com/matzehuels/kleinian/pkg/errors"
)

// animateCommand creates the animate command.
func (c *CLI) animateCommand() *cobra.Command {
	var (
		output string
		seed   uint64
	)

	cmd := &cobra.Command{
		Use:   "animate <file>",
		Short: "Render an animation description into a flame pack",
		Long: `Read an animation description (TOML, or JSON for .json files) and write one
flame per frame. Frames whose traces admit no group are skipped.

Example description:

  animator = "grandma"
  pack_name = "Spiral"
  fname = "spiral.flame"

  [params]
  num_frames = 120
  curve_trace_a = ["loop", ["line", 2, [2, 1]]]
  curve_trace_b = 2
  curve_zoom = 0.5
  root = "minus"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			desc, err := animation.Load(path)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "read %s", path)
			}
			if !cmd.Flags().Changed("seed") {
				seed = c.config.Render.Seed
			}
			if output == "" {
				output = desc.Fname
			}

			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Animate(cmd.Context(), desc, cache.Hash(data), seed)
			if err != nil {
				return err
			}
			if err := writeOutput(output, res.Pack); err != nil {
				return err
			}

			c.out.success("Animation %s", desc.PackName)
			c.out.stats(res.Stats, res.CacheHit)
			if res.Stats.Invalid > 0 {
				c.out.warning("%d frames skipped", res.Stats.Invalid)
			}
			c.out.file(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: fname from the description)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "palette seed, 0 for random (default from config)")

	return cmd
}
