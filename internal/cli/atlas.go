package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/kleinian/pkg/group"
	"github.com/matzehuels/kleinian/pkg/pipeline"
)

// atlasCommand creates the atlas command.
func (c *CLI) atlasCommand() *cobra.Command {
	var (
		radius  int
		workers int
		root    string
		name    string
		output  string
		seed    uint64
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "atlas",
		Short: "Sweep Grandma's recipe over a lattice of traces",
		Long: `Evaluate Grandma's recipe for every pair of Gaussian integers (ta, tb) with
real and imaginary parts in [-radius, radius] and write one flame per valid
pair. Pairs the recipe rejects are counted and logged with --verbose.`,
		Example: `  kleinian atlas --root plus
  kleinian atlas --radius 2 --root minus --workers 4 -o small.flame`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := group.ParseRoot(root)
			if err != nil {
				return err
			}
			opts := pipeline.AtlasOptions{
				Radius:  c.config.Atlas.Radius,
				Root:    r,
				Workers: c.config.Atlas.Workers,
				Name:    name,
				Seed:    c.config.Render.Seed,
				Refresh: refresh,
			}
			flags := cmd.Flags()
			if flags.Changed("radius") {
				opts.Radius = radius
			}
			if flags.Changed("workers") {
				opts.Workers = workers
			}
			if flags.Changed("seed") {
				opts.Seed = seed
			}
			if output == "" {
				output = fmt.Sprintf("atlas_r%d_%s.flame", opts.Radius, r)
			}

			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			defer runner.Close()

			side := 2*opts.Radius + 1
			prog := newProgress(c.Logger)
			spin := newSpinner(cmd.Context(), c.status, fmt.Sprintf("Sweeping %d trace pairs...", side*side*side*side))
			spin.Start()
			res, err := runner.Atlas(cmd.Context(), opts)
			spin.Stop()
			if err != nil {
				return err
			}
			prog.done("Sweep finished")

			if err := writeOutput(output, res.Pack); err != nil {
				return err
			}
			c.out.success("Atlas of radius %d (%s root)", opts.Radius, r)
			c.out.stats(res.Stats, res.CacheHit)
			if res.Stats.Invalid > 0 {
				c.out.warning("%d trace pairs admit no group", res.Stats.Invalid)
			}
			c.out.file(output)
			return nil
		},
	}

	cmd.Flags().IntVar(&radius, "radius", 0, "lattice radius (default from config, 4)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers, 0 for one per CPU")
	cmd.Flags().StringVar(&root, "root", "", "root of the tr(ab) quadratic: plus or minus (required)")
	cmd.Flags().StringVar(&name, "name", pipeline.DefaultPackName, "pack name")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default atlas_r<radius>_<root>.flame)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "palette seed, 0 for random (default from config)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached results")
	_ = cmd.MarkFlagRequired("root")

	return cmd
}
