package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/kleinian/pkg/group"
	"github.com/matzehuels/kleinian/pkg/pipeline"
)

// grandmaFlags holds the flags of the grandma command.
type grandmaFlags struct {
	traceA  string
	traceB  string
	root    string
	name    string
	output  string
	zoom    float64
	size    string
	seed    uint64
	refresh bool
}

// grandmaCommand creates the grandma command.
func (c *CLI) grandmaCommand() *cobra.Command {
	var f grandmaFlags

	cmd := &cobra.Command{
		Use:   "grandma",
		Short: "Build one flame with Grandma's recipe",
		Long: `Build the two-generator group for traces ta and tb with Grandma's recipe
and write it as a single-flame .flame file.

The recipe solves a quadratic for tr(ab); --root picks the solution.`,
		Example: `  kleinian grandma --ta 2 --tb 2 --root minus
  kleinian grandma --ta 1.87+0.1i --tb 1.87-0.1i --root plus --seed 7 -o spiral.flame`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGrandma(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.traceA, "ta", "2", "trace of generator a")
	cmd.Flags().StringVar(&f.traceB, "tb", "2", "trace of generator b")
	cmd.Flags().StringVar(&f.root, "root", "", "root of the tr(ab) quadratic: plus or minus (required)")
	cmd.Flags().StringVar(&f.name, "name", pipeline.DefaultName, "flame and pack name")
	cmd.Flags().StringVarP(&f.output, "output", "o", "grandma.flame", "output file")
	cmd.Flags().Float64Var(&f.zoom, "zoom", 0, "linear weight of the final xform (default from config)")
	cmd.Flags().StringVar(&f.size, "size", "", "image size \"width height\" (default from config)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "palette seed, 0 for random (default from config)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	_ = cmd.MarkFlagRequired("root")

	return cmd
}

func (c *CLI) runGrandma(cmd *cobra.Command, f grandmaFlags) error {
	ta, err := parseComplex("--ta", f.traceA)
	if err != nil {
		return err
	}
	tb, err := parseComplex("--tb", f.traceB)
	if err != nil {
		return err
	}
	root, err := group.ParseRoot(f.root)
	if err != nil {
		return err
	}

	opts := pipeline.GrandmaOptions{
		TraceA:  ta,
		TraceB:  tb,
		Root:    root,
		Name:    f.name,
		Zoom:    c.config.Render.Zoom,
		Size:    c.config.Render.Size,
		Seed:    c.config.Render.Seed,
		Refresh: f.refresh,
	}
	flags := cmd.Flags()
	if flags.Changed("zoom") {
		opts.Zoom = f.zoom
	}
	if flags.Changed("size") {
		opts.Size = f.size
	}
	if flags.Changed("seed") {
		opts.Seed = f.seed
	}

	runner, err := c.newRunner()
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Grandma(cmd.Context(), opts)
	if err != nil {
		return err
	}
	if err := writeOutput(f.output, res.Pack); err != nil {
		return err
	}

	c.out.success("Grandma's recipe at ta=%v tb=%v (%s root)", ta, tb, root)
	c.out.stats(res.Stats, res.CacheHit)
	c.out.file(f.output)
	return nil
}
