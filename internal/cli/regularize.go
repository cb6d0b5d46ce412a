package cli

import (
	"github.com/spf13/cobra"
)

// regularizeOpts holds the command-line flags of the regularize command.
type regularizeOpts struct {
	input     string  // JSON segment file, "-" for stdin
	output    string  // JSON report file, "-" for stdout
	config    string  // optional TOML config
	maxAngle  float64 // overrides angles.max_angle
	offsets   bool    // overrides offsets.enabled
	maxOffset float64 // overrides offsets.max_offset
	neighbors int     // overrides neighbors.k
}

// newRegularizeCmd creates the regularize command.
//
// Defaults come from the config file, or built-ins without one:
//   - max-angle: 25 degrees
//   - neighbors: 4 nearest barycenters (0 regularizes every pair)
//   - offsets: disabled, max-offset 0.1
func newRegularizeCmd() *cobra.Command {
	def := defaultConfig()
	opts := regularizeOpts{
		input:     "-",
		output:    "-",
		maxAngle:  def.Angles.MaxAngle,
		maxOffset: def.Offsets.MaxOffset,
		neighbors: def.Neighbors.K,
	}

	cmd := &cobra.Command{
		Use:   "regularize",
		Short: "Snap segment orientations and offsets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegularize(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", opts.input, "input segment file (JSON, - for stdin)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output report file (JSON, - for stdout)")
	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "TOML configuration file")
	cmd.Flags().Float64Var(&opts.maxAngle, "max-angle", opts.maxAngle, "maximum rotation per segment in degrees, [0, 90)")
	cmd.Flags().BoolVar(&opts.offsets, "offsets", false, "also align near-collinear parallel segments")
	cmd.Flags().Float64Var(&opts.maxOffset, "max-offset", opts.maxOffset, "maximum translation per segment")
	cmd.Flags().IntVar(&opts.neighbors, "neighbors", opts.neighbors, "nearest neighbors per segment, 0 for all pairs")

	return cmd
}

func runRegularize(cmd *cobra.Command, opts regularizeOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(opts.config)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("max-angle") {
		cfg.Angles.MaxAngle = opts.maxAngle
	}
	if flags.Changed("offsets") {
		cfg.Offsets.Enabled = opts.offsets
	}
	if flags.Changed("max-offset") {
		cfg.Offsets.MaxOffset = opts.maxOffset
	}
	if flags.Changed("neighbors") {
		cfg.Neighbors.K = opts.neighbors
	}

	in, closeIn, err := openInput(opts.input)
	if err != nil {
		return err
	}
	segs, err := readSegments(in)
	closeIn()
	if err != nil {
		return err
	}
	logger.Debug("segments loaded", "count", len(segs), "input", opts.input)

	rep, err := pipeline(ctx, segs, cfg, logger)
	if err != nil {
		return err
	}

	out, closeOut, err := createOutput(cmd, opts.output)
	if err != nil {
		return err
	}
	if err = writeJSON(out, rep); err != nil {
		_ = closeOut()
		return err
	}
	if err = closeOut(); err != nil {
		return err
	}
	printSummary(cmd.ErrOrStderr(), rep, opts.output)

	return nil
}
