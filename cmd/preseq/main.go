// Command preseq predicts sequencing library complexity from
// duplicate-count data: how many distinct molecules deeper sequencing
// would return (lc_extrap), the complexity curve of the sample itself
// (c_curve), and a conservative lower bound on the number of molecules
// in the library (bound_pop).
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/exp/rand"

	"github.com/stevetsa/preseq"
	"github.com/stevetsa/preseq/complexity"
)

// config carries defaults overridable through PRESEQ_* environment
// variables; flags override both.
type config struct {
	MaxExtrapolation float64 `envconfig:"MAX_EXTRAPOLATION" default:"1e10"`
	StepSize         float64 `envconfig:"STEP_SIZE" default:"1e6"`
	Bootstraps       int     `envconfig:"BOOTSTRAPS" default:"100"`
	Confidence       float64 `envconfig:"CONFIDENCE" default:"0.95"`
	MaxTerms         int     `envconfig:"MAX_TERMS" default:"100"`
	Diagonal         int     `envconfig:"DIAGONAL" default:"0"`

	// Seed fixes the sampler for reproducible runs; zero seeds from
	// the clock.
	Seed uint64 `envconfig:"SEED" default:"0"`
}

var cfg config

var (
	outputPath string
	useVals    bool
	verbose    bool
	quick      bool
	stepSize   float64
	maxExtrap  float64
	bootstraps int
	confidence float64
	maxTerms   int
	diagonal   int
	upperBound float64
	limit      float64
)

var rootCmd = &cobra.Command{
	Use:          "preseq",
	Short:        "Predict sequencing library complexity",
	SilenceUsage: true,
}

var lcExtrapCmd = &cobra.Command{
	Use:   "lc_extrap <input-file>",
	Short: "Extrapolate the expected yield of deeper sequencing",
	Args:  cobra.ExactArgs(1),
	RunE:  runLCExtrap,
}

var cCurveCmd = &cobra.Command{
	Use:   "c_curve <input-file>",
	Short: "Subsample the observed complexity curve",
	Args:  cobra.ExactArgs(1),
	RunE:  runCCurve,
}

var boundPopCmd = &cobra.Command{
	Use:   "bound_pop <input-file>",
	Short: "Lower-bound the number of molecules in the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoundPop,
}

func setupFlags() {
	for _, cmd := range []*cobra.Command{lcExtrapCmd, cCurveCmd, boundPopCmd} {
		cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the result to this file instead of stdout")
		cmd.Flags().BoolVarP(&useVals, "vals", "V", false, "input holds one observed count per line, not a histogram")
		cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	}

	lcExtrapCmd.Flags().Float64VarP(&maxExtrap, "extrap", "e", cfg.MaxExtrapolation, "maximum extrapolation, in reads")
	lcExtrapCmd.Flags().Float64VarP(&stepSize, "step", "s", cfg.StepSize, "output grid step, in reads")
	lcExtrapCmd.Flags().IntVarP(&bootstraps, "bootstraps", "n", cfg.Bootstraps, "bootstrap fits behind the confidence intervals")
	lcExtrapCmd.Flags().Float64VarP(&confidence, "cval", "c", cfg.Confidence, "confidence level of the intervals")
	lcExtrapCmd.Flags().IntVarP(&maxTerms, "terms", "x", cfg.MaxTerms, "maximum power series terms for the fit")
	lcExtrapCmd.Flags().IntVarP(&diagonal, "diag", "d", cfg.Diagonal, "diagonal offset of the approximant")
	lcExtrapCmd.Flags().BoolVarP(&quick, "quick", "Q", false, "single estimate, no confidence intervals")

	cCurveCmd.Flags().Float64VarP(&stepSize, "step", "s", cfg.StepSize, "curve step, in reads")
	cCurveCmd.Flags().Float64VarP(&limit, "limit", "l", 0, "largest effort to subsample; 0 means the observed depth")

	boundPopCmd.Flags().IntVarP(&maxTerms, "terms", "x", cfg.MaxTerms, "maximum power series terms for the bound")
	boundPopCmd.Flags().Float64VarP(&upperBound, "upper", "u", cfg.MaxExtrapolation, "upper bound reported in diagnostics")
}

func main() {
	if err := envconfig.Process("preseq", &cfg); err != nil {
		fmt.Fprintln(os.Stderr, "preseq:", err)
		os.Exit(1)
	}
	setupFlags()
	rootCmd.AddCommand(lcExtrapCmd, cCurveCmd, boundPopCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	logCfg := zap.NewProductionConfig()
	if verbose {
		logCfg = zap.NewDevelopmentConfig()
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logCfg.OutputPaths = []string{"stderr"}
	logCfg.ErrorOutputPaths = []string{"stderr"}
	return logCfg.Build()
}

func newRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

func loadInput(path string, vals bool) (complexity.Histogram, error) {
	if vals {
		return complexity.LoadCounts(path)
	}
	return complexity.LoadHistogram(path)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func runLCExtrap(cmd *cobra.Command, args []string) error {
	log, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	h, err := loadInput(args[0], useVals)
	if err != nil {
		return err
	}

	opts, err := complexity.Prepare(h, complexity.Options{
		MaxTerms:         maxTerms,
		Diagonal:         diagonal,
		StepSize:         stepSize,
		MaxExtrapolation: maxExtrap,
		Bootstraps:       bootstraps,
		Confidence:       confidence,
		Logger:           log,
	})
	if err != nil {
		return err
	}

	rng := newRNG(cfg.Seed)
	out, closeOut, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeOut()

	if quick {
		curve, err := complexity.YieldCurve(rng, h, opts)
		if err != nil {
			return err
		}
		return complexity.WriteQuickTable(out, opts.StepSize, curve)
	}

	curves, err := complexity.Bootstrap(rng, h, opts)
	if err != nil {
		return err
	}
	median, lower, upper := complexity.MedianCI(curves, opts.Confidence)
	return complexity.WriteYieldTable(out, opts.StepSize, opts.Confidence, median, lower, upper)
}

func runCCurve(cmd *cobra.Command, args []string) error {
	log, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	h, err := loadInput(args[0], useVals)
	if err != nil {
		return err
	}

	log.Debug("histogram loaded",
		zap.Float64("total_reads", h.Reads()),
		zap.Float64("distinct_reads", h.Distinct()),
		zap.Int("distinct_counts", h.PositiveBins()))

	// The curve is sampled at the step as given; only the
	// extrapolation paths widen fine steps.
	rng := newRNG(cfg.Seed)
	curve := complexity.ObservedCurve(rng, h, stepSize, limit)

	out, closeOut, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeOut()
	return complexity.WriteObservedTable(out, stepSize, curve)
}

func runBoundPop(cmd *cobra.Command, args []string) error {
	log, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	h, err := loadInput(args[0], useVals)
	if err != nil {
		return err
	}

	bound, err := preseq.LowerBoundLibrarySize(h, upperBound, preseq.Options{
		Diagonal: cfg.Diagonal,
		MaxTerms: h.UsableTerms(maxTerms),
		Logger:   log,
	})
	if err != nil {
		return err
	}
	log.Info("library size lower bound", zap.Float64("bound", bound))

	out, closeOut, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeOut()
	_, err = fmt.Fprintf(out, "%.1f\n", bound)
	return err
}
