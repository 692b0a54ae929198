package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/splitrand/internal/statistics"
	"github.com/lox/splitrand/internal/stream"
	"github.com/lox/splitrand/splitmix"
)

// CheckCmd runs the distribution quality suite
type CheckCmd struct {
	Config string `short:"c" default:"splitmix.hcl" help:"Path to HCL configuration file"`
	Seed   int64  `default:"42" help:"Root seed for the suite"`
	Debug  bool   `help:"Enable debug logging"`
}

var (
	// Style definitions
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	metricStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))
)

type checkResult struct {
	Name   string
	Detail string
	Passed bool
}

func (c *CheckCmd) Run() error {
	level := log.WarnLevel
	if c.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	cfg, err := LoadCheckConfig(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	s := cfg.Check
	logger.Debug("loaded check settings",
		"draws", s.Draws, "streams", s.Streams,
		"collision_sample", s.CollisionSample,
		"max_bit_skew", s.MaxBitSkew, "max_mean_error", s.MaxMeanError)

	root := splitmix.New(uint64(c.Seed))
	results := []checkResult{
		c.bitBalance(root, s),
		c.uniformMean(root, s),
		c.collisions(root, s),
		c.splitIndependence(root, s, logger),
	}

	printReport(c.Seed, results)

	for _, r := range results {
		if !r.Passed {
			return fmt.Errorf("quality check %q failed: %s", r.Name, r.Detail)
		}
	}
	return nil
}

// bitBalance checks that every output bit position is set about half the time
func (c *CheckCmd) bitBalance(root splitmix.State, s CheckSettings) checkResult {
	var b statistics.BitBalance
	st := root
	for i := 0; i < s.Draws; i++ {
		var w uint64
		w, st = st.Next()
		b.Add(w)
	}
	bit, skew := b.Worst()
	return checkResult{
		Name:   "bit balance",
		Detail: fmt.Sprintf("worst bit %d skew %.4f (chi2 %.1f, limit %.4f)", bit, skew, b.Chi2(), s.MaxBitSkew),
		Passed: skew <= s.MaxBitSkew,
	}
}

// uniformMean checks that float draws average close to 0.5 and stay in range
func (c *CheckCmd) uniformMean(root splitmix.State, s CheckSettings) checkResult {
	var ds statistics.DrawStats
	st := root
	for i := 0; i < s.Draws; i++ {
		var f float64
		f, st = st.NextFloat64()
		ds.Add(f)
	}
	if err := ds.Validate(); err != nil {
		return checkResult{Name: "uniform mean", Detail: err.Error(), Passed: false}
	}
	errMean := math.Abs(ds.Mean() - 0.5)
	return checkResult{
		Name:   "uniform mean",
		Detail: fmt.Sprintf("mean %.5f median %.5f range [%.5f, %.5f] (limit ±%.4f)", ds.Mean(), ds.Median(), ds.Min, ds.Max, s.MaxMeanError),
		Passed: errMean <= s.MaxMeanError,
	}
}

// collisions verifies the output mixing never maps two states to one word
func (c *CheckCmd) collisions(root splitmix.State, s CheckSettings) checkResult {
	counter := statistics.NewCollisionCounter(s.CollisionSample)
	st := root
	for i := 0; i < s.CollisionSample; i++ {
		var w uint64
		w, st = st.Next()
		counter.Add(w)
	}
	return checkResult{
		Name:   "collision scan",
		Detail: fmt.Sprintf("%d collisions in %d samples", counter.Collisions, counter.Samples),
		Passed: counter.Collisions == 0,
	}
}

// splitIndependence forks the root and checks each stream stays balanced
func (c *CheckCmd) splitIndependence(root splitmix.State, s CheckSettings, logger *log.Logger) checkResult {
	balances, err := stream.Collect(context.Background(), root, s.Streams, s.Draws)
	if err != nil {
		return checkResult{Name: "split independence", Detail: err.Error(), Passed: false}
	}
	worstSkew, worstStream := 0.0, 0
	for i, b := range balances {
		_, skew := b.Worst()
		logger.Debug("stream balance", "stream", i, "skew", skew, "chi2", b.Chi2())
		if skew > worstSkew {
			worstSkew, worstStream = skew, i
		}
	}
	return checkResult{
		Name:   "split independence",
		Detail: fmt.Sprintf("%d streams, worst stream %d skew %.4f (limit %.4f)", s.Streams, worstStream, worstSkew, s.MaxBitSkew),
		Passed: worstSkew <= s.MaxBitSkew,
	}
}

func printReport(seed int64, results []checkResult) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("Quality checks (seed %d)", seed)))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, r := range results {
		status := passStyle.Render("PASS")
		if !r.Passed {
			status = failStyle.Render("FAIL")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", status, metricStyle.Render(r.Name), r.Detail)
	}
	w.Flush()
}
