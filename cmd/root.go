package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pharmasim/pharmasim/sim"
	"github.com/pharmasim/pharmasim/sim/sink"
	"github.com/pharmasim/pharmasim/sim/trace"
)

var (
	// CLI flags for the run
	seed          int64  // Seed for demand, delivery and order id streams
	logLevel      string // Log verbosity level
	scenarioFile  string // Scenario YAML; explicit flags override it
	drugsFile     string // Drug catalog (CSV or YAML)
	recurringFile string // Recurring orders CSV
	fastForward   bool   // Skip daily reports and print only the summary
	traceLevel    string // Decision trace level
	metricsFile   string // Prometheus text exposition written at the end

	// CLI flags for pharmacy parameters
	dayCount           int     // Days to simulate
	demandDensity      float64 // Demand curve scale
	cardDiscountPct    float64 // Loyalty card discount, percent
	cardProbability    float64 // Chance a generated client has a card
	courierCount       int     // Couriers available per day
	minRestockQuantity int     // Restock threshold
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "pharmasim",
	Short: "Day-stepped retail pharmacy simulator",
}

// runCmd executes the simulation using parameters from the scenario file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pharmacy simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		sc, err := resolveScenario(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runScenario(sc, os.Stdout, fastForward, metricsFile); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
	},
}

// resolveScenario layers the scenario file over the defaults and explicitly
// set flags over both.
func resolveScenario(cmd *cobra.Command) (Scenario, error) {
	sc := defaultScenario()
	if scenarioFile != "" {
		loaded, err := loadScenario(scenarioFile)
		if err != nil {
			return sc, err
		}
		sc = loaded
		logrus.Infof("Loaded scenario from %s", scenarioFile)
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		sc.Seed = seed
	}
	if flags.Changed("drugs") {
		sc.DrugsFile = drugsFile
	}
	if flags.Changed("recurring") {
		sc.RecurringFile = recurringFile
	}
	if flags.Changed("trace-level") {
		sc.TraceLevel = traceLevel
	}
	if flags.Changed("days") {
		sc.Config.DayCount = dayCount
	}
	if flags.Changed("density") {
		sc.Config.DemandDensity = demandDensity
	}
	if flags.Changed("card-discount") {
		sc.Config.CardDiscountPct = cardDiscountPct
	}
	if flags.Changed("card-probability") {
		sc.Config.CardProbability = cardProbability
	}
	if flags.Changed("couriers") {
		sc.Config.CourierCount = courierCount
	}
	if flags.Changed("min-restock") {
		sc.Config.MinRestockQuantity = minRestockQuantity
	}
	if !trace.IsValidTraceLevel(sc.TraceLevel) {
		return sc, fmt.Errorf("unknown trace level %q; valid levels: none, decisions", sc.TraceLevel)
	}
	return sc, nil
}

// runScenario builds a pharmacy for sc, runs it to the end, and writes the
// report to out. Daily tables are skipped when fastForward is set.
func runScenario(sc Scenario, out io.Writer, fastForward bool, metricsPath string) error {
	book, err := loadBook(sc.DrugsFile, sc.RecurringFile)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	sinks := sink.Multi{sink.NewTable(out), sink.NewLog(nil)}
	if metricsPath != "" {
		sinks = append(sinks, sink.NewPrometheus(reg))
	}

	var st *trace.SimulationTrace
	if trace.TraceLevel(sc.TraceLevel) == trace.TraceLevelDecisions {
		st = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
	}

	p, err := sim.NewPharmacy(book.Drugs, book.Recurring, sim.NewSimulationKey(sc.Seed),
		sim.WithSink(sinks), sim.WithPolicy(sc.Policy), sim.WithTrace(st))
	if err != nil {
		return err
	}
	if err := p.Configure(sc.Config); err != nil {
		return err
	}

	startTime := time.Now()
	if fastForward {
		err = p.AdvanceToEnd()
	} else {
		for err == nil && p.State() != sim.StateFinished {
			err = p.Advance()
		}
	}
	if err != nil {
		return err
	}
	logrus.Infof("Simulated %d days in %s", p.Day(), time.Since(startTime))

	if st != nil {
		printTraceSummary(out, trace.Summarize(st))
	}
	if metricsPath != "" {
		if err := prometheus.WriteToTextfile(metricsPath, reg); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		logrus.Infof("Metrics written to %s", metricsPath)
	}
	return nil
}

func printTraceSummary(w io.Writer, s *trace.TraceSummary) {
	_, _ = fmt.Fprintln(w, "=== Decision Trace ===")
	_, _ = fmt.Fprintf(w, "Restock requests     : %d\n", s.RestockCount)
	_, _ = fmt.Fprintf(w, "Deliveries           : %d\n", s.DeliveryCount)
	_, _ = fmt.Fprintf(w, "Markdowns            : %d applied, %d cleared\n", s.MarkdownsApplied, s.MarkdownsCleared)
	_, _ = fmt.Fprintf(w, "Expired units        : %d (loss %s)\n", s.ExpiredUnits, s.ExpiryLoss.StringFixed(2))
	_, _ = fmt.Fprintf(w, "Over-capacity orders : %d (forgone profit %s)\n", s.OverflowOrders, s.ForgoneProfit.StringFixed(2))
	if s.MostRestocked != "" {
		_, _ = fmt.Fprintf(w, "Most restocked       : %s (%d)\n", s.MostRestocked, s.RestockDistribution[s.MostRestocked])
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := defaultScenario()

	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for random demand and delivery generation")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&scenarioFile, "config", "", "Scenario YAML file; explicitly set flags take precedence")
	runCmd.Flags().StringVar(&drugsFile, "drugs", "", "Drug catalog file (.csv or .yaml)")
	runCmd.Flags().StringVar(&recurringFile, "recurring", "", "Recurring orders CSV file")
	runCmd.Flags().BoolVar(&fastForward, "fast-forward", false, "Skip daily reports and print only the final summary")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", defaults.TraceLevel, "Decision trace level (none, decisions)")
	runCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file")

	// Pharmacy parameters
	runCmd.Flags().IntVar(&dayCount, "days", defaults.Config.DayCount, "Number of days to simulate")
	runCmd.Flags().Float64Var(&demandDensity, "density", defaults.Config.DemandDensity, "Demand curve scale")
	runCmd.Flags().Float64Var(&cardDiscountPct, "card-discount", defaults.Config.CardDiscountPct, "Loyalty card discount in percent")
	runCmd.Flags().Float64Var(&cardProbability, "card-probability", defaults.Config.CardProbability, "Chance a generated client has a loyalty card")
	runCmd.Flags().IntVar(&courierCount, "couriers", defaults.Config.CourierCount, "Couriers available per day")
	runCmd.Flags().IntVar(&minRestockQuantity, "min-restock", defaults.Config.MinRestockQuantity, "Restock a drug when its stock falls to this level")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
