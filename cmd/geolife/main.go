package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/san-kum/geolife/internal/config"
	"github.com/san-kum/geolife/internal/export"
	"github.com/san-kum/geolife/internal/geohash"
	"github.com/san-kum/geolife/internal/life"
	"github.com/san-kum/geolife/internal/metrics"
	"github.com/san-kum/geolife/internal/sim"
	"github.com/san-kum/geolife/internal/storage"
	"github.com/san-kum/geolife/internal/viz"
)

var (
	dataDir    string
	configFile string
	verbose    bool
	// Simulation overrides, applied on top of the config file
	precision   int
	tickRate    float64
	pattern     string
	lat         float64
	lng         float64
	maxGen      int
	cycleWindow int
	random      bool
	seed        int64
	// Headless runs
	fast bool
	// Terminal viewport
	rows  int
	cols  int
	theme string
	// Exports
	initial bool
	svgOut  bool
	// Ensemble size for bench
	numRuns int
)

// main registers the geolife commands and starts the interactive grid when
// no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:   "geolife",
		Short: "conway's game of life on a geohash grid",
		RunE:  runInteractive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".geolife", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addSimFlags(rootCmd)
	rootCmd.Flags().IntVar(&rows, "rows", 21, "viewport rows")
	rootCmd.Flags().IntVar(&cols, "cols", 31, "viewport columns")
	rootCmd.Flags().StringVar(&theme, "theme", viz.ThemeCyberpunk.Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store the report",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&fast, "fast", false, "do not wait between generations")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot population and churn of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	geojsonCmd := &cobra.Command{
		Use:   "geojson [run_id]",
		Short: "export the cells of a run as GeoJSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	geojsonCmd.Flags().BoolVar(&initial, "initial", false, "export the starting cells instead of the final ones")
	geojsonCmd.Flags().BoolVar(&svgOut, "svg", false, "write SVG instead of GeoJSON")

	encodeCmd := &cobra.Command{
		Use:   "encode [lat] [lng]",
		Short: "encode a coordinate",
		Args:  cobra.ExactArgs(2),
		RunE:  encodeCoordinate,
	}
	encodeCmd.Flags().IntVar(&precision, "precision", config.DefaultPrecision, "geohash length")

	decodeCmd := &cobra.Command{
		Use:   "decode [geohash]",
		Short: "print the bounding box of a geohash",
		Args:  cobra.ExactArgs(1),
		RunE:  decodeHash,
	}

	neighborsCmd := &cobra.Command{
		Use:   "neighbors [geohash]",
		Short: "print the 8 neighbours of a geohash",
		Args:  cobra.ExactArgs(1),
		RunE:  printNeighbors,
	}

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "list available seed patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCELLS\tDESCRIPTION")
			for _, name := range config.ListPatterns() {
				p := config.GetPattern(name)
				fmt.Fprintf(w, "%s\t%d\t%s\n", p.Name, len(p.Cells()), p.Description)
			}
			return w.Flush()
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run an ensemble of random soups",
		Args:  cobra.NoArgs,
		RunE:  benchSoups,
	}
	addSimFlags(benchCmd)
	benchCmd.Flags().IntVar(&numRuns, "runs", 16, "number of soups")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, showCmd, geojsonCmd, encodeCmd, decodeCmd, neighborsCmd, patternsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&precision, "precision", config.DefaultPrecision, "geohash length of a cell")
	cmd.Flags().Float64Var(&tickRate, "rate", config.DefaultTickRateHz, "generations per second")
	cmd.Flags().StringVar(&pattern, "pattern", "", "seed pattern placed at the origin")
	cmd.Flags().Float64Var(&lat, "lat", config.DefaultLat, "origin latitude")
	cmd.Flags().Float64Var(&lng, "lng", config.DefaultLng, "origin longitude")
	cmd.Flags().IntVar(&maxGen, "max-gen", 0, "generation limit (0: until converged)")
	cmd.Flags().IntVar(&cycleWindow, "cycle-window", config.DefaultCycleWindow, "past generations checked for repeats")
	cmd.Flags().BoolVar(&random, "random", false, "seed a random soup at the origin")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0: time based)")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig reads the config file, if any, and applies the flags the user
// set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load config")
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("precision") {
		cfg.Precision = precision
	}
	if flags.Changed("rate") {
		cfg.TickRateHz = tickRate
	}
	if flags.Changed("pattern") {
		cfg.Seed.Pattern = pattern
	}
	if flags.Changed("lat") {
		cfg.Origin.Lat = lat
	}
	if flags.Changed("lng") {
		cfg.Origin.Lng = lng
	}
	if flags.Changed("max-gen") {
		cfg.MaxGenerations = maxGen
	}
	if flags.Changed("cycle-window") {
		cfg.CycleWindow = cycleWindow
	}
	if flags.Changed("seed") {
		cfg.Seed.Random.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// startingCells returns the seed cells of cfg. A random soup is used when
// asked for, or when the config names no cells at all.
func startingCells(cfg *config.Config, forceRandom bool) ([]string, int64, error) {
	if !forceRandom && (cfg.Seed.Pattern != "" || len(cfg.Seed.Cells) > 0) {
		cells, err := sim.SeedCells(cfg)
		return cells, 0, err
	}

	origin, err := cfg.OriginHash()
	if err != nil {
		return nil, 0, err
	}
	s := cfg.Seed.Random.Seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	r := cfg.Seed.Random
	cells, err := sim.RandomSoup(origin, r.Width, r.Height, r.Density, rand.New(rand.NewSource(s)))
	return cells, s, err
}

func defaultMetrics() []sim.Metric {
	return []sim.Metric{metrics.NewPopulation(), metrics.NewPeak(), metrics.NewChurn()}
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !viz.SetTheme(theme) {
		return errors.Errorf("unknown theme: %s (available: %v)", theme, viz.ThemeNames())
	}

	ctrl, err := sim.New(sim.FromConfig(cfg))
	if err != nil {
		return err
	}
	var cells []string
	if random || cfg.Seed.Pattern != "" || len(cfg.Seed.Cells) > 0 {
		if cells, _, err = startingCells(cfg, random); err != nil {
			return err
		}
	}
	if len(cells) > 0 {
		if err := ctrl.Seed(cells); err != nil {
			return err
		}
	}

	center, err := cfg.OriginHash()
	if err != nil {
		return err
	}
	m, err := viz.NewModel(ctrl, center, rows, cols)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctrl, err := sim.New(sim.FromConfig(cfg))
	if err != nil {
		return err
	}
	ctrl.SetLogger(logger)
	for _, m := range defaultMetrics() {
		ctrl.AddMetric(m)
	}

	cells, soupSeed, err := startingCells(cfg, random)
	if err != nil {
		return err
	}
	if err := ctrl.Seed(cells); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d cells at precision %d...\n", ctrl.Population(), cfg.Precision)
	start := time.Now()

	var result *sim.Result
	if fast {
		result, err = ctrl.Advance(ctx)
	} else {
		result, err = ctrl.Run(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	result.Seed = soupSeed
	elapsed := time.Since(start)

	runID, err := st.Save(ctrl.Config(), cfg.Seed.Pattern, result)
	if err != nil {
		return err
	}
	logger.Debug("run stored", "id", runID, "dir", dataDir)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("outcome: %s\n", result.Outcome)
	fmt.Printf("generations: %d\n", result.Generations)
	if result.Period > 0 {
		fmt.Printf("period: %d\n", result.Period)
	}
	fmt.Println("\nmetrics:")
	for _, m := range defaultMetrics() {
		fmt.Printf("  %s: %.3f\n", m.Name(), result.Metrics[m.Name()])
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPRECISION\tOUTCOME\tGENS\tPERIOD\tCELLS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%d\t%d->%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Precision,
			run.Outcome,
			run.Generations,
			run.Period,
			len(run.Initial),
			len(run.Final),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	history, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return errors.New("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("outcome: %s after %d generations\n\n", meta.Outcome, meta.Generations)

	pop := make([]float64, len(history))
	churn := make([]float64, len(history))
	for i, r := range history {
		pop[i] = float64(r.Population)
		churn[i] = float64(r.Born + r.Died)
	}

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{pop, "population"},
		{churn, "births + deaths"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	cells := meta.Final
	if initial {
		cells = meta.Initial
	}
	live := life.NewLiveSet(cells...)

	if svgOut {
		svg, err := export.LiveSetToSVG(live, 800, "#00cccc")
		if err != nil {
			return err
		}
		_, err = fmt.Print(svg)
		return err
	}
	return export.GeoJSON(os.Stdout, live)
}

func encodeCoordinate(cmd *cobra.Command, args []string) error {
	la, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return errors.Wrapf(err, "latitude %q", args[0])
	}
	lo, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return errors.Wrapf(err, "longitude %q", args[1])
	}
	hash, err := geohash.Encode(la, lo, precision)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func decodeHash(cmd *cobra.Command, args []string) error {
	box, err := geohash.DecodeBoundingBox(args[0])
	if err != nil {
		return err
	}
	cLat, cLng := box.Center()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "min\t%.6f\t%.6f\n", box.MinLat, box.MinLng)
	fmt.Fprintf(w, "max\t%.6f\t%.6f\n", box.MaxLat, box.MaxLng)
	fmt.Fprintf(w, "center\t%.6f\t%.6f\n", cLat, cLng)
	return w.Flush()
}

func printNeighbors(cmd *cobra.Command, args []string) error {
	ns, err := geohash.Neighbors(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, d := range geohash.Directions {
		fmt.Fprintf(w, "%s\t%s\n", d, ns.Get(d))
	}
	return w.Flush()
}

func benchSoups(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.MaxGenerations == 0 {
		cfg.MaxGenerations = 500
	}
	origin, err := cfg.OriginHash()
	if err != nil {
		return err
	}

	seedStart := cfg.Seed.Random.Seed
	if seedStart == 0 {
		seedStart = time.Now().UnixNano()
	}
	r := cfg.Seed.Random
	soup := sim.Soup{Origin: origin, Width: r.Width, Height: r.Height, Density: r.Density}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("benchmarking %d soups of %dx%d at precision %d\n\n", numRuns, r.Width, r.Height, cfg.Precision)
	start := time.Now()
	results, err := sim.NewEnsemble(sim.FromConfig(cfg), soup, numRuns, seedStart).
		WithMetrics(defaultMetrics).
		Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tOUTCOME\tGENS\tPERIOD\tPOP\tPEAK\tCHURN")

	total := 0
	for _, res := range results {
		total += res.Generations
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%.0f\t%.0f\t%.2f\n",
			res.Seed,
			res.Outcome,
			res.Generations,
			res.Period,
			res.Metrics["population"],
			res.Metrics["peak_population"],
			res.Metrics["churn"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d generations in %v (%.0f gen/sec)\n", total, elapsed, float64(total)/elapsed.Seconds())
	return nil
}
