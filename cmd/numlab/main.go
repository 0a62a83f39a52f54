package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tbraden/numlab/internal/bessel"
	"github.com/tbraden/numlab/internal/config"
	"github.com/tbraden/numlab/internal/convergence"
	"github.com/tbraden/numlab/internal/export"
	"github.com/tbraden/numlab/internal/shooting"
	"github.com/tbraden/numlab/internal/stability"
	"github.com/tbraden/numlab/internal/tui"
	"github.com/tbraden/numlab/internal/viz"
)

var (
	configFile string
	model      string
	h          float64
	alpha      float64
	beta       float64
	guess      float64
	span       float64
	stiffness  float64
	tension    float64
	load       float64
	exportJSON string
	exportCSV  string
	plot       bool
	// convergence
	baseH  float64
	levels int
	// stability
	lambda float64
	t0, tf float64
	w0     float64
	// bessel
	arg      float64
	orders   int
	backward bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "numlab",
		Short: "numerical methods lab: shooting-method BVP solver and multistep analysis",
	}

	shootCmd := &cobra.Command{
		Use:   "shoot",
		Short: "solve the boundary-value problem by the shooting method",
		RunE:  runShoot,
	}
	addProblemFlags(shootCmd)
	shootCmd.Flags().StringVar(&exportJSON, "export-json", "", "write solve result to json file")
	shootCmd.Flags().StringVar(&exportCSV, "export-csv", "", "write trajectory to csv file")
	shootCmd.Flags().BoolVar(&plot, "plot", false, "render trajectory chart")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "solve, then browse the Newton iterations interactively",
		RunE:  runWatch,
	}
	addProblemFlags(watchCmd)

	convergeCmd := &cobra.Command{
		Use:   "converge",
		Short: "measure convergence order over a dyadic step-size sweep",
		RunE:  runConverge,
	}
	addProblemFlags(convergeCmd)
	convergeCmd.Flags().Float64Var(&baseH, "base-h", config.DefaultH, "finest (reference) step size")
	convergeCmd.Flags().IntVar(&levels, "levels", config.DefaultLevels, "number of dyadic step sizes")
	convergeCmd.Flags().StringVar(&exportCSV, "export-csv", "", "write error table to csv file")
	convergeCmd.Flags().BoolVar(&plot, "plot", false, "render error chart")

	stabilityCmd := &cobra.Command{
		Use:   "stability",
		Short: "probe the 2-step predictor-corrector on w' = -lambda*w",
		RunE:  runStability,
	}
	stabilityCmd.Flags().Float64Var(&lambda, "lambda", 1.0, "decay constant")
	stabilityCmd.Flags().Float64Var(&h, "h", 0.05, "step size")
	stabilityCmd.Flags().Float64Var(&t0, "t0", 0.0, "interval start")
	stabilityCmd.Flags().Float64Var(&tf, "tf", 5.0, "interval end")
	stabilityCmd.Flags().Float64Var(&w0, "w0", 1.0, "initial value")

	besselCmd := &cobra.Command{
		Use:   "bessel",
		Short: "evaluate Bessel orders by three-term recurrence",
		RunE:  runBessel,
	}
	besselCmd.Flags().Float64Var(&arg, "x", 1.0, "argument")
	besselCmd.Flags().IntVar(&orders, "orders", 10, "number of orders")
	besselCmd.Flags().BoolVar(&backward, "backward", false, "recurse from high orders down")

	rootCmd.AddCommand(shootCmd, watchCmd, convergeCmd, stabilityCmd, besselCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func addProblemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "yaml config file")
	cmd.Flags().StringVar(&model, "model", "beam", "model (beam, linear)")
	cmd.Flags().Float64Var(&h, "h", config.DefaultH, "step size")
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "boundary value at x=0")
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "target boundary value at x=L")
	cmd.Flags().Float64Var(&guess, "guess", config.DefaultGuess, "initial slope guess")
	cmd.Flags().Float64Var(&span, "span", config.DefaultSpan, "domain length L")
	cmd.Flags().Float64Var(&stiffness, "stiffness", config.DefaultStiffness, "beam flexural rigidity")
	cmd.Flags().Float64Var(&tension, "tension", config.DefaultTension, "beam axial load")
	cmd.Flags().Float64Var(&load, "load", config.DefaultLoad, "beam distributed load")
}

func buildConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		return cfg, nil
	}
	cfg.Model = model
	cfg.H = h
	cfg.Alpha = alpha
	cfg.Beta = beta
	cfg.Guess = guess
	cfg.Beam.Span = span
	cfg.Beam.Stiffness = stiffness
	cfg.Beam.Tension = tension
	cfg.Beam.Load = load
	cfg.Linear.Span = span
	return cfg, nil
}

func solve(cfg *config.Config) (*shooting.Driver, *shooting.Result, error) {
	sys, err := cfg.BuildSystem()
	if err != nil {
		return nil, nil, err
	}
	drv, err := shooting.NewDriver(sys, cfg.DriverConfig())
	if err != nil {
		return nil, nil, err
	}
	res, err := drv.Run(context.Background())
	if err != nil {
		return nil, nil, err
	}
	return drv, res, nil
}

func runShoot(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	drv, res, err := solve(cfg)
	if err != nil {
		return err
	}

	fmt.Println(viz.SolveSummary(cfg.Model, res, cfg.H))

	if res.Outcome != shooting.Converged {
		return fmt.Errorf("no convergence after %d iterations", res.Iterations)
	}

	traj, err := drv.Trajectory()
	if err != nil {
		return err
	}
	if plot {
		fmt.Println(viz.TrajectoryChart(drv.Grid(), traj, 100))
	}
	if exportJSON != "" {
		if err := export.WriteJSON(exportJSON, cfg.Model, res, drv.Grid(), traj, drv.Shots()); err != nil {
			return err
		}
	}
	if exportCSV != "" {
		if err := export.WriteTrajectoryCSV(exportCSV, drv.Grid(), traj); err != nil {
			return err
		}
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	drv, res, err := solve(cfg)
	if err != nil {
		return err
	}
	fmt.Println(viz.SolveSummary(cfg.Model, res, cfg.H))
	return tui.Watch(drv.Grid(), drv.Shots(), cfg.Beta)
}

func runConverge(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	sys, err := cfg.BuildSystem()
	if err != nil {
		return err
	}

	steps := convergence.DyadicSteps(baseH, levels)
	harness, err := convergence.New(sys, cfg.DriverConfig(), steps)
	if err != nil {
		return err
	}
	report, err := harness.Run(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "h\trel err y(L)\trel err y'(L)")
	for _, p := range report.Points {
		fmt.Fprintf(w, "%.3e\t%.6e\t%.6e\n", p.H, p.RelErrY, p.RelErrDy)
	}
	w.Flush()
	fmt.Printf("reference: h=%.3e  y(L)=%.9e  y'(L)=%.9e\n", report.RefH, report.Reference.Y, report.Reference.Dy)
	fmt.Printf("observed order: y %.2f, y' %.2f, u %.2f\n", report.OrderY, report.OrderDy, report.OrderU)

	if plot {
		fmt.Println(viz.ConvergenceChart(report))
	}
	if exportCSV != "" {
		return export.WriteConvergenceCSV(exportCSV, report)
	}
	return nil
}

func runStability(cmd *cobra.Command, args []string) error {
	rate := func(t, w float64) float64 { return -lambda * w }
	w1 := stability.SeedRK4(rate, t0, w0, h)
	solver, err := stability.NewSolver(rate, t0, tf, h, w0, w1)
	if err != nil {
		return err
	}
	solver.Run()

	ws := solver.Values()
	final := ws[len(ws)-1]
	exact := w0 * math.Exp(-lambda*(tf-t0))
	fmt.Printf("lambda=%g h=%g  h*lambda=%g\n", lambda, h, h*lambda)
	fmt.Printf("final w=%.9e  exact=%.9e  max |w|=%.3e\n", final, exact, solver.MaxAbs())
	if solver.MaxAbs() > 10*math.Abs(w0) {
		fmt.Println("scheme unstable at this step size")
	}
	return nil
}

func runBessel(cmd *cobra.Command, args []string) error {
	dir := bessel.Forward
	if backward {
		dir = bessel.Backward
	}
	rec, err := bessel.New(dir, orders)
	if err != nil {
		return err
	}
	seed0, seed1 := bessel.Seeds(dir, arg, orders)
	table, err := rec.Compute(arg, seed0, seed1)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "n\tJ_n(%g) %s\tresidual\n", arg, dir)
	for i, v := range table.Computed {
		fmt.Fprintf(w, "%d\t%.12e\t%.3e\n", i, v, table.Residual[i])
	}
	return w.Flush()
}
