// Package viz renders terminal charts and styled summaries of solver output.
// It is a read-only collaborator of the numerical core.
package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/tbraden/numlab/internal/convergence"
	"github.com/tbraden/numlab/internal/odes"
	"github.com/tbraden/numlab/internal/shooting"
)

const chartHeight = 12

// TrajectoryChart plots y(x) and y'(x) for a grid-aligned trajectory.
func TrajectoryChart(grid *odes.Grid, traj []odes.State, width int) string {
	ys := make([]float64, len(traj))
	dys := make([]float64, len(traj))
	for i, s := range traj {
		ys[i] = s.Y
		dys[i] = s.Dy
	}
	series := [][]float64{downsample(ys, width), downsample(dys, width)}
	return asciigraph.PlotMany(series,
		asciigraph.Height(chartHeight),
		asciigraph.Caption(fmt.Sprintf("y(x), y'(x) over [0, %g]", grid.At(grid.Len()-1))),
	)
}

// ConvergenceChart plots log10 relative boundary error per step size, coarse
// to fine.
func ConvergenceChart(report *convergence.Report) string {
	logs := make([]float64, len(report.Points))
	for i, p := range report.Points {
		logs[i] = math.Log10(p.RelErrDy)
	}
	return asciigraph.Plot(logs,
		asciigraph.Height(chartHeight),
		asciigraph.Caption(fmt.Sprintf(
			"log10 rel err of boundary slope, h=%g..%g (observed order %.2f)",
			report.Points[0].H, report.Points[len(report.Points)-1].H, report.OrderDy,
		)),
	)
}

// SolveSummary renders a styled block describing one shooting result.
func SolveSummary(model string, res *shooting.Result, h float64) string {
	status := StatusConverged.Render(res.Outcome.String())
	if res.Outcome != shooting.Converged {
		status = StatusExhausted.Render(res.Outcome.String())
	}

	var b strings.Builder
	b.WriteString(Title.Render(model) + "  " + status + "\n")
	b.WriteString(Label.Render("u*         ") + Value.Render(fmt.Sprintf("%.6e", res.U)) + "\n")
	b.WriteString(Label.Render("beta est   ") + Value.Render(fmt.Sprintf("%.6e", res.BetaEst)) + "\n")
	b.WriteString(Label.Render("iterations ") + Value.Render(fmt.Sprintf("%d", res.Iterations)) + "\n")
	b.WriteString(Label.Render("h          ") + Value.Render(fmt.Sprintf("%g", h)))
	return Panel.Render(b.String())
}

// downsample thins a series to at most width points so wide grids stay
// readable in a terminal.
func downsample(data []float64, width int) []float64 {
	if width <= 0 || len(data) <= width {
		return data
	}
	step := float64(len(data)-1) / float64(width-1)
	out := make([]float64, width)
	for i := range out {
		out[i] = data[int(math.Round(float64(i)*step))]
	}
	return out
}
