// Package export writes solve results for external plotting and reporting.
// It consumes only the read-only accessors of the solver packages.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tbraden/numlab/internal/convergence"
	"github.com/tbraden/numlab/internal/odes"
	"github.com/tbraden/numlab/internal/shooting"
)

type SolveData struct {
	Model       string    `json:"model"`
	H           float64   `json:"h"`
	U           float64   `json:"u"`
	BetaEst     float64   `json:"beta_est"`
	Iterations  int       `json:"iterations"`
	Outcome     string    `json:"outcome"`
	Positions   []float64 `json:"positions"`
	Values      []float64 `json:"values"`
	Slopes      []float64 `json:"slopes"`
	ShotGuesses []float64 `json:"shot_guesses"`
}

// WriteJSON exports a converged solve: result, trajectory and the guesses of
// every archived shot.
func WriteJSON(path, model string, res *shooting.Result, grid *odes.Grid, traj []odes.State, shots []shooting.Shot) error {
	data := SolveData{
		Model:       model,
		H:           grid.H(),
		U:           res.U,
		BetaEst:     res.BetaEst,
		Iterations:  res.Iterations,
		Outcome:     res.Outcome.String(),
		Positions:   grid.Positions(),
		Values:      make([]float64, len(traj)),
		Slopes:      make([]float64, len(traj)),
		ShotGuesses: make([]float64, len(shots)),
	}
	for i, s := range traj {
		data.Values[i] = s.Y
		data.Slopes[i] = s.Dy
	}
	for i, s := range shots {
		data.ShotGuesses[i] = s.U
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteTrajectoryCSV exports x, y, y' rows for a grid-aligned trajectory.
func WriteTrajectoryCSV(path string, grid *odes.Grid, traj []odes.State) error {
	if grid.Len() != len(traj) {
		return fmt.Errorf("export: grid has %d points, trajectory %d", grid.Len(), len(traj))
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"x", "y", "dy"}); err != nil {
		return err
	}
	for i, s := range traj {
		row := []string{
			fmt.Sprintf("%.15g", grid.At(i)),
			fmt.Sprintf("%.15g", s.Y),
			fmt.Sprintf("%.15g", s.Dy),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteConvergenceCSV exports h, relative-error rows from a harness report.
func WriteConvergenceCSV(path string, report *convergence.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"h", "rel_err_y", "rel_err_dy"}); err != nil {
		return err
	}
	for _, p := range report.Points {
		row := []string{
			fmt.Sprintf("%.15g", p.H),
			fmt.Sprintf("%.15g", p.RelErrY),
			fmt.Sprintf("%.15g", p.RelErrDy),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
