package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/tbraden/numlab/internal/convergence"
	"github.com/tbraden/numlab/internal/models"
	"github.com/tbraden/numlab/internal/shooting"
)

func solveLinear(t *testing.T) (*shooting.Driver, *shooting.Result) {
	t.Helper()
	sys := models.NewLinear(1.0, 0.0, 1.0)
	d, err := shooting.NewDriver(sys, shooting.Config{
		Alpha: 1.0, Beta: 3.0, Guess: 0.0, H: 1.0 / 64.0,
	})
	if err != nil {
		t.Fatalf("driver: %v", err)
	}
	res, err := d.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return d, res
}

func TestWriteJSONRoundTrips(t *testing.T) {
	d, res := solveLinear(t)
	traj, err := d.Trajectory()
	if err != nil {
		t.Fatalf("trajectory: %v", err)
	}
	path := filepath.Join(t.TempDir(), "solve.json")
	if err := WriteJSON(path, "linear", res, d.Grid(), traj, d.Shots()); err != nil {
		t.Fatalf("write: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var data SolveData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Model != "linear" {
		t.Errorf("model %q", data.Model)
	}
	if data.U != res.U {
		t.Errorf("u %g, want %g", data.U, res.U)
	}
	if data.Outcome != "converged" {
		t.Errorf("outcome %q", data.Outcome)
	}
	if len(data.Positions) != len(data.Values) || len(data.Values) != len(data.Slopes) {
		t.Errorf("ragged columns: %d/%d/%d", len(data.Positions), len(data.Values), len(data.Slopes))
	}
	if len(data.ShotGuesses) != res.Iterations {
		t.Errorf("%d shot guesses for %d iterations", len(data.ShotGuesses), res.Iterations)
	}
}

func TestWriteTrajectoryCSV(t *testing.T) {
	d, _ := solveLinear(t)
	traj, err := d.Trajectory()
	if err != nil {
		t.Fatalf("trajectory: %v", err)
	}
	path := filepath.Join(t.TempDir(), "traj.csv")
	if err := WriteTrajectoryCSV(path, d.Grid(), traj); err != nil {
		t.Fatalf("write: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != d.Grid().Len()+1 {
		t.Errorf("%d rows for %d points", len(rows), d.Grid().Len())
	}
	if rows[0][0] != "x" || rows[0][1] != "y" || rows[0][2] != "dy" {
		t.Errorf("header %v", rows[0])
	}
}

func TestWriteTrajectoryCSVRejectsMismatch(t *testing.T) {
	d, _ := solveLinear(t)
	traj, err := d.Trajectory()
	if err != nil {
		t.Fatalf("trajectory: %v", err)
	}
	path := filepath.Join(t.TempDir(), "traj.csv")
	if err := WriteTrajectoryCSV(path, d.Grid(), traj[:3]); err == nil {
		t.Error("truncated trajectory accepted")
	}
}

func TestWriteConvergenceCSV(t *testing.T) {
	sys := models.NewLinear(1.0, 0.0, 1.0)
	h, err := convergence.New(sys, shooting.Config{Alpha: 1.0, Beta: 3.0, Guess: 0.0},
		convergence.DyadicSteps(1.0/32.0, 3))
	if err != nil {
		t.Fatalf("harness: %v", err)
	}
	report, err := h.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	path := filepath.Join(t.TempDir(), "conv.csv")
	if err := WriteConvergenceCSV(path, report); err != nil {
		t.Fatalf("write: %v", err)
	}
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != len(report.Points)+1 {
		t.Errorf("%d rows for %d points", len(rows), len(report.Points))
	}
}
