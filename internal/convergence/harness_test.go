package convergence_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tbraden/numlab/internal/convergence"
	"github.com/tbraden/numlab/internal/models"
	"github.com/tbraden/numlab/internal/shooting"
)

var _ = Describe("DyadicSteps", func() {
	It("halves from the coarsest level down to the base", func() {
		steps := convergence.DyadicSteps(1e-3, 4)
		Expect(steps).To(Equal([]float64{8e-3, 4e-3, 2e-3, 1e-3}))
	})
})

var _ = Describe("Harness", func() {
	var (
		sys *models.Linear
		cfg shooting.Config
	)

	BeforeEach(func() {
		// y'' = y on [0,1]: smooth, stable, closed-form boundary map
		sys = models.NewLinear(1.0, 0.0, 1.0)
		cfg = shooting.Config{Alpha: 1.0, Beta: 3.0, Guess: 0.0}
	})

	It("rejects fewer than two step sizes", func() {
		_, err := convergence.New(sys, cfg, []float64{1e-3})
		Expect(err).To(HaveOccurred())
	})

	It("rejects non-positive step sizes", func() {
		_, err := convergence.New(sys, cfg, []float64{1e-3, 0})
		Expect(err).To(HaveOccurred())
	})

	It("observes fourth-order convergence of the shot slope", func() {
		steps := convergence.DyadicSteps(1.0/1024.0, 6)
		harness, err := convergence.New(sys, cfg, steps)
		Expect(err).NotTo(HaveOccurred())

		report, err := harness.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(report.Points).To(HaveLen(5))

		// the truncation order of the AB4/AM4 scheme shows in the converged
		// initial slope and in the boundary slope
		Expect(report.OrderU).To(BeNumerically(">=", 3.5))
		Expect(report.OrderU).To(BeNumerically("<=", 4.5))
		Expect(report.OrderDy).To(BeNumerically(">=", 3.5))
		Expect(report.OrderDy).To(BeNumerically("<=", 4.5))
	})

	It("pins the boundary value to the Newton tolerance at every resolution", func() {
		steps := convergence.DyadicSteps(1.0/256.0, 4)
		harness, err := convergence.New(sys, cfg, steps)
		Expect(err).NotTo(HaveOccurred())

		report, err := harness.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		for _, p := range report.Points {
			// |y(L) - beta| <= EPS on both sides of the comparison
			Expect(p.RelErrY).To(BeNumerically("<=", 2*shooting.EPS/3.0+1e-12))
		}
	})

	It("reduces slope error by roughly 16x per halving", func() {
		steps := convergence.DyadicSteps(1.0/1024.0, 6)
		harness, err := convergence.New(sys, cfg, steps)
		Expect(err).NotTo(HaveOccurred())

		report, err := harness.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		for i := 1; i < len(report.Points); i++ {
			ratio := report.Points[i-1].RelErrU / report.Points[i].RelErrU
			Expect(ratio).To(BeNumerically(">", 8.0), "between h=%g and h=%g", report.Points[i-1].H, report.Points[i].H)
			Expect(ratio).To(BeNumerically("<", 32.0), "between h=%g and h=%g", report.Points[i-1].H, report.Points[i].H)
		}
	})

	It("orders step sizes coarsest first regardless of input order", func() {
		harness, err := convergence.New(sys, cfg, []float64{1.0/512.0, 1.0/128.0, 1.0/256.0})
		Expect(err).NotTo(HaveOccurred())

		report, err := harness.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(report.RefH).To(Equal(1.0 / 512.0))
		Expect(report.Points[0].H).To(Equal(1.0 / 128.0))
	})
})
