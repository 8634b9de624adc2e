package bench

import (
	"context"
	"encoding/csv"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"qosRoute/internal/cost"
	"qosRoute/internal/ga"
	"qosRoute/internal/opt"
	"qosRoute/internal/topo"
)

func tinyGA() Algorithm {
	cfg := ga.DefaultConfig()
	cfg.Population = 20
	cfg.Generations = 30
	return Algorithm{
		Name: "ga",
		Factory: func(seed int64) opt.Optimizer {
			s, err := ga.New(cfg, seed)
			if err != nil {
				panic(err)
			}
			return s
		},
	}
}

func benchTopology(t *testing.T) *topo.Topology {
	t.Helper()
	g := topo.RandomTopology(12, 8, rand.New(rand.NewSource(777)))
	require.NoError(t, g.Validate())
	return g
}

func TestRunCase(t *testing.T) {
	g := benchTopology(t)
	scs := RandomScenarios(g, 4, []float64{0, 100}, rand.New(rand.NewSource(1)))
	require.Len(t, scs, 4)

	r := Runner{Runs: 3, BaseSeed: 100}
	rec, err := r.RunCase(context.Background(), g, scs, cost.Weights{Delay: 0.5, Reliability: 0.3, Resource: 0.2}, tinyGA())
	require.NoError(t, err)

	require.Equal(t, "ga", rec.Algo)
	require.Equal(t, 12, rec.Nodes)
	require.Equal(t, 4, rec.Scenarios)
	require.Equal(t, 3, rec.Runs)
	require.Equal(t, 1.0, rec.SuccessRate, "на связном графе все прогоны обязаны находить путь")
	require.False(t, math.IsInf(rec.CostMean, 1))
	require.LessOrEqual(t, rec.CostBest, rec.CostMean)
}

func TestRunCaseDeterministicSeeds(t *testing.T) {
	g := benchTopology(t)
	scs := RandomScenarios(g, 2, []float64{0}, rand.New(rand.NewSource(2)))

	r := Runner{Runs: 2, BaseSeed: 500}
	w := cost.Weights{Delay: 1}

	r1, err := r.RunCase(context.Background(), g, scs, w, tinyGA())
	require.NoError(t, err)
	r2, err := r.RunCase(context.Background(), g, scs, w, tinyGA())
	require.NoError(t, err)

	require.Equal(t, r1.CostMean, r2.CostMean)
	require.Equal(t, r1.CostBest, r2.CostBest)
}

func TestRunCaseParallelMatchesSequential(t *testing.T) {
	g := benchTopology(t)
	scs := RandomScenarios(g, 3, []float64{0}, rand.New(rand.NewSource(3)))
	w := cost.Weights{Delay: 1}

	seq := Runner{Runs: 2, BaseSeed: 42}
	par := Runner{Runs: 2, BaseSeed: 42, Workers: 4}

	rs, err := seq.RunCase(context.Background(), g, scs, w, tinyGA())
	require.NoError(t, err)
	rp, err := par.RunCase(context.Background(), g, scs, w, tinyGA())
	require.NoError(t, err)

	require.Equal(t, rs.CostMean, rp.CostMean)
	require.Equal(t, rs.SuccessRate, rp.SuccessRate)
}

func TestValidateRejectsBadResult(t *testing.T) {
	g := topo.Ring(4,
		topo.Node{Reliability: 1},
		topo.Edge{Delay: 10, Reliability: 0.99, Bandwidth: 200},
	)
	sc := Scenario{Source: 0, Dest: 2}

	require.NoError(t, validate(g, sc, opt.Result{Path: []int{0, 1, 2}, Cost: 0.1}))

	// Неверные конечные точки
	require.Error(t, validate(g, sc, opt.Result{Path: []int{1, 2}, Cost: 0.1}))

	// Несуществующий переход
	require.Error(t, validate(g, sc, opt.Result{Path: []int{0, 2}, Cost: 0.1}))

	// Нарушение требования по полосе
	sc.Demand = 500
	require.Error(t, validate(g, sc, opt.Result{Path: []int{0, 1, 2}, Cost: 0.1}))
}

func TestCalc(t *testing.T) {
	s := Calc([]float64{2, 4, 6})
	require.Equal(t, 3, s.N)
	require.Equal(t, 2.0, s.Best)
	require.InDelta(t, 4.0, s.Mean, 1e-12)
	require.InDelta(t, 2.0, s.Std, 1e-12)

	// Менее двух значений — разброс не определён
	s = Calc([]float64{5})
	require.Equal(t, 1, s.N)
	require.Equal(t, 5.0, s.Best)
	require.Equal(t, 0.0, s.Std)

	s = Calc(nil)
	require.Equal(t, 0, s.N)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	recs := []Record{{
		Algo: "ga", Nodes: 12, Edges: 19, Scenarios: 4, Runs: 3,
		SuccessRate: 1, CostBest: 0.1, CostMean: 0.2, CostStd: 0.05,
		TimeBestMs: 1.5, TimeMeanMs: 2.0, TimeStdMs: 0.3,
	}}
	require.NoError(t, WriteCSV(path, recs))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "algo", rows[0][0])
	require.Equal(t, "ga", rows[1][0])
	require.Equal(t, "12", rows[1][1])
}
