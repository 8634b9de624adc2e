package sarsa

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"qosRoute/internal/cost"
	"qosRoute/internal/opt"
	"qosRoute/internal/topo"
)

func ring10() *topo.Topology {
	return topo.Ring(10,
		topo.Node{Reliability: 1},
		topo.Edge{Delay: 10, Reliability: 0.99, Bandwidth: 500},
	)
}

func ringRequest() opt.Request {
	return opt.Request{Source: 0, Dest: 5, Weights: cost.Weights{Delay: 1}}
}

func diamond() *topo.Topology {
	g := topo.New()
	for i := 0; i < 5; i++ {
		g.AddNode(i, topo.Node{Reliability: 1})
	}
	e := topo.Edge{Delay: 10, Reliability: 1, Bandwidth: 1000}
	for _, pair := range [][2]int{{0, 1}, {1, 2}, {2, 4}, {0, 3}, {3, 4}, {1, 3}} {
		if err := g.AddEdge(pair[0], pair[1], e); err != nil {
			panic(err)
		}
	}
	return g
}

func TestSolveRingScenario(t *testing.T) {
	s, err := New(DefaultConfig(), 42)
	require.NoError(t, err)

	res, err := s.Solve(context.Background(), ring10(), ringRequest())
	require.NoError(t, err)

	require.Len(t, res.Path, 6, "ожидается путь в 5 переходов")
	require.InDelta(t, 0.25, res.Cost, 1e-12)
}

func TestSolveFindsOptimum(t *testing.T) {
	g := diamond()
	req := opt.Request{Source: 0, Dest: 4, Weights: cost.Weights{Delay: 1}}

	s, err := New(DefaultConfig(), 42)
	require.NoError(t, err)

	res, err := s.Solve(context.Background(), g, req)
	require.NoError(t, err)
	require.InDelta(t, 0.1, res.Cost, 1e-12, "оптимум графа — путь 0-3-4")
	require.Equal(t, []int{0, 3, 4}, res.Path)
}

func TestSolveDeterminism(t *testing.T) {
	s, err := New(DefaultConfig(), 7)
	require.NoError(t, err)

	r1, err := s.Solve(context.Background(), ring10(), ringRequest())
	require.NoError(t, err)
	r2, err := s.Solve(context.Background(), ring10(), ringRequest())
	require.NoError(t, err)

	require.Equal(t, r1.Path, r2.Path)
	require.Equal(t, r1.Cost, r2.Cost)
}

func TestSolveInfeasibleDemand(t *testing.T) {
	s, err := New(DefaultConfig(), 1)
	require.NoError(t, err)

	req := ringRequest()
	req.Demand = 1000

	res, err := s.Solve(context.Background(), ring10(), req)
	require.NoError(t, err)
	require.True(t, math.IsInf(res.Cost, 1))
}

func TestSolveCancelledContext(t *testing.T) {
	s, err := New(DefaultConfig(), 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Solve(ctx, ring10(), ringRequest())
	require.Error(t, err)
	require.Equal(t, "context", res.Meta["stopped"])
}

func TestSolveRecordsSeed(t *testing.T) {
	s, err := New(DefaultConfig(), 0)
	require.NoError(t, err)

	r1, err := s.Solve(context.Background(), ring10(), ringRequest())
	require.NoError(t, err)
	require.NotZero(t, r1.Seed, "фактическое зерно фиксируется в результате")

	r2, err := s.Solve(context.Background(), ring10(), ringRequest())
	require.NoError(t, err)
	require.NotEqual(t, r1.Seed, r2.Seed)
}

func TestTerminalReward(t *testing.T) {
	require.InDelta(t, 100.0, terminalReward(10, 0.1), 1e-12)
	require.Equal(t, 0.0, terminalReward(10, cost.Inf))
}
