package ga

import (
	"context"
	"math"
	"math/rand"
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

func TestSolveRingScenario(t *testing.T) {
	s, err := New(DefaultConfig(), 42)
	require.NoError(t, err)

	res, err := s.Solve(context.Background(), ring10(), ringRequest())
	require.NoError(t, err)

	require.Len(t, res.Path, 6, "ожидается путь в 5 переходов")
	require.InDelta(t, 0.25, res.Cost, 1e-12)
	require.InDelta(t, 0.25, res.Breakdown.NormDelay, 1e-12)
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
	require.Equal(t, r1.Seed, r2.Seed)
}

func TestSolveInfeasibleDemand(t *testing.T) {
	s, err := New(DefaultConfig(), 1)
	require.NoError(t, err)

	req := ringRequest()
	req.Demand = 1000 // выше пропускной способности всех рёбер

	res, err := s.Solve(context.Background(), ring10(), req)
	require.NoError(t, err)
	require.True(t, math.IsInf(res.Cost, 1))
}

func TestSolveRejectsBadInput(t *testing.T) {
	s, err := New(DefaultConfig(), 1)
	require.NoError(t, err)

	req := ringRequest()
	req.Dest = req.Source
	_, err = s.Solve(context.Background(), ring10(), req)
	require.Error(t, err)

	_, err = New(Config{}, 1)
	require.Error(t, err)
}

func TestSolveCancelledContext(t *testing.T) {
	s, err := New(DefaultConfig(), 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Solve(ctx, ring10(), ringRequest())
	require.Error(t, err)
	require.Equal(t, "context", res.Meta["stopped"])
	require.NotEmpty(t, res.Path, "частичный результат обязан содержать путь")
}

func TestCrossoverNeverProducesCycle(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	// Родители с общими внутренними узлами 2 и 3, склейка в узле 3
	// через суффикс второго родителя вернула бы повтор узла 2
	p1 := []int{0, 1, 2, 3, 9}
	p2 := []int{0, 4, 3, 2, 5, 9}

	for i := 0; i < 200; i++ {
		c1, c2 := crossover(p1, p2, rng)
		require.False(t, hasRepeat(c1), "потомок с циклом: %v", c1)
		require.False(t, hasRepeat(c2), "потомок с циклом: %v", c2)
		require.Equal(t, 0, c1[0])
		require.Equal(t, 9, c1[len(c1)-1])
	}
}

func TestCrossoverWithoutCommonNodes(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	p1 := []int{0, 1, 9}
	p2 := []int{0, 2, 9}
	c1, c2 := crossover(p1, p2, rng)
	require.Equal(t, p1, c1)
	require.Equal(t, p2, c2)
}

func TestMutatePreservesValidity(t *testing.T) {
	// Квадрат с диагоналями: у пути 0-1-2 есть замена узла 1 на 3
	g := topo.New()
	for i := 0; i < 4; i++ {
		g.AddNode(i, topo.Node{Reliability: 1})
	}
	e := topo.Edge{Delay: 1, Reliability: 1, Bandwidth: 100}
	require.NoError(t, g.AddEdge(0, 1, e))
	require.NoError(t, g.AddEdge(1, 2, e))
	require.NoError(t, g.AddEdge(0, 3, e))
	require.NoError(t, g.AddEdge(3, 2, e))

	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		p := []int{0, 1, 2}
		mutate(g, p, 0, rng)
		require.True(t, g.IsSimplePath(p), "после мутации путь некорректен: %v", p)
	}
}
