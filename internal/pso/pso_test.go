package pso

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

func TestSpliceTowardNeverRepeatsNodes(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	// Общие внутренние узлы 2 и 3: склейка в узле 3 дала бы повтор
	// узла 2 и обязана откатиться к текущему пути
	cur := []int{0, 1, 2, 3, 4, 5}
	target := []int{0, 6, 3, 2, 7, 5}

	for i := 0; i < 200; i++ {
		p := spliceToward(cur, target, rng)
		require.Equal(t, 0, p[0])
		require.Equal(t, 5, p[len(p)-1])
		seen := map[int]bool{}
		for _, id := range p {
			require.False(t, seen[id], "повтор узла в пути %v", p)
			seen[id] = true
		}
	}

	// Без общих внутренних узлов путь остаётся прежним
	require.Equal(t, cur, spliceToward(cur, []int{0, 8, 9, 5}, rng))
}

func TestRerouteSegmentStaysValid(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	g := ring10()
	require.NoError(t, g.AddEdge(1, 4, topo.Edge{Delay: 1, Reliability: 1, Bandwidth: 500}))

	for i := 0; i < 100; i++ {
		p := rerouteSegment(g, []int{0, 1, 2, 3, 4, 5}, 0, rng)
		require.True(t, g.IsSimplePath(p), "после перестройки путь некорректен: %v", p)
		require.Equal(t, 0, p[0])
		require.Equal(t, 5, p[len(p)-1])
	}
}
