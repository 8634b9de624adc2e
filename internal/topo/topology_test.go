package topo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildSquare(t *testing.T) *Topology {
	t.Helper()
	// Квадрат 0-1-2-3 с диагональю 0-2
	g := New()
	for i := 0; i < 4; i++ {
		g.AddNode(i, Node{ProcessingDelay: 1, Reliability: 0.99})
	}
	require.NoError(t, g.AddEdge(0, 1, Edge{Delay: 10, Reliability: 0.99, Bandwidth: 500}))
	require.NoError(t, g.AddEdge(1, 2, Edge{Delay: 10, Reliability: 0.99, Bandwidth: 500}))
	require.NoError(t, g.AddEdge(2, 3, Edge{Delay: 10, Reliability: 0.99, Bandwidth: 500}))
	require.NoError(t, g.AddEdge(3, 0, Edge{Delay: 10, Reliability: 0.99, Bandwidth: 500}))
	require.NoError(t, g.AddEdge(0, 2, Edge{Delay: 10, Reliability: 0.99, Bandwidth: 100}))
	return g
}

func TestEdgeSymmetry(t *testing.T) {
	g := buildSquare(t)

	e1, ok := g.Edge(0, 1)
	require.True(t, ok)
	e2, ok := g.Edge(1, 0)
	require.True(t, ok)
	require.Equal(t, e1, e2)

	require.NoError(t, g.Validate())
}

func TestNeighborsSorted(t *testing.T) {
	g := buildSquare(t)
	require.Equal(t, []int{1, 2, 3}, g.Neighbors(0))

	// Кэш должен сбрасываться при изменении графа
	g.RemoveEdge(0, 2)
	require.Equal(t, []int{1, 3}, g.Neighbors(0))
	require.False(t, g.HasEdge(0, 2))
	require.False(t, g.HasEdge(2, 0))
}

func TestShortestHops(t *testing.T) {
	g := buildSquare(t)

	// Диагональ даёт путь в один переход
	require.Equal(t, []int{0, 2}, g.ShortestHops(0, 2, 0))

	// С требованием выше пропускной способности диагонали путь обходной
	p := g.ShortestHops(0, 2, 200)
	require.Len(t, p, 3)
	require.Equal(t, 0, p[0])
	require.Equal(t, 2, p[2])

	// Недостижимая цель
	require.Nil(t, g.ShortestHops(0, 2, 10_000))
}

func TestRandomWalkReachesDest(t *testing.T) {
	g := buildSquare(t)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		p := g.RandomWalk(rng, 0, 2, 0, 0)
		require.NotNil(t, p)
		require.True(t, g.IsSimplePath(p))
		require.Equal(t, 0, p[0])
		require.Equal(t, 2, p[len(p)-1])
	}
}

func TestConstrainedWalkAvoids(t *testing.T) {
	g := buildSquare(t)
	rng := rand.New(rand.NewSource(7))

	// Запрещаем узел 1: путь 0→2 обязан идти через диагональ или через 3
	for i := 0; i < 20; i++ {
		p := g.ConstrainedWalk(rng, 0, 2, 0, map[int]bool{1: true}, 0)
		require.NotNil(t, p)
		require.NotContains(t, p, 1)
	}
}

func TestIsSimplePath(t *testing.T) {
	g := buildSquare(t)

	require.True(t, g.IsSimplePath([]int{0, 1, 2}))
	require.False(t, g.IsSimplePath([]int{0}))
	require.False(t, g.IsSimplePath([]int{0, 2, 0}))
	require.False(t, g.IsSimplePath([]int{0, 3, 1})) // нет ребра 3-1
}

func TestValidateRejectsBadAttributes(t *testing.T) {
	g := New()
	g.AddNode(0, Node{ProcessingDelay: -1, Reliability: 0.9})
	require.Error(t, g.Validate())

	g2 := New()
	g2.AddNode(0, Node{Reliability: 1.5})
	require.Error(t, g2.Validate())
}

func TestRandomTopologyConnected(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g := RandomTopology(30, 20, rng)

	require.NoError(t, g.Validate())
	require.Equal(t, 30, g.NodeCount())

	// Связность: из узла 0 достижимы все
	for _, id := range g.NodeIDs() {
		if id == 0 {
			continue
		}
		require.NotNil(t, g.ShortestHops(0, id, 0), "узел %d недостижим", id)
	}
}

func TestRing(t *testing.T) {
	g := Ring(6, Node{Reliability: 1}, Edge{Delay: 10, Reliability: 0.99, Bandwidth: 500})
	require.Equal(t, 6, g.NodeCount())
	require.Equal(t, 6, g.EdgeCount())
	require.Equal(t, []int{1, 5}, g.Neighbors(0))
}
