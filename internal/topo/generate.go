package topo

import "math/rand"

// Диапазоны атрибутов случайной топологии.
const (
	genDelayMin   = 1.0
	genDelayMax   = 50.0
	genRelMin     = 0.95
	genRelMax     = 0.999
	genBwMin      = 100.0
	genBwMax      = 1000.0
	genProcDelayMax = 5.0
)

// RandomTopology генерирует связный случайный граф из n узлов:
// случайное остовное дерево плюс extraEdges дополнительных рёбер.
func RandomTopology(n, extraEdges int, rng *rand.Rand) *Topology {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if n < 2 {
		panic("количество узлов должно быть >= 2")
	}

	t := New()
	for i := 0; i < n; i++ {
		t.AddNode(i, Node{
			ProcessingDelay: rng.Float64() * genProcDelayMax,
			Reliability:     genRelMin + rng.Float64()*(genRelMax-genRelMin),
		})
	}

	// Остовное дерево: каждый узел i > 0 соединяется со случайным из [0, i).
	for i := 1; i < n; i++ {
		_ = t.AddEdge(i, rng.Intn(i), randomEdge(rng))
	}

	// Дополнительные рёбра между случайными несмежными парами.
	for added, attempts := 0, 0; added < extraEdges && attempts < extraEdges*10; attempts++ {
		a := rng.Intn(n)
		b := rng.Intn(n)
		if a == b || t.HasEdge(a, b) {
			continue
		}
		_ = t.AddEdge(a, b, randomEdge(rng))
		added++
	}

	return t
}

func randomEdge(rng *rand.Rand) Edge {
	return Edge{
		Delay:       genDelayMin + rng.Float64()*(genDelayMax-genDelayMin),
		Reliability: genRelMin + rng.Float64()*(genRelMax-genRelMin),
		Bandwidth:   genBwMin + rng.Float64()*(genBwMax-genBwMin),
	}
}

// Ring строит кольцевую топологию из n узлов с одинаковыми атрибутами.
// Используется в тестах и как эталонный сценарий.
func Ring(n int, nd Node, e Edge) *Topology {
	t := New()
	for i := 0; i < n; i++ {
		t.AddNode(i, nd)
	}
	for i := 0; i < n; i++ {
		_ = t.AddEdge(i, (i+1)%n, e)
	}
	return t
}
