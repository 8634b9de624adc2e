package aco

import (
	"math"
	"math/rand"

	"qosRoute/internal/cost"
	"qosRoute/internal/opt"
	"qosRoute/internal/topo"
)

// walker строит пути муравьёв. Эвристика переходов вычисляется один раз
// и переиспользуется всеми муравьями запуска.
type walker struct {
	t        *topo.Topology
	req      opt.Request
	maxSteps int

	// eta — эвристическая привлекательность перехода: 1/(1+стоимость перехода).
	eta map[[2]int]float64

	cand    []int
	weights []float64
}

func newWalker(t *topo.Topology, req opt.Request, maxSteps int) *walker {
	return &walker{
		t:        t,
		req:      req,
		maxSteps: maxSteps,
		eta:      make(map[[2]int]float64),
	}
}

func (w *walker) heuristic(from, to int) float64 {
	key := [2]int{from, to}
	if v, ok := w.eta[key]; ok {
		return v
	}
	v := 1.0 / (1.0 + cost.HopCost(w.t, from, to, w.req.Weights))
	w.eta[key] = v
	return v
}

// construct строит один путь от истока к цели.
// На каждом шаге среди непосещённых соседей с достаточной пропускной
// способностью: с вероятностью epsilon — равновероятный выбор, иначе —
// выбор пропорционально tau^alpha * eta^beta.
// Возвращает nil при тупике или исчерпании бюджета шагов.
func (w *walker) construct(ph *pheromone, alpha, beta, epsilon float64, rng *rand.Rand) []int {
	src, dst := w.req.Source, w.req.Dest

	path := make([]int, 0, 16)
	path = append(path, src)
	visited := map[int]bool{src: true}
	cur := src

	for step := 0; step < w.maxSteps; step++ {
		if cur == dst {
			return path
		}

		w.cand = w.cand[:0]
		for _, nb := range w.t.Neighbors(cur) {
			if visited[nb] {
				continue
			}
			e, _ := w.t.Edge(cur, nb)
			if w.req.Demand > 0 && e.Bandwidth < w.req.Demand {
				continue
			}
			w.cand = append(w.cand, nb)
		}
		if len(w.cand) == 0 {
			return nil
		}

		var next int
		if rng.Float64() < epsilon {
			// Случайное исследование
			next = w.cand[rng.Intn(len(w.cand))]
		} else {
			next = w.sample(ph, cur, alpha, beta, rng)
		}

		visited[next] = true
		path = append(path, next)
		cur = next
	}
	return nil
}

// sample выбирает следующий узел пропорционально tau^alpha * eta^beta.
func (w *walker) sample(ph *pheromone, cur int, alpha, beta float64, rng *rand.Rand) int {
	if cap(w.weights) < len(w.cand) {
		w.weights = make([]float64, len(w.cand))
	}
	w.weights = w.weights[:len(w.cand)]

	sum := 0.0
	for i, nb := range w.cand {
		v := fastPow(ph.get(cur, nb), alpha) * fastPow(w.heuristic(cur, nb), beta)
		w.weights[i] = v
		sum += v
	}
	if sum <= 0 {
		return w.cand[rng.Intn(len(w.cand))]
	}

	r := rng.Float64() * sum
	acc := 0.0
	chosen := len(w.cand) - 1
	for i := range w.cand {
		acc += w.weights[i]
		if r <= acc {
			chosen = i
			break
		}
	}
	return w.cand[chosen]
}

// fastPow — оптимизация для частых степеней.
// Таким образом избегаем вызова math.Pow в простых случаях.
func fastPow(x, p float64) float64 {
	if p == 0 {
		return 1.0
	}
	if p == 1 {
		return x
	}
	if p == 2 {
		return x * x
	}
	return math.Pow(x, p)
}
