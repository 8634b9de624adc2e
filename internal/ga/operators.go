package ga

import (
	"math/rand"

	"qosRoute/internal/topo"
)

// commonInterior возвращает узлы, встречающиеся во внутренних частях
// обоих родительских путей (исток и цель исключаются).
func commonInterior(a, b []int) []int {
	if len(a) < 3 || len(b) < 3 {
		return nil
	}
	inA := make(map[int]bool, len(a))
	for _, id := range a[1 : len(a)-1] {
		inA[id] = true
	}
	var out []int
	for _, id := range b[1 : len(b)-1] {
		if inA[id] {
			out = append(out, id)
		}
	}
	return out
}

// indexOf возвращает позицию узла в пути.
func indexOf(p []int, id int) int {
	for i, v := range p {
		if v == id {
			return i
		}
	}
	return -1
}

// hasRepeat проверяет наличие повторяющегося узла.
func hasRepeat(p []int) bool {
	seen := make(map[int]bool, len(p))
	for _, id := range p {
		if seen[id] {
			return true
		}
		seen[id] = true
	}
	return false
}

// splice формирует потомка: префикс a до узла cut включительно
// плюс суффикс b после него.
func splice(a, b []int, cut int) []int {
	ia := indexOf(a, cut)
	ib := indexOf(b, cut)
	child := make([]int, 0, ia+1+len(b)-ib-1)
	child = append(child, a[:ia+1]...)
	child = append(child, b[ib+1:]...)
	return child
}

// crossover скрещивает два пути в случайном общем внутреннем узле.
// Без общих узлов родители возвращаются без изменений. Потомок с
// повторяющимся узлом (циклом) отбрасывается и заменяется родителем.
func crossover(p1, p2 []int, rng *rand.Rand) ([]int, []int) {
	common := commonInterior(p1, p2)
	if len(common) == 0 {
		return clonePath(p1), clonePath(p2)
	}
	cut := common[rng.Intn(len(common))]

	c1 := splice(p1, p2, cut)
	if hasRepeat(c1) {
		c1 = clonePath(p1)
	}
	c2 := splice(p2, p1, cut)
	if hasRepeat(c2) {
		c2 = clonePath(p2)
	}
	return c1, c2
}

// mutate заменяет случайный внутренний узел на общего соседа его
// предшественника и преемника, не входящего в путь. Если подходящей
// замены нет, путь остаётся без изменений.
func mutate(t *topo.Topology, p []int, demand float64, rng *rand.Rand) {
	if len(p) < 3 {
		return
	}
	i := 1 + rng.Intn(len(p)-2)

	onPath := make(map[int]bool, len(p))
	for _, id := range p {
		onPath[id] = true
	}
	cand := t.CommonNeighbors(p[i-1], p[i+1], demand, onPath)
	if len(cand) == 0 {
		return
	}
	p[i] = cand[rng.Intn(len(cand))]
}

// tournamentSelect реализует турнирный отбор:
// возвращается индекс особи с наименьшей стоимостью из выборки.
func tournamentSelect(costs []float64, tournamentSize int, rng *rand.Rand) int {
	best := rng.Intn(len(costs))
	bestCost := costs[best]
	for i := 1; i < tournamentSize; i++ {
		cand := rng.Intn(len(costs))
		if costs[cand] < bestCost {
			best = cand
			bestCost = costs[cand]
		}
	}
	return best
}

func clonePath(p []int) []int {
	if p == nil {
		return nil
	}
	out := make([]int, len(p))
	copy(out, p)
	return out
}
