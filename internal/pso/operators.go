package pso

import (
	"math/rand"

	"qosRoute/internal/topo"
)

// Дискретные операторы «скорости»: вместо вещественного вектора частица
// применяет правки пути — замену узла, перестройку участка, спрямление —
// и склейку с личным либо глобально лучшим путём.

// swapInterior заменяет случайный внутренний узел на общего соседа
// предшественника и преемника, не входящего в путь.
func swapInterior(t *topo.Topology, p []int, demand float64, rng *rand.Rand) []int {
	if len(p) < 3 {
		return p
	}
	i := 1 + rng.Intn(len(p)-2)

	onPath := make(map[int]bool, len(p))
	for _, id := range p {
		onPath[id] = true
	}
	cand := t.CommonNeighbors(p[i-1], p[i+1], demand, onPath)
	if len(cand) == 0 {
		return p
	}
	out := append([]int(nil), p...)
	out[i] = cand[rng.Intn(len(cand))]
	return out
}

// rerouteSegment перестраивает короткий участок пути случайным блужданием,
// избегая остальных узлов пути.
func rerouteSegment(t *topo.Topology, p []int, demand float64, rng *rand.Rand) []int {
	if len(p) < 3 {
		return p
	}
	i := rng.Intn(len(p) - 1)
	spanMax := len(p) - 1 - i
	if spanMax > 4 {
		spanMax = 4
	}
	j := i + 1 + rng.Intn(spanMax)

	avoid := make(map[int]bool, len(p))
	for k, id := range p {
		if k > i && k < j {
			continue // внутренние узлы участка разрешено использовать заново
		}
		avoid[id] = true
	}
	delete(avoid, p[i])
	delete(avoid, p[j])

	seg := t.ConstrainedWalk(rng, p[i], p[j], demand, avoid, 3*(j-i)+4)
	if seg == nil {
		return p
	}

	out := make([]int, 0, i+len(seg)+len(p)-j-1)
	out = append(out, p[:i]...)
	out = append(out, seg...)
	out = append(out, p[j+1:]...)
	return out
}

// shortcut спрямляет путь через прямое ребро между двумя его
// несмежными узлами, если такое ребро существует и проходит
// по пропускной способности.
func shortcut(t *topo.Topology, p []int, demand float64, rng *rand.Rand) []int {
	if len(p) < 4 {
		return p
	}
	i := rng.Intn(len(p) - 3)
	for j := len(p) - 1; j > i+1; j-- {
		e, ok := t.Edge(p[i], p[j])
		if !ok {
			continue
		}
		if demand > 0 && e.Bandwidth < demand {
			continue
		}
		out := make([]int, 0, i+1+len(p)-j)
		out = append(out, p[:i+1]...)
		out = append(out, p[j:]...)
		return out
	}
	return p
}

// spliceToward приближает путь к целевому: в случайном общем внутреннем
// узле берётся префикс текущего пути и суффикс целевого. Склейка с
// повтором узла отбрасывается.
func spliceToward(cur, target []int, rng *rand.Rand) []int {
	if len(cur) < 3 || len(target) < 3 {
		return cur
	}
	inCur := make(map[int]bool, len(cur))
	for _, id := range cur[1 : len(cur)-1] {
		inCur[id] = true
	}
	var common []int
	for _, id := range target[1 : len(target)-1] {
		if inCur[id] {
			common = append(common, id)
		}
	}
	if len(common) == 0 {
		return cur
	}
	cutNode := common[rng.Intn(len(common))]

	ia := index(cur, cutNode)
	ib := index(target, cutNode)
	out := make([]int, 0, ia+1+len(target)-ib-1)
	out = append(out, cur[:ia+1]...)
	out = append(out, target[ib+1:]...)

	seen := make(map[int]bool, len(out))
	for _, id := range out {
		if seen[id] {
			return cur
		}
		seen[id] = true
	}
	return out
}

func index(p []int, id int) int {
	for i, v := range p {
		if v == id {
			return i
		}
	}
	return -1
}
