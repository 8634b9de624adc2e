package topo

import "math/rand"

// RandomWalk строит случайный простой путь от src к dst.
// Если dst — сосед текущего узла (и ребро проходит по пропускной способности),
// переход выполняется сразу; иначе выбирается равновероятный непосещённый
// сосед. Возвращает nil при тупике или исчерпании бюджета шагов.
func (t *Topology) RandomWalk(rng *rand.Rand, src, dst int, minBandwidth float64, maxSteps int) []int {
	if !t.HasNode(src) || !t.HasNode(dst) || src == dst {
		return nil
	}
	if maxSteps <= 0 {
		maxSteps = 4 * t.NodeCount()
	}

	path := make([]int, 0, 16)
	path = append(path, src)
	visited := map[int]bool{src: true}

	cur := src
	cand := make([]int, 0, 8)

	for step := 0; step < maxSteps; step++ {
		// Смещение к цели: прямое ребро к dst используется немедленно.
		if e, ok := t.Edge(cur, dst); ok && feasible(e, minBandwidth) {
			return append(path, dst)
		}

		cand = cand[:0]
		for _, nb := range t.Neighbors(cur) {
			if visited[nb] {
				continue
			}
			e, _ := t.Edge(cur, nb)
			if !feasible(e, minBandwidth) {
				continue
			}
			cand = append(cand, nb)
		}
		if len(cand) == 0 {
			return nil
		}

		cur = cand[rng.Intn(len(cand))]
		visited[cur] = true
		path = append(path, cur)
	}
	return nil
}

// ConstrainedWalk — случайное простое блуждание от src к dst, которому
// запрещено заходить в узлы из avoid. Используется для перестройки
// участков существующего пути. Возвращает nil при неудаче.
func (t *Topology) ConstrainedWalk(rng *rand.Rand, src, dst int, minBandwidth float64, avoid map[int]bool, maxSteps int) []int {
	if !t.HasNode(src) || !t.HasNode(dst) || src == dst {
		return nil
	}
	if maxSteps <= 0 {
		maxSteps = 4 * t.NodeCount()
	}

	path := []int{src}
	visited := map[int]bool{src: true}
	cur := src

	for step := 0; step < maxSteps; step++ {
		if e, ok := t.Edge(cur, dst); ok && feasible(e, minBandwidth) {
			return append(path, dst)
		}

		var cand []int
		for _, nb := range t.Neighbors(cur) {
			if visited[nb] || avoid[nb] {
				continue
			}
			e, _ := t.Edge(cur, nb)
			if !feasible(e, minBandwidth) {
				continue
			}
			cand = append(cand, nb)
		}
		if len(cand) == 0 {
			return nil
		}

		cur = cand[rng.Intn(len(cand))]
		visited[cur] = true
		path = append(path, cur)
	}
	return nil
}

func feasible(e Edge, minBandwidth float64) bool {
	return minBandwidth <= 0 || e.Bandwidth >= minBandwidth
}

// CommonNeighbors возвращает общих соседей узлов a и b (по возрастанию),
// у которых оба инцидентных ребра проходят по пропускной способности
// и которые не входят в exclude.
func (t *Topology) CommonNeighbors(a, b int, minBandwidth float64, exclude map[int]bool) []int {
	var out []int
	for _, nb := range t.Neighbors(a) {
		if exclude[nb] {
			continue
		}
		ea, _ := t.Edge(a, nb)
		eb, ok := t.Edge(nb, b)
		if !ok {
			continue
		}
		if feasible(ea, minBandwidth) && feasible(eb, minBandwidth) {
			out = append(out, nb)
		}
	}
	return out
}

// IsSimplePath проверяет, что path — простой путь в топологии.
func (t *Topology) IsSimplePath(path []int) bool {
	if len(path) < 2 {
		return false
	}
	seen := make(map[int]bool, len(path))
	for i, id := range path {
		if seen[id] {
			return false
		}
		seen[id] = true
		if i > 0 && !t.HasEdge(path[i-1], id) {
			return false
		}
	}
	return true
}
