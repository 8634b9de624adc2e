package aco

// pheromone — разреженная таблица феромона по рёбрам. Рёбра
// неориентированные, поэтому ключ нормализуется (меньший узел первым).
// Отсутствующая запись трактуется как базовое значение tau0;
// граф может содержать тысячи узлов при немногих реализованных переходах,
// поэтому плотная матрица не используется.
type pheromone struct {
	m    map[[2]int]float64
	tau0 float64
	min  float64
	max  float64
}

func newPheromone(tau0, min, max float64) *pheromone {
	return &pheromone{
		m:    make(map[[2]int]float64),
		tau0: tau0,
		min:  min,
		max:  max,
	}
}

func edgeKey(from, to int) [2]int {
	if from > to {
		from, to = to, from
	}
	return [2]int{from, to}
}

func (p *pheromone) get(from, to int) float64 {
	if v, ok := p.m[edgeKey(from, to)]; ok {
		return v
	}
	return p.tau0
}

// set записывает значение с приведением к границам [min, max].
func (p *pheromone) set(from, to int, v float64) {
	if v < p.min {
		v = p.min
	} else if v > p.max {
		v = p.max
	}
	p.m[edgeKey(from, to)] = v
}

// evaporate испаряет феромон на перечисленных переходах.
func (p *pheromone) evaporate(edges map[[2]int]bool, rho float64) {
	keep := 1.0 - rho
	for e := range edges {
		p.set(e[0], e[1], p.get(e[0], e[1])*keep)
	}
}

// depositPath усиливает феромон вдоль пути.
func (p *pheromone) depositPath(path []int, delta float64) {
	for i := 0; i < len(path)-1; i++ {
		from, to := path[i], path[i+1]
		p.set(from, to, p.get(from, to)+delta)
	}
}
