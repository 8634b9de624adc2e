package topo

import (
	"errors"
	"fmt"
	"sort"
)

// Node — атрибуты узла сети.
type Node struct {
	// ProcessingDelay — задержка обработки в узле.
	ProcessingDelay float64
	// Reliability — надёжность узла, лежит в интервале (0,1].
	Reliability float64
}

// Edge — атрибуты канала между двумя узлами.
type Edge struct {
	Delay       float64
	Reliability float64
	Bandwidth   float64
}

// Topology — неориентированный взвешенный граф сети.
// Рёбра хранятся симметрично: атрибуты идентичны в обоих направлениях.
// Во время запуска оптимизации граф только читается.
type Topology struct {
	nodes map[int]Node
	adj   map[int]map[int]Edge

	// Кэш отсортированных списков соседей.
	// Сортировка обязательна: детерминированный порядок обхода
	// гарантирует воспроизводимость запусков с фиксированным сидом.
	nbrs map[int][]int
}

// New возвращает пустую топологию.
func New() *Topology {
	return &Topology{
		nodes: make(map[int]Node),
		adj:   make(map[int]map[int]Edge),
		nbrs:  make(map[int][]int),
	}
}

// AddNode добавляет узел с атрибутами. Повторное добавление перезаписывает атрибуты.
func (t *Topology) AddNode(id int, n Node) {
	t.nodes[id] = n
	if _, ok := t.adj[id]; !ok {
		t.adj[id] = make(map[int]Edge)
	}
}

// AddEdge добавляет неориентированное ребро между a и b.
// Оба узла должны существовать.
func (t *Topology) AddEdge(a, b int, e Edge) error {
	if a == b {
		return fmt.Errorf("петля недопустима (узел %d)", a)
	}
	if !t.HasNode(a) || !t.HasNode(b) {
		return fmt.Errorf("ребро (%d,%d): оба узла должны быть добавлены заранее", a, b)
	}
	t.adj[a][b] = e
	t.adj[b][a] = e
	delete(t.nbrs, a)
	delete(t.nbrs, b)
	return nil
}

// RemoveEdge удаляет ребро в обоих направлениях.
// Допускается только между запусками оптимизации.
func (t *Topology) RemoveEdge(a, b int) {
	if m, ok := t.adj[a]; ok {
		delete(m, b)
	}
	if m, ok := t.adj[b]; ok {
		delete(m, a)
	}
	delete(t.nbrs, a)
	delete(t.nbrs, b)
}

// HasNode проверяет наличие узла.
func (t *Topology) HasNode(id int) bool {
	_, ok := t.nodes[id]
	return ok
}

// HasEdge проверяет наличие ребра между a и b.
func (t *Topology) HasEdge(a, b int) bool {
	m, ok := t.adj[a]
	if !ok {
		return false
	}
	_, ok = m[b]
	return ok
}

// Node возвращает атрибуты узла.
func (t *Topology) Node(id int) (Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Edge возвращает атрибуты ребра (a,b).
func (t *Topology) Edge(a, b int) (Edge, bool) {
	m, ok := t.adj[a]
	if !ok {
		return Edge{}, false
	}
	e, ok := m[b]
	return e, ok
}

// Neighbors возвращает соседей узла в порядке возрастания идентификаторов.
// Возвращаемый срез нельзя модифицировать.
func (t *Topology) Neighbors(id int) []int {
	if cached, ok := t.nbrs[id]; ok {
		return cached
	}
	m, ok := t.adj[id]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(m))
	for v := range m {
		out = append(out, v)
	}
	sort.Ints(out)
	t.nbrs[id] = out
	return out
}

// NodeIDs возвращает идентификаторы всех узлов в порядке возрастания.
func (t *Topology) NodeIDs() []int {
	out := make([]int, 0, len(t.nodes))
	for id := range t.nodes {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// NodeCount возвращает количество узлов.
func (t *Topology) NodeCount() int { return len(t.nodes) }

// EdgeCount возвращает количество неориентированных рёбер.
func (t *Topology) EdgeCount() int {
	total := 0
	for _, m := range t.adj {
		total += len(m)
	}
	return total / 2
}

// Validate проверяет корректность атрибутов всех узлов и рёбер.
func (t *Topology) Validate() error {
	if t == nil {
		return errors.New("топология не инициализирована (nil)")
	}
	if len(t.nodes) == 0 {
		return errors.New("топология не содержит узлов")
	}
	for id, n := range t.nodes {
		if n.ProcessingDelay < 0 {
			return fmt.Errorf("узел %d: задержка обработки должна быть >= 0 (получено %f)", id, n.ProcessingDelay)
		}
		if n.Reliability <= 0 || n.Reliability > 1 {
			return fmt.Errorf("узел %d: надёжность должна лежать в интервале (0,1] (получено %f)", id, n.Reliability)
		}
	}
	for a, m := range t.adj {
		for b, e := range m {
			if e.Delay < 0 {
				return fmt.Errorf("ребро (%d,%d): задержка должна быть >= 0 (получено %f)", a, b, e.Delay)
			}
			if e.Reliability <= 0 || e.Reliability > 1 {
				return fmt.Errorf("ребро (%d,%d): надёжность должна лежать в интервале (0,1] (получено %f)", a, b, e.Reliability)
			}
			if e.Bandwidth <= 0 {
				return fmt.Errorf("ребро (%d,%d): пропускная способность должна быть > 0 (получено %f)", a, b, e.Bandwidth)
			}
			back, ok := t.adj[b][a]
			if !ok || back != e {
				return fmt.Errorf("ребро (%d,%d): нарушена симметрия атрибутов", a, b)
			}
		}
	}
	return nil
}

// ShortestHops возвращает кратчайший по числу переходов путь от src к dst
// по рёбрам с пропускной способностью >= minBandwidth (BFS).
// Возвращает nil, если dst недостижим.
func (t *Topology) ShortestHops(src, dst int, minBandwidth float64) []int {
	if !t.HasNode(src) || !t.HasNode(dst) {
		return nil
	}
	if src == dst {
		return []int{src}
	}

	parent := map[int]int{src: src}
	queue := []int{src}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, nb := range t.Neighbors(cur) {
			if _, seen := parent[nb]; seen {
				continue
			}
			e, _ := t.Edge(cur, nb)
			if minBandwidth > 0 && e.Bandwidth < minBandwidth {
				continue
			}
			parent[nb] = cur
			if nb == dst {
				return restorePath(parent, src, dst)
			}
			queue = append(queue, nb)
		}
	}
	return nil
}

// restorePath восстанавливает путь из карты предков.
func restorePath(parent map[int]int, src, dst int) []int {
	rev := []int{dst}
	for cur := dst; cur != src; {
		cur = parent[cur]
		rev = append(rev, cur)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}
