package cost

import (
	"fmt"
	"strconv"
	"strings"

	"qosRoute/internal/topo"
)

// Evaluator — мемоизирующий оценщик стоимости для одного запуска поиска.
// Топология, веса и требование к пропускной способности фиксируются при
// создании; стратегии многократно оценивают одни и те же пути-кандидаты
// в пределах поколения/итерации, поэтому разложения кэшируются по пути.
// Не потокобезопасен: каждый запуск владеет собственным экземпляром.
type Evaluator struct {
	t      *topo.Topology
	w      Weights
	demand float64

	memo  map[string]Breakdown
	evals int
}

// NewEvaluator возвращает оценщик с валидацией входных данных.
func NewEvaluator(t *topo.Topology, w Weights, demand float64) (*Evaluator, error) {
	if t == nil {
		return nil, fmt.Errorf("топология не инициализирована (nil)")
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if demand < 0 {
		return nil, fmt.Errorf("требование к пропускной способности должно быть >= 0 (получено %f)", demand)
	}
	return &Evaluator{
		t:      t,
		w:      w,
		demand: demand,
		memo:   make(map[string]Breakdown),
	}, nil
}

// Evaluate возвращает разложение стоимости пути с учётом жёсткого
// ограничения пропускной способности.
func (e *Evaluator) Evaluate(path []int) Breakdown {
	key := pathKey(path)
	if b, ok := e.memo[key]; ok {
		return b
	}
	b := EvaluateWithDemand(e.t, path, e.w, e.demand)
	e.memo[key] = b
	e.evals++
	return b
}

// Cost возвращает взвешенную стоимость пути.
func (e *Evaluator) Cost(path []int) float64 {
	return e.Evaluate(path).Weighted
}

// Evaluations возвращает количество фактических (не кэшированных) оценок.
func (e *Evaluator) Evaluations() int { return e.evals }

// pathKey формирует ключ кэша из последовательности узлов.
func pathKey(path []int) string {
	var sb strings.Builder
	sb.Grow(len(path) * 4)
	for i, id := range path {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(id))
	}
	return sb.String()
}
