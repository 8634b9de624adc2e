// Package cost вычисляет многокритериальную стоимость пути:
// взвешенную сумму нормированных составляющих задержки, надёжности
// и ресурсной стоимости (пропускной способности).
package cost

import (
	"fmt"
	"math"

	"qosRoute/internal/topo"
)

// Эталонные константы нормирования.
// Фиксированы, чтобы стоимости были сопоставимы между всеми стратегиями.
const (
	// DelayRef — потолок нормирования суммарной задержки.
	DelayRef = 200.0
	// RelPenaltyScale — множитель штрафа за ненадёжность.
	RelPenaltyScale = 10.0
	// ResourceUnit — числитель ресурсной стоимости одного ребра (1000/bw).
	ResourceUnit = 1000.0
	// ResourceRef — потолок нормирования суммарной ресурсной стоимости.
	ResourceRef = 200.0
)

// Inf — стоимость недопустимого или нереализуемого пути.
var Inf = math.Inf(1)

// Weights — веса трёх критериев. Каждый лежит в [0,1];
// нормировка суммы к единице не выполняется.
type Weights struct {
	Delay       float64
	Reliability float64
	Resource    float64
}

// Validate проверяет веса.
func (w Weights) Validate() error {
	if w.Delay < 0 || w.Delay > 1 {
		return fmt.Errorf("вес задержки должен лежать в [0,1] (получено %f)", w.Delay)
	}
	if w.Reliability < 0 || w.Reliability > 1 {
		return fmt.Errorf("вес надёжности должен лежать в [0,1] (получено %f)", w.Reliability)
	}
	if w.Resource < 0 || w.Resource > 1 {
		return fmt.Errorf("вес ресурса должен лежать в [0,1] (получено %f)", w.Resource)
	}
	return nil
}

// Breakdown — разложение стоимости пути по составляющим.
type Breakdown struct {
	// TotalDelay — суммарная задержка: рёбра плюс обработка в узлах.
	TotalDelay float64
	// TotalReliability — произведение надёжностей узлов и рёбер пути.
	TotalReliability float64

	// Нормированные составляющие, каждая ограничена [0,1].
	NormDelay       float64
	NormReliability float64
	NormResource    float64

	// Weighted — взвешенная сумма нормированных составляющих.
	// +Inf для недопустимого пути или при нарушении жёсткого
	// ограничения пропускной способности.
	Weighted float64

	// MinBandwidth — узкое место пути (минимум пропускной способности рёбер).
	MinBandwidth float64
}

// invalid — сигнальное разложение для недопустимого пути.
func invalid() Breakdown {
	return Breakdown{Weighted: Inf}
}

// Evaluate вычисляет разложение стоимости простого пути за один проход.
// Путь короче двух узлов, переход вне рёбер топологии или повтор узла
// дают сигнальное разложение с Weighted = +Inf.
func Evaluate(t *topo.Topology, path []int, w Weights) Breakdown {
	if len(path) < 2 {
		return invalid()
	}

	totalDelay := 0.0
	totalRel := 1.0
	resource := 0.0
	minBw := math.Inf(1)

	seen := make(map[int]bool, len(path))
	for i, id := range path {
		if seen[id] {
			return invalid()
		}
		seen[id] = true

		n, ok := t.Node(id)
		if !ok {
			return invalid()
		}
		totalDelay += n.ProcessingDelay
		totalRel *= n.Reliability

		if i == 0 {
			continue
		}
		e, ok := t.Edge(path[i-1], id)
		if !ok {
			return invalid()
		}
		totalDelay += e.Delay
		totalRel *= e.Reliability
		resource += ResourceUnit / e.Bandwidth
		if e.Bandwidth < minBw {
			minBw = e.Bandwidth
		}
	}

	b := Breakdown{
		TotalDelay:       totalDelay,
		TotalReliability: totalRel,
		NormDelay:        clamp01(totalDelay / DelayRef),
		NormReliability:  clamp01((1 - totalRel) * RelPenaltyScale),
		NormResource:     clamp01(resource / ResourceRef),
		MinBandwidth:     minBw,
	}
	b.Weighted = w.Delay*b.NormDelay + w.Reliability*b.NormReliability + w.Resource*b.NormResource
	return b
}

// EvaluateWithDemand — как Evaluate, но при узком месте ниже demand
// взвешенная стоимость равна +Inf (жёсткое ограничение, не штраф).
func EvaluateWithDemand(t *topo.Topology, path []int, w Weights, demand float64) Breakdown {
	b := Evaluate(t, path, w)
	if demand > 0 && b.MinBandwidth < demand {
		b.Weighted = Inf
	}
	return b
}

// HopCost — стоимость одного перехода from→to: нормированная задержка
// (ребро плюс обработка в целевом узле), логарифмический штраф
// за ненадёжность ребра и целевого узла, ресурсная составляющая.
// Единая формула для эвристики муравьиного алгоритма и наград
// обоих методов обучения с подкреплением.
func HopCost(t *topo.Topology, from, to int, w Weights) float64 {
	e, ok := t.Edge(from, to)
	if !ok {
		return Inf
	}
	n, ok := t.Node(to)
	if !ok {
		return Inf
	}
	return w.Delay*(e.Delay+n.ProcessingDelay)/DelayRef +
		w.Reliability*(-math.Log(e.Reliability*n.Reliability)) +
		w.Resource*(ResourceUnit/e.Bandwidth)/ResourceRef
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
