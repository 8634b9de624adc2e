package bench

import (
	"math/rand"

	"qosRoute/internal/topo"
)

// Scenario — один сценарий запуска: пара узлов и требование
// к пропускной способности.
type Scenario struct {
	Source int
	Dest   int
	Demand float64
}

// RandomScenarios генерирует n сценариев со случайными различными парами
// узлов; требование выбирается из demands (пустой срез — без ограничения).
func RandomScenarios(t *topo.Topology, n int, demands []float64, rng *rand.Rand) []Scenario {
	ids := t.NodeIDs()
	out := make([]Scenario, 0, n)
	for len(out) < n {
		src := ids[rng.Intn(len(ids))]
		dst := ids[rng.Intn(len(ids))]
		if src == dst {
			continue
		}
		sc := Scenario{Source: src, Dest: dst}
		if len(demands) > 0 {
			sc.Demand = demands[rng.Intn(len(demands))]
		}
		out = append(out, sc)
	}
	return out
}
