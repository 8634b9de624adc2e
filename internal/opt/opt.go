// Package opt определяет единый контракт оптимизатора, общий для всех
// шести стратегий поиска, а также политику сидирования и резервный путь.
package opt

import (
	"context"
	"fmt"
	"time"

	"qosRoute/internal/cost"
	"qosRoute/internal/topo"
)

// ProgressFunc — обратный вызов прогресса поиска.
// Вызывается периодически (не обязательно на каждом шаге).
type ProgressFunc func(step int, best float64)

// Request — параметры одного запуска оптимизации.
type Request struct {
	Source int
	Dest   int

	Weights cost.Weights

	// Demand — жёсткое требование к пропускной способности; 0 — без ограничения.
	Demand float64

	// Progress — необязательный обратный вызов прогресса.
	// Его ошибки подавляются и никогда не прерывают поиск.
	Progress ProgressFunc
}

// Validate проверяет параметры запроса относительно топологии.
func (r Request) Validate(t *topo.Topology) error {
	if t == nil {
		return fmt.Errorf("топология не инициализирована (nil)")
	}
	if !t.HasNode(r.Source) {
		return fmt.Errorf("исходный узел %d отсутствует в топологии", r.Source)
	}
	if !t.HasNode(r.Dest) {
		return fmt.Errorf("целевой узел %d отсутствует в топологии", r.Dest)
	}
	if r.Source == r.Dest {
		return fmt.Errorf("исходный и целевой узлы должны различаться (получено %d)", r.Source)
	}
	if err := r.Weights.Validate(); err != nil {
		return err
	}
	if r.Demand < 0 {
		return fmt.Errorf("требование к пропускной способности должно быть >= 0 (получено %f)", r.Demand)
	}
	return nil
}

// Optimizer — контракт стратегии поиска.
type Optimizer interface {
	Solve(ctx context.Context, t *topo.Topology, req Request) (Result, error)
}

// Result — итог одного запуска оптимизации. Неизменяем после создания.
type Result struct {
	// Path — простой путь с лучшей найденной стоимостью либо резервный путь.
	Path []int
	// Cost — фактическая взвешенная стоимость пути
	// (+Inf, если допустимого пути нет).
	Cost float64
	// Breakdown — разложение стоимости найденного пути.
	Breakdown cost.Breakdown

	// Step — шаг (итерация/поколение/эпизод), на котором найден лучший путь.
	Step int

	Evaluations int
	Iterations  int
	Duration    time.Duration

	// Trace — лучшая стоимость по итерациям (след сходимости).
	Trace []float64

	// Seed — фактически использованный сид генератора случайных чисел.
	Seed int64

	Meta map[string]any
}
