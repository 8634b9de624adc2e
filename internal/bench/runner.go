package bench

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"qosRoute/internal/cost"
	"qosRoute/internal/opt"
	"qosRoute/internal/topo"
)

// Algorithm — фабрика стратегии для сравнения.
// Фабрика получает сид запуска (0 — несидированный запуск).
type Algorithm struct {
	Name    string
	Factory func(seed int64) opt.Optimizer
}

// Record — агрегированный итог прогона одного алгоритма
// по набору сценариев.
type Record struct {
	Algo      string
	Nodes     int
	Edges     int
	Scenarios int
	Runs      int

	// SuccessRate — доля запусков с конечной стоимостью.
	SuccessRate float64

	CostBest float64
	CostMean float64
	CostStd  float64

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64
}

// Runner — политика прогона: число повторов на сценарий, базовый сид
// (0 — все запуски несидированы), таймаут одного запуска и число
// параллельных воркеров.
type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 — без ограничения
	Workers       int           // <=1 — последовательный прогон
}

type runOutcome struct {
	cost   float64
	timeMs float64
	err    error
}

// RunCase прогоняет алгоритм по всем сценариям. Топология во время
// прогона неизменна, поэтому запуски независимы и могут выполняться
// параллельно; агрегация происходит после завершения всех запусков.
func (r Runner) RunCase(ctx context.Context, t *topo.Topology, scenarios []Scenario, weights cost.Weights, algo Algorithm) (Record, error) {
	total := len(scenarios) * r.Runs
	outcomes := make([]runOutcome, total)

	runOne := func(idx int) {
		sc := scenarios[idx/r.Runs]
		runIdx := idx % r.Runs

		seed := int64(0)
		if r.BaseSeed != 0 {
			seed = r.BaseSeed + int64(idx)
		}

		op := algo.Factory(seed)

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		defer cancel()

		start := time.Now()
		res, err := op.Solve(runCtx, t, opt.Request{
			Source:  sc.Source,
			Dest:    sc.Dest,
			Weights: weights,
			Demand:  sc.Demand,
		})
		dur := time.Since(start)

		if err != nil {
			outcomes[idx] = runOutcome{err: fmt.Errorf("сценарий %d, запуск %d: %w", idx/r.Runs, runIdx, err)}
			return
		}
		if err := validate(t, sc, res); err != nil {
			outcomes[idx] = runOutcome{err: fmt.Errorf("сценарий %d, запуск %d: %w", idx/r.Runs, runIdx, err)}
			return
		}

		outcomes[idx] = runOutcome{
			cost:   res.Cost,
			timeMs: float64(dur.Microseconds()) / 1000.0,
		}
	}

	if r.Workers > 1 {
		pool, err := ants.NewPool(r.Workers)
		if err != nil {
			return Record{}, err
		}
		defer pool.Release()

		var wg sync.WaitGroup
		for i := 0; i < total; i++ {
			i := i
			wg.Add(1)
			if err := pool.Submit(func() {
				defer wg.Done()
				runOne(i)
			}); err != nil {
				wg.Done()
				return Record{}, err
			}
		}
		wg.Wait()
	} else {
		for i := 0; i < total; i++ {
			runOne(i)
		}
	}

	// Агрегация
	var costs, times []float64
	success := 0
	for _, o := range outcomes {
		if o.err != nil {
			return Record{}, o.err
		}
		times = append(times, o.timeMs)
		if !math.IsInf(o.cost, 1) {
			success++
			costs = append(costs, o.cost)
		}
	}

	costStats := Calc(costs)
	timeStats := Calc(times)

	return Record{
		Algo:      algo.Name,
		Nodes:     t.NodeCount(),
		Edges:     t.EdgeCount(),
		Scenarios: len(scenarios),
		Runs:      r.Runs,

		SuccessRate: float64(success) / float64(total),

		CostBest: costStats.Best,
		CostMean: costStats.Mean,
		CostStd:  costStats.Std,

		TimeBestMs: timeStats.Best,
		TimeMeanMs: timeStats.Mean,
		TimeStdMs:  timeStats.Std,
	}, nil
}

// validate проверяет выданный результат: путь должен быть простым,
// а при конечной стоимости — проходить по пропускной способности
// по тому же правилу узкого места, что и модель стоимости.
func validate(t *topo.Topology, sc Scenario, res opt.Result) error {
	if len(res.Path) < 2 {
		return fmt.Errorf("путь короче двух узлов (%v)", res.Path)
	}
	if res.Path[0] != sc.Source || res.Path[len(res.Path)-1] != sc.Dest {
		return fmt.Errorf("путь не соединяет запрошенную пару узлов (%v)", res.Path)
	}
	if math.IsInf(res.Cost, 1) {
		return nil
	}
	if !t.IsSimplePath(res.Path) {
		return fmt.Errorf("путь не является простым (%v)", res.Path)
	}
	if sc.Demand > 0 {
		b := cost.Evaluate(t, res.Path, cost.Weights{})
		if b.MinBandwidth < sc.Demand {
			return fmt.Errorf(
				"узкое место пути %f ниже требования %f",
				b.MinBandwidth, sc.Demand,
			)
		}
	}
	return nil
}
