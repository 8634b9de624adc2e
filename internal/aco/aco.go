package aco

import (
	"context"
	"math"
	"sort"
	"time"

	"qosRoute/internal/cost"
	"qosRoute/internal/opt"
	"qosRoute/internal/topo"
)

// Порог сходимости: поиск останавливается, когда лучшие стоимости
// трёх последних итераций отличаются меньше, чем на это значение.
const convergenceEps = 1e-9

// Solver — реализация муравьиного алгоритма поиска пути.
type Solver struct {
	Cfg  Config
	Seed int64
}

// New возвращает новый ACO-солвер с валидацией конфигурации.
// Используется в фабриках.
func New(cfg Config, seed int64) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg, Seed: seed}, nil
}

// Solve — реализация эвристики.
func (s *Solver) Solve(ctx context.Context, t *topo.Topology, req opt.Request) (opt.Result, error) {
	start := time.Now()

	// Валидация входных данных
	if err := req.Validate(t); err != nil {
		return opt.Result{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return opt.Result{}, err
	}

	rng, seed := opt.NewRun(s.Seed)

	ev, err := cost.NewEvaluator(t, req.Weights, req.Demand)
	if err != nil {
		return opt.Result{}, err
	}

	// Таблица феромонов (переинициализируется при каждом запуске)
	ph := newPheromone(s.Cfg.Tau0, s.Cfg.TauMin, s.Cfg.TauMax)

	maxIter := s.Cfg.Iterations
	maxSteps := 4 * t.NodeCount()

	var bestPath []int
	bestCost := cost.Inf
	bestIter := 0
	stagnant := 0

	trace := make([]float64, 0, maxIter)
	// Лучшие стоимости последних итераций для критерия сходимости
	var window []float64

	iterDone := maxIter
	stopped := ""

	// Буферы построения пути
	walker := newWalker(t, req, maxSteps)

	for iter := 0; iter < maxIter; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			path, bd := opt.Finish(t, req, bestPath, ev)
			return opt.Result{
				Path:        path,
				Cost:        bd.Weighted,
				Breakdown:   bd,
				Step:        bestIter,
				Evaluations: ev.Evaluations(),
				Iterations:  iter,
				Duration:    time.Since(start),
				Trace:       trace,
				Seed:        seed,
				Meta:        map[string]any{"stopped": "context"},
			}, err
		}

		// Отжиг весов: влияние феромона растёт,
		// влияние эвристики убывает с прогрессом поиска
		f := float64(iter) / float64(maxIter)
		alpha := s.Cfg.Alpha0 + (s.Cfg.Alpha1-s.Cfg.Alpha0)*f
		beta := s.Cfg.Beta0 - (s.Cfg.Beta0-s.Cfg.Beta1)*f

		// Муравьи пошли
		var paths [][]int
		var costs []float64
		used := make(map[[2]int]bool)

		iterBest := cost.Inf
		improved := false

		for a := 0; a < s.Cfg.Ants; a++ {
			p := walker.construct(ph, alpha, beta, s.Cfg.Epsilon, rng)
			if p == nil {
				continue
			}
			for i := 0; i < len(p)-1; i++ {
				used[edgeKey(p[i], p[i+1])] = true
			}

			c := ev.Cost(p)
			paths = append(paths, p)
			costs = append(costs, c)

			if c < iterBest {
				iterBest = c
			}
			if c < bestCost {
				bestCost = c
				bestPath = append([]int(nil), p...)
				bestIter = iter
				improved = true
			}
		}

		if improved {
			stagnant = 0
		} else {
			stagnant++
		}

		// Испарение: только на переходах, использованных в этой итерации.
		// При затяжном застое испарение усиливается.
		rho := s.Cfg.Rho
		if stagnant > s.Cfg.StagnationLimit/2 {
			rho = s.Cfg.RhoStagnant
		}
		ph.evaporate(used, rho)

		// Ранговое усиление: феромон получают лучшие пути итерации
		order := make([]int, len(paths))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(i, j int) bool {
			return costs[order[i]] < costs[order[j]]
		})
		topN := s.Cfg.TopRank
		if topN > len(order) {
			topN = len(order)
		}
		for rank := 0; rank < topN; rank++ {
			c := costs[order[rank]]
			if math.IsInf(c, 1) {
				break
			}
			ph.depositPath(paths[order[rank]], s.Cfg.Q*float64(s.Cfg.TopRank-rank)/depositCost(c))
		}

		// Утроенное усиление вдоль глобально лучшего пути
		if bestPath != nil && !math.IsInf(bestCost, 1) {
			ph.depositPath(bestPath, 3.0*s.Cfg.Q/depositCost(bestCost))
		}

		trace = append(trace, bestCost)
		if iter%5 == 0 {
			opt.Notify(req.Progress, iter, bestCost)
		}

		// Критерии ранней остановки
		window = append(window, iterBest)
		if len(window) > 3 {
			window = window[1:]
		}
		if converged(window) {
			iterDone = iter + 1
			stopped = "converged"
			break
		}
		if stagnant >= s.Cfg.StagnationLimit {
			iterDone = iter + 1
			stopped = "stagnation"
			break
		}
	}

	path, bd := opt.Finish(t, req, bestPath, ev)
	meta := map[string]any{
		"ants":    s.Cfg.Ants,
		"rho":     s.Cfg.Rho,
		"q":       s.Cfg.Q,
		"tau0":    s.Cfg.Tau0,
		"tau_min": s.Cfg.TauMin,
		"tau_max": s.Cfg.TauMax,
	}
	if stopped != "" {
		meta["stopped"] = stopped
	}
	return opt.Result{
		Path:        path,
		Cost:        bd.Weighted,
		Breakdown:   bd,
		Step:        bestIter,
		Evaluations: ev.Evaluations(),
		Iterations:  iterDone,
		Duration:    time.Since(start),
		Trace:       trace,
		Seed:        seed,
		Meta:        meta,
	}, nil
}

// depositCost ограничивает знаменатель усиления снизу,
// чтобы нулевая стоимость пути не давала бесконечный феромон.
func depositCost(c float64) float64 {
	if c < 1e-9 {
		return 1e-9
	}
	return c
}

// converged проверяет, что лучшие стоимости трёх последних итераций
// конечны и отличаются меньше порога.
func converged(window []float64) bool {
	if len(window) < 3 {
		return false
	}
	lo, hi := window[0], window[0]
	for _, v := range window {
		if math.IsInf(v, 1) {
			return false
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return hi-lo < convergenceEps
}
