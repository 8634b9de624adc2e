package ga

import (
	"context"
	"sort"
	"time"

	"qosRoute/internal/cost"
	"qosRoute/internal/opt"
	"qosRoute/internal/topo"
)

// Solver — реализация генетического алгоритма поиска пути.
type Solver struct {
	Cfg Config
	// Seed — сид генератора случайных чисел; 0 означает сидирование
	// от часов и идентификатора процесса в начале каждого запуска.
	Seed int64
}

// New возвращает новый GA-солвер с валидацией конфигурации.
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

	// Проверка корректности входных данных и конфигурации
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

	popSize := s.Cfg.Population

	// Инициализация начальной популяции случайными блужданиями.
	// Неудачная особь (блуждание не достигло цели) остаётся nil
	// и получает бесконечную стоимость.
	popA := make([][]int, popSize)
	popB := make([][]int, popSize)
	costsA := make([]float64, popSize)
	costsB := make([]float64, popSize)

	for i := 0; i < popSize; i++ {
		for a := 0; a < s.Cfg.WalkAttempts; a++ {
			if p := t.RandomWalk(rng, req.Source, req.Dest, req.Demand, 0); p != nil {
				popA[i] = p
				break
			}
		}
		costsA[i] = ev.Cost(popA[i])
	}

	// Поиск лучшего решения в начальной популяции
	var bestPath []int
	bestCost := cost.Inf
	bestGen := 0
	for i := 0; i < popSize; i++ {
		if costsA[i] < bestCost {
			bestCost = costsA[i]
			bestPath = clonePath(popA[i])
		}
	}

	// Индексы для сортировки популяции по приспособленности
	idxs := make([]int, popSize)
	for i := range idxs {
		idxs[i] = i
	}

	trace := make([]float64, 0, s.Cfg.Generations)

	for gen := 0; gen < s.Cfg.Generations; gen++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			return s.finish(t, req, ev, bestPath, bestGen, gen, trace, seed, start,
				map[string]any{"stopped": "context"}), err
		}

		// Сортировка индексов по возрастанию стоимости
		sort.Slice(idxs, func(i, j int) bool {
			return costsA[idxs[i]] < costsA[idxs[j]]
		})

		write := 0

		// Элитизм (переносим лучших особей без изменений)
		for e := 0; e < s.Cfg.Elite; e++ {
			src := idxs[e]
			popB[write] = clonePath(popA[src])
			costsB[write] = costsA[src]
			write++
		}

		// Генерация остальных особей нового поколения
		for write < popSize {
			// Турнирный отбор
			p1 := tournamentSelect(costsA, s.Cfg.TournamentSize, rng)
			p2 := tournamentSelect(costsA, s.Cfg.TournamentSize, rng)
			if popSize > 1 {
				for p2 == p1 {
					p2 = tournamentSelect(costsA, s.Cfg.TournamentSize, rng)
				}
			}

			var child1, child2 []int

			// Кроссовер в общем внутреннем узле
			if popA[p1] != nil && popA[p2] != nil && rng.Float64() < s.Cfg.CrossoverRate {
				child1, child2 = crossover(popA[p1], popA[p2], rng)
			} else {
				child1 = clonePath(popA[p1])
				child2 = clonePath(popA[p2])
			}

			// Мутация: замена внутреннего узла общим соседом
			if child1 != nil && rng.Float64() < s.Cfg.MutationRate {
				mutate(t, child1, req.Demand, rng)
			}
			if child2 != nil && rng.Float64() < s.Cfg.MutationRate {
				mutate(t, child2, req.Demand, rng)
			}

			// Оценка первого потомка
			c1 := ev.Cost(child1)
			popB[write] = child1
			costsB[write] = c1
			if c1 < bestCost {
				bestCost = c1
				bestPath = clonePath(child1)
				bestGen = gen
			}
			write++

			// Оценка второго потомка
			if write < popSize {
				c2 := ev.Cost(child2)
				popB[write] = child2
				costsB[write] = c2
				if c2 < bestCost {
					bestCost = c2
					bestPath = clonePath(child2)
					bestGen = gen
				}
				write++
			}
		}

		// Смена поколений
		popA, popB = popB, popA
		costsA, costsB = costsB, costsA

		trace = append(trace, bestCost)
		if gen%5 == 0 {
			opt.Notify(req.Progress, gen, bestCost)
		}
	}

	return s.finish(t, req, ev, bestPath, bestGen, s.Cfg.Generations, trace, seed, start,
		map[string]any{
			"population":  s.Cfg.Population,
			"generations": s.Cfg.Generations,
			"elite":       s.Cfg.Elite,
		}), nil
}

func (s *Solver) finish(
	t *topo.Topology,
	req opt.Request,
	ev *cost.Evaluator,
	bestPath []int,
	bestGen, iterations int,
	trace []float64,
	seed int64,
	start time.Time,
	meta map[string]any,
) opt.Result {
	path, bd := opt.Finish(t, req, bestPath, ev)
	return opt.Result{
		Path:        path,
		Cost:        bd.Weighted,
		Breakdown:   bd,
		Step:        bestGen,
		Evaluations: ev.Evaluations(),
		Iterations:  iterations,
		Duration:    time.Since(start),
		Trace:       trace,
		Seed:        seed,
		Meta:        meta,
	}
}
