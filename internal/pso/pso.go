package pso

import (
	"context"
	"time"

	"qosRoute/internal/cost"
	"qosRoute/internal/opt"
	"qosRoute/internal/topo"
)

// Solver — дискретная адаптация алгоритма роя частиц для поиска пути.
type Solver struct {
	Cfg  Config
	Seed int64
}

// New возвращает новый PSO-солвер с валидацией конфигурации.
// Используется в фабриках.
func New(cfg Config, seed int64) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg, Seed: seed}, nil
}

// particle описывает одну частицу роя.
type particle struct {
	// pos — текущий путь-кандидат
	pos []int
	// best — лучший путь частицы за всё время
	best []int
	// bestCost — стоимость пути best
	bestCost float64
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

	resample := func() []int {
		for a := 0; a < s.Cfg.WalkAttempts; a++ {
			if p := t.RandomWalk(rng, req.Source, req.Dest, req.Demand, 0); p != nil {
				return p
			}
		}
		return nil
	}

	// Инициализация роя случайными блужданиями
	ps := make([]particle, s.Cfg.Particles)
	var gBest []int
	gBestCost := cost.Inf
	gBestIter := 0

	for i := range ps {
		pos := resample()
		c := ev.Cost(pos)
		ps[i] = particle{
			pos:      pos,
			best:     append([]int(nil), pos...),
			bestCost: c,
		}
		if c < gBestCost {
			gBestCost = c
			gBest = append([]int(nil), pos...)
		}
	}

	trace := make([]float64, 0, s.Cfg.Iterations)

	for iter := 0; iter < s.Cfg.Iterations; iter++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			path, bd := opt.Finish(t, req, gBest, ev)
			return opt.Result{
				Path:        path,
				Cost:        bd.Weighted,
				Breakdown:   bd,
				Step:        gBestIter,
				Evaluations: ev.Evaluations(),
				Iterations:  iter,
				Duration:    time.Since(start),
				Trace:       trace,
				Seed:        seed,
				Meta:        map[string]any{"stopped": "context"},
			}, err
		}

		for i := range ps {
			p := &ps[i]

			// Потерянная частица восстанавливается локальной пересборкой
			if p.pos == nil {
				p.pos = resample()
				if p.pos == nil {
					continue
				}
			}

			next := p.pos

			// Инерция: случайная исследовательская правка
			if rng.Float64() < s.Cfg.W {
				switch rng.Intn(3) {
				case 0:
					next = swapInterior(t, next, req.Demand, rng)
				case 1:
					next = rerouteSegment(t, next, req.Demand, rng)
				default:
					next = shortcut(t, next, req.Demand, rng)
				}
			}

			// Когнитивная составляющая: тяга к личному лучшему
			if p.best != nil && rng.Float64() < s.Cfg.C1*rng.Float64() {
				next = spliceToward(next, p.best, rng)
			}
			// Социальная составляющая: тяга к глобально лучшему
			if gBest != nil && rng.Float64() < s.Cfg.C2*rng.Float64() {
				next = spliceToward(next, gBest, rng)
			}

			// Восстановление некорректного пути локальной пересборкой
			if !t.IsSimplePath(next) || next[0] != req.Source || next[len(next)-1] != req.Dest {
				next = resample()
				if next == nil {
					p.pos = nil
					continue
				}
			}
			p.pos = next

			c := ev.Cost(next)

			// Обновление личного лучшего решения
			if c < p.bestCost {
				p.bestCost = c
				p.best = append([]int(nil), next...)
			}
			// Обновление глобального лучшего решения
			if c < gBestCost {
				gBestCost = c
				gBest = append([]int(nil), next...)
				gBestIter = iter
			}
		}

		trace = append(trace, gBestCost)
		if iter%5 == 0 {
			opt.Notify(req.Progress, iter, gBestCost)
		}
	}

	path, bd := opt.Finish(t, req, gBest, ev)
	return opt.Result{
		Path:        path,
		Cost:        bd.Weighted,
		Breakdown:   bd,
		Step:        gBestIter,
		Evaluations: ev.Evaluations(),
		Iterations:  s.Cfg.Iterations,
		Duration:    time.Since(start),
		Trace:       trace,
		Seed:        seed,
		Meta: map[string]any{
			"particles": s.Cfg.Particles,
			"w":         s.Cfg.W,
			"c1":        s.Cfg.C1,
			"c2":        s.Cfg.C2,
		},
	}, nil
}
