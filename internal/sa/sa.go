package sa

import (
	"context"
	"math"
	"math/rand"
	"time"

	"qosRoute/internal/cost"
	"qosRoute/internal/opt"
	"qosRoute/internal/topo"
)

// Solver — реализация алгоритма имитации отжига для поиска пути.
type Solver struct {
	Cfg  Config
	Seed int64
}

// New возвращает новый SA-солвер с валидацией конфигурации.
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

	// Начальное решение: случайное блуждание,
	// при неудаче — резервный кратчайший путь
	var curr []int
	for a := 0; a < s.Cfg.WalkAttempts; a++ {
		if p := t.RandomWalk(rng, req.Source, req.Dest, req.Demand, 0); p != nil {
			curr = p
			break
		}
	}
	if curr == nil {
		curr = opt.Fallback(t, req.Source, req.Dest, req.Demand)
	}
	currCost := ev.Cost(curr)

	best := append([]int(nil), curr...)
	bestCost := currCost
	bestStep := 0

	var trace []float64
	T := s.Cfg.InitialTemp
	step := 0
	iterations := 0

	for T > s.Cfg.FinalTemp {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			path, bd := opt.Finish(t, req, best, ev)
			return opt.Result{
				Path:        path,
				Cost:        bd.Weighted,
				Breakdown:   bd,
				Step:        bestStep,
				Evaluations: ev.Evaluations(),
				Iterations:  iterations,
				Duration:    time.Since(start),
				Trace:       trace,
				Seed:        seed,
				Meta:        map[string]any{"stopped": "context", "T": T},
			}, err
		}

		for k := 0; k < s.Cfg.StepsPerTemp; k++ {
			cand := s.neighbor(t, curr, req.Demand, rng)
			candCost := ev.Cost(cand)
			step++

			delta := candCost - currCost
			accept := false
			if delta <= 0 {
				// Улучшающее решение принимаем всегда
				accept = true
			} else if !math.IsInf(delta, 1) {
				// Критерий Метрополиса:
				// допускает принятие ухудшающих решений
				if rng.Float64() < math.Exp(-delta/T) {
					accept = true
				}
			}

			if accept {
				curr = cand
				currCost = candCost

				// Обновление глобально лучшего решения
				if currCost < bestCost {
					bestCost = currCost
					best = append([]int(nil), curr...)
					bestStep = step
				}
			}
		}

		// Охлаждение температуры
		T *= s.Cfg.Cooling
		iterations++

		trace = append(trace, bestCost)
		if iterations%5 == 0 {
			opt.Notify(req.Progress, step, bestCost)
		}
	}

	path, bd := opt.Finish(t, req, best, ev)
	return opt.Result{
		Path:        path,
		Cost:        bd.Weighted,
		Breakdown:   bd,
		Step:        bestStep,
		Evaluations: ev.Evaluations(),
		Iterations:  iterations,
		Duration:    time.Since(start),
		Trace:       trace,
		Seed:        seed,
		Meta: map[string]any{
			"initial_temp":   s.Cfg.InitialTemp,
			"final_temp":     s.Cfg.FinalTemp,
			"cooling":        s.Cfg.Cooling,
			"steps_per_temp": s.Cfg.StepsPerTemp,
		},
	}, nil
}

// neighbor формирует соседнее решение: замена внутреннего узла общим
// соседом либо перестройка короткого участка случайным блужданием.
func (s *Solver) neighbor(t *topo.Topology, p []int, demand float64, rng *rand.Rand) []int {
	if len(p) < 3 || rng.Intn(2) == 1 {
		return s.reroute(t, p, demand, rng)
	}

	i := 1 + rng.Intn(len(p)-2)
	onPath := make(map[int]bool, len(p))
	for _, id := range p {
		onPath[id] = true
	}
	cand := t.CommonNeighbors(p[i-1], p[i+1], demand, onPath)
	if len(cand) == 0 {
		return s.reroute(t, p, demand, rng)
	}
	out := append([]int(nil), p...)
	out[i] = cand[rng.Intn(len(cand))]
	return out
}

// reroute перестраивает случайный короткий участок пути.
// При неудаче возвращает путь без изменений.
func (s *Solver) reroute(t *topo.Topology, p []int, demand float64, rng *rand.Rand) []int {
	if len(p) < 2 {
		return p
	}
	i := rng.Intn(len(p) - 1)
	spanMax := len(p) - 1 - i
	if spanMax > s.Cfg.SegmentMax {
		spanMax = s.Cfg.SegmentMax
	}
	j := i + 1 + rng.Intn(spanMax)

	avoid := make(map[int]bool, len(p))
	for k, id := range p {
		if k > i && k < j {
			continue
		}
		avoid[id] = true
	}
	delete(avoid, p[i])
	delete(avoid, p[j])

	seg := t.ConstrainedWalk(rng, p[i], p[j], demand, avoid, 3*(j-i)+4)
	if seg == nil {
		return p
	}

	out := make([]int, 0, i+len(seg)+len(p)-j-1)
	out = append(out, p[:i]...)
	out = append(out, seg...)
	out = append(out, p[j+1:]...)
	return out
}
