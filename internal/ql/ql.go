package ql

import (
	"context"
	"math"
	"math/rand"
	"time"

	"qosRoute/internal/cost"
	"qosRoute/internal/opt"
	"qosRoute/internal/topo"
)

// Solver — табличное Q-обучение (off-policy TD) для поиска пути.
type Solver struct {
	Cfg  Config
	Seed int64
}

// New возвращает новый QL-солвер с валидацией конфигурации.
// Используется в фабриках.
func New(cfg Config, seed int64) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Solver{Cfg: cfg, Seed: seed}, nil
}

// qtable — разреженная таблица ценностей действий по парам (узел, сосед).
// Отсутствующая запись равна нулю.
type qtable map[[2]int]float64

func (q qtable) get(s, a int) float64 { return q[[2]int{s, a}] }

func (q qtable) add(s, a int, delta float64) { q[[2]int{s, a}] += delta }

// actions возвращает допустимые действия: непосещённые соседи узла
// с достаточной пропускной способностью ребра.
func actions(t *topo.Topology, cur int, demand float64, visited map[int]bool) []int {
	var out []int
	for _, nb := range t.Neighbors(cur) {
		if visited[nb] {
			continue
		}
		e, _ := t.Edge(cur, nb)
		if demand > 0 && e.Bandwidth < demand {
			continue
		}
		out = append(out, nb)
	}
	return out
}

// greedy возвращает действие с максимальной ценностью.
// Соседи отсортированы, поэтому при равенстве выбор детерминирован.
func greedy(q qtable, s int, acts []int) int {
	best := acts[0]
	bestV := q.get(s, best)
	for _, a := range acts[1:] {
		if v := q.get(s, a); v > bestV {
			best = a
			bestV = v
		}
	}
	return best
}

// epsilonGreedy выбирает случайное действие с вероятностью eps,
// иначе — жадное.
func epsilonGreedy(q qtable, s int, acts []int, eps float64, rng *rand.Rand) int {
	if rng.Float64() < eps {
		return acts[rng.Intn(len(acts))]
	}
	return greedy(q, s, acts)
}

// maxQ возвращает максимум ценности по допустимым действиям состояния;
// 0, если действий нет (терминальное состояние).
func maxQ(q qtable, s int, acts []int) float64 {
	if len(acts) == 0 {
		return 0
	}
	best := q.get(s, acts[0])
	for _, a := range acts[1:] {
		if v := q.get(s, a); v > best {
			best = v
		}
	}
	return best
}

// terminalReward — награда за достижение цели: RewardScale / стоимость пути.
func terminalReward(scale, pathCost float64) float64 {
	if math.IsInf(pathCost, 1) {
		return 0
	}
	if pathCost < 1e-9 {
		pathCost = 1e-9
	}
	return scale / pathCost
}

// Solve — обучение и жадное извлечение политики.
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

	// Q-таблица переинициализируется при каждом запуске:
	// повторные вызовы на одном экземпляре независимы
	q := make(qtable)

	maxSteps := 4 * t.NodeCount()
	eps := s.Cfg.Epsilon

	var bestPath []int
	bestCost := cost.Inf
	bestEp := 0

	trace := make([]float64, 0, s.Cfg.Episodes)
	episodes := s.Cfg.Episodes

	for ep := 0; ep < s.Cfg.Episodes; ep++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			path, bd := opt.Finish(t, req, bestPath, ev)
			return opt.Result{
				Path:        path,
				Cost:        bd.Weighted,
				Breakdown:   bd,
				Step:        bestEp,
				Evaluations: ev.Evaluations(),
				Iterations:  ep,
				Duration:    time.Since(start),
				Trace:       trace,
				Seed:        seed,
				Meta:        map[string]any{"stopped": "context"},
			}, err
		}

		path := []int{req.Source}
		visited := map[int]bool{req.Source: true}
		cur := req.Source

		for step := 0; step < maxSteps; step++ {
			acts := actions(t, cur, req.Demand, visited)
			if len(acts) == 0 {
				break // тупик: эпизод обрывается
			}
			a := epsilonGreedy(q, cur, acts, eps, rng)

			visited[a] = true
			path = append(path, a)

			if a == req.Dest {
				// Терминальный переход: награда от стоимости всего пути,
				// ценность целевого состояния равна нулю
				c := ev.Cost(path)
				r := terminalReward(s.Cfg.RewardScale, c)
				q.add(cur, a, s.Cfg.Alpha*(r-q.get(cur, a)))

				if c < bestCost {
					bestCost = c
					bestPath = append([]int(nil), path...)
					bestEp = ep
				}
				break
			}

			// Off-policy обновление: максимум ценности следующего состояния
			r := -cost.HopCost(t, cur, a, req.Weights)
			nextActs := actions(t, a, req.Demand, visited)
			q.add(cur, a, s.Cfg.Alpha*(r+s.Cfg.Gamma*maxQ(q, a, nextActs)-q.get(cur, a)))

			cur = a
		}

		// Геометрическое убывание epsilon до нижней границы
		eps *= s.Cfg.EpsilonDecay
		if eps < s.Cfg.EpsilonMin {
			eps = s.Cfg.EpsilonMin
		}

		trace = append(trace, bestCost)
		if ep%20 == 0 {
			opt.Notify(req.Progress, ep, bestCost)
		}
	}

	// Жадное извлечение политики; результат — лучший из извлечённого
	// пути и лучшего пути обучения, иначе резервная политика
	if p := extract(t, q, req, maxSteps); p != nil {
		if c := ev.Cost(p); c < bestCost {
			bestCost = c
			bestPath = p
			bestEp = episodes
		}
	}

	path, bd := opt.Finish(t, req, bestPath, ev)
	return opt.Result{
		Path:        path,
		Cost:        bd.Weighted,
		Breakdown:   bd,
		Step:        bestEp,
		Evaluations: ev.Evaluations(),
		Iterations:  episodes,
		Duration:    time.Since(start),
		Trace:       trace,
		Seed:        seed,
		Meta: map[string]any{
			"episodes": s.Cfg.Episodes,
			"alpha":    s.Cfg.Alpha,
			"gamma":    s.Cfg.Gamma,
		},
	}, nil
}

// extract выполняет жадный проход по политике без повторных посещений.
// Возвращает nil, если проход не достиг цели за отведённые шаги.
func extract(t *topo.Topology, q qtable, req opt.Request, maxSteps int) []int {
	path := []int{req.Source}
	visited := map[int]bool{req.Source: true}
	cur := req.Source

	for step := 0; step < maxSteps; step++ {
		acts := actions(t, cur, req.Demand, visited)
		if len(acts) == 0 {
			return nil
		}
		a := greedy(q, cur, acts)
		visited[a] = true
		path = append(path, a)
		if a == req.Dest {
			return path
		}
		cur = a
	}
	return nil
}
