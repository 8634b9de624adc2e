package main

import (
	"context"
	"flag"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"qosRoute/internal/aco"
	"qosRoute/internal/bench"
	"qosRoute/internal/cost"
	"qosRoute/internal/ga"
	"qosRoute/internal/opt"
	"qosRoute/internal/pso"
	"qosRoute/internal/ql"
	"qosRoute/internal/sa"
	"qosRoute/internal/sarsa"
	"qosRoute/internal/topo"
)

// Фабрики

func newGAFactory(cfg ga.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := ga.New(cfg, seed)
		return solver
	}
}

func newACOFactory(cfg aco.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := aco.New(cfg, seed)
		return solver
	}
}

func newPSOFactory(cfg pso.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := pso.New(cfg, seed)
		return solver
	}
}

func newSAFactory(cfg sa.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := sa.New(cfg, seed)
		return solver
	}
}

func newQLFactory(cfg ql.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := ql.New(cfg, seed)
		return solver
	}
}

func newSARSAFactory(cfg sarsa.Config) func(seed int64) opt.Optimizer {
	return func(seed int64) opt.Optimizer {
		solver, _ := sarsa.New(cfg, seed)
		return solver
	}
}

func main() {
	// CLI флаги для настройки топологии, сценариев и политики запуска
	var (
		out     = flag.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		cfgPath = flag.String("config", "", "путь к TOML-файлу с конфигурациями стратегий (пусто — значения по умолчанию)")
		algos   = flag.String("algos", "GA,ACO,PSO,SA,QL,SARSA", "список алгоритмов: GA, ACO, PSO, SA, QL, SARSA (через запятую)")
		verbose = flag.Bool("v", false, "подробный вывод")

		// --- Топология ---
		nodes      = flag.Int("nodes", 50, "количество узлов случайной топологии")
		extraEdges = flag.Int("extra_edges", 75, "количество дополнительных рёбер сверх остовного дерева")
		topoSeed   = flag.Int64("topo_seed", 777, "сид генерации топологии и сценариев")

		// --- Сценарии ---
		scenarios = flag.Int("scenarios", 20, "количество случайных сценариев (пар исток-цель)")
		demands   = flag.String("demands", "0,200,400", "требования к пропускной способности (через запятую; 0 — без ограничения)")

		// --- Веса критериев ---
		wDelay = flag.Float64("w_delay", 0.5, "вес задержки")
		wRel   = flag.Float64("w_rel", 0.3, "вес надёжности")
		wRes   = flag.Float64("w_res", 0.2, "вес ресурсной стоимости")

		// --- Политика запуска ---
		runs     = flag.Int("runs", 10, "количество запусков каждого алгоритма на сценарий")
		baseSeed = flag.Int64("seed", 0, "базовый сид запусков (0 — несидированные независимые запуски)")
		perRunTO = flag.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")
		workers  = flag.Int("workers", 1, "количество параллельных воркеров прогона")
	)
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	configs := defaultConfigs()
	if *cfgPath != "" {
		var err error
		configs, err = loadConfigs(*cfgPath)
		if err != nil {
			logrus.Fatal(err)
		}
	} else if err := configs.Validate(); err != nil {
		logrus.Fatal(err)
	}

	weights := cost.Weights{Delay: *wDelay, Reliability: *wRel, Resource: *wRes}
	if err := weights.Validate(); err != nil {
		logrus.Fatal("некорректные веса критериев: ", err)
	}

	demandList, err := parseDemands(*demands)
	if err != nil {
		logrus.Fatal("некорректный список требований: ", err)
	}

	// Топология и сценарии фиксируются сидом и общие для всех алгоритмов
	rng := rand.New(rand.NewSource(*topoSeed))
	t := topo.RandomTopology(*nodes, *extraEdges, rng)
	scens := bench.RandomScenarios(t, *scenarios, demandList, rng)

	logrus.WithFields(logrus.Fields{
		"nodes":     t.NodeCount(),
		"edges":     t.EdgeCount(),
		"scenarios": len(scens),
	}).Info("топология сгенерирована")

	available := map[string]bench.Algorithm{
		"GA":    {Name: "GA", Factory: newGAFactory(configs.GA)},
		"ACO":   {Name: "ACO", Factory: newACOFactory(configs.ACO)},
		"PSO":   {Name: "PSO", Factory: newPSOFactory(configs.PSO)},
		"SA":    {Name: "SA", Factory: newSAFactory(configs.SA)},
		"QL":    {Name: "QL", Factory: newQLFactory(configs.QL)},
		"SARSA": {Name: "SARSA", Factory: newSARSAFactory(configs.SARSA)},
	}

	var selected []bench.Algorithm
	for _, a := range splitCSV(*algos) {
		al, ok := available[a]
		if !ok {
			logrus.Fatalf("неизвестный алгоритм %q; доступные: %v", a, keys(available))
		}
		selected = append(selected, al)
	}

	runner := bench.Runner{
		Runs:          *runs,
		BaseSeed:      *baseSeed,
		PerRunTimeout: *perRunTO,
		Workers:       *workers,
	}

	ctx := context.Background()

	var records []bench.Record
	for _, a := range selected {
		log := logrus.WithField("algo", a.Name)
		log.WithFields(logrus.Fields{
			"scenarios": len(scens),
			"runs":      runner.Runs,
		}).Info("прогон запущен")

		start := time.Now()
		rec, err := runner.RunCase(ctx, t, scens, weights, a)
		if err != nil {
			log.Fatal("ошибка прогона: ", err)
		}
		records = append(records, rec)

		log.WithFields(logrus.Fields{
			"success_rate": rec.SuccessRate,
			"cost_best":    rec.CostBest,
			"cost_mean":    rec.CostMean,
			"time_mean_ms": rec.TimeMeanMs,
			"elapsed":      time.Since(start).Round(time.Millisecond),
		}).Info("прогон завершён")
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		logrus.Fatal("ошибка при записи в CSV: ", err)
	}
	logrus.Info("сохранено: ", *out)
}

// helpers

func parseDemands(s string) ([]float64, error) {
	var out []float64
	for _, p := range splitCSV(s) {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
