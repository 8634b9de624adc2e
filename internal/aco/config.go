package aco

import "fmt"

type Config struct {
	Iterations int
	Ants       int

	// Alpha0/Alpha1 — вес феромона в начале и в конце поиска
	// (растёт линейно: от исследования к эксплуатации).
	Alpha0 float64
	Alpha1 float64
	// Beta0/Beta1 — вес эвристики в начале и в конце поиска (убывает линейно).
	Beta0 float64
	Beta1 float64

	// Rho — базовая скорость испарения феромона.
	Rho float64
	// RhoStagnant — повышенная скорость испарения при застое.
	RhoStagnant float64
	// StagnationLimit — число итераций без улучшения до остановки.
	StagnationLimit int

	// Epsilon — вероятность равновероятного выбора следующего узла.
	Epsilon float64

	Q    float64
	Tau0 float64

	TauMin float64
	TauMax float64

	// TopRank — число лучших путей итерации, получающих феромон.
	TopRank int
}

func DefaultConfig() Config {
	return Config{
		Iterations: 120,
		Ants:       30,

		Alpha0: 1.0,
		Alpha1: 3.0,
		Beta0:  3.0,
		Beta1:  1.0,

		Rho:             0.10,
		RhoStagnant:     0.25,
		StagnationLimit: 30,

		Epsilon: 0.10,

		Q:    1.0,
		Tau0: 1.0,

		TauMin: 0.01,
		TauMax: 10.0,

		TopRank: 10,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf(
			"количество итераций должно быть > 0 (получено %d)",
			c.Iterations,
		)
	}
	if c.Ants <= 0 {
		return fmt.Errorf(
			"количество муравьёв должно быть > 0 (получено %d)",
			c.Ants,
		)
	}
	if c.Alpha0 < 0 || c.Alpha1 < 0 {
		return fmt.Errorf(
			"alpha должно быть >= 0 (получено %f, %f)",
			c.Alpha0, c.Alpha1,
		)
	}
	if c.Beta0 < 0 || c.Beta1 < 0 {
		return fmt.Errorf(
			"beta должно быть >= 0 (получено %f, %f)",
			c.Beta0, c.Beta1,
		)
	}
	if c.Rho <= 0 || c.Rho >= 1 {
		return fmt.Errorf(
			"rho должно лежать в интервале (0,1) (получено %f)",
			c.Rho,
		)
	}
	if c.RhoStagnant <= 0 || c.RhoStagnant >= 1 {
		return fmt.Errorf(
			"rho при застое должно лежать в интервале (0,1) (получено %f)",
			c.RhoStagnant,
		)
	}
	if c.StagnationLimit <= 0 {
		return fmt.Errorf(
			"предел застоя должен быть > 0 (получено %d)",
			c.StagnationLimit,
		)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf(
			"epsilon должно лежать в диапазоне [0,1] (получено %f)",
			c.Epsilon,
		)
	}
	if c.Q <= 0 {
		return fmt.Errorf(
			"Q должно быть > 0 (получено %f)",
			c.Q,
		)
	}
	if c.Tau0 <= 0 {
		return fmt.Errorf(
			"tau0 должно быть > 0 (получено %f)",
			c.Tau0,
		)
	}
	if c.TauMin <= 0 || c.TauMax <= c.TauMin {
		return fmt.Errorf(
			"границы феромона должны удовлетворять 0 < TauMin < TauMax (получено %f, %f)",
			c.TauMin, c.TauMax,
		)
	}
	if c.Tau0 < c.TauMin || c.Tau0 > c.TauMax {
		return fmt.Errorf(
			"tau0 должно лежать в границах [TauMin, TauMax] (получено %f)",
			c.Tau0,
		)
	}
	if c.TopRank <= 0 {
		return fmt.Errorf(
			"TopRank должно быть > 0 (получено %d)",
			c.TopRank,
		)
	}
	return nil
}
