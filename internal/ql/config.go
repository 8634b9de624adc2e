package ql

import "fmt"

type Config struct {
	Episodes int

	// Alpha — скорость обучения.
	Alpha float64
	// Gamma — коэффициент дисконтирования.
	Gamma float64

	// Epsilon — начальная вероятность случайного действия;
	// убывает геометрически с каждым эпизодом до EpsilonMin.
	Epsilon      float64
	EpsilonDecay float64
	EpsilonMin   float64

	// RewardScale — числитель терминальной награды RewardScale / стоимость пути.
	RewardScale float64
}

func DefaultConfig() Config {
	return Config{
		Episodes: 800,

		Alpha: 0.30,
		Gamma: 0.90,

		Epsilon:      0.50,
		EpsilonDecay: 0.995,
		EpsilonMin:   0.05,

		RewardScale: 10.0,
	}
}

func (c Config) Validate() error {
	if c.Episodes <= 0 {
		return fmt.Errorf(
			"количество эпизодов должно быть > 0 (получено %d)",
			c.Episodes,
		)
	}
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf(
			"скорость обучения должна лежать в интервале (0,1] (получено %f)",
			c.Alpha,
		)
	}
	if c.Gamma < 0 || c.Gamma > 1 {
		return fmt.Errorf(
			"коэффициент дисконтирования должен лежать в диапазоне [0,1] (получено %f)",
			c.Gamma,
		)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf(
			"epsilon должно лежать в диапазоне [0,1] (получено %f)",
			c.Epsilon,
		)
	}
	if c.EpsilonDecay <= 0 || c.EpsilonDecay > 1 {
		return fmt.Errorf(
			"коэффициент убывания epsilon должен лежать в интервале (0,1] (получено %f)",
			c.EpsilonDecay,
		)
	}
	if c.EpsilonMin < 0 || c.EpsilonMin > c.Epsilon {
		return fmt.Errorf(
			"минимум epsilon должен лежать в диапазоне [0, epsilon] (получено %f)",
			c.EpsilonMin,
		)
	}
	if c.RewardScale <= 0 {
		return fmt.Errorf(
			"масштаб награды должен быть > 0 (получено %f)",
			c.RewardScale,
		)
	}
	return nil
}
