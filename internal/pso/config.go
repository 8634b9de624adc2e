package pso

import "fmt"

type Config struct {
	Iterations int
	Particles  int

	// W — инерция: вероятность случайной исследовательской правки пути.
	W float64
	// C1 — когнитивный коэффициент: тяга к личному лучшему пути.
	C1 float64
	// C2 — социальный коэффициент: тяга к глобально лучшему пути.
	C2 float64

	// WalkAttempts — число попыток случайного блуждания
	// при инициализации и восстановлении частицы.
	WalkAttempts int
}

func DefaultConfig() Config {
	return Config{
		Iterations: 150,
		Particles:  30,

		W:  0.40,
		C1: 0.50,
		C2: 0.50,

		WalkAttempts: 5,
	}
}

func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf(
			"количество итераций должно быть > 0 (получено %d)",
			c.Iterations,
		)
	}
	if c.Particles <= 0 {
		return fmt.Errorf(
			"количество частиц должно быть > 0 (получено %d)",
			c.Particles,
		)
	}
	if c.W < 0 || c.W > 1 {
		return fmt.Errorf(
			"W должно лежать в диапазоне [0,1] (получено %f)",
			c.W,
		)
	}
	if c.C1 < 0 || c.C1 > 1 || c.C2 < 0 || c.C2 > 1 {
		return fmt.Errorf(
			"C1 и C2 должны лежать в диапазоне [0,1] (получено %f, %f)",
			c.C1, c.C2,
		)
	}
	if c.WalkAttempts <= 0 {
		return fmt.Errorf(
			"число попыток блуждания должно быть > 0 (получено %d)",
			c.WalkAttempts,
		)
	}
	return nil
}
