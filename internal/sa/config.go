package sa

import "fmt"

type Config struct {
	InitialTemp float64
	FinalTemp   float64
	// Cooling — коэффициент геометрического охлаждения температуры.
	Cooling float64

	// StepsPerTemp — число шагов на одном уровне температуры.
	StepsPerTemp int

	// SegmentMax — максимальная длина перестраиваемого участка пути.
	SegmentMax int

	// WalkAttempts — число попыток случайного блуждания
	// при построении начального решения.
	WalkAttempts int
}

func DefaultConfig() Config {
	return Config{
		InitialTemp: 1.0,
		FinalTemp:   1e-3,
		Cooling:     0.95,

		StepsPerTemp: 20,

		SegmentMax: 4,

		WalkAttempts: 10,
	}
}

func (c Config) Validate() error {
	if c.InitialTemp <= 0 {
		return fmt.Errorf(
			"начальная температура должна быть > 0 (получено %f)",
			c.InitialTemp,
		)
	}
	if c.FinalTemp <= 0 {
		return fmt.Errorf(
			"конечная температура должна быть > 0 (получено %f)",
			c.FinalTemp,
		)
	}
	if c.FinalTemp >= c.InitialTemp {
		return fmt.Errorf(
			"конечная температура должна быть < начальной (получено %f >= %f)",
			c.FinalTemp,
			c.InitialTemp,
		)
	}
	if c.Cooling <= 0 || c.Cooling >= 1 {
		return fmt.Errorf(
			"коэффициент охлаждения должен лежать в интервале (0,1) (получено %f)",
			c.Cooling,
		)
	}
	if c.StepsPerTemp <= 0 {
		return fmt.Errorf(
			"число шагов на температуру должно быть > 0 (получено %d)",
			c.StepsPerTemp,
		)
	}
	if c.SegmentMax < 2 {
		return fmt.Errorf(
			"максимальная длина участка должна быть >= 2 (получено %d)",
			c.SegmentMax,
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
