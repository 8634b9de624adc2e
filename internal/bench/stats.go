package bench

import "gonum.org/v1/gonum/stat"

// Stats — сводка по выборке: минимум, среднее, стандартное отклонение.
type Stats struct {
	N    int
	Best float64
	Mean float64
	Std  float64
}

// Calc вычисляет сводку. Для пустой выборки возвращаются нули,
// для выборки из одного элемента отклонение равно нулю.
func Calc(values []float64) Stats {
	s := Stats{N: len(values)}
	if s.N == 0 {
		return s
	}

	best := values[0]
	for _, v := range values {
		if v < best {
			best = v
		}
	}
	s.Best = best
	s.Mean = stat.Mean(values, nil)
	if s.N >= 2 {
		s.Std = stat.StdDev(values, nil)
	}
	return s
}
