package opt

import (
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"qosRoute/internal/cost"
	"qosRoute/internal/topo"
)

// NewRun возвращает генератор случайных чисел для одного запуска и
// фактически использованный сид. Ненулевой сид даёт полностью
// детерминированный запуск; нулевой заменяется сидом из
// высокоточных часов и идентификатора процесса, поэтому два
// несидированных запуска статистически независимы.
func NewRun(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano() ^ (int64(os.Getpid()) << 32)
	}
	return rand.New(rand.NewSource(seed)), seed
}

// Notify вызывает обратный вызов прогресса, подавляя любую панику:
// сбой на стороне вызывающего кода не должен прерывать поиск.
func Notify(fn ProgressFunc, step int, best float64) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("step", step).Debugf("обратный вызов прогресса завершился паникой: %v", r)
		}
	}()
	fn(step, best)
}

// Fallback — единая резервная политика всех стратегий: кратчайший по
// числу переходов путь по рёбрам, удовлетворяющим требованию к
// пропускной способности; если такого пути нет — вырожденный путь
// [src, dst], оценка которого даёт +Inf.
func Fallback(t *topo.Topology, src, dst int, demand float64) []int {
	if p := t.ShortestHops(src, dst, demand); p != nil {
		return p
	}
	return []int{src, dst}
}

// Finish собирает Result по лучшему найденному пути. Если bestPath пуст
// (поиск не достиг цели в пределах бюджета), подставляется резервный путь.
func Finish(t *topo.Topology, req Request, bestPath []int, ev *cost.Evaluator) ([]int, cost.Breakdown) {
	if len(bestPath) == 0 {
		bestPath = Fallback(t, req.Source, req.Dest, req.Demand)
	}
	return bestPath, ev.Evaluate(bestPath)
}
