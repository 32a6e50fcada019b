package inverse

import (
	"sync"
)

// Evaluation is the outcome of scoring one candidate log-field.
type Evaluation struct {
	LogLikelihood float64
	Err           error
}

type job struct {
	idx   int
	theta []float64
}

// LogLikelihoods scores every candidate using nWorkers goroutines. Results
// are in the order of thetas; a failed candidate only sets its own Err.
func (m *Model) LogLikelihoods(thetas [][]float64, nWorkers int) []Evaluation {
	if nWorkers < 1 {
		nWorkers = 1
	}
	out := make([]Evaluation, len(thetas))
	jobs := make(chan job, 100)
	var wg sync.WaitGroup

	for i := 0; i < nWorkers; i++ {
		go func() {
			for j := range jobs {
				ll, err := m.LogLikelihood(j.theta)
				out[j.idx] = Evaluation{LogLikelihood: ll, Err: err}
				wg.Done()
			}
		}()
	}

	for i, theta := range thetas {
		wg.Add(1)
		jobs <- job{idx: i, theta: theta}
	}
	close(jobs)
	wg.Wait()
	return out
}
