package portfolio

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/require"

	"github.com/tmertens/satkit/solver"
)

func clause(ints ...int) []solver.Lit {
	lits := make([]solver.Lit, len(ints))
	for i, n := range ints {
		lits[i] = solver.IntToLit(n)
	}
	return lits
}

// smallSatFormula is trivially satisfiable and small enough that every
// diversified preset should find a model quickly.
func smallSatFormula() (int, [][]solver.Lit) {
	return 3, [][]solver.Lit{
		clause(1, 2),
		clause(-1, 3),
		clause(2, -3),
	}
}

// pigeonholeUnsat is a small classic unsatisfiable instance: 3 pigeons, 2
// holes.
func pigeonholeUnsat() (int, [][]solver.Lit) {
	nbVars := 6
	// vars: pigeon p in hole h -> var (p*2+h)+1, p in {0,1,2}, h in {0,1}
	v := func(p, h int) int { return p*2 + h + 1 }
	var clauses [][]solver.Lit
	for p := 0; p < 3; p++ {
		clauses = append(clauses, clause(v(p, 0), v(p, 1)))
	}
	for h := 0; h < 2; h++ {
		for p1 := 0; p1 < 3; p1++ {
			for p2 := p1 + 1; p2 < 3; p2++ {
				clauses = append(clauses, clause(-v(p1, h), -v(p2, h)))
			}
		}
	}
	return nbVars, clauses
}

func TestManagerFindsSatSolution(t *testing.T) {
	g := NewWithT(t)
	nbVars, clauses := smallSatFormula()

	m, err := New(nbVars, clauses, 2*time.Second, 4, Options{})
	require.NoError(t, err)

	sat := m.Solve(context.Background())

	g.Expect(sat).To(BeTrue())
	model, preset, ok := m.Solution()
	g.Expect(ok).To(BeTrue())
	g.Expect(preset).NotTo(BeEmpty())
	g.Expect(model).To(HaveLen(nbVars))

	g.Expect(verifyModel(model, clauses)).To(BeTrue())
}

func TestManagerReportsUnsat(t *testing.T) {
	g := NewWithT(t)
	nbVars, clauses := pigeonholeUnsat()

	m, err := New(nbVars, clauses, 2*time.Second, 4, Options{})
	require.NoError(t, err)

	sat := m.Solve(context.Background())
	g.Expect(sat).To(BeFalse())
	_, _, ok := m.Solution()
	g.Expect(ok).To(BeFalse())
}

func TestManagerHonorsTimeout(t *testing.T) {
	g := NewWithT(t)
	nbVars, clauses := smallSatFormula()

	m, err := New(nbVars, clauses, time.Nanosecond, 2, Options{})
	require.NoError(t, err)

	// Not asserting the outcome (a solve this small can race the deadline
	// either way); asserting only that Solve returns promptly and the
	// manager always joins every worker before returning.
	done := make(chan struct{})
	go func() {
		m.Solve(context.Background())
		close(done)
	}()
	g.Eventually(done, time.Second).Should(BeClosed())
}

func TestManagerStatisticsOneEntryPerWorker(t *testing.T) {
	g := NewWithT(t)
	nbVars, clauses := smallSatFormula()

	m, err := New(nbVars, clauses, 2*time.Second, 3, Options{})
	require.NoError(t, err)
	m.Solve(context.Background())

	g.Expect(m.Statistics()).To(HaveLen(m.WorkerCount()))
}

func verifyModel(model []bool, clauses [][]solver.Lit) bool {
	for _, c := range clauses {
		satisfied := false
		for _, l := range c {
			v := int(l.Var())
			val := model[v]
			if !l.IsPositive() {
				val = !val
			}
			if val {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}
