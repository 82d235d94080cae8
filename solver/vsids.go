package solver

import "math"

const (
	activityRescaleThreshold = 1e100
	activityRescaleFactor    = 1e-100
)

// vsids implements Variable State Independent Decaying Sum variable
// selection (spec §4.5) plus the phase-selection policy spec §4.4
// describes. Grounded in the teacher's activity/polarity fields and
// varBumpActivity/varDecayActivity (solver/solver.go), generalized: the
// teacher only ever saves a fixed "optimization" phase (resetOptimPolarity);
// this rewrite adds real phase saving, occurrence-based fallback polarity,
// and the ratio-adaptive randomization spec §4.4/§4.5 ask for, none of
// which the teacher implements for its own decision policy.
type vsids struct {
	activity []float64
	varInc   float64
	varDecay float64
	heap     queue

	phaseSaving bool
	savedPhase  []bool
	hasPhase    []bool

	posOcc []int
	negOcc []int

	rng                *rngSource
	baseRandomPolarity float64 // extra per-worker diversification offset
}

func newVSIDS(nbVars int, varDecay float64, phaseSaving bool, seed int64, randomPolarity float64) *vsids {
	h := &vsids{
		activity:           make([]float64, nbVars),
		varInc:             1.0,
		varDecay:           varDecay,
		phaseSaving:        phaseSaving,
		savedPhase:         make([]bool, nbVars),
		hasPhase:           make([]bool, nbVars),
		posOcc:             make([]int, nbVars),
		negOcc:             make([]int, nbVars),
		rng:                newRNGSource(seed),
		baseRandomPolarity: randomPolarity,
	}
	h.heap = newQueue(h.activity)
	return h
}

// recordOccurrence updates the positive/negative occurrence tables
// choosePolarity's default-polarity fallback consults, one clause at a
// time as it is added — grounded in the teacher's initOptimActivity, which
// does the same tally but all at once from a complete Problem rather than
// incrementally as AddClause is called. Unlike the teacher, this rewrite
// does not also fold occurrence counts into VSIDS activity: activity
// starts at zero and grows only from conflict bumps, the plain-CDCL
// default the rest of the pack's SAT-adjacent code (togatoga-gatosat) uses
// too.
func (h *vsids) recordOccurrence(lits []Lit) {
	for _, l := range lits {
		if l.IsPositive() {
			h.posOcc[l.Var()]++
		} else {
			h.negOcc[l.Var()]++
		}
	}
}

func rangeInts(n int) []int {
	r := make([]int, n)
	for i := range r {
		r[i] = i
	}
	return r
}

// grow extends every per-variable table for a newly introduced variable
// (spec §4.7's new_variable: "zero activity and no phase") and inserts it
// into the decision heap alone, leaving every already-assigned variable's
// absence from the heap untouched — rebuilding wholesale here (as opposed
// to a single insert) would wrongly re-add every currently assigned
// variable back into the pool of decidable ones.
func (h *vsids) grow() Var {
	v := Var(len(h.activity))
	h.activity = append(h.activity, 0)
	h.savedPhase = append(h.savedPhase, false)
	h.hasPhase = append(h.hasPhase, false)
	h.posOcc = append(h.posOcc, 0)
	h.negOcc = append(h.negOcc, 0)
	h.heap.activity = h.activity // activity's backing array may have moved
	h.heap.insert(v)
	return v
}

// bump adds the shared increment to v's activity, rescaling every activity
// (and the increment itself) if the threshold is crossed. This is the
// exact idiom in the teacher's varBumpActivity: non-negotiable per
// spec §9's floating-point rescale note.
func (h *vsids) bump(v Var) {
	h.activity[v] += h.varInc
	if h.activity[v] > activityRescaleThreshold {
		for i := range h.activity {
			h.activity[i] *= activityRescaleFactor
		}
		h.varInc *= activityRescaleFactor
	}
	if h.heap.contains(v) {
		h.heap.decrease(v)
	}
}

// decay divides varInc by varDecay, growing future bumps' relative weight.
func (h *vsids) decay() {
	h.varInc *= 1 / h.varDecay
}

// pick removes and returns the highest-activity variable that is still
// unassigned, per assigned. It returns ok=false once every variable is
// bound, meaning the formula is satisfied. The heap orders equal
// activities by variable id, so ties favor the lowest variable id — spec
// §4.4's determinism requirement.
func (h *vsids) pick(assigned func(Var) bool) (v Var, ok bool) {
	for !h.heap.empty() {
		cand := h.heap.removeMin()
		if !assigned(cand) {
			return cand, true
		}
	}
	return 0, false
}

// reinsert pushes v back into the decision heap; used on backtrack when v
// becomes unassigned again.
func (h *vsids) reinsert(v Var) {
	if !h.heap.contains(v) {
		h.heap.insert(v)
	}
}

// rebuild reconstructs the heap from scratch with exactly the variables for
// which assigned returns false. Mirrors the teacher's rebuildOrderHeap,
// called after a restart or a batch backjump.
func (h *vsids) rebuild(nbVars int, assigned func(Var) bool) {
	ids := make([]Var, 0, nbVars)
	for v := 0; v < nbVars; v++ {
		if !assigned(Var(v)) {
			ids = append(ids, Var(v))
		}
	}
	h.heap.build(ids)
}

// savePhase records the last value v was assigned, consulted by
// choosePolarity when phase saving is enabled.
func (h *vsids) savePhase(v Var, positive bool) {
	h.savedPhase[v] = positive
	h.hasPhase[v] = true
}

// resetActivities clears every variable's activity and increment back to
// their construction-time defaults, without touching phases. Used when the
// stall detector decides to reinitialize VSIDS (spec §4.4).
func (h *vsids) resetActivities() {
	for i := range h.activity {
		h.activity[i] = 0
	}
	h.varInc = 1.0
}

// choosePolarity implements spec §4.4's "Making a decision" polarity rule:
// saved phase first if enabled, else an occurrence-count default, with
// clause/variable-ratio-adaptive randomization injected near and past the
// random-3-SAT phase transition, boosted while the search is stalled.
func (h *vsids) choosePolarity(v Var, clauseToVarRatio float64, stalled bool) bool {
	freq := h.randomFrequency(clauseToVarRatio, stalled) + h.baseRandomPolarity
	if freq > 0.95 {
		freq = 0.95
	}
	if h.rng.Float64() < freq {
		return h.rng.Intn(2) == 0
	}
	if h.phaseSaving && h.hasPhase[v] {
		return h.savedPhase[v]
	}
	return h.negOcc[v] > h.posOcc[v]
}

func (h *vsids) randomFrequency(ratio float64, stalled bool) float64 {
	var freq float64
	switch {
	case ratio > 4.5:
		freq = 0.5
	case ratio >= 4.0:
		closeness := 1.0 - math.Abs(ratio-4.25)/0.25
		if closeness < 0 {
			closeness = 0
		}
		freq = 0.2 + 0.5*closeness
	default:
		freq = 0.02
	}
	if stalled {
		freq += 0.2
	}
	return freq
}
