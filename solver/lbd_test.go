package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// observeFlat feeds n iterations of "no progress at all" into d, holding
// every counter (and decisionLevel) steady.
func observeFlat(d *stallDetector, decisionLevel int, n int) {
	for i := 0; i < n; i++ {
		d.observeIteration(0, 0, 0, 0, 0, decisionLevel)
	}
}

func TestStallDetectorForceRestartAfterNoProgress(t *testing.T) {
	d := newStallDetector()
	observeFlat(d, 0, stallForceRestartIterations)
	assert.False(t, d.forceRestartDue(), "threshold is exclusive: exactly stallForceRestartIterations must not yet trigger")

	d.observeIteration(0, 0, 0, 0, 0, 0)
	assert.True(t, d.forceRestartDue())
}

// TestStallDetectorProgressResetsForceRestart covers spec §4.4's progress
// signal set: a growing conflict count (one of six tracked signals) must
// reset the no-progress run even though nothing else changed.
func TestStallDetectorProgressResetsForceRestart(t *testing.T) {
	d := newStallDetector()
	observeFlat(d, 0, stallForceRestartIterations+5)
	a := assert.New(t)
	a.True(d.forceRestartDue())

	d.observeIteration(1, 0, 0, 0, 0, 0)
	a.False(d.forceRestartDue())
}

// TestStallDetectorEscalatesAfterRepeatedForcedRestarts covers
// original_source's consecutive_restarts > 10 escalation: enough forced
// restarts in a row without intervening progress switch the caller from a
// plain restart to clearing every learned clause and reinitializing VSIDS.
func TestStallDetectorEscalatesAfterRepeatedForcedRestarts(t *testing.T) {
	d := newStallDetector()
	for i := 0; i < stallClearLearnedAfterForcedRestarts; i++ {
		assert.False(t, d.shouldClearLearned())
		d.restartForced(false)
	}
	assert.True(t, d.shouldClearLearned())

	d.restartForced(true)
	assert.False(t, d.shouldClearLearned(), "the clear-learned escalation itself must reset the consecutive count")
}

func TestStallDetectorForceBackjumpAfterStuckAtLevel(t *testing.T) {
	d := newStallDetector()
	observeFlat(d, 0, stallForceBackjumpIterations)
	assert.False(t, d.forceBackjumpDue())

	d.observeIteration(0, 0, 0, 0, 0, 0)
	assert.True(t, d.forceBackjumpDue())

	// Climbing to a new decision level resets the stuck-at-level run even
	// though nothing else progressed.
	d.observeIteration(0, 0, 0, 0, 0, 1)
	assert.False(t, d.forceBackjumpDue())
}

func TestStallDetectorBackjumpForcedResetsStuckAtLevel(t *testing.T) {
	d := newStallDetector()
	observeFlat(d, 0, stallForceBackjumpIterations+1)
	assert.True(t, d.forceBackjumpDue())

	d.backjumpForced()
	assert.False(t, d.forceBackjumpDue())
}

// TestStallDetectorUnresolvedAfterProlongedNoProgress covers spec §4.4's
// 2000-iteration give-up threshold and its key subtlety (grounded in
// original_source's no_progress_count, as opposed to stuck_counter): a
// plain forced restart does not itself count as progress, so
// noProgressIterations keeps climbing across repeated forced restarts until
// something external actually moves (a conflict, a decision, a new
// learned clause, ...).
func TestStallDetectorUnresolvedAfterProlongedNoProgress(t *testing.T) {
	d := newStallDetector()
	observeFlat(d, 0, stallUnresolvedIterations)
	assert.False(t, d.unresolved())

	// A forced restart firing partway through must not reset the
	// unresolved countdown.
	d.restartForced(false)
	assert.False(t, d.unresolved())

	d.observeIteration(0, 0, 0, 0, 0, 0)
	assert.True(t, d.unresolved())
}

func TestStallDetectorRestartsCountAsProgress(t *testing.T) {
	d := newStallDetector()
	observeFlat(d, 0, stallUnresolvedIterations+5)
	a := assert.New(t)
	a.True(d.unresolved())

	// A restart that the normal schedule (not the stall mechanism) fires
	// also counts as progress, per spec §4.4's signal list.
	d.observeIteration(0, 0, 0, 0, 1, 0)
	a.False(d.unresolved())
}
