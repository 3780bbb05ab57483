package presets

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gospectral/operators"
	"github.com/notargets/gospectral/solver"
)

func TestRegistry(t *testing.T) {
	names := Names()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "heat")
	assert.Contains(t, names, "ks")
	assert.Contains(t, names, "grayscott")

	_, err := Get("kuramoto")
	var cfgErr *operators.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "kuramoto")
}

// Every preset must validate against its own defaults and carry usable
// preferences.
func TestPresetsAreValid(t *testing.T) {
	for _, name := range Names() {
		prob, err := Get(name)
		assert.NoError(t, err)
		assert.Equal(t, name, prob.Spec.Name)
		assert.NoError(t, prob.Spec.Validate(prob.GridSize), name)
		assert.NoError(t, prob.Prefs.Validate(len(prob.GridSize)), name)
		assert.Greater(t, prob.Dt, 0., name)
	}
}

// Short runs of the cheap presets must complete without divergence.
func TestPresetShortRuns(t *testing.T) {
	for _, name := range []string{"heat", "allencahn", "burgers", "nls"} {
		prob, err := Get(name)
		assert.NoError(t, err)
		prob.Spec.TSpan[1] = prob.Spec.TSpan[0] + 20*prob.Dt
		res, err := solver.Solve(prob.Spec, prob.GridSize, prob.Dt, prob.Prefs)
		assert.NoError(t, err, name)
		assert.Equal(t, solver.Finished, res.Phase, name)
		assert.True(t, res.Final.Values().IsFinite(), name)
	}
}

// The KS preset must track the known chaotic attractor envelope for a
// while: the field stays bounded well away from the divergence threshold.
func TestKuramotoSivashinskyBounded(t *testing.T) {
	prob, _ := Get("ks")
	prob.Spec.TSpan[1] = 30
	res, err := solver.Solve(prob.Spec, prob.GridSize, prob.Dt, prob.Prefs)
	assert.NoError(t, err)
	assert.Less(t, res.Final.Values().MaxAbs(), 10.)
}
