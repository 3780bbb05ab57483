package solver

import (
	"github.com/notargets/gospectral/integrators"
	"github.com/notargets/gospectral/operators"
)

// Preferences is the validated run configuration. Every recognized option
// is an explicit field; construction from key/value pairs rejects unknown
// keys up front instead of accepting them silently.
type Preferences struct {
	Scheme     string     // integration scheme name, see integrators.SchemeNames
	PlotEvery  int        // capture a snapshot every PlotEvery steps
	OutputSize []int      // output resolution per dimension, nil = compute grid
	ValueRange [2]float64 // display range hint carried on snapshots
	Plot       bool       // incremental output switch; numerics are identical either way
	Verbose    bool
	Sink       SnapshotFunc // snapshot consumer, nil discards
}

func DefaultPreferences() *Preferences {
	return &Preferences{
		Scheme:    integrators.ETDRK4.String(),
		PlotEvery: 20,
	}
}

// NewPreferences builds preferences from key/value pairs. Unknown keys fail
// fast with a ConfigurationError naming the key.
func NewPreferences(opts map[string]interface{}) (p *Preferences, err error) {
	p = DefaultPreferences()
	for key, val := range opts {
		ok := true
		switch key {
		case "scheme":
			p.Scheme, ok = val.(string)
		case "plotEvery":
			p.PlotEvery, ok = val.(int)
		case "outputSize":
			p.OutputSize, ok = val.([]int)
		case "valueRange":
			p.ValueRange, ok = val.([2]float64)
		case "plot":
			p.Plot, ok = val.(bool)
		case "verbose":
			p.Verbose, ok = val.(bool)
		case "sink":
			p.Sink, ok = val.(SnapshotFunc)
		default:
			return nil, operators.Configf("unknown preference key %q", key)
		}
		if !ok {
			return nil, operators.Configf("preference %q has incompatible value %v", key, val)
		}
	}
	return p, nil
}

// Validate checks the preferences against a domain dimensionality.
func (p *Preferences) Validate(dims int) error {
	if _, err := integrators.NewSchemeType(p.Scheme); err != nil {
		return operators.Configf("%v", err)
	}
	if p.PlotEvery < 1 {
		return operators.Configf("plotEvery must be at least 1, have %d", p.PlotEvery)
	}
	if p.OutputSize != nil {
		if len(p.OutputSize) != dims {
			return operators.Configf("output size has %d dimensions, domain has %d", len(p.OutputSize), dims)
		}
		for d, n := range p.OutputSize {
			if n < 2 {
				return operators.Configf("output size must be at least 2 per dimension, have %d in dimension %d", n, d)
			}
		}
	}
	return nil
}
