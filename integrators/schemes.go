package integrators

import "fmt"

// SchemeType enumerates the implemented exponential integrators. The set is
// closed: adding a scheme means adding a tag, its coefficient builder and
// its stepper.
type SchemeType uint8

const (
	ETDRK4     SchemeType = iota // one-step 4th order exponential Runge-Kutta (Cox-Matthews)
	ABNORSETT4                   // 4th order exponential Adams-Bashforth multistep (Norsett)
	PECEC433                     // 4th order 3-step exponential predictor-corrector
)

var (
	schemeNames = []string{
		"etdrk4",
		"abnorsett4",
		"pecec433",
	}
	schemeLabels = []string{
		"ETDRK4, One Step Exponential Runge-Kutta, 4th Order",
		"ABNorsett4, Exponential Adams-Bashforth, 4th Order",
		"PECEC433, Exponential Predictor-Corrector, 4th Order",
	}
	// nonlinear evaluations per step and required history depth
	schemeEvals   = []int{4, 1, 2}
	schemeHistory = []int{0, 3, 3}
	schemeStartup = []int{0, 3, 2}
)

// NewSchemeType resolves a scheme name. Unknown names are reported with the
// offending input; the caller maps this to its configuration error type.
func NewSchemeType(name string) (st SchemeType, err error) {
	for i, n := range schemeNames {
		if n == name {
			return SchemeType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown integration scheme %q, have %v", name, schemeNames)
}

func (st SchemeType) String() string { return schemeNames[st] }
func (st SchemeType) Print() string  { return schemeLabels[st] }

// Order is the nominal temporal order of accuracy.
func (st SchemeType) Order() int { return 4 }

// Evaluations is the number of nonlinear term evaluations per step, the
// principal per-scheme cost driver.
func (st SchemeType) Evaluations() int { return schemeEvals[st] }

// HistoryLength is the number of retained nonlinear evaluations from
// previous completed steps.
func (st SchemeType) HistoryLength() int { return schemeHistory[st] }

// StartupSteps is the number of bootstrap steps a multistep scheme needs
// from a one-step scheme before it can run.
func (st SchemeType) StartupSteps() int { return schemeStartup[st] }

// SchemeNames lists the recognized scheme names.
func SchemeNames() []string {
	out := make([]string, len(schemeNames))
	copy(out, schemeNames)
	return out
}
