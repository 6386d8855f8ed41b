// Package formula holds closed-form similarity measures over the contingency
// table produced by the engine. Formulas never panic: degenerate tables
// surface as NaN or ±Inf unless a measure documents its own convention for
// empty inputs.
package formula

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/tokensim/pkg/tokensim/engine"
	"github.com/cognicore/tokensim/pkg/tokensim/internalerr"
)

// Func is a measure of the contingency cardinalities alone
type Func func(engine.Cardinalities) float64

// ComparisonFunc is a measure that also needs per-token counts
type ComparisonFunc func(engine.Comparison) float64

// Comparison lifts a cardinality formula to a ComparisonFunc.
func (f Func) Comparison() ComparisonFunc {
	return func(c engine.Comparison) float64 { return f(c.Cardinalities) }
}

var registry = map[string]ComparisonFunc{
	"jaccard":        Func(Jaccard).Comparison(),
	"dice":           Func(Dice).Comparison(),
	"overlap":        Func(Overlap).Comparison(),
	"cosine":         Func(Cosine).Comparison(),
	"dennis":         Func(DennisSim).Comparison(),
	"dennis_score":   Func(DennisScore).Comparison(),
	"dennis_corr":    Func(DennisCorr).Comparison(),
	"doolittle":      Func(Doolittle).Comparison(),
	"pearson_phi":    Func(PearsonPhi).Comparison(),
	"pearson_iii":    Func(PearsonIII).Comparison(),
	"tulloss_s":      Func(TullossS).Comparison(),
	"gini_i":         Func(GiniISim).Comparison(),
	"gini_i_corr":    Func(GiniICorr).Comparison(),
	"azzoo":          AZZOO(DefaultSigma).Comparison(),
	"sokal_sneath_i": Func(SokalSneathI).Comparison(),
	"kent_foster_i":  Func(KentFosterI).Comparison(),
	"jaccard_nm":     Func(JaccardNM).Comparison(),
	"pmi":            NewCalculator(1).PMI().Comparison(),
	"npmi":           NewCalculator(1).NPMI().Comparison(),
	"fidelity":       Fidelity,
	"chebyshev":      Chebyshev,
}

// Lookup resolves a registered measure by name.
func Lookup(name string) (ComparisonFunc, error) {
	fn, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: unknown measure %q", internalerr.ErrInvalidConfig, name)
	}
	return fn, nil
}

// Names lists the registered measures in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Measure binds a formula to an engine.
type Measure struct {
	name   string
	engine *engine.Engine
	fn     ComparisonFunc
}

// NewMeasure looks up name and binds it to e.
func NewMeasure(e *engine.Engine, name string) (*Measure, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: measure %q without engine", internalerr.ErrInvalidConfig, name)
	}
	fn, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return &Measure{name: strings.ToLower(strings.TrimSpace(name)), engine: e, fn: fn}, nil
}

// Bind attaches an arbitrary formula to e under the given name.
func Bind(e *engine.Engine, name string, fn ComparisonFunc) *Measure {
	return &Measure{name: name, engine: e, fn: fn}
}

// Name returns the registry name
func (m *Measure) Name() string { return m.name }

// Score compares src against tar.
func (m *Measure) Score(src, tar string) float64 {
	return m.fn(m.engine.Tokenize(src, tar))
}

// Evaluate applies the formula to an already tokenized comparison, so several
// measures can share one table.
func (m *Measure) Evaluate(c engine.Comparison) float64 { return m.fn(c) }
