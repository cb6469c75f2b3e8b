package validation

import (
	"github.com/platinummonkey/ordcheck/pkg/reaction"
	"github.com/platinummonkey/ordcheck/pkg/units"
)

// Rule names attached to findings that are not produced by a registered rule
const (
	canonicalizeRuleName = "canonicalize"
	traversalRuleName    = "traversal"
	decodeRuleName       = "decode"
)

// walker performs the single depth-first traversal behind Normalize and CheckInvariants.
// It runs every rule on every node and canonicalizes quantities as it goes. When mutate is
// false quantities are checked but left as they are.
type walker struct {
	ctx     *Context
	rules   []Rule
	config  *Config
	units   *units.Registry
	mutate  bool
	report  *Report
	depth   int
	nodes   int
	aborted bool
}

func (w *walker) walk(rec *reaction.Reaction) {
	w.reaction(rec, reaction.Root())
}

// enter counts the node against the configured limits and runs the rules on it. It
// returns false once the traversal has been aborted.
func (w *walker) enter(path reaction.Path, value any) bool {
	if w.aborted {
		return false
	}
	w.nodes++
	if w.nodes > w.config.MaxNodes {
		w.abort(path, "record has more than %d nodes; traversal stopped", w.config.MaxNodes)
		return false
	}
	if w.depth >= w.config.MaxDepth {
		w.abort(path, "record nesting exceeds depth %d; traversal stopped", w.config.MaxDepth)
		return false
	}

	node := Node{Path: path, Value: value}
	for _, rule := range w.rules {
		for _, f := range rule.Check(w.ctx, node) {
			if f.Rule == "" {
				f.Rule = rule.Name()
			}
			w.report.Add(f)
		}
	}
	return true
}

func (w *walker) abort(path reaction.Path, format string, args ...any) {
	w.aborted = true
	f := newFinding(KindTreeTooLarge, path, format, args...)
	f.Rule = traversalRuleName
	w.report.Add(f)
}

// push and pop bracket the children of a node
func (w *walker) push() { w.depth++ }
func (w *walker) pop()  { w.depth-- }

func visitQuantity[U units.Unit](w *walker, q *units.Quantity[U], path reaction.Path) {
	if q == nil {
		return
	}
	m := measurementOf(q)
	if !w.enter(path, m) || m.IsAbsent() {
		return
	}
	res, err := w.units.Canonicalize(m.Kind, m.Value, m.Precision, m.Unit)
	if err != nil {
		f := newFinding(KindCanonicalizationFailed, path, "%v", err)
		f.Rule = canonicalizeRuleName
		w.report.Add(f)
		return
	}
	if w.mutate {
		q.Value = res.Value
		q.Precision = res.Precision
		q.Units = U(res.Unit)
	}
}

func (w *walker) reaction(r *reaction.Reaction, path reaction.Path) {
	if r == nil || !w.enter(path, r) {
		return
	}
	w.push()
	defer w.pop()

	for i, id := range r.Identifiers {
		visitLeaf(w, id, path.Field("identifiers").Index(i))
	}
	for _, key := range reaction.SortedKeys(r.Inputs) {
		w.reactionInput(r.Inputs[key], path.Field("inputs").Key(key))
	}
	w.setup(r.Setup, path.Field("setup"))
	w.conditions(r.Conditions, path.Field("conditions"))
	visitLeaf(w, r.Notes, path.Field("notes"))
	for i, obs := range r.Observations {
		w.observation(obs, path.Field("observations").Index(i))
	}
	for i, wu := range r.Workups {
		w.workup(wu, path.Field("workups").Index(i))
	}
	for i, out := range r.Outcomes {
		w.outcome(out, path.Field("outcomes").Index(i))
	}
	w.provenance(r.Provenance, path.Field("provenance"))
}

// visitLeaf visits a message without nested quantities or messages
func visitLeaf[T any](w *walker, m *T, path reaction.Path) {
	if m == nil {
		return
	}
	w.enter(path, m)
}

func (w *walker) reactionInput(in *reaction.ReactionInput, path reaction.Path) {
	if in == nil || !w.enter(path, in) {
		return
	}
	w.push()
	defer w.pop()

	for i, c := range in.Components {
		w.compound(c, path.Field("components").Index(i))
	}
	visitQuantity(w, in.AdditionTime, path.Field("addition_time"))
	visitLeaf(w, in.AdditionSpeed, path.Field("addition_speed"))
	visitQuantity(w, in.AdditionDuration, path.Field("addition_duration"))
	visitQuantity(w, in.FlowRate, path.Field("flow_rate"))
	visitLeaf(w, in.AdditionDevice, path.Field("addition_device"))
	visitQuantity(w, in.AdditionTemperature, path.Field("addition_temperature"))
}

func (w *walker) compound(c *reaction.Compound, path reaction.Path) {
	if c == nil || !w.enter(path, c) {
		return
	}
	w.push()
	defer w.pop()

	for i, id := range c.Identifiers {
		visitLeaf(w, id, path.Field("identifiers").Index(i))
	}
	switch a := c.Amount.(type) {
	case *reaction.MassAmount:
		visitQuantity(w, &a.Mass, path.Field("mass"))
	case *reaction.MolesAmount:
		visitQuantity(w, &a.Moles, path.Field("moles"))
	case *reaction.VolumeAmount:
		visitQuantity(w, &a.Volume, path.Field("volume"))
	}
	for i, p := range c.Preparations {
		visitLeaf(w, p, path.Field("preparations").Index(i))
	}
	for i, f := range c.Features {
		visitLeaf(w, f, path.Field("features").Index(i))
	}
}

func (w *walker) setup(s *reaction.ReactionSetup, path reaction.Path) {
	if s == nil || !w.enter(path, s) {
		return
	}
	w.push()
	defer w.pop()

	if v := s.Vessel; v != nil {
		vp := path.Field("vessel")
		if w.enter(vp, v) {
			w.push()
			visitQuantity(w, v.Volume, vp.Field("volume"))
			w.pop()
		}
	}
	for _, key := range reaction.SortedKeys(s.AutomationCode) {
		visitLeaf(w, s.AutomationCode[key], path.Field("automation_code").Key(key))
	}
}

func (w *walker) conditions(c *reaction.ReactionConditions, path reaction.Path) {
	if c == nil || !w.enter(path, c) {
		return
	}
	w.push()
	defer w.pop()

	w.temperatureConditions(c.Temperature, path.Field("temperature"))
	w.pressureConditions(c.Pressure, path.Field("pressure"))
	visitLeaf(w, c.Stirring, path.Field("stirring"))
	w.illumination(c.Illumination, path.Field("illumination"))
	w.electrochemistry(c.Electrochemistry, path.Field("electrochemistry"))
	w.flow(c.Flow, path.Field("flow"))
}

func (w *walker) temperatureConditions(t *reaction.TemperatureConditions, path reaction.Path) {
	if t == nil || !w.enter(path, t) {
		return
	}
	w.push()
	defer w.pop()

	visitQuantity(w, t.Setpoint, path.Field("setpoint"))
	for i, m := range t.Measurements {
		mp := path.Field("measurements").Index(i)
		if m == nil || !w.enter(mp, m) {
			continue
		}
		w.push()
		visitQuantity(w, m.Time, mp.Field("time"))
		visitQuantity(w, m.Temperature, mp.Field("temperature"))
		w.pop()
	}
}

func (w *walker) pressureConditions(p *reaction.PressureConditions, path reaction.Path) {
	if p == nil || !w.enter(path, p) {
		return
	}
	w.push()
	defer w.pop()

	visitQuantity(w, p.Setpoint, path.Field("setpoint"))
	for i, m := range p.Measurements {
		mp := path.Field("measurements").Index(i)
		if m == nil || !w.enter(mp, m) {
			continue
		}
		w.push()
		visitQuantity(w, m.Time, mp.Field("time"))
		visitQuantity(w, m.Pressure, mp.Field("pressure"))
		w.pop()
	}
}

func (w *walker) illumination(il *reaction.IlluminationConditions, path reaction.Path) {
	if il == nil || !w.enter(path, il) {
		return
	}
	w.push()
	defer w.pop()

	visitQuantity(w, il.PeakWavelength, path.Field("peak_wavelength"))
	visitQuantity(w, il.DistanceToVessel, path.Field("distance_to_vessel"))
}

func (w *walker) electrochemistry(e *reaction.ElectrochemistryConditions, path reaction.Path) {
	if e == nil || !w.enter(path, e) {
		return
	}
	w.push()
	defer w.pop()

	visitQuantity(w, e.Current, path.Field("current"))
	visitQuantity(w, e.Voltage, path.Field("voltage"))
	visitQuantity(w, e.ElectrodeSeparation, path.Field("electrode_separation"))
	for i, m := range e.Measurements {
		mp := path.Field("measurements").Index(i)
		if m == nil || !w.enter(mp, m) {
			continue
		}
		w.push()
		visitQuantity(w, m.Time, mp.Field("time"))
		visitQuantity(w, m.Current, mp.Field("current"))
		visitQuantity(w, m.Voltage, mp.Field("voltage"))
		w.pop()
	}
}

func (w *walker) flow(f *reaction.FlowConditions, path reaction.Path) {
	if f == nil || !w.enter(path, f) {
		return
	}
	w.push()
	defer w.pop()

	if t := f.Tubing; t != nil {
		tp := path.Field("tubing")
		if w.enter(tp, t) {
			w.push()
			visitQuantity(w, t.Diameter, tp.Field("diameter"))
			w.pop()
		}
	}
}

func (w *walker) observation(o *reaction.ReactionObservation, path reaction.Path) {
	if o == nil || !w.enter(path, o) {
		return
	}
	w.push()
	defer w.pop()

	visitQuantity(w, o.Time, path.Field("time"))
	visitLeaf(w, o.Image, path.Field("image"))
}

func (w *walker) workup(wu *reaction.ReactionWorkup, path reaction.Path) {
	if wu == nil || !w.enter(path, wu) {
		return
	}
	w.push()
	defer w.pop()

	visitQuantity(w, wu.Duration, path.Field("duration"))
	for i, c := range wu.Components {
		w.compound(c, path.Field("components").Index(i))
	}
	w.temperatureConditions(wu.Temperature, path.Field("temperature"))
	visitLeaf(w, wu.Stirring, path.Field("stirring"))
}

func (w *walker) outcome(o *reaction.ReactionOutcome, path reaction.Path) {
	if o == nil || !w.enter(path, o) {
		return
	}
	w.push()
	defer w.pop()

	visitQuantity(w, o.ReactionTime, path.Field("reaction_time"))
	visitLeaf(w, o.Conversion, path.Field("conversion"))
	for i, p := range o.Products {
		w.product(p, path.Field("products").Index(i))
	}
	for _, key := range reaction.SortedKeys(o.Analyses) {
		w.analysis(o.Analyses[key], path.Field("analyses").Key(key))
	}
}

func (w *walker) product(p *reaction.ReactionProduct, path reaction.Path) {
	if p == nil || !w.enter(path, p) {
		return
	}
	w.push()
	defer w.pop()

	w.compound(p.Compound, path.Field("compound"))
	visitLeaf(w, p.CompoundYield, path.Field("compound_yield"))
	visitLeaf(w, p.Purity, path.Field("purity"))
	visitLeaf(w, p.Selectivity, path.Field("selectivity"))
}

func (w *walker) analysis(a *reaction.ReactionAnalysis, path reaction.Path) {
	if a == nil || !w.enter(path, a) {
		return
	}
	w.push()
	defer w.pop()

	for _, key := range reaction.SortedKeys(a.Data) {
		visitLeaf(w, a.Data[key], path.Field("data").Key(key))
	}
	visitLeaf(w, a.InstrumentLastCalibrated, path.Field("instrument_last_calibrated"))
}

func (w *walker) provenance(p *reaction.ReactionProvenance, path reaction.Path) {
	if p == nil || !w.enter(path, p) {
		return
	}
	w.push()
	defer w.pop()

	visitLeaf(w, p.Experimenter, path.Field("experimenter"))
	visitLeaf(w, p.ExperimentStart, path.Field("experiment_start"))
	w.recordEvent(p.RecordCreated, path.Field("record_created"))
	for i, ev := range p.RecordModified {
		w.recordEvent(ev, path.Field("record_modified").Index(i))
	}
}

func (w *walker) recordEvent(ev *reaction.RecordEvent, path reaction.Path) {
	if ev == nil || !w.enter(path, ev) {
		return
	}
	w.push()
	defer w.pop()

	visitLeaf(w, ev.Time, path.Field("time"))
	visitLeaf(w, ev.Person, path.Field("person"))
}
