package codec

import (
	"fmt"
	"strings"

	"github.com/platinummonkey/ordcheck/pkg/reaction"
	"github.com/platinummonkey/ordcheck/pkg/units"
)

// decoder converts wire messages into the record model and collects non-fatal issues
type decoder struct {
	issues Issues
}

func (d *decoder) addIssue(code IssueCode, path reaction.Path, format string, args ...any) {
	d.issues = append(d.issues, Issue{Code: code, Path: path, Message: fmt.Sprintf(format, args...)})
}

// oneof records an ambiguity when more than one branch name is set
func (d *decoder) oneof(path reaction.Path, group string, set []string) {
	if len(set) > 1 {
		d.addIssue(IssueAmbiguousOneof, path, "oneof %s has %d branches populated (%s); keeping %s",
			group, len(set), strings.Join(set, ", "), set[0])
	}
}

func decodeEnum[E reaction.Enum](d *decoder, raw Enum, path reaction.Path) E {
	if raw == "" {
		return 0
	}
	v, ok := reaction.ParseEnum[E](string(raw))
	if !ok {
		var zero E
		d.addIssue(IssueUnknownEnum, path, "unknown enum value %q (expected one of %s)",
			raw, strings.Join(zero.Names()[1:], ", "))
		return 0
	}
	return v
}

func decodeChoice[E reaction.CustomEnum](d *decoder, raw Enum, details string, path reaction.Path) reaction.Choice[E] {
	return reaction.NewChoice(decodeEnum[E](d, raw, path), details)
}

type unitEnum interface {
	units.Unit
	Names() []string
}

func decodeQuantity[U unitEnum](d *decoder, w *Quantity, path reaction.Path) *units.Quantity[U] {
	if w == nil {
		return nil
	}
	return &units.Quantity[U]{
		Value:     float64(w.Value),
		Precision: float64(w.Precision),
		Units:     decodeEnum[U](d, w.Units, path.Field("units")),
	}
}

func decodePercentage(w *Percentage) *reaction.Percentage {
	if w == nil {
		return nil
	}
	return &reaction.Percentage{Value: float64(w.Value), Precision: float64(w.Precision)}
}

func decodeFloatPtr(f *Float) *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}

func decodeSlice[W any, M any](in []W, path reaction.Path, fn func(W, reaction.Path) M) []M {
	if in == nil {
		return nil
	}
	out := make([]M, len(in))
	for i, w := range in {
		out[i] = fn(w, path.Index(i))
	}
	return out
}

func decodeMap[W any, M any](in map[string]W, path reaction.Path, fn func(W, reaction.Path) M) map[string]M {
	if in == nil {
		return nil
	}
	out := make(map[string]M, len(in))
	for _, k := range reaction.SortedKeys(in) {
		out[k] = fn(in[k], path.Key(k))
	}
	return out
}

func (d *decoder) reaction(w *Reaction) *reaction.Reaction {
	root := reaction.Root()
	return &reaction.Reaction{
		Identifiers:  decodeSlice(w.Identifiers, root.Field("identifiers"), d.reactionIdentifier),
		Inputs:       decodeMap(w.Inputs, root.Field("inputs"), d.reactionInput),
		Setup:        d.setup(w.Setup, root.Field("setup")),
		Conditions:   d.conditions(w.Conditions, root.Field("conditions")),
		Notes:        decodeNotes(w.Notes),
		Observations: decodeSlice(w.Observations, root.Field("observations"), d.observation),
		Workups:      decodeSlice(w.Workups, root.Field("workups"), d.workup),
		Outcomes:     decodeSlice(w.Outcomes, root.Field("outcomes"), d.outcome),
		Provenance:   decodeProvenance(w.Provenance),
		ReactionID:   w.ReactionID,
	}
}

func (d *decoder) identifierValue(value *string, bytesValue []byte, path reaction.Path) reaction.IdentifierValue {
	var set []string
	var out reaction.IdentifierValue
	if value != nil {
		set = append(set, "value")
		out = reaction.StringValue(*value)
	}
	if bytesValue != nil {
		set = append(set, "bytes_value")
		if out == nil {
			out = reaction.BytesValue(bytesValue)
		}
	}
	d.oneof(path, "kind", set)
	return out
}

func (d *decoder) reactionIdentifier(w *ReactionIdentifier, path reaction.Path) *reaction.ReactionIdentifier {
	if w == nil {
		return nil
	}
	return &reaction.ReactionIdentifier{
		Type:     decodeChoice[reaction.ReactionIdentifierType](d, w.Type, w.Details, path.Field("type")),
		Value:    d.identifierValue(w.Value, w.BytesValue, path),
		IsMapped: w.IsMapped,
	}
}

func (d *decoder) reactionInput(w *ReactionInput, path reaction.Path) *reaction.ReactionInput {
	if w == nil {
		return nil
	}
	in := &reaction.ReactionInput{
		Components:          decodeSlice(w.Components, path.Field("components"), d.compound),
		AdditionOrder:       w.AdditionOrder,
		AdditionTime:        decodeQuantity[units.TimeUnit](d, w.AdditionTime, path.Field("addition_time")),
		AdditionDuration:    decodeQuantity[units.TimeUnit](d, w.AdditionDuration, path.Field("addition_duration")),
		FlowRate:            decodeQuantity[units.FlowRateUnit](d, w.FlowRate, path.Field("flow_rate")),
		AdditionTemperature: decodeQuantity[units.TemperatureUnit](d, w.AdditionTemperature, path.Field("addition_temperature")),
	}
	if w.AdditionSpeed != nil {
		in.AdditionSpeed = &reaction.AdditionSpeed{
			Type: decodeChoice[reaction.AdditionSpeedType](d, w.AdditionSpeed.Type, w.AdditionSpeed.Details, path.Field("addition_speed").Field("type")),
		}
	}
	if w.AdditionDevice != nil {
		in.AdditionDevice = &reaction.AdditionDevice{
			Type: decodeChoice[reaction.AdditionDeviceType](d, w.AdditionDevice.Type, w.AdditionDevice.Details, path.Field("addition_device").Field("type")),
		}
	}
	return in
}

func (d *decoder) compound(w *Compound, path reaction.Path) *reaction.Compound {
	if w == nil {
		return nil
	}
	c := &reaction.Compound{
		Identifiers:  decodeSlice(w.Identifiers, path.Field("identifiers"), d.compoundIdentifier),
		ReactionRole: decodeEnum[reaction.ReactionRole](d, w.ReactionRole, path.Field("reaction_role")),
		IsLimiting:   w.IsLimiting,
		Preparations: decodeSlice(w.Preparations, path.Field("preparations"), d.compoundPreparation),
		Features:     decodeSlice(w.Features, path.Field("features"), d.compoundFeature),
		VendorSource: w.VendorSource,
		VendorLot:    w.VendorLot,
		VendorID:     w.VendorID,
	}

	var set []string
	if w.Mass != nil {
		set = append(set, "mass")
		c.Amount = &reaction.MassAmount{Mass: *decodeQuantity[units.MassUnit](d, w.Mass, path.Field("mass"))}
	}
	if w.Moles != nil {
		set = append(set, "moles")
		if c.Amount == nil {
			c.Amount = &reaction.MolesAmount{Moles: *decodeQuantity[units.MolesUnit](d, w.Moles, path.Field("moles"))}
		}
	}
	if w.Volume != nil {
		set = append(set, "volume")
		if c.Amount == nil {
			c.Amount = &reaction.VolumeAmount{
				Volume:          *decodeQuantity[units.VolumeUnit](d, w.Volume, path.Field("volume")),
				IncludesSolutes: w.VolumeIncludesSolutes,
			}
		}
	}
	d.oneof(path.Field("amount"), "amount", set)
	return c
}

func (d *decoder) compoundIdentifier(w *CompoundIdentifier, path reaction.Path) *reaction.CompoundIdentifier {
	if w == nil {
		return nil
	}
	return &reaction.CompoundIdentifier{
		Type:  decodeChoice[reaction.CompoundIdentifierType](d, w.Type, w.Details, path.Field("type")),
		Value: d.identifierValue(w.Value, w.BytesValue, path),
	}
}

func (d *decoder) compoundPreparation(w *CompoundPreparation, path reaction.Path) *reaction.CompoundPreparation {
	if w == nil {
		return nil
	}
	return &reaction.CompoundPreparation{
		Type:       decodeChoice[reaction.CompoundPreparationType](d, w.Type, w.Details, path.Field("type")),
		ReactionID: w.ReactionID,
	}
}

func (d *decoder) compoundFeature(w *CompoundFeature, path reaction.Path) *reaction.CompoundFeature {
	if w == nil {
		return nil
	}
	f := &reaction.CompoundFeature{Name: w.Name, HowComputed: w.HowComputed}
	var set []string
	if w.StringValue != nil {
		set = append(set, "string_value")
		f.Value = reaction.FeatureString(*w.StringValue)
	}
	if w.FloatValue != nil {
		set = append(set, "float_value")
		if f.Value == nil {
			f.Value = reaction.FeatureFloat(*w.FloatValue)
		}
	}
	d.oneof(path, "kind", set)
	return f
}

func (d *decoder) data(w *Data, path reaction.Path) *reaction.Data {
	if w == nil {
		return nil
	}
	out := &reaction.Data{Description: w.Description, Format: w.Format}
	var set []string
	keep := func(name string, v reaction.DataValue) {
		set = append(set, name)
		if out.Value == nil {
			out.Value = v
		}
	}
	if w.FloatValue != nil {
		keep("float_value", reaction.DataFloat(*w.FloatValue))
	}
	if w.IntegerValue != nil {
		keep("integer_value", reaction.DataInteger(*w.IntegerValue))
	}
	if w.BytesValue != nil {
		keep("bytes_value", reaction.DataBytes(w.BytesValue))
	}
	if w.StringValue != nil {
		keep("string_value", reaction.DataString(*w.StringValue))
	}
	if w.URL != nil {
		keep("url", reaction.DataURL(*w.URL))
	}
	d.oneof(path, "kind", set)
	return out
}

func (d *decoder) setup(w *ReactionSetup, path reaction.Path) *reaction.ReactionSetup {
	if w == nil {
		return nil
	}
	s := &reaction.ReactionSetup{
		IsAutomated:        w.IsAutomated,
		AutomationPlatform: w.AutomationPlatform,
		AutomationCode:     decodeMap(w.AutomationCode, path.Field("automation_code"), d.data),
	}
	if v := w.Vessel; v != nil {
		vp := path.Field("vessel")
		s.Vessel = &reaction.Vessel{
			Type:        decodeChoice[reaction.VesselType](d, v.Type, v.Details, vp.Field("type")),
			Material:    decodeChoice[reaction.VesselMaterialType](d, v.Material, v.MaterialDetails, vp.Field("material")),
			Preparation: decodeChoice[reaction.VesselPreparationType](d, v.Preparation, v.PreparationDetails, vp.Field("preparation")),
			VesselID:    v.VesselID,
			Volume:      decodeQuantity[units.VolumeUnit](d, v.Volume, vp.Field("volume")),
		}
	}
	return s
}

func (d *decoder) conditions(w *ReactionConditions, path reaction.Path) *reaction.ReactionConditions {
	if w == nil {
		return nil
	}
	c := &reaction.ReactionConditions{
		Temperature:          d.temperatureConditions(w.Temperature, path.Field("temperature")),
		Pressure:             d.pressureConditions(w.Pressure, path.Field("pressure")),
		Stirring:             d.stirring(w.Stirring, path.Field("stirring")),
		Electrochemistry:     d.electrochemistry(w.Electrochemistry, path.Field("electrochemistry")),
		Reflux:               w.Reflux,
		PH:                   decodeFloatPtr(w.PH),
		ConditionsAreDynamic: w.ConditionsAreDynamic,
		Details:              w.Details,
	}
	if il := w.Illumination; il != nil {
		ip := path.Field("illumination")
		c.Illumination = &reaction.IlluminationConditions{
			Type:             decodeChoice[reaction.IlluminationType](d, il.Type, il.Details, ip.Field("type")),
			PeakWavelength:   decodeQuantity[units.WavelengthUnit](d, il.PeakWavelength, ip.Field("peak_wavelength")),
			Color:            il.Color,
			DistanceToVessel: decodeQuantity[units.LengthUnit](d, il.DistanceToVessel, ip.Field("distance_to_vessel")),
		}
	}
	if f := w.Flow; f != nil {
		fp := path.Field("flow")
		c.Flow = &reaction.FlowConditions{
			Type:     decodeChoice[reaction.FlowType](d, f.Type, f.Details, fp.Field("type")),
			PumpType: f.PumpType,
		}
		if t := f.Tubing; t != nil {
			tp := fp.Field("tubing")
			c.Flow.Tubing = &reaction.Tubing{
				Type:     decodeChoice[reaction.TubingMaterialType](d, t.Type, t.Details, tp.Field("type")),
				Diameter: decodeQuantity[units.LengthUnit](d, t.Diameter, tp.Field("diameter")),
			}
		}
	}
	return c
}

func (d *decoder) temperatureConditions(w *TemperatureConditions, path reaction.Path) *reaction.TemperatureConditions {
	if w == nil {
		return nil
	}
	return &reaction.TemperatureConditions{
		Control:  decodeChoice[reaction.TemperatureControlType](d, w.Type, w.Details, path.Field("type")),
		Setpoint: decodeQuantity[units.TemperatureUnit](d, w.Setpoint, path.Field("setpoint")),
		Measurements: decodeSlice(w.Measurements, path.Field("measurements"), func(m *TemperatureMeasurement, p reaction.Path) *reaction.TemperatureMeasurement {
			if m == nil {
				return nil
			}
			return &reaction.TemperatureMeasurement{
				Type:        decodeChoice[reaction.TemperatureMeasurementType](d, m.Type, m.Details, p.Field("type")),
				Time:        decodeQuantity[units.TimeUnit](d, m.Time, p.Field("time")),
				Temperature: decodeQuantity[units.TemperatureUnit](d, m.Temperature, p.Field("temperature")),
			}
		}),
	}
}

func (d *decoder) pressureConditions(w *PressureConditions, path reaction.Path) *reaction.PressureConditions {
	if w == nil {
		return nil
	}
	return &reaction.PressureConditions{
		Control:    decodeChoice[reaction.PressureControlType](d, w.Type, w.Details, path.Field("type")),
		Setpoint:   decodeQuantity[units.PressureUnit](d, w.Setpoint, path.Field("setpoint")),
		Atmosphere: decodeChoice[reaction.AtmosphereType](d, w.Atmosphere, w.AtmosphereDetails, path.Field("atmosphere")),
		Measurements: decodeSlice(w.Measurements, path.Field("measurements"), func(m *PressureMeasurement, p reaction.Path) *reaction.PressureMeasurement {
			if m == nil {
				return nil
			}
			return &reaction.PressureMeasurement{
				Type:     decodeChoice[reaction.PressureMeasurementType](d, m.Type, m.Details, p.Field("type")),
				Time:     decodeQuantity[units.TimeUnit](d, m.Time, p.Field("time")),
				Pressure: decodeQuantity[units.PressureUnit](d, m.Pressure, p.Field("pressure")),
			}
		}),
	}
}

func (d *decoder) stirring(w *StirringConditions, path reaction.Path) *reaction.StirringConditions {
	if w == nil {
		return nil
	}
	return &reaction.StirringConditions{
		Method: decodeChoice[reaction.StirringMethodType](d, w.Type, w.Details, path.Field("type")),
		RPM:    float64(w.RPM),
	}
}

func (d *decoder) electrochemistry(w *ElectrochemistryConditions, path reaction.Path) *reaction.ElectrochemistryConditions {
	if w == nil {
		return nil
	}
	return &reaction.ElectrochemistryConditions{
		Type:                decodeChoice[reaction.ElectrochemistryType](d, w.Type, w.Details, path.Field("type")),
		Current:             decodeQuantity[units.CurrentUnit](d, w.Current, path.Field("current")),
		Voltage:             decodeQuantity[units.VoltageUnit](d, w.Voltage, path.Field("voltage")),
		AnodeMaterial:       w.AnodeMaterial,
		CathodeMaterial:     w.CathodeMaterial,
		ElectrodeSeparation: decodeQuantity[units.LengthUnit](d, w.ElectrodeSeparation, path.Field("electrode_separation")),
		Measurements: decodeSlice(w.Measurements, path.Field("measurements"), func(m *ElectrochemistryMeasurement, p reaction.Path) *reaction.ElectrochemistryMeasurement {
			if m == nil {
				return nil
			}
			return &reaction.ElectrochemistryMeasurement{
				Time:    decodeQuantity[units.TimeUnit](d, m.Time, p.Field("time")),
				Current: decodeQuantity[units.CurrentUnit](d, m.Current, p.Field("current")),
				Voltage: decodeQuantity[units.VoltageUnit](d, m.Voltage, p.Field("voltage")),
			}
		}),
	}
}

func decodeNotes(w *ReactionNotes) *reaction.ReactionNotes {
	if w == nil {
		return nil
	}
	return &reaction.ReactionNotes{
		IsHeterogeneous:       w.IsHeterogeneous,
		FormsPrecipitate:      w.FormsPrecipitate,
		IsExothermic:          w.IsExothermic,
		OffgasEvolved:         w.OffgasEvolved,
		IsSensitiveToMoisture: w.IsSensitiveToMoisture,
		IsSensitiveToOxygen:   w.IsSensitiveToOxygen,
		IsSensitiveToLight:    w.IsSensitiveToLight,
		SafetyNotes:           w.SafetyNotes,
		ProcedureDetails:      w.ProcedureDetails,
	}
}

func (d *decoder) observation(w *ReactionObservation, path reaction.Path) *reaction.ReactionObservation {
	if w == nil {
		return nil
	}
	return &reaction.ReactionObservation{
		Time:    decodeQuantity[units.TimeUnit](d, w.Time, path.Field("time")),
		Comment: w.Comment,
		Image:   d.data(w.Image, path.Field("image")),
	}
}

func (d *decoder) workup(w *ReactionWorkup, path reaction.Path) *reaction.ReactionWorkup {
	if w == nil {
		return nil
	}
	return &reaction.ReactionWorkup{
		Type:        decodeChoice[reaction.WorkupType](d, w.Type, w.Details, path.Field("type")),
		Duration:    decodeQuantity[units.TimeUnit](d, w.Duration, path.Field("duration")),
		Components:  decodeSlice(w.Components, path.Field("components"), d.compound),
		Temperature: d.temperatureConditions(w.Temperature, path.Field("temperature")),
		KeepPhase:   w.KeepPhase,
		Stirring:    d.stirring(w.Stirring, path.Field("stirring")),
		TargetPH:    decodeFloatPtr(w.TargetPH),
		IsAutomated: w.IsAutomated,
	}
}

func (d *decoder) outcome(w *ReactionOutcome, path reaction.Path) *reaction.ReactionOutcome {
	if w == nil {
		return nil
	}
	return &reaction.ReactionOutcome{
		ReactionTime: decodeQuantity[units.TimeUnit](d, w.ReactionTime, path.Field("reaction_time")),
		Conversion:   decodePercentage(w.Conversion),
		Products:     decodeSlice(w.Products, path.Field("products"), d.product),
		Analyses:     decodeMap(w.Analyses, path.Field("analyses"), d.analysis),
	}
}

func (d *decoder) product(w *ReactionProduct, path reaction.Path) *reaction.ReactionProduct {
	if w == nil {
		return nil
	}
	p := &reaction.ReactionProduct{
		Compound:            d.compound(w.Compound, path.Field("compound")),
		IsDesiredProduct:    w.IsDesiredProduct,
		CompoundYield:       decodePercentage(w.CompoundYield),
		Purity:              decodePercentage(w.Purity),
		IsolatedColor:       w.IsolatedColor,
		Texture:             decodeChoice[reaction.TextureType](d, w.Texture, w.TextureDetails, path.Field("texture")),
		AnalysisIdentity:    w.AnalysisIdentity,
		AnalysisYield:       w.AnalysisYield,
		AnalysisPurity:      w.AnalysisPurity,
		AnalysisSelectivity: w.AnalysisSelectivity,
	}
	if s := w.Selectivity; s != nil {
		p.Selectivity = &reaction.Selectivity{
			Type:      decodeChoice[reaction.SelectivityType](d, s.Type, s.Details, path.Field("selectivity").Field("type")),
			Value:     float64(s.Value),
			Precision: float64(s.Precision),
		}
	}
	return p
}

func (d *decoder) analysis(w *ReactionAnalysis, path reaction.Path) *reaction.ReactionAnalysis {
	if w == nil {
		return nil
	}
	a := &reaction.ReactionAnalysis{
		Type:                   decodeChoice[reaction.AnalysisType](d, w.Type, w.Details, path.Field("type")),
		ChmoID:                 w.ChmoID,
		IsOfIsolatedSpecies:    w.IsOfIsolatedSpecies,
		Data:                   decodeMap(w.Data, path.Field("data"), d.data),
		InstrumentManufacturer: w.InstrumentManufacturer,
		UsesInternalStandard:   w.UsesInternalStandard,
		UsesAuthenticStandard:  w.UsesAuthenticStandard,
	}
	if w.InstrumentLastCalibrated != nil {
		a.InstrumentLastCalibrated = &reaction.DateTime{Value: w.InstrumentLastCalibrated.Value}
	}
	return a
}

func decodeDateTime(w *DateTime) *reaction.DateTime {
	if w == nil {
		return nil
	}
	return &reaction.DateTime{Value: w.Value}
}

func decodePerson(w *Person) *reaction.Person {
	if w == nil {
		return nil
	}
	p := reaction.Person(*w)
	return &p
}

func decodeRecordEvent(w *RecordEvent) *reaction.RecordEvent {
	if w == nil {
		return nil
	}
	return &reaction.RecordEvent{Time: decodeDateTime(w.Time), Person: decodePerson(w.Person), Details: w.Details}
}

func decodeProvenance(w *ReactionProvenance) *reaction.ReactionProvenance {
	if w == nil {
		return nil
	}
	p := &reaction.ReactionProvenance{
		Experimenter:    decodePerson(w.Experimenter),
		City:            w.City,
		ExperimentStart: decodeDateTime(w.ExperimentStart),
		DOI:             w.DOI,
		Patent:          w.Patent,
		PublicationURL:  w.PublicationURL,
		RecordCreated:   decodeRecordEvent(w.RecordCreated),
	}
	for _, ev := range w.RecordModified {
		p.RecordModified = append(p.RecordModified, decodeRecordEvent(ev))
	}
	return p
}
