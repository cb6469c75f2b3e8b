package codec

import (
	"github.com/platinummonkey/ordcheck/pkg/reaction"
	"github.com/platinummonkey/ordcheck/pkg/units"
)

func encodeEnum[E reaction.Enum](e E) Enum {
	if e == 0 {
		return ""
	}
	return Enum(e.String())
}

func encodeQuantity[U unitEnum](q *units.Quantity[U]) *Quantity {
	if q == nil {
		return nil
	}
	return &Quantity{Value: Float(q.Value), Precision: Float(q.Precision), Units: encodeEnum(q.Units)}
}

func encodePercentage(p *reaction.Percentage) *Percentage {
	if p == nil {
		return nil
	}
	return &Percentage{Value: Float(p.Value), Precision: Float(p.Precision)}
}

func encodeFloatPtr(f *float64) *Float {
	if f == nil {
		return nil
	}
	v := Float(*f)
	return &v
}

func encodeSlice[M any, W any](in []M, fn func(M) W) []W {
	if in == nil {
		return nil
	}
	out := make([]W, len(in))
	for i, m := range in {
		out[i] = fn(m)
	}
	return out
}

func encodeMap[M any, W any](in map[string]M, fn func(M) W) map[string]W {
	if in == nil {
		return nil
	}
	out := make(map[string]W, len(in))
	for k, m := range in {
		out[k] = fn(m)
	}
	return out
}

// ToWire converts a record into its wire form
func ToWire(r *reaction.Reaction) *Reaction {
	if r == nil {
		return nil
	}
	return &Reaction{
		Identifiers:  encodeSlice(r.Identifiers, encodeReactionIdentifier),
		Inputs:       encodeMap(r.Inputs, encodeReactionInput),
		Setup:        encodeSetup(r.Setup),
		Conditions:   encodeConditions(r.Conditions),
		Notes:        encodeNotes(r.Notes),
		Observations: encodeSlice(r.Observations, encodeObservation),
		Workups:      encodeSlice(r.Workups, encodeWorkup),
		Outcomes:     encodeSlice(r.Outcomes, encodeOutcome),
		Provenance:   encodeProvenance(r.Provenance),
		ReactionID:   r.ReactionID,
	}
}

func encodeIdentifierValue(v reaction.IdentifierValue) (*string, []byte) {
	switch v := v.(type) {
	case reaction.StringValue:
		s := string(v)
		return &s, nil
	case reaction.BytesValue:
		return nil, []byte(v)
	default:
		return nil, nil
	}
}

func encodeReactionIdentifier(m *reaction.ReactionIdentifier) *ReactionIdentifier {
	if m == nil {
		return nil
	}
	value, bytesValue := encodeIdentifierValue(m.Value)
	return &ReactionIdentifier{
		Type:       encodeEnum(m.Type.Value()),
		Details:    m.Type.Details(),
		Value:      value,
		BytesValue: bytesValue,
		IsMapped:   m.IsMapped,
	}
}

func encodeReactionInput(m *reaction.ReactionInput) *ReactionInput {
	if m == nil {
		return nil
	}
	w := &ReactionInput{
		Components:          encodeSlice(m.Components, encodeCompound),
		AdditionOrder:       m.AdditionOrder,
		AdditionTime:        encodeQuantity(m.AdditionTime),
		AdditionDuration:    encodeQuantity(m.AdditionDuration),
		FlowRate:            encodeQuantity(m.FlowRate),
		AdditionTemperature: encodeQuantity(m.AdditionTemperature),
	}
	if m.AdditionSpeed != nil {
		w.AdditionSpeed = &TypeAndDetails{Type: encodeEnum(m.AdditionSpeed.Type.Value()), Details: m.AdditionSpeed.Type.Details()}
	}
	if m.AdditionDevice != nil {
		w.AdditionDevice = &TypeAndDetails{Type: encodeEnum(m.AdditionDevice.Type.Value()), Details: m.AdditionDevice.Type.Details()}
	}
	return w
}

func encodeCompound(m *reaction.Compound) *Compound {
	if m == nil {
		return nil
	}
	w := &Compound{
		Identifiers:  encodeSlice(m.Identifiers, encodeCompoundIdentifier),
		ReactionRole: encodeEnum(m.ReactionRole),
		IsLimiting:   m.IsLimiting,
		Preparations: encodeSlice(m.Preparations, func(p *reaction.CompoundPreparation) *CompoundPreparation {
			if p == nil {
				return nil
			}
			return &CompoundPreparation{Type: encodeEnum(p.Type.Value()), Details: p.Type.Details(), ReactionID: p.ReactionID}
		}),
		Features:     encodeSlice(m.Features, encodeFeature),
		VendorSource: m.VendorSource,
		VendorLot:    m.VendorLot,
		VendorID:     m.VendorID,
	}
	switch a := m.Amount.(type) {
	case *reaction.MassAmount:
		w.Mass = encodeQuantity(&a.Mass)
	case *reaction.MolesAmount:
		w.Moles = encodeQuantity(&a.Moles)
	case *reaction.VolumeAmount:
		w.Volume = encodeQuantity(&a.Volume)
		w.VolumeIncludesSolutes = a.IncludesSolutes
	}
	return w
}

func encodeCompoundIdentifier(m *reaction.CompoundIdentifier) *CompoundIdentifier {
	if m == nil {
		return nil
	}
	value, bytesValue := encodeIdentifierValue(m.Value)
	return &CompoundIdentifier{
		Type:       encodeEnum(m.Type.Value()),
		Details:    m.Type.Details(),
		Value:      value,
		BytesValue: bytesValue,
	}
}

func encodeFeature(m *reaction.CompoundFeature) *CompoundFeature {
	if m == nil {
		return nil
	}
	w := &CompoundFeature{Name: m.Name, HowComputed: m.HowComputed}
	switch v := m.Value.(type) {
	case reaction.FeatureString:
		s := string(v)
		w.StringValue = &s
	case reaction.FeatureFloat:
		f := Float(v)
		w.FloatValue = &f
	}
	return w
}

func encodeData(m *reaction.Data) *Data {
	if m == nil {
		return nil
	}
	w := &Data{Description: m.Description, Format: m.Format}
	switch v := m.Value.(type) {
	case reaction.DataFloat:
		f := Float(v)
		w.FloatValue = &f
	case reaction.DataInteger:
		i := Int64(v)
		w.IntegerValue = &i
	case reaction.DataBytes:
		w.BytesValue = []byte(v)
	case reaction.DataString:
		s := string(v)
		w.StringValue = &s
	case reaction.DataURL:
		s := string(v)
		w.URL = &s
	}
	return w
}

func encodeSetup(m *reaction.ReactionSetup) *ReactionSetup {
	if m == nil {
		return nil
	}
	w := &ReactionSetup{
		IsAutomated:        m.IsAutomated,
		AutomationPlatform: m.AutomationPlatform,
		AutomationCode:     encodeMap(m.AutomationCode, encodeData),
	}
	if v := m.Vessel; v != nil {
		w.Vessel = &Vessel{
			Type:               encodeEnum(v.Type.Value()),
			Details:            v.Type.Details(),
			Material:           encodeEnum(v.Material.Value()),
			MaterialDetails:    v.Material.Details(),
			Preparation:        encodeEnum(v.Preparation.Value()),
			PreparationDetails: v.Preparation.Details(),
			VesselID:           v.VesselID,
			Volume:             encodeQuantity(v.Volume),
		}
	}
	return w
}

func encodeConditions(m *reaction.ReactionConditions) *ReactionConditions {
	if m == nil {
		return nil
	}
	w := &ReactionConditions{
		Temperature:          encodeTemperatureConditions(m.Temperature),
		Stirring:             encodeStirring(m.Stirring),
		Reflux:               m.Reflux,
		PH:                   encodeFloatPtr(m.PH),
		ConditionsAreDynamic: m.ConditionsAreDynamic,
		Details:              m.Details,
	}
	if p := m.Pressure; p != nil {
		w.Pressure = &PressureConditions{
			Type:              encodeEnum(p.Control.Value()),
			Details:           p.Control.Details(),
			Setpoint:          encodeQuantity(p.Setpoint),
			Atmosphere:        encodeEnum(p.Atmosphere.Value()),
			AtmosphereDetails: p.Atmosphere.Details(),
			Measurements: encodeSlice(p.Measurements, func(x *reaction.PressureMeasurement) *PressureMeasurement {
				if x == nil {
					return nil
				}
				return &PressureMeasurement{Type: encodeEnum(x.Type.Value()), Details: x.Type.Details(), Time: encodeQuantity(x.Time), Pressure: encodeQuantity(x.Pressure)}
			}),
		}
	}
	if il := m.Illumination; il != nil {
		w.Illumination = &IlluminationConditions{
			Type:             encodeEnum(il.Type.Value()),
			Details:          il.Type.Details(),
			PeakWavelength:   encodeQuantity(il.PeakWavelength),
			Color:            il.Color,
			DistanceToVessel: encodeQuantity(il.DistanceToVessel),
		}
	}
	if e := m.Electrochemistry; e != nil {
		w.Electrochemistry = &ElectrochemistryConditions{
			Type:                encodeEnum(e.Type.Value()),
			Details:             e.Type.Details(),
			Current:             encodeQuantity(e.Current),
			Voltage:             encodeQuantity(e.Voltage),
			AnodeMaterial:       e.AnodeMaterial,
			CathodeMaterial:     e.CathodeMaterial,
			ElectrodeSeparation: encodeQuantity(e.ElectrodeSeparation),
			Measurements: encodeSlice(e.Measurements, func(x *reaction.ElectrochemistryMeasurement) *ElectrochemistryMeasurement {
				if x == nil {
					return nil
				}
				return &ElectrochemistryMeasurement{Time: encodeQuantity(x.Time), Current: encodeQuantity(x.Current), Voltage: encodeQuantity(x.Voltage)}
			}),
		}
	}
	if f := m.Flow; f != nil {
		w.Flow = &FlowConditions{Type: encodeEnum(f.Type.Value()), Details: f.Type.Details(), PumpType: f.PumpType}
		if t := f.Tubing; t != nil {
			w.Flow.Tubing = &Tubing{Type: encodeEnum(t.Type.Value()), Details: t.Type.Details(), Diameter: encodeQuantity(t.Diameter)}
		}
	}
	return w
}

func encodeTemperatureConditions(m *reaction.TemperatureConditions) *TemperatureConditions {
	if m == nil {
		return nil
	}
	return &TemperatureConditions{
		Type:     encodeEnum(m.Control.Value()),
		Details:  m.Control.Details(),
		Setpoint: encodeQuantity(m.Setpoint),
		Measurements: encodeSlice(m.Measurements, func(x *reaction.TemperatureMeasurement) *TemperatureMeasurement {
			if x == nil {
				return nil
			}
			return &TemperatureMeasurement{Type: encodeEnum(x.Type.Value()), Details: x.Type.Details(), Time: encodeQuantity(x.Time), Temperature: encodeQuantity(x.Temperature)}
		}),
	}
}

func encodeStirring(m *reaction.StirringConditions) *StirringConditions {
	if m == nil {
		return nil
	}
	return &StirringConditions{Type: encodeEnum(m.Method.Value()), Details: m.Method.Details(), RPM: Float(m.RPM)}
}

func encodeNotes(m *reaction.ReactionNotes) *ReactionNotes {
	if m == nil {
		return nil
	}
	w := ReactionNotes(*m)
	return &w
}

func encodeObservation(m *reaction.ReactionObservation) *ReactionObservation {
	if m == nil {
		return nil
	}
	return &ReactionObservation{Time: encodeQuantity(m.Time), Comment: m.Comment, Image: encodeData(m.Image)}
}

func encodeWorkup(m *reaction.ReactionWorkup) *ReactionWorkup {
	if m == nil {
		return nil
	}
	return &ReactionWorkup{
		Type:        encodeEnum(m.Type.Value()),
		Details:     m.Type.Details(),
		Duration:    encodeQuantity(m.Duration),
		Components:  encodeSlice(m.Components, encodeCompound),
		Temperature: encodeTemperatureConditions(m.Temperature),
		KeepPhase:   m.KeepPhase,
		Stirring:    encodeStirring(m.Stirring),
		TargetPH:    encodeFloatPtr(m.TargetPH),
		IsAutomated: m.IsAutomated,
	}
}

func encodeOutcome(m *reaction.ReactionOutcome) *ReactionOutcome {
	if m == nil {
		return nil
	}
	return &ReactionOutcome{
		ReactionTime: encodeQuantity(m.ReactionTime),
		Conversion:   encodePercentage(m.Conversion),
		Products:     encodeSlice(m.Products, encodeProduct),
		Analyses:     encodeMap(m.Analyses, encodeAnalysis),
	}
}

func encodeProduct(m *reaction.ReactionProduct) *ReactionProduct {
	if m == nil {
		return nil
	}
	w := &ReactionProduct{
		Compound:            encodeCompound(m.Compound),
		IsDesiredProduct:    m.IsDesiredProduct,
		CompoundYield:       encodePercentage(m.CompoundYield),
		Purity:              encodePercentage(m.Purity),
		IsolatedColor:       m.IsolatedColor,
		Texture:             encodeEnum(m.Texture.Value()),
		TextureDetails:      m.Texture.Details(),
		AnalysisIdentity:    m.AnalysisIdentity,
		AnalysisYield:       m.AnalysisYield,
		AnalysisPurity:      m.AnalysisPurity,
		AnalysisSelectivity: m.AnalysisSelectivity,
	}
	if s := m.Selectivity; s != nil {
		w.Selectivity = &Selectivity{Type: encodeEnum(s.Type.Value()), Details: s.Type.Details(), Value: Float(s.Value), Precision: Float(s.Precision)}
	}
	return w
}

func encodeAnalysis(m *reaction.ReactionAnalysis) *ReactionAnalysis {
	if m == nil {
		return nil
	}
	return &ReactionAnalysis{
		Type:                     encodeEnum(m.Type.Value()),
		Details:                  m.Type.Details(),
		ChmoID:                   m.ChmoID,
		IsOfIsolatedSpecies:      m.IsOfIsolatedSpecies,
		Data:                     encodeMap(m.Data, encodeData),
		InstrumentManufacturer:   m.InstrumentManufacturer,
		InstrumentLastCalibrated: encodeDateTime(m.InstrumentLastCalibrated),
		UsesInternalStandard:     m.UsesInternalStandard,
		UsesAuthenticStandard:    m.UsesAuthenticStandard,
	}
}

func encodeDateTime(m *reaction.DateTime) *DateTime {
	if m == nil {
		return nil
	}
	return &DateTime{Value: m.Value}
}

func encodePerson(m *reaction.Person) *Person {
	if m == nil {
		return nil
	}
	p := Person(*m)
	return &p
}

func encodeRecordEvent(m *reaction.RecordEvent) *RecordEvent {
	if m == nil {
		return nil
	}
	return &RecordEvent{Time: encodeDateTime(m.Time), Person: encodePerson(m.Person), Details: m.Details}
}

func encodeProvenance(m *reaction.ReactionProvenance) *ReactionProvenance {
	if m == nil {
		return nil
	}
	return &ReactionProvenance{
		Experimenter:    encodePerson(m.Experimenter),
		City:            m.City,
		ExperimentStart: encodeDateTime(m.ExperimentStart),
		DOI:             m.DOI,
		Patent:          m.Patent,
		PublicationURL:  m.PublicationURL,
		RecordCreated:   encodeRecordEvent(m.RecordCreated),
		RecordModified:  encodeSlice(m.RecordModified, encodeRecordEvent),
	}
}
