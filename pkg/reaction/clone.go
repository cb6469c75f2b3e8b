package reaction

// Clone returns a deep copy of the record. Mutating the copy never affects the original.
func (r *Reaction) Clone() *Reaction {
	if r == nil {
		return nil
	}
	out := &Reaction{
		Identifiers:  cloneSlice(r.Identifiers, (*ReactionIdentifier).Clone),
		Inputs:       cloneMap(r.Inputs, (*ReactionInput).Clone),
		Setup:        r.Setup.Clone(),
		Conditions:   r.Conditions.Clone(),
		Notes:        clonePtr(r.Notes),
		Observations: cloneSlice(r.Observations, (*ReactionObservation).Clone),
		Workups:      cloneSlice(r.Workups, (*ReactionWorkup).Clone),
		Outcomes:     cloneSlice(r.Outcomes, (*ReactionOutcome).Clone),
		Provenance:   r.Provenance.Clone(),
		ReactionID:   r.ReactionID,
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](in []T, clone func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}

func cloneMap[V any](in map[string]V, clone func(V) V) map[string]V {
	if in == nil {
		return nil
	}
	out := make(map[string]V, len(in))
	for k, v := range in {
		out[k] = clone(v)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneIdentifierValue(v IdentifierValue) IdentifierValue {
	if b, ok := v.(BytesValue); ok {
		return BytesValue(append([]byte(nil), b...))
	}
	return v
}

func (m *ReactionIdentifier) Clone() *ReactionIdentifier {
	if m == nil {
		return nil
	}
	out := *m
	out.Value = cloneIdentifierValue(m.Value)
	return &out
}

func (m *ReactionInput) Clone() *ReactionInput {
	if m == nil {
		return nil
	}
	return &ReactionInput{
		Components:          cloneSlice(m.Components, (*Compound).Clone),
		AdditionOrder:       m.AdditionOrder,
		AdditionTime:        clonePtr(m.AdditionTime),
		AdditionSpeed:       clonePtr(m.AdditionSpeed),
		AdditionDuration:    clonePtr(m.AdditionDuration),
		FlowRate:            clonePtr(m.FlowRate),
		AdditionDevice:      clonePtr(m.AdditionDevice),
		AdditionTemperature: clonePtr(m.AdditionTemperature),
	}
}

func (m *Compound) Clone() *Compound {
	if m == nil {
		return nil
	}
	out := *m
	out.Identifiers = cloneSlice(m.Identifiers, (*CompoundIdentifier).Clone)
	out.Amount = cloneAmount(m.Amount)
	out.Preparations = cloneSlice(m.Preparations, clonePtr[CompoundPreparation])
	out.Features = cloneSlice(m.Features, clonePtr[CompoundFeature])
	return &out
}

func cloneAmount(a Amount) Amount {
	switch a := a.(type) {
	case *MassAmount:
		return clonePtr(a)
	case *MolesAmount:
		return clonePtr(a)
	case *VolumeAmount:
		return clonePtr(a)
	default:
		return nil
	}
}

func (m *CompoundIdentifier) Clone() *CompoundIdentifier {
	if m == nil {
		return nil
	}
	out := *m
	out.Value = cloneIdentifierValue(m.Value)
	return &out
}

func (m *ReactionSetup) Clone() *ReactionSetup {
	if m == nil {
		return nil
	}
	out := *m
	if m.Vessel != nil {
		v := *m.Vessel
		v.Volume = clonePtr(m.Vessel.Volume)
		out.Vessel = &v
	}
	out.AutomationCode = cloneMap(m.AutomationCode, (*Data).Clone)
	return &out
}

func (m *ReactionConditions) Clone() *ReactionConditions {
	if m == nil {
		return nil
	}
	out := *m
	out.Temperature = m.Temperature.Clone()
	out.Pressure = m.Pressure.Clone()
	out.Stirring = clonePtr(m.Stirring)
	if m.Illumination != nil {
		il := *m.Illumination
		il.PeakWavelength = clonePtr(m.Illumination.PeakWavelength)
		il.DistanceToVessel = clonePtr(m.Illumination.DistanceToVessel)
		out.Illumination = &il
	}
	out.Electrochemistry = m.Electrochemistry.Clone()
	if m.Flow != nil {
		f := *m.Flow
		if m.Flow.Tubing != nil {
			t := *m.Flow.Tubing
			t.Diameter = clonePtr(m.Flow.Tubing.Diameter)
			f.Tubing = &t
		}
		out.Flow = &f
	}
	out.PH = clonePtr(m.PH)
	return &out
}

func (m *TemperatureConditions) Clone() *TemperatureConditions {
	if m == nil {
		return nil
	}
	return &TemperatureConditions{
		Control:  m.Control,
		Setpoint: clonePtr(m.Setpoint),
		Measurements: cloneSlice(m.Measurements, func(x *TemperatureMeasurement) *TemperatureMeasurement {
			if x == nil {
				return nil
			}
			return &TemperatureMeasurement{Type: x.Type, Time: clonePtr(x.Time), Temperature: clonePtr(x.Temperature)}
		}),
	}
}

func (m *PressureConditions) Clone() *PressureConditions {
	if m == nil {
		return nil
	}
	return &PressureConditions{
		Control:    m.Control,
		Setpoint:   clonePtr(m.Setpoint),
		Atmosphere: m.Atmosphere,
		Measurements: cloneSlice(m.Measurements, func(x *PressureMeasurement) *PressureMeasurement {
			if x == nil {
				return nil
			}
			return &PressureMeasurement{Type: x.Type, Time: clonePtr(x.Time), Pressure: clonePtr(x.Pressure)}
		}),
	}
}

func (m *ElectrochemistryConditions) Clone() *ElectrochemistryConditions {
	if m == nil {
		return nil
	}
	out := *m
	out.Current = clonePtr(m.Current)
	out.Voltage = clonePtr(m.Voltage)
	out.ElectrodeSeparation = clonePtr(m.ElectrodeSeparation)
	out.Measurements = cloneSlice(m.Measurements, func(x *ElectrochemistryMeasurement) *ElectrochemistryMeasurement {
		if x == nil {
			return nil
		}
		return &ElectrochemistryMeasurement{Time: clonePtr(x.Time), Current: clonePtr(x.Current), Voltage: clonePtr(x.Voltage)}
	})
	return &out
}

func (m *ReactionObservation) Clone() *ReactionObservation {
	if m == nil {
		return nil
	}
	return &ReactionObservation{Time: clonePtr(m.Time), Comment: m.Comment, Image: m.Image.Clone()}
}

func (m *ReactionWorkup) Clone() *ReactionWorkup {
	if m == nil {
		return nil
	}
	out := *m
	out.Duration = clonePtr(m.Duration)
	out.Components = cloneSlice(m.Components, (*Compound).Clone)
	out.Temperature = m.Temperature.Clone()
	out.Stirring = clonePtr(m.Stirring)
	out.TargetPH = clonePtr(m.TargetPH)
	return &out
}

func (m *ReactionOutcome) Clone() *ReactionOutcome {
	if m == nil {
		return nil
	}
	return &ReactionOutcome{
		ReactionTime: clonePtr(m.ReactionTime),
		Conversion:   clonePtr(m.Conversion),
		Products:     cloneSlice(m.Products, (*ReactionProduct).Clone),
		Analyses:     cloneMap(m.Analyses, (*ReactionAnalysis).Clone),
	}
}

func (m *ReactionProduct) Clone() *ReactionProduct {
	if m == nil {
		return nil
	}
	out := *m
	out.Compound = m.Compound.Clone()
	out.CompoundYield = clonePtr(m.CompoundYield)
	out.Purity = clonePtr(m.Purity)
	out.Selectivity = clonePtr(m.Selectivity)
	out.AnalysisIdentity = cloneStrings(m.AnalysisIdentity)
	out.AnalysisYield = cloneStrings(m.AnalysisYield)
	out.AnalysisPurity = cloneStrings(m.AnalysisPurity)
	out.AnalysisSelectivity = cloneStrings(m.AnalysisSelectivity)
	return &out
}

func (m *ReactionAnalysis) Clone() *ReactionAnalysis {
	if m == nil {
		return nil
	}
	out := *m
	out.Data = cloneMap(m.Data, (*Data).Clone)
	out.InstrumentLastCalibrated = clonePtr(m.InstrumentLastCalibrated)
	return &out
}

func (m *Data) Clone() *Data {
	if m == nil {
		return nil
	}
	out := *m
	if b, ok := m.Value.(DataBytes); ok {
		out.Value = DataBytes(append([]byte(nil), b...))
	}
	return &out
}

func (m *ReactionProvenance) Clone() *ReactionProvenance {
	if m == nil {
		return nil
	}
	out := *m
	out.Experimenter = clonePtr(m.Experimenter)
	out.ExperimentStart = clonePtr(m.ExperimentStart)
	out.RecordCreated = m.RecordCreated.Clone()
	out.RecordModified = cloneSlice(m.RecordModified, (*RecordEvent).Clone)
	return &out
}

func (m *RecordEvent) Clone() *RecordEvent {
	if m == nil {
		return nil
	}
	return &RecordEvent{Time: clonePtr(m.Time), Person: clonePtr(m.Person), Details: m.Details}
}
