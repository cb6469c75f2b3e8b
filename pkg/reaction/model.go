package reaction

import (
	"sort"

	"github.com/platinummonkey/ordcheck/pkg/units"
)

// Reaction is a complete reaction record. Inputs maps an arbitrary label to an input; map
// order carries no meaning and AdditionOrder on each input defines the sequence.
type Reaction struct {
	Identifiers  []*ReactionIdentifier
	Inputs       map[string]*ReactionInput
	Setup        *ReactionSetup
	Conditions   *ReactionConditions
	Notes        *ReactionNotes
	Observations []*ReactionObservation
	Workups      []*ReactionWorkup
	Outcomes     []*ReactionOutcome
	Provenance   *ReactionProvenance
	ReactionID   string
}

type ReactionIdentifier struct {
	Type     Choice[ReactionIdentifierType]
	Value    IdentifierValue
	IsMapped bool
}

// ReactionInput is one addition to the reaction vessel. Inputs that share an AdditionOrder
// are added simultaneously. Zero means the order was not recorded.
type ReactionInput struct {
	Components          []*Compound
	AdditionOrder       int32
	AdditionTime        *units.Time
	AdditionSpeed       *AdditionSpeed
	AdditionDuration    *units.Time
	FlowRate            *units.FlowRate
	AdditionDevice      *AdditionDevice
	AdditionTemperature *units.Temperature
}

type AdditionSpeed struct {
	Type Choice[AdditionSpeedType]
}

type AdditionDevice struct {
	Type Choice[AdditionDeviceType]
}

type Compound struct {
	Identifiers  []*CompoundIdentifier
	Amount       Amount
	ReactionRole ReactionRole
	IsLimiting   bool
	Preparations []*CompoundPreparation
	Features     []*CompoundFeature
	VendorSource string
	VendorLot    string
	VendorID     string
}

type CompoundIdentifier struct {
	Type  Choice[CompoundIdentifierType]
	Value IdentifierValue
}

// CompoundPreparation describes pre-treatment of a compound. ReactionID refers to the
// record that synthesized it.
type CompoundPreparation struct {
	Type       Choice[CompoundPreparationType]
	ReactionID string
}

type CompoundFeature struct {
	Name        string
	Value       FeatureValue
	HowComputed string
}

type ReactionSetup struct {
	Vessel             *Vessel
	IsAutomated        bool
	AutomationPlatform string
	AutomationCode     map[string]*Data
}

type Vessel struct {
	Type        Choice[VesselType]
	Material    Choice[VesselMaterialType]
	Preparation Choice[VesselPreparationType]
	VesselID    string
	Volume      *units.Volume
}

type ReactionConditions struct {
	Temperature          *TemperatureConditions
	Pressure             *PressureConditions
	Stirring             *StirringConditions
	Illumination         *IlluminationConditions
	Electrochemistry     *ElectrochemistryConditions
	Flow                 *FlowConditions
	Reflux               bool
	PH                   *float64
	ConditionsAreDynamic bool
	Details              string
}

type TemperatureConditions struct {
	Control      Choice[TemperatureControlType]
	Setpoint     *units.Temperature
	Measurements []*TemperatureMeasurement
}

type TemperatureMeasurement struct {
	Type        Choice[TemperatureMeasurementType]
	Time        *units.Time
	Temperature *units.Temperature
}

type PressureConditions struct {
	Control      Choice[PressureControlType]
	Setpoint     *units.Pressure
	Atmosphere   Choice[AtmosphereType]
	Measurements []*PressureMeasurement
}

type PressureMeasurement struct {
	Type     Choice[PressureMeasurementType]
	Time     *units.Time
	Pressure *units.Pressure
}

type StirringConditions struct {
	Method Choice[StirringMethodType]
	RPM    float64
}

type IlluminationConditions struct {
	Type             Choice[IlluminationType]
	PeakWavelength   *units.Wavelength
	Color            string
	DistanceToVessel *units.Length
}

type ElectrochemistryConditions struct {
	Type                Choice[ElectrochemistryType]
	Current             *units.Current
	Voltage             *units.Voltage
	AnodeMaterial       string
	CathodeMaterial     string
	ElectrodeSeparation *units.Length
	Measurements        []*ElectrochemistryMeasurement
}

type ElectrochemistryMeasurement struct {
	Time    *units.Time
	Current *units.Current
	Voltage *units.Voltage
}

type FlowConditions struct {
	Type     Choice[FlowType]
	PumpType string
	Tubing   *Tubing
}

type Tubing struct {
	Type     Choice[TubingMaterialType]
	Diameter *units.Length
}

type ReactionNotes struct {
	IsHeterogeneous       bool
	FormsPrecipitate      bool
	IsExothermic          bool
	OffgasEvolved         bool
	IsSensitiveToMoisture bool
	IsSensitiveToOxygen   bool
	IsSensitiveToLight    bool
	SafetyNotes           string
	ProcedureDetails      string
}

type ReactionObservation struct {
	Time    *units.Time
	Comment string
	Image   *Data
}

type ReactionWorkup struct {
	Type        Choice[WorkupType]
	Duration    *units.Time
	Components  []*Compound
	Temperature *TemperatureConditions
	KeepPhase   string
	Stirring    *StirringConditions
	TargetPH    *float64
	IsAutomated bool
}

// ReactionOutcome owns its analyses; products refer to them by key.
type ReactionOutcome struct {
	ReactionTime *units.Time
	Conversion   *Percentage
	Products     []*ReactionProduct
	Analyses     map[string]*ReactionAnalysis
}

type ReactionProduct struct {
	Compound            *Compound
	IsDesiredProduct    bool
	CompoundYield       *Percentage
	Purity              *Percentage
	Selectivity         *Selectivity
	IsolatedColor       string
	Texture             Choice[TextureType]
	AnalysisIdentity    []string
	AnalysisYield       []string
	AnalysisPurity      []string
	AnalysisSelectivity []string
}

type Selectivity struct {
	Type      Choice[SelectivityType]
	Value     float64
	Precision float64
}

type ReactionAnalysis struct {
	Type                     Choice[AnalysisType]
	ChmoID                   int32
	IsOfIsolatedSpecies      bool
	Data                     map[string]*Data
	InstrumentManufacturer   string
	InstrumentLastCalibrated *DateTime
	UsesInternalStandard     bool
	UsesAuthenticStandard    bool
}

type Data struct {
	Value       DataValue
	Description string
	Format      string
}

// DateTime holds a free-form timestamp string as authored
type DateTime struct {
	Value string
}

type ReactionProvenance struct {
	Experimenter    *Person
	City            string
	ExperimentStart *DateTime
	DOI             string
	Patent          string
	PublicationURL  string
	RecordCreated   *RecordEvent
	RecordModified  []*RecordEvent
}

type RecordEvent struct {
	Time    *DateTime
	Person  *Person
	Details string
}

type Person struct {
	Username     string
	Name         string
	ORCID        string
	Organization string
	Email        string
}

// Percentage is a value between 0 and 100
type Percentage struct {
	Value     float64
	Precision float64
}

// SortedKeys returns the keys of a string-keyed map in lexical order
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
