package codec

// The types below mirror the protobuf JSON form of a reaction record (original proto field
// names). Every oneof branch is a separate optional field so that ambiguous input can be
// detected; the conversion into pkg/reaction types reports it.

type Quantity struct {
	Value     Float `json:"value,omitempty" yaml:"value,omitempty"`
	Precision Float `json:"precision,omitempty" yaml:"precision,omitempty"`
	Units     Enum  `json:"units,omitempty" yaml:"units,omitempty"`
}

type Percentage struct {
	Value     Float `json:"value,omitempty" yaml:"value,omitempty"`
	Precision Float `json:"precision,omitempty" yaml:"precision,omitempty"`
}

type Reaction struct {
	Identifiers  []*ReactionIdentifier     `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`
	Inputs       map[string]*ReactionInput `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Setup        *ReactionSetup            `json:"setup,omitempty" yaml:"setup,omitempty"`
	Conditions   *ReactionConditions       `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Notes        *ReactionNotes            `json:"notes,omitempty" yaml:"notes,omitempty"`
	Observations []*ReactionObservation    `json:"observations,omitempty" yaml:"observations,omitempty"`
	Workups      []*ReactionWorkup         `json:"workups,omitempty" yaml:"workups,omitempty"`
	Outcomes     []*ReactionOutcome        `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
	Provenance   *ReactionProvenance       `json:"provenance,omitempty" yaml:"provenance,omitempty"`
	ReactionID   string                    `json:"reaction_id,omitempty" yaml:"reaction_id,omitempty"`
}

type ReactionIdentifier struct {
	Type       Enum    `json:"type,omitempty" yaml:"type,omitempty"`
	Details    string  `json:"details,omitempty" yaml:"details,omitempty"`
	Value      *string `json:"value,omitempty" yaml:"value,omitempty"`
	BytesValue []byte  `json:"bytes_value,omitempty" yaml:"bytes_value,omitempty"`
	IsMapped   bool    `json:"is_mapped,omitempty" yaml:"is_mapped,omitempty"`
}

type ReactionInput struct {
	Components          []*Compound     `json:"components,omitempty" yaml:"components,omitempty"`
	AdditionOrder       int32           `json:"addition_order,omitempty" yaml:"addition_order,omitempty"`
	AdditionTime        *Quantity       `json:"addition_time,omitempty" yaml:"addition_time,omitempty"`
	AdditionSpeed       *TypeAndDetails `json:"addition_speed,omitempty" yaml:"addition_speed,omitempty"`
	AdditionDuration    *Quantity       `json:"addition_duration,omitempty" yaml:"addition_duration,omitempty"`
	FlowRate            *Quantity       `json:"flow_rate,omitempty" yaml:"flow_rate,omitempty"`
	AdditionDevice      *TypeAndDetails `json:"addition_device,omitempty" yaml:"addition_device,omitempty"`
	AdditionTemperature *Quantity       `json:"addition_temperature,omitempty" yaml:"addition_temperature,omitempty"`
}

// TypeAndDetails is any message whose only content is an enum with its CUSTOM details
type TypeAndDetails struct {
	Type    Enum   `json:"type,omitempty" yaml:"type,omitempty"`
	Details string `json:"details,omitempty" yaml:"details,omitempty"`
}

type Compound struct {
	Identifiers           []*CompoundIdentifier  `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`
	Mass                  *Quantity              `json:"mass,omitempty" yaml:"mass,omitempty"`
	Moles                 *Quantity              `json:"moles,omitempty" yaml:"moles,omitempty"`
	Volume                *Quantity              `json:"volume,omitempty" yaml:"volume,omitempty"`
	VolumeIncludesSolutes bool                   `json:"volume_includes_solutes,omitempty" yaml:"volume_includes_solutes,omitempty"`
	ReactionRole          Enum                   `json:"reaction_role,omitempty" yaml:"reaction_role,omitempty"`
	IsLimiting            bool                   `json:"is_limiting,omitempty" yaml:"is_limiting,omitempty"`
	Preparations          []*CompoundPreparation `json:"preparations,omitempty" yaml:"preparations,omitempty"`
	Features              []*CompoundFeature     `json:"features,omitempty" yaml:"features,omitempty"`
	VendorSource          string                 `json:"vendor_source,omitempty" yaml:"vendor_source,omitempty"`
	VendorLot             string                 `json:"vendor_lot,omitempty" yaml:"vendor_lot,omitempty"`
	VendorID              string                 `json:"vendor_id,omitempty" yaml:"vendor_id,omitempty"`
}

type CompoundIdentifier struct {
	Type       Enum    `json:"type,omitempty" yaml:"type,omitempty"`
	Details    string  `json:"details,omitempty" yaml:"details,omitempty"`
	Value      *string `json:"value,omitempty" yaml:"value,omitempty"`
	BytesValue []byte  `json:"bytes_value,omitempty" yaml:"bytes_value,omitempty"`
}

type CompoundPreparation struct {
	Type       Enum   `json:"type,omitempty" yaml:"type,omitempty"`
	Details    string `json:"details,omitempty" yaml:"details,omitempty"`
	ReactionID string `json:"reaction_id,omitempty" yaml:"reaction_id,omitempty"`
}

type CompoundFeature struct {
	Name        string  `json:"name,omitempty" yaml:"name,omitempty"`
	StringValue *string `json:"string_value,omitempty" yaml:"string_value,omitempty"`
	FloatValue  *Float  `json:"float_value,omitempty" yaml:"float_value,omitempty"`
	HowComputed string  `json:"how_computed,omitempty" yaml:"how_computed,omitempty"`
}

type ReactionSetup struct {
	Vessel             *Vessel          `json:"vessel,omitempty" yaml:"vessel,omitempty"`
	IsAutomated        bool             `json:"is_automated,omitempty" yaml:"is_automated,omitempty"`
	AutomationPlatform string           `json:"automation_platform,omitempty" yaml:"automation_platform,omitempty"`
	AutomationCode     map[string]*Data `json:"automation_code,omitempty" yaml:"automation_code,omitempty"`
}

type Vessel struct {
	Type               Enum      `json:"type,omitempty" yaml:"type,omitempty"`
	Details            string    `json:"details,omitempty" yaml:"details,omitempty"`
	Material           Enum      `json:"material,omitempty" yaml:"material,omitempty"`
	MaterialDetails    string    `json:"material_details,omitempty" yaml:"material_details,omitempty"`
	Preparation        Enum      `json:"preparation,omitempty" yaml:"preparation,omitempty"`
	PreparationDetails string    `json:"preparation_details,omitempty" yaml:"preparation_details,omitempty"`
	VesselID           string    `json:"vessel_id,omitempty" yaml:"vessel_id,omitempty"`
	Volume             *Quantity `json:"volume,omitempty" yaml:"volume,omitempty"`
}

type ReactionConditions struct {
	Temperature          *TemperatureConditions      `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	Pressure             *PressureConditions         `json:"pressure,omitempty" yaml:"pressure,omitempty"`
	Stirring             *StirringConditions         `json:"stirring,omitempty" yaml:"stirring,omitempty"`
	Illumination         *IlluminationConditions     `json:"illumination,omitempty" yaml:"illumination,omitempty"`
	Electrochemistry     *ElectrochemistryConditions `json:"electrochemistry,omitempty" yaml:"electrochemistry,omitempty"`
	Flow                 *FlowConditions             `json:"flow,omitempty" yaml:"flow,omitempty"`
	Reflux               bool                        `json:"reflux,omitempty" yaml:"reflux,omitempty"`
	PH                   *Float                      `json:"ph,omitempty" yaml:"ph,omitempty"`
	ConditionsAreDynamic bool                        `json:"conditions_are_dynamic,omitempty" yaml:"conditions_are_dynamic,omitempty"`
	Details              string                      `json:"details,omitempty" yaml:"details,omitempty"`
}

type TemperatureConditions struct {
	Type         Enum                      `json:"type,omitempty" yaml:"type,omitempty"`
	Details      string                    `json:"details,omitempty" yaml:"details,omitempty"`
	Setpoint     *Quantity                 `json:"setpoint,omitempty" yaml:"setpoint,omitempty"`
	Measurements []*TemperatureMeasurement `json:"measurements,omitempty" yaml:"measurements,omitempty"`
}

type TemperatureMeasurement struct {
	Type        Enum      `json:"type,omitempty" yaml:"type,omitempty"`
	Details     string    `json:"details,omitempty" yaml:"details,omitempty"`
	Time        *Quantity `json:"time,omitempty" yaml:"time,omitempty"`
	Temperature *Quantity `json:"temperature,omitempty" yaml:"temperature,omitempty"`
}

type PressureConditions struct {
	Type              Enum                   `json:"type,omitempty" yaml:"type,omitempty"`
	Details           string                 `json:"details,omitempty" yaml:"details,omitempty"`
	Setpoint          *Quantity              `json:"setpoint,omitempty" yaml:"setpoint,omitempty"`
	Atmosphere        Enum                   `json:"atmosphere,omitempty" yaml:"atmosphere,omitempty"`
	AtmosphereDetails string                 `json:"atmosphere_details,omitempty" yaml:"atmosphere_details,omitempty"`
	Measurements      []*PressureMeasurement `json:"measurements,omitempty" yaml:"measurements,omitempty"`
}

type PressureMeasurement struct {
	Type     Enum      `json:"type,omitempty" yaml:"type,omitempty"`
	Details  string    `json:"details,omitempty" yaml:"details,omitempty"`
	Time     *Quantity `json:"time,omitempty" yaml:"time,omitempty"`
	Pressure *Quantity `json:"pressure,omitempty" yaml:"pressure,omitempty"`
}

type StirringConditions struct {
	Type    Enum   `json:"type,omitempty" yaml:"type,omitempty"`
	Details string `json:"details,omitempty" yaml:"details,omitempty"`
	RPM     Float  `json:"rpm,omitempty" yaml:"rpm,omitempty"`
}

type IlluminationConditions struct {
	Type             Enum      `json:"type,omitempty" yaml:"type,omitempty"`
	Details          string    `json:"details,omitempty" yaml:"details,omitempty"`
	PeakWavelength   *Quantity `json:"peak_wavelength,omitempty" yaml:"peak_wavelength,omitempty"`
	Color            string    `json:"color,omitempty" yaml:"color,omitempty"`
	DistanceToVessel *Quantity `json:"distance_to_vessel,omitempty" yaml:"distance_to_vessel,omitempty"`
}

type ElectrochemistryConditions struct {
	Type                Enum                           `json:"type,omitempty" yaml:"type,omitempty"`
	Details             string                         `json:"details,omitempty" yaml:"details,omitempty"`
	Current             *Quantity                      `json:"current,omitempty" yaml:"current,omitempty"`
	Voltage             *Quantity                      `json:"voltage,omitempty" yaml:"voltage,omitempty"`
	AnodeMaterial       string                         `json:"anode_material,omitempty" yaml:"anode_material,omitempty"`
	CathodeMaterial     string                         `json:"cathode_material,omitempty" yaml:"cathode_material,omitempty"`
	ElectrodeSeparation *Quantity                      `json:"electrode_separation,omitempty" yaml:"electrode_separation,omitempty"`
	Measurements        []*ElectrochemistryMeasurement `json:"measurements,omitempty" yaml:"measurements,omitempty"`
}

type ElectrochemistryMeasurement struct {
	Time    *Quantity `json:"time,omitempty" yaml:"time,omitempty"`
	Current *Quantity `json:"current,omitempty" yaml:"current,omitempty"`
	Voltage *Quantity `json:"voltage,omitempty" yaml:"voltage,omitempty"`
}

type FlowConditions struct {
	Type     Enum    `json:"type,omitempty" yaml:"type,omitempty"`
	Details  string  `json:"details,omitempty" yaml:"details,omitempty"`
	PumpType string  `json:"pump_type,omitempty" yaml:"pump_type,omitempty"`
	Tubing   *Tubing `json:"tubing,omitempty" yaml:"tubing,omitempty"`
}

type Tubing struct {
	Type     Enum      `json:"type,omitempty" yaml:"type,omitempty"`
	Details  string    `json:"details,omitempty" yaml:"details,omitempty"`
	Diameter *Quantity `json:"diameter,omitempty" yaml:"diameter,omitempty"`
}

type ReactionNotes struct {
	IsHeterogeneous       bool   `json:"is_heterogeneous,omitempty" yaml:"is_heterogeneous,omitempty"`
	FormsPrecipitate      bool   `json:"forms_precipitate,omitempty" yaml:"forms_precipitate,omitempty"`
	IsExothermic          bool   `json:"is_exothermic,omitempty" yaml:"is_exothermic,omitempty"`
	OffgasEvolved         bool   `json:"offgas_evolved,omitempty" yaml:"offgas_evolved,omitempty"`
	IsSensitiveToMoisture bool   `json:"is_sensitive_to_moisture,omitempty" yaml:"is_sensitive_to_moisture,omitempty"`
	IsSensitiveToOxygen   bool   `json:"is_sensitive_to_oxygen,omitempty" yaml:"is_sensitive_to_oxygen,omitempty"`
	IsSensitiveToLight    bool   `json:"is_sensitive_to_light,omitempty" yaml:"is_sensitive_to_light,omitempty"`
	SafetyNotes           string `json:"safety_notes,omitempty" yaml:"safety_notes,omitempty"`
	ProcedureDetails      string `json:"procedure_details,omitempty" yaml:"procedure_details,omitempty"`
}

type ReactionObservation struct {
	Time    *Quantity `json:"time,omitempty" yaml:"time,omitempty"`
	Comment string    `json:"comment,omitempty" yaml:"comment,omitempty"`
	Image   *Data     `json:"image,omitempty" yaml:"image,omitempty"`
}

type ReactionWorkup struct {
	Type        Enum                   `json:"type,omitempty" yaml:"type,omitempty"`
	Details     string                 `json:"details,omitempty" yaml:"details,omitempty"`
	Duration    *Quantity              `json:"duration,omitempty" yaml:"duration,omitempty"`
	Components  []*Compound            `json:"components,omitempty" yaml:"components,omitempty"`
	Temperature *TemperatureConditions `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	KeepPhase   string                 `json:"keep_phase,omitempty" yaml:"keep_phase,omitempty"`
	Stirring    *StirringConditions    `json:"stirring,omitempty" yaml:"stirring,omitempty"`
	TargetPH    *Float                 `json:"target_ph,omitempty" yaml:"target_ph,omitempty"`
	IsAutomated bool                   `json:"is_automated,omitempty" yaml:"is_automated,omitempty"`
}

type ReactionOutcome struct {
	ReactionTime *Quantity                    `json:"reaction_time,omitempty" yaml:"reaction_time,omitempty"`
	Conversion   *Percentage                  `json:"conversion,omitempty" yaml:"conversion,omitempty"`
	Products     []*ReactionProduct           `json:"products,omitempty" yaml:"products,omitempty"`
	Analyses     map[string]*ReactionAnalysis `json:"analyses,omitempty" yaml:"analyses,omitempty"`
}

type ReactionProduct struct {
	Compound            *Compound    `json:"compound,omitempty" yaml:"compound,omitempty"`
	IsDesiredProduct    bool         `json:"is_desired_product,omitempty" yaml:"is_desired_product,omitempty"`
	CompoundYield       *Percentage  `json:"compound_yield,omitempty" yaml:"compound_yield,omitempty"`
	Purity              *Percentage  `json:"purity,omitempty" yaml:"purity,omitempty"`
	Selectivity         *Selectivity `json:"selectivity,omitempty" yaml:"selectivity,omitempty"`
	IsolatedColor       string       `json:"isolated_color,omitempty" yaml:"isolated_color,omitempty"`
	Texture             Enum         `json:"texture,omitempty" yaml:"texture,omitempty"`
	TextureDetails      string       `json:"texture_details,omitempty" yaml:"texture_details,omitempty"`
	AnalysisIdentity    []string     `json:"analysis_identity,omitempty" yaml:"analysis_identity,omitempty"`
	AnalysisYield       []string     `json:"analysis_yield,omitempty" yaml:"analysis_yield,omitempty"`
	AnalysisPurity      []string     `json:"analysis_purity,omitempty" yaml:"analysis_purity,omitempty"`
	AnalysisSelectivity []string     `json:"analysis_selectivity,omitempty" yaml:"analysis_selectivity,omitempty"`
}

type Selectivity struct {
	Type      Enum   `json:"type,omitempty" yaml:"type,omitempty"`
	Details   string `json:"details,omitempty" yaml:"details,omitempty"`
	Value     Float  `json:"value,omitempty" yaml:"value,omitempty"`
	Precision Float  `json:"precision,omitempty" yaml:"precision,omitempty"`
}

type ReactionAnalysis struct {
	Type                     Enum             `json:"type,omitempty" yaml:"type,omitempty"`
	Details                  string           `json:"details,omitempty" yaml:"details,omitempty"`
	ChmoID                   int32            `json:"chmo_id,omitempty" yaml:"chmo_id,omitempty"`
	IsOfIsolatedSpecies      bool             `json:"is_of_isolated_species,omitempty" yaml:"is_of_isolated_species,omitempty"`
	Data                     map[string]*Data `json:"data,omitempty" yaml:"data,omitempty"`
	InstrumentManufacturer   string           `json:"instrument_manufacturer,omitempty" yaml:"instrument_manufacturer,omitempty"`
	InstrumentLastCalibrated *DateTime        `json:"instrument_last_calibrated,omitempty" yaml:"instrument_last_calibrated,omitempty"`
	UsesInternalStandard     bool             `json:"uses_internal_standard,omitempty" yaml:"uses_internal_standard,omitempty"`
	UsesAuthenticStandard    bool             `json:"uses_authentic_standard,omitempty" yaml:"uses_authentic_standard,omitempty"`
}

type Data struct {
	FloatValue   *Float  `json:"float_value,omitempty" yaml:"float_value,omitempty"`
	IntegerValue *Int64  `json:"integer_value,omitempty" yaml:"integer_value,omitempty"`
	BytesValue   []byte  `json:"bytes_value,omitempty" yaml:"bytes_value,omitempty"`
	StringValue  *string `json:"string_value,omitempty" yaml:"string_value,omitempty"`
	URL          *string `json:"url,omitempty" yaml:"url,omitempty"`
	Description  string  `json:"description,omitempty" yaml:"description,omitempty"`
	Format       string  `json:"format,omitempty" yaml:"format,omitempty"`
}

type DateTime struct {
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

type ReactionProvenance struct {
	Experimenter    *Person        `json:"experimenter,omitempty" yaml:"experimenter,omitempty"`
	City            string         `json:"city,omitempty" yaml:"city,omitempty"`
	ExperimentStart *DateTime      `json:"experiment_start,omitempty" yaml:"experiment_start,omitempty"`
	DOI             string         `json:"doi,omitempty" yaml:"doi,omitempty"`
	Patent          string         `json:"patent,omitempty" yaml:"patent,omitempty"`
	PublicationURL  string         `json:"publication_url,omitempty" yaml:"publication_url,omitempty"`
	RecordCreated   *RecordEvent   `json:"record_created,omitempty" yaml:"record_created,omitempty"`
	RecordModified  []*RecordEvent `json:"record_modified,omitempty" yaml:"record_modified,omitempty"`
}

type RecordEvent struct {
	Time    *DateTime `json:"time,omitempty" yaml:"time,omitempty"`
	Person  *Person   `json:"person,omitempty" yaml:"person,omitempty"`
	Details string    `json:"details,omitempty" yaml:"details,omitempty"`
}

type Person struct {
	Username     string `json:"username,omitempty" yaml:"username,omitempty"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	ORCID        string `json:"orcid,omitempty" yaml:"orcid,omitempty"`
	Organization string `json:"organization,omitempty" yaml:"organization,omitempty"`
	Email        string `json:"email,omitempty" yaml:"email,omitempty"`
}
