package reaction

// ReactionIdentifierType identifies a reaction
type ReactionIdentifierType int32

const (
	ReactionIdentifierUnspecified ReactionIdentifierType = iota
	ReactionIdentifierCustom
	ReactionIdentifierReactionSMILES
	ReactionIdentifierAtomMappedSMILES
	ReactionIdentifierRInChI
	ReactionIdentifierName
	ReactionIdentifierReactionType
)

var reactionIdentifierTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"REACTION_SMILES",
	"ATOM_MAPPED_SMILES",
	"RINCHI",
	"NAME",
	"REACTION_TYPE",
}

func (e ReactionIdentifierType) String() string { return enumString(reactionIdentifierTypeNames, int32(e)) }
func (ReactionIdentifierType) Names() []string  { return reactionIdentifierTypeNames }
func (e ReactionIdentifierType) IsCustom() bool { return e == ReactionIdentifierCustom }

// CompoundIdentifierType identifies a compound
type CompoundIdentifierType int32

const (
	CompoundIdentifierUnspecified CompoundIdentifierType = iota
	CompoundIdentifierCustom
	CompoundIdentifierSMILES
	CompoundIdentifierInChI
	CompoundIdentifierMolblock
	CompoundIdentifierIUPACName
	CompoundIdentifierName
	CompoundIdentifierCASNumber
	CompoundIdentifierPubChemCID
	CompoundIdentifierChemSpiderID
	CompoundIdentifierCXSMILES
	CompoundIdentifierInChIKey
	CompoundIdentifierXYZ
	CompoundIdentifierUniProtID
	CompoundIdentifierPDBID
	CompoundIdentifierAminoAcidSequence
	CompoundIdentifierHELM
	CompoundIdentifierRDKitBinary
)

var compoundIdentifierTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"SMILES",
	"INCHI",
	"MOLBLOCK",
	"IUPAC_NAME",
	"NAME",
	"CAS_NUMBER",
	"PUBCHEM_CID",
	"CHEMSPIDER_ID",
	"CXSMILES",
	"INCHI_KEY",
	"XYZ",
	"UNIPROT_ID",
	"PDB_ID",
	"AMINO_ACID_SEQUENCE",
	"HELM",
	"RDKIT_BINARY",
}

func (e CompoundIdentifierType) String() string { return enumString(compoundIdentifierTypeNames, int32(e)) }
func (CompoundIdentifierType) Names() []string  { return compoundIdentifierTypeNames }
func (e CompoundIdentifierType) IsCustom() bool { return e == CompoundIdentifierCustom }

// ReactionRole is the role a compound plays in a reaction
type ReactionRole int32

const (
	RoleUnspecified ReactionRole = iota
	RoleReactant
	RoleReagent
	RoleSolvent
	RoleCatalyst
	RoleWorkup
	RoleInternalStandard
	RoleAuthenticStandard
	RoleProduct
)

var reactionRoleNames = []string{
	"UNSPECIFIED",
	"REACTANT",
	"REAGENT",
	"SOLVENT",
	"CATALYST",
	"WORKUP",
	"INTERNAL_STANDARD",
	"AUTHENTIC_STANDARD",
	"PRODUCT",
}

func (e ReactionRole) String() string { return enumString(reactionRoleNames, int32(e)) }
func (ReactionRole) Names() []string  { return reactionRoleNames }

// CompoundPreparationType describes how a compound was prepared before use
type CompoundPreparationType int32

const (
	PreparationUnspecified CompoundPreparationType = iota
	PreparationCustom
	PreparationNone
	PreparationRepurified
	PreparationSparged
	PreparationDried
	PreparationSynthesized
)

var compoundPreparationTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"NONE",
	"REPURIFIED",
	"SPARGED",
	"DRIED",
	"SYNTHESIZED",
}

func (e CompoundPreparationType) String() string { return enumString(compoundPreparationTypeNames, int32(e)) }
func (CompoundPreparationType) Names() []string  { return compoundPreparationTypeNames }
func (e CompoundPreparationType) IsCustom() bool { return e == PreparationCustom }

// AdditionSpeedType describes how quickly an input was added
type AdditionSpeedType int32

const (
	SpeedUnspecified AdditionSpeedType = iota
	SpeedCustom
	SpeedAllAtOnce
	SpeedFast
	SpeedSlow
	SpeedDropwise
	SpeedContinuous
	SpeedPortionwise
)

var additionSpeedTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"ALL_AT_ONCE",
	"FAST",
	"SLOW",
	"DROPWISE",
	"CONTINUOUS",
	"PORTIONWISE",
}

func (e AdditionSpeedType) String() string { return enumString(additionSpeedTypeNames, int32(e)) }
func (AdditionSpeedType) Names() []string  { return additionSpeedTypeNames }
func (e AdditionSpeedType) IsCustom() bool { return e == SpeedCustom }

// AdditionDeviceType is the device used to add an input
type AdditionDeviceType int32

const (
	DeviceUnspecified AdditionDeviceType = iota
	DeviceCustom
	DeviceNone
	DeviceSyringe
	DeviceCannula
	DeviceAdditionFunnel
)

var additionDeviceTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"NONE",
	"SYRINGE",
	"CANNULA",
	"ADDITION_FUNNEL",
}

func (e AdditionDeviceType) String() string { return enumString(additionDeviceTypeNames, int32(e)) }
func (AdditionDeviceType) Names() []string  { return additionDeviceTypeNames }
func (e AdditionDeviceType) IsCustom() bool { return e == DeviceCustom }

// VesselType is the kind of reaction vessel
type VesselType int32

const (
	VesselUnspecified VesselType = iota
	VesselCustom
	VesselRoundBottomFlask
	VesselVial
	VesselWellPlate
	VesselMicrowaveVial
	VesselTube
	VesselContinuousStirredTankReactor
	VesselPackedBedReactor
	VesselNMRTube
	VesselPressureFlask
	VesselPressureReactor
	VesselElectrochemicalCell
)

var vesselTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"ROUND_BOTTOM_FLASK",
	"VIAL",
	"WELL_PLATE",
	"MICROWAVE_VIAL",
	"TUBE",
	"CONTINUOUS_STIRRED_TANK_REACTOR",
	"PACKED_BED_REACTOR",
	"NMR_TUBE",
	"PRESSURE_FLASK",
	"PRESSURE_REACTOR",
	"ELECTROCHEMICAL_CELL",
}

func (e VesselType) String() string { return enumString(vesselTypeNames, int32(e)) }
func (VesselType) Names() []string  { return vesselTypeNames }
func (e VesselType) IsCustom() bool { return e == VesselCustom }

// VesselMaterialType is the material a vessel is made of
type VesselMaterialType int32

const (
	MaterialUnspecified VesselMaterialType = iota
	MaterialCustom
	MaterialGlass
	MaterialPolypropylene
	MaterialPlastic
	MaterialMetal
	MaterialQuartz
)

var vesselMaterialTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"GLASS",
	"POLYPROPYLENE",
	"PLASTIC",
	"METAL",
	"QUARTZ",
}

func (e VesselMaterialType) String() string { return enumString(vesselMaterialTypeNames, int32(e)) }
func (VesselMaterialType) Names() []string  { return vesselMaterialTypeNames }
func (e VesselMaterialType) IsCustom() bool { return e == MaterialCustom }

// VesselPreparationType describes how a vessel was prepared
type VesselPreparationType int32

const (
	VesselPrepUnspecified VesselPreparationType = iota
	VesselPrepCustom
	VesselPrepNone
	VesselPrepOvenDried
	VesselPrepFlameDried
	VesselPrepEvacuatedBackfilled
	VesselPrepPurged
)

var vesselPreparationTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"NONE",
	"OVEN_DRIED",
	"FLAME_DRIED",
	"EVACUATED_BACKFILLED",
	"PURGED",
}

func (e VesselPreparationType) String() string { return enumString(vesselPreparationTypeNames, int32(e)) }
func (VesselPreparationType) Names() []string  { return vesselPreparationTypeNames }
func (e VesselPreparationType) IsCustom() bool { return e == VesselPrepCustom }

// TemperatureControlType is the method used to control temperature
type TemperatureControlType int32

const (
	TemperatureControlUnspecified TemperatureControlType = iota
	TemperatureControlCustom
	TemperatureControlAmbient
	TemperatureControlOilBath
	TemperatureControlWaterBath
	TemperatureControlSandBath
	TemperatureControlIceBath
	TemperatureControlDryAluminumPlate
	TemperatureControlMicrowave
	TemperatureControlDryIceBath
	TemperatureControlAirFan
	TemperatureControlLiquidNitrogen
)

var temperatureControlTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"AMBIENT",
	"OIL_BATH",
	"WATER_BATH",
	"SAND_BATH",
	"ICE_BATH",
	"DRY_ALUMINUM_PLATE",
	"MICROWAVE",
	"DRY_ICE_BATH",
	"AIR_FAN",
	"LIQUID_NITROGEN",
}

func (e TemperatureControlType) String() string { return enumString(temperatureControlTypeNames, int32(e)) }
func (TemperatureControlType) Names() []string  { return temperatureControlTypeNames }
func (e TemperatureControlType) IsCustom() bool { return e == TemperatureControlCustom }

// TemperatureMeasurementType is how a temperature reading was taken
type TemperatureMeasurementType int32

const (
	TemperatureMeasurementUnspecified TemperatureMeasurementType = iota
	TemperatureMeasurementCustom
	TemperatureMeasurementThermocoupleInternal
	TemperatureMeasurementThermocoupleExternal
	TemperatureMeasurementInfrared
)

var temperatureMeasurementTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"THERMOCOUPLE_INTERNAL",
	"THERMOCOUPLE_EXTERNAL",
	"INFRARED",
}

func (e TemperatureMeasurementType) String() string { return enumString(temperatureMeasurementTypeNames, int32(e)) }
func (TemperatureMeasurementType) Names() []string  { return temperatureMeasurementTypeNames }
func (e TemperatureMeasurementType) IsCustom() bool { return e == TemperatureMeasurementCustom }

// PressureControlType is the method used to control pressure
type PressureControlType int32

const (
	PressureControlUnspecified PressureControlType = iota
	PressureControlCustom
	PressureControlAmbient
	PressureControlSlightPositive
	PressureControlSealed
	PressureControlPressurized
)

var pressureControlTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"AMBIENT",
	"SLIGHT_POSITIVE",
	"SEALED",
	"PRESSURIZED",
}

func (e PressureControlType) String() string { return enumString(pressureControlTypeNames, int32(e)) }
func (PressureControlType) Names() []string  { return pressureControlTypeNames }
func (e PressureControlType) IsCustom() bool { return e == PressureControlCustom }

// PressureMeasurementType is how a pressure reading was taken
type PressureMeasurementType int32

const (
	PressureMeasurementUnspecified PressureMeasurementType = iota
	PressureMeasurementCustom
	PressureMeasurementPressureTransducer
)

var pressureMeasurementTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"PRESSURE_TRANSDUCER",
}

func (e PressureMeasurementType) String() string { return enumString(pressureMeasurementTypeNames, int32(e)) }
func (PressureMeasurementType) Names() []string  { return pressureMeasurementTypeNames }
func (e PressureMeasurementType) IsCustom() bool { return e == PressureMeasurementCustom }

// AtmosphereType is the gas above the reaction mixture
type AtmosphereType int32

const (
	AtmosphereUnspecified AtmosphereType = iota
	AtmosphereCustom
	AtmosphereAir
	AtmosphereNitrogen
	AtmosphereArgon
	AtmosphereOxygen
	AtmosphereHydrogen
	AtmosphereCarbonMonoxide
	AtmosphereCarbonDioxide
	AtmosphereMethane
	AtmosphereAmmonia
	AtmosphereOzone
	AtmosphereEthylene
	AtmosphereAcetylene
)

var atmosphereTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"AIR",
	"NITROGEN",
	"ARGON",
	"OXYGEN",
	"HYDROGEN",
	"CARBON_MONOXIDE",
	"CARBON_DIOXIDE",
	"METHANE",
	"AMMONIA",
	"OZONE",
	"ETHYLENE",
	"ACETYLENE",
}

func (e AtmosphereType) String() string { return enumString(atmosphereTypeNames, int32(e)) }
func (AtmosphereType) Names() []string  { return atmosphereTypeNames }
func (e AtmosphereType) IsCustom() bool { return e == AtmosphereCustom }

// StirringMethodType is the method used to mix the reaction
type StirringMethodType int32

const (
	StirringUnspecified StirringMethodType = iota
	StirringCustom
	StirringNone
	StirringStirBar
	StirringOverheadMixer
	StirringAgitation
)

var stirringMethodTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"NONE",
	"STIR_BAR",
	"OVERHEAD_MIXER",
	"AGITATION",
}

func (e StirringMethodType) String() string { return enumString(stirringMethodTypeNames, int32(e)) }
func (StirringMethodType) Names() []string  { return stirringMethodTypeNames }
func (e StirringMethodType) IsCustom() bool { return e == StirringCustom }

// IlluminationType is the light source applied to the reaction
type IlluminationType int32

const (
	IlluminationUnspecified IlluminationType = iota
	IlluminationCustom
	IlluminationAmbient
	IlluminationDark
	IlluminationLED
	IlluminationHalogenLamp
	IlluminationDeuteriumLamp
	IlluminationSolarSimulator
	IlluminationBroadSpectrum
)

var illuminationTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"AMBIENT",
	"DARK",
	"LED",
	"HALOGEN_LAMP",
	"DEUTERIUM_LAMP",
	"SOLAR_SIMULATOR",
	"BROAD_SPECTRUM",
}

func (e IlluminationType) String() string { return enumString(illuminationTypeNames, int32(e)) }
func (IlluminationType) Names() []string  { return illuminationTypeNames }
func (e IlluminationType) IsCustom() bool { return e == IlluminationCustom }

// ElectrochemistryType is the electrochemical control mode
type ElectrochemistryType int32

const (
	ElectrochemistryUnspecified ElectrochemistryType = iota
	ElectrochemistryCustom
	ElectrochemistryConstantCurrent
	ElectrochemistryConstantVoltage
)

var electrochemistryTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"CONSTANT_CURRENT",
	"CONSTANT_VOLTAGE",
}

func (e ElectrochemistryType) String() string { return enumString(electrochemistryTypeNames, int32(e)) }
func (ElectrochemistryType) Names() []string  { return electrochemistryTypeNames }
func (e ElectrochemistryType) IsCustom() bool { return e == ElectrochemistryCustom }

// FlowType is the kind of flow reactor
type FlowType int32

const (
	FlowUnspecified FlowType = iota
	FlowCustom
	FlowPlugFlowReactor
	FlowContinuousStirredTankReactor
	FlowPackedBedReactor
)

var flowTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"PLUG_FLOW_REACTOR",
	"CONTINUOUS_STIRRED_TANK_REACTOR",
	"PACKED_BED_REACTOR",
}

func (e FlowType) String() string { return enumString(flowTypeNames, int32(e)) }
func (FlowType) Names() []string  { return flowTypeNames }
func (e FlowType) IsCustom() bool { return e == FlowCustom }

// TubingMaterialType is the material of flow tubing
type TubingMaterialType int32

const (
	TubingUnspecified TubingMaterialType = iota
	TubingCustom
	TubingSteel
	TubingCopper
	TubingPFA
	TubingFEP
	TubingTeflonAF
	TubingPTFE
	TubingGlass
	TubingQuartz
	TubingSilicon
	TubingPDMS
)

var tubingMaterialTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"STEEL",
	"COPPER",
	"PFA",
	"FEP",
	"TEFLONAF",
	"PTFE",
	"GLASS",
	"QUARTZ",
	"SILICON",
	"PDMS",
}

func (e TubingMaterialType) String() string { return enumString(tubingMaterialTypeNames, int32(e)) }
func (TubingMaterialType) Names() []string  { return tubingMaterialTypeNames }
func (e TubingMaterialType) IsCustom() bool { return e == TubingCustom }

// WorkupType is the kind of workup step
type WorkupType int32

const (
	WorkupUnspecified WorkupType = iota
	WorkupCustom
	WorkupAddition
	WorkupAliquot
	WorkupTemperature
	WorkupConcentration
	WorkupExtraction
	WorkupFiltration
	WorkupWash
	WorkupDryInVacuum
	WorkupDryWithMaterial
	WorkupFlashChromatography
	WorkupOtherChromatography
	WorkupScavenging
	WorkupWait
	WorkupStirring
	WorkupPHAdjust
	WorkupDissolution
	WorkupDistillation
)

var workupTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"ADDITION",
	"ALIQUOT",
	"TEMPERATURE",
	"CONCENTRATION",
	"EXTRACTION",
	"FILTRATION",
	"WASH",
	"DRY_IN_VACUUM",
	"DRY_WITH_MATERIAL",
	"FLASH_CHROMATOGRAPHY",
	"OTHER_CHROMATOGRAPHY",
	"SCAVENGING",
	"WAIT",
	"STIRRING",
	"PH_ADJUST",
	"DISSOLUTION",
	"DISTILLATION",
}

func (e WorkupType) String() string { return enumString(workupTypeNames, int32(e)) }
func (WorkupType) Names() []string  { return workupTypeNames }
func (e WorkupType) IsCustom() bool { return e == WorkupCustom }

// TextureType is the physical texture of an isolated product
type TextureType int32

const (
	TextureUnspecified TextureType = iota
	TextureCustom
	TexturePowder
	TextureCrystal
	TextureOil
	TextureAmorphousSolid
	TextureFoam
	TextureWax
	TextureSemiSolid
	TextureSolid
	TextureLiquid
)

var textureTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"POWDER",
	"CRYSTAL",
	"OIL",
	"AMORPHOUS_SOLID",
	"FOAM",
	"WAX",
	"SEMI_SOLID",
	"SOLID",
	"LIQUID",
}

func (e TextureType) String() string { return enumString(textureTypeNames, int32(e)) }
func (TextureType) Names() []string  { return textureTypeNames }
func (e TextureType) IsCustom() bool { return e == TextureCustom }

// SelectivityType is the kind of selectivity being reported
type SelectivityType int32

const (
	SelectivityUnspecified SelectivityType = iota
	SelectivityCustom
	SelectivityEE
	SelectivityER
	SelectivityDR
	SelectivityEZ
	SelectivityZE
)

var selectivityTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"EE",
	"ER",
	"DR",
	"EZ",
	"ZE",
}

func (e SelectivityType) String() string { return enumString(selectivityTypeNames, int32(e)) }
func (SelectivityType) Names() []string  { return selectivityTypeNames }
func (e SelectivityType) IsCustom() bool { return e == SelectivityCustom }

// AnalysisType is the analytical technique used
type AnalysisType int32

const (
	AnalysisUnspecified AnalysisType = iota
	AnalysisCustom
	AnalysisLC
	AnalysisGC
	AnalysisIR
	AnalysisNMR1H
	AnalysisNMR13C
	AnalysisNMROther
	AnalysisMP
	AnalysisUV
	AnalysisTLC
	AnalysisMS
	AnalysisHRMS
	AnalysisMSMS
	AnalysisWeight
	AnalysisLCMS
	AnalysisGCMS
	AnalysisELSD
	AnalysisCD
	AnalysisSFC
	AnalysisEPR
	AnalysisXRD
	AnalysisRaman
	AnalysisED
)

var analysisTypeNames = []string{
	"UNSPECIFIED",
	"CUSTOM",
	"LC",
	"GC",
	"IR",
	"NMR_1H",
	"NMR_13C",
	"NMR_OTHER",
	"MP",
	"UV",
	"TLC",
	"MS",
	"HRMS",
	"MSMS",
	"WEIGHT",
	"LCMS",
	"GCMS",
	"ELSD",
	"CD",
	"SFC",
	"EPR",
	"XRD",
	"RAMAN",
	"ED",
}

func (e AnalysisType) String() string { return enumString(analysisTypeNames, int32(e)) }
func (AnalysisType) Names() []string  { return analysisTypeNames }
func (e AnalysisType) IsCustom() bool { return e == AnalysisCustom }
