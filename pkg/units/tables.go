package units

// unitDef is one enumerant of a unit enumeration. The slice index is the enum number.
type unitDef struct {
	name       string
	conversion Conversion
}

type unitTable struct {
	kind  Kind
	units []unitDef
}

func (t unitTable) names() []string {
	names := make([]string, len(t.units))
	for i, u := range t.units {
		names[i] = u.name
	}
	return names
}

var unspecified = unitDef{name: "UNSPECIFIED"}

// The enumerant order below is the schema's declared order. Index 1 of every table is the
// canonical unit for its kind and must carry the identity conversion.

var timeTable = unitTable{kind: KindTime, units: []unitDef{
	unspecified,
	{"HOUR", Linear(1)},
	{"MINUTE", Linear(1.0 / 60)},
	{"SECOND", Linear(1.0 / 3600)},
	{"DAY", Linear(24)},
}}

var massTable = unitTable{kind: KindMass, units: []unitDef{
	unspecified,
	{"GRAM", Linear(1)},
	{"MILLIGRAM", Linear(1e-3)},
	{"MICROGRAM", Linear(1e-6)},
	{"KILOGRAM", Linear(1e3)},
}}

var molesTable = unitTable{kind: KindMoles, units: []unitDef{
	unspecified,
	{"MOLE", Linear(1)},
	{"MILLIMOLE", Linear(1e-3)},
	{"MICROMOLE", Linear(1e-6)},
	{"NANOMOLE", Linear(1e-9)},
}}

var volumeTable = unitTable{kind: KindVolume, units: []unitDef{
	unspecified,
	{"MILLILITER", Linear(1)},
	{"MICROLITER", Linear(1e-3)},
	{"LITER", Linear(1e3)},
	{"NANOLITER", Linear(1e-6)},
}}

var concentrationTable = unitTable{kind: KindConcentration, units: []unitDef{
	unspecified,
	{"MOLAR", Linear(1)},
	{"MILLIMOLAR", Linear(1e-3)},
	{"MICROMOLAR", Linear(1e-6)},
}}

var pressureTable = unitTable{kind: KindPressure, units: []unitDef{
	unspecified,
	{"BAR", Linear(1)},
	{"ATMOSPHERE", Linear(1.01325)},
	{"PSI", Linear(0.0689475729)},
	{"KILOPASCAL", Linear(0.01)},
	{"PASCAL", Linear(1e-5)},
	{"TORR", Linear(1.01325 / 760)},
	{"MM_HG", Linear(0.00133322387415)},
}}

var temperatureTable = unitTable{kind: KindTemperature, units: []unitDef{
	unspecified,
	{"CELSIUS", Linear(1)},
	{"FAHRENHEIT", Affine(5.0/9, -32*5.0/9)},
	{"KELVIN", Affine(1, -273.15)},
}}

var currentTable = unitTable{kind: KindCurrent, units: []unitDef{
	unspecified,
	{"AMPERE", Linear(1)},
	{"MILLIAMPERE", Linear(1e-3)},
}}

var voltageTable = unitTable{kind: KindVoltage, units: []unitDef{
	unspecified,
	{"VOLT", Linear(1)},
	{"MILLIVOLT", Linear(1e-3)},
}}

var lengthTable = unitTable{kind: KindLength, units: []unitDef{
	unspecified,
	{"CENTIMETER", Linear(1)},
	{"MILLIMETER", Linear(0.1)},
	{"METER", Linear(100)},
	{"INCH", Linear(2.54)},
	{"FOOT", Linear(30.48)},
}}

// WAVENUMBER is cm^-1; 1e7 nm·cm^-1 converts it to a wavelength in nanometers.
var wavelengthTable = unitTable{kind: KindWavelength, units: []unitDef{
	unspecified,
	{"NANOMETER", Linear(1)},
	{"WAVENUMBER", Reciprocal(1e7)},
}}

var flowRateTable = unitTable{kind: KindFlowRate, units: []unitDef{
	unspecified,
	{"MICROLITER_PER_MINUTE", Linear(1)},
	{"MICROLITER_PER_SECOND", Linear(60)},
	{"MILLILITER_PER_MINUTE", Linear(1e3)},
	{"MILLILITER_PER_SECOND", Linear(6e4)},
	{"MICROLITER_PER_HOUR", Linear(1.0 / 60)},
}}

var allTables = []unitTable{
	timeTable,
	massTable,
	molesTable,
	volumeTable,
	concentrationTable,
	pressureTable,
	temperatureTable,
	currentTable,
	voltageTable,
	lengthTable,
	wavelengthTable,
	flowRateTable,
}
