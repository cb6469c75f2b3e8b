package units

import "strconv"

// Unit is implemented by every per-kind unit enumeration
type Unit interface {
	~int32
	Kind() Kind
	String() string
}

// Quantity is a measured value with an optional precision, in units of U
type Quantity[U Unit] struct {
	Value     float64 `json:"value"`
	Precision float64 `json:"precision,omitempty"`
	Units     U       `json:"units"`
}

type (
	Time          = Quantity[TimeUnit]
	Mass          = Quantity[MassUnit]
	Moles         = Quantity[MolesUnit]
	Volume        = Quantity[VolumeUnit]
	Concentration = Quantity[ConcentrationUnit]
	Pressure      = Quantity[PressureUnit]
	Temperature   = Quantity[TemperatureUnit]
	Current       = Quantity[CurrentUnit]
	Voltage       = Quantity[VoltageUnit]
	Length        = Quantity[LengthUnit]
	Wavelength    = Quantity[WavelengthUnit]
	FlowRate      = Quantity[FlowRateUnit]
)

// Kind returns the quantity's physical kind
func (q Quantity[U]) Kind() Kind {
	var u U
	return u.Kind()
}

// IsZero reports whether the quantity has never been set
func (q Quantity[U]) IsZero() bool {
	return q.Value == 0 && q.Precision == 0 && q.Units == 0
}

func (q Quantity[U]) String() string {
	s := strconv.FormatFloat(q.Value, 'g', -1, 64)
	if q.Precision != 0 {
		s += " ± " + strconv.FormatFloat(q.Precision, 'g', -1, 64)
	}
	return s + " " + q.Units.String()
}

// CanonicalizeQuantity converts q into the canonical unit of its kind using r.
// On error q is returned unchanged alongside the error.
func CanonicalizeQuantity[U Unit](r *Registry, q Quantity[U]) (Quantity[U], error) {
	res, err := r.Canonicalize(q.Kind(), q.Value, q.Precision, int32(q.Units))
	if err != nil {
		return q, err
	}
	return Quantity[U]{Value: res.Value, Precision: res.Precision, Units: U(res.Unit)}, nil
}

func unitString(t unitTable, n int32) string {
	if n >= 0 && int(n) < len(t.units) {
		return t.units[n].name
	}
	return strconv.Itoa(int(n))
}

// TimeUnit enumerates units of Time
type TimeUnit int32

const (
	TimeUnspecified TimeUnit = iota
	Hour
	Minute
	Second
	Day
)

func (u TimeUnit) Kind() Kind     { return KindTime }
func (u TimeUnit) String() string { return unitString(timeTable, int32(u)) }
func (TimeUnit) Names() []string  { return timeTable.names() }

// MassUnit enumerates units of Mass
type MassUnit int32

const (
	MassUnspecified MassUnit = iota
	Gram
	Milligram
	Microgram
	Kilogram
)

func (u MassUnit) Kind() Kind     { return KindMass }
func (u MassUnit) String() string { return unitString(massTable, int32(u)) }
func (MassUnit) Names() []string  { return massTable.names() }

// MolesUnit enumerates units of amount of substance
type MolesUnit int32

const (
	MolesUnspecified MolesUnit = iota
	Mole
	Millimole
	Micromole
	Nanomole
)

func (u MolesUnit) Kind() Kind     { return KindMoles }
func (u MolesUnit) String() string { return unitString(molesTable, int32(u)) }
func (MolesUnit) Names() []string  { return molesTable.names() }

// VolumeUnit enumerates units of Volume
type VolumeUnit int32

const (
	VolumeUnspecified VolumeUnit = iota
	Milliliter
	Microliter
	Liter
	Nanoliter
)

func (u VolumeUnit) Kind() Kind     { return KindVolume }
func (u VolumeUnit) String() string { return unitString(volumeTable, int32(u)) }
func (VolumeUnit) Names() []string  { return volumeTable.names() }

// ConcentrationUnit enumerates units of Concentration
type ConcentrationUnit int32

const (
	ConcentrationUnspecified ConcentrationUnit = iota
	Molar
	Millimolar
	Micromolar
)

func (u ConcentrationUnit) Kind() Kind     { return KindConcentration }
func (u ConcentrationUnit) String() string { return unitString(concentrationTable, int32(u)) }
func (ConcentrationUnit) Names() []string  { return concentrationTable.names() }

// PressureUnit enumerates units of Pressure
type PressureUnit int32

const (
	PressureUnspecified PressureUnit = iota
	Bar
	Atmosphere
	PSI
	Kilopascal
	Pascal
	Torr
	MmHg
)

func (u PressureUnit) Kind() Kind     { return KindPressure }
func (u PressureUnit) String() string { return unitString(pressureTable, int32(u)) }
func (PressureUnit) Names() []string  { return pressureTable.names() }

// TemperatureUnit enumerates units of Temperature
type TemperatureUnit int32

const (
	TemperatureUnspecified TemperatureUnit = iota
	Celsius
	Fahrenheit
	Kelvin
)

func (u TemperatureUnit) Kind() Kind     { return KindTemperature }
func (u TemperatureUnit) String() string { return unitString(temperatureTable, int32(u)) }
func (TemperatureUnit) Names() []string  { return temperatureTable.names() }

// CurrentUnit enumerates units of electric current
type CurrentUnit int32

const (
	CurrentUnspecified CurrentUnit = iota
	Ampere
	Milliampere
)

func (u CurrentUnit) Kind() Kind     { return KindCurrent }
func (u CurrentUnit) String() string { return unitString(currentTable, int32(u)) }
func (CurrentUnit) Names() []string  { return currentTable.names() }

// VoltageUnit enumerates units of electric potential
type VoltageUnit int32

const (
	VoltageUnspecified VoltageUnit = iota
	Volt
	Millivolt
)

func (u VoltageUnit) Kind() Kind     { return KindVoltage }
func (u VoltageUnit) String() string { return unitString(voltageTable, int32(u)) }
func (VoltageUnit) Names() []string  { return voltageTable.names() }

// LengthUnit enumerates units of Length
type LengthUnit int32

const (
	LengthUnspecified LengthUnit = iota
	Centimeter
	Millimeter
	Meter
	Inch
	Foot
)

func (u LengthUnit) Kind() Kind     { return KindLength }
func (u LengthUnit) String() string { return unitString(lengthTable, int32(u)) }
func (LengthUnit) Names() []string  { return lengthTable.names() }

// WavelengthUnit enumerates units of Wavelength
type WavelengthUnit int32

const (
	WavelengthUnspecified WavelengthUnit = iota
	Nanometer
	Wavenumber
)

func (u WavelengthUnit) Kind() Kind     { return KindWavelength }
func (u WavelengthUnit) String() string { return unitString(wavelengthTable, int32(u)) }
func (WavelengthUnit) Names() []string  { return wavelengthTable.names() }

// FlowRateUnit enumerates units of volumetric flow
type FlowRateUnit int32

const (
	FlowRateUnspecified FlowRateUnit = iota
	MicroliterPerMinute
	MicroliterPerSecond
	MilliliterPerMinute
	MilliliterPerSecond
	MicroliterPerHour
)

func (u FlowRateUnit) Kind() Kind     { return KindFlowRate }
func (u FlowRateUnit) String() string { return unitString(flowRateTable, int32(u)) }
func (FlowRateUnit) Names() []string  { return flowRateTable.names() }
