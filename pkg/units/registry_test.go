package units

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_CanonicalUnits(t *testing.T) {
	reg := Default()

	tests := []struct {
		kind Kind
		want string
	}{
		{KindTime, "HOUR"},
		{KindMass, "GRAM"},
		{KindMoles, "MOLE"},
		{KindVolume, "MILLILITER"},
		{KindConcentration, "MOLAR"},
		{KindPressure, "BAR"},
		{KindTemperature, "CELSIUS"},
		{KindCurrent, "AMPERE"},
		{KindVoltage, "VOLT"},
		{KindLength, "CENTIMETER"},
		{KindWavelength, "NANOMETER"},
		{KindFlowRate, "MICROLITER_PER_MINUTE"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			info, err := reg.Canonical(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, info.Name)
			assert.Equal(t, int32(1), info.Number)
			assert.True(t, info.Canonical)
			assert.True(t, info.Conversion.IsIdentity())
		})
	}
}

func TestDefaultRegistry_EveryKindHasTable(t *testing.T) {
	reg := Default()
	for _, kind := range Kinds() {
		units, err := reg.Units(kind)
		require.NoError(t, err, kind.String())
		assert.NotEmpty(t, units)
		assert.True(t, units[0].Canonical)
		for _, u := range units {
			n, ok := reg.UnitByName(kind, u.Name)
			assert.True(t, ok)
			assert.Equal(t, u.Number, n)
		}
	}
}

func TestRegistry_Lookup(t *testing.T) {
	reg := Default()

	conv, err := reg.Lookup(KindMass, int32(Milligram))
	require.NoError(t, err)
	assert.Equal(t, 1e-3, conv.Scale)

	_, err = reg.Lookup(KindMass, 0)
	assert.ErrorIs(t, err, ErrUnitUnspecified)

	_, err = reg.Lookup(KindVolume, 99)
	assert.ErrorIs(t, err, ErrUnknownUnit)

	_, err = reg.Lookup(KindVolume, -3)
	assert.ErrorIs(t, err, ErrUnknownUnit)

	_, err = reg.Lookup(KindUnspecified, 1)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestRegistry_UnitName(t *testing.T) {
	reg := Default()
	assert.Equal(t, "MM_HG", reg.UnitName(KindPressure, int32(MmHg)))
	assert.Equal(t, "UNSPECIFIED", reg.UnitName(KindPressure, 0))
	assert.Equal(t, "", reg.UnitName(KindPressure, 42))
}

func TestNewRegistry_RejectsNonIdentityCanonical(t *testing.T) {
	_, err := newRegistry([]unitTable{{kind: KindMass, units: []unitDef{
		unspecified,
		{"MILLIGRAM", Linear(1e-3)},
	}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identity")
}

func TestNewRegistry_RejectsDuplicateKind(t *testing.T) {
	_, err := newRegistry([]unitTable{massTable, massTable})
	require.Error(t, err)
}

func TestUnitEnums_MatchTables(t *testing.T) {
	assert.Equal(t, "MILLIGRAM", Milligram.String())
	assert.Equal(t, "17", MassUnit(17).String())
	assert.Equal(t, KindFlowRate, MicroliterPerHour.Kind())
	assert.Equal(t, []string{"UNSPECIFIED", "CELSIUS", "FAHRENHEIT", "KELVIN"}, Celsius.Names())
	assert.Equal(t, "WAVENUMBER", Wavenumber.String())
}

func TestCanonicalizationError_Messages(t *testing.T) {
	reg := Default()

	_, err := reg.Canonicalize(KindVolume, 1, 0, 99)
	var cerr *CanonicalizationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, KindVolume, cerr.Kind)
	assert.Equal(t, int32(99), cerr.Unit)
	assert.Equal(t, "unknown Volume unit 99", err.Error())

	_, err = reg.Canonicalize(KindMass, math.NaN(), 0, int32(Gram))
	assert.Contains(t, err.Error(), "invalid Mass value")
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("flow_rate")
	assert.True(t, ok)
	assert.Equal(t, KindFlowRate, k)

	k, ok = ParseKind("Temperature")
	assert.True(t, ok)
	assert.Equal(t, KindTemperature, k)

	_, ok = ParseKind("unspecified")
	assert.False(t, ok)

	_, ok = ParseKind("luminosity")
	assert.False(t, ok)
}
