package units

import (
	"strconv"
	"strings"
)

// Kind identifies a physical quantity kind
type Kind int

const (
	KindUnspecified Kind = iota
	KindTime
	KindMass
	KindMoles
	KindVolume
	KindConcentration
	KindPressure
	KindTemperature
	KindCurrent
	KindVoltage
	KindLength
	KindWavelength
	KindFlowRate
)

var kindNames = []string{
	"Unspecified",
	"Time",
	"Mass",
	"Moles",
	"Volume",
	"Concentration",
	"Pressure",
	"Temperature",
	"Current",
	"Voltage",
	"Length",
	"Wavelength",
	"FlowRate",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Kinds returns every concrete quantity kind in declaration order
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames)-1)
	for k := KindTime; int(k) < len(kindNames); k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind resolves a kind name case-insensitively. "flow_rate" and "FlowRate" are both accepted.
func ParseKind(name string) (Kind, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(name), "_", "")
	for i, n := range kindNames {
		if i == 0 {
			continue
		}
		if strings.ToLower(n) == normalized {
			return Kind(i), true
		}
	}
	return KindUnspecified, false
}
