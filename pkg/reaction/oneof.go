package reaction

import "github.com/platinummonkey/ordcheck/pkg/units"

// IdentifierValue is the payload of a reaction or compound identifier.
// It is either a StringValue or a BytesValue.
type IdentifierValue interface {
	isIdentifierValue()
}

type StringValue string

type BytesValue []byte

func (StringValue) isIdentifierValue() {}
func (BytesValue) isIdentifierValue()  {}

// Amount is how much of a compound was used: *MassAmount, *MolesAmount or *VolumeAmount.
type Amount interface {
	isAmount()
}

type MassAmount struct {
	Mass units.Mass
}

type MolesAmount struct {
	Moles units.Moles
}

// VolumeAmount is a volume of a compound. IncludesSolutes is true when the volume was
// measured after dissolving the solutes.
type VolumeAmount struct {
	Volume          units.Volume
	IncludesSolutes bool
}

func (*MassAmount) isAmount()   {}
func (*MolesAmount) isAmount()  {}
func (*VolumeAmount) isAmount() {}

// FeatureValue is the value of a computed compound feature
type FeatureValue interface {
	isFeatureValue()
}

type FeatureString string

type FeatureFloat float64

func (FeatureString) isFeatureValue() {}
func (FeatureFloat) isFeatureValue()  {}

// DataValue is the payload of a Data message
type DataValue interface {
	isDataValue()
}

type (
	DataFloat   float64
	DataInteger int64
	DataBytes   []byte
	DataString  string
	DataURL     string
)

func (DataFloat) isDataValue()   {}
func (DataInteger) isDataValue() {}
func (DataBytes) isDataValue()   {}
func (DataString) isDataValue()  {}
func (DataURL) isDataValue()     {}
