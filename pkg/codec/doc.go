// Package codec reads and writes reaction records.
//
// Three encodings are supported: protobuf JSON with the original field names, the YAML
// rendering of that JSON, and binary protobuf against an embedded schema. All three are
// converted through the wire types in this package, so every input path reports the same
// decoding issues:
//
//   - ambiguous_oneof: more than one branch of a oneof was populated. The first branch in
//     declaration order is kept.
//   - unknown_enum: an enumerant name is not part of its enumeration. The value decodes as
//     UNSPECIFIED.
//
// Numeric enumerants that are out of range are kept verbatim so that validation can
// report them against the unit registry.
package codec
