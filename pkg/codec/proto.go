package codec

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/bufbuild/protocompile"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/platinummonkey/ordcheck/pkg/reaction"
)

//go:embed reaction.proto
var reactionProto string

const protoFileName = "reaction.proto"

var (
	schemaOnce sync.Once
	schemaDesc protoreflect.MessageDescriptor
	schemaErr  error
)

// Schema returns the descriptor of the Reaction message, compiling the embedded schema on
// first use.
func Schema() (protoreflect.MessageDescriptor, error) {
	schemaOnce.Do(func() {
		schemaDesc, schemaErr = compileSchema(context.Background())
	})
	return schemaDesc, schemaErr
}

// SchemaSource returns the embedded .proto text
func SchemaSource() string {
	return reactionProto
}

func compileSchema(ctx context.Context) (protoreflect.MessageDescriptor, error) {
	compiler := protocompile.Compiler{
		Resolver: &protocompile.SourceResolver{
			Accessor: protocompile.SourceAccessorFromMap(map[string]string{
				protoFileName: reactionProto,
			}),
		},
	}
	files, err := compiler.Compile(ctx, protoFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to compile reaction schema: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("reaction schema produced no files")
	}
	md := files[0].Messages().ByName("Reaction")
	if md == nil {
		return nil, fmt.Errorf("reaction schema has no Reaction message")
	}
	return md, nil
}

// DecodeProto decodes the binary protobuf encoding of a record. The message is bridged
// through its JSON form so that proto, JSON and YAML inputs share one conversion path.
func DecodeProto(data []byte) (*reaction.Reaction, Issues, error) {
	md, err := Schema()
	if err != nil {
		return nil, nil, err
	}
	msg := dynamicpb.NewMessage(md)
	if err := proto.Unmarshal(data, msg); err != nil {
		return nil, nil, fmt.Errorf("failed to decode protobuf record: %w", err)
	}
	js, err := protojson.MarshalOptions{UseProtoNames: true}.Marshal(msg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to bridge protobuf record: %w", err)
	}
	return DecodeJSON(js)
}

// EncodeProto renders a record in the binary protobuf encoding
func EncodeProto(r *reaction.Reaction) ([]byte, error) {
	md, err := Schema()
	if err != nil {
		return nil, err
	}
	js, err := EncodeJSON(r)
	if err != nil {
		return nil, err
	}
	msg := dynamicpb.NewMessage(md)
	if err := (protojson.UnmarshalOptions{}).Unmarshal(js, msg); err != nil {
		return nil, fmt.Errorf("failed to encode protobuf record: %w", err)
	}
	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode protobuf record: %w", err)
	}
	return data, nil
}
