package resultmod

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/batchql/batchql/dberr"
)

// wireModifier is the on-the-wire shape every modifier serializes to: a
// type tag plus a bag of properties, with a WriteProperty/
// WriteOptionalProperty-style split between always-present and
// optional fields. encoding/json is used here rather than hand-authoring
// generated protobuf code for four small, rarely-changing shapes: there
// is no protoc toolchain available to regenerate .pb.go bindings, and
// json.RawMessage gives the same "read this property if present"
// semantics an optional-property reader needs, without fabricating a
// fake dependency.
type wireModifier struct {
	Type    Kind            `json:"type"`
	Targets []string        `json:"targets,omitempty"`
	Limit   json.RawMessage `json:"limit,omitempty"`
	Offset  json.RawMessage `json:"offset,omitempty"`
	Orders  []OrderSpec     `json:"orders,omitempty"`
}

// Serialize encodes a Modifier to its wire form.
func Serialize(m Modifier) ([]byte, error) {
	wire := wireModifier{Type: m.ModifierKind()}

	switch mod := m.(type) {
	case *DistinctModifier:
		wire.Targets = mod.Targets
	case *LimitModifier:
		if err := writeOptional(&wire.Limit, mod.Limit); err != nil {
			return nil, errors.Wrap(err, "couldn't write limit property")
		}
		if err := writeOptional(&wire.Offset, mod.Offset); err != nil {
			return nil, errors.Wrap(err, "couldn't write offset property")
		}
	case *LimitPercentModifier:
		if err := writeOptional(&wire.Limit, mod.Limit); err != nil {
			return nil, errors.Wrap(err, "couldn't write limit property")
		}
		if err := writeOptional(&wire.Offset, mod.Offset); err != nil {
			return nil, errors.Wrap(err, "couldn't write offset property")
		}
	case *OrderModifier:
		wire.Orders = mod.Orders
	default:
		return nil, dberr.Newf(dberr.KindDeserialization, "unsupported modifier type for serialization: %T", m)
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't marshal result modifier")
	}
	return data, nil
}

// Deserialize decodes a Modifier from its wire form, failing on any tag
// outside the closed enumeration.
func Deserialize(data []byte) (Modifier, error) {
	var wire wireModifier
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, errors.Wrap(err, "couldn't unmarshal result modifier")
	}

	switch wire.Type {
	case KindDistinct:
		return &DistinctModifier{Targets: wire.Targets}, nil
	case KindLimit:
		mod := &LimitModifier{}
		if err := readOptional(wire.Limit, &mod.Limit); err != nil {
			return nil, errors.Wrap(err, "couldn't read limit property")
		}
		if err := readOptional(wire.Offset, &mod.Offset); err != nil {
			return nil, errors.Wrap(err, "couldn't read offset property")
		}
		return mod, nil
	case KindLimitPercent:
		mod := &LimitPercentModifier{}
		if err := readOptional(wire.Limit, &mod.Limit); err != nil {
			return nil, errors.Wrap(err, "couldn't read limit property")
		}
		if err := readOptional(wire.Offset, &mod.Offset); err != nil {
			return nil, errors.Wrap(err, "couldn't read offset property")
		}
		return mod, nil
	case KindOrder:
		return &OrderModifier{Orders: wire.Orders}, nil
	default:
		return nil, dberr.Newf(dberr.KindDeserialization, "unsupported type for deserialization of result modifier: %q", wire.Type)
	}
}

// writeOptional is the WriteOptionalProperty equivalent: a nil pointer
// writes nothing (the property is simply absent from the wire form).
func writeOptional(dst *json.RawMessage, value interface{}) error {
	switch v := value.(type) {
	case *int64:
		if v == nil {
			return nil
		}
		data, err := json.Marshal(*v)
		if err != nil {
			return err
		}
		*dst = data
	case *float64:
		if v == nil {
			return nil
		}
		data, err := json.Marshal(*v)
		if err != nil {
			return err
		}
		*dst = data
	}
	return nil
}

// readOptional is the ReadOptionalProperty equivalent: an absent
// property leaves the destination pointer nil.
func readOptional(raw json.RawMessage, dst interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	switch d := dst.(type) {
	case **int64:
		var v int64
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*d = &v
	case **float64:
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*d = &v
	}
	return nil
}
