package repository

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// objectRef holds a reference that is an ObjectId when it parses as one and a
// plain string otherwise. Older documents mix both encodings.
type objectRef string

func (r objectRef) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if oid, err := primitive.ObjectIDFromHex(string(r)); err == nil {
		return bson.MarshalValue(oid)
	}
	return bson.MarshalValue(string(r))
}

func (r *objectRef) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.ObjectID:
		*r = objectRef(raw.ObjectID().Hex())
	case bsontype.String:
		*r = objectRef(raw.StringValue())
	case bsontype.Null, bsontype.Undefined:
		*r = ""
	default:
		return fmt.Errorf("decode object reference: unsupported bson type %s", t)
	}
	return nil
}

// attachmentList decodes either a single file name or an array of names.
type attachmentList []string

func (a *attachmentList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		if name := raw.StringValue(); name != "" {
			*a = attachmentList{name}
		} else {
			*a = nil
		}
	case bsontype.Array:
		values, err := raw.Array().Values()
		if err != nil {
			return fmt.Errorf("decode attachments: %w", err)
		}
		out := make(attachmentList, 0, len(values))
		for _, v := range values {
			if s, ok := v.StringValueOK(); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			out = nil
		}
		*a = out
	case bsontype.Null, bsontype.Undefined:
		*a = nil
	default:
		return fmt.Errorf("decode attachments: unsupported bson type %s", t)
	}
	return nil
}
