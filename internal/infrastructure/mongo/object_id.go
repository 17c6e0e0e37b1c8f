package mongo

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// docID identificador de documento expuesto como string. Un valor hex de 24 caracteres se
// guarda como ObjectID; cualquier otro valor se guarda como string tal cual.
type docID string

// idValue valor BSON con el que se guarda y se consulta id.
func idValue(id string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

func (id docID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(idValue(string(id)))
}

func (id *docID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.ObjectID:
		*id = docID(rv.ObjectID().Hex())
	case bsontype.String:
		*id = docID(rv.StringValue())
	case bsontype.Null, bsontype.Undefined:
		*id = ""
	default:
		return fmt.Errorf("id de tipo BSON no soportado: %s", t)
	}
	return nil
}
