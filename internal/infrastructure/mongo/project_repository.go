package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/Empresa-api/internal/domain/entity"
	"github.com/jhoicas/Empresa-api/internal/domain/repository"
)

var _ repository.ProyectoRepository = (*ProyectoRepo)(nil)

// ProyectoRepo implementación del puerto ProyectoRepository sobre MongoDB.
// Un proyecto es un único documento: agregar o quitar tareas reescribe el documento entero.
type ProyectoRepo struct {
	coll *mongo.Collection
}

// NewProyectoRepository construye el adaptador sobre la colección de proyectos.
func NewProyectoRepository(coll *mongo.Collection) *ProyectoRepo {
	return &ProyectoRepo{coll: coll}
}

// Save inserta con un ObjectID nuevo si p.ID está vacío; si no, reemplaza con upsert.
// Un id hex se consulta como ObjectID, de modo que los documentos existentes se actualizan en su lugar.
func (r *ProyectoRepo) Save(ctx context.Context, p *entity.Proyecto) error {
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
		if _, err := r.coll.InsertOne(ctx, toDocument(p)); err != nil {
			p.ID = ""
			return fmt.Errorf("insert proyecto: %w", err)
		}
		return nil
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": idValue(p.ID)}, toDocument(p), options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace proyecto %s: %w", p.ID, err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ProyectoRepo) GetByID(ctx context.Context, id string) (*entity.Proyecto, error) {
	var doc proyectoDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": idValue(id)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proyecto %s: %w", id, err)
	}
	return doc.toEntity(), nil
}

func (r *ProyectoRepo) List(ctx context.Context) ([]*entity.Proyecto, error) {
	return r.find(ctx, bson.M{})
}

func (r *ProyectoRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": idValue(id)})
	if err != nil {
		return false, fmt.Errorf("delete proyecto %s: %w", id, err)
	}
	return res.DeletedCount > 0, nil
}

func (r *ProyectoRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count proyectos: %w", err)
	}
	return n, nil
}

// SearchByNombre regex literal sin distinguir mayúsculas.
func (r *ProyectoRepo) SearchByNombre(ctx context.Context, nombre string) ([]*entity.Proyecto, error) {
	return r.find(ctx, bson.M{"nombre": primitive.Regex{Pattern: regexp.QuoteMeta(nombre), Options: "i"}})
}

func (r *ProyectoRepo) FindByEmpleadoID(ctx context.Context, empleadoID int64) ([]*entity.Proyecto, error) {
	return r.find(ctx, bson.M{"empleadoId": empleadoID})
}

func (r *ProyectoRepo) FindByEmpleadosID(ctx context.Context, empleadoID int64) ([]*entity.Proyecto, error) {
	return r.find(ctx, bson.M{"empleados._id": empleadoID})
}

func (r *ProyectoRepo) find(ctx context.Context, filter bson.M) ([]*entity.Proyecto, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find proyectos: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []proyectoDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode proyectos: %w", err)
	}
	out := make([]*entity.Proyecto, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEntity())
	}
	return out, nil
}
