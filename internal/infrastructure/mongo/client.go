package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/Empresa-api/pkg/config"
)

// DefaultCollection colección de proyectos si MONGO_COLLECTION no está definido.
const DefaultCollection = "proyectos"

// Connect abre el cliente, verifica la conexión y devuelve la colección de proyectos.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("conectar mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	name := cfg.Collection
	if name == "" {
		name = DefaultCollection
	}
	return client, client.Database(cfg.Database).Collection(name), nil
}

// EnsureIndexes índices de las dos vías de búsqueda por empleado. Crear un índice existente no falla.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "empleadoId", Value: 1}}},
		{Keys: bson.D{{Key: "empleados._id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("crear índices de proyectos: %w", err)
	}
	return nil
}
