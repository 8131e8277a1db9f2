package repository

import (
	"context"
	"time"

	"epost-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoContainerRepository struct {
	col *mongo.Collection
}

func NewMongoContainerRepository(db *mongo.Database) *MongoContainerRepository {
	return &MongoContainerRepository{col: db.Collection("containers")}
}

func (m *MongoContainerRepository) Insert(ctx context.Context, c *model.Container) error {
	_, err := m.col.InsertOne(ctx, c)
	return err
}

func (m *MongoContainerRepository) FindByContainerID(ctx context.Context, containerID string) (*model.Container, error) {
	var res model.Container
	err := m.col.FindOne(ctx, bson.M{"container_id": containerID}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

// PushLog agrega una observación al historial embebido del container.
func (m *MongoContainerRepository) PushLog(ctx context.Context, containerID string, entry model.LocationLog) error {
	filter := bson.M{"container_id": containerID}
	update := bson.M{
		"$push": bson.M{"logs": entry},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	r, err := m.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if r.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
