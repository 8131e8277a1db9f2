package repository

import (
	"context"

	"epost-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Ledger append-only de observaciones por parcela.
type MongoTrackingRepository struct {
	col *mongo.Collection
}

func NewMongoTrackingRepository(db *mongo.Database) *MongoTrackingRepository {
	return &MongoTrackingRepository{col: db.Collection("tracking_logs")}
}

// Append es idempotente: el _id es determinístico, así que reintentar el
// mismo evento no duplica entradas.
func (m *MongoTrackingRepository) Append(ctx context.Context, entry *model.TrackingLog) error {
	filter := bson.M{"_id": entry.EventID}
	update := bson.M{"$setOnInsert": entry}
	opts := options.Update().SetUpsert(true)
	_, err := m.col.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByParcelID devuelve el historial completo, del más viejo al más nuevo.
func (m *MongoTrackingRepository) FindByParcelID(ctx context.Context, parcelID string) ([]*model.TrackingLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cur, err := m.col.Find(ctx, bson.M{"parcel_id": parcelID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*model.TrackingLog
	for cur.Next(ctx) {
		var v model.TrackingLog
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, nil
}

// DeleteByParcelID borra todo el historial de una parcela.
// Solo lo invoca el cascade de DeleteParcel.
func (m *MongoTrackingRepository) DeleteByParcelID(ctx context.Context, parcelID string) error {
	_, err := m.col.DeleteMany(ctx, bson.M{"parcel_id": parcelID})
	return err
}
