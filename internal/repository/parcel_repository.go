package repository

import (
	"context"

	"epost-backend/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implementation
type MongoParcelRepository struct {
	col *mongo.Collection
}

func NewMongoParcelRepository(db *mongo.Database) *MongoParcelRepository {
	return &MongoParcelRepository{col: db.Collection("parcels")}
}

func (m *MongoParcelRepository) Insert(ctx context.Context, p *model.Parcel) error {
	_, err := m.col.InsertOne(ctx, p)
	return err
}

func (m *MongoParcelRepository) FindByTrackingID(ctx context.Context, trackingID string) (*model.Parcel, error) {
	var res model.Parcel
	err := m.col.FindOne(ctx, bson.M{"tracking_id": trackingID}).Decode(&res)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	return &res, err
}

// FindByCreator devuelve las parcelas del usuario, las más nuevas primero.
func (m *MongoParcelRepository) FindByCreator(ctx context.Context, userID string) ([]*model.Parcel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{"created_by": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*model.Parcel
	for cur.Next(ctx) {
		var v model.Parcel
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, nil
}

// FindByTrackingIDs resuelve un conjunto de trackingIds (para containers).
func (m *MongoParcelRepository) FindByTrackingIDs(ctx context.Context, trackingIDs []string) ([]*model.Parcel, error) {
	cur, err := m.col.Find(ctx, bson.M{"tracking_id": bson.M{"$in": trackingIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*model.Parcel
	for cur.Next(ctx) {
		var v model.Parcel
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, nil
}

// UpdateSnapshot sobreescribe los campos snapshot (status, location).
func (m *MongoParcelRepository) UpdateSnapshot(ctx context.Context, trackingID, status, location string) error {
	filter := bson.M{"tracking_id": trackingID}
	update := bson.M{"$set": bson.M{
		"status":   status,
		"location": location,
	}}

	r, err := m.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if r.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PushLogToMany agrega la misma observación embebida a todas las parcelas
// del lote (fanout de container). No toca el Tracking Ledger.
func (m *MongoParcelRepository) PushLogToMany(ctx context.Context, trackingIDs []string, entry model.LocationLog) error {
	filter := bson.M{"tracking_id": bson.M{"$in": trackingIDs}}
	update := bson.M{
		"$push": bson.M{"logs": entry},
		"$set":  bson.M{"location": entry.Location},
	}
	_, err := m.col.UpdateMany(ctx, filter, update)
	return err
}

func (m *MongoParcelRepository) Delete(ctx context.Context, trackingID string) error {
	r, err := m.col.DeleteOne(ctx, bson.M{"tracking_id": trackingID})
	if err != nil {
		return err
	}
	if r.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MongoParcelRepository) Count(ctx context.Context) (int64, error) {
	return m.col.CountDocuments(ctx, bson.M{})
}

func (m *MongoParcelRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return m.col.CountDocuments(ctx, bson.M{"status": status})
}
