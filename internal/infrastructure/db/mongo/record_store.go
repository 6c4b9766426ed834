package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/profissa/marketplace-api/internal/core/domain"
	"github.com/profissa/marketplace-api/internal/core/ports"
)

// RecordStore is the MongoDB-backed record store. Each named collection maps
// to a mongo collection; records are stored as-is with their string "id"
// field (mongo's own _id stays internal and is stripped on the way out).
type RecordStore struct {
	db *mongo.Database
}

func NewRecordStore(db *mongo.Database) *RecordStore {
	return &RecordStore{db: db}
}

func (s *RecordStore) List(ctx context.Context, collection string, filter ports.Filter) ([]domain.Record, error) {
	query := bson.M{}
	for k, v := range filter {
		query[k] = v
	}

	cur, err := s.db.Collection(collection).Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	var records []domain.Record
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("list %s: decode: %w", collection, err)
		}
		records = append(records, toRecord(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return records, nil
}

func (s *RecordStore) Get(ctx context.Context, collection, id string) (domain.Record, error) {
	var doc bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return toRecord(doc), nil
}

func (s *RecordStore) Create(ctx context.Context, collection string, rec domain.Record) (domain.Record, error) {
	if _, err := s.db.Collection(collection).InsertOne(ctx, bson.M(rec)); err != nil {
		return nil, fmt.Errorf("create %s: %w", collection, err)
	}
	return rec, nil
}

func (s *RecordStore) Update(ctx context.Context, collection, id string, rec domain.Record) (domain.Record, error) {
	doc := bson.M(rec.Clone())
	delete(doc, "_id")

	res, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{"id": id}, doc)
	if err != nil {
		return nil, fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (s *RecordStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toRecord(doc bson.M) domain.Record {
	rec := domain.Record(doc)
	delete(rec, "_id")
	return rec
}
