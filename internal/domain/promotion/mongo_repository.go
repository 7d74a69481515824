package promotion

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "promotions"

type promotionDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ImageURL  string             `bson:"img_url"`
	StartTime int64              `bson:"start_time"`
	EndTime   int64              `bson:"end_time"`
}

func (d *promotionDocument) toEntity() *Promotion {
	return &Promotion{ID: d.ID.Hex(), ImageURL: d.ImageURL, StartTime: d.StartTime, EndTime: d.EndTime}
}

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) Repository {
	return &mongoRepository{coll: db.Collection(collectionName)}
}

func ensureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "start_time", Value: -1}, {Key: "end_time", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create promotion indexes: %w", err)
	}
	return nil
}

func (r *mongoRepository) Create(ctx context.Context, p *Promotion) error {
	doc := promotionDocument{
		ID:        primitive.NewObjectID(),
		ImageURL:  p.ImageURL,
		StartTime: p.StartTime,
		EndTime:   p.EndTime,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("create promotion: %w", err)
	}
	p.ID = doc.ID.Hex()
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*Promotion, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPromotionNotFound
	}

	var doc promotionDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get promotion: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *mongoRepository) List(ctx context.Context) ([]Promotion, error) {
	return r.find(ctx, bson.M{}, options.Find())
}

func (r *mongoRepository) ListActive(ctx context.Context, nowMs int64, limit, skip int) ([]Promotion, error) {
	filter := bson.M{
		"start_time": bson.M{"$lte": nowMs},
		"end_time":   bson.M{"$gte": nowMs},
	}
	return r.find(ctx, filter, options.Find().SetSkip(int64(skip)).SetLimit(int64(limit)))
}

func (r *mongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]Promotion, error) {
	opts.SetSort(bson.D{{Key: "start_time", Value: -1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}

	var docs []promotionDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}

	out := make([]Promotion, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toEntity())
	}
	return out, nil
}

func (r *mongoRepository) Update(ctx context.Context, id string, req UpdatePromotionRequest) (*Promotion, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPromotionNotFound
	}

	fields := req.fields()
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	var doc promotionDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M(fields)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update promotion: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *mongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete promotion: %w", err)
	}
	return res.DeletedCount > 0, nil
}
