package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "orders"

type orderDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	Items      []Item             `bson:"items"`
	TotalPrice float64            `bson:"total_price"`
	Status     Status             `bson:"status"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (d *orderDocument) toEntity() *Order {
	items := d.Items
	if items == nil {
		items = []Item{}
	}
	return &Order{
		ID:         d.ID.Hex(),
		UserID:     d.UserID,
		Items:      items,
		TotalPrice: d.TotalPrice,
		Status:     d.Status,
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

type mongoRepository struct {
	coll *mongo.Collection
	now  Clock
}

func NewMongoRepository(db *mongo.Database, clock Clock) Repository {
	return &mongoRepository{coll: db.Collection(collectionName), now: clock}
}

func ensureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create order indexes: %w", err)
	}
	return nil
}

func (r *mongoRepository) clock() time.Time {
	return r.now().UTC().Truncate(time.Millisecond)
}

func (r *mongoRepository) Create(ctx context.Context, o *Order) error {
	now := r.clock()
	doc := orderDocument{
		ID:         primitive.NewObjectID(),
		UserID:     o.UserID,
		Items:      o.Items,
		TotalPrice: o.TotalPrice,
		Status:     o.Status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	o.ID = doc.ID.Hex()
	o.CreatedAt = now
	o.UpdatedAt = now
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	var doc orderDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *mongoRepository) List(ctx context.Context, f ListFilter) ([]Order, error) {
	filter := bson.M{}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(f.Skip)).
		SetLimit(int64(f.Limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	var docs []orderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	out := make([]Order, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toEntity())
	}
	return out, nil
}

func (r *mongoRepository) Update(ctx context.Context, id string, req UpdateOrderRequest) (*Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	set := bson.M{"updated_at": r.clock()}
	if req.Status != nil {
		set["status"] = *req.Status
	}
	if req.Items != nil {
		set["items"] = *req.Items
		set["total_price"] = TotalOf(*req.Items)
	}

	var doc orderDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
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
		return false, fmt.Errorf("delete order: %w", err)
	}
	return res.DeletedCount > 0, nil
}
