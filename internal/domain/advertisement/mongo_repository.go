package advertisement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "advertisements"

type advertisementDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Title            string             `bson:"title"`
	ImageURL         string             `bson:"img_url"`
	Description      *string            `bson:"description"`
	StartTime        time.Time          `bson:"start_time"`
	EndTime          time.Time          `bson:"end_time"`
	TargetProductIDs []int64            `bson:"target_product_ids"`
	LandingURL       *string            `bson:"landing_url"`
	IsActive         bool               `bson:"is_active"`
	Metadata         map[string]any     `bson:"metadata"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

type mongoRepository struct {
	coll *mongo.Collection
	now  Clock
}

// NewMongoRepository stores advertisements in the "advertisements" collection.
func NewMongoRepository(db *mongo.Database, clock Clock) Repository {
	return &mongoRepository{coll: db.Collection(collectionName), now: clock}
}

func ensureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(collectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "start_time", Value: 1}, {Key: "end_time", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create advertisement indexes: %w", err)
	}
	return nil
}

// BSON dates carry millisecond precision; truncate so the returned entity
// matches what a later read sees.
func (r *mongoRepository) clock() time.Time {
	return r.now().UTC().Truncate(time.Millisecond)
}

func (r *mongoRepository) Create(ctx context.Context, ad *Advertisement) error {
	now := r.clock()
	ad.CreatedAt = now
	ad.UpdatedAt = now
	ad.StartTime = ad.StartTime.UTC().Truncate(time.Millisecond)
	ad.EndTime = ad.EndTime.UTC().Truncate(time.Millisecond)

	doc := toDocument(ad)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("create advertisement: %w", err)
	}

	ad.ID = doc.ID.Hex()
	ad.normalize()
	return nil
}

func (r *mongoRepository) GetByID(ctx context.Context, id string) (*Advertisement, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrAdvertisementNotFound
	}

	var doc advertisementDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAdvertisementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get advertisement: %w", err)
	}
	return doc.toEntity(), nil
}

func (r *mongoRepository) ListActive(ctx context.Context, now time.Time, limit, skip int) ([]Advertisement, error) {
	at := now.UTC()
	filter := bson.M{
		"is_active":  true,
		"start_time": bson.M{"$lte": at},
		"end_time":   bson.M{"$gte": at},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list active advertisements: %w", err)
	}

	var docs []advertisementDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list active advertisements: %w", err)
	}

	ads := make([]Advertisement, 0, len(docs))
	for i := range docs {
		ads = append(ads, *docs[i].toEntity())
	}
	return ads, nil
}

func (r *mongoRepository) Update(ctx context.Context, id string, p Patch) (*Advertisement, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrAdvertisementNotFound
	}

	set := patchSet(p)
	set["updated_at"] = r.clock()

	var doc advertisementDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAdvertisementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update advertisement: %w", err)
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
		return false, fmt.Errorf("delete advertisement: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func patchSet(p Patch) bson.M {
	set := bson.M{}

	if p.Title.Set {
		set["title"] = strings.TrimSpace(p.Title.Value)
	}
	if p.ImageURL.Set {
		set["img_url"] = p.ImageURL.Value
	}
	if p.Description.Set {
		set["description"] = p.Description.Ptr()
	}
	if p.StartTime.Set {
		set["start_time"] = p.StartTime.Value.UTC()
	}
	if p.EndTime.Set {
		set["end_time"] = p.EndTime.Value.UTC()
	}
	if p.TargetProductIDs.Set {
		ids := p.TargetProductIDs.Value
		if ids == nil {
			ids = []int64{}
		}
		set["target_product_ids"] = ids
	}
	if p.LandingURL.Set {
		set["landing_url"] = p.LandingURL.Ptr()
	}
	if p.IsActive.Set {
		set["is_active"] = p.IsActive.Value
	}
	if p.Metadata.Set {
		set["metadata"] = p.Metadata.Value
	}
	return set
}

func toDocument(ad *Advertisement) *advertisementDocument {
	ids := ad.TargetProductIDs
	if ids == nil {
		ids = []int64{}
	}
	return &advertisementDocument{
		Title:            ad.Title,
		ImageURL:         ad.ImageURL,
		Description:      ad.Description,
		StartTime:        ad.StartTime,
		EndTime:          ad.EndTime,
		TargetProductIDs: ids,
		LandingURL:       ad.LandingURL,
		IsActive:         ad.IsActive,
		Metadata:         ad.Metadata,
		CreatedAt:        ad.CreatedAt,
		UpdatedAt:        ad.UpdatedAt,
	}
}

func (d *advertisementDocument) toEntity() *Advertisement {
	ad := &Advertisement{
		ID:               d.ID.Hex(),
		Title:            d.Title,
		ImageURL:         d.ImageURL,
		Description:      d.Description,
		StartTime:        d.StartTime,
		EndTime:          d.EndTime,
		TargetProductIDs: d.TargetProductIDs,
		LandingURL:       d.LandingURL,
		IsActive:         d.IsActive,
		Metadata:         d.Metadata,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
	ad.normalize()
	return ad
}
