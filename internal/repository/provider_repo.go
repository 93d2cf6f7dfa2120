package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"matchwell/internal/model"
)

// ProviderFilter narrows a directory listing. Zero values mean "don't
// filter on this".
type ProviderFilter struct {
	Region       string
	Telehealth   *bool
	AcceptingNew *bool
}

// ProviderRepo handles MongoDB operations for directory providers
type ProviderRepo interface {
	Insert(ctx context.Context, p *model.Provider) error
	InsertMany(ctx context.Context, ps []model.Provider) error
	ListByModality(ctx context.Context, m model.Modality, f ProviderFilter) ([]model.Provider, error)
	ListBySecondaryModality(ctx context.Context, m model.Modality, f ProviderFilter) ([]model.Provider, error)
	List(ctx context.Context, f ProviderFilter) ([]model.Provider, error)
	DeleteAll(ctx context.Context) error
}

type providerRepo struct {
	collection *mongo.Collection
}

// NewProviderRepo creates a provider repository
func NewProviderRepo(db *mongo.Database) ProviderRepo {
	return &providerRepo{
		collection: db.Collection("providers"),
	}
}

func (r *providerRepo) Insert(ctx context.Context, p *model.Provider) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, p)
	return err
}

func (r *providerRepo) InsertMany(ctx context.Context, ps []model.Provider) error {
	if len(ps) == 0 {
		return nil
	}
	docs := make([]interface{}, len(ps))
	now := time.Now()
	for i := range ps {
		if ps[i].CreatedAt.IsZero() {
			ps[i].CreatedAt = now
		}
		docs[i] = ps[i]
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (f ProviderFilter) apply(q bson.M) bson.M {
	if f.Region != "" {
		q["region"] = f.Region
	}
	if f.Telehealth != nil {
		q["telehealth"] = *f.Telehealth
	}
	if f.AcceptingNew != nil {
		q["acceptingNew"] = *f.AcceptingNew
	}
	return q
}

func (r *providerRepo) ListByModality(ctx context.Context, m model.Modality, f ProviderFilter) ([]model.Provider, error) {
	return r.find(ctx, f.apply(bson.M{"modalities": m}))
}

func (r *providerRepo) ListBySecondaryModality(ctx context.Context, m model.Modality, f ProviderFilter) ([]model.Provider, error) {
	return r.find(ctx, f.apply(bson.M{"alsoOffers": m}))
}

func (r *providerRepo) List(ctx context.Context, f ProviderFilter) ([]model.Provider, error) {
	return r.find(ctx, f.apply(bson.M{}))
}

func (r *providerRepo) find(ctx context.Context, query bson.M) ([]model.Provider, error) {
	// Name sort keeps listings deterministic across requests
	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var providers []model.Provider
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

func (r *providerRepo) DeleteAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}
