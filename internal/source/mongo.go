package source

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/danilokhury/orbitmap/pkg/errors"
	"github.com/danilokhury/orbitmap/pkg/model"
)

// Collection names alongside the record collection.
const (
	linksCollection      = "links"
	categoriesCollection = "categories"
)

// MongoSource loads a dataset from MongoDB: records from the configured
// collection, links and category metadata from the sibling "links" and
// "categories" collections. Missing sibling collections simply yield empty
// slices.
type MongoSource struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoSource returns a loader for the given connection parameters.
func NewMongoSource(uri, database, collection string) *MongoSource {
	return &MongoSource{URI: uri, Database: database, Collection: collection}
}

// categoryDoc is the stored shape of one category metadata entry: the map key
// is flattened into a name field.
type categoryDoc struct {
	Name                   string `bson:"name"`
	model.CategoryMetadata `bson:",inline"`
}

func (s *MongoSource) Load(ctx context.Context) (*model.Dataset, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(s.URI))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, err, "connect to %s", s.URI)
	}
	defer client.Disconnect(ctx)

	if err := client.Ping(ctx, nil); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, err, "ping %s", s.URI)
	}
	db := client.Database(s.Database)

	var dataset model.Dataset
	if err := readAll(ctx, db, s.Collection, &dataset.Records); err != nil {
		return nil, err
	}
	if err := readAll(ctx, db, linksCollection, &dataset.Links); err != nil {
		return nil, err
	}

	var cats []categoryDoc
	if err := readAll(ctx, db, categoriesCollection, &cats); err != nil {
		return nil, err
	}
	if len(cats) > 0 {
		dataset.Categories = make(map[string]model.CategoryMetadata, len(cats))
		for _, c := range cats {
			dataset.Categories[c.Name] = c.CategoryMetadata
		}
	}

	dataset.Normalize()
	if err := dataset.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidDataset, err, "dataset from %s", s.Database)
	}
	return &dataset, nil
}

// readAll decodes every document of a collection into out, which must be a
// pointer to a slice.
func readAll(ctx context.Context, db *mongo.Database, collection string, out any) error {
	cur, err := db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStoreUnavailable, err, "query %s", collection)
	}
	defer cur.Close(ctx)

	if err := cur.All(ctx, out); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidDataset, err, "decode %s", collection)
	}
	return nil
}
