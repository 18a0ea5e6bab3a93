package mongodb

import (
	"context"
	"errors"

	"github.com/Inu41123/api-almacen/internal/domain"
	"github.com/Inu41123/api-almacen/internal/usecase"
	"github.com/Inu41123/api-almacen/pkg/e"
	"github.com/jimlawless/whereami"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productsCollection = "productos"

// ProductRepo implements the product repository on top of MongoDB.
type ProductRepo struct {
	coll *mongo.Collection
}

func NewProductRepo(db *mongo.Database) *ProductRepo {
	return &ProductRepo{
		coll: db.Collection(productsCollection),
	}
}

// FindAll returns every product in the store's natural order.
func (p *ProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	cursor, err := p.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer cursor.Close(ctx)

	products := make([]domain.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return products, nil
}

func (p *ProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var product domain.Product
	if err := p.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &product, nil
}

func (p *ProductRepo) Insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	res, err := p.coll.InsertOne(ctx, product)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrInternalServerError)
	}

	product.ID = oid
	return product, nil
}

// UpdateByID applies the non-nil patch fields and returns the updated record.
func (p *ProductRepo) UpdateByID(ctx context.Context, id string, patch *usecase.ProductPatch) (*domain.Product, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	set := patchToSet(patch)
	if len(set) == 0 {
		// Nothing to overwrite; behave like a read.
		return p.FindByID(ctx, id)
	}

	var updated domain.Product
	err = p.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, e.ErrProductNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &updated, nil
}

func (p *ProductRepo) DeleteByID(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := p.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if res.DeletedCount == 0 {
		return e.ErrProductNotFound
	}

	return nil
}

// parseObjectID treats a malformed id as a missing record, matching the
// lookup-by-id contract.
func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, e.ErrProductNotFound
	}

	return oid, nil
}

func patchToSet(patch *usecase.ProductPatch) bson.M {
	set := bson.M{}
	if patch.Name != nil {
		set["nombre"] = *patch.Name
	}
	if patch.Description != nil {
		set["descripcion"] = *patch.Description
	}
	if patch.Stock != nil {
		set["stock"] = *patch.Stock
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.ImageURL != nil {
		set["imageUrl"] = *patch.ImageURL
	}
	if patch.MediaID != nil {
		set["public_id"] = *patch.MediaID
	}

	return set
}
