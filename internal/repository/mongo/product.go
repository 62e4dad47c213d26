package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MobissOficial/mobiss-catalog/internal/domain"
	apperrors "github.com/MobissOficial/mobiss-catalog/pkg/errors"
)

const collectionName = "products"

// ProductRepository implements repository.ProductRepository backed by a
// MongoDB collection. Product photos are stored inline in the document,
// which is why image intake is bounded upstream.
type ProductRepository struct {
	coll *mongo.Collection
}

// NewProductRepository creates a product repository on the given database.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(collectionName)}
}

type variantDoc struct {
	Token string `bson:"token"`
	Name  string `bson:"name"`
	Image string `bson:"image,omitempty"`
}

type productDoc struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Name               string             `bson:"name"`
	Description        string             `bson:"description,omitempty"`
	Category           string             `bson:"category"`
	Models             []string           `bson:"models,omitempty"`
	PriceCents         int64              `bson:"price_cents"`
	OriginalPriceCents *int64             `bson:"original_price_cents,omitempty"`
	Image              string             `bson:"image,omitempty"`
	ColorVariants      []variantDoc       `bson:"color_variants,omitempty"`
	Colors             []string           `bson:"colors,omitempty"`
	Tag                string             `bson:"tag,omitempty"`
	MagSafe            bool               `bson:"magsafe"`
	CreatedAt          time.Time          `bson:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at"`
}

func docFromProduct(p *domain.Product) *productDoc {
	doc := &productDoc{
		Name:               p.Name,
		Description:        p.Description,
		Category:           string(p.Category),
		Models:             p.Models,
		PriceCents:         p.PriceCents,
		OriginalPriceCents: p.OriginalPriceCents,
		Image:              p.Image,
		Colors:             p.Colors,
		Tag:                p.Tag,
		MagSafe:            p.MagSafe,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	for _, v := range p.ColorVariants {
		doc.ColorVariants = append(doc.ColorVariants, variantDoc(v))
	}
	return doc
}

func productFromDoc(doc *productDoc) *domain.Product {
	p := &domain.Product{
		ID:                 domain.PersistedID(doc.ID.Hex()),
		Name:               doc.Name,
		Description:        doc.Description,
		Category:           domain.Category(doc.Category),
		Models:             doc.Models,
		PriceCents:         doc.PriceCents,
		OriginalPriceCents: doc.OriginalPriceCents,
		Image:              doc.Image,
		Colors:             doc.Colors,
		Tag:                doc.Tag,
		MagSafe:            doc.MagSafe,
		CreatedAt:          doc.CreatedAt,
		UpdatedAt:          doc.UpdatedAt,
	}
	for _, v := range doc.ColorVariants {
		p.ColorVariants = append(p.ColorVariants, domain.ColorVariant(v))
	}
	return p
}

// ListAll returns every product, oldest first.
func (r *ProductRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperrors.Unavailable("product store", err)
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.Unavailable("product store", err)
	}

	products := make([]*domain.Product, 0, len(docs))
	for i := range docs {
		products = append(products, productFromDoc(&docs[i]))
	}
	return products, nil
}

// GetByID retrieves a single product by its hex identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("product", id)
	}

	var doc productDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, apperrors.Unavailable("product store", err)
	}
	return productFromDoc(&doc), nil
}

// Create inserts a new product and returns the store-issued hex id.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (string, error) {
	doc := docFromProduct(product)
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", apperrors.Unavailable("product store", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", apperrors.Internal(errors.New("unexpected inserted id type"))
	}
	return oid.Hex(), nil
}

// Update overwrites the stored product data for id. The document id
// itself is never part of the update payload.
func (r *ProductRepository) Update(ctx context.Context, id string, product *domain.Product) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("product", id)
	}

	doc := docFromProduct(product)
	doc.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"name":                 doc.Name,
		"description":          doc.Description,
		"category":             doc.Category,
		"models":               doc.Models,
		"price_cents":          doc.PriceCents,
		"original_price_cents": doc.OriginalPriceCents,
		"image":                doc.Image,
		"color_variants":       doc.ColorVariants,
		"colors":               doc.Colors,
		"tag":                  doc.Tag,
		"magsafe":              doc.MagSafe,
		"updated_at":           doc.UpdatedAt,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return apperrors.Unavailable("product store", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("product", id)
	}
	return nil
}

// Delete removes a product by its hex identifier.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("product", id)
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperrors.Unavailable("product store", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("product", id)
	}
	return nil
}
