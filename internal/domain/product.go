package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// DefaultCategory is assigned when a create request carries no category.
const DefaultCategory = "General"

// Product describes a warehouse product. The JSON field names are part of the
// public API contract and the BSON field names are the stored document layout;
// neither may change independently of the other.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"nombre" json:"nombre"`
	Description string             `bson:"descripcion" json:"descripcion"`
	Stock       int64              `bson:"stock" json:"stock"`
	Category    string             `bson:"category" json:"category"`
	ImageURL    string             `bson:"imageUrl" json:"imageUrl"`
	// MediaID is the object-storage handle needed to delete the image later.
	// It is only ever set by the service after a successful upload.
	MediaID string `bson:"public_id" json:"public_id"`
}

func NewProduct(name, description string, stock int64, category, imageURL, mediaID string) *Product {
	if category == "" {
		category = DefaultCategory
	}

	return &Product{
		Name:        name,
		Description: description,
		Stock:       stock,
		Category:    category,
		ImageURL:    imageURL,
		MediaID:     mediaID,
	}
}
