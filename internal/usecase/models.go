package usecase

// PRODUCT USECASE

// ProductImage is an image received through multipart/form-data.
type ProductImage struct {
	Data     []byte // raw image bytes
	MimeType string // Content-Type from multipart (image/jpeg)
	Size     int64  // actual size in bytes
	Name     string // original file name (for logs)
}

// CreateProductReq is a request to create a new product. Image is mandatory.
type CreateProductReq struct {
	Name        string
	Description string
	Stock       int64
	Category    string
	Image       ProductImage
}

// UpdateProductReq carries only the fields present in the request; a nil field
// keeps the stored value, a non-nil field overwrites it even when zero or empty.
type UpdateProductReq struct {
	ID          string
	Name        *string
	Description *string
	Stock       *int64
	Category    *string
	Image       *ProductImage
}

// REPOSITORIES

// ProductPatch is the set of fields to overwrite in the stored document.
// Nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	Stock       *int64
	Category    *string
	ImageURL    *string
	MediaID     *string
}

// INFRASTRUCTURE

// UploadImageReq is a request to store one product image.
type UploadImageReq struct {
	Image ProductImage
}

// UploadImageRes is the result of an upload: the public URL of the object and
// the opaque key needed to delete it later.
type UploadImageRes struct {
	URL string
	Key string
}

// MAPPERS

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewCreateProductReq(name, description string, stock int64, category string, image ProductImage) *CreateProductReq {
	return &CreateProductReq{
		Name:        name,
		Description: description,
		Stock:       stock,
		Category:    category,
		Image:       image,
	}
}

func NewUploadImageReq(image ProductImage) *UploadImageReq {
	return &UploadImageReq{Image: image}
}

func NewUploadImageRes(url, key string) *UploadImageRes {
	return &UploadImageRes{URL: url, Key: key}
}
