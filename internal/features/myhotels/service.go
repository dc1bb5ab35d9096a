package myhotels

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/xyz-asif/gohotels/internal/features/hotels"
	apperrors "github.com/xyz-asif/gohotels/pkg/errors"
)

// ImageUploader stores images with the media host and returns their URLs in input order.
type ImageUploader interface {
	UploadImages(ctx context.Context, files []*multipart.FileHeader) ([]string, error)
}

// Service implements owner-side hotel management.
type Service struct {
	store    hotels.Store
	uploader ImageUploader
}

func NewService(store hotels.Store, uploader ImageUploader) *Service {
	return &Service{store: store, uploader: uploader}
}

// Create uploads files and stores a new hotel owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID string, details hotels.Details, files []*multipart.FileHeader) (*hotels.Hotel, error) {
	urls, err := s.upload(ctx, files)
	if err != nil {
		return nil, err
	}

	hotel := &hotels.Hotel{ImageURLs: urls}
	details.Apply(hotel)

	if err := s.store.Create(ctx, hotel, ownerID); err != nil {
		return nil, err
	}
	return hotel, nil
}

// List returns the hotels owned by ownerID.
func (s *Service) List(ctx context.Context, ownerID string) ([]hotels.Hotel, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

// Get returns one of ownerID's hotels.
func (s *Service) Get(ctx context.Context, id, ownerID string) (*hotels.Hotel, error) {
	return s.store.GetByIDForOwner(ctx, id, ownerID)
}

// Update edits one of ownerID's hotels. Ownership is checked before anything
// is uploaded. retained == nil keeps every stored image.
func (s *Service) Update(ctx context.Context, id, ownerID string, details hotels.Details, files []*multipart.FileHeader, retained []string) (*hotels.Hotel, error) {
	if _, err := s.store.GetByIDForOwner(ctx, id, ownerID); err != nil {
		return nil, err
	}

	urls, err := s.upload(ctx, files)
	if err != nil {
		return nil, err
	}

	return s.store.Update(ctx, id, ownerID, hotels.Patch{
		Details:           details,
		NewImageURLs:      urls,
		RetainedImageURLs: retained,
	})
}

func (s *Service) upload(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}
	if s.uploader == nil {
		return nil, fmt.Errorf("%w: image uploads are not configured", apperrors.ErrUpstream)
	}

	urls, err := s.uploader.UploadImages(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	return urls, nil
}
