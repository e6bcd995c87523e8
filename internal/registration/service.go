package registration

import (
	"context"
	"log"

	"registration/internal/photo"
)

// Store is the subset of the repository the service needs. Kept as an
// interface so handlers and tests can swap in fakes.
type Store interface {
	Insert(ctx context.Context, sub Submission, photoURL string) (Record, error)
	List(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, id string) (Record, error)
	Update(ctx context.Context, id string, sub Submission) (Record, error)
	Delete(ctx context.Context, id string) error
}

// ObjectStorage uploads and removes photo objects.
type ObjectStorage interface {
	Upload(ctx context.Context, data []byte, name string) (url string, err error)
	Destroy(ctx context.Context, url string) error
}

// Service coordinates validation, photo storage and persistence.
type Service struct {
	store   Store
	storage ObjectStorage
	prefix  string
}

// NewService creates a service backed by a store and an object storage.
func NewService(store Store, storage ObjectStorage, uploadPrefix string) *Service {
	if uploadPrefix == "" {
		uploadPrefix = "registrations"
	}
	return &Service{store: store, storage: storage, prefix: uploadPrefix}
}

// Submit runs the public registration workflow: validate all fields,
// check the photo constraints, upload the photo, insert the row.
// If the insert fails after the upload succeeded, the uploaded object
// is destroyed best-effort so no orphan is left behind.
func (s *Service) Submit(ctx context.Context, sub Submission, ph photo.File) (Record, error) {
	normalized, verr := ValidateSubmission(sub)
	if verr != nil {
		return Record{}, verr
	}
	if err := photo.Check(ph); err != nil {
		return Record{}, err
	}

	name := photo.ObjectName(s.prefix, ph.Filename)
	url, err := s.storage.Upload(ctx, ph.Data, name)
	if err != nil {
		return Record{}, err
	}

	rec, err := s.store.Insert(ctx, normalized, url)
	if err != nil {
		if derr := s.storage.Destroy(ctx, url); derr != nil {
			log.Printf("orphan photo cleanup failed for %s: %v", url, derr)
		}
		return Record{}, err
	}
	return rec, nil
}

// List returns the full record set in fetch order.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.store.List(ctx)
}

// Get returns one record by id.
func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	return s.store.Get(ctx, id)
}

// Update validates and patches the six editable fields of a record.
func (s *Service) Update(ctx context.Context, id string, sub Submission) (Record, error) {
	normalized, verr := ValidateSubmission(sub)
	if verr != nil {
		return Record{}, verr
	}
	return s.store.Update(ctx, id, normalized)
}

// Delete removes the row first, then the photo object. A failed row
// delete aborts the whole operation before any storage mutation; a
// failed photo removal is logged but does not fail the delete.
func (s *Service) Delete(ctx context.Context, id string) error {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	if rec.PhotoURL != "" {
		if err := s.storage.Destroy(ctx, rec.PhotoURL); err != nil {
			log.Printf("photo removal failed for %s: %v", rec.PhotoURL, err)
		}
	}
	return nil
}
