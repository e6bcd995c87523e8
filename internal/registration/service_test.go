package registration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"registration/internal/photo"
)

type fakeStore struct {
	insertFunc func(ctx context.Context, sub Submission, photoURL string) (Record, error)
	getFunc    func(ctx context.Context, id string) (Record, error)
	deleteFunc func(ctx context.Context, id string) error
	updateFunc func(ctx context.Context, id string, sub Submission) (Record, error)
	listFunc   func(ctx context.Context) ([]Record, error)
}

func (f *fakeStore) Insert(ctx context.Context, sub Submission, photoURL string) (Record, error) {
	if f.insertFunc != nil {
		return f.insertFunc(ctx, sub, photoURL)
	}
	return Record{}, errors.New("not implemented")
}

func (f *fakeStore) Get(ctx context.Context, id string) (Record, error) {
	if f.getFunc != nil {
		return f.getFunc(ctx, id)
	}
	return Record{}, errors.New("not implemented")
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	if f.deleteFunc != nil {
		return f.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (f *fakeStore) Update(ctx context.Context, id string, sub Submission) (Record, error) {
	if f.updateFunc != nil {
		return f.updateFunc(ctx, id, sub)
	}
	return Record{}, errors.New("not implemented")
}

func (f *fakeStore) List(ctx context.Context) ([]Record, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

type fakeStorage struct {
	uploads   []string
	destroyed []string
	uploadErr error
}

func (f *fakeStorage) Upload(ctx context.Context, data []byte, name string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads = append(f.uploads, name)
	return "https://cdn.example.com/" + name, nil
}

func (f *fakeStorage) Destroy(ctx context.Context, url string) error {
	f.destroyed = append(f.destroyed, url)
	return nil
}

func goodPhoto() photo.File {
	return photo.File{Data: []byte("img"), Filename: "p.jpg", ContentType: "image/jpeg", Size: 3}
}

func TestSubmit_Success(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{
		insertFunc: func(ctx context.Context, sub Submission, photoURL string) (Record, error) {
			if !strings.HasPrefix(photoURL, "https://cdn.example.com/registrations/") {
				t.Errorf("photo URL = %q", photoURL)
			}
			return Record{ID: "1", FullName: sub.FullName, PhotoURL: photoURL}, nil
		},
	}
	svc := NewService(store, storage, "registrations")

	rec, err := svc.Submit(context.Background(), validSubmission(), goodPhoto())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.ID == "" {
		t.Error("expected server-assigned id")
	}
	if len(storage.uploads) != 1 {
		t.Errorf("uploads = %d, want 1", len(storage.uploads))
	}
	if len(storage.destroyed) != 0 {
		t.Errorf("unexpected destroys: %v", storage.destroyed)
	}
}

func TestSubmit_ValidationFailureSkipsUpload(t *testing.T) {
	storage := &fakeStorage{}
	svc := NewService(&fakeStore{}, storage, "registrations")

	sub := validSubmission()
	sub.MobileNumber = "123"
	_, err := svc.Submit(context.Background(), sub, goodPhoto())

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(storage.uploads) != 0 {
		t.Errorf("upload must not run on validation failure")
	}
}

func TestSubmit_PhotoConstraintBlocks(t *testing.T) {
	storage := &fakeStorage{}
	svc := NewService(&fakeStore{}, storage, "registrations")

	bad := goodPhoto()
	bad.ContentType = "image/gif"
	if _, err := svc.Submit(context.Background(), validSubmission(), bad); !errors.Is(err, photo.ErrBadType) {
		t.Fatalf("expected ErrBadType, got %v", err)
	}
	if len(storage.uploads) != 0 {
		t.Errorf("upload must not run for a rejected photo")
	}
}

func TestSubmit_InsertFailureCleansUpPhoto(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{
		insertFunc: func(ctx context.Context, sub Submission, photoURL string) (Record, error) {
			return Record{}, errors.New("insert failed")
		},
	}
	svc := NewService(store, storage, "registrations")

	if _, err := svc.Submit(context.Background(), validSubmission(), goodPhoto()); err == nil {
		t.Fatal("expected error")
	}
	if len(storage.destroyed) != 1 {
		t.Errorf("expected compensating destroy, got %v", storage.destroyed)
	}
}

func TestSubmit_UploadFailureAborts(t *testing.T) {
	storage := &fakeStorage{uploadErr: errors.New("bucket down")}
	inserted := false
	store := &fakeStore{
		insertFunc: func(ctx context.Context, sub Submission, photoURL string) (Record, error) {
			inserted = true
			return Record{}, nil
		},
	}
	svc := NewService(store, storage, "registrations")

	if _, err := svc.Submit(context.Background(), validSubmission(), goodPhoto()); err == nil {
		t.Fatal("expected error")
	}
	if inserted {
		t.Error("no record may be created without a photo")
	}
}

func TestDelete_RowFirstThenPhoto(t *testing.T) {
	storage := &fakeStorage{}
	var order []string
	store := &fakeStore{
		getFunc: func(ctx context.Context, id string) (Record, error) {
			return Record{ID: id, PhotoURL: "https://cdn.example.com/registrations/x.jpg"}, nil
		},
		deleteFunc: func(ctx context.Context, id string) error {
			order = append(order, "row")
			return nil
		},
	}
	svc := NewService(store, storage, "registrations")

	if err := svc.Delete(context.Background(), "1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(order) != 1 || len(storage.destroyed) != 1 {
		t.Fatalf("row=%v destroyed=%v", order, storage.destroyed)
	}
}

func TestDelete_MissingRowReportsFailureWithoutStorageMutation(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{
		getFunc: func(ctx context.Context, id string) (Record, error) {
			return Record{}, ErrNotFound
		},
	}
	svc := NewService(store, storage, "registrations")

	if err := svc.Delete(context.Background(), "gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(storage.destroyed) != 0 {
		t.Errorf("photo must not be removed when the row is missing")
	}
}

func TestDelete_RowFailureKeepsPhoto(t *testing.T) {
	storage := &fakeStorage{}
	store := &fakeStore{
		getFunc: func(ctx context.Context, id string) (Record, error) {
			return Record{ID: id, PhotoURL: "https://cdn.example.com/registrations/x.jpg"}, nil
		},
		deleteFunc: func(ctx context.Context, id string) error {
			return errors.New("db down")
		},
	}
	svc := NewService(store, storage, "registrations")

	if err := svc.Delete(context.Background(), "1"); err == nil {
		t.Fatal("expected error")
	}
	if len(storage.destroyed) != 0 {
		t.Errorf("photo removed despite failed row delete")
	}
}

func TestUpdate_Validates(t *testing.T) {
	svc := NewService(&fakeStore{}, &fakeStorage{}, "registrations")
	sub := validSubmission()
	sub.Address = "short"
	_, err := svc.Update(context.Background(), "1", sub)
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
