package uploads

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/pverissimo/loja-admin-api/pkg/errors"
)

const testBucket = "loja-assets"

func TestServicePresignUpload(t *testing.T) {
	f := newFixture()
	svc := mustService(t, f)

	dto, err := svc.Presign(context.Background(), f.owner, PresignUploadInput{
		FileName:    "Hero Banner.PNG",
		ContentType: "image/png",
		SizeBytes:   1 << 20,
	})
	if err != nil {
		t.Fatalf("presign: %v", err)
	}

	prefix := "uploads/" + f.owner.String() + "/"
	if !strings.HasPrefix(dto.ObjectKey, prefix) {
		t.Fatalf("object key %q missing owner prefix", dto.ObjectKey)
	}
	if !strings.HasSuffix(dto.ObjectKey, "-hero-banner.png") {
		t.Fatalf("object key %q not slugged", dto.ObjectKey)
	}
	if dto.UploadURL == "" || dto.PublicURL == "" {
		t.Fatalf("expected upload and public urls, got %+v", dto)
	}
	if f.blobs.signedContentType != "image/png" {
		t.Fatalf("signed content type %q", f.blobs.signedContentType)
	}
}

func TestServicePresignRejectsNonImage(t *testing.T) {
	f := newFixture()
	svc := mustService(t, f)

	_, err := svc.Presign(context.Background(), f.owner, PresignUploadInput{
		FileName:    "report.pdf",
		ContentType: "application/pdf",
		SizeBytes:   1024,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServicePresignRejectsOversizedFile(t *testing.T) {
	f := newFixture()
	svc := mustService(t, f)

	_, err := svc.Presign(context.Background(), f.owner, PresignUploadInput{
		FileName:    "huge.png",
		ContentType: "image/png",
		SizeBytes:   9 << 20,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceDeleteClearsReferencesAndBlob(t *testing.T) {
	f := newFixture()
	svc := mustService(t, f)

	url := "https://storage.googleapis.com/" + testBucket + "/uploads/" + f.owner.String() + "/abc-banner.png"
	if err := svc.Delete(context.Background(), f.owner, url); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if f.cleaner.clearedURL != url {
		t.Fatalf("references not cleared, got %q", f.cleaner.clearedURL)
	}
	if len(f.blobs.deleted) != 1 || f.blobs.deleted[0] != "uploads/"+f.owner.String()+"/abc-banner.png" {
		t.Fatalf("unexpected blob deletes %v", f.blobs.deleted)
	}
}

func TestServiceDeleteRejectsForeignUserObject(t *testing.T) {
	f := newFixture()
	svc := mustService(t, f)

	url := "https://storage.googleapis.com/" + testBucket + "/uploads/" + uuid.NewString() + "/abc.png"
	err := svc.Delete(context.Background(), f.owner, url)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if len(f.blobs.deleted) != 0 {
		t.Fatalf("blob must not be deleted, got %v", f.blobs.deleted)
	}
}

func TestServiceDeleteStillClearsRowsWhenBlobFails(t *testing.T) {
	f := newFixture()
	f.blobs.deleteErr = errors.New("backend unavailable")
	svc := mustService(t, f)

	url := "https://storage.googleapis.com/" + testBucket + "/uploads/" + f.owner.String() + "/abc.png"
	err := svc.Delete(context.Background(), f.owner, url)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if f.cleaner.clearedURL != url {
		t.Fatalf("references should be cleared before the blob delete, got %q", f.cleaner.clearedURL)
	}
}

func TestServiceRemoveIgnoresForeignURLs(t *testing.T) {
	f := newFixture()
	svc := mustService(t, f)

	if err := svc.Remove(context.Background(), "https://example.com/not-a-blob.png"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(f.blobs.deleted) != 0 {
		t.Fatalf("nothing should be deleted, got %v", f.blobs.deleted)
	}
}

type fixture struct {
	owner   uuid.UUID
	blobs   *stubBlobStore
	cleaner *stubCleaner
}

func newFixture() *fixture {
	return &fixture{
		owner:   uuid.New(),
		blobs:   &stubBlobStore{},
		cleaner: &stubCleaner{},
	}
}

func mustService(t *testing.T, f *fixture) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Blobs:       f.blobs,
		Billboards:  f.cleaner,
		URLExpiry:   10 * time.Minute,
		MaxUploadMB: 8,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

type stubBlobStore struct {
	signedContentType string
	deleted           []string
	deleteErr         error
}

func (s *stubBlobStore) SignedURL(bucket, object, contentType string, expires time.Duration) (string, error) {
	s.signedContentType = contentType
	return "https://storage.googleapis.com/" + bucket + "/" + object + "?signed=1", nil
}

func (s *stubBlobStore) DeleteObject(ctx context.Context, bucket, object string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, object)
	return nil
}

func (s *stubBlobStore) ObjectURL(bucket, object string) string {
	return "https://storage.googleapis.com/" + bucket + "/" + object
}

func (s *stubBlobStore) DefaultBucket() string {
	return testBucket
}

type stubCleaner struct {
	clearedURL string
}

func (s *stubCleaner) ClearImageURL(ctx context.Context, url string) (int64, error) {
	s.clearedURL = url
	return 1, nil
}
