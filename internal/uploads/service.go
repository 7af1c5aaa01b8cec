package uploads

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	pkgerrors "github.com/pverissimo/loja-admin-api/pkg/errors"
	"github.com/pverissimo/loja-admin-api/pkg/storage/gcs"
)

// allowedContentTypes lists the image types the dashboard may upload.
var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type blobStore interface {
	SignedURL(bucket, object, contentType string, expires time.Duration) (string, error)
	DeleteObject(ctx context.Context, bucket, object string) error
	ObjectURL(bucket, object string) string
	DefaultBucket() string
}

// imageReferenceCleaner blanks database rows that point at a deleted blob.
type imageReferenceCleaner interface {
	ClearImageURL(ctx context.Context, url string) (int64, error)
}

// Service hands out signed upload URLs and tears blobs down again. Blob and
// row changes are deliberately not transactional; deletion is idempotent so a
// retry converges instead of failing.
type Service interface {
	Presign(ctx context.Context, userID uuid.UUID, input PresignUploadInput) (*PresignedUploadDTO, error)
	Delete(ctx context.Context, userID uuid.UUID, url string) error
	Remove(ctx context.Context, url string) error
}

// ServiceParams carries the upload service dependencies.
type ServiceParams struct {
	Blobs       blobStore
	Billboards  imageReferenceCleaner
	URLExpiry   time.Duration
	MaxUploadMB int
}

type service struct {
	blobs       blobStore
	billboards  imageReferenceCleaner
	urlExpiry   time.Duration
	maxUploadMB int
}

// NewService builds an upload service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Blobs == nil {
		return nil, fmt.Errorf("blob store required")
	}
	if params.Billboards == nil {
		return nil, fmt.Errorf("billboard reference cleaner required")
	}
	expiry := params.URLExpiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	maxUploadMB := params.MaxUploadMB
	if maxUploadMB <= 0 {
		maxUploadMB = 8
	}
	return &service{
		blobs:       params.Blobs,
		billboards:  params.Billboards,
		urlExpiry:   expiry,
		maxUploadMB: maxUploadMB,
	}, nil
}

func (s *service) Presign(ctx context.Context, userID uuid.UUID, input PresignUploadInput) (*PresignedUploadDTO, error) {
	contentType := strings.ToLower(strings.TrimSpace(input.ContentType))
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content type must be an image")
	}
	if input.SizeBytes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size_bytes is required")
	}
	if input.SizeBytes > int64(s.maxUploadMB)<<20 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("file exceeds the %d MB upload limit", s.maxUploadMB))
	}

	object := objectKey(userID, input.FileName, ext)
	bucket := s.blobs.DefaultBucket()

	uploadURL, err := s.blobs.SignedURL(bucket, object, contentType, s.urlExpiry)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign upload url")
	}

	return &PresignedUploadDTO{
		UploadURL: uploadURL,
		PublicURL: s.blobs.ObjectURL(bucket, object),
		ObjectKey: object,
		ExpiresAt: time.Now().Add(s.urlExpiry),
	}, nil
}

func (s *service) Delete(ctx context.Context, userID uuid.UUID, url string) error {
	bucket, object, ok := gcs.ObjectKeyFromURL(url)
	if !ok || bucket != s.blobs.DefaultBucket() {
		return pkgerrors.New(pkgerrors.CodeValidation, "url does not reference an uploaded object")
	}
	if !strings.HasPrefix(object, uploadPrefix(userID)) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "upload belongs to another user")
	}

	// Row references are cleared first so nothing renders a dead link while
	// the blob delete is in flight.
	var errs error
	if _, err := s.billboards.ClearImageURL(ctx, url); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("clear billboard references: %w", err))
	}
	if err := s.blobs.DeleteObject(ctx, bucket, object); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("delete object: %w", err))
	}
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "delete upload")
	}
	return nil
}

// Remove deletes a blob by URL without touching row references. Product
// deletion uses it for post-commit image cleanup.
func (s *service) Remove(ctx context.Context, url string) error {
	bucket, object, ok := gcs.ObjectKeyFromURL(url)
	if !ok {
		return nil
	}
	return s.blobs.DeleteObject(ctx, bucket, object)
}

func uploadPrefix(userID uuid.UUID) string {
	return "uploads/" + userID.String() + "/"
}

func objectKey(userID uuid.UUID, fileName, ext string) string {
	base := strings.ToLower(path.Base(strings.TrimSpace(fileName)))
	base = strings.TrimSuffix(base, path.Ext(base))

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "file"
	}
	return uploadPrefix(userID) + uuid.NewString() + "-" + slug + ext
}
