package uploads

import "time"

// PresignUploadInput describes the file the dashboard wants to upload.
type PresignUploadInput struct {
	FileName    string `json:"file_name" validate:"required,max=200"`
	ContentType string `json:"content_type" validate:"required"`
	SizeBytes   int64  `json:"size_bytes" validate:"required,gt=0"`
}

// PresignedUploadDTO carries everything the browser needs to PUT the file
// straight to the bucket and reference it afterwards.
type PresignedUploadDTO struct {
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	ObjectKey string    `json:"object_key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DeleteUploadInput names the blob to remove by its public URL.
type DeleteUploadInput struct {
	URL string `json:"url" validate:"required,url"`
}
