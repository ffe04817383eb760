package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	gcs "cloud.google.com/go/storage"
	fbstorage "firebase.google.com/go/v4/storage"
)

// ProofUploader stores payment proof files and returns a long-lived signed
// URL suitable for embedding on the payment request document.
type ProofUploader interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

type bucketUploader struct {
	client *fbstorage.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewProofUploader creates a ProofUploader writing to the app's default
// Firebase Storage bucket. ttl controls how long the returned signed URLs
// stay valid.
func NewProofUploader(client *fbstorage.Client, ttl time.Duration) ProofUploader {
	return &bucketUploader{client: client, ttl: ttl, now: time.Now}
}

// Upload writes the file under payment-proofs/<unix-timestamp>_<basename> and
// returns a V4 signed GET URL for it.
func (u *bucketUploader) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	bucket, err := u.client.DefaultBucket()
	if err != nil {
		return "", fmt.Errorf("failed to get storage bucket: %w", err)
	}

	objectName := fmt.Sprintf("payment-proofs/%d_%s", u.now().Unix(), filepath.Base(filename))
	writer := bucket.Object(objectName).NewWriter(ctx)
	if contentType != "" {
		writer.ContentType = contentType
	}
	if _, err := io.Copy(writer, r); err != nil {
		writer.Close()
		return "", fmt.Errorf("failed to write proof object '%s': %w", objectName, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize proof object '%s': %w", objectName, err)
	}

	url, err := bucket.SignedURL(objectName, &gcs.SignedURLOptions{
		Method:  "GET",
		Expires: u.now().Add(u.ttl),
		Scheme:  gcs.SigningSchemeV4,
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign URL for proof object '%s': %w", objectName, err)
	}
	return url, nil
}
