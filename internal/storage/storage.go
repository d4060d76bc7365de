package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	credentials "cloud.google.com/go/iam/credentials/apiv1"
	credentialspb "cloud.google.com/go/iam/credentials/apiv1/credentialspb"
	"cloud.google.com/go/storage"
)

var ErrNotConfigured = errors.New("storage bucket not configured")

// Service wraps the GCS client for the blob needs of the app: public
// media objects (avatars, logos, match photos) plus V4 signed upload
// URLs for direct browser uploads.
type Service struct {
	client      *storage.Client
	bucket      string
	signerEmail string
	iam         *credentials.IamCredentialsClient
}

func NewService(client *storage.Client, bucket, signerEmail string) *Service {
	// IAM client is optional; only needed for signed URLs.
	iamClient, _ := credentials.NewIamCredentialsClient(context.Background())
	return &Service{client: client, bucket: bucket, signerEmail: signerEmail, iam: iamClient}
}

// Upload writes data to objectPath and returns the public URL. When
// overwrite is false the write fails if the object already exists.
func (s *Service) Upload(ctx context.Context, objectPath string, data []byte, contentType string, overwrite bool) (string, error) {
	if s.bucket == "" {
		return "", ErrNotConfigured
	}
	obj := s.client.Bucket(s.bucket).Object(objectPath)
	if !overwrite {
		obj = obj.If(storage.Conditions{DoesNotExist: true})
	}

	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=3600"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write object %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", objectPath, err)
	}
	return s.PublicURL(objectPath), nil
}

func (s *Service) Delete(ctx context.Context, objectPath string) error {
	if s.bucket == "" {
		return ErrNotConfigured
	}
	if err := s.client.Bucket(s.bucket).Object(objectPath).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil
		}
		return fmt.Errorf("failed to delete object %s: %w", objectPath, err)
	}
	return nil
}

func (s *Service) PublicURL(objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objectPath)
}

// SignedUploadURL mints a V4 PUT URL for a direct upload, signing with
// the IAM credentials API so no private key ships with the server.
func (s *Service) SignedUploadURL(ctx context.Context, objectPath, contentType string, expiresSeconds int64) (string, time.Time, error) {
	if s.bucket == "" {
		return "", time.Time{}, ErrNotConfigured
	}
	if s.signerEmail == "" {
		return "", time.Time{}, fmt.Errorf("SIGNED_URL_SERVICE_ACCOUNT_EMAIL is not set")
	}
	if s.iam == nil {
		return "", time.Time{}, fmt.Errorf("IAM credentials client not available")
	}
	if expiresSeconds <= 0 || expiresSeconds > 3600 {
		expiresSeconds = 900
	}
	exp := time.Now().Add(time.Duration(expiresSeconds) * time.Second)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "PUT",
		Expires:        exp,
		ContentType:    contentType,
		GoogleAccessID: s.signerEmail,
		SignBytes: func(b []byte) ([]byte, error) {
			name := fmt.Sprintf("projects/-/serviceAccounts/%s", s.signerEmail)
			resp, err := s.iam.SignBlob(ctx, &credentialspb.SignBlobRequest{
				Name:    name,
				Payload: b,
			})
			if err != nil {
				return nil, err
			}
			return resp.SignedBlob, nil
		},
	}

	url, err := storage.SignedURL(s.bucket, objectPath, opts)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign url (check service account + permissions): %v", err)
	}
	return url, exp, nil
}
