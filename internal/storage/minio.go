package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/arzan03/pointboard/internal/models"
)

// AccountArchive keeps a copy of an account at the moment it is deleted.
type AccountArchive interface {
	Store(ctx context.Context, user *models.User) error
}

type MinioOptions struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// MinioArchive writes archived accounts to users/<id>.json in one bucket.
type MinioArchive struct {
	client *minio.Client
	bucket string
	now    func() time.Time
}

// NewMinioArchive connects and creates the bucket if it does not exist.
func NewMinioArchive(ctx context.Context, opts MinioOptions) (*MinioArchive, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", opts.Bucket, err)
		}
	}

	return &MinioArchive{client: client, bucket: opts.Bucket, now: time.Now}, nil
}

type archivedAccount struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Points    float64   `json:"points"`
	UserRole  string    `json:"userRole"`
	CreatedAt time.Time `json:"created_at"`
	DeletedAt time.Time `json:"deleted_at"`
}

// ObjectName is the key an account is archived under.
func ObjectName(user *models.User) string {
	return "users/" + user.ID.Hex() + ".json"
}

// EncodeAccount renders the archived form of user. The password hash is never
// written.
func EncodeAccount(user *models.User, deletedAt time.Time) ([]byte, error) {
	return json.Marshal(archivedAccount{
		ID:        user.ID.Hex(),
		Username:  user.Username,
		Email:     user.Email,
		Points:    user.Points,
		UserRole:  user.UserRole,
		CreatedAt: user.CreatedAt,
		DeletedAt: deletedAt.UTC(),
	})
}

func (a *MinioArchive) Store(ctx context.Context, user *models.User) error {
	data, err := EncodeAccount(user, a.now())
	if err != nil {
		return fmt.Errorf("encode account: %w", err)
	}

	_, err = a.client.PutObject(
		ctx,
		a.bucket,
		ObjectName(user),
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("put %s: %w", ObjectName(user), err)
	}
	return nil
}
