package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/YangWanjun/ebusiness/internal/config"
	masterentity "github.com/YangWanjun/ebusiness/internal/master/entity"
	masterrepo "github.com/YangWanjun/ebusiness/internal/master/repository"
)

// Store 添付ファイルストア。生成した帳票のバイト列を保存し、
// UUID で取り出せるようにする。
type Store interface {
	Save(ctx context.Context, name string, content []byte) (string, error)
	Open(ctx context.Context, uuid string) (io.ReadCloser, *masterentity.Attachment, error)
	Delete(ctx context.Context, uuid string) error
}

// MinioStore MinIO を実体としたストア。メタ情報は eb_attachment に記録する。
type MinioStore struct {
	client      *minio.Client
	bucket      string
	attachments *masterrepo.AttachmentRepository
}

func NewMinioStore(cfg config.MinIOConfig, attachments *masterrepo.AttachmentRepository) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return &MinioStore{client: client, bucket: cfg.Bucket, attachments: attachments}, nil
}

// EnsureBucket バケットがなければ作成する
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

func (s *MinioStore) Save(ctx context.Context, name string, content []byte) (string, error) {
	id := uuid.New().String()
	now := time.Now()
	objectPath := fmt.Sprintf("attachments/%04d/%02d/%s", now.Year(), now.Month(), id)

	_, err := s.client.PutObject(ctx, s.bucket, objectPath,
		bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	if err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}

	attachment := &masterentity.Attachment{
		ID:         uuid.New().String()[:32],
		UUID:       id,
		Name:       name,
		ObjectPath: objectPath,
		Size:       int64(len(content)),
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		return "", fmt.Errorf("failed to record attachment: %w", err)
	}
	return id, nil
}

func (s *MinioStore) Open(ctx context.Context, id string) (io.ReadCloser, *masterentity.Attachment, error) {
	attachment, err := s.attachments.FindByUUID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("attachment not found: %w", err)
	}
	object, err := s.client.GetObject(ctx, s.bucket, attachment.ObjectPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get object: %w", err)
	}
	return object, attachment, nil
}

func (s *MinioStore) Delete(ctx context.Context, id string) error {
	attachment, err := s.attachments.FindByUUID(ctx, id)
	if err != nil {
		return fmt.Errorf("attachment not found: %w", err)
	}
	if err := s.client.RemoveObject(ctx, s.bucket, attachment.ObjectPath, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object: %w", err)
	}
	return s.attachments.SoftDelete(ctx, id)
}
