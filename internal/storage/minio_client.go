package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"strings"
	"time"

	"socialCPT/internal/config"

	"github.com/google/uuid"
)

type Storage interface {
	UploadImage(ctx context.Context, folder string, data []byte, contentType string) (string, string, error)
	DeleteImage(ctx context.Context, objectName string) error
}

type MinIOClient struct {
	client *minio.Client
	config *config.Config
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания bucket: %w", err)
		}
	}

	return &MinIOClient{client: client, config: cfg}, nil
}

// UploadImage сохраняет изображение и возвращает имя объекта и публичный URL
func (m *MinIOClient) UploadImage(ctx context.Context, folder string, data []byte, contentType string) (string, string, error) {
	fileExt := extensionByContentType(contentType)

	now := time.Now()
	objectName := fmt.Sprintf("%s/%d/%02d/%s%s",
		folder,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		fileExt)

	_, err := m.client.PutObject(ctx, m.config.MinIO.BucketName, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"uploaded-at": now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}

	imageURL := fmt.Sprintf("%s/%s/%s",
		strings.TrimSuffix(m.config.MinIO.PublicURL, "/"),
		m.config.MinIO.BucketName,
		objectName)

	return objectName, imageURL, nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.config.MinIO.BucketName, objectName,
		minio.RemoveObjectOptions{
			GovernanceBypass: true,
			VersionID:        "",
		})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}
	return nil
}

// ObjectNameFromURL извлекает имя объекта из публичного URL изображения
// (часть пути после имени bucket)
func ObjectNameFromURL(imageURL, bucketName string) string {
	marker := "/" + bucketName + "/"
	idx := strings.Index(imageURL, marker)
	if idx < 0 {
		parts := strings.Split(imageURL, "/")
		return parts[len(parts)-1]
	}
	return imageURL[idx+len(marker):]
}

// DecodeBase64Image разбирает картинку вида "data:image/png;base64,...."
// или чистую base64-строку
func DecodeBase64Image(payload string) ([]byte, string, error) {
	contentType := "image/jpeg"

	if strings.HasPrefix(payload, "data:") {
		sep := strings.Index(payload, ",")
		if sep < 0 {
			return nil, "", fmt.Errorf("неверный формат data URI")
		}
		meta := payload[len("data:"):sep]
		if semi := strings.Index(meta, ";"); semi >= 0 {
			contentType = meta[:semi]
		} else if meta != "" {
			contentType = meta
		}
		payload = payload[sep+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка декодирования base64: %w", err)
	}

	return data, contentType, nil
}

func extensionByContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
