// Package contentstore реализует контентно-адресуемое хранилище поверх
// S3-совместимого бэкенда (MinIO). Ключ объекта - sha256 содержимого,
// поэтому повторная выгрузка того же файла идемпотентна, а публичная ссылка
// строится конкатенацией базового URL шлюза и ключа.
package contentstore

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/albaranes-app/delivery-notes/internal/config"
)

// Uploader описывает контракт выгрузки и чтения контента,
// используется сервисами вместо конкретного S3-клиента.
type Uploader interface {
	// Upload кладёт данные в хранилище и возвращает ключ (контент-хэш)
	// и публичный URL для скачивания.
	Upload(ctx context.Context, data []byte, filename string) (key string, url string, err error)
	// Fetch возвращает поток содержимого по ключу и content-type объекта.
	Fetch(ctx context.Context, key string) (io.ReadCloser, string, error)
	// KeyFromURL выделяет ключ объекта из публичной ссылки.
	KeyFromURL(url string) string
}

// Store - S3-клиент контентного хранилища.
type Store struct {
	client  *s3.Client
	bucket  string
	gateway string
}

// New создаёт Store по настройкам конфига.
func New(ctx context.Context, cfg config.ContentStore) (*Store, error) {
	const op = "contentstore.New"

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	return &Store{
		client:  client,
		bucket:  cfg.S3Bucket,
		gateway: strings.TrimRight(cfg.GatewayURL, "/"),
	}, nil
}

// ContentKey возвращает hex sha256 содержимого - ключ объекта в хранилище.
func ContentKey(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Upload выгружает данные под контент-хэш ключом. Имя файла сохраняется
// в метаданных, content-type угадывается по расширению.
func (s *Store) Upload(ctx context.Context, data []byte, filename string) (string, string, error) {
	const op = "contentstore.Upload"

	key := ContentKey(data)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentTypeFor(filename)),
		Metadata: map[string]string{
			"filename": filename,
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	return key, s.URLFor(key), nil
}

// Fetch возвращает поток объекта по ключу.
func (s *Store) Fetch(ctx context.Context, key string) (io.ReadCloser, string, error) {
	const op = "contentstore.Fetch"

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	contentType := "application/octet-stream"
	if out.ContentType != nil {
		contentType = *out.ContentType
	}
	return out.Body, contentType, nil
}

// URLFor собирает публичную ссылку на объект по его ключу.
func (s *Store) URLFor(key string) string {
	return s.gateway + "/" + key
}

// KeyFromURL выделяет ключ объекта из публичной ссылки.
func (s *Store) KeyFromURL(url string) string {
	return strings.TrimPrefix(url, s.gateway+"/")
}

func contentTypeFor(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(filename, ".png"):
		return "image/png"
	case strings.HasSuffix(filename, ".jpg"), strings.HasSuffix(filename, ".jpeg"):
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
