package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"ghiblify_backend/pkg/config"
)

// Storage Cloudflare R2 üzerinde obje depolama. Process başında bir kez
// kurulur, handler'lara handle olarak geçirilir.
type Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	cdn     string
}

func New(cfg config.StorageConfig) (*Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID))
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return &Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		cdn:     cfg.CDNDomain,
	}, nil
}

// SaveBytes objeyi yükler ve CDN URL'ini döndürür
func (s *Storage) SaveBytes(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("could not upload file to R2: %v", err)
	}

	return fmt.Sprintf("https://%s/%s", s.cdn, key), nil
}

// SignedURL süreli, imzalı erişim linki üretir
func (s *Storage) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("could not presign object: %v", err)
	}

	return req.URL, nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("could not delete file from R2: %v", err)
	}

	return nil
}

// KeyFromURL CDN URL'inden object key'i çıkarır
func (s *Storage) KeyFromURL(url string) string {
	return strings.TrimPrefix(url, fmt.Sprintf("https://%s/", s.cdn))
}

// UploadKey kullanıcının yüklediği kaynak fotoğraf için URL-safe path üretir
func UploadKey(username, filename string) string {
	safeUsername := slug.Make(username)
	ext := filepath.Ext(filename)
	uniqueID := fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.New().String())
	return filepath.Join("users", safeUsername, "uploads", uniqueID+ext)
}

// GenerationKey üretilen görsel için path üretir
func GenerationKey(username string) string {
	safeUsername := slug.Make(username)
	uniqueID := fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.New().String())
	return filepath.Join("users", safeUsername, "generations", uniqueID+".png")
}
