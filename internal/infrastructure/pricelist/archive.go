package pricelist

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/retailorders/backend/internal/infrastructure/config"
)

// Archiver stores raw price list documents after a successful import
type Archiver interface {
	Archive(ctx context.Context, shopName string, doc []byte) error
}

// S3Archiver writes documents to an S3 bucket keyed by shop and timestamp
type S3Archiver struct {
	client *s3.Client
	bucket string
}

// NewS3Archiver creates a new S3Archiver from import settings
func NewS3Archiver(ctx context.Context, cfg config.ImportConfig) (*S3Archiver, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.ArchiveRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.ArchiveEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.ArchiveEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Archiver{client: client, bucket: cfg.ArchiveBucket}, nil
}

// Archive uploads the document under pricelists/<shop>/<timestamp>.yaml
func (a *S3Archiver) Archive(ctx context.Context, shopName string, doc []byte) error {
	key := fmt.Sprintf("pricelists/%s/%s.yaml",
		archiveSlug(shopName),
		time.Now().UTC().Format("20060102T150405Z"))

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(doc),
		ContentType: aws.String("application/yaml"),
	})
	if err != nil {
		return fmt.Errorf("failed to archive price list: %w", err)
	}
	return nil
}

// archiveSlug turns a shop name into a safe S3 key segment
func archiveSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r >= 'а' && r <= 'я':
			return r
		default:
			return '-'
		}
	}, slug)
	return strings.Trim(slug, "-")
}

// NopArchiver is used when no object storage is configured. Documents are
// noted in the log and dropped.
type NopArchiver struct {
	logger *zap.Logger
}

// NewNopArchiver creates a new NopArchiver
func NewNopArchiver(logger *zap.Logger) *NopArchiver {
	return &NopArchiver{logger: logger}
}

// Archive logs the document size and returns
func (a *NopArchiver) Archive(_ context.Context, shopName string, doc []byte) error {
	a.logger.Debug("price list archiving disabled, dropping document",
		zap.String("shop", shopName),
		zap.Int("bytes", len(doc)),
	)
	return nil
}

// Ensure implementations satisfy Archiver
var (
	_ Archiver = (*S3Archiver)(nil)
	_ Archiver = (*NopArchiver)(nil)
)
