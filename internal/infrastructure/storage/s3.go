package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/webstack-labs/account-service/internal/application/account"
	appconfig "github.com/webstack-labs/account-service/internal/config"
	"github.com/webstack-labs/account-service/internal/domain"
)

// S3Store keeps profile images in an S3-compatible bucket (AWS or MinIO).
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string // base URL for object links; empty means virtual-host style
	log       zerolog.Logger
	metrics   *opMetrics
}

type opMetrics struct {
	duration *prometheus.HistogramVec
	errors   *prometheus.CounterVec
}

func newOpMetrics(reg prometheus.Registerer) *opMetrics {
	m := &opMetrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "account_service",
			Subsystem: "storage",
			Name:      "op_duration_seconds",
			Help:      "Object storage operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "account_service",
			Subsystem: "storage",
			Name:      "op_errors_total",
			Help:      "Object storage operation failures.",
		}, []string{"op"}),
	}
	if reg != nil {
		reg.MustRegister(m.duration, m.errors)
	}
	return m
}

func (m *opMetrics) observe(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		m.errors.WithLabelValues(op).Inc()
	}
}

// NewS3Store builds the client. A custom endpoint and static credentials are
// used when configured (MinIO/localstack); otherwise the default AWS chain.
func NewS3Store(cfg *appconfig.Config, reg prometheus.Registerer, log zerolog.Logger) (*S3Store, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:    client,
		bucket:    cfg.S3Bucket,
		publicURL: buildPublicURL(cfg),
		log:       log,
		metrics:   newOpMetrics(reg),
	}, nil
}

func buildPublicURL(cfg *appconfig.Config) string {
	if cfg.S3PublicURL != "" {
		return strings.TrimRight(cfg.S3PublicURL, "/")
	}
	if cfg.S3Endpoint != "" {
		return strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
}

// ---------- account.ObjectStore ----------

func (s *S3Store) Store(ctx context.Context, key, contentType string, body io.Reader, size int64) (account.StoredObject, error) {
	start := time.Now()
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	s.metrics.observe("put", start, err)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("object store put failed")
		return account.StoredObject{}, domain.ErrStorageUnavailable(err)
	}

	return account.StoredObject{
		Key: key,
		URL: s.publicURL + "/" + key,
	}, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	start := time.Now()
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	s.metrics.observe("delete", start, err)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("object store delete failed")
		return domain.ErrStorageUnavailable(err)
	}
	return nil
}
