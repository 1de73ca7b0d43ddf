package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const region = "auto"

var errNoBucket = errors.New("no bucket configured")

// Object is a generated file to publish, such as an exported report workbook.
type Object struct {
	Directory   string
	Name        string
	ContentType string
	Body        []byte
}

func (o Object) Key() string {
	return path.Join(o.Directory, o.Name)
}

type S3 interface {
	Put(ctx context.Context, object Object) (url string, err error)
}

type store struct {
	client       *s3.Client
	bucket       string
	publicDomain string
	otel         otel.Otel
}

// New builds a path-style client for any S3-compatible endpoint (R2, MinIO, AWS).
func New(cfg *config.Config, otel otel.Otel) S3 {
	conf := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(context.Background(),
		awsConfig.WithRegion(region),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.SecretAccessKey, "")),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if conf.APIEndpoint != constant.Empty {
			o.BaseEndpoint = aws.String(conf.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	publicDomain := conf.PublicDomain
	if publicDomain == constant.Empty && conf.APIEndpoint != constant.Empty {
		publicDomain = strings.TrimSuffix(conf.APIEndpoint, "/") + "/" + conf.BucketName
	}

	return &store{
		client:       client,
		bucket:       conf.BucketName,
		publicDomain: strings.TrimSuffix(publicDomain, "/"),
		otel:         otel,
	}
}

// Put uploads object into the configured bucket and returns its public URL.
func (st *store) Put(ctx context.Context, object Object) (url string, err error) {
	ctx, scope := st.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Put")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if st.bucket == constant.Empty {
		return constant.Empty, errNoBucket
	}

	key := object.Key()

	scope.SetAttributes(map[string]any{
		"bucket": st.bucket,
		"key":    key,
		"size":   len(object.Body),
	})

	_, err = st.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(st.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(object.Body),
		ContentType:   aws.String(object.ContentType),
		ContentLength: aws.Int64(int64(len(object.Body))),
	})
	if err != nil {
		log.Error().Err(err).Str("bucket", st.bucket).Str("key", key).Msg("failed to upload object")

		return constant.Empty, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return st.publicDomain + "/" + key, nil
}
