package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"turfbook/config"
	"turfbook/infras/otel"
	"turfbook/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrFileName = "file_name"
	otelAttrBucket   = "bucket"
	sniffLen         = 512
	region           = "auto"
)

// S3 stores turf images in an S3 compatible bucket served from a public domain.
type S3 interface {
	UploadFile(ctx context.Context, bucketName, directory string, file multipart.File, fileHeader *multipart.FileHeader, fileName string) (url string, err error)
	DeleteFile(ctx context.Context, bucketName, directory, objectName string) error
	GetObjectNameFromURL(bucketName, url string) (objectName string)
}

type s3Impl struct {
	client *s3.Client
	config *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) S3 {
	storage := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(region),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(storage.AccessKeyID, storage.SecretAccessKey, "")),
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if storage.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(storage.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &s3Impl{
		client: client,
		config: cfg,
		otel:   otel,
	}
}

// UploadFile streams file to directory/fileName and returns its public URL.
// An empty bucketName means the configured bucket.
func (svc *s3Impl) UploadFile(ctx context.Context, bucketName, directory string, file multipart.File, fileHeader *multipart.FileHeader, fileName string) (url string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".UploadFile")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if bucketName == "" {
		bucketName = svc.config.External.S3.BucketName
	}

	key := path.Join(directory, fileName)

	scope.SetAttributes(map[string]any{
		otelAttrFileName: key,
		otelAttrBucket:   bucketName,
	})

	contentType, err := detectContentType(file, fileHeader)
	if err != nil {
		return constant.Empty, err
	}

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucketName),
		Key:           aws.String(key),
		Body:          file,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(fileHeader.Size),
	})
	if err != nil {
		log.Error().Err(err).Str("bucket", bucketName).Str("key", key).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return svc.publicURL(key), nil
}

func (svc *s3Impl) DeleteFile(ctx context.Context, bucketName, directory, objectName string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".DeleteFile")
	defer scope.End()
	defer scope.TraceIfError(&err)

	key := path.Join(directory, objectName)

	scope.SetAttributes(map[string]any{
		otelAttrFileName: key,
		otelAttrBucket:   bucketName,
	})

	if _, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(key),
	}); err != nil {
		log.Error().Err(err).Str("bucket", bucketName).Str("key", key).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// GetObjectNameFromURL maps a URL produced by UploadFile, or a path style
// API URL of the bucket, back to its object key.
func (svc *s3Impl) GetObjectNameFromURL(bucketName, url string) (objectName string) {
	storage := svc.config.External.S3

	for _, base := range []string{storage.PublicDomain, storage.APIEndpoint + "/" + bucketName} {
		if base == "" || base == "/"+bucketName {
			continue
		}

		if name, found := strings.CutPrefix(url, base+"/"); found && name != constant.Empty {
			return name
		}
	}

	return constant.Empty
}

func (svc *s3Impl) publicURL(key string) string {
	return strings.TrimSuffix(svc.config.External.S3.PublicDomain, "/") + "/" + key
}

// detectContentType trusts the part header and sniffs the content otherwise.
// file is rewound afterwards.
func detectContentType(file io.ReadSeeker, fileHeader *multipart.FileHeader) (string, error) {
	if contentType := fileHeader.Header.Get(constant.RequestHeaderContentType); contentType != "" {
		return contentType, nil
	}

	head := make([]byte, sniffLen)

	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return constant.Empty, fmt.Errorf("failed to read file: %w", err)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return constant.Empty, fmt.Errorf("failed to rewind file: %w", err)
	}

	return http.DetectContentType(head[:n]), nil
}
