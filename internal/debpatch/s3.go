package debpatch

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BucketClient wraps the S3 client for whichever S3-compatible store the
// operator keeps artifacts in (S3 proper, R2, MinIO).
type BucketClient struct {
	Client     *s3.Client
	BucketName string
}

// NewBucketClient initializes the client from configuration values.
func NewBucketClient(cfg *Config) (*BucketClient, error) {
	endpoint := cfg.Values["DEBPATCH_S3_ENDPOINT"]
	accessKey := cfg.Values["DEBPATCH_S3_ACCESS_KEY"]
	secretKey := cfg.Values["DEBPATCH_S3_SECRET_KEY"]
	bucketName := cfg.Values["DEBPATCH_S3_BUCKET"]

	if endpoint == "" || accessKey == "" || secretKey == "" || bucketName == "" {
		return nil, &ConfigError{Key: "DEBPATCH_S3_*", Reason: "upload needs DEBPATCH_S3_ENDPOINT, DEBPATCH_S3_ACCESS_KEY, DEBPATCH_S3_SECRET_KEY and DEBPATCH_S3_BUCKET"}
	}

	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{URL: endpoint}, nil
	})

	options := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		awsconfig.WithRegion("auto"),
	}

	if Debug {
		options = append(options, awsconfig.WithClientLogMode(aws.LogSigning|aws.LogRetries|aws.LogRequest|aws.LogResponse))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return &BucketClient{
		Client:     client,
		BucketName: bucketName,
	}, nil
}

// UploadLocalFile uploads a file from disk.
func (b *BucketClient) UploadLocalFile(ctx context.Context, key, filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return err
	}

	contentType := "application/octet-stream"
	if strings.HasSuffix(key, ".deb") {
		contentType = "application/vnd.debian.binary-package"
	}

	_, err = b.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.BucketName),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(stat.Size()),
		ContentType:   aws.String(contentType),
	})
	return err
}

// ListKeys returns the object keys under the given prefix.
func (b *BucketClient) ListKeys(ctx context.Context, prefix string) (map[string]bool, error) {
	keys := make(map[string]bool)
	paginator := s3.NewListObjectsV2Paginator(b.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.BucketName),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			keys[*obj.Key] = true
		}
	}
	return keys, nil
}
