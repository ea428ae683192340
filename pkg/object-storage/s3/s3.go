package s3

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const (
	uploadTimeout = time.Second * 30
	signTimeout   = time.Second * 10
)

var ErrObjectExists = errors.New("object already exists")

type S3 struct {
	Endpoint string
	Region   string
	Bucket   string
	ak       string
	sk       string
}

func NewS3Client(endpoint, region, bucket, ak, sk string) *S3 {
	return &S3{
		Endpoint: endpoint,
		Region:   region,
		Bucket:   bucket,
		ak:       ak,
		sk:       sk,
	}
}

func (s *S3) DefaultConfig(ctx context.Context) (aws.Config, error) {
	return config.LoadDefaultConfig(
		ctx,
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID: s.ak, SecretAccessKey: s.sk,
			},
		}),
		config.WithRegion(s.Region),
		config.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:           s.Endpoint,
				SigningRegion: s.Region,
			}, nil
		})))
}

// GenGetObjectPreSignURL issues a time boxed read url for one private
// object. A missing object is an error, presigning alone would happily
// produce a url that 404s.
func (s *S3) GenGetObjectPreSignURL(filePath string, expires time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), signTimeout)
	defer cancel()

	cfg, err := s.DefaultConfig(ctx)
	if err != nil {
		return "", err
	}
	s3Client := s3.NewFromConfig(cfg)

	if _, err = s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(strings.TrimPrefix(filePath, "/")),
	}); err != nil {
		return "", err
	}

	s3PresignClient := s3.NewPresignClient(s3Client)
	req, err := s3PresignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(strings.TrimPrefix(filePath, "/")),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// GenClientUploadKey issues a short lived PUT url so clients can upload
// directly to the bucket.
func (s *S3) GenClientUploadKey(filePath, file string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), signTimeout)
	defer cancel()
	filePath = strings.TrimPrefix(filePath, "/")

	cfg, err := s.DefaultConfig(ctx)
	if err != nil {
		return "", err
	}
	s3Client := s3.NewFromConfig(cfg)
	s3PresignClient := s3.NewPresignClient(s3Client)
	req, err := s3PresignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(filepath.Join(filePath, file)),
	}, s3.WithPresignExpires(time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// Upload writes one object. With overwrite false an existing object under
// the same key is left untouched and ErrObjectExists is returned.
func (s *S3) Upload(ctx context.Context, filePath, file string, body io.Reader, overwrite bool) error {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	filePath = strings.TrimPrefix(filePath, "/")
	key := filepath.Join(filePath, file)

	cfg, err := s.DefaultConfig(ctx)
	if err != nil {
		return err
	}
	s3Client := s3.NewFromConfig(cfg)

	if !overwrite {
		_, err = s3Client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(s.Bucket),
			Key:    aws.String(key),
		})
		if err == nil {
			return ErrObjectExists
		}
	}

	s3Manager := manager.NewUploader(s3Client)
	_, err = s3Manager.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return err
	}
	return nil
}

func (s *S3) Delete(ctx context.Context, fullPath string) error {
	ctx, cancel := context.WithTimeout(ctx, signTimeout)
	defer cancel()

	cfg, err := s.DefaultConfig(ctx)
	if err != nil {
		return err
	}
	s3Client := s3.NewFromConfig(cfg)
	_, err = s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(strings.TrimPrefix(fullPath, "/")),
	})
	if err != nil {
		return err
	}
	return nil
}

// BatchDelete removes up to 1000 objects in one request.
func (s *S3) BatchDelete(ctx context.Context, fullPaths []string) error {
	if len(fullPaths) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	cfg, err := s.DefaultConfig(ctx)
	if err != nil {
		return err
	}
	s3Client := s3.NewFromConfig(cfg)

	var objects []s3types.ObjectIdentifier
	for _, p := range fullPaths {
		objects = append(objects, s3types.ObjectIdentifier{
			Key: aws.String(strings.TrimPrefix(p, "/")),
		})
	}

	_, err = s3Client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.Bucket),
		Delete: &s3types.Delete{
			Objects: objects,
		},
	})
	return err
}
