package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/dmitrijs2005/toolsubmit/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, b)
	return &s3.PutObjectOutput{}, nil
}

func swapAWS(t *testing.T, putter *fakePutter, capture *s3.Options) {
	t.Helper()
	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		if lo.Credentials == nil {
			t.Fatalf("credentials provider not applied")
		}
		return aws.Config{}, nil
	}

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectPutter {
		for _, fn := range optFns {
			fn(capture)
		}
		return putter
	}
}

func testOptions() S3Options {
	return S3Options{
		AccessKey:    "minioadmin",
		SecretKey:    "minioadmin",
		Bucket:       "images",
		Region:       "us-east-1",
		BaseEndpoint: "http://127.0.0.1:9000/",
	}
}

func TestNewS3Storage_AppliesEndpoint(t *testing.T) {
	putter := &fakePutter{}
	var opts s3.Options
	swapAWS(t, putter, &opts)

	s, err := NewS3Storage(context.Background(), testOptions())
	require.NoError(t, err)

	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000/", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, "http://127.0.0.1:9000/images/logos/Acme%20Tool-1-logo.png", s.PublicURL("logos/Acme Tool-1-logo.png"))
}

func TestNewS3Storage_PublicBaseURL(t *testing.T) {
	swapAWS(t, &fakePutter{}, &s3.Options{})

	o := testOptions()
	o.PublicBaseURL = "https://cdn.example.com/assets/"

	s, err := NewS3Storage(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/assets/screenshots/a.png", s.PublicURL("screenshots/a.png"))
}

func TestNewS3Storage_ConstructionErrors(t *testing.T) {
	swapAWS(t, &fakePutter{}, &s3.Options{})

	o := testOptions()
	o.Bucket = ""
	_, err := NewS3Storage(context.Background(), o)
	assert.ErrorIs(t, err, common.ErrMissingCredential)

	o = testOptions()
	o.SecretKey = ""
	_, err = NewS3Storage(context.Background(), o)
	assert.ErrorIs(t, err, common.ErrMissingCredential)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}
	_, err = NewS3Storage(context.Background(), testOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load-fail")
}

func TestS3Storage_Put(t *testing.T) {
	putter := &fakePutter{}
	swapAWS(t, putter, &s3.Options{})

	s, err := NewS3Storage(context.Background(), testOptions())
	require.NoError(t, err)

	require.NoError(t, s.Put(context.Background(), "logos/a.png", []byte("png"), common.ImageContentType))

	require.Len(t, putter.inputs, 1)
	in := putter.inputs[0]
	assert.Equal(t, "images", *in.Bucket)
	assert.Equal(t, "logos/a.png", *in.Key)
	assert.Equal(t, "image/png", *in.ContentType)
	assert.Equal(t, int64(3), *in.ContentLength)
	assert.Equal(t, []byte("png"), putter.bodies[0])
}

func TestS3Storage_PutSurfacesServiceError(t *testing.T) {
	putter := &fakePutter{err: &smithy.GenericAPIError{Code: "AccessDenied", Message: "bucket policy denies write"}}
	swapAWS(t, putter, &s3.Options{})

	s, err := NewS3Storage(context.Background(), testOptions())
	require.NoError(t, err)

	err = s.Put(context.Background(), "logos/a.png", []byte("png"), common.ImageContentType)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUpload)
	assert.Contains(t, err.Error(), "AccessDenied: bucket policy denies write")
}
