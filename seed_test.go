package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects   map[string]string
	headErr   error
	getErr    error
	gotBucket string
}

func (f *fakeS3) HeadBucket(_ context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	f.gotBucket = aws.ToString(in.Bucket)
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "missing"}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

var testS3Config = S3Config{Endpoint: "http://localhost:9000", Bucket: "helpcenter", Key: "cards.json"}

func TestLoadSeedBuiltin(t *testing.T) {
	cards, err := loadSeed(context.Background(), SeedConfig{Source: seedSourceBuiltin}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, builtinCards, cards)

	cards[0].Title = "mutated"
	assert.Equal(t, "Account Management", builtinCards[0].Title)
}

func TestLoadSeedNone(t *testing.T) {
	cards, err := loadSeed(context.Background(), SeedConfig{Source: seedSourceNone}, discardLogger())
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
cards:
  - id: "10"
    title: Onboarding
    description: First steps with the product.
  - id: "11"
    title: Integrations
    description: Connect third-party tools.
`), 0o600))

	cards, err := loadSeed(context.Background(), SeedConfig{Source: seedSourceFile, File: path}, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, []Card{
		{ID: "10", Title: "Onboarding", Description: "First steps with the product."},
		{ID: "11", Title: "Integrations", Description: "Connect third-party tools."},
	}, cards)
}

func TestLoadSeedFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.yml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	cards, err := loadFileCatalogue(path)
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestLoadSeedFileErrors(t *testing.T) {
	_, err := loadFileCatalogue(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("cards: {"), 0o600))
	_, err = loadFileCatalogue(path)
	assert.Error(t, err)
}

func TestLoadS3Catalogue(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{
		"cards.json": `{"cards":[{"id":"a","title":"Returns","description":"How to return an order."}]}`,
	}}
	cards, err := loadS3Catalogue(context.Background(), fake, testS3Config, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, []Card{{ID: "a", Title: "Returns", Description: "How to return an order."}}, cards)
}

func TestLoadS3CatalogueMissingObject(t *testing.T) {
	cards, err := loadS3Catalogue(context.Background(), &fakeS3{}, testS3Config, discardLogger())
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestLoadS3CatalogueErrors(t *testing.T) {
	fake := &fakeS3{getErr: errors.New("connection refused")}
	_, err := loadS3Catalogue(context.Background(), fake, testS3Config, discardLogger())
	assert.ErrorContains(t, err, "connection refused")

	fake = &fakeS3{objects: map[string]string{"cards.json": "not json"}}
	_, err = loadS3Catalogue(context.Background(), fake, testS3Config, discardLogger())
	assert.ErrorContains(t, err, "decoding cards json")
}

func TestEnsureBucketExists(t *testing.T) {
	fake := &fakeS3{}
	require.NoError(t, EnsureBucketExists(context.Background(), fake, testS3Config))
	assert.Equal(t, "helpcenter", fake.gotBucket)

	fake.headErr = &smithy.GenericAPIError{Code: "NotFound"}
	assert.ErrorContains(t, EnsureBucketExists(context.Background(), fake, testS3Config), "does not exist")

	fake.headErr = errors.New("timeout")
	assert.ErrorContains(t, EnsureBucketExists(context.Background(), fake, testS3Config), "error checking bucket")
}

func TestNewS3ClientRequiresEndpoint(t *testing.T) {
	_, err := NewS3Client(context.Background(), S3Config{})
	assert.Error(t, err)

	client, err := NewS3Client(context.Background(), S3Config{
		Endpoint:  "http://localhost:9000",
		Region:    "us-east-1",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	require.NoError(t, err)
	assert.NotNil(t, client)
}
