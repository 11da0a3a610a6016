package blob_test

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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vgc-store/internal/infrastructure/blob"
)

func TestLocalStore_Upload(t *testing.T) {
	dir := t.TempDir()
	store := blob.NewLocalStore(dir, "/media/")

	url, err := store.Upload(context.Background(), "products/1700000000000_scarf.png", "image/png", strings.NewReader("png-bytes"), 9)
	require.NoError(t, err)
	assert.Equal(t, "/media/products/1700000000000_scarf.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "products", "1700000000000_scarf.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalStore_ClaveInvalida(t *testing.T) {
	store := blob.NewLocalStore(t.TempDir(), "/media")
	for _, key := range []string{"", "../etc/passwd", "products/../../x"} {
		_, err := store.Upload(context.Background(), key, "", strings.NewReader("x"), 1)
		assert.Error(t, err, key)
	}
}

type fakeS3 struct {
	in   *s3.PutObjectInput
	body string
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.in = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Upload(t *testing.T) {
	fake := &fakeS3{}
	store := blob.NewS3Store(fake, "vgc-media", "ap-south-1", "")

	url, err := store.Upload(context.Background(), "products/1_hat.jpg", "image/jpeg", strings.NewReader("jpg"), 3)
	require.NoError(t, err)
	assert.Equal(t, "https://vgc-media.s3.ap-south-1.amazonaws.com/products/1_hat.jpg", url)
	assert.Equal(t, "vgc-media", aws.ToString(fake.in.Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(fake.in.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(fake.in.ContentLength))
	assert.Equal(t, "jpg", fake.body)
}

func TestS3Store_URLPublicaPersonalizada(t *testing.T) {
	store := blob.NewS3Store(&fakeS3{}, "b", "r", "https://cdn.example.com/")
	url, err := store.Upload(context.Background(), "products/1_a.png", "", strings.NewReader("a"), 1)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/products/1_a.png", url)
}

func TestS3Store_Error(t *testing.T) {
	store := blob.NewS3Store(&fakeS3{err: errors.New("AccessDenied")}, "b", "r", "")
	_, err := store.Upload(context.Background(), "products/1_a.png", "", strings.NewReader("a"), 1)
	assert.ErrorContains(t, err, "AccessDenied")
}
