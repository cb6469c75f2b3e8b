package ingest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 is an in-memory bucket that pages listings pageSize keys at a time
type fakeS3 struct {
	mu       sync.Mutex
	objects  map[string][]byte
	pageSize int
	puts     int
	listErr  error
}

func newFakeS3(objects map[string]string) *fakeS3 {
	f := &fakeS3{objects: make(map[string][]byte), pageSize: 2}
	for k, v := range objects {
		f.objects[k] = []byte(v)
	}
	return f
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := 0
	if in.ContinuationToken != nil {
		start, _ = strconv.Atoi(*in.ContinuationToken)
	}
	end := start + f.pageSize
	if end > len(keys) {
		end = len(keys)
	}

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	for _, k := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(strconv.Itoa(end))
	}
	return out, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = data
	f.puts++
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) HeadBucket(ctx context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if aws.ToString(in.Bucket) != "records" {
		return nil, &types.NotFound{}
	}
	return &s3.HeadBucketOutput{}, nil
}

func TestS3Source_List(t *testing.T) {
	client := newFakeS3(map[string]string{
		"inbox/a.json":       validRecordJSON,
		"inbox/b.yaml":       validRecordYAML,
		"inbox/c.pb":         "",
		"inbox/readme.txt":   "not a record",
		"inbox/nested/":      "",
		"inbox/nested/d.yml": validRecordYAML,
		"other/e.json":       validRecordJSON,
	})
	src := NewS3Source(client, "records", "inbox/")

	keys, err := src.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"inbox/a.json", "inbox/b.yaml", "inbox/c.pb", "inbox/nested/d.yml"}, keys)
	assert.Equal(t, "s3://records/inbox/", src.Name())
}

func TestS3Source_ListError(t *testing.T) {
	client := newFakeS3(nil)
	client.listErr = errors.New("access denied")

	_, err := NewS3Source(client, "records", "").List(context.Background())
	assert.ErrorContains(t, err, "access denied")
}

func TestS3Source_Read(t *testing.T) {
	client := newFakeS3(map[string]string{"a.json": validRecordJSON})
	src := NewS3Source(client, "records", "")

	data, err := src.Read(context.Background(), "a.json")
	require.NoError(t, err)
	assert.Equal(t, validRecordJSON, string(data))

	_, err = src.Read(context.Background(), "missing.json")
	var noSuchKey *types.NoSuchKey
	assert.ErrorAs(t, err, &noSuchKey)
}

func TestS3Source_HealthCheck(t *testing.T) {
	client := newFakeS3(nil)
	assert.NoError(t, NewS3Source(client, "records", "").HealthCheck(context.Background()))
	assert.Error(t, NewS3Source(client, "elsewhere", "").HealthCheck(context.Background()))
}

func TestArchiveKey(t *testing.T) {
	assert.Equal(t, "canonical/sha256/ab/cdef.json", ArchiveKey("canonical/", "abcdef"))
	assert.Equal(t, "sha256/ab.json", ArchiveKey("", "ab"))
}

func TestS3Archive_Put(t *testing.T) {
	client := newFakeS3(nil)
	archive := NewS3Archive(client, "records", "canonical/")
	ctx := context.Background()

	key, err := archive.Put(ctx, "abcdef", []byte(`{"inputs":{}}`))
	require.NoError(t, err)
	assert.Equal(t, "canonical/sha256/ab/cdef.json", key)
	assert.Equal(t, 1, client.puts)

	// same digest is not uploaded again
	again, err := archive.Put(ctx, "abcdef", []byte(`{"inputs":{}}`))
	require.NoError(t, err)
	assert.Equal(t, key, again)
	assert.Equal(t, 1, client.puts)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(&types.NotFound{}))
	assert.True(t, isNotFound(&types.NoSuchKey{}))
	assert.False(t, isNotFound(errors.New("NotFound")))
	assert.False(t, isNotFound(nil))
}
