package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type Object struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// Disposition controls how a signed URL is opened by the browser.
type Disposition string

const (
	Inline     Disposition = "inline"
	Attachment Disposition = "attachment"
)

// OSSStore keeps student documents in one OSS bucket.
type OSSStore struct {
	bucket *oss.Bucket
}

func NewOSSStore(endpoint, accessKeyID, accessKeySecret, bucketName string) (*OSSStore, error) {
	client, err := oss.New(endpoint, accessKeyID, accessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("oss bucket %s: %w", bucketName, err)
	}
	return &OSSStore{bucket: bkt}, nil
}

func (s *OSSStore) Put(ctx context.Context, key string, r io.Reader, contentType string) error {
	return s.bucket.PutObject(key, r, oss.ContentType(contentType), oss.WithContext(ctx))
}

func (s *OSSStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.bucket.GetObject(key, oss.WithContext(ctx))
}

func (s *OSSStore) Delete(ctx context.Context, key string) error {
	return s.bucket.DeleteObject(key, oss.WithContext(ctx))
}

func (s *OSSStore) List(ctx context.Context, prefix string) ([]Object, error) {
	var out []Object
	token := ""
	for {
		opts := []oss.Option{oss.Prefix(prefix), oss.MaxKeys(1000), oss.WithContext(ctx)}
		if token != "" {
			opts = append(opts, oss.ContinuationToken(token))
		}
		res, err := s.bucket.ListObjectsV2(opts...)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", prefix, err)
		}
		for _, o := range res.Objects {
			out = append(out, Object{Key: o.Key, Size: o.Size, LastModified: o.LastModified})
		}
		if !res.IsTruncated {
			return out, nil
		}
		token = res.NextContinuationToken
	}
}

func (s *OSSStore) SignURL(ctx context.Context, key string, ttl time.Duration, d Disposition) (string, error) {
	return s.bucket.SignURL(key, oss.HTTPGet, int64(ttl/time.Second),
		oss.ResponseContentDisposition(string(d)))
}
