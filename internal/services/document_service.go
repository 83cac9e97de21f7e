package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/justsurfingit/Placement-Tracker/internal/storage"
)

const (
	DownloadURLTTL = 300 * time.Second
	PreviewURLTTL  = 3600 * time.Second

	sniffLen = 3072
)

var allowedDocumentTypes = []string{"application/pdf", "image/jpeg", "image/png", "image/webp"}

// ObjectStore is the file storage backend. storage.OSSStore implements it.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]storage.Object, error)
	SignURL(ctx context.Context, key string, ttl time.Duration, d storage.Disposition) (string, error)
}

// Document is a stored file as listed on the student page.
type Document struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
}

// DocumentService keeps files under "<studentID>/<name>".
type DocumentService struct {
	Store ObjectStore
}

func NewDocumentService(store ObjectStore) *DocumentService {
	return &DocumentService{Store: store}
}

func documentKey(studentID uint, name string) (string, error) {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "" || name == "." || name == "/" || name == ".." {
		return "", fmt.Errorf("%w: file name %q", ErrInvalidInput, name)
	}
	return fmt.Sprintf("%d/%s", studentID, name), nil
}

// Upload checks the content type by sniffing, then stores the file. A file
// without a name gets a random one.
func (s *DocumentService) Upload(ctx context.Context, studentID uint, name string, r io.Reader) (*Document, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	mt := mimetype.Detect(head)
	if !mimetype.EqualsAny(mt.String(), allowedDocumentTypes...) {
		return nil, fmt.Errorf("%w: %s", ErrUploadRejected, mt.String())
	}

	if strings.TrimSpace(name) == "" {
		name = uuid.NewString() + mt.Extension()
	}
	key, err := documentKey(studentID, name)
	if err != nil {
		return nil, err
	}

	body := &countingReader{r: io.MultiReader(bytes.NewReader(head), r)}
	if err := s.Store.Put(ctx, key, body, mt.String()); err != nil {
		return nil, fmt.Errorf("store %s: %w", key, err)
	}
	return &Document{Name: path.Base(key), Size: body.n, LastModified: time.Now()}, nil
}

func (s *DocumentService) List(ctx context.Context, studentID uint) ([]Document, error) {
	objs, err := s.Store.List(ctx, fmt.Sprintf("%d/", studentID))
	if err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(objs))
	for _, o := range objs {
		docs = append(docs, Document{Name: path.Base(o.Key), Size: o.Size, LastModified: o.LastModified})
	}
	return docs, nil
}

func (s *DocumentService) Open(ctx context.Context, studentID uint, name string) (io.ReadCloser, error) {
	key, err := documentKey(studentID, name)
	if err != nil {
		return nil, err
	}
	return s.Store.Get(ctx, key)
}

func (s *DocumentService) Delete(ctx context.Context, studentID uint, name string) error {
	key, err := documentKey(studentID, name)
	if err != nil {
		return err
	}
	return s.Store.Delete(ctx, key)
}

// DownloadURL is a short-lived attachment link.
func (s *DocumentService) DownloadURL(ctx context.Context, studentID uint, name string) (string, error) {
	key, err := documentKey(studentID, name)
	if err != nil {
		return "", err
	}
	return s.Store.SignURL(ctx, key, DownloadURLTTL, storage.Attachment)
}

// PreviewURL is an inline link, long enough to keep a preview tab open.
func (s *DocumentService) PreviewURL(ctx context.Context, studentID uint, name string) (string, error) {
	key, err := documentKey(studentID, name)
	if err != nil {
		return "", err
	}
	return s.Store.SignURL(ctx, key, PreviewURLTTL, storage.Inline)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
