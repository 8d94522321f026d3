package adapter

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
)

var ErrNotFound = goerr.New("object not found")

// Storage is the interface for the knowledge base dump
type Storage interface {
	// Put returns a writer; the object is committed when the writer is closed
	Put(ctx context.Context, key string) (io.WriteCloser, error)
	// Get returns a reader, or an error wrapping ErrNotFound if key is absent
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// fileStorage keeps objects as files under a base directory
type fileStorage struct {
	baseDir string
}

// NewFileStorage creates a Storage rooted at baseDir
func NewFileStorage(baseDir string) Storage {
	return &fileStorage{baseDir: baseDir}
}

func (s *fileStorage) path(key string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(key))
}

func (s *fileStorage) Put(ctx context.Context, key string) (io.WriteCloser, error) {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create directory", goerr.V("key", key))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create temp file", goerr.V("key", key))
	}

	return &atomicFile{file: tmp, dst: path}, nil
}

func (s *fileStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, goerr.Wrap(ErrNotFound, "file does not exist", goerr.V("key", key))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open file", goerr.V("key", key))
	}
	return f, nil
}

// atomicFile renames the temp file over the destination on Close. After a
// failed Write the temp file is discarded and the destination is untouched.
type atomicFile struct {
	file   *os.File
	dst    string
	failed bool
	closed bool
}

func (f *atomicFile) Write(p []byte) (int, error) {
	n, err := f.file.Write(p)
	if err != nil {
		f.failed = true
		return n, goerr.Wrap(err, "failed to write temp file", goerr.V("path", f.dst))
	}
	return n, nil
}

func (f *atomicFile) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	tmp := f.file.Name()
	if err := f.file.Close(); err != nil {
		_ = os.Remove(tmp)
		return goerr.Wrap(err, "failed to close temp file")
	}
	if f.failed {
		_ = os.Remove(tmp)
		return goerr.New("write failed, file left unchanged", goerr.V("path", f.dst))
	}
	if err := os.Rename(tmp, f.dst); err != nil {
		_ = os.Remove(tmp)
		return goerr.Wrap(err, "failed to replace file", goerr.V("path", f.dst))
	}
	return nil
}

// storageClient implements Storage interface using Cloud Storage
type storageClient struct {
	bucketName string
	client     *storage.Client
}

// NewStorage creates a new Cloud Storage client
func NewStorage(ctx context.Context, bucketName string, opts ...option.ClientOption) (Storage, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &storageClient{
		bucketName: bucketName,
		client:     client,
	}, nil
}

func (s *storageClient) Put(ctx context.Context, key string) (io.WriteCloser, error) {
	obj := s.client.Bucket(s.bucketName).Object(key)
	writer := obj.NewWriter(ctx)
	writer.ContentType = "application/yaml"
	return writer, nil
}

func (s *storageClient) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj := s.client.Bucket(s.bucketName).Object(key)
	reader, err := obj.NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, goerr.Wrap(ErrNotFound, "object does not exist", goerr.V("key", key))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read from storage", goerr.V("key", key))
	}

	return reader, nil
}
