package service

import (
	"bytes"
	"context"
	"io"

	"github.com/wb-go/wbf/retry"
)

// MOCK STORE

type mockStore struct {
	appendFn   func(ctx context.Context, name string) error
	snapshotFn func(ctx context.Context) ([]string, error)
}

func (m *mockStore) Append(ctx context.Context, name string) error {
	return m.appendFn(ctx, name)
}

func (m *mockStore) Snapshot(ctx context.Context) ([]string, error) {
	return m.snapshotFn(ctx)
}

// MOCK STORAGE

type mockStorage struct {
	putFn    func(ctx context.Context, name string, r io.Reader) error
	deleteFn func(ctx context.Context, name string) error
}

func (m *mockStorage) Put(ctx context.Context, name string, r io.Reader) error {
	return m.putFn(ctx, name, r)
}

func (m *mockStorage) Delete(ctx context.Context, name string) error {
	return m.deleteFn(ctx, name)
}

// MOCK PUBLISHER

type mockPublisher struct {
	sendFn func(ctx context.Context, s retry.Strategy, key []byte, v []byte) error
}

func (m *mockPublisher) SendWithRetry(ctx context.Context, s retry.Strategy, key []byte, v []byte) error {
	return m.sendFn(ctx, s, key, v)
}

// MOCK для multipart.File
type fakeMultipartFile struct {
	*bytes.Reader
}

func (f *fakeMultipartFile) Close() error {
	return nil
}
