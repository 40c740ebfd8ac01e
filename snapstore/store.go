/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package snapstore persists the aggregate counters of a match series so a
// series can be resumed, reported on later, or shared between machines.
// Individual games are never stored.
package snapstore

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/gregjones/httpcache"
	"github.com/peterbourgon/diskv"

	"github.com/mikeb26/duelresult/internal"
)

var ErrNotFound = errors.New("snapshot not found")

// Store keeps snapshot blobs by key. Get reports an absent key as
// ErrNotFound; any other error means the store could not be read and says
// nothing about whether the key exists.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

type memoryStore struct {
	cache *httpcache.MemoryCache
}

// NewMemory returns a process local store; its contents die with the
// process.
func NewMemory() Store {
	return &memoryStore{cache: httpcache.NewMemoryCache()}
}

func (m *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, ok := m.cache.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (m *memoryStore) Put(ctx context.Context, key string, data []byte) error {
	m.cache.Set(key, data)
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

type diskStore struct {
	d *diskv.Diskv
}

// NewDisk returns a store that keeps one file per key under dir.
func NewDisk(dir string) Store {
	return &diskStore{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			CacheSizeMax: 1 << 20,
		}),
	}
}

// diskKey flattens key into a file name.
func diskKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	return hex.EncodeToString(h.Sum(nil))
}

func (s *diskStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.d.Read(diskKey(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("snapstore.get: %v: %w", key, err)
	}
	return data, nil
}

func (s *diskStore) Put(ctx context.Context, key string, data []byte) error {
	if err := s.d.Write(diskKey(key), data); err != nil {
		return fmt.Errorf("snapstore.put: %v: %w", key, err)
	}
	return nil
}

func (s *diskStore) Delete(ctx context.Context, key string) error {
	err := s.d.Erase(diskKey(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("snapstore.delete: %v: %w", key, err)
	}
	return nil
}

// Open returns the store selected by cfg. An unreachable S3 bucket is an
// error; callers that can live without persistence may fall back to
// NewMemory themselves.
func Open(ctx context.Context, cfg internal.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case internal.BackendS3:
		s3Store := NewS3(cfg)
		if err := s3Store.Init(ctx); err != nil {
			return nil, fmt.Errorf("snapstore.open: %w", err)
		}
		return s3Store, nil
	case internal.BackendDisk:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("snapstore.open: disk store requires a dir")
		}
		return NewDisk(cfg.Dir), nil
	case internal.BackendMemory:
		return NewMemory(), nil
	}

	return nil, fmt.Errorf("snapstore.open: unknown backend %q", cfg.Backend)
}
