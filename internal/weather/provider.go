package weather

import (
	"context"
	"io"
)

// Source abstracts a place weather CSV bytes can be read from
// (a local file, an HTTP endpoint).
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Store is the contract the in-memory store (and any future persistent store) must satisfy.
type Store interface {
	Save(entry Entry)
	Get(id string) (Entry, error)
	Latest(name string) (Entry, error)
	List() []Entry
}
