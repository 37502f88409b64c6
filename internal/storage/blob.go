// Package storage holds uploaded images in per-entity namespaces addressed
// by opaque path strings, and issues short-lived signed URLs for reading
// them back. Files are private: nothing is served without a valid token.
package storage

import (
	"context"
	"io"
)

// Namespaces for uploaded files. Each entity's images live in their own
// prefix so retention and cleanup can differ per entity.
const (
	NamespaceHouseholdHead = "household-head"
	NamespaceSpouseID      = "spouse-id"
	NamespaceOfficials     = "officials"
)

// KnownNamespace reports whether uploads may target the namespace.
func KnownNamespace(namespace string) bool {
	switch namespace {
	case NamespaceHouseholdHead, NamespaceSpouseID, NamespaceOfficials:
		return true
	}
	return false
}

// BlobStore stores and retrieves uploaded files by opaque path.
//
// Put returns the generated path ("namespace/name"). Get returns
// sentinel.ErrNotFound for unknown paths.
type BlobStore interface {
	Put(ctx context.Context, namespace string, data io.Reader) (string, error)
	Get(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
	Delete(ctx context.Context, path string) error
}
