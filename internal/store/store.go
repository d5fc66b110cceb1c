package store

import (
	"context"
	"errors"

	"retailpulse/backend/internal/domain"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUnknownStore  = errors.New("unknown store")
	ErrInvalidFilter = errors.New("invalid filter")
)

// Repository holds the published StoreData per store. Records handed out are
// shared and must be treated as read-only.
type Repository interface {
	GetStoreData(ctx context.Context, storeID domain.StoreID) (*domain.StoreData, error)
	PutStoreData(ctx context.Context, data domain.StoreData) (*domain.StoreData, error)
	ListStoreData(ctx context.Context) ([]*domain.StoreData, error)
}
