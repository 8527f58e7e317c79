// Package address implements the home-address resource: a postal address
// stored as a hash under the owner's canonical phone number.
//
// Operations check for the record and then act on it in two separate store
// calls. The pair is not atomic: concurrent creates for one phone can both
// succeed, and a delete interleaved with an update can leave a partial record.
package address

import (
	"context"

	"github.com/sirupsen/logrus"

	"home-address/storage"
)

// Service performs the CRUD operations against a storage adapter. It holds
// no per-request state and is safe for concurrent use when the adapter is.
type Service struct {
	store storage.Adapter
	log   logrus.FieldLogger
}

// NewService returns a Service backed by store
func NewService(store storage.Adapter, log logrus.FieldLogger) *Service {
	return &Service{store: store, log: log}
}

// Create stores record under phone. It fails with ConflictError if a record exists.
func (s *Service) Create(ctx context.Context, phone string, record Record) error {
	s.log.WithField("phone", phone).Debug("create home address")

	exists, err := s.store.Exists(ctx, phone)
	if err != nil {
		return &StoreError{Op: "exists", Err: err}
	}
	if exists {
		return &ConflictError{Phone: phone}
	}

	if err = s.store.SetRecord(ctx, phone, record.Fields()); err != nil {
		return &StoreError{Op: "set", Err: err}
	}

	return nil
}

// Read returns the record stored under phone or NotFoundError
func (s *Service) Read(ctx context.Context, phone string) (Record, error) {
	s.log.WithField("phone", phone).Debug("read home address")

	exists, err := s.store.Exists(ctx, phone)
	if err != nil {
		return Record{}, &StoreError{Op: "exists", Err: err}
	}
	if !exists {
		return Record{}, &NotFoundError{Phone: phone}
	}

	fields, err := s.store.GetRecord(ctx, phone)
	if err != nil {
		return Record{}, &StoreError{Op: "get", Err: err}
	}

	return recordFromFields(fields), nil
}

// Update overwrites all fields of the record stored under phone or returns NotFoundError
func (s *Service) Update(ctx context.Context, phone string, record Record) error {
	s.log.WithField("phone", phone).Debug("update home address")

	exists, err := s.store.Exists(ctx, phone)
	if err != nil {
		return &StoreError{Op: "exists", Err: err}
	}
	if !exists {
		return &NotFoundError{Phone: phone}
	}

	if err = s.store.SetRecord(ctx, phone, record.Fields()); err != nil {
		return &StoreError{Op: "set", Err: err}
	}

	return nil
}

// Delete removes every field stored under phone. It returns NotFoundError when there are none.
func (s *Service) Delete(ctx context.Context, phone string) error {
	s.log.WithField("phone", phone).Debug("delete home address")

	fields, err := s.store.FieldNames(ctx, phone)
	if err != nil {
		return &StoreError{Op: "keys", Err: err}
	}
	if len(fields) == 0 {
		return &NotFoundError{Phone: phone}
	}

	if err = s.store.DeleteFields(ctx, phone, fields...); err != nil {
		return &StoreError{Op: "delete", Err: err}
	}

	return nil
}
