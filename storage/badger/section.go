package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/pitchcraft/core"
	"github.com/poiesic/pitchcraft/storage"
)

// SectionRepository implements storage.SectionRepository for BadgerDB.
// Sections use content-based IDs derived from their names, so re-adding a
// section with the same name is an overwrite rather than a duplicate.
type SectionRepository struct {
	backend *Backend
}

var _ storage.SectionRepository = (*SectionRepository)(nil)

// NewSectionRepository creates a new SectionRepository.
func NewSectionRepository(backend *Backend) (*SectionRepository, error) {
	return &SectionRepository{
		backend: backend,
	}, nil
}

// Close releases resources. SectionRepository has no resources to release.
func (r *SectionRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *SectionRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddSections adds one or more sections to storage.
func (r *SectionRepository) AddSections(ctx context.Context, sections ...*core.Section) ([]*core.Section, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, section := range sections {
			// Use content-based ID if not set
			if section.Id == 0 {
				section.Id = section.ContentID()
			}

			// Set timestamps
			section.InsertedAt = time.Now().UTC()
			section.UpdatedAt = section.InsertedAt

			// Store primary record
			key := makeSectionKey(section.Id)
			value := storage.MarshalSection(section)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Store name index
			nameKey := makeSectionNameKey(section.Name)
			if err := tx.Set(nameKey, storage.MarshalID(section.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return sections, err
}

// GetSection retrieves a single section by ID.
func (r *SectionRepository) GetSection(ctx context.Context, id core.ID) (*core.Section, error) {
	var result *core.Section
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSectionKey(id)
		var err error
		result, err = readSection(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetSectionByName finds a section by its exact name.
func (r *SectionRepository) GetSectionByName(ctx context.Context, name string) (*core.Section, error) {
	var result *core.Section
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeSectionNameKey(name))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var sectionID core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			sectionID, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = readSection(tx, makeSectionKey(sectionID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetSections retrieves all sections ordered by SuggestedOrder.
func (r *SectionRepository) GetSections(ctx context.Context) ([]*core.Section, error) {
	var results []*core.Section
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(sectionPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var section *core.Section
			if err := iter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				section, unmarshalErr = storage.UnmarshalSection(val)
				return unmarshalErr
			}); err != nil {
				return err
			}
			if section != nil {
				results = append(results, section)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.Section) int {
		return a.SuggestedOrder - b.SuggestedOrder
	})

	return results, nil
}

// readSection reads a section from the transaction.
// Returns nil, nil when the key does not exist.
func readSection(tx *badger.Txn, key []byte) (*core.Section, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var section *core.Section
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		section, unmarshalErr = storage.UnmarshalSection(val)
		return unmarshalErr
	})
	return section, err
}
