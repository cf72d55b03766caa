package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/pitchcraft/core"
	"github.com/poiesic/pitchcraft/storage"
)

// DeckRepository implements storage.DeckRepository for BadgerDB.
type DeckRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.DeckRepository = (*DeckRepository)(nil)

// NewDeckRepository creates a new DeckRepository.
func NewDeckRepository(backend *Backend) (*DeckRepository, error) {
	idSeq, err := backend.GetSequence(deckIDSeq)
	if err != nil {
		return nil, err
	}

	return &DeckRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *DeckRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *DeckRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddDeck adds a deck to storage.
func (r *DeckRepository) AddDeck(ctx context.Context, deck *core.Deck) (*core.Deck, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		nextID, err := nextSequenceID(r.idSeq)
		if err != nil {
			return err
		}
		deck.Id = nextID

		if deck.Status == "" {
			deck.Status = core.DeckStatusDraft
		}
		if deck.Version == 0 {
			deck.Version = 1
		}
		deck.InsertedAt = time.Now().UTC()
		deck.UpdatedAt = deck.InsertedAt

		// Store primary record
		key := makeDeckKey(deck.Id)
		value := storage.MarshalDeck(deck)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Update user index
		userKey := makeDeckUserKey(deck.UserId, deck.Id)
		if err := tx.Set(userKey, storage.MarshalID(deck.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	return deck, err
}

// UpdateDeck updates an existing deck.
func (r *DeckRepository) UpdateDeck(ctx context.Context, deck *core.Deck) (*core.Deck, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDeckKey(deck.Id)

		// Read old deck to detect changes
		old, err := readDeck(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		// Ownership and creation time never change on update
		deck.UserId = old.UserId
		deck.InsertedAt = old.InsertedAt
		deck.UpdatedAt = time.Now().UTC()

		value := storage.MarshalDeck(deck)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	return deck, err
}

// DeleteDeck removes a deck by ID.
func (r *DeckRepository) DeleteDeck(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDeckKey(id)

		// Read deck to get metadata for index cleanup
		deck, err := readDeck(tx, key)
		if err != nil {
			return err
		}
		if deck == nil {
			return storage.ErrNotFound
		}

		// Delete from user index
		userKey := makeDeckUserKey(deck.UserId, deck.Id)
		if err := tx.Delete(userKey); err != nil {
			return err
		}

		// Delete primary record
		if err := tx.Delete(key); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// GetDeck retrieves a single deck by ID.
func (r *DeckRepository) GetDeck(ctx context.Context, id core.ID) (*core.Deck, error) {
	var result *core.Deck
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeDeckKey(id)
		var err error
		result, err = readDeck(tx, key)
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

// GetDecksByUser retrieves all decks owned by a user, newest first.
func (r *DeckRepository) GetDecksByUser(ctx context.Context, userID string) ([]*core.Deck, error) {
	var results []*core.Deck
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialDeckUserKey(userID)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = startKey
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var deckID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				deckID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			deck, err := readDeck(tx, makeDeckKey(deckID))
			if err != nil {
				return err
			}
			if deck != nil {
				results = append(results, deck)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Newest first
	slices.SortFunc(results, func(a, b *core.Deck) int {
		if a.InsertedAt.After(b.InsertedAt) {
			return -1
		}
		if a.InsertedAt.Before(b.InsertedAt) {
			return 1
		}
		return 0
	})

	return results, nil
}

// readDeck reads a deck from the transaction.
// Returns nil, nil when the key does not exist.
func readDeck(tx *badger.Txn, key []byte) (*core.Deck, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var deck *core.Deck
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		deck, unmarshalErr = storage.UnmarshalDeck(val)
		return unmarshalErr
	})
	return deck, err
}

// nextSequenceID returns the next non-zero ID from a sequence.
// BadgerDB sequences can return 0 on first call, so 0 is skipped.
func nextSequenceID(seq *badger.Sequence) (core.ID, error) {
	nextID, err := seq.Next()
	if err != nil {
		return 0, err
	}
	if nextID == 0 {
		nextID, err = seq.Next()
		if err != nil {
			return 0, err
		}
	}
	return core.ID(nextID), nil
}
