package badger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/pitchcraft/core"
	"github.com/poiesic/pitchcraft/storage"
)

// SlideRepository implements storage.SlideRepository for BadgerDB.
type SlideRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.SlideRepository = (*SlideRepository)(nil)

// NewSlideRepository creates a new SlideRepository.
func NewSlideRepository(backend *Backend) (*SlideRepository, error) {
	idSeq, err := backend.GetSequence(slideIDSeq)
	if err != nil {
		return nil, err
	}

	return &SlideRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *SlideRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *SlideRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddSlide adds a slide at the end of its deck's order.
func (r *SlideRepository) AddSlide(ctx context.Context, slide *core.Slide) (*core.Slide, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		nextID, err := nextSequenceID(r.idSeq)
		if err != nil {
			return err
		}
		slide.Id = nextID

		// Append at the end of the deck's current order
		existing, err := readSlidesByDeck(tx, slide.DeckId)
		if err != nil {
			return err
		}
		slide.OrderIndex = len(existing)

		slide.InsertedAt = time.Now().UTC()
		slide.UpdatedAt = slide.InsertedAt

		// Store primary record
		key := makeSlideKey(slide.Id)
		value := storage.MarshalSlide(slide)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		// Update deck index
		deckKey := makeSlideDeckKey(slide.DeckId, slide.Id)
		if err := tx.Set(deckKey, storage.MarshalID(slide.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	return slide, err
}

// UpdateSlide updates an existing slide's content fields.
// The stored order index is preserved; use ReorderSlides to move slides.
func (r *SlideRepository) UpdateSlide(ctx context.Context, slide *core.Slide) (*core.Slide, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSlideKey(slide.Id)

		old, err := readSlide(tx, key)
		if err != nil {
			return err
		}
		if old == nil {
			return storage.ErrNotFound
		}

		// Deck membership, position, and creation time never change on update
		slide.DeckId = old.DeckId
		slide.OrderIndex = old.OrderIndex
		slide.InsertedAt = old.InsertedAt
		slide.UpdatedAt = time.Now().UTC()

		value := storage.MarshalSlide(slide)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	return slide, err
}

// DeleteSlide removes a slide and closes the gap in its deck's order.
func (r *SlideRepository) DeleteSlide(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSlideKey(id)

		slide, err := readSlide(tx, key)
		if err != nil {
			return err
		}
		if slide == nil {
			return storage.ErrNotFound
		}

		// Delete from deck index
		deckKey := makeSlideDeckKey(slide.DeckId, slide.Id)
		if err := tx.Delete(deckKey); err != nil {
			return err
		}

		// Delete primary record
		if err := tx.Delete(key); err != nil {
			return err
		}

		// Shift later slides down to keep the order dense
		rest, err := readSlidesByDeck(tx, slide.DeckId)
		if err != nil {
			return err
		}
		for _, other := range rest {
			if other.Id == id || other.OrderIndex < slide.OrderIndex {
				continue
			}
			other.OrderIndex--
			other.UpdatedAt = time.Now().UTC()
			if err := tx.Set(makeSlideKey(other.Id), storage.MarshalSlide(other)); err != nil {
				return err
			}
		}

		return tx.Commit()
	}, true)
}

// GetSlide retrieves a single slide by ID.
func (r *SlideRepository) GetSlide(ctx context.Context, id core.ID) (*core.Slide, error) {
	var result *core.Slide
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSlideKey(id)
		var err error
		result, err = readSlide(tx, key)
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

// GetSlidesByDeck retrieves all slides of a deck ordered by OrderIndex.
func (r *SlideRepository) GetSlidesByDeck(ctx context.Context, deckID core.ID) ([]*core.Slide, error) {
	var results []*core.Slide
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		results, err = readSlidesByDeck(tx, deckID)
		return err
	}, false)
	return results, err
}

// ReorderSlides rewrites the order of a deck's slides to match orderedIDs.
func (r *SlideRepository) ReorderSlides(ctx context.Context, deckID core.ID, orderedIDs []core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		slides, err := readSlidesByDeck(tx, deckID)
		if err != nil {
			return err
		}

		if len(orderedIDs) != len(slides) {
			return fmt.Errorf("%w: got %d slide ids, deck has %d slides",
				storage.ErrInvalidQuery, len(orderedIDs), len(slides))
		}

		byID := make(map[core.ID]*core.Slide, len(slides))
		for _, slide := range slides {
			byID[slide.Id] = slide
		}

		now := time.Now().UTC()
		for position, id := range orderedIDs {
			slide, ok := byID[id]
			if !ok {
				return fmt.Errorf("%w: slide %d does not belong to deck %d",
					storage.ErrInvalidQuery, id, deckID)
			}
			delete(byID, id)

			slide.OrderIndex = position
			slide.UpdatedAt = now
			if err := tx.Set(makeSlideKey(slide.Id), storage.MarshalSlide(slide)); err != nil {
				return err
			}
		}

		return tx.Commit()
	}, true)
}

// readSlide reads a slide from the transaction.
// Returns nil, nil when the key does not exist.
func readSlide(tx *badger.Txn, key []byte) (*core.Slide, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var slide *core.Slide
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		slide, unmarshalErr = storage.UnmarshalSlide(val)
		return unmarshalErr
	})
	return slide, err
}

// readSlidesByDeck reads all slides of a deck, ordered by OrderIndex.
func readSlidesByDeck(tx *badger.Txn, deckID core.ID) ([]*core.Slide, error) {
	var results []*core.Slide

	startKey := makePartialSlideDeckKey(deckID)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = startKey
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		var slideID core.ID
		if err := iter.Item().Value(func(val []byte) error {
			var err error
			slideID, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return nil, err
		}

		slide, err := readSlide(tx, makeSlideKey(slideID))
		if err != nil {
			return nil, err
		}
		if slide != nil {
			results = append(results, slide)
		}
	}

	slices.SortFunc(results, func(a, b *core.Slide) int {
		return a.OrderIndex - b.OrderIndex
	})

	return results, nil
}
