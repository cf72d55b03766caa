package badger

import (
	"context"
	"path"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/pitchcraft/core"
	"github.com/poiesic/pitchcraft/storage"
)

// AssetRepository implements storage.AssetRepository for BadgerDB.
// Object bytes and metadata records live under separate key prefixes,
// both addressed by the object path.
type AssetRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.AssetRepository = (*AssetRepository)(nil)

// NewAssetRepository creates a new AssetRepository.
func NewAssetRepository(backend *Backend) (*AssetRepository, error) {
	idSeq, err := backend.GetSequence(assetIDSeq)
	if err != nil {
		return nil, err
	}

	return &AssetRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *AssetRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *AssetRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutObject stores bytes at a path, overwriting any existing object.
func (r *AssetRepository) PutObject(ctx context.Context, objectPath, mediaType string, data []byte) (*core.Asset, error) {
	var asset *core.Asset
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()

		// Reuse the metadata record on overwrite so the asset ID is stable
		old, err := readAsset(tx, makeAssetRecordKey(objectPath))
		if err != nil {
			return err
		}
		if old != nil {
			asset = old
			asset.Type = mediaType
			asset.SizeBytes = int64(len(data))
			asset.UpdatedAt = now
		} else {
			nextID, err := nextSequenceID(r.idSeq)
			if err != nil {
				return err
			}
			asset = &core.Asset{
				Id:         nextID,
				Path:       objectPath,
				Filename:   path.Base(objectPath),
				Type:       mediaType,
				SizeBytes:  int64(len(data)),
				InsertedAt: now,
				UpdatedAt:  now,
			}
		}

		if err := tx.Set(makeAssetObjectKey(objectPath), data); err != nil {
			return err
		}
		if err := tx.Set(makeAssetRecordKey(objectPath), storage.MarshalAsset(asset)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)

	return asset, err
}

// GetObject retrieves the bytes stored at a path.
func (r *AssetRepository) GetObject(ctx context.Context, objectPath string) ([]byte, error) {
	var data []byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeAssetObjectKey(objectPath))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	}, false)
	return data, err
}

// ListObjects retrieves metadata for all objects under a path prefix.
// Badger iterates keys in lexicographic order, which is path order here.
func (r *AssetRepository) ListObjects(ctx context.Context, prefix string) ([]*core.Asset, error) {
	var results []*core.Asset
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialAssetRecordKey(prefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var asset *core.Asset
			if err := iter.Item().Value(func(val []byte) error {
				var unmarshalErr error
				asset, unmarshalErr = storage.UnmarshalAsset(val)
				return unmarshalErr
			}); err != nil {
				return err
			}
			if asset != nil {
				results = append(results, asset)
			}
		}
		return nil
	}, false)
	return results, err
}

// DeleteObject removes the object and its metadata at a path.
func (r *AssetRepository) DeleteObject(ctx context.Context, objectPath string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		asset, err := readAsset(tx, makeAssetRecordKey(objectPath))
		if err != nil {
			return err
		}
		if asset == nil {
			return storage.ErrNotFound
		}

		if err := tx.Delete(makeAssetObjectKey(objectPath)); err != nil {
			return err
		}
		if err := tx.Delete(makeAssetRecordKey(objectPath)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// readAsset reads an asset metadata record from the transaction.
// Returns nil, nil when the key does not exist.
func readAsset(tx *badger.Txn, key []byte) (*core.Asset, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var asset *core.Asset
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		asset, unmarshalErr = storage.UnmarshalAsset(val)
		return unmarshalErr
	})
	return asset, err
}
