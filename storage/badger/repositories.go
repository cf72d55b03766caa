// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"errors"

	"github.com/poiesic/pitchcraft/storage"
)

// Repositories bundles all BadgerDB-backed repositories sharing one backend.
// Caller must Close when done.
type Repositories struct {
	Decks       storage.DeckRepository
	Slides      storage.SlideRepository
	Sections    storage.SectionRepository
	Documents   storage.DocumentRepository
	Embeddings  storage.EmbeddingRepository
	Checkpoints storage.CheckpointRepository
	Assets      storage.AssetRepository
	Backend     *Backend
}

// NewRepositories opens a backend at the given path and constructs all
// repositories on it.
func NewRepositories(path string) (*Repositories, error) {
	return newRepositories(path, false)
}

// NewMemoryRepositories creates all repositories on an in-memory backend
// for testing.
func NewMemoryRepositories() (*Repositories, error) {
	return newRepositories("", true)
}

func newRepositories(path string, inMemory bool) (*Repositories, error) {
	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, err
	}

	repos := &Repositories{Backend: backend}

	deckRepo, err := NewDeckRepository(backend)
	if err != nil {
		repos.Close()
		return nil, err
	}
	repos.Decks = deckRepo

	slideRepo, err := NewSlideRepository(backend)
	if err != nil {
		repos.Close()
		return nil, err
	}
	repos.Slides = slideRepo

	sectionRepo, err := NewSectionRepository(backend)
	if err != nil {
		repos.Close()
		return nil, err
	}
	repos.Sections = sectionRepo

	documentRepo, err := NewDocumentRepository(backend)
	if err != nil {
		repos.Close()
		return nil, err
	}
	repos.Documents = documentRepo

	embeddingRepo, err := NewEmbeddingRepository(backend)
	if err != nil {
		repos.Close()
		return nil, err
	}
	repos.Embeddings = embeddingRepo

	assetRepo, err := NewAssetRepository(backend)
	if err != nil {
		repos.Close()
		return nil, err
	}
	repos.Assets = assetRepo

	repos.Checkpoints = NewCheckpointRepository(backend)

	return repos, nil
}

// Close closes every repository and finally the backend. Sequences must
// be released before the backend shuts down.
func (r *Repositories) Close() error {
	var errs []error
	if r.Decks != nil {
		errs = append(errs, r.Decks.Close())
	}
	if r.Slides != nil {
		errs = append(errs, r.Slides.Close())
	}
	if r.Sections != nil {
		errs = append(errs, r.Sections.Close())
	}
	if r.Documents != nil {
		errs = append(errs, r.Documents.Close())
	}
	if r.Embeddings != nil {
		errs = append(errs, r.Embeddings.Close())
	}
	if r.Assets != nil {
		errs = append(errs, r.Assets.Close())
	}
	if r.Backend != nil {
		errs = append(errs, r.Backend.Close())
	}
	return errors.Join(errs...)
}
