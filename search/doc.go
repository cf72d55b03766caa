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


// Package search provides semantic search over a deck's document chunks.
//
// The Searcher type embeds a query, runs a deck-scoped vector similarity
// scan over stored chunk embeddings, and boosts hits that contain every
// query word verbatim (after stop-word filtering). Results are scored and
// ranked so conversation retrieval can ground assistant answers in the
// most relevant uploaded material.
package search
