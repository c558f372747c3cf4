// Copyright 2026 Wanderlens Labs
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


// Package storage provides the persistent transcript cache abstraction.
//
// Session state is deliberately kept in memory only (see the session
// package); the only thing worth persisting across restarts is fetched
// video transcripts, which are expensive to re-download and immutable
// once captured.
//
// # Constructor Return Type Pattern
//
// Public constructors return the TranscriptCache interface rather than
// concrete types:
//
//	cache, err := badger.NewTranscriptCache(path)  // returns storage.TranscriptCache
//
// This keeps consumers decoupled from BadgerDB specifics and lets tests
// substitute an in-memory cache without modification.
//
// # Thread Safety
//
// All cache implementations must be safe for concurrent use from
// multiple goroutines.
package storage
