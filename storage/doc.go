// Copyright 2025 Variant Lab
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


// Package storage provides the storage abstraction layer for genechat.
//
// This package defines store interfaces that decouple storage implementation
// from conversation logic: sessions, their append-only message logs, and
// uploaded artifacts. Backends live in subpackages (badger for the embedded
// database, dirupload for filesystem uploads).
//
// # Constructor Return Type Pattern
//
// Backend constructors return concrete repository types that satisfy the
// interfaces defined here; consumers should hold the interface so
// alternative backends stay swappable:
//
//	var sessions storage.SessionStore
//	sessions, err = badger.NewSessionRepository(backend)
//
// # Thread Safety
//
// Store implementations must be thread-safe across sessions. Within one
// session the message log is append-only and callers serialize access;
// no per-session locking is provided here.
package storage
