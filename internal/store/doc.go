// Package store provides the SQLite card catalog that compiled searches run
// against.
//
// The catalog has two tables:
//   - cards: one row per card with text columns, power/toughness and one
//     boolean column per color for both color identity and printed colors
//   - card_keywords: keyword abilities, joined by keyword predicates
//
// # Deterministic Pages
//
// FetchIDs always orders by name then id, both COLLATE BINARY, so the same
// search and cursor return the same page on every run.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Keywords are deleted with their card
package store
