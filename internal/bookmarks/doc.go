// Package bookmarks persists the set of bookmarked word dates.
//
// The set lives as one JSON array of YYYYMMDD strings under a single key
// (DefaultKey) in a key-value Storage. The Store never touches a concrete
// mechanism; callers inject one of:
//
//   - MemoryStorage: process-local map, used by tests and --bookmarks=memory
//   - FileStorage: JSON object file, written atomically via rename
//   - SQLiteStorage: a kv table in a SQLite database
//
// # Failure policy
//
// Storage failures never reach the caller. A missing key, an unreadable
// store or a value that is not a JSON array of strings all read as the
// empty list. Write failures are logged and the operation reports the
// state it intended to produce; callers that need durability confirmation
// re-read with Has.
//
// # Ordering
//
// List returns dates in the order they were added, oldest first. Callers
// that display newest first reverse the slice themselves.
package bookmarks
