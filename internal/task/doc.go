// Package task implements the task aggregation, resolution and filtering
// core on top of the Dida365 API client.
//
// The package is organized around four pieces:
//
//   - Engine aggregates tasks across all open projects into a Snapshot,
//     normalizing status and date representations along the way.
//   - FindTask, FindProject and FindColumn resolve human-friendly
//     references (id, title, name) to records using tiered exact and
//     partial matching. No fuzzy scoring.
//   - Filter applies a conjunction of completion, date-bucket, keyword,
//     priority and project predicates over a normalized task set.
//   - Service wires the above into the operations exposed at the tool
//     boundary: get, create, update, delete and complete.
//
// All remote data is fetched fresh per operation; nothing is cached
// between calls.
package task
