// Package health reports whether the dependencies used to resolve dataset
// references are reachable.
//
// # Checks Provided
//
//   - Storage: the default bucket exists; reports how many datasets it holds.
//   - Database: the configured database answers a ping.
//
// A dependency that is not configured reports "disabled" and does not fail
// the overall check.
//
// # HTTP Endpoints
//
//   - GET /health : Runs all checks (503 when any configured check fails).
//   - GET /health/storage : Runs the storage check.
//   - GET /health/database : Runs the database check.
package health
