// Package dida provides a client for the Dida365 (TickTick China) open API.
//
// This package wraps the REST API at https://api.dida365.com/open/v1 and
// provides functionality for:
//   - Listing projects with their kanban columns
//   - Fetching full project data (tasks and columns) per project
//   - Creating, updating, deleting and completing tasks
//
// # Authentication
//
// The API uses a single bearer access token, obtained once from the Dida365
// developer console and supplied at process start via the DIDA_ACCESS_TOKEN
// environment variable or the --access-token flag. There is no refresh flow;
// a missing token is a fatal configuration error.
//
// All timestamps on the wire are in the extended ISO-8601 form handled by
// the civil package; this package does not convert them.
package dida
