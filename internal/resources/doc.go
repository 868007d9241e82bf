// Package resources provides MCP resources for exposing Dida365 account data.
// Resources are read-only data sources that MCP clients can fetch, such as
// the project list, without going through a tool call.
package resources
