// Package civil converts between the Dida365 wire timestamp format and the
// fixed Beijing civil time used in all user-facing fields.
//
// The Dida365 API exchanges timestamps in an extended ISO-8601 form such as
// "2024-01-01T08:00:00.000+0800" or "2024-01-01T00:00:00.000Z". All times
// shown to users are Beijing time (UTC+8, no daylight saving), formatted as
// "YYYY-MM-DD HH:MM:SS" without a zone marker.
//
// The converters are deliberately lenient: input that cannot be parsed is
// returned unchanged rather than failing the surrounding operation. Callers
// that need a hard answer use Parse, which reports success explicitly.
package civil
