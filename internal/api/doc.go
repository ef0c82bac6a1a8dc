// Package api exposes months and stored columns over HTTP.
//
// Routes (all JSON):
//
//	GET  /api/months/:month     describe one YYYY-MM month
//	POST /api/months/parse      text values -> month-counts
//	POST /api/months/format     month-counts -> text values
//	POST /api/months/diff       element-wise left - right in months
//	POST /api/months/shift      add a month offset to text values
//	GET  /api/columns           latest version of every stored column
//	GET  /api/columns/:name     a stored column (?seq=N for an older version)
//	PUT  /api/columns/:name     store a new version of a column
//
// Missing elements travel as JSON null in both directions.
package api
