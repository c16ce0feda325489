// Package wow is a client for the Who Owns What API, which links NYC
// parcels through shared HPD registration contacts.
//
// Endpoints:
//
//   - GET {base}/api/address?borough=B&block=BBBBB&lot=LLLL
//     returns the addresses in the same portfolio; their BBLs are pulled
//     out with a JSONPath expression (default "$.addrs[*].bbl").
//   - GET {base}/api/address/aggregate?bbl=XXXXXXXXXX
//     returns portfolio-wide statistics for reporting.
//
// Caching is the http.Client's concern; see package httpcache.
package wow
