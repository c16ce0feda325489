// Package httpcache keeps successful HTTP GET responses so a URL already
// fetched is never requested again.
//
// Transport is an http.RoundTripper: responses are stored as raw HTTP dumps
// (httputil.DumpResponse) under sha1("METHOD URL") and replayed with
// http.ReadResponse. Only GET requests with a status below 300 are cached;
// failing to store is logged and ignored.
//
// Stores:
//
//   - FileStore:  one file per key in a directory; entries never expire.
//   - RedisStore: go-redis client, optional TTL.
package httpcache
