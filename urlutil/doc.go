// Package urlutil owns the URL token grammar used when rewriting service
// ports in materialized environment files. It finds scheme://hostname:port
// occurrences in free text and splices replacement ports in place, leaving
// scheme, hostname, path, and query untouched.
package urlutil
