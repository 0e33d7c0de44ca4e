package redis

const (
	// KeyPrefixQuery is the prefix for cached query-page results.
	KeyPrefixQuery = "hiredeck:query:"
	// KeyLastRun holds the JSON report of the last ingestion run.
	KeyLastRun = "hiredeck:ingest:last"
)

// QueryKey returns the cache key for a canonical query string.
func QueryKey(query string) string {
	return KeyPrefixQuery + query
}
