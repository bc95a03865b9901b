// Package fetch retrieves vendor feeds from remote locations.
//
// # Transports
//
// A Transport moves one file into a writer. ftp (jlaffaye/ftp), http/https
// (net/http) and s3 (minio-go through core/storage) are provided. Transports tag
// their errors with a Kind using Classify.
//
// # Retries
//
// Fetcher.Fetch makes up to Config.MaxAttempts attempts. The delay before attempt
// n+1 is the base delay times 2^(n-1). Auth failures are retried like transient
// ones but logged with failure=auth; not_found stops immediately. Once attempts are
// exhausted the caller gets a *FetchError carrying the last cause.
//
// Each attempt downloads into a temp file, which is read back and removed.
package fetch
