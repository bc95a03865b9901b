// Package priority decides how much each vendor source is trusted.
//
// A lower number wins. Priorities come from the source_priorities table, chained with
// the priorities set in the sources section of the configuration. The Resolver caches
// answers per source for a short TTL, shares concurrent misses through singleflight
// and falls back to the default priority for unknown sources or failed lookups.
package priority
