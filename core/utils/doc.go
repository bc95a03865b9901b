// Package utils provides small conversion helpers shared by the feed parsers
// and the configuration layer.
package utils
