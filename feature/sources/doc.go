// Package sources resolves vendor source configuration: where each feed lives, which
// credentials to use, how its cells are delimited and which header names carry which
// field. A source that has no path for a job is unconfigured for that job.
package sources
