// Package syncjobs exposes the sync engine to the rest of the process.
//
// Service is built once at startup and injected wherever the jobs are controlled:
//
//   - Initialize registers the catalog and inventory jobs and starts their timers.
//   - UpdateSchedule swaps the cadence after a config change or SIGHUP.
//   - GetStatus reports both JobRunStates.
//   - TriggerManually runs a job now under the same guards as a timer run.
//
// The Feature serves GET /sync/status and POST /sync/:job/trigger on the ops server.
package syncjobs
