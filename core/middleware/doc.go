// Package middleware contains HTTP middleware for the ops server.
//
// # Components
//
//   - rayid: gives every request a ray id, stored in the "ray_id" local and echoed in
//     the X-Ray-ID response header. logger.WithRayID reads it back for log correlation.
package middleware
