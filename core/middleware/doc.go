// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation for the read endpoints.
//   - rayid: assigns every request a ray id, stored in fiber locals and echoed
//     in the X-Ray-ID response header, so request logs can be correlated.
package middleware
