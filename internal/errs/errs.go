// Package errs defines the application's error types.
//
// Two families live here:
//   - domain errors (NotFoundError, StorageError) produced by the persistence
//     gateway and passed unchanged through the service layer;
//   - HTTPError, the JSON shape every failed response is written in.
//
// The translation from the first family to the second happens once, in the
// global HTTP error handler.
package errs
