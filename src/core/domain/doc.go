// Package domain contains the core domain model for the application.
//
// This package defines:
//   - Entities: Core business objects with identity (User, Joke)
//   - Validation limits shared by the use cases
//   - Domain Errors: Business rule violation errors
//
// Rules for this package:
//   - No external dependencies except the standard library and uuid
//   - No infrastructure concerns (database, HTTP, etc.)
package domain
