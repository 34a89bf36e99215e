// package repositories provides persistence layer implementations for cached entities.
//
// Each repository implements models.Repository[T] for a specific entity type,
// handling CRUD operations, soft deletes, and sequence generation. The only
// cached entity today is video metadata from proxied YouTube lookups.
package repositories
