// Package repository implements SurrealDB data access for the identity and
// event stores. Repositories translate between SurrealDB's response shapes
// and the domain models; they never contain business rules.
package repository
