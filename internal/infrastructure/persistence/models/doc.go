// Package models holds the gorm table mappings. Domain entities stay
// free of ORM tags; these models carry the annotations and convert to
// and from the domain types in the repository layer.
//
//   - base.go: shared id/timestamp/version columns
//   - identity.go: users
//   - catalog.go: products and product change requests
//   - ordering.go: orders and logistics
package models
