// Package store defines the persistence interfaces for the ticketing
// service and the errors their implementations return. Concrete
// implementations live in internal/platform/postgres.
package store
