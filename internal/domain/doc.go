// Package domain defines the core business entities of the ticketing
// service (users, stations, trains, tickets) together with their validation
// rules and the errors those rules produce.
package domain
