// Package service holds the business rules for pets and orders.
//
// It sits between the handler and repository layers: handlers pass in
// validated values, services apply the rules, talk to the stores and
// publish audit events for every change.
package service
