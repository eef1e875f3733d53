// Package handler is the HTTP layer between the router and the services.
//
// Handlers bind and validate requests through the validation package, call
// the services and write JSON or XML responses depending on the Accept
// header.
package handler
