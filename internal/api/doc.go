// Package api exposes the compatibility service over HTTP. Handlers decode
// and validate JSON requests, call the report service and map its errors to
// status codes without leaking internal details to clients.
package api
