// Package store defines interfaces for persisting compatibility responses and
// reports. These interfaces keep the service layer independent of the
// database in use; postgres and sqlite implementations live under
// internal/platform.
package store
