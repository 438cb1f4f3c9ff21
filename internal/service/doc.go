// Package service contains the compatibility use cases. It orchestrates the
// scoring engine and the repositories defined in internal/store, and reports
// what happened to the analytics tracker.
//
// Services receive every dependency through their constructor: repositories,
// the scoring service, the tracker, a clock and a logger. There is no
// package-level state.
//
// Repository failures are never masked. They reach the caller wrapped in a
// ReportServiceError, so errors.Is keeps working against store sentinels.
package service
