package ciutil

import "log/slog"

// GetTestDatabaseURL returns the PostgreSQL URL integration tests run
// against, checking AROOSI_TEST_DB_URL, then DATABASE_URL, then
// AROOSI_DATABASE_URL. It returns "" when none is set.
func GetTestDatabaseURL(logger *slog.Logger) string {
	return GetEnvWithFallbacks(
		[]string{EnvTestDBURL, EnvDatabaseURL, EnvAppDatabaseURL},
		"",
		logger,
	)
}
