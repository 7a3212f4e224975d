package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// PurgeRetentionDays is how long soft-deleted documents stay
	// queryable before the purge job removes them.
	PurgeRetentionDays int
	// PurgeSchedule is a six-field cron expression for the purge job.
	PurgeSchedule string
}
