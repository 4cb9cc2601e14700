package config

import "time"

const (
	// Configuration file paths
	ConfigPathResourceTypes       = "configs/resource_types.xml"
	ConfigPathContributionsSchema = "configs/schemas/city_contributions.schema.json"
)

// Report stores selectable with REPORT_STORE
const (
	ReportStorePostgres = "postgres"
	ReportStoreSQLite   = "sqlite"
)

const (
	DefaultSQLitePath        = "data/reports.db"
	DefaultServiceName       = "city-production"
	DefaultMaxRequestBytes   = 8 << 20
	DefaultRecomputeWorkers  = 8
	DefaultReportCacheSize   = 1024
	DefaultReportCacheTTL    = 10 * time.Minute
	DefaultPersistTimeout    = 5 * time.Second
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
)
