package database

import (
	"time"

	"gorm.io/gorm"
)

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

type callbackRegistrar interface {
	Register(name string, fn func(*gorm.DB)) error
}

func instrument(before, after callbackRegistrar, operation string, recorder MetricsRecorder) {
	before.Register("metrics:"+operation+"_before", func(db *gorm.DB) {
		db.InstanceSet("query_start_time", time.Now())
	})
	after.Register("metrics:"+operation+"_after", func(db *gorm.DB) {
		startTime, ok := db.InstanceGet("query_start_time")
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		recorder.RecordDBQuery(operation, table, time.Since(startTime.(time.Time)), db.Error)
	})
}

// RegisterMetricsCallbacks registers GORM callbacks for query timing
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	cb := db.Callback()
	instrument(cb.Query().Before("gorm:query"), cb.Query().After("gorm:query"), "select", recorder)
	instrument(cb.Create().Before("gorm:create"), cb.Create().After("gorm:create"), "insert", recorder)
	instrument(cb.Update().Before("gorm:update"), cb.Update().After("gorm:update"), "update", recorder)
	instrument(cb.Delete().Before("gorm:delete"), cb.Delete().After("gorm:delete"), "delete", recorder)
}

// StartDBStatsCollector starts periodic connection pool stats collection.
// Close the returned channel to stop the collector.
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
