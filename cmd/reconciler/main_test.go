package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"daily-reconciliation/internal/config"
)

func TestStoreWarning(t *testing.T) {
	tests := []struct {
		name     string
		driver   string
		save     bool
		sync     bool
		compare  bool
		wantWarn bool
		contains string
	}{
		{name: "memory save", driver: config.DriverMemory, save: true, wantWarn: true, contains: "lost"},
		{name: "memory sync", driver: config.DriverMemory, sync: true, wantWarn: true, contains: "lost"},
		{name: "memory compare", driver: config.DriverMemory, compare: true, wantWarn: true, contains: "empty"},
		{name: "memory preview only", driver: config.DriverMemory},
		{name: "postgres save", driver: config.DriverPostgres, save: true},
		{name: "mysql compare", driver: config.DriverMySQL, compare: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := storeWarning(tt.driver, tt.save, tt.sync, tt.compare)
			if !tt.wantWarn {
				assert.Empty(t, got)
				return
			}
			assert.Contains(t, got, tt.contains)
			assert.Contains(t, got, "DATABASE_DSN")
		})
	}
}
