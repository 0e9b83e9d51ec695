// Package dbtest opens throwaway sqlite databases carrying the restaurant schema.
package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/angelmondragon/restaurant-backend/pkg/db"
	"github.com/angelmondragon/restaurant-backend/pkg/db/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// partial unique indexes are not expressible as gorm tags
var extraDDL = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS addresses_one_default_per_owner
		ON addresses (COALESCE(user_id, 0)) WHERE is_default`,
}

// Open returns a client bound to a fresh in-memory database named after the test.
// The pool is pinned to one connection so every statement sees the same database.
func Open(t *testing.T) *db.Client {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)
	conn, err := gorm.Open(sqlite.Open(dsn), db.GormConfig())
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, conn.AutoMigrate(models.All()...))
	for _, stmt := range extraDDL {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return db.FromGorm(conn)
}

// SeedLookups inserts the reference rows the services expect and returns them by display.
func SeedLookups(t *testing.T, client *db.Client) map[string]models.Lookup {
	t.Helper()

	rows := []models.Lookup{
		{GroupID: 1, GroupName: "Menu_Category", Display: "Entrees"},
		{GroupID: 1, GroupName: "Menu_Category", Display: "Desserts"},
		{GroupID: 2, GroupName: "Order Status", Display: "Pending"},
		{GroupID: 2, GroupName: "Order Status", Display: "Completed"},
		{GroupID: 3, GroupName: "Maintenance", Display: "Vendors"},
		{GroupID: 3, GroupName: "Maintenance", Display: "Menu"},
		{GroupID: 7, GroupName: "Inventory Transaction Type", Display: "Receipt"},
	}
	require.NoError(t, client.DB().Create(&rows).Error)

	out := make(map[string]models.Lookup, len(rows))
	for _, row := range rows {
		out[row.Display] = row
	}
	return out
}
