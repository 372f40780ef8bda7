package db

import (
	"fmt"

	"fluxcontent/internal/auth"
	"fluxcontent/internal/brand"
	"fluxcontent/internal/content"
	"fluxcontent/internal/eventlog"
	"fluxcontent/internal/schedule"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&auth.User{},
		&brand.Brand{},
		&content.Content{},
		&schedule.Schedule{},
		&eventlog.Record{},
	); err != nil {
		return err
	}

	// A schedule must reference content under the same owner; the insert path
	// enforces that, the FK keeps dangling content ids out.
	if err := gdb.Exec(`
do $$ begin
  alter table schedules add constraint fk_schedules_content foreign key (content_id) references content(id);
exception when duplicate_object then null;
end $$;
`).Error; err != nil {
		return err
	}

	// Hot-path indexes. The worker's due scan and claim both hit
	// (status, publish_at); stuck-claim requeue hits (status, claimed_at).
	stmts := []string{
		`create index if not exists idx_schedules_due on schedules(status, publish_at);`,
		`create index if not exists idx_schedules_claim on schedules(status, claimed_at);`,
		`create index if not exists idx_schedules_owner on schedules(user_id, publish_at);`,
		`create index if not exists idx_content_owner on content(user_id, brand_id);`,
		`create index if not exists idx_brands_owner on brands(user_id);`,
		`create index if not exists idx_events_owner_created on event_log(user_id, created_at desc);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
