package seeds

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hudsor01/tenant-flow-sub002/internal/database"
	"github.com/hudsor01/tenant-flow-sub002/internal/models"
)

type seedVersionRow struct {
	Version   string
	AppliedAt time.Time
}

func (v *Verifier) checkSeedVersion(ctx context.Context) error {
	var rows []seedVersionRow
	sql := fmt.Sprintf("SELECT version, applied_at FROM %s WHERE tier = ? ORDER BY applied_at DESC LIMIT 1", v.table("seed_versions"))
	if err := v.scan(ctx, &rows, sql, string(v.opts.Tier)); err != nil {
		return fmt.Errorf("failed to read seed versions: %w", err)
	}

	if len(rows) == 0 {
		v.record(CheckResult{
			Name:     "Seed Version",
			Severity: Soft,
			Detail:   fmt.Sprintf("No seed version recorded for tier %s", v.opts.Tier),
		})
		return nil
	}

	v.record(CheckResult{
		Name:     "Seed Version",
		Severity: Soft,
		Passed:   true,
		Detail:   fmt.Sprintf("%s (applied %s)", rows[0].Version, rows[0].AppliedAt.UTC().Format(time.RFC3339)),
	})
	return nil
}

// RecordSeedVersion appends a seed_versions row for tier. schema qualifies the table on
// postgres the same way the verifier does.
func RecordSeedVersion(ctx context.Context, db *gorm.DB, schema string, tier Tier, version string) (*models.SeedVersion, error) {
	if version == "" {
		return nil, fmt.Errorf("seed version must not be empty")
	}

	record := &models.SeedVersion{
		Tier:      string(tier),
		Version:   version,
		AppliedAt: time.Now().UTC(),
	}
	table := database.Qualify(db, schema, "seed_versions")
	if err := db.WithContext(ctx).Table(table).Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to record seed version: %w", err)
	}
	return record, nil
}

// SeedHistory lists seed versions newest first. An empty tier lists all tiers.
func SeedHistory(ctx context.Context, db *gorm.DB, schema string, tier Tier) ([]models.SeedVersion, error) {
	query := db.WithContext(ctx).Table(database.Qualify(db, schema, "seed_versions")).Order("applied_at DESC")
	if tier != "" {
		query = query.Where("tier = ?", string(tier))
	}

	var records []models.SeedVersion
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get seed history: %w", err)
	}
	return records, nil
}
