package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yoockh/hirea/internal/models"
	"github.com/yoockh/hirea/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Migration moves the store from Version-1 to Version. Up runs inside a
// transaction together with the bookkeeping insert.
type Migration struct {
	Version int
	Name    string
	Up      func(tx *gorm.DB) error
}

type schemaMigration struct {
	Version   int       `gorm:"column:version;primaryKey;autoIncrement:false"`
	Name      string    `gorm:"column:name;type:text"`
	AppliedAt time.Time `gorm:"column:applied_at"`
}

func (schemaMigration) TableName() string { return "schema_migrations" }

// Migrations is the registry, ordered by version.
var Migrations = []Migration{
	{Version: 1, Name: "base_tables", Up: migrateBaseTables},
	{Version: 2, Name: "denormalized_job_columns", Up: migrateDenormalizedJobColumns},
}

// SchemaVersion is the version the current models expect.
func SchemaVersion() int { return Migrations[len(Migrations)-1].Version }

// Migrate applies every pending migration. Running it again is a no-op.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return MigrateTo(ctx, db, SchemaVersion())
}

// MigrateTo applies pending migrations up to and including target.
func MigrateTo(ctx context.Context, db *gorm.DB, target int) error {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(&schemaMigration{}); err != nil {
		return fmt.Errorf("schema_migrations: %w", err)
	}

	var applied []int
	if err := db.Model(&schemaMigration{}).Pluck("version", &applied).Error; err != nil {
		return fmt.Errorf("load applied migrations: %w", err)
	}
	done := make(map[int]bool, len(applied))
	for _, v := range applied {
		done[v] = true
	}

	for _, m := range Migrations {
		if m.Version > target || done[m.Version] {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&schemaMigration{
				Version:   m.Version,
				Name:      m.Name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// CurrentVersion reports the highest applied migration, 0 for a fresh store.
func CurrentVersion(ctx context.Context, db *gorm.DB) (int, error) {
	var v sql.NullInt64
	row := db.WithContext(ctx).Model(&schemaMigration{}).Select("MAX(version)").Row()
	if err := row.Scan(&v); err != nil {
		return 0, err
	}
	return int(v.Int64), nil
}

// jobV1 is the jobs table before slug, candidate_count and config existed.
type jobV1 struct {
	ID          int64                       `gorm:"column:id;primaryKey;autoIncrement"`
	Title       string                      `gorm:"column:title;type:text;index"`
	Company     string                      `gorm:"column:company;type:text"`
	Type        string                      `gorm:"column:type;type:text"`
	Status      string                      `gorm:"column:status;type:text;index"`
	Location    *string                     `gorm:"column:location;type:text"`
	MinSalary   *int64                      `gorm:"column:min_salary"`
	MaxSalary   *int64                      `gorm:"column:max_salary"`
	Description *string                     `gorm:"column:description;type:text"`
	Tags        datatypes.JSONSlice[string] `gorm:"column:tags;not null;default:'[]'"`
	CreatedAt   time.Time                   `gorm:"column:created_at;index"`
}

func (jobV1) TableName() string { return "jobs" }

func migrateBaseTables(tx *gorm.DB) error {
	return tx.AutoMigrate(
		&jobV1{},
		&models.JobField{},
		&models.Application{},
		&models.Answer{},
	)
}

// LegacyJob is the part of a pre-v2 job record the v2 upgrade reads.
type LegacyJob struct {
	ID             int64  `gorm:"column:id"`
	Title          string `gorm:"column:title"`
	Slug           string `gorm:"column:slug"`
	CandidateCount int64  `gorm:"column:candidate_count"`
}

type JobV2Patch struct {
	Slug           string
	CandidateCount int64
	Config         models.JobConfig
}

// UpgradeJobV2 derives the v2 columns of a legacy record. An existing slug
// or counter is kept; the config starts with an empty form.
func UpgradeJobV2(j LegacyJob) JobV2Patch {
	p := JobV2Patch{
		Slug:           j.Slug,
		CandidateCount: j.CandidateCount,
		Config: models.JobConfig{
			ApplicationForm: models.ApplicationForm{Sections: []models.FormSection{}},
		},
	}
	if p.Slug == "" {
		title := j.Title
		if title == "" {
			title = "job"
		}
		p.Slug = utils.Slugify(title)
	}
	if p.CandidateCount < 0 {
		p.CandidateCount = 0
	}
	return p
}

func migrateDenormalizedJobColumns(tx *gorm.DB) error {
	if err := tx.AutoMigrate(&models.Job{}); err != nil {
		return err
	}

	var legacy []LegacyJob
	if err := tx.Table("jobs").Select("id, title, slug, candidate_count").Find(&legacy).Error; err != nil {
		return err
	}
	for _, j := range legacy {
		p := UpgradeJobV2(j)
		err := tx.Table("jobs").Where("id = ?", j.ID).Updates(map[string]any{
			"slug":            p.Slug,
			"candidate_count": p.CandidateCount,
			"config":          datatypes.NewJSONType(p.Config),
		}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
