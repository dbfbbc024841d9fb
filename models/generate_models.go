package models

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*
Column mismatch report

Lists the columns that exist in the database but have no field on the
matching model. Run it with GENERATE_COLUMN_REPORT=true; GENERATE_MODELS=true
migrates, prints the same report, then writes the typed query helpers.

	table=tags missing=[legacy_color] msg="columns not accounted for in model"
*/

// Tables lists every model backed by its own table, in migration order.
func Tables() []interface{} {
	return []interface{}{&Author{}, &Tag{}, &Post{}}
}

// GenerateModels migrates the schema and writes gorm/gen query helpers to outPath.
func GenerateModels(db *gorm.DB, outPath string) error {
	db = db.Session(&gorm.Session{
		Logger:                 db.Logger.LogMode(logger.Info),
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	log.Info().Msg("Migrating models...")
	if err := db.AutoMigrate(Tables()...); err != nil {
		return fmt.Errorf("migrating models: %w", err)
	}

	if _, err := LogColumnMismatchReport(db); err != nil {
		return err
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(Author{}, Tag{}, Post{})
	g.Execute()

	log.Info().Str("outPath", outPath).Msg("Model generation complete")
	return nil
}

// ColumnMismatch is one table's entry in the column mismatch report.
type ColumnMismatch struct {
	Table   string
	Exists  bool
	Columns []string
}

// ColumnMismatchReport compares every table in Tables with its model.
func ColumnMismatchReport(db *gorm.DB) ([]ColumnMismatch, error) {
	var report []ColumnMismatch
	for _, model := range Tables() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parsing model %T: %w", model, err)
		}

		entry := ColumnMismatch{Table: stmt.Schema.Table}
		if !db.Migrator().HasTable(model) {
			report = append(report, entry)
			continue
		}
		entry.Exists = true

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("error querying columns for table %s: %w", entry.Table, err)
		}

		known := make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			known[name] = true
		}
		for _, column := range columnTypes {
			if !known[column.Name()] {
				entry.Columns = append(entry.Columns, column.Name())
			}
		}
		sort.Strings(entry.Columns)
		report = append(report, entry)
	}
	return report, nil
}

// LogColumnMismatchReport builds the report and logs one line per table.
// It returns the total number of unaccounted columns.
func LogColumnMismatchReport(db *gorm.DB) (int, error) {
	report, err := ColumnMismatchReport(db)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, entry := range report {
		switch {
		case !entry.Exists:
			log.Warn().Str("table", entry.Table).Msg("table does not exist yet")
		case len(entry.Columns) > 0:
			log.Warn().Str("table", entry.Table).Strs("missing", entry.Columns).Msg("columns not accounted for in model")
		default:
			log.Info().Str("table", entry.Table).Msg("all columns are accounted for in the model")
		}
		total += len(entry.Columns)
	}

	log.Info().Int("total", total).Msg("column mismatch report complete")
	return total, nil
}
