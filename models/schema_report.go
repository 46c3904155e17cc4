package models

import (
	"fmt"
	"io"
	"slices"

	"gorm.io/gorm"
)

/*
Schema Report Usage:

	portfolio schema-report

For every table managed by this service the report lists database columns
that no model field maps to, and model columns still missing from the
database (run `portfolio migrate` to add those). It finishes with the number
of project rows still stored in the legacy shape (run `portfolio backfill`).

Example output:
=== SCHEMA REPORT ===
--- Table: projects ---
Found 1 columns not accounted for in model:
  - img_path
All model columns exist in the database.

=== SUMMARY ===
Total mismatched columns across all tables: 1
Legacy project rows awaiting backfill: 4
*/

// TableReport is the comparison result for one table.
type TableReport struct {
	Table         string
	Exists        bool
	UnmappedInDB  []string
	MissingFromDB []string
	ModelColumns  []string
}

// CompareColumns returns the database columns with no model field, and the
// model columns with no database column.
func CompareColumns(dbColumns, modelColumns []string) (unmapped, missing []string) {
	for _, col := range dbColumns {
		if !slices.Contains(modelColumns, col) {
			unmapped = append(unmapped, col)
		}
	}
	for _, col := range modelColumns {
		if !slices.Contains(dbColumns, col) {
			missing = append(missing, col)
		}
	}
	return unmapped, missing
}

// BuildTableReport compares one model against its table.
func BuildTableReport(db *gorm.DB, model any) (TableReport, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return TableReport{}, fmt.Errorf("parse model %T: %w", model, err)
	}

	report := TableReport{
		Table:        stmt.Schema.Table,
		ModelColumns: stmt.Schema.DBNames,
	}

	migrator := db.Migrator()
	if !migrator.HasTable(model) {
		return report, nil
	}
	report.Exists = true

	columnTypes, err := migrator.ColumnTypes(model)
	if err != nil {
		return report, fmt.Errorf("read columns for table %s: %w", report.Table, err)
	}

	dbColumns := make([]string, 0, len(columnTypes))
	for _, ct := range columnTypes {
		dbColumns = append(dbColumns, ct.Name())
	}
	report.UnmappedInDB, report.MissingFromDB = CompareColumns(dbColumns, report.ModelColumns)

	return report, nil
}

// WriteSchemaReport writes the report for every managed table to w.
func WriteSchemaReport(db *gorm.DB, w io.Writer) error {
	fmt.Fprintln(w, "=== SCHEMA REPORT ===")

	totalMismatches := 0
	projectsExist := false
	for _, model := range All() {
		report, err := BuildTableReport(db, model)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "\n--- Table: %s ---\n", report.Table)
		if !report.Exists {
			fmt.Fprintln(w, "Table does not exist yet (will be created during migration)")
			continue
		}
		if report.Table == "projects" {
			projectsExist = true
		}

		if len(report.UnmappedInDB) > 0 {
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(report.UnmappedInDB))
			for _, col := range report.UnmappedInDB {
				fmt.Fprintf(w, "  - %s\n", col)
			}
		} else {
			fmt.Fprintln(w, "All columns are accounted for in the model.")
		}

		if len(report.MissingFromDB) > 0 {
			fmt.Fprintf(w, "Found %d model columns missing from the database:\n", len(report.MissingFromDB))
			for _, col := range report.MissingFromDB {
				fmt.Fprintf(w, "  + %s\n", col)
			}
		} else {
			fmt.Fprintln(w, "All model columns exist in the database.")
		}

		totalMismatches += len(report.UnmappedInDB) + len(report.MissingFromDB)
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", totalMismatches)

	if projectsExist {
		var legacyRows int64
		if err := db.Model(&Project{}).Scopes(LegacyRows).Count(&legacyRows).Error; err != nil {
			return fmt.Errorf("count legacy projects: %w", err)
		}
		fmt.Fprintf(w, "Legacy project rows awaiting backfill: %d\n", legacyRows)
	}
	return nil
}

// LegacyRows limits a project query to rows missing a canonical column.
func LegacyRows(db *gorm.DB) *gorm.DB {
	return db.Where("category IS NULL OR year IS NULL OR duration_sec IS NULL")
}
