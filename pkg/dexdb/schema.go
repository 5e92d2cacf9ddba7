package dexdb

import "fmt"

var tables = []string{"classes", "static_fields", "instance_fields", "methods", "strings"}

var schema = []string{
	`CREATE TABLE classes (
		id           INTEGER PRIMARY KEY NOT NULL,
		name         TEXT    NOT NULL,
		access_flags INTEGER NOT NULL,
		superclass   TEXT    NOT NULL)`,
	`CREATE TABLE static_fields (
		id           INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
		name         TEXT    NOT NULL,
		type         TEXT    NOT NULL,
		access_flags INTEGER NOT NULL,
		class_id     INTEGER NOT NULL,
		FOREIGN KEY(class_id) REFERENCES classes(id))`,
	`CREATE TABLE instance_fields (
		id           INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
		name         TEXT    NOT NULL,
		type         TEXT    NOT NULL,
		access_flags INTEGER NOT NULL,
		class_id     INTEGER NOT NULL,
		FOREIGN KEY(class_id) REFERENCES classes(id))`,
	`CREATE TABLE methods (
		id           INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
		name         TEXT    NOT NULL,
		type         INTEGER NOT NULL,
		descriptor   TEXT    NOT NULL,
		access_flags INTEGER NOT NULL,
		class_id     INTEGER NOT NULL,
		FOREIGN KEY(class_id) REFERENCES classes(id))`,
	`CREATE TABLE strings (
		id   INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL,
		name TEXT    NOT NULL)`,
	`CREATE INDEX classes_name ON classes(name)`,
}

// CreateTables drops any existing tables and creates an empty schema in a
// single transaction.
func (d *DB) CreateTables() error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, t := range tables {
		if _, err := tx.Exec("DROP TABLE IF EXISTS " + t); err != nil {
			return fmt.Errorf("drop %s: %w", t, err)
		}
	}
	for _, stmt := range schema {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	d.log.Debug("created tables", "tables", len(tables))
	return nil
}
