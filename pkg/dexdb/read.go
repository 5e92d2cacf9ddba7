package dexdb

import (
	"database/sql"
	"errors"
)

// Strings returns every row of the strings table in insertion order.
func (d *DB) Strings() ([]string, bool) {
	out := []string{}
	err := d.query(func(rows *sql.Rows) error {
		var s string
		if err := rows.Scan(&s); err != nil {
			return err
		}
		out = append(out, s)
		return nil
	}, `SELECT name FROM strings ORDER BY id`)
	if err != nil {
		d.log.Error("error getting strings", "error", err)
		return nil, false
	}
	return out, true
}

// Classes returns every class ordered by ID.
func (d *DB) Classes() ([]Class, bool) {
	out := []Class{}
	err := d.query(func(rows *sql.Rows) error {
		var c Class
		if err := rows.Scan(&c.ID, &c.Name, &c.AccessFlags, &c.Superclass); err != nil {
			return err
		}
		out = append(out, c)
		return nil
	}, `SELECT id, name, access_flags, superclass FROM classes ORDER BY id`)
	if err != nil {
		d.log.Error("error getting classes", "error", err)
		return nil, false
	}
	return out, true
}

// StaticFields returns the static fields of the class with the given ID.
func (d *DB) StaticFields(classID int64) ([]Field, bool) {
	return d.fields("static_fields", classID)
}

// InstanceFields returns the instance fields of the class with the given ID.
func (d *DB) InstanceFields(classID int64) ([]Field, bool) {
	return d.fields("instance_fields", classID)
}

func (d *DB) fields(table string, classID int64) ([]Field, bool) {
	out := []Field{}
	err := d.query(func(rows *sql.Rows) error {
		var f Field
		if err := rows.Scan(&f.ID, &f.Name, &f.Type, &f.AccessFlags, &f.ClassID); err != nil {
			return err
		}
		out = append(out, f)
		return nil
	}, `SELECT id, name, type, access_flags, class_id FROM `+table+` WHERE class_id = ? ORDER BY id`, classID)
	if err != nil {
		d.log.Error("error getting fields", "table", table, "class_id", classID, "error", err)
		return nil, false
	}
	return out, true
}

// Methods returns the methods of the class with the given ID.
func (d *DB) Methods(classID int64) ([]Method, bool) {
	out := []Method{}
	err := d.query(func(rows *sql.Rows) error {
		var m Method
		var kind int
		if err := rows.Scan(&m.ID, &m.Name, &kind, &m.Descriptor, &m.AccessFlags, &m.ClassID); err != nil {
			return err
		}
		m.Kind = MethodKind(kind)
		out = append(out, m)
		return nil
	}, `SELECT id, name, type, descriptor, access_flags, class_id FROM methods WHERE class_id = ? ORDER BY id`, classID)
	if err != nil {
		d.log.Error("error getting methods", "class_id", classID, "error", err)
		return nil, false
	}
	return out, true
}

// HasClass reports whether a class with exactly this name exists. The second
// result is false when the lookup itself failed.
func (d *DB) HasClass(name string) (bool, bool) {
	var id int64
	err := d.db.QueryRow(`SELECT id FROM classes WHERE name = ? LIMIT 1`, name).Scan(&id)
	switch {
	case err == nil:
		return true, true
	case errors.Is(err, sql.ErrNoRows):
		return false, true
	default:
		d.log.Error("error looking up class", "name", name, "error", err)
		return false, false
	}
}

// query runs q and hands every row to scan.
func (d *DB) query(scan func(*sql.Rows) error, q string, args ...any) error {
	rows, err := d.db.Query(q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
