package dexdb

import "fmt"

// AddClass inserts c under its own ID.
func (d *DB) AddClass(c Class) error {
	_, err := d.db.Exec(
		`INSERT INTO classes (id, name, access_flags, superclass) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.AccessFlags, c.Superclass)
	if err != nil {
		return fmt.Errorf("add class %q: %w", c.Name, err)
	}
	return nil
}

// AddStaticField inserts f and returns its assigned ID. f.ID is ignored.
func (d *DB) AddStaticField(f Field) (int64, error) {
	return d.addField("static_fields", f)
}

// AddInstanceField inserts f and returns its assigned ID. f.ID is ignored.
func (d *DB) AddInstanceField(f Field) (int64, error) {
	return d.addField("instance_fields", f)
}

func (d *DB) addField(table string, f Field) (int64, error) {
	res, err := d.db.Exec(
		`INSERT INTO `+table+` (name, type, access_flags, class_id) VALUES (?, ?, ?, ?)`,
		f.Name, f.Type, f.AccessFlags, f.ClassID)
	if err != nil {
		return 0, fmt.Errorf("add %s %q: %w", table, f.Name, err)
	}
	return res.LastInsertId()
}

// AddMethod inserts m and returns its assigned ID. m.ID is ignored.
func (d *DB) AddMethod(m Method) (int64, error) {
	res, err := d.db.Exec(
		`INSERT INTO methods (name, type, descriptor, access_flags, class_id) VALUES (?, ?, ?, ?, ?)`,
		m.Name, int(m.Kind), m.Descriptor, m.AccessFlags, m.ClassID)
	if err != nil {
		return 0, fmt.Errorf("add method %q: %w", m.Name, err)
	}
	return res.LastInsertId()
}

// AddString inserts s into the strings table.
func (d *DB) AddString(s string) error {
	if _, err := d.db.Exec(`INSERT INTO strings (name) VALUES (?)`, s); err != nil {
		return fmt.Errorf("add string: %w", err)
	}
	return nil
}
