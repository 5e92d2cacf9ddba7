// Package dexdb reads and writes the sqlite databases that describe the
// classes, fields, methods and strings of a DEX image.
//
// The write side builds a database from scratch:
//
//	db, err := dexdb.Open("framework.db", dexdb.Options{})
//	if err != nil { ... }
//	defer db.Close()
//	if err := db.CreateTables(); err != nil { ... }
//	err = db.AddClass(dexdb.Class{ID: 0, Name: "com.example.Foo", Superclass: "java.lang.Object"})
//
// The read side never fails loudly: a query error is logged and reported as
// ok == false, while ok == true with an empty slice means zero rows.
//
//	db, err := dexdb.Open("aosp.db", dexdb.Options{Safe: true})
//	classes, ok := db.Classes()
package dexdb
