// Package database connects to SQL databases and reads tables as datasets.
//
// Connect opens MySQL, PostgreSQL or SQLite through GORM based on
// Config.Driver. GetTableColumns inspects a table's columns with the
// dialect's native statement (SHOW COLUMNS, information_schema or PRAGMA
// table_info).
//
// LoadTable reads a table into a dataset.Dataset. One column may serve as
// the row index; every other column becomes a typed column whose value type
// follows its SQL type (see SQLTypeToDType).
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	prices, err := database.LoadTable(ctx, db, database.TableQuery{Table: "prices", IndexColumn: "day"})
package database
