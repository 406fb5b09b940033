// Package dataset defines the in-memory tabular model shared by the loaders
// and the comparator: an ordered row index of typed keys and an ordered list
// of typed columns, each holding one Value per row.
//
// Row keys are labels, integers, instants or periods. Column ids have one
// level (name) or two (group, name). A missing cell is the zero Value.
//
// ReadCSV and ReadJSON build datasets from text; WriteCSV and WriteJSON
// write them back.
package dataset
