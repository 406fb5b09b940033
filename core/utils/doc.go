// Package utils provides loose type conversions for values scanned from
// database drivers, which return integers, floats, text and byte slices
// depending on the dialect.
package utils
