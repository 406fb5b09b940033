package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"dataset-reconciler/core/dataset"
	"dataset-reconciler/core/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrTableNotFound is returned when a table has no inspectable columns.
var ErrTableNotFound = errors.New("table not found")

// TableQuery describes how to read a table into a dataset.
type TableQuery struct {
	// Table is the table name.
	Table string
	// IndexColumn names the column used as the row index. Empty means rows
	// are keyed by position.
	IndexColumn string
	// IndexKind overrides the key kind of the index column. Auto follows the
	// column's SQL type.
	IndexKind dataset.IndexKind
	// PeriodFreq is the span of period keys.
	PeriodFreq dataset.Freq
	// Columns restricts the value columns. Empty means every column.
	Columns []string
}

// LoadTable reads a table into a dataset. Column types come from the
// inspected SQL types. Rows are ordered by the index column when one is set.
func LoadTable(ctx context.Context, db *gorm.DB, q TableQuery) (*dataset.Dataset, error) {
	if db == nil {
		return nil, errors.New("database is not connected")
	}

	infos, err := GetTableColumns(db.WithContext(ctx), q.Table)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, q.Table)
	}

	byName := make(map[string]ColumnInfo, len(infos))
	for _, info := range infos {
		byName[info.Field] = info
	}

	indexName := strings.ToLower(q.IndexColumn)
	if indexName != "" {
		if _, ok := byName[indexName]; !ok {
			return nil, fmt.Errorf("%w: table %s has no column %q", dataset.ErrMalformed, q.Table, q.IndexColumn)
		}
	}

	var valueCols []ColumnInfo
	if len(q.Columns) == 0 {
		for _, info := range infos {
			if info.Field != indexName {
				valueCols = append(valueCols, info)
			}
		}
	} else {
		for _, name := range q.Columns {
			info, ok := byName[strings.ToLower(name)]
			if !ok {
				return nil, fmt.Errorf("%w: table %s has no column %q", dataset.ErrMalformed, q.Table, name)
			}
			valueCols = append(valueCols, info)
		}
	}

	selected := make([]string, 0, len(valueCols)+1)
	if indexName != "" {
		selected = append(selected, indexName)
	}
	for _, info := range valueCols {
		selected = append(selected, info.Field)
	}

	tx := db.WithContext(ctx).Table(q.Table).Select(selected)
	if indexName != "" {
		tx = tx.Order(indexName)
	}
	rows, err := tx.Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", q.Table, err)
	}
	defer rows.Close()

	var rawIndex []string
	cells := make([][]any, len(valueCols))
	for rows.Next() {
		dest := make([]any, len(selected))
		ptrs := make([]any, len(selected))
		for i := range dest {
			ptrs[i] = &dest[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan table %s: %w", q.Table, err)
		}

		offset := 0
		if indexName != "" {
			rawIndex = append(rawIndex, indexText(dest[0]))
			offset = 1
		}
		for i := range valueCols {
			cells[i] = append(cells[i], dest[i+offset])
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", q.Table, err)
	}

	rowCount := len(rawIndex)
	if indexName == "" && len(valueCols) > 0 {
		rowCount = len(cells[0])
	}

	var index dataset.Index
	if indexName == "" {
		index = make(dataset.Index, rowCount)
		for i := range index {
			index[i] = dataset.IntKey(int64(i))
		}
	} else {
		kind := q.IndexKind
		if kind == "" || kind == dataset.IndexAuto {
			kind = indexKindFor(SQLTypeToDType(byName[indexName].Type))
		}
		if index, err = dataset.ParseIndex(rawIndex, kind, q.PeriodFreq); err != nil {
			return nil, err
		}
	}

	columns := make([]dataset.Column, len(valueCols))
	for i, info := range valueCols {
		dtype := SQLTypeToDType(info.Type)
		values := make([]dataset.Value, rowCount)
		for row := 0; row < rowCount; row++ {
			v, err := cellValue(cells[i][row], dtype)
			if err != nil {
				return nil, fmt.Errorf("%w: table %s column %s row %d: %v", dataset.ErrMalformed, q.Table, info.Field, row, err)
			}
			values[row] = v
		}
		columns[i] = dataset.Column{ID: dataset.Col(info.Field), Type: dtype, Values: values}
	}

	return dataset.New(index, columns...)
}

var typeParams = regexp.MustCompile(`\(.*\)`)

// SQLTypeToDType maps a column type reported by MySQL, PostgreSQL or SQLite
// to a dataset value type. Unknown types map to object.
func SQLTypeToDType(sqlType string) dataset.DType {
	t := strings.ToLower(strings.TrimSpace(sqlType))
	if strings.HasPrefix(t, "tinyint(1)") || t == "bit(1)" {
		return dataset.TypeBool
	}
	t = strings.TrimSpace(typeParams.ReplaceAllString(t, ""))
	t = strings.TrimSpace(strings.TrimSuffix(t, "unsigned"))

	switch {
	case t == "point" || t == "interval":
		return dataset.TypeObject
	case t == "bool" || t == "boolean":
		return dataset.TypeBool
	case strings.HasPrefix(t, "timestamp"), strings.HasPrefix(t, "datetime"), t == "date":
		return dataset.TypeDatetime
	case strings.Contains(t, "int"), strings.HasSuffix(t, "serial"):
		return dataset.TypeInt64
	case t == "decimal" || t == "numeric" || t == "money":
		return dataset.TypeDecimal
	case t == "float" || t == "double" || t == "real" || strings.HasPrefix(t, "double precision") || t == "float4" || t == "float8":
		return dataset.TypeFloat64
	case strings.Contains(t, "char"), strings.Contains(t, "text"), strings.HasPrefix(t, "enum"),
		t == "uuid", t == "json", t == "jsonb", t == "clob":
		return dataset.TypeString
	default:
		return dataset.TypeObject
	}
}

func indexKindFor(dtype dataset.DType) dataset.IndexKind {
	switch dtype {
	case dataset.TypeInt64:
		return dataset.IndexInt
	case dataset.TypeDatetime:
		return dataset.IndexInstant
	default:
		return dataset.IndexLabel
	}
}

func indexText(raw any) string {
	if t, ok := raw.(time.Time); ok {
		return t.UTC().Format(time.RFC3339Nano)
	}
	if raw == nil {
		return ""
	}
	return utils.ToString(raw)
}

// cellValue converts a scanned driver value into a dataset value of dtype.
func cellValue(raw any, dtype dataset.DType) (dataset.Value, error) {
	if raw == nil {
		return dataset.Null(), nil
	}
	switch dtype {
	case dataset.TypeInt64:
		i, err := utils.ToInt64(raw)
		if err != nil {
			return dataset.Null(), err
		}
		return dataset.Int(i), nil
	case dataset.TypeFloat64:
		f, err := utils.ToFloat64(raw)
		if err != nil {
			return dataset.Null(), err
		}
		return dataset.Float(f), nil
	case dataset.TypeDecimal:
		if f, ok := raw.(float64); ok {
			return dataset.Decimal(decimal.NewFromFloat(f)), nil
		}
		d, err := decimal.NewFromString(strings.TrimSpace(utils.ToString(raw)))
		if err != nil {
			return dataset.Null(), err
		}
		return dataset.Decimal(d), nil
	case dataset.TypeBool:
		return dataset.Bool(utils.ToBool(raw)), nil
	case dataset.TypeDatetime:
		t, err := utils.ToTime(raw)
		if err != nil {
			return dataset.Null(), err
		}
		return dataset.Time(t), nil
	default:
		return dataset.String(utils.ToString(raw)), nil
	}
}
