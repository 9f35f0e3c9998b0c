package repository

import (
	"reflect"
	"slices"
	"strings"
)

// column is one selectable field. Fields tagged `table:"..."` come from the
// model's join and are never inserted; `column:"..."` selects a differently
// named source column under the db tag as alias.
type column struct {
	name  string
	table string
	alias string
}

func (c column) expression() string {
	qualified := c.table + "." + c.name
	if c.alias != "" {
		return qualified + " AS " + c.alias
	}

	return qualified
}

func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for field := range fields(reflectType) {
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, embeddedInsert := getColumns(table, field.Type)
			columns = append(columns, embedded...)
			insertColumns = append(insertColumns, embeddedInsert...)
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" {
			continue
		}

		source := column{name: dbTag, table: field.Tag.Get("table")}

		if source.table == "" {
			source.table = table
		}

		if name := field.Tag.Get("column"); name != "" {
			source.name, source.alias = name, dbTag
		}

		if source.table == table {
			insertColumns = append(insertColumns, dbTag)
		}

		columns = append(columns, source)
	}

	return columns, insertColumns
}

func fields(reflectType reflect.Type) func(func(reflect.StructField) bool) {
	return func(yield func(reflect.StructField) bool) {
		for i := range reflectType.NumField() {
			if !yield(reflectType.Field(i)) {
				return
			}
		}
	}
}

// selectList renders the SELECT list, narrowed to only when it is not empty.
func selectList(columns []column, only ...string) string {
	selected := make([]string, 0, len(columns))

	for _, col := range columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		selected = append(selected, col.expression())
	}

	return strings.Join(selected, ", ")
}

func namedPlaceholders(columns []string) string {
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		placeholders[i] = ":" + col
	}

	return strings.Join(placeholders, ", ")
}
