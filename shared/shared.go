package shared

import (
	"context"
	"reflect"

	"turfbook/shared/constant"
	"turfbook/shared/dto"
	"turfbook/shared/failure"
	"turfbook/shared/timezone"
)

// CalculateTotalPage is never below one, so an empty listing still has a page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields maps the set, db tagged fields of patch to an UPDATE SET
// list and stamps it with actor. Pointer fields count as set when non-nil,
// so a pointer to zero still clears a column.
func TransformFields(patch any, actor string) map[string]any {
	value := reflect.ValueOf(patch)
	patchType := value.Type()

	fields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	for i := range patchType.NumField() {
		column := patchType.Field(i).Tag.Get("db")
		field := value.Field(i)

		if column != "" && !field.IsZero() {
			fields[column] = field.Interface()
		}
	}

	return fields
}

// FilterByID matches the single row whose fieldID equals id.
func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: fieldID, Value: id, Operator: dto.FilterOperatorEq, Table: table},
		},
	}
}

// Requester reads the authenticated user and role set by the auth middleware.
func Requester(ctx context.Context) (userID, role string, err error) {
	userID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	role, _ = ctx.Value(constant.ContextKeyUserRole).(string)

	if userID == "" {
		return "", "", failure.Unauthorized("unauthorized")
	}

	return userID, role, nil
}
