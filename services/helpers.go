package services

import (
	"context"
	"strings"

	"github.com/projecthub/dto"
	"github.com/projecthub/models"
	"github.com/projecthub/repositories"
	"github.com/projecthub/utils"
	"gorm.io/datatypes"
)

// requireUsers fails with a validation error naming any id that has no user
func requireUsers(ctx context.Context, users *repositories.UserRepository, ids []string) error {
	missing, err := users.MissingIDs(ctx, ids)
	if err != nil {
		return Internal(err)
	}
	if len(missing) > 0 {
		return Validation("unknown user(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// summaries converts member rows to their response form, never nil
func summaries(rows []repositories.MemberRow) []dto.UserSummary {
	result := make([]dto.UserSummary, 0, len(rows))
	for _, r := range rows {
		result = append(result, dto.UserSummary{ID: r.ID, Name: r.Name, Email: r.Email, Color: r.Color, Avatar: r.Avatar})
	}
	return result
}

// nameOf returns a pointer to the name of id, or nil when the user is gone
func nameOf(names map[string]string, id string) *string {
	if name, ok := names[id]; ok {
		return &name
	}
	return nil
}

func jsonSlice(values []string) datatypes.JSONSlice[string] {
	return datatypes.JSONSlice[string](utils.NonNil(values))
}

// requiredText validates an optional field backed by a NOT NULL text column
func requiredText(field string, o dto.Optional[string]) (string, error) {
	if o.Null || strings.TrimSpace(o.Value) == "" {
		return "", Validation("%s cannot be empty", field)
	}
	return strings.TrimSpace(o.Value), nil
}

// nullableText returns nil for an explicit null
func nullableText(o dto.Optional[string]) interface{} {
	if o.Null {
		return nil
	}
	return o.Value
}

func colorOr(color string) string {
	if strings.TrimSpace(color) == "" {
		return models.DefaultColor
	}
	return color
}
