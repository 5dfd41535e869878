package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MemberRow is a user joined through a membership or assignment table
type MemberRow struct {
	ParentID string
	ID       string
	Name     string
	Email    string
	Color    string
	Avatar   *string
}

// loadMembers reads the users linked to each parent through a join table, keyed by parent id
func loadMembers(ctx context.Context, db *gorm.DB, table, parentColumn string, parentIDs []string) (map[string][]MemberRow, error) {
	result := make(map[string][]MemberRow, len(parentIDs))
	if len(parentIDs) == 0 {
		return result, nil
	}

	var rows []MemberRow
	err := db.WithContext(ctx).
		Table(table+" AS j").
		Select("j."+parentColumn+" AS parent_id, u.id, u.name, u.email, u.color, u.avatar").
		Joins("JOIN users u ON u.id = j.user_id").
		Where("j."+parentColumn+" IN ?", parentIDs).
		Order("u.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ParentID] = append(result[row.ParentID], row)
	}
	return result, nil
}

// replaceLinks deletes every link of parentID and inserts one per user.
// Callers run it inside a transaction.
func replaceLinks[T any](ctx context.Context, db *gorm.DB, parentColumn, parentID string, links []T) error {
	var model T
	if err := db.WithContext(ctx).Where(parentColumn+" = ?", parentID).Delete(&model).Error; err != nil {
		return err
	}
	if len(links) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&links).Error
}

// insertLinkIgnore inserts a link and treats an existing pair as success
func insertLinkIgnore[T any](ctx context.Context, db *gorm.DB, link *T) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(link).Error
}
