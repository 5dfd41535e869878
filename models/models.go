package models

// All lists every persisted model in dependency order, parents first
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Project{},
		&ProjectMember{},
		&CategoryMember{},
		&Task{},
		&TaskAssignee{},
		&Bug{},
		&Notification{},
		&Document{},
		&CalendarEvent{},
		&Asset{},
	}
}
