package models

// Lookup is one entry of a reference-data group (categories, statuses, ...).
type Lookup struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	GroupID   int64  `gorm:"column:group_id;not null;index" json:"group_id"`
	GroupName string `gorm:"column:group_name;not null" json:"group_name"`
	Display   string `gorm:"column:display;not null" json:"display"`
}

func (Lookup) TableName() string { return "lookup" }
