package models

// User owns addresses; maintained through the back office.
type User struct {
	ID       int64  `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Username string `gorm:"column:username;not null" json:"username"`
	Email    string `gorm:"column:email;not null" json:"email"`
	Role     string `gorm:"column:role;not null" json:"role"`
}

func (User) TableName() string { return "users" }
