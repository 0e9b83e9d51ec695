package models

// Address is a delivery address, optionally owned by a user.
type Address struct {
	ID        int64  `gorm:"column:address_id;primaryKey;autoIncrement" json:"address_id"`
	UserID    *int64 `gorm:"column:user_id;index" json:"user_id"`
	Street    string `gorm:"column:street;not null" json:"street"`
	City      string `gorm:"column:city;not null" json:"city"`
	State     string `gorm:"column:state;not null" json:"state"`
	ZipCode   string `gorm:"column:zip_code;not null" json:"zip_code"`
	Country   string `gorm:"column:country;not null" json:"country"`
	IsDefault bool   `gorm:"column:is_default;not null;default:false" json:"is_default"`
}

func (Address) TableName() string { return "addresses" }
