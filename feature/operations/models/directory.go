package models

type User struct {
	ID    int64   `gorm:"primaryKey;column:id_user"`
	Name  string  `gorm:"column:name;type:varchar(120)"`
	Email *string `gorm:"column:email;type:varchar(120)"`
	Phone *string `gorm:"column:phone;type:varchar(30)"`
}

func (User) TableName() string {
	return "users"
}

type Vehicle struct {
	ID     int64   `gorm:"primaryKey;column:id_vehicle"`
	UserID *int64  `gorm:"column:id_user"`
	Plate  string  `gorm:"column:plate;type:varchar(20)"`
	Make   *string `gorm:"column:make;type:varchar(60)"`
	Model  *string `gorm:"column:model;type:varchar(60)"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

type Space struct {
	ID         int64  `gorm:"primaryKey;column:id_space"`
	FacilityID int64  `gorm:"column:id_facility;index"`
	Code       string `gorm:"column:code;type:varchar(20)"`
}

func (Space) TableName() string {
	return "spaces"
}

// All returns one value of every model read by the operations source, in
// dependency order.
func All() []any {
	return []any{&User{}, &Vehicle{}, &Space{}, &Reservation{}, &Occupation{}, &Payment{}}
}
