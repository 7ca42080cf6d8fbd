package gormdb

import "time"

// UserModel é o model GORM para usuários.
// Status é ponteiro para que false seja gravado em vez do default da coluna.
type UserModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	Status    *bool     `gorm:"not null;default:true;index"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Cellphone string    `gorm:"type:varchar(50);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}
