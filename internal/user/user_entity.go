package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"column:username;type:varchar(100);not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"column:password;type:varchar(100);not null" json:"password"`
	Role      string    `gorm:"column:role;type:varchar(20);not null" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (User) TableName() string {
	return "users"
}
