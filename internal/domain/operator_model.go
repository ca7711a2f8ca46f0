package domain

import "time"

// Operator is a registry user who registers entities and manages blacklist
// markers. The first registered operator becomes admin.
type Operator struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	Email    string `gorm:"uniqueIndex;not null;size:255"`
	Password string `gorm:"not null;size:100;check:length(password) >= 8" json:"-"`
	Role     string `gorm:"not null;default:'user';check:role IN ('user', 'admin')"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (operator *Operator) IsAdmin() bool {
	return operator.Role == "admin"
}
