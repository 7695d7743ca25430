package model

import "time"

// UserBan records one ban issued by a moderator. A ban is active while
// LiftedAt is nil and ExpiresAt is in the future; an expired ban is
// terminal but never marked, it simply stops gating the user.
type UserBan struct {
	UUIDBase
	UserID      string    `gorm:"size:36;index;not null" json:"userId"`
	Reason      string    `gorm:"type:text;not null" json:"reason"`
	ModeratorID string    `gorm:"size:36;not null" json:"moderatorId"`
	ExpiresAt   time.Time `gorm:"not null" json:"expiresAt"`

	LiftedAt        *time.Time `json:"liftedAt"`
	ReasonLifted    string     `gorm:"type:text" json:"reasonLifted"`
	ModeratorLiftID *string    `gorm:"size:36" json:"moderatorLiftId"`
}

func (UserBan) TableName() string {
	return "user_bans"
}
