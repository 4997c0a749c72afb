package entity

import "time"

// ClubMember links a user to a club through a role. A user holding several
// roles in the same club has one row per role.
type ClubMember struct {
	ID       string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ClubID   string    `gorm:"not null;type:uuid;uniqueIndex:idx_club_member_role"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_club_member_role"`
	RoleID   string    `gorm:"not null;type:uuid;uniqueIndex:idx_club_member_role"`
	JoinedAt time.Time `gorm:"not null;default:now()"`

	Club Club
	User User
	Role ClubRole `gorm:"foreignKey:RoleID"`
}
