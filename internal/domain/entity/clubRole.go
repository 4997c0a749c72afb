package entity

// ClubRole is a position a member can hold inside a club.
//
// Roles with IsExecutive set make up the club's executive body. Rank orders
// roles by seniority, lower rank means more senior.
type ClubRole struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ClubID      string `gorm:"not null;type:uuid;uniqueIndex:idx_club_role_name"`
	Club        Club
	Name        string `gorm:"not null;uniqueIndex:idx_club_role_name"`
	Rank        int    `gorm:"not null;default:100"`
	IsExecutive bool   `gorm:"default:false"`
}
