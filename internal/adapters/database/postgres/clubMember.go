package postgres

import (
	"context"

	"github.com/Badsnus/cu-clubs-web/internal/domain/dto"
	"github.com/Badsnus/cu-clubs-web/internal/domain/entity"
	"gorm.io/gorm"
)

type ClubMemberStorage struct {
	db *gorm.DB
}

func NewClubMemberStorage(db *gorm.DB) *ClubMemberStorage {
	return &ClubMemberStorage{
		db: db,
	}
}

func (s *ClubMemberStorage) Create(ctx context.Context, member *entity.ClubMember) (*entity.ClubMember, error) {
	err := s.db.WithContext(ctx).Create(member).Error
	return member, err
}

func (s *ClubMemberStorage) CreateRole(ctx context.Context, role *entity.ClubRole) (*entity.ClubRole, error) {
	err := s.db.WithContext(ctx).Create(role).Error
	return role, err
}

// GetByClubID returns one row per member with all of their roles in the club
// joined into a single comma separated string, most senior role first.
func (s *ClubMemberStorage) GetByClubID(ctx context.Context, clubID string) ([]dto.ClubMember, error) {
	var result []dto.ClubMember
	err := s.db.WithContext(ctx).
		Table("club_members").
		Select("users.id AS user_id, users.full_name, users.email, " +
			"string_agg(club_roles.name, ', ' ORDER BY club_roles.rank, club_roles.name) AS roles, " +
			"MIN(club_members.joined_at) AS joined_at").
		Joins("JOIN users ON users.id = club_members.user_id AND users.deleted_at IS NULL").
		Joins("JOIN club_roles ON club_roles.id = club_members.role_id").
		Where("club_members.club_id = ?", clubID).
		Group("users.id, users.full_name, users.email").
		Order("users.full_name").
		Scan(&result).Error
	return result, err
}

// GetExecutiveByClubID returns the executive body of the club: members that
// hold at least one executive role, ordered by their most senior role.
func (s *ClubMemberStorage) GetExecutiveByClubID(ctx context.Context, clubID string) ([]dto.ExecutiveMember, error) {
	var result []dto.ExecutiveMember
	err := s.db.WithContext(ctx).
		Table("club_members").
		Select("users.id AS user_id, users.full_name, users.email, " +
			"string_agg(club_roles.name, ', ' ORDER BY club_roles.rank, club_roles.name) AS roles").
		Joins("JOIN users ON users.id = club_members.user_id AND users.deleted_at IS NULL").
		Joins("JOIN club_roles ON club_roles.id = club_members.role_id").
		Where("club_members.club_id = ? AND club_roles.is_executive", clubID).
		Group("users.id, users.full_name, users.email").
		Order("MIN(club_roles.rank), users.full_name").
		Scan(&result).Error
	return result, err
}
