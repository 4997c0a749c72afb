package postgres

import "github.com/Badsnus/cu-clubs-web/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Club{},
	&entity.ClubRole{},
	&entity.ClubMember{},
	&entity.Event{},
	&entity.EventParticipation{},
	&entity.EventReport{},
}
