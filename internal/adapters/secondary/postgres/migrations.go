package postgres

import (
	"github.com/unihub/unihub-api/internal/domain/entity"
)

// Migrations lists every model auto-migrated on startup.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Club{},
	&entity.Membership{},
	&entity.ClubLog{},
	&entity.Event{},
	&entity.EventParticipant{},
	&entity.EventFormQuestion{},
	&entity.EventFormAnswer{},
	&entity.Post{},
	&entity.PostLike{},
}
