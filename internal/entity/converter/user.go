package converter

import (
	"foodgram/internal/entity/db"
	"foodgram/internal/entity/dto"
)

// UserToSummary converts a db.User to dto.UserSummary.
func UserToSummary(u *db.User, isSubscribed bool) dto.UserSummary {
	if u == nil {
		return dto.UserSummary{}
	}
	return dto.UserSummary{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}

// UsersToSummaries converts users, marking those present in subscribed.
func UsersToSummaries(users []db.User, subscribed map[uint]struct{}) []dto.UserSummary {
	summaries := make([]dto.UserSummary, len(users))
	for i := range users {
		_, ok := subscribed[users[i].ID]
		summaries[i] = UserToSummary(&users[i], ok)
	}
	return summaries
}
