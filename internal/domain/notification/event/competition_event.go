package event

import "github.com/parnaso/backend/internal/model"

type CompetitionCreatedEvent struct {
	Competition model.Competition `json:"competition"`
}

func (*CompetitionCreatedEvent) Op() string {
	return "competition_created"
}

type CompetitionJoinedEvent struct {
	CompetitionID string     `json:"competition_id"`
	User          model.User `json:"user"`
}

func (*CompetitionJoinedEvent) Op() string {
	return "competition_joined"
}

type CompetitionFinishedEvent struct {
	CompetitionID string `json:"competition_id"`
}

func (*CompetitionFinishedEvent) Op() string {
	return "competition_finished"
}
