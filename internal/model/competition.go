package model

type Competition struct {
	ID           string `json:"id"`
	CreatedBy    string `json:"created_by"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Type         string `json:"type"`
	Target       int    `json:"target"`
	StartDate    int64  `json:"start_date"` // unix milliseconds
	EndDate      int64  `json:"end_date"`
	Status       string `json:"status"`
	Participants int    `json:"participants"`
	Joined       bool   `json:"joined"`
}

type CompetitionStanding struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Current  int    `json:"current"`
	Percent  int    `json:"percent"`
	Finished bool   `json:"finished"`
}

type CreateCompetitionRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	Target       int    `json:"target"`
	StartDate    int64  `json:"start_date"` // unix milliseconds, zero means now
	DurationDays int    `json:"duration_days"`
}

type CreateCompetitionResponse struct {
	Competition Competition `json:"competition"`
}

type GetCompetitionsRequest struct {
	Status string `json:"status"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetCompetitionsResponse struct {
	Competitions []Competition `json:"competitions"`
}

type JoinCompetitionRequest struct {
	ID string `json:"id"`
}

type JoinCompetitionResponse struct{}

type DeleteCompetitionRequest struct {
	ID string `json:"id"`
}

type DeleteCompetitionResponse struct{}

type GetCompetitionProgressRequest struct {
	ID string `json:"id"`
}

type GetCompetitionProgressResponse struct {
	Standings []CompetitionStanding `json:"standings"`
}
