package model

type Project struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TargetWords int    `json:"target_words"`
	Color       string `json:"color"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TargetWords int    `json:"target_words"`
	Color       string `json:"color"`
}

type CreateProjectResponse struct {
	Project Project `json:"project"`
}

type GetMyProjectsRequest struct{}

type GetMyProjectsResponse struct {
	Projects []Project `json:"projects"`
}

type UpdateProjectRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	TargetWords int    `json:"target_words"`
	Color       string `json:"color"`
	Status      string `json:"status"`
}

type UpdateProjectResponse struct{}

type DeleteProjectRequest struct {
	ID string `json:"id"`
}

type DeleteProjectResponse struct{}
