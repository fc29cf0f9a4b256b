package dto

// CreatePortfolioRequest 는 포트폴리오 등록 요청 바디이다.
type CreatePortfolioRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	Content      string   `json:"content" binding:"required"`
	Technologies []string `json:"technologies"`
	ProjectURL   string   `json:"project_url"`
	GithubURL    string   `json:"github_url"`
	ImageURL     string   `json:"image_url"`
	Featured     bool     `json:"featured"`
	Published    bool     `json:"published"`
}

type UpdatePortfolioRequest struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Content      *string  `json:"content"`
	Technologies []string `json:"technologies"`
	ProjectURL   *string  `json:"project_url"`
	GithubURL    *string  `json:"github_url"`
	ImageURL     *string  `json:"image_url"`
	Featured     *bool    `json:"featured"`
	Published    *bool    `json:"published"`
}
