package dto

// CreateBlogRequest 는 블로그 작성 요청 바디이다.
type CreateBlogRequest struct {
	Title     string   `json:"title" binding:"required"`
	Content   string   `json:"content" binding:"required"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
}

// UpdateBlogRequest 는 부분 수정 요청 바디이다. nil 필드는 건드리지 않는다.
type UpdateBlogRequest struct {
	Title     *string  `json:"title"`
	Content   *string  `json:"content"`
	Tags      []string `json:"tags"`
	Published *bool    `json:"published"`
}
