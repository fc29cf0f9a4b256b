package dto

// GenerateCommunityReportRequest 는 커뮤니티 리포트 생성 요청 바디이다.
type GenerateCommunityReportRequest struct {
	Period string `json:"period"`
}

// BatchAnalyzeRequest 는 운영용 배치 재분석 요청 바디이다.
// ContentType 이 비어 있으면 blog/portfolio 전체를 대상으로 한다.
type BatchAnalyzeRequest struct {
	ContentType string `json:"content_type"`
}
