package services

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type slugChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// slugify 는 제목을 URL 슬러그로 변환한다.
// 소문자화 후 영숫자 이외의 문자를 '-' 로 치환하고 양끝의 '-' 를 제거한다.
func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}

// uniqueSlug 는 슬러그 충돌 시 Unix 밀리초 타임스탬프를 붙여 유일성을 확보한다.
func uniqueSlug(ctx context.Context, checker slugChecker, title string) (string, error) {
	slug := slugify(title)
	if slug == "" {
		slug = "untitled"
	}

	exists, err := checker.SlugExists(ctx, slug)
	if err != nil {
		return "", err
	}
	if !exists {
		return slug, nil
	}
	return fmt.Sprintf("%s-%d", slug, time.Now().UnixMilli()), nil
}
