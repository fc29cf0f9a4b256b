package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSlugChecker struct {
	taken map[string]bool
}

func (f *fakeSlugChecker) SlugExists(ctx context.Context, slug string) (bool, error) {
	return f.taken[slug], nil
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world", slugify("Hello World"))
	assert.Equal(t, "go-1-25-released", slugify("Go 1.25 Released!"))
	assert.Equal(t, "what-s-new", slugify("  What's New?  "))
	assert.Equal(t, "", slugify("!!!"))
}

func TestUniqueSlugNoCollision(t *testing.T) {
	slug, err := uniqueSlug(context.Background(), &fakeSlugChecker{taken: map[string]bool{}}, "My Post")
	assert.NoError(t, err)
	assert.Equal(t, "my-post", slug)
}

func TestUniqueSlugCollisionAppendsTimestamp(t *testing.T) {
	slug, err := uniqueSlug(context.Background(), &fakeSlugChecker{taken: map[string]bool{"my-post": true}}, "My Post")
	assert.NoError(t, err)
	assert.Regexp(t, `^my-post-\d{13}$`, slug)
}

func TestUniqueSlugEmptyTitle(t *testing.T) {
	slug, err := uniqueSlug(context.Background(), &fakeSlugChecker{taken: map[string]bool{}}, "???")
	assert.NoError(t, err)
	assert.Equal(t, "untitled", slug)
}
