package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	SimilarPostsKeyPrefix = "post:%d:similar"
)

const (
	SimilarPostsTTL = 10 * time.Minute
)

func SimilarPostsKey(postID uint) string {
	return fmt.Sprintf(SimilarPostsKeyPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateSimilarPosts(ctx context.Context, postID uint) {
	Invalidate(ctx, SimilarPostsKey(postID))
}
