package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anud18/scholarship-system-sub000/internal/rbac"
)

func TestDefaultPolicy(t *testing.T) {
	c := rbac.NewChecker(nil)

	assert.True(t, c.Has("student", "application:submit"))
	assert.True(t, c.Has("student", "document:upload"))
	assert.False(t, c.Has("student", "application:view-all"))
	assert.False(t, c.Has("student", "quota:write"))

	assert.True(t, c.Has("reviewer", "application:review"))
	assert.True(t, c.Has("reviewer", "quota:view"))
	assert.False(t, c.Has("reviewer", "application:create"))

	// admin wildcard
	assert.True(t, c.Has("admin", "quota:write"))
	assert.True(t, c.Has("admin", "anything:at-all"))

	// unknown roles have nothing
	assert.False(t, c.Has("", "scholarship:view"))
	assert.False(t, c.Has("ghost", "scholarship:view"))
}

func TestPrefixPatternsAndAny(t *testing.T) {
	c := rbac.NewChecker(map[string][]string{
		"clerk": {"application:*"},
	})
	assert.True(t, c.Has("clerk", "application:submit"))
	assert.False(t, c.Has("clerk", "quota:view"))
	assert.True(t, c.Any("clerk", "quota:view", "application:edit"))
	assert.False(t, c.Any("clerk", "quota:view", "quota:write"))
}
