package cmd

import (
	"strings"
	"testing"
)

func TestTag(t *testing.T) {
	t.Run("add single", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("tag", "/docs/readme", "important")

		out := env.run("query", "important")
		env.contains(out, "/docs/readme")
	})

	t.Run("add multiple tags in one call", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("tag", "/docs/readme", "v1", "stable")

		out := env.run("query", "v1 and stable")
		env.contains(out, "/docs/readme")
	})

	t.Run("add duplicate is idempotent", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("tag", "/docs/readme", "v1")
		env.run("tag", "/docs/readme", "v1")

		out := env.run("query", "v1")
		count := strings.Count(out, "/docs/readme")
		if count > 1 {
			t.Errorf("query v1 matched /docs/readme %d times, want 1", count)
		}
	})
}

func TestUntag(t *testing.T) {
	env := newTestEnv(t)
	env.run("tag", "/docs/readme", "draft")
	env.run("tag", "/docs/readme", "wip")

	env.run("untag", "/docs/readme", "draft")

	out := env.run("query", "wip")
	env.contains(out, "/docs/readme")

	out, err := env.runErr("query", "draft")
	if err == nil && strings.Contains(out, "/docs/readme") {
		t.Error("query draft still returned /docs/readme after untag")
	}
}

func TestQuery(t *testing.T) {
	env := newTestEnv(t)
	env.run("tag", "/docs/readme", "stable")
	env.run("tag", "/docs/api", "beta")
	env.run("tag", "/docs/api", "stable")

	out := env.run("query", "stable and not beta")
	env.contains(out, "/docs/readme")
	if strings.Contains(out, "/docs/api") {
		t.Error("query stable and not beta matched /docs/api, want excluded")
	}
}
