package cmd

import "testing"

func TestConfig(t *testing.T) {
	t.Run("set and get round trip", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("config", "author.name", "Ada Lovelace")

		out := env.run("config", "author.name")
		env.contains(out, "Ada Lovelace")
	})

	t.Run("list shows all keys", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("config", "limits.max_tag", "128")

		out := env.run("config")
		env.contains(out, "limits.max_tag")
		env.contains(out, "128")
	})

	t.Run("rejects unknown key", func(t *testing.T) {
		env := newTestEnv(t)
		if _, err := env.runErr("config", "nonsense.key", "x"); err == nil {
			t.Error("config set on unknown key succeeded, want error")
		}
	})

	t.Run("rejects out-of-range limit", func(t *testing.T) {
		env := newTestEnv(t)
		if _, err := env.runErr("config", "limits.max_tag", "-1"); err == nil {
			t.Error("config set limits.max_tag -1 succeeded, want error")
		}
	})
}
