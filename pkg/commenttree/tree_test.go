package commenttree_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"xwitter/pkg/commenttree"
)

var alice = commenttree.Author{ID: "u1", Username: "alice", Name: "Alice"}

func node(id string, replies ...commenttree.Node) commenttree.Node {
	return commenttree.Node{
		ID:        id,
		Content:   "comment " + id,
		CreatedAt: "2024-01-01T00:00:00Z",
		Author:    alice,
		Replies:   append([]commenttree.Node{}, replies...),
	}
}

func ids(forest []commenttree.Node) []string {
	return lo.Map(forest, func(n commenttree.Node, _ int) string { return n.ID })
}

func TestInsert(t *testing.T) {
	t.Parallel()

	t.Run("roots are prepended", func(t *testing.T) {
		t.Parallel()

		var forest []commenttree.Node
		for _, id := range []string{"A", "B", "C"} {
			var ok bool
			forest, ok = commenttree.Insert(forest, node(id), "")
			require.True(t, ok)
		}

		require.Equal(t, []string{"C", "B", "A"}, ids(forest))
	})

	t.Run("replies are appended", func(t *testing.T) {
		t.Parallel()

		forest := []commenttree.Node{node("P")}

		forest, ok := commenttree.Insert(forest, node("X"), "P")
		require.True(t, ok)
		forest, ok = commenttree.Insert(forest, node("Y"), "P")
		require.True(t, ok)

		require.Equal(t, []string{"X", "Y"}, ids(forest[0].Replies))
	})

	t.Run("reply to a deep node", func(t *testing.T) {
		t.Parallel()

		forest := []commenttree.Node{
			node("1", node("2", node("3"))),
			node("4"),
		}

		updated, ok := commenttree.Insert(forest, node("5"), "3")
		require.True(t, ok)

		found, ok := commenttree.Find(updated, "3")
		require.True(t, ok)
		require.Equal(t, []string{"5"}, ids(found.Replies))
		require.Equal(t, 5, commenttree.Count(updated))
	})

	t.Run("miss returns the input forest", func(t *testing.T) {
		t.Parallel()

		forest := []commenttree.Node{node("1", node("2"))}
		before := commenttree.Count(forest)

		updated, ok := commenttree.Insert(forest, node("9"), "nonexistent-id")
		require.False(t, ok)
		require.Equal(t, forest, updated)
		require.Equal(t, before, commenttree.Count(updated))
	})

	t.Run("miss on an empty forest", func(t *testing.T) {
		t.Parallel()

		updated, ok := commenttree.Insert(nil, node("1"), "parent")
		require.False(t, ok)
		require.Empty(t, updated)
	})

	t.Run("duplicate parent ids attach to the first pre-order match", func(t *testing.T) {
		t.Parallel()

		forest := []commenttree.Node{
			node("root", node("dup")),
			node("dup"),
		}

		updated, ok := commenttree.Insert(forest, node("new"), "dup")
		require.True(t, ok)
		require.Equal(t, []string{"new"}, ids(updated[0].Replies[0].Replies))
		require.Empty(t, updated[1].Replies)
	})
}

func TestInsert_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	forest := []commenttree.Node{
		node("1", node("2"), node("3")),
		node("4"),
	}
	snapshot := deepCopy(forest)

	_, ok := commenttree.Insert(forest, node("5"), "2")
	require.True(t, ok)
	_, ok = commenttree.Insert(forest, node("6"), "1")
	require.True(t, ok)
	_, ok = commenttree.Insert(forest, node("7"), "")
	require.True(t, ok)

	require.Equal(t, snapshot, forest)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	t.Run("removes the whole subtree", func(t *testing.T) {
		t.Parallel()

		r1 := node("R1", node("G1"))
		forest := []commenttree.Node{node("P", r1, node("R2"))}

		require.Equal(t, 2, commenttree.CountSubtree(r1))

		updated, removed, count := commenttree.Remove(forest, "R1")
		require.True(t, removed)
		require.Equal(t, 2, count)
		require.Equal(t, []string{"R2"}, ids(updated[0].Replies))

		_, found := commenttree.Find(updated, "G1")
		require.False(t, found)
	})

	t.Run("removes a root", func(t *testing.T) {
		t.Parallel()

		forest := []commenttree.Node{node("1"), node("2", node("3")), node("4")}

		updated, removed, count := commenttree.Remove(forest, "2")
		require.True(t, removed)
		require.Equal(t, 2, count)
		require.Equal(t, []string{"1", "4"}, ids(updated))
	})

	t.Run("miss", func(t *testing.T) {
		t.Parallel()

		forest := []commenttree.Node{node("1", node("2"))}

		updated, removed, count := commenttree.Remove(forest, "missing")
		require.False(t, removed)
		require.Zero(t, count)
		require.Equal(t, forest, updated)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		t.Parallel()

		forest := []commenttree.Node{node("1", node("2", node("3")), node("4"))}
		snapshot := deepCopy(forest)

		_, removed, _ := commenttree.Remove(forest, "3")
		require.True(t, removed)
		_, removed, _ = commenttree.Remove(forest, "1")
		require.True(t, removed)

		require.Equal(t, snapshot, forest)
	})
}

func TestDecrement(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1, commenttree.Decrement(3, 2))
	require.Equal(t, 0, commenttree.Decrement(1, 2))
	require.Equal(t, 0, commenttree.Decrement(0, 0))
}

func TestScenario(t *testing.T) {
	t.Parallel()

	var (
		forest []commenttree.Node
		count  int
		ok     bool
	)

	forest, ok = commenttree.Insert(forest, node("1"), "")
	require.True(t, ok)
	count++
	require.Equal(t, []string{"1"}, ids(forest))
	require.Equal(t, 1, count)

	forest, ok = commenttree.Insert(forest, node("2"), "1")
	require.True(t, ok)
	count++
	require.Equal(t, []string{"2"}, ids(forest[0].Replies))
	require.Equal(t, 2, count)

	forest, ok = commenttree.Insert(forest, node("3"), "2")
	require.True(t, ok)
	count++
	require.Equal(t, []string{"3"}, ids(forest[0].Replies[0].Replies))
	require.Equal(t, 3, count)

	forest, removed, n := commenttree.Remove(forest, "2")
	require.True(t, removed)
	count = commenttree.Decrement(count, n)
	require.Equal(t, []string{"1"}, ids(forest))
	require.Empty(t, forest[0].Replies)
	require.Equal(t, 1, count)
	require.Equal(t, count, commenttree.Count(forest))
}

func TestCountConsistency(t *testing.T) {
	t.Parallel()

	for seed := range uint64(20) {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			t.Parallel()

			rnd := rand.New(rand.NewPCG(seed, seed*31+7))

			var (
				forest []commenttree.Node
				known  []string
				count  int
			)

			for step := range 200 {
				switch {
				case len(known) == 0 || rnd.IntN(3) > 0:
					id := fmt.Sprintf("c%d", step)
					parent := ""
					if len(known) > 0 && rnd.IntN(4) > 0 {
						parent = known[rnd.IntN(len(known))]
					}
					if rnd.IntN(10) == 0 {
						parent = "ghost"
					}

					var ok bool
					forest, ok = commenttree.Insert(forest, node(id), parent)
					if ok {
						count++
						known = append(known, id)
					}
				default:
					target := known[rnd.IntN(len(known))]

					var (
						removed bool
						n       int
					)
					forest, removed, n = commenttree.Remove(forest, target)
					if removed {
						count = commenttree.Decrement(count, n)
					}
					known = lo.Filter(known, func(id string, _ int) bool {
						_, ok := commenttree.Find(forest, id)
						return ok
					})
				}

				require.Equal(t, commenttree.Count(forest), count)
				require.Len(t, known, count)
			}
		})
	}
}

func deepCopy(forest []commenttree.Node) []commenttree.Node {
	if forest == nil {
		return nil
	}
	return lo.Map(forest, func(n commenttree.Node, _ int) commenttree.Node {
		n.Replies = deepCopy(n.Replies)
		return n
	})
}
