package commenttree_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"xwitter/pkg/commenttree"
)

func TestNormalizeIncoming(t *testing.T) {
	t.Parallel()

	fallback := commenttree.Author{ID: "me", Username: "me", Name: "Me"}

	t.Run("missing author and replies", func(t *testing.T) {
		t.Parallel()

		n := commenttree.NormalizeIncoming(commenttree.RawNode{
			ID:        "c1",
			Content:   "hi",
			CreatedAt: "2024-01-01",
		}, fallback)

		require.Equal(t, fallback, n.Author)
		require.NotNil(t, n.Replies)
		require.Empty(t, n.Replies)
		require.Equal(t, "c1", n.ID)
		require.Equal(t, "hi", n.Content)
		require.Equal(t, "2024-01-01", n.CreatedAt)
	})

	t.Run("author without id", func(t *testing.T) {
		t.Parallel()

		n := commenttree.NormalizeIncoming(commenttree.RawNode{
			ID:     "c1",
			Author: &commenttree.Author{Username: "ghost"},
		}, fallback)

		require.Equal(t, fallback, n.Author)
	})

	t.Run("keeps a complete author", func(t *testing.T) {
		t.Parallel()

		author := commenttree.Author{ID: "u9", Username: "bob", Name: "Bob"}
		n := commenttree.NormalizeIncoming(commenttree.RawNode{ID: "c1", Author: &author}, fallback)

		require.Equal(t, author, n.Author)
	})

	t.Run("recurses into replies", func(t *testing.T) {
		t.Parallel()

		var raw commenttree.RawNode
		require.NoError(t, json.Unmarshal([]byte(`{
			"id": "c1",
			"content": "root",
			"createdAt": "2024-01-01",
			"replies": [
				{"id": "c2", "content": "child", "author": null, "replies": null},
				{"id": "c3", "content": "child", "author": {"id": "u2", "username": "carol", "name": "Carol"}}
			]
		}`), &raw))

		n := commenttree.NormalizeIncoming(raw, fallback)

		require.Len(t, n.Replies, 2)
		require.Equal(t, fallback, n.Author)
		require.Equal(t, fallback, n.Replies[0].Author)
		require.NotNil(t, n.Replies[0].Replies)
		require.Equal(t, "carol", n.Replies[1].Author.Username)
		require.Equal(t, 3, commenttree.CountSubtree(n))
	})
}

func TestNode_JSON(t *testing.T) {
	t.Parallel()

	n := commenttree.NormalizeIncoming(commenttree.RawNode{ID: "c1", Content: "hi"}, alice)

	data, err := json.Marshal(n)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"id": "c1",
		"content": "hi",
		"createdAt": "",
		"author": {"id": "u1", "username": "alice", "name": "Alice"},
		"replies": []
	}`, string(data))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("nil forest", func(t *testing.T) {
		t.Parallel()

		forest := commenttree.Normalize(nil)
		require.NotNil(t, forest)
		require.Empty(t, forest)
	})

	t.Run("nested replies", func(t *testing.T) {
		t.Parallel()

		var forest []commenttree.Node
		require.NoError(t, json.Unmarshal([]byte(`[
			{"id": "c1", "replies": [
				{"id": "c2", "replies": null},
				{"id": "c3"}
			]},
			{"id": "c4"}
		]`), &forest))

		got := commenttree.Normalize(forest)

		data, err := json.Marshal(got)
		require.NoError(t, err)
		require.NotContains(t, string(data), "null")
		require.Equal(t, 4, commenttree.Count(got))
		require.Nil(t, forest[0].Replies[0].Replies)
	})
}
