package store

import (
	"strings"
	"testing"

	"github.com/okoval/notekeeper/models"
	"github.com/stretchr/testify/require"
)

func Test_buildNotesPageQuery_NoFilters(t *testing.T) {
	req := models.NotesPageRequest{Page: 1, PerPage: 12}

	query, args, err := buildNotesPageQuery(42, req)
	require.NoError(t, err)

	// only the owner filter should parameterise
	require.Len(t, args, 1)
	require.Equal(t, int64(42), args[0])

	q := strings.ToLower(query)
	require.Contains(t, q, "from notes")
	require.Contains(t, q, "user_id")
	require.Contains(t, q, "order by created_at desc")
	require.Contains(t, q, "limit 12")
	require.Contains(t, q, "offset 0")
	require.Contains(t, query, "$1")

	require.NotContains(t, q, "ilike")
	require.NotContains(t, q, "tag = ")
}

func Test_buildNotesPageQuery_Offset(t *testing.T) {
	req := models.NotesPageRequest{Page: 3, PerPage: 10}

	query, _, err := buildNotesPageQuery(1, req)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "limit 10")
	require.Contains(t, q, "offset 20")
}

func Test_buildNotesPageQuery_TagFilter(t *testing.T) {
	req := models.NotesPageRequest{Page: 1, PerPage: 12, Tag: "work"}

	query, args, err := buildNotesPageQuery(1, req)
	require.NoError(t, err)

	require.Len(t, args, 2)
	require.Equal(t, "work", args[1])

	q := strings.ToLower(query)
	require.Contains(t, q, "tag")
	require.NotContains(t, q, "ilike")
}

func Test_buildNotesPageQuery_SearchFilter(t *testing.T) {
	req := models.NotesPageRequest{Page: 1, PerPage: 12, Search: "meeting"}

	query, args, err := buildNotesPageQuery(1, req)
	require.NoError(t, err)

	// search matches title OR content with the same wildcard pattern
	require.Len(t, args, 3)
	require.Equal(t, "%meeting%", args[1])
	require.Equal(t, "%meeting%", args[2])

	q := strings.ToLower(query)
	require.Contains(t, q, "title ilike")
	require.Contains(t, q, "content ilike")
	require.Contains(t, q, " or ")
}

func Test_buildNotesPageQuery_AllFilters(t *testing.T) {
	req := models.NotesPageRequest{Page: 1, PerPage: 12, Tag: "work", Search: "meeting"}

	query, args, err := buildNotesPageQuery(1, req)
	require.NoError(t, err)

	require.Len(t, args, 4)
	require.Contains(t, query, "$4")
}

func Test_buildNotesCountQuery_MatchesPageFilters(t *testing.T) {
	req := models.NotesPageRequest{Page: 5, PerPage: 12, Tag: "work", Search: "meeting"}

	countQuery, countArgs, err := buildNotesCountQuery(1, req)
	require.NoError(t, err)

	_, pageArgs, err := buildNotesPageQuery(1, req)
	require.NoError(t, err)

	// the count query shares all filter args but ignores pagination
	require.Equal(t, pageArgs, countArgs)

	q := strings.ToLower(countQuery)
	require.Contains(t, q, "count(*)")
	require.NotContains(t, q, "limit")
	require.NotContains(t, q, "offset")
	require.NotContains(t, q, "order by")
}
