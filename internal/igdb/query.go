package igdb

import (
	"sort"
	"strconv"
	"strings"
)

// gameFields are the expanded fields every catalog query selects.
var gameFields = []string{
	"name",
	"cover.image_id",
	"summary",
	"genres.name",
	"platforms.name",
	"rating",
	"first_release_date",
	"age_ratings.rating",
}

// Query is one request in the catalog's text query language.
type Query struct {
	Search string
	Fields []string
	Where  []string
	Limit  int
}

// String renders the query body, e.g. `fields name; where id = (1,2); limit 2;`.
func (q Query) String() string {
	var b strings.Builder
	if q.Search != "" {
		b.WriteString(`search "`)
		b.WriteString(strings.ReplaceAll(q.Search, `"`, ""))
		b.WriteString(`"; `)
	}
	if len(q.Fields) > 0 {
		b.WriteString("fields ")
		b.WriteString(strings.Join(q.Fields, ","))
		b.WriteString("; ")
	}
	if len(q.Where) > 0 {
		b.WriteString("where ")
		b.WriteString(strings.Join(q.Where, " & "))
		b.WriteString("; ")
	}
	if q.Limit > 0 {
		b.WriteString("limit ")
		b.WriteString(strconv.Itoa(q.Limit))
		b.WriteString(";")
	}
	return strings.TrimSpace(b.String())
}

// ByIDsQuery selects the given games in one batched request.
func ByIDsQuery(ids []int) Query {
	return Query{
		Fields: gameFields,
		Where:  []string{"id = (" + joinIDs(ids) + ")"},
		Limit:  len(ids),
	}
}

// SearchQuery is a free-text search, optionally constrained to one platform id.
func SearchQuery(term string, platformID int) Query {
	q := Query{
		Search: term,
		Fields: gameFields,
		Limit:  searchLimit,
	}
	if platformID > 0 {
		q.Where = []string{"platforms = (" + strconv.Itoa(platformID) + ")"}
	}
	return q
}

// sortedIDs returns a sorted copy of ids.
func sortedIDs(ids []int) []int {
	out := append([]int(nil), ids...)
	sort.Ints(out)
	return out
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
