package ordinance

import (
	"sort"
	"strconv"
)

// elixRankLast is the sort rank for records whose Elix id is not numeric,
// pushing them after every parseable id.
const elixRankLast = 999999

// Document pairs an extracted record with the filename it came from. The
// export keys its columns by filename.
type Document struct {
	Filename string
	Record   Record
}

// SortDocuments orders documents by numeric Elix id, ascending. Unparseable
// ids (the "ELIX" sentinel included) sort last; ties keep their input order.
func SortDocuments(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return ElixRank(docs[i].Record.ElixID) < ElixRank(docs[j].Record.ElixID)
	})
}

// ElixRank maps an Elix id to its sort key. Non-numeric ids rank last and
// equal, so a stable sort keeps their relative order.
func ElixRank(id string) int {
	n, err := strconv.Atoi(id)
	if err != nil {
		return elixRankLast
	}
	return n
}
