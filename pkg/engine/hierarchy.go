package engine

import (
	"sort"
	"time"

	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/spread"
)

// YearNode groups everything inside one calendar year. Spread is nil when no
// explicit year spread exists.
type YearNode struct {
	Year   int            `json:"year"`
	Spread *spread.Spread `json:"spread,omitempty"`
	Months []MonthNode    `json:"months"`
}

// MonthNode groups the day and multiday spreads of one month. Spread is nil
// when no explicit month spread exists.
type MonthNode struct {
	Year   int              `json:"year"`
	Month  time.Month       `json:"month"`
	Spread *spread.Spread   `json:"spread,omitempty"`
	Items  []*spread.Spread `json:"items"`
}

// Tree is the year→month→day navigation structure.
type Tree struct {
	Years []YearNode `json:"years"`
}

// Len counts the spreads in the tree.
func (t Tree) Len() int {
	n := 0
	for _, y := range t.Years {
		if y.Spread != nil {
			n++
		}
		for _, m := range y.Months {
			if m.Spread != nil {
				n++
			}
			n += len(m.Items)
		}
	}
	return n
}

// Flatten returns the spreads in tree order.
func (t Tree) Flatten() []*spread.Spread {
	out := make([]*spread.Spread, 0)
	for _, y := range t.Years {
		if y.Spread != nil {
			out = append(out, y.Spread)
		}
		for _, m := range y.Months {
			if m.Spread != nil {
				out = append(out, m.Spread)
			}
			out = append(out, m.Items...)
		}
	}
	return out
}

// Organize builds the navigation tree. Years and months are ascending; the
// items of a month are day and multiday spreads ordered by start date, a day
// before a multiday starting on it, then by end, creation and id. Multiday
// spreads are filed under the month of their start.
func Organize(spreads []*spread.Spread, cal period.Calendar) Tree {
	type monthKey struct {
		year  int
		month time.Month
	}
	years := make(map[int]*YearNode)
	months := make(map[monthKey]*MonthNode)

	year := func(y int) *YearNode {
		node, ok := years[y]
		if !ok {
			node = &YearNode{Year: y}
			years[y] = node
		}
		return node
	}
	month := func(y int, m time.Month) *MonthNode {
		year(y)
		k := monthKey{y, m}
		node, ok := months[k]
		if !ok {
			node = &MonthNode{Year: y, Month: m}
			months[k] = node
		}
		return node
	}

	for _, s := range spreads {
		if s == nil {
			continue
		}
		start := cal.In(s.Start())
		switch s.Period {
		case period.Year:
			year(start.Year()).Spread = s
		case period.Month:
			month(start.Year(), start.Month()).Spread = s
		default:
			m := month(start.Year(), start.Month())
			m.Items = append(m.Items, s)
		}
	}

	tree := Tree{Years: make([]YearNode, 0, len(years))}
	for _, y := range years {
		tree.Years = append(tree.Years, *y)
	}
	sort.Slice(tree.Years, func(i, j int) bool { return tree.Years[i].Year < tree.Years[j].Year })

	for i := range tree.Years {
		y := &tree.Years[i]
		for k, m := range months {
			if k.year == y.Year {
				y.Months = append(y.Months, *m)
			}
		}
		sort.Slice(y.Months, func(a, b int) bool { return y.Months[a].Month < y.Months[b].Month })
		for j := range y.Months {
			items := y.Months[j].Items
			sort.SliceStable(items, func(a, b int) bool {
				return compareItems(items[a], items[b], cal) < 0
			})
		}
	}
	return tree
}

func compareItems(a, b *spread.Spread, cal period.Calendar) int {
	as := cal.StartOfDay(a.Start())
	bs := cal.StartOfDay(b.Start())
	if c := as.Compare(bs); c != 0 {
		return c
	}
	if a.IsMultiday() != b.IsMultiday() {
		if a.IsMultiday() {
			return 1
		}
		return -1
	}
	return CompareMultiday(a, b, cal)
}

// CompareMultiday orders competing spreads by earliest start, earliest end,
// earliest creation and finally id, so two distinct spreads never tie.
func CompareMultiday(a, b *spread.Spread, cal period.Calendar) int {
	if c := cal.StartOfDay(a.Start()).Compare(cal.StartOfDay(b.Start())); c != 0 {
		return c
	}
	if c := cal.StartOfDay(a.End(cal)).Compare(cal.StartOfDay(b.End(cal))); c != 0 {
		return c
	}
	if c := a.Created.Compare(b.Created.Time); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	default:
		return 0
	}
}

// InitialSelection picks the spread to show for date d: a day spread for d,
// else the best multiday spread containing d, else the month, else the year,
// else nil.
func InitialSelection(spreads []*spread.Spread, d time.Time, cal period.Calendar) *spread.Spread {
	if s := spread.Find(spreads, period.Day, d, cal); s != nil {
		return s
	}
	var best *spread.Spread
	for _, s := range spreads {
		if s == nil || !s.IsMultiday() || !s.Contains(d, cal) {
			continue
		}
		if best == nil || CompareMultiday(s, best, cal) < 0 {
			best = s
		}
	}
	if best != nil {
		return best
	}
	if s := spread.Find(spreads, period.Month, d, cal); s != nil {
		return s
	}
	return spread.Find(spreads, period.Year, d, cal)
}
