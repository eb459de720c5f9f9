package aggregate

import (
	"cmp"
	"slices"

	"media-report/internal/catalog"
	"media-report/internal/model"
)

// Count is one bar of a dashboard chart.
type Count struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Total int    `json:"total"`
}

// CountByTeam counts raw rows per team. Rows are not merged first, so a
// user who submitted twice for the same shift counts twice.
func CountByTeam(reports []model.Report) []Count {
	return countBy(reports, func(r *model.Report) (string, string) {
		if r.User == nil {
			return "", ""
		}
		return string(r.User.Team), r.User.Team.Label()
	})
}

// CountByUser counts raw rows per username.
func CountByUser(reports []model.Report) []Count {
	return countBy(reports, func(r *model.Report) (string, string) {
		if r.User == nil {
			return "", ""
		}
		return r.User.Username, r.User.Username
	})
}

func countBy(reports []model.Report, keyOf func(*model.Report) (string, string)) []Count {
	idx := map[string]int{}
	var out []Count
	for i := range reports {
		key, label := keyOf(&reports[i])
		if j, ok := idx[key]; ok {
			out[j].Total++
			continue
		}
		idx[key] = len(out)
		out = append(out, Count{Key: key, Label: label, Total: 1})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

// Total is a summed task count under a key.
type Total struct {
	Key   string `json:"key"`
	Total int    `json:"total"`
}

// Detail holds the per-user drill-down rollups.
type Detail struct {
	Reports int     `json:"reports"`
	ByTask  []Total `json:"by_task"`
	ByDay   []Total `json:"by_day"`
	ByMonth []Total `json:"by_month"`
	ByYear  []Total `json:"by_year"`
}

type bucket struct {
	sort  string
	label string
	total int
}

type buckets map[string]*bucket

func (b buckets) add(sortKey, label string, n int) {
	if cur, ok := b[sortKey]; ok {
		cur.total += n
		return
	}
	b[sortKey] = &bucket{sort: sortKey, label: label, total: n}
}

func (b buckets) sorted() []Total {
	list := make([]*bucket, 0, len(b))
	for _, v := range b {
		list = append(list, v)
	}
	slices.SortFunc(list, func(x, y *bucket) int { return cmp.Compare(x.sort, y.sort) })
	out := make([]Total, len(list))
	for i, v := range list {
		out[i] = Total{Key: v.label, Total: v.total}
	}
	return out
}

// BuildDetail sums the static task values of the raw rows per task, per
// day, per month and per year. Values that are not integers are skipped.
func BuildDetail(reports []model.Report) Detail {
	byTask := buckets{}
	byDay, byMonth, byYear := buckets{}, buckets{}, buckets{}

	for i := range reports {
		r := &reports[i]
		eff := r.EffectiveDate()
		sum := 0
		for _, e := range r.Tasks {
			n, ok := e.Value.Int()
			if !ok {
				continue
			}
			sum += n
			name := catalog.DisplayKey(e.Key)
			byTask.add(name, name, n)
		}
		byDay.add(eff.String(), eff.String(), sum)
		byMonth.add(eff.Format("2006-01"), eff.Format("Jan 2006"), sum)
		byYear.add(eff.Format("2006"), eff.Format("2006"), sum)
	}

	tasks := byTask.sorted()
	slices.SortStableFunc(tasks, func(a, b Total) int { return cmp.Compare(b.Total, a.Total) })

	return Detail{
		Reports: len(reports),
		ByTask:  tasks,
		ByDay:   byDay.sorted(),
		ByMonth: byMonth.sorted(),
		ByYear:  byYear.sorted(),
	}
}
