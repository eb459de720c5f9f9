// Package aggregate combines raw report rows into one record per user, day
// and shift, and computes the rollups shown on the dashboards.
package aggregate

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"media-report/internal/catalog"
	"media-report/internal/model"
)

// Mode selects how a static task value that is not an integer is merged.
type Mode int

const (
	// Display drops non-integer static values.
	Display Mode = iota
	// Export overwrites the slot with the raw value.
	Export
)

// Combined is the merged view of every report sharing a user, effective
// date and shift.
type Combined struct {
	UserID     int         `json:"user_id"`
	Username   string      `json:"username"`
	Team       model.Team  `json:"team"`
	Shift      model.Shift `json:"shift"`
	ShiftLabel string      `json:"shift_label"`
	Date       model.Date  `json:"date"`
	CreatedAt  time.Time   `json:"created_at"`
	Late       bool        `json:"is_late"`
	Tasks      model.Tasks `json:"tasks"`
	Notes      []string    `json:"notes"`
}

type mergeKey struct {
	userID int
	date   string
	shift  model.Shift
}

type slotKey struct {
	name    string
	dynamic bool
}

type slot struct {
	slotKey
	value model.TaskValue
}

type accumulator struct {
	rec   Combined
	slots []slot
	index map[slotKey]int
}

func (a *accumulator) get(k slotKey) (model.TaskValue, bool) {
	if i, ok := a.index[k]; ok {
		return a.slots[i].value, true
	}
	return model.TaskValue{}, false
}

func (a *accumulator) set(k slotKey, v model.TaskValue) {
	if i, ok := a.index[k]; ok {
		a.slots[i].value = v
		return
	}
	a.index[k] = len(a.slots)
	a.slots = append(a.slots, slot{slotKey: k, value: v})
}

func (a *accumulator) addStatic(key string, v model.TaskValue, mode Mode) {
	k := slotKey{name: key}
	n, ok := v.Int()
	if !ok {
		if mode == Export {
			a.set(k, v)
		}
		return
	}
	cur, exists := a.get(k)
	switch {
	case !exists:
		a.set(k, model.IntValue(n))
	case cur.IsNumeric():
		total, _ := cur.Int()
		a.set(k, model.IntValue(total+n))
	default:
		// a raw value already occupies the slot (export only); the newer
		// value replaces it as submitted
		a.set(k, v)
	}
}

func (a *accumulator) result() Combined {
	rec := a.rec
	rec.Tasks = model.Tasks{}
	for _, s := range a.slots {
		name := s.name
		if !s.dynamic {
			name = catalog.DisplayKey(name)
		}
		rec.Tasks.Set(name, s.value)
	}
	return rec
}

// Merge groups reports by (user, effective date, shift). Static task values
// are summed, dynamic answers keep the latest value per label and notes are
// collected in submission order. The result does not depend on the order of
// the input: rows are processed by creation time, then id, then content.
func Merge(reports []model.Report, mode Mode) []Combined {
	rows := canonical(reports)

	accs := map[mergeKey]*accumulator{}
	var order []mergeKey
	for i := range rows {
		r := &rows[i]
		eff := r.EffectiveDate()
		key := mergeKey{userID: r.UserID, date: eff.String(), shift: r.Shift}

		acc, ok := accs[key]
		if !ok {
			acc = &accumulator{
				rec: Combined{
					UserID:     r.UserID,
					Shift:      r.Shift,
					ShiftLabel: r.Shift.Label(),
					Date:       eff,
					CreatedAt:  r.CreatedAt,
					Late:       r.IsLate(),
					Notes:      []string{},
				},
				index: map[slotKey]int{},
			}
			if r.User != nil {
				acc.rec.Username = r.User.Username
				acc.rec.Team = r.User.Team
			}
			accs[key] = acc
			order = append(order, key)
		}

		for _, e := range r.Tasks {
			acc.addStatic(e.Key, e.Value, mode)
		}
		for _, resp := range r.Responses {
			if resp.Field == nil {
				continue
			}
			acc.set(slotKey{name: resp.Field.Label, dynamic: true}, model.TextValue(resp.Value))
		}
		if r.Notes != "" {
			acc.rec.Notes = append(acc.rec.Notes, r.Notes)
		}
	}

	out := make([]Combined, 0, len(order))
	for _, k := range order {
		out = append(out, accs[k].result())
	}
	return out
}

func canonical(reports []model.Report) []model.Report {
	rows := slices.Clone(reports)
	slices.SortStableFunc(rows, func(a, b model.Report) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		if c := cmp.Compare(a.ID, b.ID); c != 0 {
			return c
		}
		// unsaved rows all carry id 0
		return strings.Compare(contentKey(&a), contentKey(&b))
	})
	return rows
}

// contentKey identifies everything in a row that affects the merge.
func contentKey(r *model.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|%s|%s|%q|%q|", r.UserID, r.Date, r.EffectiveDate(), r.Shift, r.Notes)
	for _, e := range r.Tasks {
		fmt.Fprintf(&b, "%q=%t:%q;", e.Key, e.Value.IsNumeric(), e.Value.String())
	}
	b.WriteByte('|')
	for _, resp := range r.Responses {
		if resp.Field != nil {
			fmt.Fprintf(&b, "%q=%q;", resp.Field.Label, resp.Value)
		}
	}
	return b.String()
}
