// Package catalog describes the input fields each team reports on: the
// static numeric task fields from configuration and the admin-defined
// dynamic fields stored in the database.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"media-report/internal/model"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// Table maps a team to the labels of its static task fields, in form order.
type Table map[model.Team][]string

// DefaultTable returns the built-in static fields of the media teams.
func DefaultTable() Table {
	return Table{
		model.TeamVideoProducer: {
			"Presenter Video", "Live Video", "Logo Video", "Special Work Video",
			"Reel Video", "VO Video", "Interview Video", "Anchor/Presenter Video",
		},
		model.TeamVideoEditor: {
			"Logo Video", "Reel Video", "Two/Three Frame Video", "VO Video",
			"Presenter Video", "Khabarbaat Video", "Special Interview",
			"Video Shoot", "इतर",
		},
		model.TeamGraphicDesigner: {
			"Thumbnail (IG/YT)", "Reel/Live Thumbnail", "WhatsApp Creative",
			"News of the Day", "News/Vdo Comment Link", "Infographics", "Slider",
			"Statement", "Special Day", "Swipe Up", "Pointer Creative",
			"Special Video Graphics", "Comment Creative",
		},
		model.TeamContentWriter: {
			"News", "Bulletin", "Gallery", "Web Story", "Creative",
			"Slider", "X Post", "App Post",
		},
		model.TeamSocialMedia: {
			"Video Post", "Creative Post", "Live Video", "Slider Post",
			"Swipe Up", "News In Comment", "Paid Promotion Post",
		},
		model.TeamReporter: {
			"Attended Press Conference", "Breaking News", "Special Story", "Interview",
		},
		model.TeamCameraman: {
			"Attended Press Conference", "Special Story", "Interview", "Event", "B Rolls", "Live",
		},
		model.TeamMarketing: {
			"Client Visit Details", "Next Day Plan", "Client Follow-up Details",
		},
	}
}

// WithOverrides returns a copy of t where every team present in overrides
// gets the given labels instead.
func (t Table) WithOverrides(overrides map[string][]string) (Table, error) {
	out := make(Table, len(t))
	for team, labels := range t {
		out[team] = append([]string(nil), labels...)
	}
	for name, labels := range overrides {
		team := model.Team(name)
		if !team.Valid() {
			return nil, fmt.Errorf("unknown team %q in field table", name)
		}
		out[team] = append([]string(nil), labels...)
	}
	return out, nil
}

var keyReplacer = strings.NewReplacer(" ", "_", "/", "_", "-", "_")

// FieldKey derives the stored task key from a label. Stored reports use
// these keys as identity, so the derivation must not change.
func FieldKey(label string) string {
	return keyReplacer.Replace(strings.ToLower(label))
}

// DisplayKey turns a stored task key back into a human heading.
func DisplayKey(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

type Field struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type Catalog struct {
	table Table
	db    *gorm.DB
}

func New(table Table, db *gorm.DB) *Catalog {
	return &Catalog{table: table, db: db}
}

// StaticFields returns the team's static fields; unknown teams have none.
func (c *Catalog) StaticFields(team model.Team) []Field {
	labels := c.table[team]
	fields := make([]Field, 0, len(labels))
	for _, l := range labels {
		fields = append(fields, Field{Key: FieldKey(l), Label: l})
	}
	return fields
}

// DynamicFields lists the admin-defined fields of a team in creation order.
func (c *Catalog) DynamicFields(ctx context.Context, team model.Team) ([]model.DynamicField, error) {
	var fields []model.DynamicField
	if err := c.db.WithContext(ctx).Where("team = ?", team).Order("id").Find(&fields).Error; err != nil {
		return nil, fmt.Errorf("query dynamic fields: %w", err)
	}
	return fields, nil
}
