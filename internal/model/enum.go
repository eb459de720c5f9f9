package model

type Team string

const (
	TeamContentWriter   Team = "content_writer"
	TeamGraphicDesigner Team = "graphic_designer"
	TeamVideoEditor     Team = "video_editor"
	TeamSocialMedia     Team = "social_media"
	TeamVideoProducer   Team = "video_producer"
	TeamReporter        Team = "reporter"
	TeamCameraman       Team = "cameraman"
	TeamMarketing       Team = "marketing"
)

// Teams lists every team in display order.
var Teams = []Team{
	TeamContentWriter, TeamGraphicDesigner, TeamVideoEditor, TeamSocialMedia,
	TeamVideoProducer, TeamReporter, TeamCameraman, TeamMarketing,
}

var teamLabels = map[Team]string{
	TeamContentWriter:   "Content Writer",
	TeamGraphicDesigner: "Graphic Designer",
	TeamVideoEditor:     "Video Editor",
	TeamSocialMedia:     "Social Media",
	TeamVideoProducer:   "Video Producer",
	TeamReporter:        "Reporter",
	TeamCameraman:       "Cameraman",
	TeamMarketing:       "Marketing",
}

func (t Team) Valid() bool {
	_, ok := teamLabels[t]
	return ok
}

// Label returns the display name, or the raw value for unknown teams.
func (t Team) Label() string {
	if l, ok := teamLabels[t]; ok {
		return l
	}
	return string(t)
}

type Shift string

const (
	Shift7To330  Shift = "7_3_30"
	Shift8To830  Shift = "8_8_30"
	Shift9To530  Shift = "9_5_30"
	Shift10To630 Shift = "10_6_30"
	Shift12To830 Shift = "12_8_30"
	Shift230To11 Shift = "2_30_11"
	ShiftHome    Shift = "wfh"
)

const DefaultShift = Shift9To530

var Shifts = []Shift{
	Shift7To330, Shift8To830, Shift9To530, Shift10To630, Shift12To830, Shift230To11, ShiftHome,
}

var shiftLabels = map[Shift]string{
	Shift7To330:  "7:00 AM – 3:30 PM",
	Shift8To830:  "8:00 AM – 8:30 PM",
	Shift9To530:  "9:00 AM – 5:30 PM",
	Shift10To630: "10:00 AM – 6:30 PM",
	Shift12To830: "12:00 PM – 8:30 PM",
	Shift230To11: "2:30 PM – 11:00 PM",
	ShiftHome:    "Work From Home",
}

func (s Shift) Valid() bool {
	_, ok := shiftLabels[s]
	return ok
}

func (s Shift) Label() string {
	if l, ok := shiftLabels[s]; ok {
		return l
	}
	return string(s)
}

// Option is a value/label pair for dropdowns.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func TeamOptions() []Option {
	opts := make([]Option, 0, len(Teams))
	for _, t := range Teams {
		opts = append(opts, Option{Value: string(t), Label: t.Label()})
	}
	return opts
}

func ShiftOptions() []Option {
	opts := make([]Option, 0, len(Shifts))
	for _, s := range Shifts {
		opts = append(opts, Option{Value: string(s), Label: s.Label()})
	}
	return opts
}
