package tltimetable

import (
	"fmt"
	"sort"

	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
)

// week view of a timetable, one row per period, one column per teaching day
type Grid struct {
	Days []string  `json:"days"`
	Rows []GridRow `json:"rows"`
}

type GridRow struct {
	Time  string   `json:"time"`
	Cells []string `json:"cells"`
}

// WeeklyGrid renders a timetable as a weekly grid for display. facultyID
// filters to one teacher's schedule; pass 0 for the whole department, in
// which case each cell carries the teacher name too.
func WeeklyGrid(timetable *tl.Timetable, instance *tl.ProblemInstance, facultyID int) *Grid {
	slots := tl.StandardSlots()
	days := tl.Weekdays()

	cells := map[tl.Weekday]map[int]string{}
	for _, day := range days {
		cells[day] = map[int]string{}
	}

	for _, scheduled := range timetable.Scheduled {
		if facultyID != 0 && scheduled.FacultyID != facultyID {
			continue
		}

		content := fmt.Sprintf("%s\n(%s)", scheduled.CourseName, scheduled.Kind.Title())
		if facultyID == 0 {
			content += "\n" + facultyName(instance, scheduled.FacultyID)
		}
		content += "\n" + roomName(timetable, scheduled.RoomID)

		cells[scheduled.Day][scheduled.Slot.ID] = content
	}

	grid := &Grid{}
	for _, day := range days {
		grid.Days = append(grid.Days, day.Title())
	}

	for _, slot := range slots {
		row := GridRow{Time: slot.Start + "-" + slot.End}
		for _, day := range days {
			row.Cells = append(row.Cells, cells[day][slot.ID])
		}

		grid.Rows = append(grid.Rows, row)
	}

	return grid
}

// one scheduled activity in display form
type Entry struct {
	Day        string `json:"day"`
	Time       string `json:"time"`
	SlotName   string `json:"slot_name"`
	Course     string `json:"course"`
	Kind       string `json:"kind"`
	Faculty    string `json:"faculty"`
	Rank       string `json:"rank"`
	Room       string `json:"room"`
	ActivityID string `json:"activity_id"`
}

// Entries flattens a timetable into display rows sorted by day then period.
func Entries(timetable *tl.Timetable, instance *tl.ProblemInstance) []Entry {
	dayOrder := map[tl.Weekday]int{}
	for i, day := range tl.Weekdays() {
		dayOrder[day] = i
	}

	scheduled := append([]tl.ScheduledActivity{}, timetable.Scheduled...)
	sort.SliceStable(scheduled, func(i, j int) bool {
		if dayOrder[scheduled[i].Day] != dayOrder[scheduled[j].Day] {
			return dayOrder[scheduled[i].Day] < dayOrder[scheduled[j].Day]
		}
		return scheduled[i].Slot.ID < scheduled[j].Slot.ID
	})

	entries := []Entry{}
	for _, s := range scheduled {
		rankTitle := "N/A"
		name := "N/A"
		if f, err := instance.FacultyByID(s.FacultyID); err == nil {
			name = f.Name
			rankTitle = f.Rank.Title()
		}

		entries = append(entries, Entry{
			Day:        s.Day.Title(),
			Time:       s.Slot.Start + "-" + s.Slot.End,
			SlotName:   s.Slot.Name,
			Course:     s.CourseName,
			Kind:       s.Kind.Title(),
			Faculty:    name,
			Rank:       rankTitle,
			Room:       roomName(timetable, s.RoomID),
			ActivityID: s.ActivityID,
		})
	}

	return entries
}

func facultyName(instance *tl.ProblemInstance, id int) string {
	if f, err := instance.FacultyByID(id); err == nil {
		return f.Name
	}

	return "N/A"
}

func roomName(timetable *tl.Timetable, id string) string {
	for _, r := range timetable.Rooms {
		if r.ID == id {
			return r.Name
		}
	}

	return id
}
