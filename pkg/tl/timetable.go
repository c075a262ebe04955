package tl

import (
	"fmt"
)

type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
)

var weekdayTitles = map[Weekday]string{
	Monday:    "Дүйсенбі",
	Tuesday:   "Сейсенбі",
	Wednesday: "Сәрсенбі",
	Thursday:  "Бейсенбі",
	Friday:    "Жұма",
}

// teaching days, Monday first
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}
}

// Kazakh display name
func (w Weekday) Title() string {
	if title, exists := weekdayTitles[w]; exists {
		return title
	}
	return string(w)
}

type RoomKind string

const (
	RoomLectureHall RoomKind = "lecture_hall"
	RoomClassroom   RoomKind = "classroom"
	RoomComputerLab RoomKind = "computer_lab"
	RoomLaboratory  RoomKind = "laboratory"
)

var roomKindTitles = map[RoomKind]string{
	RoomLectureHall: "Дәрісхана",
	RoomClassroom:   "Аудитория",
	RoomComputerLab: "Компьютер класы",
	RoomLaboratory:  "Зертхана",
}

// Kazakh display name
func (r RoomKind) Title() string {
	if title, exists := roomKindTitles[r]; exists {
		return title
	}
	return string(r)
}

// one academic hour = 50 minutes
type TimeSlot struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// the standard 8 periods of a teaching day (lunch break between 5th and 6th)
func StandardSlots() []TimeSlot {
	return []TimeSlot{
		{1, "1-пара", "08:00", "08:50"},
		{2, "2-пара", "09:00", "09:50"},
		{3, "3-пара", "10:00", "10:50"},
		{4, "4-пара", "11:00", "11:50"},
		{5, "5-пара", "12:00", "12:50"},
		{6, "6-пара", "14:00", "14:50"},
		{7, "7-пара", "15:00", "15:50"},
		{8, "8-пара", "16:00", "16:50"},
	}
}

type Room struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Kind     RoomKind `json:"kind"`
	Capacity int      `json:"capacity"`
	Building string   `json:"building"`
}

func (r *Room) CanFit(studentCount int) bool {
	return r.Capacity >= studentCount
}

type ScheduledActivity struct {
	ActivityID string       `json:"activity_id"`
	FacultyID  int          `json:"faculty_id"`
	Day        Weekday      `json:"day"`
	Slot       TimeSlot     `json:"slot"`
	RoomID     string       `json:"room_id"`
	CourseName string       `json:"course_name"`
	Kind       ActivityKind `json:"kind"`
	Hours      float64      `json:"hours"`
}

// full weekly schedule for a department
type Timetable struct {
	ResultID  string              `json:"result_id"`
	Scheduled []ScheduledActivity `json:"scheduled_activities"`
	Rooms     []Room              `json:"rooms"`
	Unplaced  []string            `json:"unplaced_activities,omitempty"`
}

func (t *Timetable) FacultySchedule(facultyID int) []ScheduledActivity {
	matched := []ScheduledActivity{}
	for _, s := range t.Scheduled {
		if s.FacultyID == facultyID {
			matched = append(matched, s)
		}
	}
	return matched
}

func (t *Timetable) RoomSchedule(roomID string) []ScheduledActivity {
	matched := []ScheduledActivity{}
	for _, s := range t.Scheduled {
		if s.RoomID == roomID {
			matched = append(matched, s)
		}
	}
	return matched
}

func (t *Timetable) DaySchedule(day Weekday) []ScheduledActivity {
	matched := []ScheduledActivity{}
	for _, s := range t.Scheduled {
		if s.Day == day {
			matched = append(matched, s)
		}
	}
	return matched
}

// faculty or room booked twice into the same (day, slot). a correct
// generator produces none; this exists so results can be validated.
func (t *Timetable) Conflicts() []string {
	conflicts := []string{}

	for i, s1 := range t.Scheduled {
		for _, s2 := range t.Scheduled[i+1:] {
			if s1.FacultyID == s2.FacultyID && s1.Day == s2.Day && s1.Slot.ID == s2.Slot.ID {
				conflicts = append(conflicts, fmt.Sprintf(
					"Оқытушы %d: %s %s", s1.FacultyID, s1.Day.Title(), s1.Slot.Name))
			}
		}
	}

	for i, s1 := range t.Scheduled {
		for _, s2 := range t.Scheduled[i+1:] {
			if s1.RoomID == s2.RoomID && s1.Day == s2.Day && s1.Slot.ID == s2.Slot.ID {
				conflicts = append(conflicts, fmt.Sprintf(
					"Аудитория %s: %s %s", s1.RoomID, s1.Day.Title(), s1.Slot.Name))
			}
		}
	}

	return conflicts
}
