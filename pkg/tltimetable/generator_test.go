package tltimetable

import (
	"fmt"
	"testing"

	"github.com/function61/gokit/testing/assert"
	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
)

func scheduleInstance() *tl.ProblemInstance {
	return &tl.ProblemInstance{
		Name: "schedule test",
		Faculty: []tl.Faculty{
			{ID: 1, Name: "Алия Касымова", Rank: tl.RankProfessor, TargetLoad: 100, MaxLoad: 120},
			{ID: 2, Name: "Марат Ерланов", Rank: tl.RankTeacher, TargetLoad: 60, MaxLoad: 80},
		},
		Activities: []tl.CourseActivity{
			{ID: "CS101_L1", CourseID: "CS101", CourseName: "Алгоритмдер", Kind: tl.KindLecture, Section: 1, Hours: 45, StudentCount: 100},
			{ID: "CS101_P1", CourseID: "CS101", CourseName: "Алгоритмдер", Kind: tl.KindPractical, Section: 1, Hours: 30, StudentCount: 30},
			{ID: "CS102_LAB1", CourseID: "CS102", CourseName: "Дерекқорлар", Kind: tl.KindLab, Section: 1, Hours: 15, StudentCount: 20},
			{ID: "THESIS_B1", CourseID: "THESIS_B1", CourseName: "Дипломдық жұмыс 1", Kind: tl.KindBachelorThesis, Section: 1, Hours: 20, StudentCount: 1},
		},
	}
}

func scheduleResult() *tl.OptimizationResult {
	return &tl.OptimizationResult{
		InstanceID: "small-42",
		SolverName: "Greedy",
		Assignments: []tl.Assignment{
			{FacultyID: 1, ActivityID: "CS101_L1"},
			{FacultyID: 2, ActivityID: "CS101_P1"},
			{FacultyID: 1, ActivityID: "CS102_LAB1"},
			{FacultyID: 2, ActivityID: "THESIS_B1"},
		},
	}
}

func TestRooms(t *testing.T) {
	rooms := New(42).Rooms(20)

	// 20/4 halls + 20/2 classrooms + 20/6 computer labs + 20/6 laboratories
	assert.Assert(t, len(rooms) == 21)

	counts := map[tl.RoomKind]int{}
	for _, room := range rooms {
		counts[room.Kind]++

		assert.EqualString(t, room.Building, "Бас корпус")

		switch room.Kind {
		case tl.RoomLectureHall:
			assert.Assert(t, room.Capacity >= 100 && room.Capacity <= 200)
		case tl.RoomClassroom:
			assert.Assert(t, room.Capacity >= 30 && room.Capacity <= 40)
		case tl.RoomComputerLab:
			assert.Assert(t, room.Capacity == 25)
		case tl.RoomLaboratory:
			assert.Assert(t, room.Capacity == 20)
		}
	}

	assert.Assert(t, counts[tl.RoomLectureHall] == 5)
	assert.Assert(t, counts[tl.RoomClassroom] == 10)
	assert.Assert(t, counts[tl.RoomComputerLab] == 3)
	assert.Assert(t, counts[tl.RoomLaboratory] == 3)

	assert.EqualString(t, rooms[0].ID, "LH01")
	assert.EqualString(t, rooms[0].Name, "101-дәрісхана")
	assert.EqualString(t, rooms[5].ID, "CR01")
	assert.EqualString(t, rooms[5].Name, "201-аудитория")
}

func TestGenerateSkipsSupervisionAndMapsRoomKinds(t *testing.T) {
	instance := scheduleInstance()

	timetable := New(42).Generate(instance, scheduleResult(), nil)

	// supervision does not occupy classroom time
	assert.Assert(t, len(timetable.Scheduled) == 3)
	for _, scheduled := range timetable.Scheduled {
		assert.Assert(t, scheduled.ActivityID != "THESIS_B1")
	}

	assert.Assert(t, len(timetable.Conflicts()) == 0)

	roomsByID := map[string]tl.Room{}
	for _, room := range timetable.Rooms {
		roomsByID[room.ID] = room
	}

	for _, scheduled := range timetable.Scheduled {
		room := roomsByID[scheduled.RoomID]

		assert.Assert(t, kindMatches(room.Kind, kindRooms[scheduled.Kind]))

		activity, err := instance.ActivityByID(scheduled.ActivityID)
		assert.Ok(t, err)
		assert.Assert(t, room.Capacity >= activity.StudentCount)
	}
}

func TestGenerateRecordsUnplaced(t *testing.T) {
	instance := &tl.ProblemInstance{
		Name: "oversubscribed week",
		Faculty: []tl.Faculty{
			{ID: 1, Name: "Алия Касымова", Rank: tl.RankProfessor, TargetLoad: 600, MaxLoad: 680},
		},
	}

	result := &tl.OptimizationResult{InstanceID: "small-42", SolverName: "Greedy"}

	// a week has 5 days x 8 periods = 40 placeable slots per teacher
	for i := 1; i <= 41; i++ {
		id := fmt.Sprintf("C%02d_P1", i)

		instance.Activities = append(instance.Activities, tl.CourseActivity{
			ID:           id,
			CourseID:     fmt.Sprintf("C%02d", i),
			CourseName:   fmt.Sprintf("Курс %d", i),
			Kind:         tl.KindPractical,
			Section:      1,
			Hours:        15,
			StudentCount: 30,
		})
		result.Assignments = append(result.Assignments, tl.Assignment{FacultyID: 1, ActivityID: id})
	}

	timetable := New(42).Generate(instance, result, nil)

	assert.Assert(t, len(timetable.Scheduled) == 40)
	assert.Assert(t, len(timetable.Unplaced) == 1)
	assert.Assert(t, len(timetable.Conflicts()) == 0)
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	instance := scheduleInstance()
	result := scheduleResult()

	first := New(7).Generate(instance, result, nil)
	second := New(7).Generate(instance, result, nil)

	assert.Assert(t, len(first.Scheduled) == len(second.Scheduled))
	for i := range first.Scheduled {
		assert.Assert(t, first.Scheduled[i] == second.Scheduled[i])
	}
}

func TestWeeklyGrid(t *testing.T) {
	instance := scheduleInstance()

	timetable := &tl.Timetable{
		Rooms: []tl.Room{
			{ID: "CR01", Name: "201-аудитория", Kind: tl.RoomClassroom, Capacity: 30, Building: "Бас корпус"},
		},
		Scheduled: []tl.ScheduledActivity{
			{
				ActivityID: "CS101_P1",
				FacultyID:  1,
				Day:        tl.Monday,
				Slot:       tl.StandardSlots()[0],
				RoomID:     "CR01",
				CourseName: "Алгоритмдер",
				Kind:       tl.KindPractical,
				Hours:      30,
			},
		},
	}

	grid := WeeklyGrid(timetable, instance, 0)

	assert.Assert(t, len(grid.Days) == 5)
	assert.EqualString(t, grid.Days[0], "Дүйсенбі")
	assert.Assert(t, len(grid.Rows) == 8)
	assert.EqualString(t, grid.Rows[0].Time, "08:00-08:50")
	assert.EqualString(t, grid.Rows[5].Time, "14:00-14:50") // lunch gap before 6th period

	assert.EqualString(t, grid.Rows[0].Cells[0], "Алгоритмдер\n(Практикалық)\nАлия Касымова\n201-аудитория")
	assert.EqualString(t, grid.Rows[0].Cells[1], "")

	// filtered to one teacher: name is omitted from the cell
	own := WeeklyGrid(timetable, instance, 1)
	assert.EqualString(t, own.Rows[0].Cells[0], "Алгоритмдер\n(Практикалық)\n201-аудитория")

	other := WeeklyGrid(timetable, instance, 2)
	assert.EqualString(t, other.Rows[0].Cells[0], "")
}

func TestEntriesSortedByDayAndSlot(t *testing.T) {
	instance := scheduleInstance()
	slots := tl.StandardSlots()

	timetable := &tl.Timetable{
		Rooms: []tl.Room{
			{ID: "CR01", Name: "201-аудитория", Kind: tl.RoomClassroom, Capacity: 30},
		},
		Scheduled: []tl.ScheduledActivity{
			{ActivityID: "CS102_LAB1", FacultyID: 1, Day: tl.Friday, Slot: slots[0], RoomID: "CR01", CourseName: "Дерекқорлар", Kind: tl.KindLab},
			{ActivityID: "CS101_P1", FacultyID: 2, Day: tl.Monday, Slot: slots[1], RoomID: "CR01", CourseName: "Алгоритмдер", Kind: tl.KindPractical},
			{ActivityID: "CS101_L1", FacultyID: 1, Day: tl.Monday, Slot: slots[0], RoomID: "CR01", CourseName: "Алгоритмдер", Kind: tl.KindLecture},
		},
	}

	entries := Entries(timetable, instance)

	assert.Assert(t, len(entries) == 3)
	assert.EqualString(t, entries[0].ActivityID, "CS101_L1")
	assert.EqualString(t, entries[1].ActivityID, "CS101_P1")
	assert.EqualString(t, entries[2].ActivityID, "CS102_LAB1")

	assert.EqualString(t, entries[0].Day, "Дүйсенбі")
	assert.EqualString(t, entries[0].Faculty, "Алия Касымова")
	assert.EqualString(t, entries[0].Rank, "Профессор")
	assert.EqualString(t, entries[0].Room, "201-аудитория")
	assert.EqualString(t, entries[2].Day, "Жұма")
}
