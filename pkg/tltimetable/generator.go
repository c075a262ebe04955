// Turns a load distribution result into a weekly department schedule:
// synthesizes a room pool and places each classroom activity into a free
// (room, day, period) triple without double booking teachers or rooms.
package tltimetable

import (
	"fmt"
	"math/rand"

	"github.com/galymzhantore/dissertation-teaching-load/pkg/tl"
)

const defaultRoomCount = 20

// which room kinds can host which activity kind. activities missing from
// the map go to a regular classroom.
var kindRooms = map[tl.ActivityKind][]tl.RoomKind{
	tl.KindLecture:   {tl.RoomLectureHall, tl.RoomClassroom},
	tl.KindPractical: {tl.RoomClassroom},
	tl.KindLab:       {tl.RoomLaboratory, tl.RoomComputerLab},
	tl.KindSeminar:   {tl.RoomClassroom},
}

type Generator struct {
	rand  *rand.Rand
	slots []tl.TimeSlot
	days  []tl.Weekday
}

func New(seed int64) *Generator {
	return &Generator{
		rand:  rand.New(rand.NewSource(seed)),
		slots: tl.StandardSlots(),
		days:  tl.Weekdays(),
	}
}

// Rooms synthesizes a department room pool in the main building: a few large
// lecture halls, mid-size classrooms for every second slot of the budget and
// a handful of computer labs and laboratories.
func (g *Generator) Rooms(count int) []tl.Room {
	rooms := []tl.Room{}

	hallCapacities := []int{100, 120, 150, 200}
	for i := 1; i <= count/4; i++ {
		rooms = append(rooms, tl.Room{
			ID:       fmt.Sprintf("LH%02d", i),
			Name:     fmt.Sprintf("%d-дәрісхана", 100+i),
			Kind:     tl.RoomLectureHall,
			Capacity: hallCapacities[g.rand.Intn(len(hallCapacities))],
			Building: "Бас корпус",
		})
	}

	classroomCapacities := []int{30, 35, 40}
	for i := 1; i <= count/2; i++ {
		rooms = append(rooms, tl.Room{
			ID:       fmt.Sprintf("CR%02d", i),
			Name:     fmt.Sprintf("%d-аудитория", 200+i),
			Kind:     tl.RoomClassroom,
			Capacity: classroomCapacities[g.rand.Intn(len(classroomCapacities))],
			Building: "Бас корпус",
		})
	}

	for i := 1; i <= count/6; i++ {
		rooms = append(rooms, tl.Room{
			ID:       fmt.Sprintf("CL%02d", i),
			Name:     fmt.Sprintf("%d-компьютер класы", 300+i),
			Kind:     tl.RoomComputerLab,
			Capacity: 25,
			Building: "Бас корпус",
		})
	}

	for i := 1; i <= count/6; i++ {
		rooms = append(rooms, tl.Room{
			ID:       fmt.Sprintf("LB%02d", i),
			Name:     fmt.Sprintf("%d-зертхана", 400+i),
			Kind:     tl.RoomLaboratory,
			Capacity: 20,
			Building: "Бас корпус",
		})
	}

	return rooms
}

type facultySlot struct {
	facultyID int
	day       tl.Weekday
	slotID    int
}

type roomSlot struct {
	roomID string
	day    tl.Weekday
	slotID int
}

// Generate places every classroom assignment of a result into the week.
// Thesis supervision and research projects take no classroom time and are
// left out. Pass nil rooms to synthesize a default pool. Activities that
// cannot be placed anywhere end up in the unplaced list.
func (g *Generator) Generate(
	instance *tl.ProblemInstance,
	result *tl.OptimizationResult,
	rooms []tl.Room,
) *tl.Timetable {
	if rooms == nil {
		rooms = g.Rooms(defaultRoomCount)
	}

	timetable := &tl.Timetable{
		Scheduled: []tl.ScheduledActivity{},
		Rooms:     rooms,
	}

	facultyBusy := map[facultySlot]bool{}
	roomBusy := map[roomSlot]bool{}

	for _, assignment := range result.Assignments {
		activity, err := instance.ActivityByID(assignment.ActivityID)
		if err != nil {
			continue
		}
		if _, err := instance.FacultyByID(assignment.FacultyID); err != nil {
			continue
		}

		if activity.Kind.IsSupervision() {
			continue
		}

		room, day, slot, found := g.findSlot(activity, assignment.FacultyID, rooms, facultyBusy, roomBusy)
		if !found {
			timetable.Unplaced = append(timetable.Unplaced, activity.ID)
			continue
		}

		timetable.Scheduled = append(timetable.Scheduled, tl.ScheduledActivity{
			ActivityID: activity.ID,
			FacultyID:  assignment.FacultyID,
			Day:        day,
			Slot:       slot,
			RoomID:     room.ID,
			CourseName: activity.CourseName,
			Kind:       activity.Kind,
			Hours:      activity.Hours,
		})

		facultyBusy[facultySlot{assignment.FacultyID, day, slot.ID}] = true
		roomBusy[roomSlot{room.ID, day, slot.ID}] = true
	}

	return timetable
}

// room preference has three tiers: right kind and fits, any room that fits,
// any room at all. within a tier rooms and days are tried in random order.
func (g *Generator) findSlot(
	activity *tl.CourseActivity,
	facultyID int,
	rooms []tl.Room,
	facultyBusy map[facultySlot]bool,
	roomBusy map[roomSlot]bool,
) (tl.Room, tl.Weekday, tl.TimeSlot, bool) {
	preferred := kindRooms[activity.Kind]
	if preferred == nil {
		preferred = []tl.RoomKind{tl.RoomClassroom}
	}

	suitable := []tl.Room{}
	for _, r := range rooms {
		if kindMatches(r.Kind, preferred) && r.CanFit(activity.StudentCount) {
			suitable = append(suitable, r)
		}
	}
	if len(suitable) == 0 {
		for _, r := range rooms {
			if r.CanFit(activity.StudentCount) {
				suitable = append(suitable, r)
			}
		}
	}
	if len(suitable) == 0 {
		suitable = append(suitable, rooms...)
	}

	g.rand.Shuffle(len(suitable), func(i, j int) {
		suitable[i], suitable[j] = suitable[j], suitable[i]
	})

	days := append([]tl.Weekday{}, g.days...)
	g.rand.Shuffle(len(days), func(i, j int) {
		days[i], days[j] = days[j], days[i]
	})

	for _, room := range suitable {
		for _, day := range days {
			for _, slot := range g.slots {
				if roomBusy[roomSlot{room.ID, day, slot.ID}] {
					continue
				}
				if facultyBusy[facultySlot{facultyID, day, slot.ID}] {
					continue
				}

				return room, day, slot, true
			}
		}
	}

	return tl.Room{}, "", tl.TimeSlot{}, false
}

func kindMatches(kind tl.RoomKind, allowed []tl.RoomKind) bool {
	for _, a := range allowed {
		if kind == a {
			return true
		}
	}

	return false
}
