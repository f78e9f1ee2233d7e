package grade

import (
	"strings"
	"time"

	"go-surgical-scheduling/internal/domain/entity"
)

type groupKey struct {
	specialty string
	physician string
}

type group struct {
	key      groupKey
	headerID string
	slots    []entity.ScheduleRecord
}

// Reconstruct derives the day grade from flat records already filtered to a
// single date. It is pure and deterministic: records are scanned in the
// given order, grouped by (specialty, physician) in first-seen order, and
// never sorted, deduplicated or merged. Records with an empty specialty name
// are malformed and discarded.
//
// Every group emits one specialty header followed by its procedure slots in
// scan order. A group whose header row was deleted still emits a header
// (with an empty source record id) so its procedure rows stay visible.
func Reconstruct(date string, records []entity.ScheduleRecord) *DayGrade {
	var order []groupKey
	groups := make(map[groupKey]*group)

	for i := range records {
		rec := &records[i]
		specialty := strings.TrimSpace(rec.SpecialtyName)
		if specialty == "" {
			continue
		}

		key := groupKey{specialty: specialty, physician: strings.TrimSpace(rec.PhysicianName)}
		g, ok := groups[key]
		if !ok {
			g = &group{key: key}
			groups[key] = g
			order = append(order, key)
		}

		if rec.IsSpecialtyHeader() {
			// First header row wins as the group's source record.
			if g.headerID == "" {
				g.headerID = rec.ID
			}
			continue
		}
		g.slots = append(g.slots, *rec)
	}

	dayGrade := &DayGrade{
		Date:    date,
		Weekday: weekdayOf(date),
		Items:   make([]Item, 0, len(records)+len(order)),
	}

	for _, key := range order {
		g := groups[key]
		dayGrade.Items = append(dayGrade.Items, Item{
			Kind:           KindSpecialtyHeader,
			DisplayText:    headerDisplayText(g.key.specialty, g.key.physician),
			SourceRecordID: g.headerID,
		})

		for i := range g.slots {
			slot := &g.slots[i]
			item := Item{
				Kind:              KindProcedureSlot,
				ProcedureBaseName: slot.ProcedureBaseName,
				Specification:     slot.ProcedureSpecification,
				PhysicianName:     slot.PhysicianName,
				SourceRecordID:    slot.ID,
			}
			if slot.HasPatient() {
				item.Patient = &Patient{
					Name:        slot.PatientName,
					BirthDate:   slot.PatientBirthDate,
					City:        slot.PatientCity,
					Phone:       slot.PatientPhone,
					ConsultDate: slot.PatientConsultDate,
				}
			}
			dayGrade.Items = append(dayGrade.Items, item)
		}
	}

	return dayGrade
}

func headerDisplayText(specialty, physician string) string {
	if physician == "" {
		return specialty
	}
	return specialty + " - " + physician
}

func weekdayOf(date string) time.Weekday {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Sunday
	}
	return t.Weekday()
}
