package appointment

import (
	"context"
	"reflect"
	"testing"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

func seedSchedule(t *testing.T, e *engine) {
	t.Helper()
	mustBook(t, e, manager, bookingFor("Tuul", "2026-03-11", "09:00", "Haircut"))
	mustBook(t, e, manager, bookingFor("Bold", "2026-03-10", "10:00", "Haircut"))
	mustBook(t, e, manager, bookingFor("Tuul", "2026-03-10", "14:00", "Haircut"))
	mustBook(t, e, manager, bookingFor("Tuul", "2026-03-10", "10:00", "Haircut"))
}

func TestList_ManagerSeesAllOrdered(t *testing.T) {
	e := newMemEngine(t)
	seedSchedule(t, e)

	aps, err := e.list.Execute(context.Background(), manager, ListAppointmentsInput{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(aps) != 4 {
		t.Fatalf("len = %d", len(aps))
	}
	for i := 1; i < len(aps); i++ {
		a, b := aps[i-1], aps[i]
		if a.AppointmentDate > b.AppointmentDate ||
			(a.AppointmentDate == b.AppointmentDate && a.StartMinute > b.StartMinute) ||
			(a.AppointmentDate == b.AppointmentDate && a.StartMinute == b.StartMinute && a.ID > b.ID) {
			t.Fatalf("not ordered at %d: %+v then %+v", i, a, b)
		}
	}
}

func TestList_EmployeeScoped(t *testing.T) {
	e := newMemEngine(t)
	seedSchedule(t, e)
	ctx := context.Background()

	aps, err := e.list.Execute(ctx, tuul, ListAppointmentsInput{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(aps) != 3 {
		t.Fatalf("len = %d, want 3", len(aps))
	}
	for _, ap := range aps {
		if ap.EmployeeName != "Tuul" {
			t.Fatalf("employee saw %s's booking", ap.EmployeeName)
		}
	}

	if _, err := e.list.Execute(ctx, tuul, ListAppointmentsInput{EmployeeName: "Bold"}); !domain.IsKind(err, domain.KindUnauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}

func TestList_IdempotentRequery(t *testing.T) {
	e := newMemEngine(t)
	seedSchedule(t, e)
	ctx := context.Background()
	in := ListAppointmentsInput{From: "2026-03-10", To: "2026-03-10"}

	first, err := e.list.Execute(ctx, manager, in)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	second, _ := e.list.Execute(ctx, manager, in)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-query differs")
	}
	if len(first) != 3 {
		t.Fatalf("len = %d, want 3", len(first))
	}
}

func TestList_FiltersAndValidation(t *testing.T) {
	e := newMemEngine(t)
	seedSchedule(t, e)
	ctx := context.Background()

	aps, _ := e.list.Execute(ctx, manager, ListAppointmentsInput{})
	if _, err := e.transition.Execute(ctx, manager, aps[0].ID, domain.StatusCancelled); err != nil {
		t.Fatalf("cancel error: %v", err)
	}

	cancelled, err := e.list.Execute(ctx, manager, ListAppointmentsInput{Status: "cancelled"})
	if err != nil || len(cancelled) != 1 {
		t.Fatalf("cancelled = %v, %v", cancelled, err)
	}
	both, _ := e.list.Execute(ctx, manager, ListAppointmentsInput{Status: "cancelled,scheduled"})
	if len(both) != 4 {
		t.Fatalf("both = %d", len(both))
	}

	bad := []ListAppointmentsInput{
		{Status: "archived"},
		{From: "2026-13-01"},
		{From: "2026-03-11", To: "2026-03-10"},
	}
	for _, in := range bad {
		if _, err := e.list.Execute(ctx, manager, in); !domain.IsKind(err, domain.KindValidation) {
			t.Fatalf("%+v err = %v, want validation", in, err)
		}
	}
}

func TestGet_Scoped(t *testing.T) {
	e := newMemEngine(t)
	id := mustBook(t, e, manager, bookingFor("Tuul", "2026-03-10", "10:00", "Haircut"))
	ctx := context.Background()

	if _, err := e.get.Execute(ctx, tuul, id); err != nil {
		t.Fatalf("own get error: %v", err)
	}
	if _, err := e.get.Execute(ctx, bold, id); !domain.IsKind(err, domain.KindUnauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}

func TestGet_MissingIDLooksDeniedToEmployees(t *testing.T) {
	e := newMemEngine(t)
	ctx := context.Background()

	if _, err := e.get.Execute(ctx, tuul, 999); !domain.IsKind(err, domain.KindUnauthorized) {
		t.Fatalf("employee err = %v, want unauthorized", err)
	}
	if _, err := e.get.Execute(ctx, manager, 999); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("manager err = %v, want not found", err)
	}
}
