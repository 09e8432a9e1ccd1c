package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-grooming/internal/adapters/storage/memory"
	"pet-grooming/internal/domain/appointments"
	"pet-grooming/internal/domain/catalog"
	"pet-grooming/internal/domain/ledger"
	"pet-grooming/internal/domain/pets"
	"pet-grooming/internal/domain/tutors"
	"pet-grooming/internal/ports/datastore"
)

var fixedNow = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, remote datastore.RemoteStore, l *ledger.Ledger) *Service {
	t.Helper()
	store := memory.NewStore(memory.DefaultSeed(fixedNow))

	opts := Options{
		Appointments: appointments.NewService(memory.NewAppointmentRepo(store)),
		Tutors:       tutors.NewService(memory.NewTutorRepo(store)),
		Pets:         pets.NewService(memory.NewPetRepo(store)),
		Catalog:      catalog.NewCatalog(),
		Remote:       remote,
	}
	if l != nil {
		opts.Transactions = l
	}
	svc := NewService(opts)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestKPIs_Seed(t *testing.T) {
	svc := newTestService(t, nil, nil)

	k, err := svc.KPIs(context.Background())
	if err != nil {
		t.Fatalf("KPIs: %v", err)
	}

	// app-1 service-1 (80), app-2 service-3 (100), app-3 service-2 (120)
	if k.Revenue != 300 || k.ServicesDone != 3 || k.AverageTicket != 100 {
		t.Fatalf("unexpected revenue kpis %+v", k)
	}
	if k.ActiveClients != 2 || k.Today != 3 || k.InProgress != 1 || k.Completed != 0 {
		t.Fatalf("unexpected counters %+v", k)
	}
	// 09:30 ya pasó a las 10:00; 11:00 y 14:00 no
	if k.Upcoming != 2 {
		t.Fatalf("expected 2 upcoming, got %d", k.Upcoming)
	}
	if len(k.ServiceBreakdown) != 3 {
		t.Fatalf("expected 3 services in breakdown, got %+v", k.ServiceBreakdown)
	}
}

func TestSchedule_ResolvesNames(t *testing.T) {
	svc := newTestService(t, nil, nil)

	day, items, err := svc.Schedule(context.Background(), "2025-03-10")
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if day != "2025-03-10" || len(items) != 3 {
		t.Fatalf("unexpected schedule %s %d", day, len(items))
	}
	first := items[0]
	if first.Appointment.ID != "app-1" || first.PetName != "Thor" || first.TutorName != "Carlos Silva" || first.ServiceName != "Banho & Tosa Higiênica" {
		t.Fatalf("unexpected first entry %+v", first)
	}
}

func TestClient_RemoteFirstThenLocal(t *testing.T) {
	remote := memory.NewRemoteStore()
	ctx := context.Background()
	svc := newTestService(t, remote, nil)

	// remoto vacío: cae a los turnos locales de tutor-1
	view, err := svc.Client(ctx, "dev", "tutor-1")
	if err != nil {
		t.Fatalf("Client: %v", err)
	}
	if len(view.Appointments) != 2 || view.Appointments[0].Appointment.ID != "app-1" {
		t.Fatalf("expected local appointments sorted, got %+v", view.Appointments)
	}

	at := fixedNow.Add(48 * time.Hour)
	_ = remote.Invoke(ctx, datastore.FuncCreateAppointmentTransaction, datastore.AppointmentBundle{
		Appointment: &datastore.AppointmentRecord{ID: "remote-1", TutorID: "tutor-1", ServiceID: "service-4", DateTime: at, Status: "scheduled"},
	}, nil)

	view, _ = svc.Client(ctx, "dev", "tutor-1")
	if len(view.Appointments) != 1 || view.Appointments[0].Appointment.ID != "remote-1" || view.Appointments[0].ServiceName != "Hidratação de Pelos" {
		t.Fatalf("expected remote appointments, got %+v", view.Appointments)
	}

	remote.SetFail(errors.New("offline"))
	view, err = svc.Client(ctx, "dev", "tutor-1")
	if err != nil || len(view.Appointments) != 2 {
		t.Fatalf("remote failure must fall back to local, got %+v err=%v", view.Appointments, err)
	}
}

func TestClient_CurrentPlan(t *testing.T) {
	l := ledger.New(memory.NewKV(), nil, nil)
	ctx := context.Background()
	_ = l.Record(ctx, "dev", ledger.Transaction{ID: "tx_1", UserID: "tutor-2", Type: ledger.TypeSubscription, CreatedAt: fixedNow, Metadata: map[string]any{"planId": "plano-basico"}})
	_ = l.Record(ctx, "dev", ledger.Transaction{ID: "tx_2", UserID: "tutor-2", Type: ledger.TypeSubscription, CreatedAt: fixedNow.Add(time.Hour), Metadata: map[string]any{"planId": "plano-vip"}})

	svc := newTestService(t, nil, l)
	view, err := svc.Client(ctx, "dev", "tutor-2")
	if err != nil {
		t.Fatalf("Client: %v", err)
	}
	if len(view.Transactions) != 2 || view.CurrentPlan == nil || view.CurrentPlan.ID != "tx_2" {
		t.Fatalf("unexpected client view %+v", view)
	}
}
