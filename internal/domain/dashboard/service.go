package dashboard

import (
	"context"
	"sort"
	"time"

	"pet-grooming/internal/domain/appointments"
	"pet-grooming/internal/domain/catalog"
	"pet-grooming/internal/domain/ledger"
	"pet-grooming/internal/domain/pets"
	"pet-grooming/internal/domain/tutors"
	"pet-grooming/internal/platform/logger"
	"pet-grooming/internal/ports/datastore"
)

const unknownService = "Unknown"

type AppointmentSource interface {
	List(ctx context.Context, f appointments.Filter) ([]appointments.Appointment, error)
	Schedule(ctx context.Context, date string) (string, []appointments.Appointment, error)
}

type TutorSource interface {
	List(ctx context.Context, q string) ([]tutors.Tutor, error)
}

type PetSource interface {
	List(ctx context.Context, f pets.Filter) ([]pets.Pet, error)
}

type TransactionSource interface {
	ListByUser(ctx context.Context, deviceID, userID string) ([]ledger.Transaction, error)
}

type Options struct {
	Appointments AppointmentSource
	Tutors       TutorSource
	Pets         PetSource
	Catalog      *catalog.Catalog
	Transactions TransactionSource
	Remote       datastore.RemoteStore // nil => solo local
	Log          logger.Logger
}

// Service arma las vistas que cruzan módulos (nombres de tutor, mascota, servicio).
type Service struct {
	appts   AppointmentSource
	tutors  TutorSource
	pets    PetSource
	catalog *catalog.Catalog
	txs     TransactionSource
	remote  datastore.RemoteStore
	log     logger.Logger
	now     func() time.Time
}

func NewService(opts Options) *Service {
	log := opts.Log
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		appts:   opts.Appointments,
		tutors:  opts.Tutors,
		pets:    opts.Pets,
		catalog: opts.Catalog,
		txs:     opts.Transactions,
		remote:  opts.Remote,
		log:     log,
		now:     time.Now,
	}
}

type ServiceCount struct {
	Name  string
	Count int
}

type KPIs struct {
	Revenue          float64
	ServicesDone     int
	AverageTicket    float64
	ActiveClients    int
	Today            int
	Upcoming         int
	Completed        int
	InProgress       int
	ServiceBreakdown []ServiceCount
}

// KPIs sobre todos los turnos. Receita suma el precio de catálogo de cada turno,
// sin importar su estado.
func (s *Service) KPIs(ctx context.Context) (KPIs, error) {
	items, err := s.appts.List(ctx, appointments.Filter{})
	if err != nil {
		return KPIs{}, err
	}
	clients, err := s.tutors.List(ctx, "")
	if err != nil {
		return KPIs{}, err
	}

	now := s.now().UTC()
	today := now.Format("2006-01-02")
	prices, names := s.serviceIndex(ctx)

	k := KPIs{ServicesDone: len(items), ActiveClients: len(clients)}
	counts := map[string]int{}
	for _, a := range items {
		k.Revenue += prices[a.ServiceID]

		name, ok := names[a.ServiceID]
		if !ok {
			name = unknownService
		}
		counts[name]++

		if a.DateTime.UTC().Format("2006-01-02") == today {
			k.Today++
		}
		if a.DateTime.After(now) {
			k.Upcoming++
		}
		switch a.Status {
		case appointments.StatusCompleted:
			k.Completed++
		case appointments.StatusInProgress:
			k.InProgress++
		}
	}

	n := len(items)
	if n == 0 {
		n = 1
	}
	k.AverageTicket = k.Revenue / float64(n)

	for name, c := range counts {
		k.ServiceBreakdown = append(k.ServiceBreakdown, ServiceCount{Name: name, Count: c})
	}
	sort.Slice(k.ServiceBreakdown, func(i, j int) bool {
		if k.ServiceBreakdown[i].Count != k.ServiceBreakdown[j].Count {
			return k.ServiceBreakdown[i].Count > k.ServiceBreakdown[j].Count
		}
		return k.ServiceBreakdown[i].Name < k.ServiceBreakdown[j].Name
	})
	return k, nil
}

// ScheduleEntry es un turno con los nombres ya resueltos.
type ScheduleEntry struct {
	Appointment appointments.Appointment
	PetName     string
	TutorName   string
	ServiceName string
}

func (s *Service) Schedule(ctx context.Context, date string) (string, []ScheduleEntry, error) {
	day, items, err := s.appts.Schedule(ctx, date)
	if err != nil {
		return "", nil, err
	}

	tutorNames := map[string]string{}
	if list, err := s.tutors.List(ctx, ""); err == nil {
		for _, t := range list {
			tutorNames[t.ID] = t.Name
		}
	}
	petNames := map[string]string{}
	if list, err := s.pets.List(ctx, pets.Filter{}); err == nil {
		for _, p := range list {
			petNames[p.ID] = p.Name
		}
	}
	_, names := s.serviceIndex(ctx)

	out := make([]ScheduleEntry, 0, len(items))
	for _, a := range items {
		out = append(out, ScheduleEntry{
			Appointment: a,
			PetName:     petNames[a.PetID],
			TutorName:   tutorNames[a.TutorID],
			ServiceName: names[a.ServiceID],
		})
	}
	return day, out, nil
}

type ClientView struct {
	Appointments []ScheduleEntry
	Transactions []ledger.Transaction
	CurrentPlan  *ledger.Transaction
}

// Client: turnos del remoto si trae alguno, si no los locales; siempre del propio tutor.
func (s *Service) Client(ctx context.Context, deviceID, userID string) (ClientView, error) {
	var source []appointments.Appointment
	if s.remote != nil {
		recs, err := s.remote.ListAppointmentsByTutor(ctx, userID)
		if err != nil {
			s.log.Warn("remote appointments read failed", map[string]any{"user_id": userID, "err": err})
		}
		for _, r := range recs {
			source = append(source, fromRecord(r))
		}
	}
	if len(source) == 0 {
		local, err := s.appts.List(ctx, appointments.Filter{TutorID: userID})
		if err != nil {
			return ClientView{}, err
		}
		source = local
	}

	mine := make([]appointments.Appointment, 0, len(source))
	for _, a := range source {
		if a.TutorID == userID {
			mine = append(mine, a)
		}
	}
	appointments.SortByDateTime(mine)

	_, names := s.serviceIndex(ctx)
	view := ClientView{Appointments: make([]ScheduleEntry, 0, len(mine))}
	for _, a := range mine {
		name, ok := names[a.ServiceID]
		if !ok {
			name = "Serviço"
		}
		view.Appointments = append(view.Appointments, ScheduleEntry{Appointment: a, ServiceName: name})
	}

	if s.txs != nil {
		txs, err := s.txs.ListByUser(ctx, deviceID, userID)
		if err != nil {
			return ClientView{}, err
		}
		view.Transactions = txs
		if plan, ok := ledger.CurrentPlan(txs); ok {
			view.CurrentPlan = &plan
		}
	}
	return view, nil
}

func (s *Service) serviceIndex(ctx context.Context) (map[string]float64, map[string]string) {
	prices := map[string]float64{}
	names := map[string]string{}
	if s.catalog == nil {
		return prices, names
	}
	for _, svc := range s.catalog.ListServices(ctx) {
		prices[svc.ID] = svc.Price
		names[svc.ID] = svc.Name
	}
	return prices, names
}

func fromRecord(r datastore.AppointmentRecord) appointments.Appointment {
	return appointments.Appointment{
		ID:        r.ID,
		PetID:     r.PetID,
		TutorID:   r.TutorID,
		ServiceID: r.ServiceID,
		DateTime:  r.DateTime,
		Status:    appointments.Status(r.Status),
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
