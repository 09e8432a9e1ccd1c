package appointments

import (
	"context"
	"fmt"
)

// Franja de atención: 08:00 a 17:30, cada 30 minutos (UTC).
const (
	firstSlotHour = 8
	lastSlotHour  = 18
	slotMinutes   = 30
)

type Slot struct {
	Time      string // HH:MM
	Available bool
}

// TimeSlots marca ocupadas las franjas con un turno no cancelado ese día.
// Es informativo: el alta no rechaza turnos superpuestos.
func (s *Service) TimeSlots(ctx context.Context, date string) (string, []Slot, error) {
	date, items, err := s.Schedule(ctx, date)
	if err != nil {
		return "", nil, err
	}

	booked := make(map[string]bool, len(items))
	for _, a := range items {
		if a.Status == StatusCanceled {
			continue
		}
		booked[a.DateTime.UTC().Format("15:04")] = true
	}

	out := make([]Slot, 0, (lastSlotHour-firstSlotHour)*60/slotMinutes)
	for h := firstSlotHour; h < lastSlotHour; h++ {
		for m := 0; m < 60; m += slotMinutes {
			t := fmt.Sprintf("%02d:%02d", h, m)
			out = append(out, Slot{Time: t, Available: !booked[t]})
		}
	}
	return date, out, nil
}
