package display

import (
	"FinDash/internal/domain/models"
	drepo "FinDash/internal/domain/repository"
)

// Fanout writes every update to each display in order. Nil displays are skipped.
type Fanout []drepo.Display

func NewFanout(displays ...drepo.Display) Fanout {
	out := make(Fanout, 0, len(displays))
	for _, d := range displays {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

func (f Fanout) Render(region models.Region, text string) {
	for _, d := range f {
		d.Render(region, text)
	}
}

// Filter forwards only the listed regions.
type Filter struct {
	next    drepo.Display
	allowed map[models.Region]bool
}

func NewFilter(next drepo.Display, regions []string) *Filter {
	allowed := make(map[models.Region]bool, len(regions))
	for _, r := range regions {
		allowed[models.Region(r)] = true
	}
	return &Filter{next: next, allowed: allowed}
}

func (f *Filter) Render(region models.Region, text string) {
	if f.allowed[region] {
		f.next.Render(region, text)
	}
}
