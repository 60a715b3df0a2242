package display

import (
	"sync"

	"FinDash/internal/domain/models"
)

// Board keeps the latest text of every region in memory and fans writes out
// to subscribers. Readers never block the writer; slow subscribers miss updates.
type Board struct {
	mu      sync.RWMutex
	regions map[models.Region]string
	subs    map[int]chan models.RegionUpdate
	nextID  int
}

func NewBoard() *Board {
	return &Board{
		regions: make(map[models.Region]string),
		subs:    make(map[int]chan models.RegionUpdate),
	}
}

func (b *Board) Render(region models.Region, text string) {
	u := models.RegionUpdate{Region: region, Text: text}

	b.mu.Lock()
	b.regions[region] = text
	for _, ch := range b.subs {
		select {
		case ch <- u:
		default:
		}
	}
	b.mu.Unlock()
}

// Get returns the latest text of region and whether it was ever written.
func (b *Board) Get(region models.Region) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	text, ok := b.regions[region]
	return text, ok
}

// Subscribe returns a channel of updates, primed with the current region texts,
// and a function that ends the subscription.
func (b *Board) Subscribe(buffer int) (<-chan models.RegionUpdate, func()) {
	if buffer < len(models.Regions) {
		buffer = len(models.Regions)
	}
	ch := make(chan models.RegionUpdate, buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	for _, r := range models.Regions {
		if text, ok := b.regions[r]; ok {
			ch <- models.RegionUpdate{Region: r, Text: text}
		}
	}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			close(ch)
			b.mu.Unlock()
		})
	}
}
