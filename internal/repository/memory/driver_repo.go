package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"movi/internal/domain/entities"
)

var ErrDriverNotFound = errors.New("driver not found")

// DriverRepository holds the mock roster. Entries are copied on the way in
// and on the way out, so callers can never mutate the reference data.
type DriverRepository struct {
	mu        sync.RWMutex
	drivers   map[int]*entities.Driver
	byVehicle map[entities.VehicleType][]int
}

func NewDriverRepository(roster []entities.Driver) *DriverRepository {
	r := &DriverRepository{
		drivers:   make(map[int]*entities.Driver, len(roster)),
		byVehicle: make(map[entities.VehicleType][]int),
	}
	for _, d := range roster {
		r.add(d)
	}
	return r
}

func (r *DriverRepository) add(d entities.Driver) {
	if _, exists := r.drivers[d.ID]; !exists {
		r.byVehicle[d.Vehicle.Type] = append(r.byVehicle[d.Vehicle.Type], d.ID)
	}
	driver := d
	r.drivers[d.ID] = &driver
}

func (r *DriverRepository) GetByID(ctx context.Context, id int) (*entities.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	driver, exists := r.drivers[id]
	if !exists {
		return nil, ErrDriverNotFound
	}
	copied := *driver
	return &copied, nil
}

// List returns the whole roster ordered by driver ID.
func (r *DriverRepository) List(ctx context.Context) ([]*entities.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drivers := make([]*entities.Driver, 0, len(r.drivers))
	for _, d := range r.drivers {
		copied := *d
		drivers = append(drivers, &copied)
	}
	sort.Slice(drivers, func(i, j int) bool { return drivers[i].ID < drivers[j].ID })
	return drivers, nil
}

// ListByVehicleType returns the drivers of one vehicle class in roster order.
// An empty result is not an error; the dispatcher decides what "nobody"
// means.
func (r *DriverRepository) ListByVehicleType(ctx context.Context, vt entities.VehicleType) ([]*entities.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byVehicle[vt]
	drivers := make([]*entities.Driver, 0, len(ids))
	for _, id := range ids {
		copied := *r.drivers[id]
		drivers = append(drivers, &copied)
	}
	return drivers, nil
}
