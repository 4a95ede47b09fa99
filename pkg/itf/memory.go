package itf

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/greenroomhq/runsheet/modules/runorder/domain/runorder"
)

// Store is a shared in-memory backing for the repository fakes below. Tests
// seed and inspect it directly; the fakes keep the same not-found and cascade
// semantics as the pgx repositories.
type Store struct {
	Shows      []runorder.Show
	Sketches   []runorder.Sketch
	Performers []runorder.CharacterPerformer
	Tech       []runorder.SketchTechDetails

	// FailSketchTitles makes SketchRepository.Create fail for the named
	// titles, to exercise per-record import isolation.
	FailSketchTitles map[string]bool
}

var ErrInducedFailure = errors.New("storage failure")

func NewStore() *Store {
	return &Store{FailSketchTitles: map[string]bool{}}
}

func (s *Store) ShowRepository() runorder.ShowRepository {
	return &memShowRepository{store: s}
}

func (s *Store) SketchRepository() runorder.SketchRepository {
	return &memSketchRepository{store: s}
}

func (s *Store) CharacterPerformerRepository() runorder.CharacterPerformerRepository {
	return &memCharacterPerformerRepository{store: s}
}

func (s *Store) TechDetailsRepository() runorder.TechDetailsRepository {
	return &memTechDetailsRepository{store: s}
}

// SeedShow inserts a show and returns it.
func (s *Store) SeedShow(title string) runorder.Show {
	show := runorder.Show{
		ID:        uuid.New(),
		Title:     title,
		Position:  len(s.Shows),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.Shows = append(s.Shows, show)
	return show
}

// SeedSketch inserts a sketch for the given show at the next position.
func (s *Store) SeedSketch(showID uuid.UUID, title string) runorder.Sketch {
	position := 0
	for _, sk := range s.Sketches {
		if sk.ShowID == showID {
			position++
		}
	}
	sketch := runorder.Sketch{
		ID:        uuid.New(),
		ShowID:    showID,
		Title:     title,
		Position:  position,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.Sketches = append(s.Sketches, sketch)
	return sketch
}

type memShowRepository struct {
	store *Store
}

func (r *memShowRepository) GetAll(ctx context.Context) ([]runorder.Show, error) {
	out := append([]runorder.Show(nil), r.store.Shows...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memShowRepository) GetByID(ctx context.Context, id uuid.UUID) (runorder.Show, error) {
	for _, show := range r.store.Shows {
		if show.ID == id {
			return show, nil
		}
	}
	return runorder.Show{}, runorder.ErrShowNotFound
}

func (r *memShowRepository) Create(ctx context.Context, show runorder.Show) (runorder.Show, error) {
	if show.ID == uuid.Nil {
		show.ID = uuid.New()
	}
	show.CreatedAt = time.Now()
	show.UpdatedAt = show.CreatedAt
	r.store.Shows = append(r.store.Shows, show)
	return show, nil
}

func (r *memShowRepository) Update(ctx context.Context, show runorder.Show) (runorder.Show, error) {
	for i := range r.store.Shows {
		if r.store.Shows[i].ID == show.ID {
			show.CreatedAt = r.store.Shows[i].CreatedAt
			show.UpdatedAt = time.Now()
			r.store.Shows[i] = show
			return show, nil
		}
	}
	return runorder.Show{}, runorder.ErrShowNotFound
}

func (r *memShowRepository) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	for i := range r.store.Shows {
		if r.store.Shows[i].ID == id {
			r.store.Shows[i].Position = position
			r.store.Shows[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return runorder.ErrShowNotFound
}

func (r *memShowRepository) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range r.store.Shows {
		if r.store.Shows[i].ID == id {
			r.store.Shows = append(r.store.Shows[:i], r.store.Shows[i+1:]...)
			return nil
		}
	}
	return runorder.ErrShowNotFound
}

func (r *memShowRepository) Count(ctx context.Context) (int, error) {
	return len(r.store.Shows), nil
}

type memSketchRepository struct {
	store *Store
}

func (r *memSketchRepository) hydrate(sketch runorder.Sketch) runorder.Sketch {
	sketch.CharacterPerformers = nil
	for _, cp := range r.store.Performers {
		if cp.SketchID == sketch.ID {
			sketch.CharacterPerformers = append(sketch.CharacterPerformers, cp)
		}
	}
	sketch.TechDetails = nil
	for i := range r.store.Tech {
		if r.store.Tech[i].SketchID == sketch.ID {
			details := r.store.Tech[i]
			sketch.TechDetails = &details
			break
		}
	}
	return sketch
}

func (r *memSketchRepository) GetByShow(ctx context.Context, showID uuid.UUID) ([]runorder.Sketch, error) {
	var out []runorder.Sketch
	for _, sketch := range r.store.Sketches {
		if sketch.ShowID == showID {
			out = append(out, r.hydrate(sketch))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out, nil
}

func (r *memSketchRepository) GetByID(ctx context.Context, id uuid.UUID) (runorder.Sketch, error) {
	for _, sketch := range r.store.Sketches {
		if sketch.ID == id {
			return r.hydrate(sketch), nil
		}
	}
	return runorder.Sketch{}, runorder.ErrSketchNotFound
}

func (r *memSketchRepository) CountByShow(ctx context.Context, showID uuid.UUID) (int, error) {
	count := 0
	for _, sketch := range r.store.Sketches {
		if sketch.ShowID == showID {
			count++
		}
	}
	return count, nil
}

func (r *memSketchRepository) Create(ctx context.Context, sketch runorder.Sketch) (runorder.Sketch, error) {
	if r.store.FailSketchTitles[sketch.Title] {
		return runorder.Sketch{}, ErrInducedFailure
	}
	if sketch.ID == uuid.Nil {
		sketch.ID = uuid.New()
	}
	sketch.CreatedAt = time.Now()
	sketch.UpdatedAt = sketch.CreatedAt
	r.store.Sketches = append(r.store.Sketches, sketch)
	return sketch, nil
}

func (r *memSketchRepository) Update(ctx context.Context, sketch runorder.Sketch) (runorder.Sketch, error) {
	for i := range r.store.Sketches {
		if r.store.Sketches[i].ID == sketch.ID {
			sketch.CreatedAt = r.store.Sketches[i].CreatedAt
			sketch.UpdatedAt = time.Now()
			r.store.Sketches[i] = sketch
			return r.hydrate(sketch), nil
		}
	}
	return runorder.Sketch{}, runorder.ErrSketchNotFound
}

func (r *memSketchRepository) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	return r.set(id, func(sketch *runorder.Sketch) {
		sketch.Position = position
	})
}

func (r *memSketchRepository) SetLocked(ctx context.Context, id uuid.UUID, locked bool) error {
	return r.set(id, func(sketch *runorder.Sketch) {
		sketch.Locked = locked
	})
}

func (r *memSketchRepository) SetCasted(ctx context.Context, id uuid.UUID, casted int) error {
	return r.set(id, func(sketch *runorder.Sketch) {
		sketch.Casted = casted
	})
}

func (r *memSketchRepository) set(id uuid.UUID, apply func(*runorder.Sketch)) error {
	for i := range r.store.Sketches {
		if r.store.Sketches[i].ID == id {
			apply(&r.store.Sketches[i])
			r.store.Sketches[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return runorder.ErrSketchNotFound
}

func (r *memSketchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.deleteDependents(id)
	for i := range r.store.Sketches {
		if r.store.Sketches[i].ID == id {
			r.store.Sketches = append(r.store.Sketches[:i], r.store.Sketches[i+1:]...)
			return nil
		}
	}
	return runorder.ErrSketchNotFound
}

func (r *memSketchRepository) DeleteByShow(ctx context.Context, showID uuid.UUID) error {
	remaining := r.store.Sketches[:0]
	for _, sketch := range r.store.Sketches {
		if sketch.ShowID == showID {
			r.deleteDependents(sketch.ID)
			continue
		}
		remaining = append(remaining, sketch)
	}
	r.store.Sketches = remaining
	return nil
}

func (r *memSketchRepository) deleteDependents(sketchID uuid.UUID) {
	performers := r.store.Performers[:0]
	for _, cp := range r.store.Performers {
		if cp.SketchID != sketchID {
			performers = append(performers, cp)
		}
	}
	r.store.Performers = performers

	tech := r.store.Tech[:0]
	for _, details := range r.store.Tech {
		if details.SketchID != sketchID {
			tech = append(tech, details)
		}
	}
	r.store.Tech = tech
}

type memCharacterPerformerRepository struct {
	store *Store
}

func (r *memCharacterPerformerRepository) GetBySketch(ctx context.Context, sketchID uuid.UUID) ([]runorder.CharacterPerformer, error) {
	var out []runorder.CharacterPerformer
	for _, cp := range r.store.Performers {
		if cp.SketchID == sketchID {
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *memCharacterPerformerRepository) Create(ctx context.Context, cp runorder.CharacterPerformer) (runorder.CharacterPerformer, error) {
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.store.Performers = append(r.store.Performers, cp)
	return cp, nil
}

func (r *memCharacterPerformerRepository) UpdatePerformer(ctx context.Context, id uuid.UUID, performerName string) (runorder.CharacterPerformer, error) {
	for i := range r.store.Performers {
		if r.store.Performers[i].ID == id {
			r.store.Performers[i].PerformerName = performerName
			r.store.Performers[i].UpdatedAt = time.Now()
			return r.store.Performers[i], nil
		}
	}
	return runorder.CharacterPerformer{}, runorder.ErrPerformerNotFound
}

func (r *memCharacterPerformerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range r.store.Performers {
		if r.store.Performers[i].ID == id {
			r.store.Performers = append(r.store.Performers[:i], r.store.Performers[i+1:]...)
			return nil
		}
	}
	return runorder.ErrPerformerNotFound
}

func (r *memCharacterPerformerRepository) CountBySketch(ctx context.Context, sketchID uuid.UUID) (int, error) {
	count := 0
	for _, cp := range r.store.Performers {
		if cp.SketchID == sketchID {
			count++
		}
	}
	return count, nil
}

type memTechDetailsRepository struct {
	store *Store
}

func (r *memTechDetailsRepository) GetBySketch(ctx context.Context, sketchID uuid.UUID) (runorder.SketchTechDetails, error) {
	for _, details := range r.store.Tech {
		if details.SketchID == sketchID {
			return details, nil
		}
	}
	return runorder.SketchTechDetails{}, runorder.ErrTechDetailsNotFound
}

func (r *memTechDetailsRepository) Upsert(ctx context.Context, details runorder.SketchTechDetails) (runorder.SketchTechDetails, error) {
	for i := range r.store.Tech {
		if r.store.Tech[i].SketchID == details.SketchID {
			details.ID = r.store.Tech[i].ID
			details.CreatedAt = r.store.Tech[i].CreatedAt
			details.UpdatedAt = time.Now()
			r.store.Tech[i] = details
			return details, nil
		}
	}
	details.ID = uuid.New()
	details.CreatedAt = time.Now()
	details.UpdatedAt = details.CreatedAt
	r.store.Tech = append(r.store.Tech, details)
	return details, nil
}
