package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/pkg/database"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
)

// fakeStore is a mutex-guarded in-memory datastore shared by the fake
// repositories. CreateBatch on holds and tickets enforces the same unique
// constraints the schema declares and fails with the unique-violation
// sentinel, so the services' conflict translation is exercised exactly as
// it would be against Postgres. The repository aggregate is assembled
// without a pool, so InTx runs the closure directly.
type fakeStore struct {
	mu sync.Mutex

	users       map[uuid.UUID]*entity.User
	movies      map[int64]*entity.Movie
	auditoriums map[int64]*entity.Auditorium
	seats       []*entity.Seat
	showtimes   map[uuid.UUID]*entity.Showtime
	holds       map[string]*entity.SeatHold
	bookings    map[uuid.UUID]*entity.Booking
	tickets     []*entity.Ticket
	promotions  []*entity.Promotion

	nextMovieID      int64
	nextAuditoriumID int64
	nextSeatID       int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[uuid.UUID]*entity.User),
		movies:      make(map[int64]*entity.Movie),
		auditoriums: make(map[int64]*entity.Auditorium),
		showtimes:   make(map[uuid.UUID]*entity.Showtime),
		holds:       make(map[string]*entity.SeatHold),
		bookings:    make(map[uuid.UUID]*entity.Booking),
	}
}

func newFakeRepo(store *fakeStore) *repository.Repository {
	return &repository.Repository{
		User:       &fakeUserRepo{store},
		Movie:      &fakeMovieRepo{store},
		Auditorium: &fakeAuditoriumRepo{store},
		Seat:       &fakeSeatRepo{store},
		Showtime:   &fakeShowtimeRepo{store},
		SeatHold:   &fakeSeatHoldRepo{store},
		Booking:    &fakeBookingRepo{store},
		Ticket:     &fakeTicketRepo{store},
		Promotion:  &fakePromotionRepo{store},
	}
}

func holdKey(showtimeID uuid.UUID, seatID int64) string {
	return showtimeID.String() + "/" + fmt.Sprint(seatID)
}

// seedAuditorium stores an auditorium with a sequential seat grid and
// returns it together with the seat ids in order.
func (f *fakeStore) seedAuditorium(rows, cols int) (*entity.Auditorium, []int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextAuditoriumID++
	auditorium := &entity.Auditorium{
		ID:        f.nextAuditoriumID,
		Name:      fmt.Sprintf("Room %d", f.nextAuditoriumID),
		RowCount:  rows,
		ColCount:  cols,
		CreatedAt: time.Now().UTC(),
	}
	f.auditoriums[auditorium.ID] = auditorium

	var seatIDs []int64
	for row := 0; row < rows; row++ {
		for num := 1; num <= cols; num++ {
			f.nextSeatID++
			f.seats = append(f.seats, &entity.Seat{
				ID:           f.nextSeatID,
				AuditoriumID: auditorium.ID,
				RowLabel:     string(rune('A' + row)),
				SeatNumber:   num,
			})
			seatIDs = append(seatIDs, f.nextSeatID)
		}
	}

	return auditorium, seatIDs
}

func (f *fakeStore) seedMovie(title string) *entity.Movie {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextMovieID++
	movie := &entity.Movie{ID: f.nextMovieID, Title: title, CreatedAt: time.Now().UTC()}
	f.movies[movie.ID] = movie
	return movie
}

func (f *fakeStore) seedShowtime(movieID, auditoriumID int64, startsAt time.Time, adult, child, senior int64) *entity.Showtime {
	f.mu.Lock()
	defer f.mu.Unlock()

	showtime := &entity.Showtime{
		ID:               uuid.New(),
		MovieID:          movieID,
		AuditoriumID:     auditoriumID,
		StartsAt:         startsAt,
		AdultPriceCents:  adult,
		ChildPriceCents:  child,
		SeniorPriceCents: senior,
		CreatedAt:        time.Now().UTC(),
	}
	f.showtimes[showtime.ID] = showtime
	return showtime
}

func (f *fakeStore) seedUser(name, email string) *entity.User {
	f.mu.Lock()
	defer f.mu.Unlock()

	user := &entity.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Role:      entity.RoleCustomer,
		CreatedAt: time.Now().UTC(),
	}
	f.users[user.ID] = user
	return user
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return database.ErrUniqueViolation
		}
	}
	r.s.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeMovieRepo struct{ s *fakeStore }

func (r *fakeMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextMovieID++
	movie.ID = r.s.nextMovieID
	r.s.movies[movie.ID] = movie
	return nil
}

func (r *fakeMovieRepo) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.movies[id], nil
}

func (r *fakeMovieRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Movie
	for _, m := range r.s.movies {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

func (r *fakeMovieRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.movies)), nil
}

type fakeAuditoriumRepo struct{ s *fakeStore }

func (r *fakeAuditoriumRepo) Create(ctx context.Context, auditorium *entity.Auditorium) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.auditoriums {
		if a.Name == auditorium.Name {
			return database.ErrUniqueViolation
		}
	}
	r.s.nextAuditoriumID++
	auditorium.ID = r.s.nextAuditoriumID
	r.s.auditoriums[auditorium.ID] = auditorium
	return nil
}

func (r *fakeAuditoriumRepo) FindByID(ctx context.Context, id int64) (*entity.Auditorium, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.auditoriums[id], nil
}

func (r *fakeAuditoriumRepo) FindAll(ctx context.Context, nameQuery, sortBy string, limit, offset int) ([]*entity.Auditorium, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Auditorium
	for _, a := range r.s.auditoriums {
		if nameQuery == "" || strings.Contains(strings.ToLower(a.Name), strings.ToLower(nameQuery)) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, limit, offset), nil
}

func (r *fakeAuditoriumRepo) Count(ctx context.Context, nameQuery string) (int64, error) {
	all, _ := r.FindAll(ctx, nameQuery, "", 1<<30, 0)
	return int64(len(all)), nil
}

func (r *fakeAuditoriumRepo) Update(ctx context.Context, auditorium *entity.Auditorium) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.auditoriums[auditorium.ID] = auditorium
	return nil
}

func (r *fakeAuditoriumRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.auditoriums, id)
	return nil
}

type fakeSeatRepo struct{ s *fakeStore }

func (r *fakeSeatRepo) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, seat := range seats {
		r.s.nextSeatID++
		seat.ID = r.s.nextSeatID
		r.s.seats = append(r.s.seats, seat)
	}
	return nil
}

func (r *fakeSeatRepo) FindByAuditoriumID(ctx context.Context, auditoriumID int64) ([]*entity.Seat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Seat
	for _, seat := range r.s.seats {
		if seat.AuditoriumID == auditoriumID {
			out = append(out, seat)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSeatRepo) FindForAuditorium(ctx context.Context, auditoriumID int64, seatIDs []int64) ([]*entity.Seat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[int64]bool, len(seatIDs))
	for _, id := range seatIDs {
		wanted[id] = true
	}
	var out []*entity.Seat
	for _, seat := range r.s.seats {
		if seat.AuditoriumID == auditoriumID && wanted[seat.ID] {
			out = append(out, seat)
		}
	}
	return out, nil
}

type fakeShowtimeRepo struct{ s *fakeStore }

func (r *fakeShowtimeRepo) Create(ctx context.Context, showtime *entity.Showtime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, st := range r.s.showtimes {
		if st.AuditoriumID == showtime.AuditoriumID && st.StartsAt.Equal(showtime.StartsAt) {
			return database.ErrUniqueViolation
		}
	}
	showtime.CreatedAt = time.Now().UTC()
	r.s.showtimes[showtime.ID] = showtime
	return nil
}

func (r *fakeShowtimeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.showtimes[id], nil
}

func (r *fakeShowtimeRepo) FindAll(ctx context.Context, movieID *int64, from, to *time.Time, limit, offset int) ([]*entity.Showtime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Showtime
	for _, st := range r.s.showtimes {
		if movieID != nil && st.MovieID != *movieID {
			continue
		}
		if from != nil && st.StartsAt.Before(*from) {
			continue
		}
		if to != nil && st.StartsAt.After(*to) {
			continue
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return paginate(out, limit, offset), nil
}

func (r *fakeShowtimeRepo) Count(ctx context.Context, movieID *int64, from, to *time.Time) (int64, error) {
	all, _ := r.FindAll(ctx, movieID, from, to, 1<<30, 0)
	return int64(len(all)), nil
}

func (r *fakeShowtimeRepo) DeleteStarted(ctx context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, st := range r.s.showtimes {
		if !st.StartsAt.After(now) {
			delete(r.s.showtimes, id)
			n++
		}
	}
	return n, nil
}

type fakeSeatHoldRepo struct{ s *fakeStore }

func (r *fakeSeatHoldRepo) DeleteExpired(ctx context.Context, showtimeID uuid.UUID, seatIDs []int64, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, seatID := range seatIDs {
		key := holdKey(showtimeID, seatID)
		if hold, ok := r.s.holds[key]; ok && !hold.HoldExpiresAt.After(now) {
			delete(r.s.holds, key)
		}
	}
	return nil
}

func (r *fakeSeatHoldRepo) CreateBatch(ctx context.Context, holds []*entity.SeatHold) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, hold := range holds {
		if _, exists := r.s.holds[holdKey(hold.ShowtimeID, hold.SeatID)]; exists {
			return database.ErrUniqueViolation
		}
	}
	for _, hold := range holds {
		r.s.holds[holdKey(hold.ShowtimeID, hold.SeatID)] = hold
	}
	return nil
}

func (r *fakeSeatHoldRepo) FindActiveBySeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []int64, now time.Time) ([]*entity.SeatHold, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.SeatHold
	for _, seatID := range seatIDs {
		if hold, ok := r.s.holds[holdKey(showtimeID, seatID)]; ok && hold.HoldExpiresAt.After(now) {
			out = append(out, hold)
		}
	}
	return out, nil
}

func (r *fakeSeatHoldRepo) FindActiveByUser(ctx context.Context, showtimeID, userID uuid.UUID, seatIDs []int64, now time.Time) ([]*entity.SeatHold, error) {
	all, _ := r.FindActiveBySeats(ctx, showtimeID, seatIDs, now)
	var out []*entity.SeatHold
	for _, hold := range all {
		if hold.UserID == userID {
			out = append(out, hold)
		}
	}
	return out, nil
}

func (r *fakeSeatHoldRepo) FindActiveSeatIDs(ctx context.Context, showtimeID uuid.UUID, now time.Time) ([]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []int64
	for _, hold := range r.s.holds {
		if hold.ShowtimeID == showtimeID && hold.HoldExpiresAt.After(now) {
			out = append(out, hold.SeatID)
		}
	}
	return out, nil
}

func (r *fakeSeatHoldRepo) DeleteByUserAndSeats(ctx context.Context, showtimeID, userID uuid.UUID, seatIDs []int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, seatID := range seatIDs {
		key := holdKey(showtimeID, seatID)
		if hold, ok := r.s.holds[key]; ok && hold.UserID == userID {
			delete(r.s.holds, key)
		}
	}
	return nil
}

func (r *fakeSeatHoldRepo) DeleteAllExpired(ctx context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for key, hold := range r.s.holds {
		if !hold.HoldExpiresAt.After(now) {
			delete(r.s.holds, key)
			n++
		}
	}
	return n, nil
}

type fakeBookingRepo struct{ s *fakeStore }

func cloneBooking(b *entity.Booking) *entity.Booking {
	if b == nil {
		return nil
	}
	c := *b
	if b.ExpiresAt != nil {
		t := *b.ExpiresAt
		c.ExpiresAt = &t
	}
	return &c
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	booking.CreatedAt = time.Now().UTC()
	r.s.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return cloneBooking(r.s.bookings[id]), nil
}

func (r *fakeBookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookingRepo) FindConfirmedByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if b.UserID == userID && b.Status == entity.BookingStatusConfirmed {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *fakeBookingRepo) CountConfirmedByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	all, _ := r.FindConfirmedByUserID(ctx, userID, 1<<30, 0)
	return int64(len(all)), nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[booking.ID]; !ok {
		return fmt.Errorf("booking %s not found", booking.ID)
	}
	r.s.bookings[booking.ID] = cloneBooking(booking)
	return nil
}

func (r *fakeBookingRepo) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, b := range r.s.bookings {
		if b.Status == entity.BookingStatusPending && b.ExpiresAt != nil && !b.ExpiresAt.After(now) {
			b.Status = entity.BookingStatusExpired
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) CountConfirmedByPromotion(ctx context.Context, promotionID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, b := range r.s.bookings {
		if b.Status == entity.BookingStatusConfirmed && b.PromotionID != nil && *b.PromotionID == promotionID {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) CountConfirmedByPromotionAndUser(ctx context.Context, promotionID, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, b := range r.s.bookings {
		if b.Status == entity.BookingStatusConfirmed && b.UserID == userID && b.PromotionID != nil && *b.PromotionID == promotionID {
			n++
		}
	}
	return n, nil
}

type fakeTicketRepo struct{ s *fakeStore }

func (r *fakeTicketRepo) CreateBatch(ctx context.Context, tickets []*entity.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	taken := make(map[string]bool, len(r.s.tickets))
	for _, t := range r.s.tickets {
		taken[holdKey(t.ShowtimeID, t.SeatID)] = true
	}
	for _, t := range tickets {
		if taken[holdKey(t.ShowtimeID, t.SeatID)] {
			return database.ErrUniqueViolation
		}
	}
	r.s.tickets = append(r.s.tickets, tickets...)
	return nil
}

func (r *fakeTicketRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Ticket
	for _, t := range r.s.tickets {
		if t.BookingID == bookingID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.tickets[:0]
	for _, t := range r.s.tickets {
		if t.BookingID != bookingID {
			kept = append(kept, t)
		}
	}
	r.s.tickets = kept
	return nil
}

func (r *fakeTicketRepo) FindSoldSeatIDs(ctx context.Context, showtimeID uuid.UUID, seatIDs []int64) ([]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[int64]bool, len(seatIDs))
	for _, id := range seatIDs {
		wanted[id] = true
	}
	var out []int64
	for _, t := range r.s.tickets {
		if t.ShowtimeID == showtimeID && wanted[t.SeatID] {
			out = append(out, t.SeatID)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) FindSeatIDsByShowtime(ctx context.Context, showtimeID uuid.UUID) ([]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []int64
	for _, t := range r.s.tickets {
		if t.ShowtimeID == showtimeID {
			out = append(out, t.SeatID)
		}
	}
	return out, nil
}

type fakePromotionRepo struct{ s *fakeStore }

func (r *fakePromotionRepo) Create(ctx context.Context, promotion *entity.Promotion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.promotions {
		if strings.EqualFold(p.Code, promotion.Code) {
			return database.ErrUniqueViolation
		}
	}
	promotion.CreatedAt = time.Now().UTC()
	r.s.promotions = append(r.s.promotions, promotion)
	return nil
}

func (r *fakePromotionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Promotion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.promotions {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePromotionRepo) FindActiveByCode(ctx context.Context, code string, now time.Time) (*entity.Promotion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.promotions {
		if strings.EqualFold(p.Code, code) && p.IsActive && !p.StartsAt.After(now) && !p.EndsAt.Before(now) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePromotionRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Promotion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Promotion, len(r.s.promotions))
	copy(out, r.s.promotions)
	return paginate(out, limit, offset), nil
}

func (r *fakePromotionRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.promotions)), nil
}

func testConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 24,
		},
		Booking: utils.BookingConfig{
			PendingExpiryMinutes: 15,
			DefaultHoldMinutes:   5,
		},
	}
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit < len(in) {
		in = in[:limit]
	}
	return in
}
