package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"wedding-marketplace/internal/data/entity"
	"wedding-marketplace/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// memStore backs every fake repository; reads return copies so callers
// cannot mutate stored rows behind the store's back.
type memStore struct {
	mu        sync.Mutex
	customers map[uuid.UUID]*entity.Customer
	providers map[uuid.UUID]*entity.Provider
	admins    map[uuid.UUID]*entity.Admin
	services  map[uuid.UUID]*entity.Service
	media     map[uuid.UUID]*entity.Media
	bookings  map[uuid.UUID]*entity.Booking
	reviews   map[uuid.UUID]*entity.Review
	tokens    map[entity.TokenKind]map[string]*entity.SingleUseToken
}

func newMemStore() *memStore {
	return &memStore{
		customers: map[uuid.UUID]*entity.Customer{},
		providers: map[uuid.UUID]*entity.Provider{},
		admins:    map[uuid.UUID]*entity.Admin{},
		services:  map[uuid.UUID]*entity.Service{},
		media:     map[uuid.UUID]*entity.Media{},
		bookings:  map[uuid.UUID]*entity.Booking{},
		reviews:   map[uuid.UUID]*entity.Review{},
		tokens: map[entity.TokenKind]map[string]*entity.SingleUseToken{
			entity.TokenKindPasswordReset:     {},
			entity.TokenKindEmailVerification: {},
		},
	}
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Customer: &fakeCustomerRepo{s},
		Provider: &fakeProviderRepo{s},
		Admin:    &fakeAdminRepo{s},
		Service:  &fakeServiceRepo{s},
		Media:    &fakeMediaRepo{s},
		Booking:  &fakeBookingRepo{s},
		Review:   &fakeReviewRepo{s},
		Token:    &fakeTokenRepo{s},
	}
}

// fakeTransactor runs fn without a real transaction; fake repos ignore tx.
type fakeTransactor struct{}

func (fakeTransactor) WithTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// ==================== CUSTOMER ====================

type fakeCustomerRepo struct{ s *memStore }

func (r *fakeCustomerRepo) WithTx(pgx.Tx) repository.CustomerRepository { return r }

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.customers {
		if existing.Email == c.Email {
			return repository.ErrDuplicate
		}
	}
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.customers[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCustomerRepo) FindByEmail(_ context.Context, email string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if strings.EqualFold(c.Email, email) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) matching(search string) []*entity.Customer {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if search == "" || strings.Contains(strings.ToLower(c.FullName+" "+c.Email), strings.ToLower(search)) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeCustomerRepo) FindAll(_ context.Context, search string, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.matching(search), limit, offset), nil
}

func (r *fakeCustomerRepo) CountAll(_ context.Context, search string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.matching(search))), nil
}

func (r *fakeCustomerRepo) update(id uuid.UUID, fn func(c *entity.Customer)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(c)
	return nil
}

func (r *fakeCustomerRepo) UpdateProfile(_ context.Context, customer *entity.Customer) error {
	return r.update(customer.ID, func(c *entity.Customer) {
		c.FullName, c.Phone, c.UpdatedAt = customer.FullName, customer.Phone, customer.UpdatedAt
	})
}

func (r *fakeCustomerRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	return r.update(id, func(c *entity.Customer) { c.PasswordHash = hash })
}

func (r *fakeCustomerRepo) MarkEmailVerified(_ context.Context, id uuid.UUID) error {
	return r.update(id, func(c *entity.Customer) { c.EmailVerified = true })
}

func (r *fakeCustomerRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	return r.update(id, func(c *entity.Customer) { c.IsActive = active })
}

// ==================== PROVIDER ====================

type fakeProviderRepo struct{ s *memStore }

func (r *fakeProviderRepo) WithTx(pgx.Tx) repository.ProviderRepository { return r }

func (r *fakeProviderRepo) Create(_ context.Context, p *entity.Provider) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.providers {
		if existing.Email == p.Email {
			return repository.ErrDuplicate
		}
	}
	cp := *p
	r.s.providers[p.ID] = &cp
	return nil
}

func (r *fakeProviderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Provider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.providers[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProviderRepo) FindByEmail(_ context.Context, email string) (*entity.Provider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.providers {
		if strings.EqualFold(p.Email, email) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProviderRepo) matching(status *entity.ProviderStatus) []*entity.Provider {
	var out []*entity.Provider
	for _, p := range r.s.providers {
		if status == nil || p.Status == *status {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeProviderRepo) FindAll(_ context.Context, status *entity.ProviderStatus, limit, offset int) ([]*entity.Provider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.matching(status), limit, offset), nil
}

func (r *fakeProviderRepo) CountAll(_ context.Context, status *entity.ProviderStatus) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.matching(status))), nil
}

func (r *fakeProviderRepo) CountByStatus(context.Context) (map[entity.ProviderStatus]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[entity.ProviderStatus]int{}
	for _, p := range r.s.providers {
		counts[p.Status]++
	}
	return counts, nil
}

func (r *fakeProviderRepo) update(id uuid.UUID, fn func(p *entity.Provider)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.providers[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(p)
	return nil
}

func (r *fakeProviderRepo) UpdateProfile(_ context.Context, provider *entity.Provider) error {
	return r.update(provider.ID, func(p *entity.Provider) {
		status, verified, hash := p.Status, p.EmailVerified, p.PasswordHash
		*p = *provider
		p.Status, p.EmailVerified, p.PasswordHash = status, verified, hash
	})
}

func (r *fakeProviderRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	return r.update(id, func(p *entity.Provider) { p.PasswordHash = hash })
}

func (r *fakeProviderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.ProviderStatus) error {
	return r.update(id, func(p *entity.Provider) { p.Status = status })
}

func (r *fakeProviderRepo) MarkEmailVerified(_ context.Context, id uuid.UUID) error {
	return r.update(id, func(p *entity.Provider) { p.EmailVerified = true })
}

// ==================== ADMIN ====================

type fakeAdminRepo struct{ s *memStore }

func (r *fakeAdminRepo) Create(_ context.Context, a *entity.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.admins {
		if existing.Email == a.Email {
			return repository.ErrDuplicate
		}
	}
	cp := *a
	r.s.admins[a.ID] = &cp
	return nil
}

func (r *fakeAdminRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.admins[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeAdminRepo) FindByEmail(_ context.Context, email string) (*entity.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.admins {
		if strings.EqualFold(a.Email, email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAdminRepo) CountAll(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.admins)), nil
}

func (r *fakeAdminRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.admins[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.PasswordHash = hash
	return nil
}

// ==================== SERVICE & MEDIA ====================

type fakeServiceRepo struct{ s *memStore }

func (r *fakeServiceRepo) WithTx(pgx.Tx) repository.ServiceRepository { return r }

func (r *fakeServiceRepo) Create(_ context.Context, svc *entity.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *svc
	r.s.services[svc.ID] = &cp
	return nil
}

func (r *fakeServiceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if svc, ok := r.s.services[id]; ok {
		cp := *svc
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeServiceRepo) matching(f entity.ServiceFilter) []*entity.Service {
	var out []*entity.Service
	for _, svc := range r.s.services {
		if f.ProviderID != nil && svc.ProviderID != *f.ProviderID {
			continue
		}
		if f.ActiveOnly && !svc.IsActive {
			continue
		}
		if f.ApprovedOnly {
			p, ok := r.s.providers[svc.ProviderID]
			if !ok || p.Status != entity.ProviderStatusApproved {
				continue
			}
		}
		if f.Category != "" && !strings.EqualFold(svc.Category, f.Category) {
			continue
		}
		if f.City != "" && !strings.EqualFold(svc.City, f.City) {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(svc.Title), strings.ToLower(f.Search)) {
			continue
		}
		if f.MinPrice != nil && svc.BasePrice < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && svc.BasePrice > *f.MaxPrice {
			continue
		}
		cp := *svc
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeServiceRepo) FindAll(_ context.Context, f entity.ServiceFilter, limit, offset int) ([]*entity.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.matching(f), limit, offset), nil
}

func (r *fakeServiceRepo) CountAll(_ context.Context, f entity.ServiceFilter) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.matching(f))), nil
}

func (r *fakeServiceRepo) Update(_ context.Context, svc *entity.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.services[svc.ID]
	if !ok || existing.ProviderID != svc.ProviderID {
		return repository.ErrNotFound
	}
	cp := *svc
	cp.RatingAvg, cp.ReviewCount = existing.RatingAvg, existing.ReviewCount
	r.s.services[svc.ID] = &cp
	return nil
}

func (r *fakeServiceRepo) Deactivate(_ context.Context, id, providerID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[id]
	if !ok || svc.ProviderID != providerID {
		return repository.ErrNotFound
	}
	svc.IsActive = false
	return nil
}

func (r *fakeServiceRepo) RecalculateRating(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	svc, ok := r.s.services[id]
	if !ok {
		return repository.ErrNotFound
	}
	sum, n := 0, 0
	for _, rv := range r.s.reviews {
		if rv.ServiceID == id {
			sum += rv.Rating
			n++
		}
	}
	svc.ReviewCount = n
	svc.RatingAvg = 0
	if n > 0 {
		svc.RatingAvg = float64(sum) / float64(n)
	}
	return nil
}

type fakeMediaRepo struct{ s *memStore }

func (r *fakeMediaRepo) Create(_ context.Context, m *entity.Media) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	r.s.media[m.ID] = &cp
	return nil
}

func (r *fakeMediaRepo) FindByServiceID(_ context.Context, serviceID uuid.UUID) ([]*entity.Media, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Media
	for _, m := range r.s.media {
		if m.ServiceID == serviceID {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r *fakeMediaRepo) NextSortOrder(_ context.Context, serviceID uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	next := 0
	for _, m := range r.s.media {
		if m.ServiceID == serviceID && m.SortOrder >= next {
			next = m.SortOrder + 1
		}
	}
	return next, nil
}

func (r *fakeMediaRepo) Delete(_ context.Context, id, serviceID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.media[id]
	if !ok || m.ServiceID != serviceID {
		return repository.ErrNotFound
	}
	delete(r.s.media, id)
	return nil
}

// ==================== BOOKING ====================

type fakeBookingRepo struct{ s *memStore }

func (r *fakeBookingRepo) Create(_ context.Context, b *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.bookings {
		if existing.BookingRef == b.BookingRef {
			return repository.ErrDuplicate
		}
	}
	cp := *b
	r.s.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeBookingRepo) matching(f entity.BookingFilter) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if f.ProviderID != nil && b.ProviderID != *f.ProviderID {
			continue
		}
		if f.CustomerID != nil && b.CustomerID != *f.CustomerID {
			continue
		}
		if f.Status != nil && b.Status != *f.Status {
			continue
		}
		if f.From != nil && b.EventStartDate.Before(*f.From) {
			continue
		}
		if f.To != nil && b.EventStartDate.After(*f.To) {
			continue
		}
		if f.Search != "" {
			haystack := strings.ToLower(b.BookingRef + " " + b.CustomerName + " " + b.ServiceTitle)
			if !strings.Contains(haystack, strings.ToLower(f.Search)) {
				continue
			}
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeBookingRepo) FindAll(_ context.Context, f entity.BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.matching(f), limit, offset), nil
}

func (r *fakeBookingRepo) CountAll(_ context.Context, f entity.BookingFilter) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.matching(f))), nil
}

func (r *fakeBookingRepo) CountByStatus(context.Context) (map[entity.BookingStatus]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[entity.BookingStatus]int{}
	for _, b := range r.s.bookings {
		counts[b.Status]++
	}
	return counts, nil
}

// ApplyStatusChange mirrors the guarded UPDATE ... WHERE status = from.
func (r *fakeBookingRepo) ApplyStatusChange(_ context.Context, change *entity.StatusChange) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[change.BookingID]
	if !ok || b.Status != change.From {
		return repository.ErrStaleStatus
	}
	b.Apply(change)
	return nil
}

// ==================== REVIEW ====================

type fakeReviewRepo struct{ s *memStore }

func (r *fakeReviewRepo) WithTx(pgx.Tx) repository.ReviewRepository { return r }

func (r *fakeReviewRepo) Create(_ context.Context, rv *entity.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.reviews {
		if existing.BookingID == rv.BookingID {
			return repository.ErrDuplicate
		}
	}
	cp := *rv
	r.s.reviews[rv.ID] = &cp
	return nil
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rv, ok := r.s.reviews[id]; ok {
		cp := *rv
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeReviewRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*entity.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rv := range r.s.reviews {
		if rv.BookingID == bookingID {
			cp := *rv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) matching(keep func(*entity.Review) bool) []*entity.ReviewWithAuthor {
	var out []*entity.ReviewWithAuthor
	for _, rv := range r.s.reviews {
		if !keep(rv) {
			continue
		}
		item := &entity.ReviewWithAuthor{Review: *rv}
		if c, ok := r.s.customers[rv.CustomerID]; ok {
			item.CustomerName = c.FullName
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeReviewRepo) FindByServiceID(_ context.Context, serviceID uuid.UUID, limit, offset int) ([]*entity.ReviewWithAuthor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.matching(func(rv *entity.Review) bool { return rv.ServiceID == serviceID }), limit, offset), nil
}

func (r *fakeReviewRepo) CountByServiceID(_ context.Context, serviceID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.matching(func(rv *entity.Review) bool { return rv.ServiceID == serviceID }))), nil
}

func (r *fakeReviewRepo) FindByCustomerID(_ context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.ReviewWithAuthor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.matching(func(rv *entity.Review) bool { return rv.CustomerID == customerID }), limit, offset), nil
}

func (r *fakeReviewRepo) CountByCustomerID(_ context.Context, customerID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.matching(func(rv *entity.Review) bool { return rv.CustomerID == customerID }))), nil
}

func (r *fakeReviewRepo) CountAll(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.reviews)), nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.reviews, id)
	return nil
}

// ==================== TOKENS ====================

type fakeTokenRepo struct{ s *memStore }

func (r *fakeTokenRepo) WithTx(pgx.Tx) repository.TokenRepository { return r }

func (r *fakeTokenRepo) Create(_ context.Context, kind entity.TokenKind, t *entity.SingleUseToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *t
	r.s.tokens[kind][t.TokenHash] = &cp
	return nil
}

func (r *fakeTokenRepo) FindUsable(_ context.Context, kind entity.TokenKind, hash string, now time.Time) (*entity.SingleUseToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[kind][hash]
	if !ok || !t.Usable(now) {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTokenRepo) Consume(_ context.Context, kind entity.TokenKind, hash string, now time.Time) (*entity.SingleUseToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[kind][hash]
	if !ok || !t.Usable(now) {
		return nil, nil
	}
	used := now
	t.UsedAt = &used
	cp := *t
	return &cp, nil
}

func (r *fakeTokenRepo) PurgeExpired(_ context.Context, kind entity.TokenKind, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for hash, t := range r.s.tokens[kind] {
		if !t.Usable(now) {
			delete(r.s.tokens[kind], hash)
			n++
		}
	}
	return n, nil
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu            sync.Mutex
	created       []*entity.Booking
	changes       []*entity.StatusChange
	verifications map[string]string
	resets        map[string]string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{verifications: map[string]string{}, resets: map[string]string{}}
}

func (n *recordingNotifier) BookingCreated(_ context.Context, b *entity.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, b)
}

func (n *recordingNotifier) BookingStatusChanged(_ context.Context, _ *entity.Booking, c *entity.StatusChange) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, c)
}

func (n *recordingNotifier) SendVerification(_ context.Context, a *entity.Account, raw string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.verifications[a.Email] = raw
}

func (n *recordingNotifier) SendPasswordReset(_ context.Context, a *entity.Account, raw string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.resets[a.Email] = raw
}
