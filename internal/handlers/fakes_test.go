package handlers

import (
	"context"
	"sync"

	"github.com/harentsoaR/nail-salon-api/internal/models"
	"github.com/harentsoaR/nail-salon-api/internal/services"
	"github.com/harentsoaR/nail-salon-api/internal/store"
)

// memStore is an in-memory stand-in for the three store handles.
type memStore struct {
	mu           sync.Mutex
	categories   map[string]models.ServiceCategory
	services     map[string]models.Service
	appointments map[string]models.Appointment
	profiles     map[string]models.Profile
	contact      []models.ContactMessage
	failWith     error
}

func newMemStore() *memStore {
	return &memStore{
		categories:   map[string]models.ServiceCategory{},
		services:     map[string]models.Service{},
		appointments: map[string]models.Appointment{},
		profiles:     map[string]models.Profile{},
	}
}

func (m *memStore) detail(a models.Appointment) models.AppointmentDetail {
	d := models.AppointmentDetail{Appointment: a}
	if svc, ok := m.services[a.ServiceID]; ok {
		sd := &models.ServiceDetail{Service: svc}
		if cat, ok := m.categories[svc.CategoryID]; ok {
			sd.Category = &cat
		}
		d.Service = sd
	}
	return d
}

func (m *memStore) ListServices(_ context.Context, categoryID string) ([]models.ServiceDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := []models.ServiceDetail{}
	for _, s := range m.services {
		if categoryID != "" && s.CategoryID != categoryID {
			continue
		}
		sd := models.ServiceDetail{Service: s}
		if cat, ok := m.categories[s.CategoryID]; ok {
			sd.Category = &cat
		}
		out = append(out, sd)
	}
	return out, nil
}

func (m *memStore) ListCategories(context.Context) ([]models.ServiceCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.ServiceCategory{}
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func (m *memStore) ServiceByID(_ context.Context, id string) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	s, ok := m.services[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &s, nil
}

func (m *memStore) SaveContactMessage(_ context.Context, msg *models.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.ID = "msg-1"
	m.contact = append(m.contact, *msg)
	return nil
}

func (m *memStore) AppointmentDetail(_ context.Context, id string) (*models.AppointmentDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	a, ok := m.appointments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	d := m.detail(a)
	return &d, nil
}

func (m *memStore) CreateProfile(_ context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.profiles {
		if existing.Email == p.Email {
			return store.ErrDuplicate
		}
	}
	if p.ID == "" {
		p.ID = "user-" + p.Email
	}
	m.profiles[p.ID] = *p
	return nil
}

func (m *memStore) ProfileByEmail(_ context.Context, email string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memStore) ProfileByID(_ context.Context, id string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

// userScope mimics store.UserStore: everything is filtered by owner.
type userScope struct {
	m      *memStore
	userID string
}

func (u userScope) CreateAppointment(_ context.Context, apt *models.Appointment) error {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	apt.ID = "apt-new"
	apt.UserID = u.userID
	apt.Status = models.AppointmentScheduled
	u.m.appointments[apt.ID] = *apt
	return nil
}

func (u userScope) ListAppointments(context.Context) ([]models.AppointmentDetail, error) {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	out := []models.AppointmentDetail{}
	for _, a := range u.m.appointments {
		if a.UserID == u.userID {
			out = append(out, u.m.detail(a))
		}
	}
	return out, nil
}

func (u userScope) Profile(context.Context) (*models.Profile, error) {
	u.m.mu.Lock()
	defer u.m.mu.Unlock()
	p, ok := u.m.profiles[u.userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

type fakeNotifier struct {
	mu            sync.Mutex
	confirmations []string
	contacts      int
}

func (f *fakeNotifier) SendAppointmentConfirmation(to string, apt *models.Appointment, _ *models.Service) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmations = append(f.confirmations, to+":"+apt.ID)
}

func (f *fakeNotifier) ForwardContactMessage(*models.ContactMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contacts++
}

type stubMailer struct {
	id   string
	err  error
	sent []services.Email
}

func (s *stubMailer) Send(_ context.Context, e services.Email) (string, error) {
	s.sent = append(s.sent, e)
	return s.id, s.err
}
