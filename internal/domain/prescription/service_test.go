package prescription

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/receita/receita/internal/domain/patient"
	"github.com/receita/receita/internal/domain/user"
	"github.com/receita/receita/internal/render"
)

type mockRepo struct {
	prescriptions map[uuid.UUID]*Prescription
}

func newMockRepo() *mockRepo {
	return &mockRepo{prescriptions: make(map[uuid.UUID]*Prescription)}
}

func (m *mockRepo) Create(ctx context.Context, p *Prescription) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	for i, med := range p.Medications {
		med.ID = uuid.New()
		med.PrescriptionID = p.ID
		med.Position = i
	}
	m.prescriptions[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(ctx context.Context, doctorID, id uuid.UUID) (*Prescription, error) {
	p, ok := m.prescriptions[id]
	if !ok || p.DoctorID != doctorID {
		return nil, ErrNotFound
	}
	return p, nil
}

func (m *mockRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Prescription, int, error) {
	var items []*Prescription
	for _, p := range m.prescriptions {
		if p.DoctorID == doctorID {
			items = append(items, p)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })

	total := len(items)
	if offset >= len(items) {
		return nil, total, nil
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, total, nil
}

func (m *mockRepo) Update(ctx context.Context, p *Prescription) error {
	existing, ok := m.prescriptions[p.ID]
	if !ok || existing.DoctorID != p.DoctorID {
		return ErrNotFound
	}
	p.PatientID = existing.PatientID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	for i, med := range p.Medications {
		med.ID = uuid.New()
		med.PrescriptionID = p.ID
		med.Position = i
	}
	m.prescriptions[p.ID] = p
	return nil
}

type mockPatientRepo struct {
	patients map[uuid.UUID]*patient.Patient
}

func newMockPatientRepo() *mockPatientRepo {
	return &mockPatientRepo{patients: make(map[uuid.UUID]*patient.Patient)}
}

func (m *mockPatientRepo) Create(ctx context.Context, p *patient.Patient) error {
	for _, existing := range m.patients {
		if existing.CPF == p.CPF {
			return patient.ErrDuplicateCPF
		}
	}
	p.ID = uuid.New()
	m.patients[p.ID] = p
	return nil
}

func (m *mockPatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, patient.ErrNotFound
	}
	return p, nil
}

func (m *mockPatientRepo) Search(ctx context.Context, query string, limit, offset int) ([]*patient.Patient, int, error) {
	return nil, 0, nil
}

type mockUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*user.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, u *user.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, p user.Patch) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

// fakeRenderer records the inputs it received.
type fakeRenderer struct {
	inputs []render.Input
	err    error
}

func (f *fakeRenderer) Render(ctx context.Context, in render.Input) (string, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return "", f.err
	}
	return "JVBERi1mYWtl", nil
}

type fixture struct {
	svc      *Service
	repo     *mockRepo
	patients *mockPatientRepo
	users    *mockUserRepo
	renderer *fakeRenderer
	doctor   *user.User
	patient  *patient.Patient
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:     newMockRepo(),
		patients: newMockPatientRepo(),
		users:    newMockUserRepo(),
		renderer: &fakeRenderer{},
	}
	f.doctor = &user.User{Email: "doctor@example.com", Name: "Dr. João Souza", CRM: "CRM/MT 1234"}
	if err := f.users.Create(context.Background(), f.doctor); err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	f.patient = &patient.Patient{Name: "Maria Silva", CPF: "52998224725", Phone: "659"}
	if err := f.patients.Create(context.Background(), f.patient); err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	f.svc = NewService(f.repo, f.patients, f.users, f.renderer, zerolog.Nop())
	return f
}

func medsInput(n int) []MedicationInput {
	var meds []MedicationInput
	for i := 0; i < n; i++ {
		meds = append(meds, MedicationInput{Name: "Dipirona", Dosage: "1g", Quantity: "1 caixa"})
	}
	return meds
}

func TestCreatePrescription(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(context.Background(), f.doctor.ID, CreateRequest{
		PatientID:    &f.patient.ID,
		Type:         TypeSimple,
		Instructions: "Repouso",
		Medications:  medsInput(2),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.PDFBase64 == "" {
		t.Error("expected a rendered document")
	}
	if len(f.renderer.inputs) != 1 {
		t.Fatalf("expected one render, got %d", len(f.renderer.inputs))
	}

	in := f.renderer.inputs[0]
	if in.Type != TypeSimple {
		t.Errorf("render type = %q", in.Type)
	}
	if in.Patient.Name != "Maria Silva" || in.Doctor.CRM != "CRM/MT 1234" {
		t.Error("render input missing patient or doctor identity")
	}
	if len(in.Medications) != 2 {
		t.Errorf("render input has %d medications, want 2", len(in.Medications))
	}

	stored, err := f.repo.GetByID(context.Background(), f.doctor.ID, resp.ID)
	if err != nil {
		t.Fatalf("stored prescription missing: %v", err)
	}
	if len(stored.Medications) != 2 {
		t.Errorf("stored %d medications, want 2", len(stored.Medications))
	}
}

func TestCreatePrescriptionInlinePatient(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(context.Background(), f.doctor.ID, CreateRequest{
		NewPatient:  &patient.CreateRequest{Name: "Novo Paciente", CPF: "11144477735", Phone: "659"},
		Type:        TypeSimple,
		Medications: medsInput(1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := f.repo.GetByID(context.Background(), f.doctor.ID, resp.ID)
	if _, err := f.patients.GetByID(context.Background(), stored.PatientID); err != nil {
		t.Error("inline patient was not registered")
	}
}

func TestCreatePrescriptionValidation(t *testing.T) {
	f := newFixture(t)

	cases := []CreateRequest{
		{PatientID: &f.patient.ID, Type: "other", Medications: medsInput(1)},
		{PatientID: &f.patient.ID, Type: TypeSimple},
		{PatientID: &f.patient.ID, Type: TypeSimple, Medications: []MedicationInput{{Name: "X"}}},
		{Type: TypeSimple, Medications: medsInput(1)},
	}
	for i, req := range cases {
		if _, err := f.svc.Create(context.Background(), f.doctor.ID, req); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
	if len(f.repo.prescriptions) != 0 {
		t.Error("invalid requests must not insert rows")
	}
}

func TestCreatePrescriptionUnknownPatient(t *testing.T) {
	f := newFixture(t)
	missing := uuid.New()

	_, err := f.svc.Create(context.Background(), f.doctor.ID, CreateRequest{
		PatientID:   &missing,
		Type:        TypeSimple,
		Medications: medsInput(1),
	})
	if !errors.Is(err, patient.ErrNotFound) {
		t.Errorf("expected patient.ErrNotFound, got %v", err)
	}
}

func TestCreatePrescriptionRenderFailure(t *testing.T) {
	f := newFixture(t)
	f.renderer.err = errors.New("chrome exploded")

	_, err := f.svc.Create(context.Background(), f.doctor.ID, CreateRequest{
		PatientID:   &f.patient.ID,
		Type:        TypeSpecialControl,
		Medications: medsInput(1),
	})
	if !errors.Is(err, ErrRenderFailed) {
		t.Errorf("expected ErrRenderFailed, got %v", err)
	}
}

func TestGetOwnershipScoped(t *testing.T) {
	f := newFixture(t)
	resp, err := f.svc.Create(context.Background(), f.doctor.ID, CreateRequest{
		PatientID:   &f.patient.ID,
		Type:        TypeSimple,
		Medications: medsInput(1),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := f.svc.Get(context.Background(), uuid.New(), resp.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("foreign prescription must look absent, got %v", err)
	}
	if _, err := f.svc.Get(context.Background(), f.doctor.ID, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing prescription must be not found, got %v", err)
	}
}

func TestUpdateReplacesMedicationSet(t *testing.T) {
	f := newFixture(t)
	resp, err := f.svc.Create(context.Background(), f.doctor.ID, CreateRequest{
		PatientID:   &f.patient.ID,
		Type:        TypeSimple,
		Medications: medsInput(3),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := f.svc.Update(context.Background(), f.doctor.ID, resp.ID, UpdateRequest{
		Type:         TypeSpecialControl,
		Instructions: "Novo texto",
		Medications: []MedicationInput{
			{Name: "Clonazepam", Dosage: "2mg", Quantity: "1 caixa"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Type != TypeSpecialControl {
		t.Errorf("type = %q", updated.Type)
	}

	stored, _ := f.repo.GetByID(context.Background(), f.doctor.ID, resp.ID)
	if len(stored.Medications) != 1 {
		t.Fatalf("expected exactly the new medication set, got %d items", len(stored.Medications))
	}
	if stored.Medications[0].Name != "Clonazepam" {
		t.Errorf("medication = %q", stored.Medications[0].Name)
	}
}

func TestUpdateForeignPrescription(t *testing.T) {
	f := newFixture(t)
	resp, err := f.svc.Create(context.Background(), f.doctor.ID, CreateRequest{
		PatientID:   &f.patient.ID,
		Type:        TypeSimple,
		Medications: medsInput(1),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.svc.Update(context.Background(), uuid.New(), resp.ID, UpdateRequest{
		Type:        TypeSimple,
		Medications: medsInput(1),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRenderPDFReRenders(t *testing.T) {
	f := newFixture(t)
	resp, err := f.svc.Create(context.Background(), f.doctor.ID, CreateRequest{
		PatientID:    &f.patient.ID,
		Type:         TypeSimple,
		Instructions: "Repouso",
		Medications:  medsInput(2),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	again, err := f.svc.RenderPDF(context.Background(), f.doctor.ID, resp.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.PDFBase64 == "" {
		t.Error("expected a rendered document")
	}
	if len(f.renderer.inputs) != 2 {
		t.Fatalf("expected two renders, got %d", len(f.renderer.inputs))
	}

	first, second := f.renderer.inputs[0], f.renderer.inputs[1]
	if first.Type != second.Type || first.Patient != second.Patient || len(first.Medications) != len(second.Medications) {
		t.Error("re-render must use the same logical content")
	}
}

func TestListScopedToDoctor(t *testing.T) {
	f := newFixture(t)
	other := &user.User{Email: "other@example.com", Name: "Dr. Outro", CRM: "CRM/MT 9"}
	if err := f.users.Create(context.Background(), other); err != nil {
		t.Fatalf("seed other doctor: %v", err)
	}

	for _, doc := range []uuid.UUID{f.doctor.ID, f.doctor.ID, other.ID} {
		_, err := f.svc.Create(context.Background(), doc, CreateRequest{
			PatientID:   &f.patient.ID,
			Type:        TypeSimple,
			Medications: medsInput(1),
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	items, total, err := f.svc.List(context.Background(), f.doctor.ID, 50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("expected 2 prescriptions for the caller, got %d of %d", len(items), total)
	}

	page, total, err := f.svc.List(context.Background(), f.doctor.ID, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(page) != 1 {
		t.Errorf("expected a one-item second page of 2, got %d of %d", len(page), total)
	}
}
