package applications

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption-api/internal/domain/pets"
	"pet-adoption-api/internal/ports/auth"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Application

	listByPetIDsCalls int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Application{}}
}

func (r *testRepo) Create(ctx context.Context, a Application) error {
	if a.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	if IsLive(a.Status) {
		for _, other := range r.byID {
			if other.PetID == a.PetID && other.AdopterID == a.AdopterID && IsLive(other.Status) {
				return ErrDuplicate
			}
		}
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Application) error {
	if _, ok := r.byID[a.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Application, error) {
	a, ok := r.byID[id]
	if !ok {
		return Application{}, errRepoNotFound
	}
	return a, nil
}

func (r *testRepo) HasLive(ctx context.Context, petID, adopterID string) (bool, error) {
	for _, a := range r.byID {
		if a.PetID == petID && a.AdopterID == adopterID && IsLive(a.Status) {
			return true, nil
		}
	}
	return false, nil
}

func (r *testRepo) ListByAdopter(ctx context.Context, adopterID string) ([]Application, error) {
	out := make([]Application, 0)
	for _, a := range r.byID {
		if a.AdopterID == adopterID {
			out = append(out, a)
		}
	}
	sortBySubmitted(out)
	return out, nil
}

func (r *testRepo) ListByPetIDs(ctx context.Context, petIDs []string) ([]Application, error) {
	r.listByPetIDsCalls++
	wanted := map[string]struct{}{}
	for _, id := range petIDs {
		wanted[id] = struct{}{}
	}
	out := make([]Application, 0)
	for _, a := range r.byID {
		if _, ok := wanted[a.PetID]; ok {
			out = append(out, a)
		}
	}
	sortBySubmitted(out)
	return out, nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string) ([]Application, error) {
	out := make([]Application, 0)
	for _, a := range r.byID {
		if a.PetID == petID {
			out = append(out, a)
		}
	}
	sortBySubmitted(out)
	return out, nil
}

func (r *testRepo) ListAll(ctx context.Context) ([]Application, error) {
	out := make([]Application, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sortBySubmitted(out)
	return out, nil
}

func sortBySubmitted(items []Application) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && items[j].SubmittedAt.After(items[j-1].SubmittedAt); j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}

// -------------------------
// Fake gate
// -------------------------

type statusChange struct {
	petID  string
	status pets.Status
}

type fakeGate struct {
	pets     map[string]GatePet
	setCalls []statusChange
	setsFail bool
}

func newFakeGate() *fakeGate {
	return &fakeGate{pets: map[string]GatePet{}}
}

func (g *fakeGate) addPet(id, ongID string, status pets.Status) {
	g.pets[id] = GatePet{ID: id, OngID: ongID, Status: status}
}

func (g *fakeGate) Get(ctx context.Context, petID string) (GatePet, error) {
	p, ok := g.pets[petID]
	if !ok {
		return GatePet{}, ErrNotFound
	}
	return p, nil
}

func (g *fakeGate) IDsByOng(ctx context.Context, ongID string) ([]string, error) {
	out := make([]string, 0)
	for _, p := range g.pets {
		if p.OngID == ongID {
			out = append(out, p.ID)
		}
	}
	return out, nil
}

func (g *fakeGate) SetStatus(ctx context.Context, petID string, status pets.Status) error {
	if g.setsFail {
		return errors.New("gate: set status failed")
	}
	g.setCalls = append(g.setCalls, statusChange{petID: petID, status: status})
	p := g.pets[petID]
	p.Status = status
	g.pets[petID] = p
	return nil
}

// -------------------------
// Helpers
// -------------------------

func validQuestionnaire() Questionnaire {
	budget := 250.0
	return Questionnaire{
		FullName:  "María Souza",
		Email:     "maria@example.com",
		Phone:     "+55 11 99999-0000",
		CPF:       "123.456.789-00",
		BirthDate: "1990-04-12",
		Address:   "Rua das Flores 123",
		City:      "São Paulo",
		State:     "SP",
		ZipCode:   "01000-000",

		HousingType:      HousingHouse,
		HousingOwnership: OwnershipOwn,
		HasYard:          true,
		HouseholdSize:    3,
		AllAgree:         true,

		DailyHoursAlone:    "4",
		WhoCaresWhenAway:   "mi hermana",
		FinancialReadiness: ReadinessReady,
		MonthlyBudget:      &budget,

		AdoptionReason:        "compañía para la familia",
		WhatIfMoving:          "nos lo llevamos",
		LongTermCommitment:    true,
		AcceptsFollowUpVisits: true,
	}
}

func newTestService(repo Repository, gate PetGate, policy ApprovalPolicy) *Service {
	svc := NewService(repo, gate, policy)
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	svc.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return svc
}

// -------------------------
// Submit
// -------------------------

func TestService_Submit_CreatesPending(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-1", "ong-1", pets.StatusAvailable)
	svc := newTestService(repo, gate, "")

	a, err := svc.Submit(context.Background(), "adopter-1", "pet-1", validQuestionnaire())
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if a.Status != StatusPending {
		t.Fatalf("expected pending, got %s", a.Status)
	}
	if a.ID == "" || a.SubmittedAt.IsZero() {
		t.Fatalf("expected id and submitted_at set")
	}
	if a.ReviewedAt != nil {
		t.Fatalf("expected reviewed_at nil on submit")
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected 1 row, got %d", len(repo.byID))
	}
}

func TestService_Submit_PetNotFound(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	svc := newTestService(repo, gate, "")

	_, err := svc.Submit(context.Background(), "adopter-1", "missing", validQuestionnaire())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("no row should be created on rejection")
	}
}

func TestService_Submit_PetNotAvailable(t *testing.T) {
	for _, status := range []pets.Status{pets.StatusInProcess, pets.StatusAdopted, pets.StatusUnavailable} {
		repo := newTestRepo()
		gate := newFakeGate()
		gate.addPet("pet-1", "ong-1", status)
		svc := newTestService(repo, gate, "")

		_, err := svc.Submit(context.Background(), "adopter-1", "pet-1", validQuestionnaire())
		if !errors.Is(err, ErrPetNotAvailable) {
			t.Fatalf("status %s: expected ErrPetNotAvailable, got %v", status, err)
		}
		if len(repo.byID) != 0 {
			t.Fatalf("status %s: no row should be created", status)
		}
	}
}

func TestService_Submit_RejectsDuplicateLive(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-1", "ong-1", pets.StatusAvailable)
	svc := newTestService(repo, gate, "")

	if _, err := svc.Submit(context.Background(), "adopter-1", "pet-1", validQuestionnaire()); err != nil {
		t.Fatalf("Submit #1 error: %v", err)
	}
	_, err := svc.Submit(context.Background(), "adopter-1", "pet-1", validQuestionnaire())
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// Otro adoptante sí puede postular al mismo pet.
	if _, err := svc.Submit(context.Background(), "adopter-2", "pet-1", validQuestionnaire()); err != nil {
		t.Fatalf("Submit by another adopter error: %v", err)
	}
}

func TestService_Submit_AllowsResubmitAfterClosed(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-1", "ong-1", pets.StatusAvailable)
	svc := newTestService(repo, gate, "")

	a, err := svc.Submit(context.Background(), "adopter-1", "pet-1", validQuestionnaire())
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	if _, err := svc.Cancel(context.Background(), a.ID, "adopter-1"); err != nil {
		t.Fatalf("Cancel error: %v", err)
	}

	// La cancelada no cuenta: se puede volver a postular.
	if _, err := svc.Submit(context.Background(), "adopter-1", "pet-1", validQuestionnaire()); err != nil {
		t.Fatalf("resubmit after cancel error: %v", err)
	}
}

func TestService_Submit_InvalidQuestionnaire(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-1", "ong-1", pets.StatusAvailable)
	svc := newTestService(repo, gate, "")

	q := validQuestionnaire()
	q.HousingType = "boat"
	if _, err := svc.Submit(context.Background(), "adopter-1", "pet-1", q); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad housing type: expected ErrInvalidInput, got %v", err)
	}

	q = validQuestionnaire()
	q.Email = "not-an-email"
	if _, err := svc.Submit(context.Background(), "adopter-1", "pet-1", q); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad email: expected ErrInvalidInput, got %v", err)
	}

	q = validQuestionnaire()
	q.AdoptionReason = "  "
	if _, err := svc.Submit(context.Background(), "adopter-1", "pet-1", q); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing reason: expected ErrInvalidInput, got %v", err)
	}

	if len(repo.byID) != 0 {
		t.Fatalf("no rows should exist after rejected submits")
	}
}

func TestService_Submit_RepoDetectsRace(t *testing.T) {
	// El chequeo HasLive pasó pero el insert choca con el índice parcial:
	// el ErrDuplicate del repo debe llegar tal cual al caller.
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-1", "ong-1", pets.StatusAvailable)
	svc := newTestService(repo, gate, "")

	repo.byID["race"] = Application{
		ID:        "race",
		PetID:     "pet-1",
		AdopterID: "adopter-1",
		Status:    StatusPending,
	}

	_, err := svc.Submit(context.Background(), "adopter-1", "pet-1", validQuestionnaire())
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate from repo, got %v", err)
	}
}

// -------------------------
// List
// -------------------------

func TestService_List_ByRole(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-a", "ong-1", pets.StatusAvailable)
	gate.addPet("pet-b", "ong-2", pets.StatusAvailable)
	svc := newTestService(repo, gate, "")

	if _, err := svc.Submit(context.Background(), "adopter-1", "pet-a", validQuestionnaire()); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if _, err := svc.Submit(context.Background(), "adopter-1", "pet-b", validQuestionnaire()); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if _, err := svc.Submit(context.Background(), "adopter-2", "pet-a", validQuestionnaire()); err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	mine, err := svc.List(context.Background(), "adopter-1", auth.RoleAdopter)
	if err != nil {
		t.Fatalf("List adopter error: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("adopter: expected 2, got %d", len(mine))
	}
	for _, a := range mine {
		if a.AdopterID != "adopter-1" {
			t.Fatalf("adopter list leaked someone else's application")
		}
	}

	ongList, err := svc.List(context.Background(), "ong-1", auth.RoleOng)
	if err != nil {
		t.Fatalf("List ong error: %v", err)
	}
	if len(ongList) != 2 {
		t.Fatalf("ong: expected 2 (both for pet-a), got %d", len(ongList))
	}
	for _, a := range ongList {
		if a.PetID != "pet-a" {
			t.Fatalf("ong list leaked application for someone else's pet")
		}
	}

	all, err := svc.List(context.Background(), "admin-1", auth.RoleAdmin)
	if err != nil {
		t.Fatalf("List admin error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("admin: expected 3, got %d", len(all))
	}
}

func TestService_List_OrderNewestFirst(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-a", "ong-1", pets.StatusAvailable)
	gate.addPet("pet-b", "ong-1", pets.StatusAvailable)
	svc := newTestService(repo, gate, "")

	first, _ := svc.Submit(context.Background(), "adopter-1", "pet-a", validQuestionnaire())
	second, _ := svc.Submit(context.Background(), "adopter-1", "pet-b", validQuestionnaire())

	got, err := svc.List(context.Background(), "adopter-1", auth.RoleAdopter)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2, got %d", len(got))
	}
	if got[0].ID != second.ID || got[1].ID != first.ID {
		t.Fatalf("expected newest first: got %s then %s", got[0].ID, got[1].ID)
	}
}

func TestService_List_OngWithoutPetsSkipsQuery(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	svc := newTestService(repo, gate, "")

	got, err := svc.List(context.Background(), "ong-empty", auth.RoleOng)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %d", len(got))
	}
	if got == nil {
		t.Fatalf("expected empty slice, not nil")
	}
	if repo.listByPetIDsCalls != 0 {
		t.Fatalf("expected no ListByPetIDs call for ONG without pets")
	}
}

// -------------------------
// GetByID
// -------------------------

func TestService_GetByID_Authorization(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-a", "ong-1", pets.StatusAvailable)
	svc := newTestService(repo, gate, "")

	a, err := svc.Submit(context.Background(), "adopter-1", "pet-a", validQuestionnaire())
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	// dueño
	if _, err := svc.GetByID(context.Background(), a.ID, "adopter-1", auth.RoleAdopter); err != nil {
		t.Fatalf("owner adopter should read: %v", err)
	}
	// otro adoptante
	if _, err := svc.GetByID(context.Background(), a.ID, "adopter-2", auth.RoleAdopter); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other adopter: expected ErrForbidden, got %v", err)
	}
	// ONG dueña del pet
	if _, err := svc.GetByID(context.Background(), a.ID, "ong-1", auth.RoleOng); err != nil {
		t.Fatalf("owner ong should read: %v", err)
	}
	// otra ONG
	if _, err := svc.GetByID(context.Background(), a.ID, "ong-2", auth.RoleOng); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other ong: expected ErrForbidden, got %v", err)
	}
	// admin
	if _, err := svc.GetByID(context.Background(), a.ID, "admin-1", auth.RoleAdmin); err != nil {
		t.Fatalf("admin should read: %v", err)
	}
	// inexistente
	if _, err := svc.GetByID(context.Background(), "missing", "admin-1", auth.RoleAdmin); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing: expected ErrNotFound, got %v", err)
	}
}

// -------------------------
// UpdateStatus
// -------------------------

func TestService_UpdateStatus_OngOwnerOnly(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-a", "ong-1", pets.StatusAvailable)
	svc := newTestService(repo, gate, "")

	a, _ := svc.Submit(context.Background(), "adopter-1", "pet-a", validQuestionnaire())

	// adoptante y admin no transicionan
	if _, err := svc.UpdateStatus(context.Background(), a.ID, "adopter-1", auth.RoleAdopter, StatusApproved, "", ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("adopter: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), a.ID, "admin-1", auth.RoleAdmin, StatusApproved, "", ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin: expected ErrForbidden, got %v", err)
	}
	// ONG que no es dueña
	if _, err := svc.UpdateStatus(context.Background(), a.ID, "ong-2", auth.RoleOng, StatusApproved, "", ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other ong: expected ErrForbidden, got %v", err)
	}

	got, err := svc.UpdateStatus(context.Background(), a.ID, "ong-1", auth.RoleOng, StatusUnderReview, "visita agendada", "")
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if got.Status != StatusUnderReview {
		t.Fatalf("expected under_review, got %s", got.Status)
	}
	if got.ReviewedAt == nil {
		t.Fatalf("expected reviewed_at set")
	}
	if got.OngNotes != "visita agendada" {
		t.Fatalf("expected notes stored, got %q", got.OngNotes)
	}
}

func TestService_UpdateStatus_CancelledNotReachable(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-a", "ong-1", pets.StatusAvailable)
	svc := newTestService(repo, gate, "")

	a, _ := svc.Submit(context.Background(), "adopter-1", "pet-a", validQuestionnaire())

	if _, err := svc.UpdateStatus(context.Background(), a.ID, "ong-1", auth.RoleOng, StatusCancelled, "", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("cancelled via UpdateStatus: expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), a.ID, "ong-1", auth.RoleOng, Status("bogus"), "", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bogus status: expected ErrInvalidInput, got %v", err)
	}
}

func TestService_UpdateStatus_RejectionReasonOnlyWhenRejected(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-a", "ong-1", pets.StatusAvailable)
	svc := newTestService(repo, gate, "")

	a, _ := svc.Submit(context.Background(), "adopter-1", "pet-a", validQuestionnaire())

	// reason ignorado si el estado no es rejected
	got, err := svc.UpdateStatus(context.Background(), a.ID, "ong-1", auth.RoleOng, StatusUnderReview, "", "no aplica")
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if got.RejectionReason != "" {
		t.Fatalf("reason should not be stored for under_review")
	}

	got, err = svc.UpdateStatus(context.Background(), a.ID, "ong-1", auth.RoleOng, StatusRejected, "", "vive muy lejos")
	if err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if got.RejectionReason != "vive muy lejos" {
		t.Fatalf("expected rejection reason stored, got %q", got.RejectionReason)
	}
}

func TestService_UpdateStatus_ApprovalPolicyKeep(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-a", "ong-1", pets.StatusAvailable)
	svc := newTestService(repo, gate, ApprovalKeepsPetStatus)

	a, _ := svc.Submit(context.Background(), "adopter-1", "pet-a", validQuestionnaire())

	if _, err := svc.UpdateStatus(context.Background(), a.ID, "ong-1", auth.RoleOng, StatusApproved, "", ""); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if len(gate.setCalls) != 0 {
		t.Fatalf("keep policy: pet status should not change")
	}
}

func TestService_UpdateStatus_ApprovalPolicyInProcess(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-a", "ong-1", pets.StatusAvailable)
	svc := newTestService(repo, gate, ApprovalMarksInProcess)

	a, _ := svc.Submit(context.Background(), "adopter-1", "pet-a", validQuestionnaire())

	if _, err := svc.UpdateStatus(context.Background(), a.ID, "ong-1", auth.RoleOng, StatusApproved, "", ""); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if len(gate.setCalls) != 1 {
		t.Fatalf("expected one pet status change, got %d", len(gate.setCalls))
	}
	if gate.setCalls[0].petID != "pet-a" || gate.setCalls[0].status != pets.StatusInProcess {
		t.Fatalf("expected pet-a -> in_process, got %+v", gate.setCalls[0])
	}

	// rechazar después no toca el pet
	if _, err := svc.UpdateStatus(context.Background(), a.ID, "ong-1", auth.RoleOng, StatusRejected, "", ""); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}
	if len(gate.setCalls) != 1 {
		t.Fatalf("reject should not change pet status")
	}
}

func TestService_UpdateStatus_ApproveSideEffectFailureSurfaces(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-a", "ong-1", pets.StatusAvailable)
	gate.setsFail = true
	svc := newTestService(repo, gate, ApprovalMarksInProcess)

	a, _ := svc.Submit(context.Background(), "adopter-1", "pet-a", validQuestionnaire())

	if _, err := svc.UpdateStatus(context.Background(), a.ID, "ong-1", auth.RoleOng, StatusApproved, "", ""); err == nil {
		t.Fatalf("expected error when pet status change fails")
	}
	// la candidatura ya quedó approved; el caller ve el error del efecto
	got, err := svc.GetByID(context.Background(), a.ID, "ong-1", auth.RoleOng)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Status != StatusApproved {
		t.Fatalf("expected approved persisted, got %s", got.Status)
	}
}

func TestService_UpdateStatus_BackTransitionAllowed(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-a", "ong-1", pets.StatusAvailable)
	svc := newTestService(repo, gate, "")

	a, _ := svc.Submit(context.Background(), "adopter-1", "pet-a", validQuestionnaire())

	if _, err := svc.UpdateStatus(context.Background(), a.ID, "ong-1", auth.RoleOng, StatusApproved, "", ""); err != nil {
		t.Fatalf("approve error: %v", err)
	}
	got, err := svc.UpdateStatus(context.Background(), a.ID, "ong-1", auth.RoleOng, StatusPending, "", "")
	if err != nil {
		t.Fatalf("back-transition error: %v", err)
	}
	if got.Status != StatusPending {
		t.Fatalf("expected pending after back-transition, got %s", got.Status)
	}
}

// -------------------------
// Cancel
// -------------------------

func TestService_Cancel_OwnerOnly(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-a", "ong-1", pets.StatusAvailable)
	svc := newTestService(repo, gate, "")

	a, _ := svc.Submit(context.Background(), "adopter-1", "pet-a", validQuestionnaire())

	if _, err := svc.Cancel(context.Background(), a.ID, "adopter-2"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other adopter: expected ErrForbidden, got %v", err)
	}

	got, err := svc.Cancel(context.Background(), a.ID, "adopter-1")
	if err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if got.Status != StatusCancelled {
		t.Fatalf("expected cancelled, got %s", got.Status)
	}
}

func TestService_Cancel_ApprovedForbidden(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-a", "ong-1", pets.StatusAvailable)
	svc := newTestService(repo, gate, "")

	a, _ := svc.Submit(context.Background(), "adopter-1", "pet-a", validQuestionnaire())
	if _, err := svc.UpdateStatus(context.Background(), a.ID, "ong-1", auth.RoleOng, StatusApproved, "", ""); err != nil {
		t.Fatalf("approve error: %v", err)
	}

	if _, err := svc.Cancel(context.Background(), a.ID, "adopter-1"); !errors.Is(err, ErrBadState) {
		t.Fatalf("cancel approved: expected ErrBadState, got %v", err)
	}
}

func TestService_Cancel_IdempotentOnClosed(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-a", "ong-1", pets.StatusAvailable)
	svc := newTestService(repo, gate, "")

	a, _ := svc.Submit(context.Background(), "adopter-1", "pet-a", validQuestionnaire())
	if _, err := svc.UpdateStatus(context.Background(), a.ID, "ong-1", auth.RoleOng, StatusRejected, "", "no"); err != nil {
		t.Fatalf("reject error: %v", err)
	}

	// cancelar una rejected la deja cancelled
	got, err := svc.Cancel(context.Background(), a.ID, "adopter-1")
	if err != nil {
		t.Fatalf("Cancel rejected error: %v", err)
	}
	if got.Status != StatusCancelled {
		t.Fatalf("expected cancelled, got %s", got.Status)
	}

	// y cancelar de nuevo es no-op
	got, err = svc.Cancel(context.Background(), a.ID, "adopter-1")
	if err != nil {
		t.Fatalf("Cancel twice error: %v", err)
	}
	if got.Status != StatusCancelled {
		t.Fatalf("expected cancelled after second cancel, got %s", got.Status)
	}
}

// -------------------------
// Stats
// -------------------------

func TestService_StatsByPet_PartitionsByStatus(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-a", "ong-1", pets.StatusAvailable)
	svc := newTestService(repo, gate, "")

	a1, _ := svc.Submit(context.Background(), "adopter-1", "pet-a", validQuestionnaire())
	a2, _ := svc.Submit(context.Background(), "adopter-2", "pet-a", validQuestionnaire())
	a3, _ := svc.Submit(context.Background(), "adopter-3", "pet-a", validQuestionnaire())

	if _, err := svc.UpdateStatus(context.Background(), a1.ID, "ong-1", auth.RoleOng, StatusUnderReview, "", ""); err != nil {
		t.Fatalf("review error: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), a2.ID, "ong-1", auth.RoleOng, StatusRejected, "", "x"); err != nil {
		t.Fatalf("reject error: %v", err)
	}
	if _, err := svc.Cancel(context.Background(), a3.ID, "adopter-3"); err != nil {
		t.Fatalf("cancel error: %v", err)
	}

	c, err := svc.StatsByPet(context.Background(), "pet-a", "ong-1", auth.RoleOng)
	if err != nil {
		t.Fatalf("StatsByPet error: %v", err)
	}
	if c.Total != 3 {
		t.Fatalf("expected total 3, got %d", c.Total)
	}
	if c.UnderReview != 1 || c.Rejected != 1 || c.Cancelled != 1 || c.Pending != 0 || c.Approved != 0 {
		t.Fatalf("bad partition: %+v", c)
	}
	if c.Pending+c.UnderReview+c.Approved+c.Rejected+c.Cancelled != c.Total {
		t.Fatalf("counters must sum to total: %+v", c)
	}
}

func TestService_StatsByPet_OngRoleOnly(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-a", "ong-1", pets.StatusAvailable)
	svc := newTestService(repo, gate, "")

	if _, err := svc.StatsByPet(context.Background(), "pet-a", "adopter-1", auth.RoleAdopter); !errors.Is(err, ErrForbidden) {
		t.Fatalf("adopter: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.StatsByPet(context.Background(), "pet-a", "admin-1", auth.RoleAdmin); !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.StatsByPet(context.Background(), "missing", "ong-1", auth.RoleOng); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing pet: expected ErrNotFound, got %v", err)
	}
}

func TestService_StatsByOng_Aggregates(t *testing.T) {
	repo := newTestRepo()
	gate := newFakeGate()
	gate.addPet("pet-a", "ong-1", pets.StatusAvailable)
	gate.addPet("pet-b", "ong-1", pets.StatusAvailable)
	gate.addPet("pet-x", "ong-2", pets.StatusAvailable)
	svc := newTestService(repo, gate, "")

	a1, _ := svc.Submit(context.Background(), "adopter-1", "pet-a", validQuestionnaire())
	if _, err := svc.Submit(context.Background(), "adopter-1", "pet-b", validQuestionnaire()); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if _, err := svc.Submit(context.Background(), "adopter-1", "pet-x", validQuestionnaire()); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), a1.ID, "ong-1", auth.RoleOng, StatusApproved, "", ""); err != nil {
		t.Fatalf("approve error: %v", err)
	}

	c, err := svc.StatsByOng(context.Background(), "ong-1")
	if err != nil {
		t.Fatalf("StatsByOng error: %v", err)
	}
	if c.Total != 2 {
		t.Fatalf("expected total 2 (pet-x excluded), got %d", c.Total)
	}
	if c.Approved != 1 || c.Pending != 1 {
		t.Fatalf("bad counters: %+v", c)
	}

	empty, err := svc.StatsByOng(context.Background(), "ong-empty")
	if err != nil {
		t.Fatalf("StatsByOng empty error: %v", err)
	}
	if empty.Total != 0 {
		t.Fatalf("expected zero stats for ONG without pets, got %+v", empty)
	}
}
