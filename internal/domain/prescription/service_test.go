package prescription

import (
	"context"
	"errors"
	"testing"

	"github.com/medrest/medrest/pkg/apperr"
)

// -- Mock Repository --

type mockRepo struct {
	prescriptions map[int64]*Prescription
	nextID        int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{prescriptions: make(map[int64]*Prescription)}
}

func (m *mockRepo) Create(_ context.Context, pr *Prescription) error {
	m.nextID++
	pr.ID = m.nextID
	cp := *pr
	m.prescriptions[pr.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Prescription, error) {
	pr, ok := m.prescriptions[id]
	if !ok {
		return nil, nil
	}
	cp := *pr
	return &cp, nil
}

func (m *mockRepo) List(_ context.Context) ([]*Prescription, error) {
	var result []*Prescription
	for _, pr := range m.prescriptions {
		result = append(result, pr)
	}
	return result, nil
}

func (m *mockRepo) Update(_ context.Context, pr *Prescription) error {
	cp := *pr
	m.prescriptions[pr.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	delete(m.prescriptions, id)
	return nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo, nil), repo
}

// -- Tests --

func TestService_CreateAndGet(t *testing.T) {
	svc, _ := newTestService()

	price := 35
	pr, err := svc.Create(context.Background(), &Prescription{MedicamentName: "Augmentin", Price: &price, AmountToTake: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pr.ID == 0 {
		t.Fatal("expected an assigned id")
	}

	got, err := svc.Get(context.Background(), pr.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MedicamentName != "Augmentin" || *got.Price != 35 || got.AmountToTake != 1 {
		t.Errorf("stored prescription differs from input: %+v", got)
	}
}

func TestService_CreateNil(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), nil)
	var invalid *apperr.InvalidInputError
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidInputError, got %v", err)
	}
}

func TestService_ListEmpty(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.List(context.Background())
	var notFound *apperr.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError for empty collection, got %v", err)
	}
}

func TestService_GetAbsent(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Get(context.Background(), 42)
	var notFound *apperr.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
	if notFound.Kind != "prescription" {
		t.Errorf("expected kind prescription, got %s", notFound.Kind)
	}
}

func TestService_PatchPriceOnly(t *testing.T) {
	svc, repo := newTestService()

	pr, _ := svc.Create(context.Background(), &Prescription{MedicamentName: "Augmentin", AmountToTake: 1})

	price := 40
	ok, err := svc.Patch(context.Background(), pr.ID, &Patch{Price: &price})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected patch to succeed")
	}

	stored := repo.prescriptions[pr.ID]
	if stored.Price == nil || *stored.Price != 40 {
		t.Errorf("patch not applied: %+v", stored)
	}
	if stored.MedicamentName != "Augmentin" || stored.AmountToTake != 1 {
		t.Errorf("patch changed unspecified fields: %+v", stored)
	}
}

func TestService_UpdateAbsent(t *testing.T) {
	svc, _ := newTestService()

	ok, err := svc.Update(context.Background(), 42, &Prescription{MedicamentName: "Augmentin", AmountToTake: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected false for absent id")
	}
}

func TestService_DeleteThenGet(t *testing.T) {
	svc, _ := newTestService()

	pr, _ := svc.Create(context.Background(), &Prescription{MedicamentName: "Augmentin", AmountToTake: 1})

	ok, err := svc.Delete(context.Background(), pr.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected delete to succeed")
	}

	if _, err := svc.Get(context.Background(), pr.ID); err == nil {
		t.Error("expected not found after delete")
	}
}
