package patient

import (
	"context"
	"errors"
	"testing"

	"github.com/medrest/medrest/internal/domain/doctor"
	"github.com/medrest/medrest/internal/domain/prescription"
	"github.com/medrest/medrest/pkg/apperr"
)

// -- Mock Repository --

type mockRepo struct {
	patients      map[int64]*Patient
	doctors       map[int64]*doctor.Doctor
	prescriptions map[int64]*prescription.Prescription
	doctorSets    map[int64][]int64
	rxSets        map[int64][]int64
	nextID        int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		patients:      make(map[int64]*Patient),
		doctors:       make(map[int64]*doctor.Doctor),
		prescriptions: make(map[int64]*prescription.Prescription),
		doctorSets:    make(map[int64][]int64),
		rxSets:        make(map[int64][]int64),
	}
}

func (m *mockRepo) Create(_ context.Context, pt *Patient) error {
	m.nextID++
	pt.ID = m.nextID
	cp := *pt
	m.patients[pt.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Patient, error) {
	pt, ok := m.patients[id]
	if !ok {
		return nil, nil
	}
	cp := *pt
	return &cp, nil
}

func (m *mockRepo) List(_ context.Context) ([]*Patient, error) {
	var result []*Patient
	for _, pt := range m.patients {
		result = append(result, pt)
	}
	return result, nil
}

func (m *mockRepo) Update(_ context.Context, pt *Patient) error {
	cp := *pt
	m.patients[pt.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	delete(m.patients, id)
	delete(m.doctorSets, id)
	delete(m.rxSets, id)
	return nil
}

func (m *mockRepo) AddDoctor(_ context.Context, patientID, doctorID int64) error {
	for _, did := range m.doctorSets[patientID] {
		if did == doctorID {
			return nil
		}
	}
	m.doctorSets[patientID] = append(m.doctorSets[patientID], doctorID)
	return nil
}

func (m *mockRepo) RemoveDoctor(_ context.Context, patientID, doctorID int64) error {
	set := m.doctorSets[patientID]
	for i, did := range set {
		if did == doctorID {
			m.doctorSets[patientID] = append(set[:i], set[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockRepo) SetDoctors(_ context.Context, patientID int64, doctorIDs []int64) error {
	m.doctorSets[patientID] = append([]int64(nil), doctorIDs...)
	return nil
}

func (m *mockRepo) ListDoctors(_ context.Context, patientID int64) ([]*doctor.Doctor, error) {
	var docs []*doctor.Doctor
	for _, did := range m.doctorSets[patientID] {
		if d, ok := m.doctors[did]; ok {
			docs = append(docs, d)
		}
	}
	return docs, nil
}

func (m *mockRepo) AddPrescription(_ context.Context, patientID, prescriptionID int64) error {
	for _, prid := range m.rxSets[patientID] {
		if prid == prescriptionID {
			return nil
		}
	}
	m.rxSets[patientID] = append(m.rxSets[patientID], prescriptionID)
	return nil
}

func (m *mockRepo) RemovePrescription(_ context.Context, patientID, prescriptionID int64) error {
	set := m.rxSets[patientID]
	for i, prid := range set {
		if prid == prescriptionID {
			m.rxSets[patientID] = append(set[:i], set[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockRepo) SetPrescriptions(_ context.Context, patientID int64, prescriptionIDs []int64) error {
	m.rxSets[patientID] = append([]int64(nil), prescriptionIDs...)
	return nil
}

func (m *mockRepo) ListPrescriptions(_ context.Context, patientID int64) ([]*prescription.Prescription, error) {
	var prs []*prescription.Prescription
	for _, prid := range m.rxSets[patientID] {
		if p, ok := m.prescriptions[prid]; ok {
			prs = append(prs, p)
		}
	}
	return prs, nil
}

// Checkers backed by the same mock catalogs.

type mockDoctorChecker struct{ repo *mockRepo }

func (m *mockDoctorChecker) Exists(_ context.Context, id int64) error {
	if _, ok := m.repo.doctors[id]; !ok {
		return apperr.NewNotFound("doctor")
	}
	return nil
}

type mockPrescriptionChecker struct{ repo *mockRepo }

func (m *mockPrescriptionChecker) Exists(_ context.Context, id int64) error {
	if _, ok := m.repo.prescriptions[id]; !ok {
		return apperr.NewNotFound("prescription")
	}
	return nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	svc := NewService(repo, nil, &mockDoctorChecker{repo}, &mockPrescriptionChecker{repo})
	return svc, repo
}

// -- Tests --

func TestService_CreateAndGet(t *testing.T) {
	svc, _ := newTestService()

	pt, err := svc.Create(context.Background(), &Patient{
		FirstName:   "Maria",
		LastName:    "Ionescu",
		PhoneNumber: "0712345678",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pt.ID == 0 {
		t.Fatal("expected an assigned id")
	}

	got, err := svc.Get(context.Background(), pt.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.FirstName != "Maria" || got.LastName != "Ionescu" || got.PhoneNumber != "0712345678" {
		t.Errorf("stored patient differs from input: %+v", got)
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

func TestService_GetAbsent(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Get(context.Background(), 42)
	var notFound *apperr.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
	if notFound.Kind != "patient" {
		t.Errorf("expected kind patient, got %s", notFound.Kind)
	}
}

func TestService_AddDoctorAndList(t *testing.T) {
	svc, repo := newTestService()

	pt, _ := svc.Create(context.Background(), &Patient{FirstName: "Maria", LastName: "Ionescu", PhoneNumber: "0712"})
	repo.doctors[7] = &doctor.Doctor{ID: 7, Name: "Popescu"}

	if err := svc.AddDoctor(context.Background(), pt.ID, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	docs, err := svc.Doctors(context.Background(), pt.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != 7 {
		t.Errorf("expected exactly doctor 7, got %v", docs)
	}
}

func TestService_AddDoctorTwiceIsIdempotent(t *testing.T) {
	svc, repo := newTestService()

	pt, _ := svc.Create(context.Background(), &Patient{FirstName: "Maria", LastName: "Ionescu", PhoneNumber: "0712"})
	repo.doctors[7] = &doctor.Doctor{ID: 7, Name: "Popescu"}

	if err := svc.AddDoctor(context.Background(), pt.ID, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.AddDoctor(context.Background(), pt.ID, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	docs, _ := svc.Doctors(context.Background(), pt.ID)
	if len(docs) != 1 {
		t.Errorf("expected one appointment, got %d", len(docs))
	}
}

func TestService_AddDoctor_UnknownDoctor(t *testing.T) {
	svc, _ := newTestService()

	pt, _ := svc.Create(context.Background(), &Patient{FirstName: "Maria", LastName: "Ionescu", PhoneNumber: "0712"})

	err := svc.AddDoctor(context.Background(), pt.ID, 7)
	var notFound *apperr.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Kind != "doctor" {
		t.Errorf("expected kind doctor, got %s", notFound.Kind)
	}
}

func TestService_AddDoctor_UnknownPatient(t *testing.T) {
	svc, repo := newTestService()

	repo.doctors[7] = &doctor.Doctor{ID: 7, Name: "Popescu"}

	err := svc.AddDoctor(context.Background(), 42, 7)
	var notFound *apperr.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Kind != "patient" {
		t.Errorf("expected kind patient, got %s", notFound.Kind)
	}
}

func TestService_RemoveDoctor(t *testing.T) {
	svc, repo := newTestService()

	pt, _ := svc.Create(context.Background(), &Patient{FirstName: "Maria", LastName: "Ionescu", PhoneNumber: "0712"})
	repo.doctors[7] = &doctor.Doctor{ID: 7, Name: "Popescu"}

	if err := svc.AddDoctor(context.Background(), pt.ID, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.RemoveDoctor(context.Background(), pt.ID, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	docs, _ := svc.Doctors(context.Background(), pt.ID)
	if len(docs) != 0 {
		t.Errorf("expected no appointments after removal, got %v", docs)
	}
}

func TestService_AddPrescriptionAndList(t *testing.T) {
	svc, repo := newTestService()

	pt, _ := svc.Create(context.Background(), &Patient{FirstName: "Maria", LastName: "Ionescu", PhoneNumber: "0712"})
	price := 35
	repo.prescriptions[3] = &prescription.Prescription{ID: 3, MedicamentName: "Augmentin", Price: &price, AmountToTake: 1}

	if err := svc.AddPrescription(context.Background(), pt.ID, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prs, err := svc.Prescriptions(context.Background(), pt.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prs) != 1 || prs[0].MedicamentName != "Augmentin" {
		t.Errorf("expected exactly the Augmentin prescription, got %v", prs)
	}
}

func TestService_Prescriptions_UnknownPatient(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Prescriptions(context.Background(), 42)
	var notFound *apperr.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestService_PatchReplacesSetsWhenNonEmpty(t *testing.T) {
	svc, repo := newTestService()

	pt, _ := svc.Create(context.Background(), &Patient{FirstName: "Maria", LastName: "Ionescu", PhoneNumber: "0712"})
	repo.doctorSets[pt.ID] = []int64{1, 2}
	repo.rxSets[pt.ID] = []int64{3}

	ok, err := svc.Patch(context.Background(), pt.ID, &Patch{DoctorIDs: []int64{9}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected patch to succeed")
	}

	if got := repo.doctorSets[pt.ID]; len(got) != 1 || got[0] != 9 {
		t.Errorf("doctor set not replaced: %v", got)
	}
	// The untouched prescription set survives.
	if got := repo.rxSets[pt.ID]; len(got) != 1 || got[0] != 3 {
		t.Errorf("prescription set must be untouched: %v", got)
	}
}

func TestService_PatchEmptySetsCannotClear(t *testing.T) {
	svc, repo := newTestService()

	pt, _ := svc.Create(context.Background(), &Patient{FirstName: "Maria", LastName: "Ionescu", PhoneNumber: "0712"})
	repo.doctorSets[pt.ID] = []int64{1, 2}

	ok, err := svc.Patch(context.Background(), pt.ID, &Patch{DoctorIDs: []int64{}, PrescriptionIDs: []int64{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected patch to succeed")
	}

	if got := repo.doctorSets[pt.ID]; len(got) != 2 {
		t.Errorf("empty patch list must leave the doctor set untouched: %v", got)
	}
}

func TestService_DeleteRemovesAssociations(t *testing.T) {
	svc, repo := newTestService()

	pt, _ := svc.Create(context.Background(), &Patient{FirstName: "Maria", LastName: "Ionescu", PhoneNumber: "0712"})
	repo.doctorSets[pt.ID] = []int64{1}
	repo.rxSets[pt.ID] = []int64{3}

	ok, err := svc.Delete(context.Background(), pt.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected delete to succeed")
	}

	if _, err := svc.Get(context.Background(), pt.ID); err == nil {
		t.Error("expected not found after delete")
	}
	if len(repo.doctorSets[pt.ID]) != 0 || len(repo.rxSets[pt.ID]) != 0 {
		t.Error("expected association sets to be removed with the patient")
	}
}
