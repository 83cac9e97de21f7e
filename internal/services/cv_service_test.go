package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/justsurfingit/Placement-Tracker/internal/models"
	"github.com/justsurfingit/Placement-Tracker/internal/resume"
)

func sp(s string) *string { return &s }

func TestProfileOfMapsRecord(t *testing.T) {
	dob := time.Date(1999, 2, 3, 0, 0, 0, 0, time.UTC)
	h := 170.0
	st := &models.Student{
		FirstName:        "Ram",
		LastName:         "Thapa",
		DateOfBirth:      &dob,
		Languages:        "Nepali, Japanese,,English",
		NumberOfChildren: 1,
		Education:        []models.Education{{SchoolName: "Pokhara College", Major: "Commerce", StartDate: sp("2015-04"), EndDate: sp("2018-03")}},
		WorkExperiences:  []models.WorkExperience{{CompanyName: "Hotel Annapurna", JobTitle: "Cook", StartDate: sp("2019-01")}},
		Family:           []models.FamilyMember{{Name: "Hari", Relationship: "Father"}},
		Certificates:     []models.Certificate{{Date: "2020-05", Name: "Food hygiene"}},
		Resume:           &models.Resume{KanaName: "ラム タパ", Height: &h, DesiredJobCategory: "外食業"},
	}

	p := ProfileOf(st, "https://photo")
	if p.PhotoURL != "https://photo" || p.KanaName != "ラム タパ" || p.DesiredJobCategory != "外食業" {
		t.Fatalf("profile = %+v", p)
	}
	if len(p.Languages) != 3 {
		t.Fatalf("languages = %v", p.Languages)
	}
	if len(p.Education) != 1 || p.Education[0].Name != "Pokhara College" || *p.Education[0].EndDate != "2018-03" {
		t.Fatalf("education = %+v", p.Education)
	}
	if p.Work[0].EndDate != nil {
		t.Fatal("missing end date should stay nil")
	}

	doc := resume.Assemble(p, resume.MergeAndSortQualifications(CertificatesOf(st), TestPassesOf([]models.Test{
		{Type: resume.TestTypeSkill, SkillCategory: "外食業", PassedDate: "2021-08-15"},
	})), time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC))

	if *doc.Header.Age != 24 {
		t.Errorf("age = %d", *doc.Header.Age)
	}
	if doc.Work[0].Date != (resume.DisplayDate{Year: "2019", Month: "01"}) {
		t.Errorf("work date = %+v", doc.Work[0].Date)
	}
	if len(doc.Qualifications) != 2 || doc.Qualifications[0].Name != "外食業技能評価試験 (NEPALESE) 合格" {
		t.Errorf("qualifications = %+v", doc.Qualifications)
	}
	if doc.Physical.Height != "170 cm" {
		t.Errorf("height = %q", doc.Physical.Height)
	}
}

func TestProfileOfWithoutResume(t *testing.T) {
	p := ProfileOf(&models.Student{FirstName: "X"}, "")
	if p.Height != nil || p.KanaName != "" {
		t.Fatalf("profile = %+v", p)
	}
}

type fakeStudentReader struct {
	st   *models.Student
	err  error
	wait <-chan struct{} // when set, Get blocks until the tests fetch has started
}

func (f *fakeStudentReader) Get(ctx context.Context, id uint) (*models.Student, error) {
	if f.wait != nil {
		select {
		case <-f.wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.st, nil
}

type fakeTestLister struct {
	tests   []models.Test
	err     error
	started chan struct{}
}

func (f *fakeTestLister) List(context.Context, uint) ([]models.Test, error) {
	if f.started != nil {
		close(f.started)
	}
	return f.tests, f.err
}

type fakePhotoSigner struct {
	url string
	err error
}

func (f fakePhotoSigner) PreviewURL(_ context.Context, id uint, name string) (string, error) {
	return f.url, f.err
}

func cvFixture() (*models.Student, []models.Test) {
	st := &models.Student{
		ID:           1,
		FirstName:    "Ram",
		LastName:     "Thapa",
		Certificates: []models.Certificate{{Date: "2022-03", Name: "JLPT N4"}},
		Resume:       &models.Resume{PhotoPath: "photo.jpg"},
	}
	tests := []models.Test{{StudentID: 1, Type: "skill", SkillCategory: "介護", PassedDate: "2023-05"}}
	return st, tests
}

func newTestCV(students StudentReader, tests TestLister, docs PhotoSigner, store *fakeStatusStore) *CVService {
	return &CVService{
		Students:  students,
		Tests:     tests,
		Rule:      NewStatusRule(store),
		Documents: docs,
		Now:       func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func TestBuildFetchesConcurrentlyAndMergesBoth(t *testing.T) {
	st, tests := cvFixture()
	started := make(chan struct{})
	store := &fakeStatusStore{status: map[uint]string{1: models.StatusStudying}}
	cv := newTestCV(
		&fakeStudentReader{st: st, wait: started},
		&fakeTestLister{tests: tests, started: started},
		fakePhotoSigner{url: "https://oss.example/photo.jpg?sig"},
		store,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	doc, got, err := cv.Build(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	cv.Rule.Wait()

	if got != st {
		t.Error("Build should return the loaded student")
	}
	if len(doc.Qualifications) != 2 {
		t.Fatalf("qualifications = %+v", doc.Qualifications)
	}
	if doc.Qualifications[0].Name != "介護技能評価試験 (NEPALESE) 合格" || doc.Qualifications[1].Name != "JLPT N4" {
		t.Errorf("order = %q, %q", doc.Qualifications[0].Name, doc.Qualifications[1].Name)
	}
	if doc.Header.PhotoURL != "https://oss.example/photo.jpg?sig" {
		t.Errorf("photo = %q", doc.Header.PhotoURL)
	}
	if store.status[1] != models.StatusInterviewEligible {
		t.Errorf("skill pass not observed, status = %q", store.status[1])
	}
}

func TestBuildFailsWhenEitherFetchFails(t *testing.T) {
	st, tests := cvFixture()
	boom := errors.New("db down")
	cases := []struct {
		name     string
		students *fakeStudentReader
		tests    *fakeTestLister
	}{
		{"student", &fakeStudentReader{err: boom}, &fakeTestLister{tests: tests}},
		{"tests", &fakeStudentReader{st: st}, &fakeTestLister{err: boom}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStatusStore{status: map[uint]string{1: models.StatusStudying}}
			cv := newTestCV(tc.students, tc.tests, nil, store)
			doc, _, err := cv.Build(context.Background(), 1)
			cv.Rule.Wait()
			if !errors.Is(err, boom) || doc != nil {
				t.Fatalf("doc=%v err=%v", doc, err)
			}
			if len(store.events) != 0 {
				t.Errorf("status moved on a failed build: %v", store.events)
			}
		})
	}
}

func TestBuildKeepsGoingWithoutPhoto(t *testing.T) {
	st, tests := cvFixture()
	store := &fakeStatusStore{status: map[uint]string{1: models.StatusStudying}}
	cv := newTestCV(&fakeStudentReader{st: st}, &fakeTestLister{tests: tests}, fakePhotoSigner{err: errors.New("signing failed")}, store)

	doc, _, err := cv.Build(context.Background(), 1)
	cv.Rule.Wait()
	if err != nil {
		t.Fatal(err)
	}
	if doc.Header.PhotoURL != "" || len(doc.Qualifications) != 2 {
		t.Fatalf("photo=%q qualifications=%d", doc.Header.PhotoURL, len(doc.Qualifications))
	}
}
