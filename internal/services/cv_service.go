package services

import (
	"context"
	"log"
	"time"

	"github.com/justsurfingit/Placement-Tracker/internal/dtos"
	"github.com/justsurfingit/Placement-Tracker/internal/models"
	"github.com/justsurfingit/Placement-Tracker/internal/resume"
	"golang.org/x/sync/errgroup"
)

// StudentReader loads one student with every sub-list.
type StudentReader interface {
	Get(ctx context.Context, id uint) (*models.Student, error)
}

// TestLister loads a student's test passes.
type TestLister interface {
	List(ctx context.Context, studentID uint) ([]models.Test, error)
}

// PhotoSigner issues the preview URL for the CV photo.
type PhotoSigner interface {
	PreviewURL(ctx context.Context, studentID uint, name string) (string, error)
}

// CVService gathers a student's record and test passes and assembles the CV.
type CVService struct {
	Students  StudentReader
	Tests     TestLister
	Rule      *StatusRule
	Documents PhotoSigner // nil when storage is not configured
	Now       func() time.Time
}

func NewCVService(students *StudentService, tests *TestService, rule *StatusRule, docs *DocumentService) *CVService {
	s := &CVService{Students: students, Tests: tests, Rule: rule, Now: time.Now}
	if docs != nil {
		s.Documents = docs
	}
	return s
}

// Build fetches the record and the tests in parallel and merges only once
// both have arrived.
func (s *CVService) Build(ctx context.Context, studentID uint) (*resume.Document, *models.Student, error) {
	var (
		student *models.Student
		tests   []models.Test
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		student, err = s.Students.Get(gctx, studentID)
		return err
	})
	g.Go(func() error {
		var err error
		tests, err = s.Tests.List(gctx, studentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	s.Rule.ObserveTests(studentID, tests)

	photoURL := ""
	if s.Documents != nil && student.Resume != nil && student.Resume.PhotoPath != "" {
		u, err := s.Documents.PreviewURL(ctx, studentID, student.Resume.PhotoPath)
		if err != nil {
			log.Printf("⚠️ [cv] photo url for student %d: %v", studentID, err)
		} else {
			photoURL = u
		}
	}

	quals := resume.MergeAndSortQualifications(CertificatesOf(student), TestPassesOf(tests))
	doc := resume.Assemble(ProfileOf(student, photoURL), quals, s.Now())
	return &doc, student, nil
}

func CertificatesOf(st *models.Student) []resume.Certificate {
	out := make([]resume.Certificate, 0, len(st.Certificates))
	for _, c := range st.Certificates {
		out = append(out, resume.Certificate{Date: c.Date, Name: c.Name})
	}
	return out
}

func TestPassesOf(tests []models.Test) []resume.TestPass {
	out := make([]resume.TestPass, 0, len(tests))
	for _, t := range tests {
		out = append(out, resume.TestPass{PassedDate: t.PassedDate, Type: t.Type, SkillCategory: t.SkillCategory})
	}
	return out
}

// ProfileOf maps a stored student onto the CV input.
func ProfileOf(st *models.Student, photoURL string) resume.Profile {
	p := resume.Profile{
		FirstName:        st.FirstName,
		LastName:         st.LastName,
		PhotoURL:         photoURL,
		DateOfBirth:      st.DateOfBirth,
		Gender:           st.Gender,
		Address:          st.Address,
		Phone:            st.Phone,
		Email:            st.Email,
		Nationality:      st.Nationality,
		Languages:        dtos.SplitLanguages(st.Languages),
		MaritalStatus:    st.MaritalStatus,
		NumberOfChildren: st.NumberOfChildren,
		AvailableFrom:    st.AvailableFrom,
	}
	for _, e := range st.Education {
		p.Education = append(p.Education, resume.Period{StartDate: e.StartDate, EndDate: e.EndDate, Name: e.SchoolName, Detail: e.Major})
	}
	for _, w := range st.WorkExperiences {
		p.Work = append(p.Work, resume.Period{StartDate: w.StartDate, EndDate: w.EndDate, Name: w.CompanyName, Detail: w.JobTitle})
	}
	for _, f := range st.Family {
		p.Family = append(p.Family, resume.FamilyMember{Name: f.Name, Relationship: f.Relationship, Age: f.Age, Occupation: f.Occupation})
	}
	if r := st.Resume; r != nil {
		p.KanaName = r.KanaName
		p.DesiredJobCategory = r.DesiredJobCategory
		p.Height, p.Weight, p.ShoeSize = r.Height, r.Weight, r.ShoeSize
		p.SelfIntroduction = r.SelfIntroduction
		p.Strengths = r.Strengths
		p.Weaknesses = r.Weaknesses
		p.Hobbies = r.Hobbies
	}
	return p
}
