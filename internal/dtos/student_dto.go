package dtos

import (
	"strings"
	"time"

	"github.com/justsurfingit/Placement-Tracker/internal/models"
)

// StudentRequest is the registration / edit form payload.
type StudentRequest struct {
	UserID *uint `json:"user_id"`

	FirstName        string   `json:"first_name" validate:"required,max=80"`
	LastName         string   `json:"last_name" validate:"required,max=80"`
	Gender           string   `json:"gender" validate:"required,oneof=male female other"`
	DateOfBirth      string   `json:"date_of_birth" validate:"required,fulldate"`
	Address          string   `json:"address"`
	Phone            string   `json:"phone" validate:"omitempty,phone"`
	Email            string   `json:"email" validate:"omitempty,email"`
	Nationality      string   `json:"nationality" validate:"required"`
	Languages        []string `json:"languages"`
	MaritalStatus    string   `json:"marital_status" validate:"omitempty,oneof=single married divorced widowed"`
	NumberOfChildren int      `json:"number_of_children" validate:"min=0"`
	AvailableFrom    string   `json:"available_from" validate:"omitempty,partialdate"`
	Status           string   `json:"status" validate:"omitempty,oneof=registered studying interview_eligible offered departed withdrawn"`

	Family          []FamilyMemberRequest `json:"family" validate:"dive"`
	Education       []EducationRequest    `json:"education" validate:"dive"`
	WorkExperiences []WorkRequest         `json:"work_experiences" validate:"dive"`
	Certificates    []CertificateRequest  `json:"certificates" validate:"dive"`
	Resume          ResumeRequest         `json:"resume"`
}

type FamilyMemberRequest struct {
	Name         string `json:"name" validate:"required"`
	Relationship string `json:"relationship" validate:"required"`
	Age          *int   `json:"age" validate:"omitempty,min=0"`
	Occupation   string `json:"occupation"`
}

type EducationRequest struct {
	SchoolName string  `json:"school_name" validate:"required"`
	Major      string  `json:"major"`
	StartDate  *string `json:"start_date" validate:"omitempty,perioddate"`
	EndDate    *string `json:"end_date" validate:"omitempty,perioddate"`
}

type WorkRequest struct {
	CompanyName string  `json:"company_name" validate:"required"`
	JobTitle    string  `json:"job_title"`
	StartDate   *string `json:"start_date" validate:"omitempty,perioddate"`
	EndDate     *string `json:"end_date" validate:"omitempty,perioddate"`
}

type CertificateRequest struct {
	Date string `json:"date" validate:"omitempty,partialdate"`
	Name string `json:"name" validate:"required"`
}

type ResumeRequest struct {
	KanaName           string   `json:"kana_name"`
	Height             *float64 `json:"height" validate:"omitempty,min=0"`
	Weight             *float64 `json:"weight" validate:"omitempty,min=0"`
	ShoeSize           *float64 `json:"shoe_size" validate:"omitempty,min=0"`
	SelfIntroduction   string   `json:"self_introduction"`
	Strengths          string   `json:"strengths"`
	Weaknesses         string   `json:"weaknesses"`
	Hobbies            string   `json:"hobbies"`
	DesiredJobCategory string   `json:"desired_job_category"`
	PhotoPath          string   `json:"photo_path"`
}

func (r *StudentRequest) Normalize() {
	r.FirstName = strings.Join(strings.Fields(r.FirstName), " ")
	r.LastName = strings.Join(strings.Fields(r.LastName), " ")
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.DateOfBirth = strings.TrimSpace(r.DateOfBirth)
	r.Nationality = strings.TrimSpace(r.Nationality)
	r.Address = strings.TrimSpace(r.Address)
	// A blank period date means "not given"; the CV falls back to the start date.
	for i := range r.Education {
		r.Education[i].StartDate = blankToNil(r.Education[i].StartDate)
		r.Education[i].EndDate = blankToNil(r.Education[i].EndDate)
	}
	for i := range r.WorkExperiences {
		r.WorkExperiences[i].StartDate = blankToNil(r.WorkExperiences[i].StartDate)
		r.WorkExperiences[i].EndDate = blankToNil(r.WorkExperiences[i].EndDate)
	}
}

func blankToNil(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

// ToModel builds the student aggregate. List order becomes the position column.
// Call only after Validate passed.
func (r *StudentRequest) ToModel() models.Student {
	s := models.Student{
		UserID:           r.UserID,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Gender:           r.Gender,
		Address:          r.Address,
		Phone:            r.Phone,
		Email:            r.Email,
		Nationality:      r.Nationality,
		Languages:        strings.Join(r.Languages, ","),
		MaritalStatus:    r.MaritalStatus,
		NumberOfChildren: r.NumberOfChildren,
		AvailableFrom:    r.AvailableFrom,
		Status:           r.Status,
	}
	if s.Status == "" {
		s.Status = models.StatusRegistered
	}
	if dob, err := time.Parse("2006-01-02", r.DateOfBirth); err == nil {
		s.DateOfBirth = &dob
	}
	for i, f := range r.Family {
		s.Family = append(s.Family, models.FamilyMember{
			Position: i, Name: f.Name, Relationship: f.Relationship, Age: f.Age, Occupation: f.Occupation,
		})
	}
	for i, e := range r.Education {
		s.Education = append(s.Education, models.Education{
			Position: i, SchoolName: e.SchoolName, Major: e.Major, StartDate: e.StartDate, EndDate: e.EndDate,
		})
	}
	for i, w := range r.WorkExperiences {
		s.WorkExperiences = append(s.WorkExperiences, models.WorkExperience{
			Position: i, CompanyName: w.CompanyName, JobTitle: w.JobTitle, StartDate: w.StartDate, EndDate: w.EndDate,
		})
	}
	for i, c := range r.Certificates {
		s.Certificates = append(s.Certificates, models.Certificate{Position: i, Date: c.Date, Name: c.Name})
	}
	s.Resume = &models.Resume{
		KanaName:           r.Resume.KanaName,
		Height:             r.Resume.Height,
		Weight:             r.Resume.Weight,
		ShoeSize:           r.Resume.ShoeSize,
		SelfIntroduction:   r.Resume.SelfIntroduction,
		Strengths:          r.Resume.Strengths,
		Weaknesses:         r.Resume.Weaknesses,
		Hobbies:            r.Resume.Hobbies,
		DesiredJobCategory: r.Resume.DesiredJobCategory,
		PhotoPath:          r.Resume.PhotoPath,
	}
	return s
}

// StudentRequestFromModel is the inverse of ToModel, used to prefill the edit form.
func StudentRequestFromModel(s models.Student) StudentRequest {
	r := StudentRequest{
		UserID:           s.UserID,
		FirstName:        s.FirstName,
		LastName:         s.LastName,
		Gender:           s.Gender,
		Address:          s.Address,
		Phone:            s.Phone,
		Email:            s.Email,
		Nationality:      s.Nationality,
		Languages:        SplitLanguages(s.Languages),
		MaritalStatus:    s.MaritalStatus,
		NumberOfChildren: s.NumberOfChildren,
		AvailableFrom:    s.AvailableFrom,
		Status:           s.Status,
	}
	if s.DateOfBirth != nil {
		r.DateOfBirth = s.DateOfBirth.Format("2006-01-02")
	}
	for _, f := range s.Family {
		r.Family = append(r.Family, FamilyMemberRequest{Name: f.Name, Relationship: f.Relationship, Age: f.Age, Occupation: f.Occupation})
	}
	for _, e := range s.Education {
		r.Education = append(r.Education, EducationRequest{SchoolName: e.SchoolName, Major: e.Major, StartDate: e.StartDate, EndDate: e.EndDate})
	}
	for _, w := range s.WorkExperiences {
		r.WorkExperiences = append(r.WorkExperiences, WorkRequest{CompanyName: w.CompanyName, JobTitle: w.JobTitle, StartDate: w.StartDate, EndDate: w.EndDate})
	}
	for _, c := range s.Certificates {
		r.Certificates = append(r.Certificates, CertificateRequest{Date: c.Date, Name: c.Name})
	}
	if s.Resume != nil {
		r.Resume = ResumeRequest{
			KanaName:           s.Resume.KanaName,
			Height:             s.Resume.Height,
			Weight:             s.Resume.Weight,
			ShoeSize:           s.Resume.ShoeSize,
			SelfIntroduction:   s.Resume.SelfIntroduction,
			Strengths:          s.Resume.Strengths,
			Weaknesses:         s.Resume.Weaknesses,
			Hobbies:            s.Resume.Hobbies,
			DesiredJobCategory: s.Resume.DesiredJobCategory,
			PhotoPath:          s.Resume.PhotoPath,
		}
	}
	return r
}

func SplitLanguages(s string) []string {
	var out []string
	for _, l := range strings.Split(s, ",") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// TestRequest records a test pass.
type TestRequest struct {
	Type          string `json:"type" validate:"required"`
	SkillCategory string `json:"skill_category" validate:"required_if=Type skill"`
	PassedDate    string `json:"passed_date" validate:"required,partialdate"`
}

// StatusRequest is a manual status change from staff.
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=registered studying interview_eligible offered departed withdrawn"`
}
