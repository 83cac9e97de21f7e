package models

import "time"

// Student statuses, in the order a placement normally goes.
const (
	StatusRegistered        = "registered"
	StatusStudying          = "studying"
	StatusInterviewEligible = "interview_eligible"
	StatusOffered           = "offered"
	StatusDeparted          = "departed"
	StatusWithdrawn         = "withdrawn"
)

var statusOrder = []string{StatusRegistered, StatusStudying, StatusInterviewEligible, StatusOffered, StatusDeparted}

var statusRank = map[string]int{
	StatusRegistered:        0,
	StatusStudying:          1,
	StatusInterviewEligible: 2,
	StatusOffered:           3,
	StatusDeparted:          4,
}

// StatusAtLeast reports whether current is already at or past target.
// Withdrawn students never move.
func StatusAtLeast(current, target string) bool {
	if current == StatusWithdrawn {
		return true
	}
	return statusRank[current] >= statusRank[target]
}

// StatusesBelow lists the statuses a student can be moved forward from to
// reach target. Withdrawn is never among them.
func StatusesBelow(target string) []string {
	var out []string
	for _, s := range statusOrder {
		if !StatusAtLeast(s, target) {
			out = append(out, s)
		}
	}
	return out
}

type Student struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// UserID links the student's own login, if any.
	UserID *uint `gorm:"uniqueIndex" json:"user_id,omitempty"`

	FirstName        string     `gorm:"size:80;not null" json:"first_name"`
	LastName         string     `gorm:"size:80;not null" json:"last_name"`
	Gender           string     `gorm:"size:20" json:"gender"`
	DateOfBirth      *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Address          string     `gorm:"type:text" json:"address"`
	Phone            string     `gorm:"size:30" json:"phone"`
	Email            string     `gorm:"size:120" json:"email"`
	Nationality      string     `gorm:"size:60" json:"nationality"`
	Languages        string     `json:"languages"` // comma separated
	MaritalStatus    string     `gorm:"size:20" json:"marital_status"`
	NumberOfChildren int        `json:"number_of_children"`
	AvailableFrom    string     `gorm:"size:10" json:"available_from"`
	Status           string     `gorm:"size:30;default:'registered'" json:"status"`

	Family          []FamilyMember   `gorm:"constraint:OnDelete:CASCADE" json:"family"`
	Education       []Education      `gorm:"constraint:OnDelete:CASCADE" json:"education"`
	WorkExperiences []WorkExperience `gorm:"constraint:OnDelete:CASCADE" json:"work_experiences"`
	Certificates    []Certificate    `gorm:"constraint:OnDelete:CASCADE" json:"certificates"`
	Resume          *Resume          `gorm:"constraint:OnDelete:CASCADE" json:"resume,omitempty"`
}

type FamilyMember struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	StudentID    uint   `gorm:"index" json:"student_id"`
	Position     int    `json:"-"`
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Age          *int   `json:"age,omitempty"`
	Occupation   string `json:"occupation"`
}

// Education and WorkExperience dates are PartialDates ("YYYY", "YYYY-MM",
// "YYYY-MM-DD", month "00" = unknown).
type Education struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	StudentID  uint    `gorm:"index" json:"student_id"`
	Position   int     `json:"-"`
	SchoolName string  `json:"school_name"`
	Major      string  `json:"major"`
	StartDate  *string `gorm:"size:10" json:"start_date,omitempty"`
	EndDate    *string `gorm:"size:10" json:"end_date,omitempty"`
}

type WorkExperience struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	StudentID   uint    `gorm:"index" json:"student_id"`
	Position    int     `json:"-"`
	CompanyName string  `json:"company_name"`
	JobTitle    string  `json:"job_title"`
	StartDate   *string `gorm:"size:10" json:"start_date,omitempty"`
	EndDate     *string `gorm:"size:10" json:"end_date,omitempty"`
}

type Certificate struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StudentID uint   `gorm:"index" json:"student_id"`
	Position  int    `json:"-"`
	Date      string `gorm:"size:10" json:"date"`
	Name      string `json:"name"`
}

type Resume struct {
	ID                 uint     `gorm:"primaryKey" json:"id"`
	StudentID          uint     `gorm:"uniqueIndex" json:"student_id"`
	KanaName           string   `json:"kana_name"`
	Height             *float64 `json:"height,omitempty"`
	Weight             *float64 `json:"weight,omitempty"`
	ShoeSize           *float64 `json:"shoe_size,omitempty"`
	SelfIntroduction   string   `gorm:"type:text" json:"self_introduction"`
	Strengths          string   `gorm:"type:text" json:"strengths"`
	Weaknesses         string   `gorm:"type:text" json:"weaknesses"`
	Hobbies            string   `gorm:"type:text" json:"hobbies"`
	DesiredJobCategory string   `json:"desired_job_category"`
	PhotoPath          string   `json:"photo_path"`
}

// Test is a pass recorded by an exam body.
type Test struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	StudentID     uint      `gorm:"index" json:"student_id"`
	Type          string    `gorm:"size:40;not null" json:"type"`
	SkillCategory string    `json:"skill_category,omitempty"`
	PassedDate    string    `gorm:"size:10" json:"passed_date"`
}

// StudentEvent is the audit trail of status changes.
type StudentEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	StudentID uint      `gorm:"index" json:"student_id"`
	EventType string    `json:"event_type"`
	Details   string    `gorm:"type:text" json:"details"`
}
