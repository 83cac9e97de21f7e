package resume

import (
	"strconv"
	"strings"
	"time"
)

// Section names the blocks of a CV in print order.
type Section string

const (
	SectionHeader         Section = "header"
	SectionEducation      Section = "education"
	SectionWork           Section = "work"
	SectionPageBreak      Section = "page_break"
	SectionQualifications Section = "qualifications"
	SectionPhysical       Section = "physical"
	SectionPersonal       Section = "personal"
)

// Layout is the fixed order every CV is printed in.
var Layout = []Section{
	SectionHeader,
	SectionEducation,
	SectionWork,
	SectionPageBreak,
	SectionQualifications,
	SectionPhysical,
	SectionPersonal,
}

// Period is an education or work entry. Start and end are PartialDates and
// may be in any order.
type Period struct {
	StartDate *string
	EndDate   *string
	Name      string
	Detail    string
}

type FamilyMember struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Age          *int   `json:"age,omitempty"`
	Occupation   string `json:"occupation"`
}

// Profile is the slice of a student record the CV needs.
type Profile struct {
	FirstName          string
	LastName           string
	KanaName           string
	PhotoURL           string
	DateOfBirth        *time.Time
	Gender             string
	Address            string
	Phone              string
	Email              string
	Nationality        string
	Languages          []string
	MaritalStatus      string
	NumberOfChildren   int
	AvailableFrom      string
	DesiredJobCategory string

	Education []Period
	Work      []Period
	Family    []FamilyMember

	Height   *float64
	Weight   *float64
	ShoeSize *float64

	SelfIntroduction string
	Strengths        string
	Weaknesses       string
	Hobbies          string
}

type Header struct {
	Name               string     `json:"name"`
	KanaName           string     `json:"kana_name"`
	PhotoURL           string     `json:"photo_url"`
	Birth              *BirthDate `json:"birth,omitempty"`
	Age                *int       `json:"age,omitempty"`
	Gender             string     `json:"gender"`
	Address            string     `json:"address"`
	Phone              string     `json:"phone"`
	Email              string     `json:"email"`
	Nationality        string     `json:"nationality"`
	Languages          []string   `json:"languages"`
	MaritalStatus      string     `json:"marital_status"`
	Dependents         int        `json:"dependents"`
	AvailableFrom      string     `json:"available_from"`
	DesiredJobCategory string     `json:"desired_job_category"`
}

// PeriodRow is one printed line of the education or work table.
type PeriodRow struct {
	Date   DisplayDate `json:"date"`
	Name   string      `json:"name"`
	Detail string      `json:"detail"`
}

type Physical struct {
	Height   string `json:"height"`
	Weight   string `json:"weight"`
	ShoeSize string `json:"shoe_size"`
}

type Personal struct {
	SelfIntroduction string         `json:"self_introduction"`
	Strengths        string         `json:"strengths"`
	Weaknesses       string         `json:"weaknesses"`
	Hobbies          string         `json:"hobbies"`
	Family           []FamilyMember `json:"family"`
}

// Document is the assembled CV. Tables are never nil so they encode as [].
type Document struct {
	Layout         []Section       `json:"layout"`
	Header         Header          `json:"header"`
	Education      []PeriodRow     `json:"education"`
	Work           []PeriodRow     `json:"work"`
	Qualifications []Qualification `json:"qualifications"`
	Physical       Physical        `json:"physical"`
	Personal       Personal        `json:"personal"`
}

// Assemble composes the CV from a profile and its merged qualifications.
func Assemble(p Profile, qualifications []Qualification, today time.Time) Document {
	doc := Document{
		Layout: append([]Section(nil), Layout...),
		Header: Header{
			Name:               strings.TrimSpace(p.FirstName + " " + p.LastName),
			KanaName:           p.KanaName,
			PhotoURL:           p.PhotoURL,
			Gender:             p.Gender,
			Address:            p.Address,
			Phone:              p.Phone,
			Email:              p.Email,
			Nationality:        p.Nationality,
			Languages:          nonNil(p.Languages),
			MaritalStatus:      p.MaritalStatus,
			Dependents:         p.NumberOfChildren,
			AvailableFrom:      p.AvailableFrom,
			DesiredJobCategory: p.DesiredJobCategory,
		},
		Education:      periodRows(p.Education),
		Work:           periodRows(p.Work),
		Qualifications: nonNil(qualifications),
		Physical: Physical{
			Height:   withUnit(p.Height, "cm"),
			Weight:   withUnit(p.Weight, "kg"),
			ShoeSize: withUnit(p.ShoeSize, "cm"),
		},
		Personal: Personal{
			SelfIntroduction: p.SelfIntroduction,
			Strengths:        p.Strengths,
			Weaknesses:       p.Weaknesses,
			Hobbies:          p.Hobbies,
			Family:           nonNil(p.Family),
		},
	}
	if p.DateOfBirth != nil {
		birth := FormatBirthDate(*p.DateOfBirth)
		age := ComputeAge(*p.DateOfBirth, today)
		doc.Header.Birth = &birth
		doc.Header.Age = &age
	}
	return doc
}

func periodRows(periods []Period) []PeriodRow {
	rows := make([]PeriodRow, 0, len(periods))
	for _, p := range periods {
		rows = append(rows, PeriodRow{
			Date:   ResolveDisplayDate(p.EndDate, p.StartDate),
			Name:   p.Name,
			Detail: p.Detail,
		})
	}
	return rows
}

func withUnit(v *float64, unit string) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + " " + unit
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
