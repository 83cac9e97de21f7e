package dtos

import (
	"reflect"
	"testing"
)

func strp(s string) *string { return &s }

func validRequest() StudentRequest {
	age := 52
	h := 160.0
	return StudentRequest{
		FirstName:        "Ram",
		LastName:         "Thapa",
		Gender:           "male",
		DateOfBirth:      "2000-02-29",
		Phone:            "+977 980-1234567",
		Email:            "ram@example.com",
		Nationality:      "Nepal",
		Languages:        []string{"Nepali", "English", "Japanese"},
		MaritalStatus:    "single",
		NumberOfChildren: 0,
		AvailableFrom:    "2025-04",
		Status:           "studying",
		Family: []FamilyMemberRequest{
			{Name: "Hari Thapa", Relationship: "father", Age: &age, Occupation: "farmer"},
			{Name: "Gita Thapa", Relationship: "mother"},
		},
		Education: []EducationRequest{
			{SchoolName: "Shree School", StartDate: strp("2010-04"), EndDate: strp("2016-00")},
			{SchoolName: "Tribhuvan University", Major: "Commerce", StartDate: strp("2017")},
		},
		WorkExperiences: []WorkRequest{
			{CompanyName: "Hotel Everest", JobTitle: "Kitchen staff", StartDate: strp("2019-06"), EndDate: strp("2021-03")},
		},
		Certificates: []CertificateRequest{
			{Date: "2023-12", Name: "JLPT N4"},
			{Date: "", Name: "Food hygiene"},
			{Date: "2021-01-15", Name: "Driving licence"},
		},
		Resume: ResumeRequest{KanaName: "ラム タパ", Height: &h, DesiredJobCategory: "外食業"},
	}
}

func TestValidateAcceptsCompleteForm(t *testing.T) {
	r := validRequest()
	if errs := Validate(&r); errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	r := validRequest()
	r.FirstName = ""
	r.Email = "not-an-email"
	r.Phone = "call me"
	r.DateOfBirth = "2001-02-29"
	r.NumberOfChildren = -1
	r.Education[1].EndDate = strp("2020-13")
	r.Certificates[0].Name = ""

	errs := Validate(&r)
	for _, field := range []string{
		"first_name",
		"email",
		"phone",
		"date_of_birth",
		"number_of_children",
		"education[1].end_date",
		"certificates[0].name",
	} {
		if _, ok := errs[field]; !ok {
			t.Errorf("missing error for %s (got %v)", field, errs)
		}
	}
	if _, ok := errs["last_name"]; ok {
		t.Errorf("valid field last_name reported: %v", errs["last_name"])
	}
}

func TestValidateTestRequest(t *testing.T) {
	if errs := Validate(&TestRequest{Type: "skill", PassedDate: "2024-05"}); errs["skill_category"] == "" {
		t.Errorf("skill test without category accepted: %v", errs)
	}
	if errs := Validate(&TestRequest{Type: "jft_basic", PassedDate: "2024-05"}); errs != nil {
		t.Errorf("jft test rejected: %v", errs)
	}
}

func TestStudentRequestRoundTrip(t *testing.T) {
	in := validRequest()
	m := in.ToModel()

	for i, e := range m.Education {
		if e.Position != i {
			t.Errorf("education %d has position %d", i, e.Position)
		}
	}

	out := StudentRequestFromModel(m)
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip changed the form\n in: %+v\nout: %+v", in, out)
	}
}

func TestToModelDefaultsStatus(t *testing.T) {
	r := validRequest()
	r.Status = ""
	if got := r.ToModel().Status; got != "registered" {
		t.Errorf("status = %q, want registered", got)
	}
}

func TestValidateAcceptsOpenEndedPeriods(t *testing.T) {
	for _, end := range []string{"", "  ", "-00", "-07"} {
		r := validRequest()
		r.Education[1].EndDate = strp(end)
		r.WorkExperiences[0].EndDate = strp(end)
		r.Normalize()
		if errs := Validate(&r); errs != nil {
			t.Errorf("end date %q: %v", end, errs)
		}
	}
}

func TestNormalizeDropsBlankPeriodDates(t *testing.T) {
	r := validRequest()
	r.Education[0].EndDate = strp("")
	r.WorkExperiences[0].StartDate = strp(" 2019-06 ")
	r.Normalize()
	if r.Education[0].EndDate != nil {
		t.Errorf("blank end date kept as %q", *r.Education[0].EndDate)
	}
	if got := *r.WorkExperiences[0].StartDate; got != "2019-06" {
		t.Errorf("start date = %q", got)
	}
}

func TestYearBlankEndDateRoundTrips(t *testing.T) {
	r := validRequest()
	r.Education[0].EndDate = strp("-00")
	r.Normalize()
	if errs := Validate(&r); errs != nil {
		t.Fatal(errs)
	}
	back := StudentRequestFromModel(r.ToModel())
	if got := back.Education[0].EndDate; got == nil || *got != "-00" {
		t.Fatalf("end date = %v", got)
	}
}
