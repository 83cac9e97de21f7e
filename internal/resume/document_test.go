package resume

import (
	"encoding/json"
	"testing"
	"time"
)

func TestAssemble(t *testing.T) {
	dob := time.Date(2001, time.May, 4, 0, 0, 0, 0, time.UTC)
	height := 168.5
	p := Profile{
		FirstName:        "Sita",
		LastName:         "Gurung",
		KanaName:         "シタ グルン",
		DateOfBirth:      &dob,
		NumberOfChildren: 1,
		Education: []Period{
			{StartDate: strp("2016-04"), EndDate: strp("2019-00"), Name: "Kathmandu Secondary School"},
			{StartDate: strp("2019-07"), Name: "Nursing College"},
		},
		Height: &height,
	}
	quals := MergeAndSortQualifications([]Certificate{{Date: "2021-02", Name: "JLPT N4"}}, nil)

	doc := Assemble(p, quals, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))

	if doc.Header.Name != "Sita Gurung" {
		t.Errorf("name = %q", doc.Header.Name)
	}
	if doc.Header.Age == nil || *doc.Header.Age != 23 {
		t.Errorf("age = %v", doc.Header.Age)
	}
	if doc.Header.Birth == nil || *doc.Header.Birth != (BirthDate{2001, 5, 4}) {
		t.Errorf("birth = %v", doc.Header.Birth)
	}
	if doc.Header.Dependents != 1 {
		t.Errorf("dependents = %d", doc.Header.Dependents)
	}
	if len(doc.Education) != 2 {
		t.Fatalf("education rows = %d", len(doc.Education))
	}
	if doc.Education[0].Date != (DisplayDate{Year: "2019"}) {
		t.Errorf("education[0] = %+v", doc.Education[0].Date)
	}
	if doc.Education[1].Date != (DisplayDate{"2019", "07"}) {
		t.Errorf("education[1] = %+v", doc.Education[1].Date)
	}
	if doc.Physical.Height != "168.5 cm" || doc.Physical.Weight != "" {
		t.Errorf("physical = %+v", doc.Physical)
	}
	if len(doc.Qualifications) != 1 || doc.Qualifications[0].Display != (DisplayDate{"2021", "02"}) {
		t.Errorf("qualifications = %+v", doc.Qualifications)
	}
}

func TestAssembleKeepsEveryTable(t *testing.T) {
	doc := Assemble(Profile{}, nil, time.Now())

	if len(doc.Layout) != len(Layout) || doc.Layout[3] != SectionPageBreak {
		t.Fatalf("layout = %v", doc.Layout)
	}
	if doc.Header.Age != nil {
		t.Errorf("age without dob = %v", *doc.Header.Age)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"education", "work", "qualifications"} {
		if string(raw[key]) != "[]" {
			t.Errorf("%s encoded as %s, want []", key, raw[key])
		}
	}
}
