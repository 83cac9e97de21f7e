package resume

import (
	"sort"
	"strings"
)

// Test types recorded by the exam bodies.
const (
	TestTypeJFTBasic            = "jft_basic"
	TestTypeNursingCareJapanese = "nursing_care_japanese"
	TestTypeSkill               = "skill"
)

// Certificate is an achievement typed in by staff.
type Certificate struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// TestPass is a pass recorded by an exam body and fetched separately.
type TestPass struct {
	PassedDate    string `json:"passed_date"`
	Type          string `json:"type"`
	SkillCategory string `json:"skill_category,omitempty"`
}

// Qualification is one row of the CV achievements table.
type Qualification struct {
	Date    string      `json:"date"`
	Name    string      `json:"name"`
	Display DisplayDate `json:"display"`
}

// TestDisplayName gives the Japanese label printed for a test pass.
func TestDisplayName(t TestPass) string {
	category := strings.TrimSpace(t.SkillCategory)
	switch t.Type {
	case TestTypeJFTBasic:
		return "国際交流基金日本語基礎テスト (JFT-Basic) 合格"
	case TestTypeNursingCareJapanese:
		return "介護日本語評価試験 合格"
	case TestTypeSkill:
		return category + "技能評価試験 (NEPALESE) 合格"
	}
	if category != "" {
		return category + " " + t.Type + " 合格"
	}
	return t.Type + " 合格"
}

// MergeAndSortQualifications builds the achievements table: certificates then
// test passes, newest first. Entries without a date go last. Equal dates keep
// their input order, so certificates stay ahead of tests on the same day.
func MergeAndSortQualifications(certificates []Certificate, tests []TestPass) []Qualification {
	out := make([]Qualification, 0, len(certificates)+len(tests))
	for _, c := range certificates {
		out = append(out, Qualification{Date: c.Date, Name: c.Name})
	}
	for _, t := range tests {
		out = append(out, Qualification{Date: t.PassedDate, Name: TestDisplayName(t)})
	}

	keys := make(map[string]dateKey, len(out))
	for _, q := range out {
		if _, ok := keys[q.Date]; !ok {
			keys[q.Date] = sortKey(q.Date)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return keys[out[j].Date].before(keys[out[i].Date])
	})

	for i := range out {
		d := out[i].Date
		out[i].Display = ResolveDisplayDate(&d, nil)
	}
	return out
}

// dateKey orders partial dates; an absent date is older than any real one.
type dateKey struct {
	present          bool
	year, month, day int
}

func sortKey(s string) dateKey {
	if !ValidPartialDate(s) {
		return dateKey{}
	}
	year, month, day := splitPartialDate(s)
	k := dateKey{present: true}
	k.year, _ = digits(year, 1, 4)
	if month != "" {
		k.month, _ = digits(month, 2, 2)
	}
	if day != "" {
		k.day, _ = digits(day, 2, 2)
	}
	return k
}

func (a dateKey) before(b dateKey) bool {
	if a.present != b.present {
		return !a.present
	}
	if a.year != b.year {
		return a.year < b.year
	}
	if a.month != b.month {
		return a.month < b.month
	}
	return a.day < b.day
}
