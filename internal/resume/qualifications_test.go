package resume

import "testing"

func TestTestDisplayName(t *testing.T) {
	tests := []struct {
		in   TestPass
		want string
	}{
		{TestPass{Type: TestTypeJFTBasic}, "国際交流基金日本語基礎テスト (JFT-Basic) 合格"},
		{TestPass{Type: TestTypeNursingCareJapanese}, "介護日本語評価試験 合格"},
		{TestPass{Type: TestTypeSkill, SkillCategory: "介護"}, "介護技能評価試験 (NEPALESE) 合格"},
		{TestPass{Type: "jlpt_n4", SkillCategory: "日本語"}, "日本語 jlpt_n4 合格"},
		{TestPass{Type: "jlpt_n4"}, "jlpt_n4 合格"},
	}
	for _, tt := range tests {
		if got := TestDisplayName(tt.in); got != tt.want {
			t.Errorf("TestDisplayName(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMergeAndSortQualifications(t *testing.T) {
	certs := []Certificate{
		{Date: "2019-03", Name: "Driving licence"},
		{Date: "", Name: "Undated course"},
		{Date: "2022-07-01", Name: "First aid"},
	}
	tests := []TestPass{
		{PassedDate: "2022-07-01", Type: TestTypeJFTBasic},
		{PassedDate: "2023-01-10", Type: TestTypeSkill, SkillCategory: "外食業"},
		{PassedDate: "0001-01-01", Type: "other"},
	}

	got := MergeAndSortQualifications(certs, tests)

	wantNames := []string{
		"外食業技能評価試験 (NEPALESE) 合格",
		"First aid",
		"国際交流基金日本語基礎テスト (JFT-Basic) 合格",
		"Driving licence",
		"other 合格",
		"Undated course",
	}
	if len(got) != len(wantNames) {
		t.Fatalf("got %d entries, want %d", len(got), len(wantNames))
	}
	for i, name := range wantNames {
		if got[i].Name != name {
			t.Errorf("entry %d = %q, want %q", i, got[i].Name, name)
		}
	}

	if got[0].Display != (DisplayDate{"2023", "01"}) {
		t.Errorf("display of newest = %+v", got[0].Display)
	}
	if got[5].Display != (DisplayDate{}) {
		t.Errorf("display of undated = %+v", got[5].Display)
	}
}

func TestMergeAndSortQualificationsUnknownMonth(t *testing.T) {
	got := MergeAndSortQualifications([]Certificate{
		{Date: "2020-00", Name: "a"},
		{Date: "2020-01", Name: "b"},
	}, nil)
	if got[0].Name != "b" || got[1].Name != "a" {
		t.Fatalf("order = %q, %q", got[0].Name, got[1].Name)
	}
	if got[1].Display != (DisplayDate{Year: "2020"}) {
		t.Errorf("unknown month displayed as %+v", got[1].Display)
	}
}

func TestMergeAndSortQualificationsEmpty(t *testing.T) {
	got := MergeAndSortQualifications(nil, nil)
	if got == nil || len(got) != 0 {
		t.Errorf("want empty non-nil slice, got %#v", got)
	}
}
