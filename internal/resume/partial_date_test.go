package resume

import "testing"

func strp(s string) *string { return &s }

func TestResolveDisplayDate(t *testing.T) {
	tests := []struct {
		name  string
		end   *string
		start *string
		want  DisplayDate
	}{
		{"end wins when complete", strp("2021-07"), strp("2018-04"), DisplayDate{"2021", "07"}},
		{"end with day", strp("2021-07-15"), nil, DisplayDate{"2021", "07"}},
		{"end unknown month blanks month", strp("2020-00"), strp("2018-05"), DisplayDate{"2020", ""}},
		{"end without year falls back", strp("-00"), strp("2018-00"), DisplayDate{"2018", ""}},
		{"empty end falls back", strp(""), strp("2019-03"), DisplayDate{"2019", "03"}},
		{"both missing", nil, nil, DisplayDate{}},
		{"end missing start unknown month", nil, strp("2015-00"), DisplayDate{"2015", ""}},
		{"year only end", strp("2020"), strp("2018-05"), DisplayDate{"2020", ""}},
		{"blank end year with month falls back", strp("-05"), strp("2017-09"), DisplayDate{"2017", "09"}},
		{"end without year and no start", strp("-00"), nil, DisplayDate{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveDisplayDate(tt.end, tt.start); got != tt.want {
				t.Errorf("ResolveDisplayDate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveDisplayDateIgnoresStartWhenEndComplete(t *testing.T) {
	starts := []*string{nil, strp(""), strp("1999-00"), strp("2030-12-31")}
	for _, s := range starts {
		got := ResolveDisplayDate(strp("2012-11"), s)
		if got != (DisplayDate{"2012", "11"}) {
			t.Errorf("start %v changed result to %+v", s, got)
		}
	}
}

func TestMaxDaysInMonth(t *testing.T) {
	tests := []struct {
		year, month, want int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{2000, 2, 29},
		{1900, 2, 28},
		{2023, 4, 30},
		{2023, 6, 30},
		{2023, 9, 30},
		{2023, 11, 30},
		{2023, 1, 31},
		{2023, 12, 31},
	}
	for _, tt := range tests {
		if got := MaxDaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("MaxDaysInMonth(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestValidPartialDate(t *testing.T) {
	valid := []string{"2020", "7", "2020-00", "2020-12", "2024-02-29", "2023-04-30"}
	invalid := []string{"", "20201", "2020-13", "2020-1", "2023-02-29", "2023-04-31", "2020-00-01", "abcd", "2020-01-01-01"}
	for _, s := range valid {
		if !ValidPartialDate(s) {
			t.Errorf("ValidPartialDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if ValidPartialDate(s) {
			t.Errorf("ValidPartialDate(%q) = true, want false", s)
		}
	}
}

func TestValidPeriodDate(t *testing.T) {
	valid := []string{"2020-00", "2019-03", "-00", "-05"}
	invalid := []string{"", "-", "-13", "-5", "--00", "-00-01"}
	for _, s := range valid {
		if !ValidPeriodDate(s) {
			t.Errorf("ValidPeriodDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if ValidPeriodDate(s) {
			t.Errorf("ValidPeriodDate(%q) = true, want false", s)
		}
	}
}
