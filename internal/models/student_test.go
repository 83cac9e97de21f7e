package models

import (
	"reflect"
	"testing"
)

func TestStatusesBelow(t *testing.T) {
	cases := []struct {
		target string
		want   []string
	}{
		{StatusInterviewEligible, []string{StatusRegistered, StatusStudying}},
		{StatusOffered, []string{StatusRegistered, StatusStudying, StatusInterviewEligible}},
		{StatusRegistered, nil},
	}
	for _, tc := range cases {
		if got := StatusesBelow(tc.target); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("StatusesBelow(%s) = %v, want %v", tc.target, got, tc.want)
		}
	}
}

func TestOfferNeverReopensFinishedStudents(t *testing.T) {
	for _, s := range StatusesBelow(StatusOffered) {
		if s == StatusDeparted || s == StatusWithdrawn {
			t.Fatalf("%s can be moved back to offered", s)
		}
	}
	if !StatusAtLeast(StatusWithdrawn, StatusOffered) || !StatusAtLeast(StatusDeparted, StatusOffered) {
		t.Fatal("finished students must count as past offered")
	}
}
