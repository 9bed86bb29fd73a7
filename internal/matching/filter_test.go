package matching

import (
	"testing"

	"github.com/openoralcare/oralhealth-backend/internal/types"
)

func TestNormalizeLocation(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "usa_alias", input: "usa", want: "United States", wantOK: true},
		{name: "scotland_maps_to_uk", input: "Scotland", want: "United Kingdom", wantOK: true},
		{name: "embedded_alias", input: "I live in England", want: "United Kingdom", wantOK: true},
		{name: "canada", input: "canada", want: "Canada", wantOK: true},
		{name: "unknown", input: "Brazil", wantOK: false},
		{name: "empty", input: "   ", wantOK: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeLocation(tc.input)
			if ok != tc.wantOK || got != tc.want {
				t.Fatalf("NormalizeLocation(%q)=(%q,%v), want (%q,%v)", tc.input, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestGeographicFilter(t *testing.T) {
	ukRec := testRec("Toothbrushing advice", "Brush twice daily.", "United Kingdom", "NICE", "", "")
	usRec := testRec("Sealants", "Apply sealants.", "United States", "ADA", "", "")
	whoRec := testRec("Sugars intake", "Limit free sugars.", "Switzerland", "WHO", "", "")

	cases := []struct {
		name     string
		location string
		corpus   []*types.Recommendation
		want     int
	}{
		{name: "uk_profile_drops_us", location: "United Kingdom", corpus: []*types.Recommendation{ukRec, usRec}, want: 1},
		{name: "who_always_kept", location: "United Kingdom", corpus: []*types.Recommendation{usRec, whoRec}, want: 1},
		{name: "unknown_location_keeps_all", location: "Mars", corpus: []*types.Recommendation{ukRec, usRec, whoRec}, want: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			profile := &types.UserProfile{AgeGroup: types.AgeGroup31To50, LocationCountry: tc.location, PeriodontalStatus: types.PerioHealthy}
			got := FilterCandidates(profile, tc.corpus)
			if len(got) != tc.want {
				t.Fatalf("FilterCandidates kept %d, want %d", len(got), tc.want)
			}
		})
	}
}

func TestAgeFilter(t *testing.T) {
	profile := &types.UserProfile{
		AgeGroup:          types.AgeGroup0To2,
		LocationCountry:   "unmapped",
		PeriodontalStatus: types.PerioHealthy,
	}

	neutral := testRec("Fissure sealants", "General sealant advice.", "Canada", "CDA", "", "")
	neutral.TargetPopulation = ""
	matching := testRec("Toothbrushing for toddlers", "Start as soon as teeth erupt.", "Canada", "CDA", "", "")
	matching.TargetPopulation = "Infants and toddlers"
	adultOnly := testRec("Denture care", "Clean dentures daily.", "Canada", "CDA", "", "")
	adultOnly.TargetPopulation = "Adults with dentures"

	got := FilterCandidates(profile, []*types.Recommendation{neutral, matching, adultOnly})
	if len(got) != 2 {
		t.Fatalf("FilterCandidates kept %d, want 2 (age-neutral plus toddler match)", len(got))
	}
}

func TestConditionFilter(t *testing.T) {
	diabetic := testRec("Periodontal care", "Patients with diabetes have higher periodontal risk.", "Canada", "CDA", "", "")
	generic := testRec("Oral health basics", "Brush and floss.", "Canada", "CDA", "", "")
	unrelated := testRec("Veneer bonding", "Cosmetic technique.", "Canada", "CDA", "", "")

	cases := []struct {
		name    string
		profile *types.UserProfile
		want    int
	}{
		{
			name: "no_flags_keep_all",
			profile: &types.UserProfile{
				AgeGroup: types.AgeGroup31To50, LocationCountry: "unmapped",
				PeriodontalStatus: types.PerioHealthy,
			},
			want: 3,
		},
		{
			name: "diabetes_keeps_match_and_generic",
			profile: &types.UserProfile{
				AgeGroup: types.AgeGroup31To50, LocationCountry: "unmapped",
				PeriodontalStatus: types.PerioHealthy, HasDiabetes: true,
			},
			want: 2,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterCandidates(tc.profile, []*types.Recommendation{diabetic, generic, unrelated})
			if len(got) != tc.want {
				t.Fatalf("FilterCandidates kept %d, want %d", len(got), tc.want)
			}
		})
	}
}
