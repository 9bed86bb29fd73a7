package matching

import (
	"strings"

	"github.com/openoralcare/oralhealth-backend/internal/types"
)

// Region buckets for geographic filtering. Location text is matched against
// the aliases by substring containment; an unmatched location skips the
// geographic filter entirely.
type regionBucket struct {
	Name         string
	Aliases      []string
	CountryTerms []string
}

var regionBuckets = []regionBucket{
	{
		Name:         "United Kingdom",
		Aliases:      []string{"united kingdom", "uk", "england", "scotland", "wales"},
		CountryTerms: []string{"united kingdom", "england", "scotland"},
	},
	{
		Name:         "United States",
		Aliases:      []string{"united states", "usa", "america"},
		CountryTerms: []string{"united states"},
	},
	{
		Name:         "Canada",
		Aliases:      []string{"canada"},
		CountryTerms: []string{"canada"},
	},
	{
		Name:         "Australia",
		Aliases:      []string{"australia"},
		CountryTerms: []string{"australia"},
	},
}

// Countries of the UK family, used for the regional geographic score bonus.
var ukFamilyTerms = []string{"united kingdom", "england", "scotland", "wales"}

// Organizations whose guidance is globally relevant and always retained.
var globalOrgTerms = []string{"who", "international", "world"}

// NormalizeLocation maps free-text location input to a canonical region name.
// Returns ok=false when the location matches no known bucket.
func NormalizeLocation(location string) (string, bool) {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		return "", false
	}
	for _, b := range regionBuckets {
		for _, alias := range b.Aliases {
			if strings.Contains(loc, alias) {
				return b.Name, true
			}
		}
	}
	return "", false
}

func bucketFor(location string) *regionBucket {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		return nil
	}
	for i := range regionBuckets {
		for _, alias := range regionBuckets[i].Aliases {
			if strings.Contains(loc, alias) {
				return &regionBuckets[i]
			}
		}
	}
	return nil
}

// Broad age keyword lists used by the candidate filter. Widened on purpose:
// the filter tolerates false positives, never strict exclusion.
var filterAgeKeywords = map[types.AgeGroup][]string{
	types.AgeGroup0To2:   {"infant", "baby", "toddler", "0-2", "under 2"},
	types.AgeGroup3To5:   {"preschool", "child", "children", "3-5", "young child"},
	types.AgeGroup6To12:  {"school", "child", "children", "6-12", "pediatric"},
	types.AgeGroup13To17: {"adolescent", "teenager", "teen", "13-17", "young adult"},
	types.AgeGroup18To30: {"adult", "young adult"},
	types.AgeGroup31To50: {"adult"},
	types.AgeGroup51To65: {"adult", "middle-aged"},
	types.AgeGroup65Plus: {"adult", "elderly", "senior", "older adult", "65+"},
}

// Narrow age keyword lists used by the scorer for the age-match bonus and the
// mismatch penalty.
var scoreAgeKeywords = map[types.AgeGroup][]string{
	types.AgeGroup0To2:   {"infant", "baby", "toddler"},
	types.AgeGroup3To5:   {"preschool", "young child"},
	types.AgeGroup6To12:  {"school age", "child", "pediatric"},
	types.AgeGroup13To17: {"adolescent", "teenager", "teen"},
	types.AgeGroup18To30: {"young adult"},
	types.AgeGroup31To50: {"adult"},
	types.AgeGroup51To65: {"middle-aged", "adult"},
	types.AgeGroup65Plus: {"elderly", "senior", "older adult"},
}

// Declaration order fixes iteration order for the mismatch scan.
var ageGroupOrder = []types.AgeGroup{
	types.AgeGroup0To2,
	types.AgeGroup3To5,
	types.AgeGroup6To12,
	types.AgeGroup13To17,
	types.AgeGroup18To30,
	types.AgeGroup31To50,
	types.AgeGroup51To65,
	types.AgeGroup65Plus,
}

// Evidence-quality and strength bonus tiers, scanned first-match-wins in
// declared order. "very low" precedes "low" so the plain-low bonus only
// applies to names that are not very-low.
type keywordBonus struct {
	Keyword string
	Bonus   float64
}

var evidenceQualityTiers = []keywordBonus{
	{"high", 0.3},
	{"moderate", 0.2},
	{"very low", 0.05},
	{"low", 0.1},
}

var strengthTiers = []keywordBonus{
	{"strong", 0.25},
	{"conditional", 0.15},
	{"weak", 0.1},
}

// Condition keyword sets shared by the scorer and reasoning generator.
var (
	cariesTerms       = []string{"high risk", "caries", "decay", "fluoride"}
	periodontalTerms  = []string{"periodontal", "gum", "gingivitis"}
	orthodonticTerms  = []string{"orthodontic", "braces"}
	diabetesTerms     = []string{"diabetes", "diabetic"}
	pregnancyTerms    = []string{"pregnancy", "pregnant"}
	dryMouthTerms     = []string{"dry mouth", "xerostomia"}
	dietTerms         = []string{"diet", "sugar", "frequency", "snacking"}
	genericTitleTerms = []string{"oral health", "dental hygiene", "tooth brushing"}
)

func containsAny(haystack string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(haystack, t) {
			return true
		}
	}
	return false
}

// candidateText is the lowercased title+body used by keyword scans.
func candidateText(rec *types.Recommendation) string {
	return strings.ToLower(rec.Title + " " + rec.Text)
}
