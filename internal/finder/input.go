package finder

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Award is the national excellence-competition award tier.
type Award string

const (
	AwardNone   Award = "none"
	AwardThird  Award = "third-place"
	AwardSecond Award = "second-place"
	AwardFirst  Award = "first-place"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type Major string

const (
	MajorOther Major = "other"
	MajorIT    Major = "cntt"
)

// Input is the visitor record evaluated by the engine. Nil scores mean the
// field was not provided.
type Input struct {
	ScoreTN         *float64 `json:"scoreTn,omitempty"`
	ScoreDGNL       *float64 `json:"scoreDgnl,omitempty"`
	Award           Award    `json:"hsgqg,omitempty"`
	Gender          Gender   `json:"gender,omitempty"`
	Major           Major    `json:"major,omitempty"`
	Top10SchoolRank bool     `json:"top10SchoolRank,omitempty"`
	PriorityRegion1 bool     `json:"priorityRegion1,omitempty"`
}

// Normalize replaces unset or unrecognized enumerations with their defaults
// and drops non-finite scores.
func (in Input) Normalize() Input {
	out := in
	out.Award = ParseAward(string(in.Award))
	out.Gender = ParseGender(string(in.Gender))
	out.Major = ParseMajor(string(in.Major))
	out.ScoreTN = finiteOrNil(in.ScoreTN)
	out.ScoreDGNL = finiteOrNil(in.ScoreDGNL)
	return out
}

// IsDefault reports whether every field holds its unset value.
func (in Input) IsDefault() bool {
	n := in.Normalize()
	return n.ScoreTN == nil && n.ScoreDGNL == nil &&
		n.Award == AwardNone && n.Gender == GenderMale && n.Major == MajorOther &&
		!n.Top10SchoolRank && !n.PriorityRegion1
}

func (in Input) femaleIT() bool {
	return in.Gender == GenderFemale && in.Major == MajorIT
}

func (in Input) topSchoolPriority() bool {
	return in.Top10SchoolRank && in.PriorityRegion1
}

var majorCode = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,31}$`)

// Float returns a pointer to v, for building inputs in code.
func Float(v float64) *float64 {
	return &v
}

func ParseAward(v string) Award {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "first-place", "nhat":
		return AwardFirst
	case "second-place", "nhi":
		return AwardSecond
	case "third-place", "ba":
		return AwardThird
	default:
		return AwardNone
	}
}

func ParseGender(v string) Gender {
	if strings.ToLower(strings.TrimSpace(v)) == string(GenderFemale) {
		return GenderFemale
	}
	return GenderMale
}

// ParseMajor keeps any well-formed major code so that majors other than cntt
// still count as provided input.
func ParseMajor(v string) Major {
	v = strings.ToLower(strings.TrimSpace(v))
	switch {
	case v == string(MajorOther), v == "khac":
		return MajorOther
	case majorCode.MatchString(v):
		return Major(v)
	default:
		return MajorOther
	}
}

// ParseScore returns nil unless v is a finite number.
func ParseScore(v string) *float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseFlag is true only for the literal marker "true".
func ParseFlag(v string) bool {
	return v == "true"
}

func finiteOrNil(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	f := *v
	return &f
}

// FieldKeys names the keys an Input is collected from.
type FieldKeys struct {
	ScoreTN         string
	ScoreDGNL       string
	Award           string
	Gender          string
	Major           string
	Top10SchoolRank string
	PriorityRegion1 string
}

var (
	// FormKeys are the field names of the finder form.
	FormKeys = FieldKeys{
		ScoreTN:         "tn-score",
		ScoreDGNL:       "dgnl-score",
		Award:           "hsgqg",
		Gender:          "gender",
		Major:           "major",
		Top10SchoolRank: "rank10",
		PriorityRegion1: "kv1",
	}

	// ShareKeys are the query keys of a shareable link.
	ShareKeys = FieldKeys{
		ScoreTN:         "tn",
		ScoreDGNL:       "dgnl",
		Award:           "hsgqg",
		Gender:          "gender",
		Major:           "major",
		Top10SchoolRank: "rank10",
		PriorityRegion1: "kv1",
	}
)

// Collect builds an Input from form or query values. It never fails: bad
// numbers become nil and unknown enumerations fall back to their defaults.
func Collect(values url.Values, keys FieldKeys) Input {
	return Input{
		ScoreTN:         ParseScore(values.Get(keys.ScoreTN)),
		ScoreDGNL:       ParseScore(values.Get(keys.ScoreDGNL)),
		Award:           ParseAward(values.Get(keys.Award)),
		Gender:          ParseGender(values.Get(keys.Gender)),
		Major:           ParseMajor(values.Get(keys.Major)),
		Top10SchoolRank: ParseFlag(values.Get(keys.Top10SchoolRank)),
		PriorityRegion1: ParseFlag(values.Get(keys.PriorityRegion1)),
	}
}
