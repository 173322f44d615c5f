package finder

import (
	"net/url"
	"strconv"
	"strings"
)

// ShareValues encodes in under ShareKeys. Fields at their default value are
// omitted, so an all-default input encodes to an empty set.
func ShareValues(in Input) url.Values {
	in = in.Normalize()
	v := url.Values{}
	if in.ScoreTN != nil {
		v.Set(ShareKeys.ScoreTN, strconv.FormatFloat(*in.ScoreTN, 'f', -1, 64))
	}
	if in.ScoreDGNL != nil {
		v.Set(ShareKeys.ScoreDGNL, strconv.FormatFloat(*in.ScoreDGNL, 'f', -1, 64))
	}
	if in.Award != AwardNone {
		v.Set(ShareKeys.Award, string(in.Award))
	}
	if in.Gender != GenderMale {
		v.Set(ShareKeys.Gender, string(in.Gender))
	}
	if in.Major != MajorOther {
		v.Set(ShareKeys.Major, string(in.Major))
	}
	if in.Top10SchoolRank {
		v.Set(ShareKeys.Top10SchoolRank, "true")
	}
	if in.PriorityRegion1 {
		v.Set(ShareKeys.PriorityRegion1, "true")
	}
	return v
}

// EncodeShare returns the query string of a shareable link.
func EncodeShare(in Input) string {
	return ShareValues(in).Encode()
}

// DecodeShare parses a query string produced by EncodeShare. A leading "?"
// is accepted. Malformed pairs are skipped and the rest still decode.
func DecodeShare(query string) Input {
	values, _ := url.ParseQuery(strings.TrimPrefix(query, "?"))
	return Collect(values, ShareKeys)
}

// ShareURL appends the share query to base. Defaults-only inputs yield base
// unchanged.
func ShareURL(base string, in Input) string {
	q := EncodeShare(in)
	if q == "" {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + q
}
