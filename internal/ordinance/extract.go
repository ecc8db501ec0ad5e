package ordinance

import (
	"strings"

	"github.com/settorestrade/ordinanze-xls/internal/normalize"
)

// Extract parses one document's full text plus its original filename into a
// Record. It is a pure function: no I/O, no shared state, and no rule failure
// is fatal — every field that finds no match contributes its documented
// empty or sentinel value while the remaining rules run regardless.
func Extract(filename, fullText string) Record {
	subject := extractSubject(fullText)

	rec := Record{
		ElixID:       normalize.ExtractTrailingNumber(filename),
		Subject:      subject,
		GeoworksCode: extractGeoworks(subject),
		Revocation:   extractRevocation(fullText),
	}

	rec.Address, rec.AddressVerdict = extractAddress(subject, fullText)
	rec.StartDate, rec.StartVerdict = extractStartDate(subject, fullText)
	rec.DurationDays, rec.DurationVerdict = extractDuration(subject, fullText)
	rec.ProtocolNumber = extractProtocol(fullText)
	rec.CompanyName = extractCompany(fullText)

	applyFlags(&rec, fullText)

	return rec
}

// extractSubject returns the one-line OGGETTO section, the text between the
// subject marker and the responsible-office header. Empty when either marker
// is missing.
func extractSubject(fullText string) string {
	m := subjectRx.FindStringSubmatch(fullText)
	if m == nil {
		return ""
	}
	return normalize.OneLine(m[1])
}

// extractRevocation is only meaningful for revocation ordinances, recognized
// by their subject opening with "Revoca". It captures what the revoked prior
// ordinance was regulating: the "per ..." span of the governing phrase, up to
// the closing semicolon.
func extractRevocation(fullText string) string {
	if !revocationGateRx.MatchString(fullText) {
		return ""
	}
	m := revocationRx.FindStringSubmatch(fullText)
	if m == nil {
		return ""
	}
	return normalize.OneLine(m[1])
}

// extractGeoworks looks for the works-tracking code label inside the subject
// only. Documents without one get the single-space sentinel.
func extractGeoworks(subject string) string {
	m := geoworksRx.FindStringSubmatch(subject)
	if m == nil {
		return GeoworksAbsent
	}
	return m[1]
}

// extractAddress resolves the street reference two ways, preferring the
// subject's span, and cross-checks the two. The subject span stops at a dash
// or comma; the body span uses the broader accented character class.
func extractAddress(subject, fullText string) (addr, verdict string) {
	var fromSubject, fromBody string
	if m := addressSubjectRx.FindStringSubmatch(subject); m != nil {
		fromSubject = strings.TrimSpace(m[1])
	}
	if m := addressBodyRx.FindStringSubmatch(fullText); m != nil {
		fromBody = strings.TrimSpace(m[1])
	}

	switch {
	case fromSubject != "":
		addr = normalize.TitleCaseAddress(fromSubject)
	case fromBody != "":
		addr = normalize.TitleCaseAddress(fromBody)
	}

	verdict = AddressMismatch
	if agreeOrSingle(canonicalAddress(fromSubject), canonicalAddress(fromBody)) {
		verdict = AddressOK
	}
	return addr, verdict
}

// canonicalAddress reduces a span to the form used for the consistency
// comparison: collapsed whitespace, lowercase.
func canonicalAddress(s string) string {
	return strings.ToLower(normalize.CollapseWhitespace(s))
}

// extractStartDate canonicalizes the start date from both sections,
// preferring the subject's, and cross-checks them.
func extractStartDate(subject, fullText string) (date, verdict string) {
	fromSubject := normalize.ParseCanonicalDate(subject)
	fromBody := normalize.ParseCanonicalDate(fullText)

	date = fromSubject
	if date == "" {
		date = fromBody
	}

	verdict = StartDateMismatch
	if agreeOrSingle(fromSubject, fromBody) {
		verdict = StartDateOK
	}
	return date, verdict
}

// extractDuration reads the declared duration in days from the subject. When
// the subject declares none, a mention of hours anywhere demotes the duration
// to a single day; otherwise the field stays empty. The verdict only turns
// into a mismatch when the subject's value disagrees with some occurrence of
// the same declaration elsewhere in the text — a body without any declaration
// never trips it.
func extractDuration(subject, fullText string) (days, verdict string) {
	verdict = DurationOK

	if m := durationRx.FindStringSubmatch(subject); m != nil {
		days = m[1]
		for _, bm := range durationRx.FindAllStringSubmatch(fullText, -1) {
			if bm[1] != days {
				verdict = DurationMismatch
				break
			}
		}
		return days, verdict
	}

	if hoursRx.MatchString(subject) || hoursRx.MatchString(fullText) {
		return "1", verdict
	}
	return "", verdict
}

// extractProtocol returns the digits of the first P.G. filing number cited
// anywhere in the text. A trailing "/year" is ignored.
func extractProtocol(fullText string) string {
	m := protocolRx.FindStringSubmatch(fullText)
	if m == nil {
		return ""
	}
	return m[1]
}

// extractCompany captures the applicant company name following "ditta", up to
// the next comma, semicolon or newline.
func extractCompany(fullText string) string {
	m := companyRx.FindStringSubmatch(fullText)
	if m == nil {
		return ""
	}
	return normalize.TitleCaseWords(normalize.OneLine(m[1]))
}

// applyFlags fills the seven sentinel-pair fields from the full lowercased
// text.
func applyFlags(rec *Record, fullText string) {
	low := strings.ToLower(fullText)

	rec.Transport = pick(transportRx.MatchString(low), TransportPresent, TransportAbsent)
	rec.RestrictedZone = pick(restrictedZoneRx.MatchString(low), RestrictedZonePresent, RestrictedZoneAbsent)
	rec.BikeLane = pick(bikeLaneRx.MatchString(low), BikeLanePresent, BikeLaneAbsent)
	rec.Metro = pick(metroRx.MatchString(low), MetroPresent, MetroAbsent)
	rec.MobilityAgency = pick(mobilityAgencyRx.MatchString(low), MobilityAgencyPresent, MobilityAgencyAbsent)
	rec.Taxi = pick(taxiRx.MatchString(low), TaxiPresent, TaxiAbsent)
	rec.TeamDelegation = teamDelegation(fullText)
}

// teamDelegation resolves the DEMANDA flag from the DEMANDA section of the
// document. Sign placement delegated to the Strade or Traffic department
// yields the present sentinel. The secondary contractor-delegation check
// resolves to the absent sentinel on both outcomes; the branch is preserved
// as observed.
func teamDelegation(fullText string) string {
	m := demandaSectionRx.FindStringSubmatch(fullText)
	if m == nil {
		return TeamDelegationAbsent
	}
	section := m[1]

	if demandaDepartmentRx.MatchString(section) {
		return TeamDelegationPresent
	}
	if demandaContractorRx.MatchString(section) {
		return TeamDelegationAbsent
	}
	return TeamDelegationAbsent
}

// agreeOrSingle reports whether exactly one of the two values is present, or
// both are present and equal. Two absent values do not agree.
func agreeOrSingle(a, b string) bool {
	switch {
	case a != "" && b != "":
		return a == b
	case a != "":
		return true
	case b != "":
		return true
	}
	return false
}

func pick(present bool, yes, no string) string {
	if present {
		return yes
	}
	return no
}
