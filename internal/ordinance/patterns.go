package ordinance

import "regexp"

// The extraction battery. Every rule is tuned to the Comune ordinance
// template; all are case-insensitive and the section rules span newlines.
var (
	// subjectRx captures the OGGETTO section up to the responsible-office
	// header.
	subjectRx = regexp.MustCompile(`(?is)OGGETTO:\s*(.+?)IL RESPONSABILE DEL SETTORE STRADE`)

	// revocationGateRx recognizes revocation ordinances by their subject
	// opening.
	revocationGateRx = regexp.MustCompile(`(?i)OGGETTO:\s*Revoca`)

	// revocationRx captures what the revoked ordinance was regulating: the
	// "per ..." span of the governing phrase, closed by a semicolon, with no
	// period, semicolon or newline allowed before the "per".
	revocationRx = regexp.MustCompile(`(?i)Data la necessità di revocare l[’']ordinanza P\.G\. n\.[^.;\n]*?per\s+([^;]+);`)

	// geoworksRx matches the works-tracking code label, tolerant of internal
	// spacing, inside the subject only.
	geoworksRx = regexp.MustCompile(`(?i)(?:Codice\s*Geo\s*Works|Geo\s*Works|Geoworks)\s*:\s*([A-Za-z0-9\-_.]+)`)

	// addressSubjectRx finds the first street span in the subject, stopping
	// at a dash or comma.
	addressSubjectRx = regexp.MustCompile(`(?i)\b(via\s[^,\-–—]+)`)

	// addressBodyRx finds the first street span anywhere in the body, over a
	// broader character class that keeps accented letters and house-number
	// punctuation.
	addressBodyRx = regexp.MustCompile(`(?i)\b(via\s+[A-Za-zÀ-ÖØ-öø-ÿ0-9./\- ]+)`)

	// durationRx reads the declared works duration in days.
	durationRx = regexp.MustCompile(`(?i)durata\s+presunta\s+di\s+(\d+)\s*(?:gg\.?|giorni)`)

	// hoursRx detects hour-scoped ordinances, which count as one day.
	hoursRx = regexp.MustCompile(`(?i)\bore\b`)

	// protocolRx matches the P.G. filing number; the marker after "n" may be
	// a degree sign, an ordinal sign, a letter o or a period, and a trailing
	// "/year" is left out of the capture.
	protocolRx = regexp.MustCompile(`(?i)P\.?\s*G\.?\s*n[°ºo.\s]*([0-9]+)`)

	// companyRx captures the applicant company name after "ditta", delimited
	// by comma, semicolon or newline.
	companyRx = regexp.MustCompile(`(?i)(?:della\s+)?ditta\s+([^,;\n]+)[,;\n]`)

	// Flag patterns, matched against the full lowercased text.
	transportRx      = regexp.MustCompile(`trasporto pubblico urbano|linee bus|trasporto pubblico`)
	restrictedZoneRx = regexp.MustCompile(`\bztl\b|portali`)
	bikeLaneRx       = regexp.MustCompile(`pista ciclabile`)
	metroRx          = regexp.MustCompile(`\bmetro\b|metropolitana`)
	mobilityAgencyRx = regexp.MustCompile(`brescia mobilita`)
	taxiRx           = regexp.MustCompile(`\btaxi\b`)

	// demandaSectionRx isolates the DEMANDA section, closed by the next
	// dispositive header or the end of the document.
	demandaSectionRx = regexp.MustCompile(`(?is)\bDEMANDA\b(.*?)(?:\bAVVERTE\b|Per il Responsabile|IL RESPONSABILE|\z)`)

	// demandaDepartmentRx recognizes sign placement delegated to the Strade
	// or Traffic department.
	demandaDepartmentRx = regexp.MustCompile(`(?is)(?:Settore Strade|Servizio Gestione Traffico).*(?:posizionamento|segnaletica)`)

	// demandaContractorRx recognizes delegation to the works contractor.
	demandaContractorRx = regexp.MustCompile(`(?i)all[’']impresa`)
)
