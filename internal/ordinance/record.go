// Package ordinance turns the raw text of a municipal traffic-ordinance PDF
// into a structured record and cross-checks the document's OGGETTO summary
// against its body.
package ordinance

// Sentinel pairs surfaced verbatim in the export. Each flag is a closed
// two-value enumeration, not a boolean: the absent marker differs per flag
// and operators read it as-is from the spreadsheet.
const (
	TransportPresent = "TRASPORTO_SI"
	TransportAbsent  = "no T"

	RestrictedZonePresent = "ZTL_SI"
	RestrictedZoneAbsent  = "no Z"

	// TeamDelegationAbsent is also the outcome of the contractor-delegation
	// check in the DEMANDA section: both its match and non-match resolve to
	// the same value. The dead branch is kept as observed rather than
	// collapsed; see DESIGN.md.
	TeamDelegationPresent = "SQ. MULTIDISC. SI"
	TeamDelegationAbsent  = "no D"

	BikeLanePresent = "PISTA CICLABILE SI"
	BikeLaneAbsent  = "no P"

	MetroPresent = "METRO SI"
	MetroAbsent  = "no M"

	MobilityAgencyPresent = "BRESCIA MOBILITA' SI"
	MobilityAgencyAbsent  = "no B"

	TaxiPresent = "TAXI SI"
	TaxiAbsent  = "no T"
)

// Consistency verdicts. The mismatch messages name the field and are emitted
// exactly as the operators expect them in the export.
const (
	AddressOK       = "OK Indirizzo"
	AddressMismatch = "INDIRIZZO NON COERENTE TRA OGGETTO E TESTO DELL’ORDINANZA"

	StartDateOK       = "OK Inizio"
	StartDateMismatch = "DATA INIZIO NON COERENTE TRA OGGETTO E TESTO DELL’ORDINANZA"

	DurationOK       = "OK Durata"
	DurationMismatch = "DURATA IN GIORNI NON COERENTE TRA OGGETTO E TESTO DELL’ORDINANZA"
)

// GeoworksAbsent is the sentinel for an ordinance whose subject cites no
// Geo Works code. A single space, not an empty string.
const GeoworksAbsent = " "

// Record holds every field extracted from one ordinance document. All fields
// are strings and always present; an empty string means "not found" or "not
// applicable" unless the field documents its own sentinel.
type Record struct {
	ElixID         string
	Subject        string
	Address        string
	StartDate      string
	DurationDays   string
	GeoworksCode   string
	ProtocolNumber string
	CompanyName    string

	Transport      string
	RestrictedZone string
	TeamDelegation string
	BikeLane       string
	Metro          string
	MobilityAgency string
	Taxi           string

	AddressVerdict  string
	StartVerdict    string
	DurationVerdict string

	Revocation string
}
