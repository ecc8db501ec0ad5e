package ordinance

import "testing"

// sampleOrdinance mimics the Settore Strade template: letterhead, OGGETTO
// section, preamble, ORDINA and DEMANDA sections. Line breaks inside the
// subject reproduce how the PDF text layer splits it.
const sampleOrdinance = `COMUNE DI BRESCIA
Settore Strade

OGGETTO: Codice Geo Works: GW-2025-118 lavori di scavo in via Trieste 42,
divieto di transito dalle ore 0 8.00 del 12/05/2025, durata presunta di 3 gg .

IL RESPONSABILE DEL SETTORE STRADE

Vista la richiesta P.G. n. 48122/2025 presentata della ditta rossi scavi s.r.l., con sede in città;

ORDINA

l'istituzione del divieto di transito in via Trieste 42, dal 12/05/2025
per la durata presunta di 3 gg.

DEMANDA

al Settore Strade il posizionamento della segnaletica di cantiere;

AVVERTE

che contro il presente provvedimento è ammesso ricorso.
`

func TestExtractSampleOrdinance(t *testing.T) {
	rec := Extract("ORD_02569.pdf", sampleOrdinance)

	want := Record{
		ElixID:         "2569",
		Subject:        "Codice Geo Works: GW-2025-118 lavori di scavo in via Trieste 42, divieto di transito dalle ore 08.00 del 12/05/2025, durata presunta di 3 gg.",
		Address:        "Via Trieste 42",
		StartDate:      "12/05/2025",
		DurationDays:   "3",
		GeoworksCode:   "GW-2025-118",
		ProtocolNumber: "48122",
		CompanyName:    "Rossi Scavi S.r.l.",

		Transport:      TransportAbsent,
		RestrictedZone: RestrictedZoneAbsent,
		TeamDelegation: TeamDelegationPresent,
		BikeLane:       BikeLaneAbsent,
		Metro:          MetroAbsent,
		MobilityAgency: MobilityAgencyAbsent,
		Taxi:           TaxiAbsent,

		AddressVerdict:  AddressOK,
		StartVerdict:    StartDateOK,
		DurationVerdict: DurationOK,
	}

	if rec != want {
		t.Errorf("Extract() mismatch:\n got: %+v\nwant: %+v", rec, want)
	}
}

func TestExtractAddressMismatch(t *testing.T) {
	// The letterhead street is the first span the body rule sees, so it
	// disagrees with the subject's street.
	fullText := `Comune di Brescia, via Milano 5

OGGETTO: chiusura al traffico di via Roma, per lavori di asfaltatura
dal 03/06/2025, durata presunta di 3 giorni

IL RESPONSABILE DEL SETTORE STRADE

ORDINA

la chiusura di via Roma dal 03/06/2025 per la durata presunta di 3 giorni.
`
	rec := Extract("ORD_100.pdf", fullText)

	if rec.Address != "Via Roma" {
		t.Errorf("Address = %q, want %q (subject span wins)", rec.Address, "Via Roma")
	}
	if rec.AddressVerdict != AddressMismatch {
		t.Errorf("AddressVerdict = %q, want %q", rec.AddressVerdict, AddressMismatch)
	}
	if rec.StartVerdict != StartDateOK {
		t.Errorf("StartVerdict = %q, want %q", rec.StartVerdict, StartDateOK)
	}
}

func TestExtractDurationMismatch(t *testing.T) {
	fullText := `OGGETTO: lavori in via Dante, durata presunta di 3 gg.

IL RESPONSABILE DEL SETTORE STRADE

ORDINA

la chiusura di via Dante per la durata presunta di 5 giorni.
`
	rec := Extract("ORD_101.pdf", fullText)

	if rec.DurationDays != "3" {
		t.Errorf("DurationDays = %q, want %q (subject value wins)", rec.DurationDays, "3")
	}
	if rec.DurationVerdict != DurationMismatch {
		t.Errorf("DurationVerdict = %q, want %q", rec.DurationVerdict, DurationMismatch)
	}
}

func TestExtractDurationFromHours(t *testing.T) {
	fullText := `OGGETTO: divieto di sosta in via Zanardelli, dalle ore 08.00 alle ore 18.00 del 10/07/2025

IL RESPONSABILE DEL SETTORE STRADE

ORDINA

il divieto di sosta in via Zanardelli.
`
	rec := Extract("ORD_102.pdf", fullText)

	if rec.DurationDays != "1" {
		t.Errorf("DurationDays = %q, want %q (hour-scoped ordinance)", rec.DurationDays, "1")
	}
	if rec.DurationVerdict != DurationOK {
		t.Errorf("DurationVerdict = %q, want %q", rec.DurationVerdict, DurationOK)
	}
}

func TestExtractDurationAbsent(t *testing.T) {
	fullText := `OGGETTO: divieto di sosta in via Zanardelli

IL RESPONSABILE DEL SETTORE STRADE

ORDINA

il divieto di sosta in via Zanardelli.
`
	rec := Extract("ORD_103.pdf", fullText)

	if rec.DurationDays != "" {
		t.Errorf("DurationDays = %q, want empty", rec.DurationDays)
	}
	if rec.DurationVerdict != DurationOK {
		t.Errorf("DurationVerdict = %q, want %q", rec.DurationVerdict, DurationOK)
	}
}

func TestExtractRevocation(t *testing.T) {
	fullText := `OGGETTO: Revoca dell'ordinanza P.G. n. 11223/2025

IL RESPONSABILE DEL SETTORE STRADE

Data la necessità di revocare l’ordinanza P.G. n. 11223 del 10/01/2025 per lavori di scavo in via Dante;

ORDINA

la revoca dell'ordinanza.
`
	rec := Extract("ORD_104.pdf", fullText)

	if rec.Revocation != "lavori di scavo in via Dante" {
		t.Errorf("Revocation = %q, want %q", rec.Revocation, "lavori di scavo in via Dante")
	}
	if rec.ProtocolNumber != "11223" {
		t.Errorf("ProtocolNumber = %q, want %q", rec.ProtocolNumber, "11223")
	}
}

func TestExtractRevocationGated(t *testing.T) {
	// The governing phrase alone is not enough: the subject must open with
	// "Revoca".
	fullText := `OGGETTO: lavori in via Dante

IL RESPONSABILE DEL SETTORE STRADE

Data la necessità di revocare l’ordinanza P.G. n. 11223 del 10/01/2025 per lavori di scavo in via Dante;
`
	rec := Extract("ORD_105.pdf", fullText)

	if rec.Revocation != "" {
		t.Errorf("Revocation = %q, want empty for a non-revocation subject", rec.Revocation)
	}
}

func TestExtractFlagsPresent(t *testing.T) {
	fullText := `OGGETTO: lavori in via San Faustino

IL RESPONSABILE DEL SETTORE STRADE

Considerata l'interferenza con il trasporto pubblico urbano, con la ZTL del
centro storico, con la pista ciclabile, con la metropolitana, con i servizi
di BRESCIA MOBILITA' e con gli stalli taxi;

DEMANDA

all’impresa esecutrice il posizionamento della segnaletica;

AVVERTE

che contro il presente provvedimento è ammesso ricorso.
`
	rec := Extract("ORD_106.pdf", fullText)

	checks := []struct {
		field string
		got   string
		want  string
	}{
		{"Transport", rec.Transport, TransportPresent},
		{"RestrictedZone", rec.RestrictedZone, RestrictedZonePresent},
		{"BikeLane", rec.BikeLane, BikeLanePresent},
		{"Metro", rec.Metro, MetroPresent},
		{"MobilityAgency", rec.MobilityAgency, MobilityAgencyPresent},
		{"Taxi", rec.Taxi, TaxiPresent},
		// Contractor delegation, not department delegation.
		{"TeamDelegation", rec.TeamDelegation, TeamDelegationAbsent},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.field, c.got, c.want)
		}
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	rec := Extract("noext", "")

	want := Record{
		ElixID:       "ELIX",
		GeoworksCode: GeoworksAbsent,

		Transport:      TransportAbsent,
		RestrictedZone: RestrictedZoneAbsent,
		TeamDelegation: TeamDelegationAbsent,
		BikeLane:       BikeLaneAbsent,
		Metro:          MetroAbsent,
		MobilityAgency: MobilityAgencyAbsent,
		Taxi:           TaxiAbsent,

		// Nothing on either side is a mismatch for address and start date,
		// never a silent pass.
		AddressVerdict:  AddressMismatch,
		StartVerdict:    StartDateMismatch,
		DurationVerdict: DurationOK,
	}

	if rec != want {
		t.Errorf("Extract() mismatch:\n got: %+v\nwant: %+v", rec, want)
	}
}

func TestExtractBodyOnlyFields(t *testing.T) {
	// No OGGETTO section at all: the subject-side rules find nothing, but a
	// single body-side value still passes the consistency checks.
	fullText := `ORDINA

la chiusura di via Gramsci 7, dal 20/09/2025 per la durata presunta di 2 gg.
`
	rec := Extract("ORD_107.pdf", fullText)

	if rec.Subject != "" {
		t.Errorf("Subject = %q, want empty", rec.Subject)
	}
	if rec.Address != "Via Gramsci 7" {
		t.Errorf("Address = %q, want %q", rec.Address, "Via Gramsci 7")
	}
	if rec.AddressVerdict != AddressOK {
		t.Errorf("AddressVerdict = %q, want %q", rec.AddressVerdict, AddressOK)
	}
	if rec.StartDate != "20/09/2025" {
		t.Errorf("StartDate = %q, want %q", rec.StartDate, "20/09/2025")
	}
	if rec.StartVerdict != StartDateOK {
		t.Errorf("StartVerdict = %q, want %q", rec.StartVerdict, StartDateOK)
	}
	// The subject declares no duration; the body declaration alone never
	// fills the field.
	if rec.DurationDays != "" {
		t.Errorf("DurationDays = %q, want empty", rec.DurationDays)
	}
}

func TestExtractTextualStartDate(t *testing.T) {
	fullText := `OGGETTO: lavori in via Mazzini dal 29 Dicembre 2025

IL RESPONSABILE DEL SETTORE STRADE

ORDINA

la chiusura di via Mazzini dal 29/12/2025.
`
	rec := Extract("ORD_108.pdf", fullText)

	if rec.StartDate != "29/12/2025" {
		t.Errorf("StartDate = %q, want %q", rec.StartDate, "29/12/2025")
	}
	if rec.StartVerdict != StartDateOK {
		t.Errorf("StartVerdict = %q, want %q (textual and numeric forms canonicalize alike)",
			rec.StartVerdict, StartDateOK)
	}
}

func TestExtractProtocolVariants(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "period marker",
			in:   "Vista la richiesta P.G. n. 48122/2025",
			want: "48122",
		},
		{
			name: "degree sign marker",
			in:   "Vista la richiesta P.G. n° 77001 del",
			want: "77001",
		},
		{
			name: "compact form",
			in:   "richiesta PG n 500",
			want: "500",
		},
		{
			name: "absent",
			in:   "nessun protocollo citato",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Extract("ORD_1.pdf", tt.in)
			if rec.ProtocolNumber != tt.want {
				t.Errorf("ProtocolNumber = %q, want %q", rec.ProtocolNumber, tt.want)
			}
		})
	}
}

func TestExtractGeoworksSubjectOnly(t *testing.T) {
	// A code outside the OGGETTO section does not count.
	fullText := `OGGETTO: lavori in via Dante

IL RESPONSABILE DEL SETTORE STRADE

Codice Geo Works: GW-2025-999
`
	rec := Extract("ORD_109.pdf", fullText)

	if rec.GeoworksCode != GeoworksAbsent {
		t.Errorf("GeoworksCode = %q, want the single-space sentinel", rec.GeoworksCode)
	}
}

func TestTeamDelegationMissingSection(t *testing.T) {
	rec := Extract("ORD_110.pdf", "OGGETTO: lavori in via Dante\nIL RESPONSABILE DEL SETTORE STRADE\nORDINA la chiusura.")

	if rec.TeamDelegation != TeamDelegationAbsent {
		t.Errorf("TeamDelegation = %q, want %q", rec.TeamDelegation, TeamDelegationAbsent)
	}
}
