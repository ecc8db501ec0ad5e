// Package export renders extracted records into the spreadsheet the Settore
// Strade operators work with: one column per document, fields laid out
// vertically with a blank row between every field.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/settorestrade/ordinanze-xls/internal/ordinance"
)

// SheetName is the single sheet of the workbook.
const SheetName = "ordinanze"

// rowLabels is the fixed vertical layout. Order and wording are part of the
// downstream contract and must not change; every label is followed by one
// blank row in the sheet.
var rowLabels = []string{
	"n. Elix",
	"OGGETTO",
	"INDIRIZZO",
	"DATA INIZIO",
	"DURATA IN GIORNI",
	"GEOWORKS",
	"N. di protocollo della richiesta P.G.",
	"Nome della ditta",
	"TRASPORTO PUBBLICO URBANO",
	"ZTL",
	"DEMANDA",
	"PISTA CICLABILE",
	"METRO",
	"BRESCIA MOBILITA'",
	"TAXI",
	"Terzultimo",
	"Penultimo",
	"Ultimo",
	"Revoca (se presente)",
}

// RowLabels returns a copy of the fixed row label order.
func RowLabels() []string {
	out := make([]string, len(rowLabels))
	copy(out, rowLabels)
	return out
}

// NewWorkbook builds the workbook in memory: filenames across row 1, labels
// down column A, one blank row after every label.
func NewWorkbook(docs []ordinance.Document) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	// Header row: empty corner, then one column per document.
	for col, doc := range docs {
		cell, err := excelize.CoordinatesToCellName(col+2, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, doc.Filename); err != nil {
			return nil, fmt.Errorf("failed to write header cell: %w", err)
		}
	}

	for i, label := range rowLabels {
		row := 2 + i*2 // one blank row after every label

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("failed to address label cell: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, label); err != nil {
			return nil, fmt.Errorf("failed to write label cell: %w", err)
		}

		for col, doc := range docs {
			value := fieldForLabel(doc.Record, label)
			cell, err := excelize.CoordinatesToCellName(col+2, row)
			if err != nil {
				return nil, fmt.Errorf("failed to address value cell: %w", err)
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write value cell: %w", err)
			}
		}
	}

	return f, nil
}

// WriteWorkbook streams the workbook to w.
func WriteWorkbook(w io.Writer, docs []ordinance.Document) error {
	f, err := NewWorkbook(docs)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveWorkbook writes the workbook to path.
func SaveWorkbook(path string, docs []ordinance.Document) error {
	f, err := NewWorkbook(docs)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// fieldForLabel maps a row label to its record field.
func fieldForLabel(rec ordinance.Record, label string) string {
	switch label {
	case "n. Elix":
		return rec.ElixID
	case "OGGETTO":
		return rec.Subject
	case "INDIRIZZO":
		return rec.Address
	case "DATA INIZIO":
		return rec.StartDate
	case "DURATA IN GIORNI":
		return rec.DurationDays
	case "GEOWORKS":
		return rec.GeoworksCode
	case "N. di protocollo della richiesta P.G.":
		return rec.ProtocolNumber
	case "Nome della ditta":
		return rec.CompanyName
	case "TRASPORTO PUBBLICO URBANO":
		return rec.Transport
	case "ZTL":
		return rec.RestrictedZone
	case "DEMANDA":
		return rec.TeamDelegation
	case "PISTA CICLABILE":
		return rec.BikeLane
	case "METRO":
		return rec.Metro
	case "BRESCIA MOBILITA'":
		return rec.MobilityAgency
	case "TAXI":
		return rec.Taxi
	case "Terzultimo":
		return rec.AddressVerdict
	case "Penultimo":
		return rec.StartVerdict
	case "Ultimo":
		return rec.DurationVerdict
	case "Revoca (se presente)":
		return rec.Revocation
	}
	return ""
}
