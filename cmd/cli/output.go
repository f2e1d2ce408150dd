package main

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/akeren/daredash-waitlist/domain/waitlist"
	"github.com/akeren/daredash-waitlist/pkg/migrations"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var csvHeader = []string{"first_name", "last_name", "email", "referral_source", "created_at"}

func writeEntriesCSV(w io.Writer, entries []waitlist.WaitlistEntryResponse) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, e := range entries {
		if err := cw.Write([]string{e.FirstName, e.LastName, e.Email, e.ReferralSource, e.CreatedAt}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// writeReferralStats prints one line per source with thousands separators,
// followed by the total.
func writeReferralStats(w io.Writer, counts []waitlist.ReferralCount) error {
	p := message.NewPrinter(language.English)
	title := cases.Title(language.English)

	var total int64
	for _, c := range counts {
		label := c.ReferralSource
		if label == "" {
			label = "(none)"
		}
		if _, err := fmt.Fprintf(w, "%-20s %8s\n", title.String(label), p.Sprintf("%d", c.Count)); err != nil {
			return err
		}
		total += c.Count
	}

	_, err := fmt.Fprintf(w, "%-20s %8s\n", "Total", p.Sprintf("%d", total))
	return err
}

func formatMigrationStatus(s migrations.Status) string {
	if !s.Applied {
		return "no migrations applied"
	}
	if s.Dirty {
		return fmt.Sprintf("version %d (dirty: a previous migration failed, fix and force the version)", s.Version)
	}
	return fmt.Sprintf("version %d", s.Version)
}
