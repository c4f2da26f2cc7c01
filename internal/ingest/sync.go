// Package ingest runs the batch that moves PEP metadata from the
// upstream index and the local mirror into the database.
package ingest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/peps/internal/mirror"
	"github.com/emrgen/peps/internal/model"
	"github.com/emrgen/peps/internal/parse"
	"github.com/emrgen/peps/internal/store"
	"github.com/emrgen/peps/internal/upstream"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// createdLayout matches the Created field of the upstream index,
// e.g. "13-Jun-2000".
const createdLayout = "02-Jan-2006"

// Syncer runs one ingestion batch: fetch the index, read each mirrored
// document, cross-check its header, and reconcile the stored rows.
// Re-running against unchanged inputs converges to the same rows.
type Syncer struct {
	client *upstream.Client
	mirror *mirror.Dir
	store  store.Store
}

func NewSyncer(client *upstream.Client, mirror *mirror.Dir, store store.Store) *Syncer {
	return &Syncer{
		client: client,
		mirror: mirror,
		store:  store,
	}
}

// Failure records one document the batch could not ingest.
type Failure struct {
	Name   string
	Reason string
}

// Report summarizes one ingestion run.
type Report struct {
	RunID     uuid.UUID
	Started   time.Time
	Elapsed   time.Duration
	Succeeded int
	Failed    int
	Total     int
	Failures  []Failure
}

// Run executes one batch. Only a failure to fetch the index aborts the
// run; a document that cannot be read, parsed, or cross-checked is
// recorded as a failure and the batch moves on to the next entry.
func (s *Syncer) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:   uuid.New(),
		Started: time.Now(),
	}

	idx, err := s.client.FetchIndex(ctx)
	if err != nil {
		return nil, err
	}

	logrus.Infof("sync %s: index has %d entries", report.RunID, idx.Len())

	for _, entry := range idx.Entries() {
		name := upstream.DocumentName(entry.Proposal.URL)
		if name == upstream.IndexDocument {
			continue
		}

		report.Total++
		if err := s.ingestOne(ctx, entry.Proposal, name); err != nil {
			logrus.Warnf("sync %s: %s: %v", report.RunID, name, err)
			report.Failed++
			report.Failures = append(report.Failures, Failure{Name: name, Reason: err.Error()})
			continue
		}
		report.Succeeded++
	}

	report.Elapsed = time.Since(report.Started)
	logrus.Infof("sync %s: succeeded=%d failed=%d total=%d in %s",
		report.RunID, report.Succeeded, report.Failed, report.Total, report.Elapsed)

	return report, nil
}

// Verify checks the mirror against the current index without writing
// anything: every resolved document name must be readable locally.
func (s *Syncer) Verify(ctx context.Context) (mirror.Report, error) {
	idx, err := s.client.FetchIndex(ctx)
	if err != nil {
		return mirror.Report{}, err
	}

	return s.mirror.Verify(idx.DocumentNames()), nil
}

func (s *Syncer) ingestOne(ctx context.Context, p upstream.Proposal, name string) error {
	if p.Number <= 0 {
		return fmt.Errorf("index entry has number %d", p.Number)
	}

	text, err := s.mirror.Read(name)
	if err != nil {
		return err
	}

	header, _ := parse.SplitDocument(text)
	declared, err := parse.DeclaredNumber(header)
	if err != nil {
		return err
	}
	if declared != strconv.Itoa(p.Number) {
		return fmt.Errorf("header declares PEP %s, index says %d", declared, p.Number)
	}

	return s.reconcile(ctx, p)
}

// reconcile applies one proposal inside a single transaction: scalar
// upsert keyed by number, author resolution by exact name, association
// replace, then a prune of authors the replace orphaned. A failure rolls
// the whole proposal back, so no partial author set is ever visible.
func (s *Syncer) reconcile(ctx context.Context, p upstream.Proposal) error {
	pep := pepFromProposal(p)
	names := SplitAuthors(p.Authors)

	return s.store.Transaction(ctx, func(tx store.Store) error {
		before, err := tx.ListAuthors(ctx, pep.Number)
		if err != nil {
			return err
		}

		if err := tx.UpsertPEP(ctx, pep); err != nil {
			return err
		}

		authors := make([]*model.Author, 0, len(names))
		kept := mapset.NewSet[uint]()
		for _, name := range names {
			author, err := tx.EnsureAuthor(ctx, name)
			if err != nil {
				return err
			}
			authors = append(authors, author)
			kept.Add(author.ID)
		}

		if err := tx.ReplaceAuthors(ctx, pep, authors); err != nil {
			return err
		}

		// Only authors this replace dropped can have become orphans.
		var removed []uint
		for _, author := range before {
			if !kept.Contains(author.ID) {
				removed = append(removed, author.ID)
			}
		}
		if len(removed) == 0 {
			return nil
		}

		return tx.PruneAuthors(ctx, removed)
	})
}

func pepFromProposal(p upstream.Proposal) *model.PEP {
	pep := &model.PEP{
		Number:        p.Number,
		Title:         p.Title,
		Status:        p.Status,
		Type:          p.Type,
		Topic:         p.Topic,
		DiscussionsTo: p.DiscussionsTo,
		PythonVersion: p.PythonVersion,
		PostHistory:   p.PostHistory,
		Resolution:    p.Resolution,
		Requires:      p.Requires,
		Replaces:      p.Replaces,
		SupersededBy:  p.SupersededBy,
		URL:           p.URL,
	}

	if p.Created != nil && *p.Created != "" {
		created, err := time.Parse(createdLayout, *p.Created)
		if err != nil {
			logrus.Warnf("pep %d: unparseable created date %q", p.Number, *p.Created)
		} else {
			pep.Created = &created
		}
	}

	return pep
}

// SplitAuthors splits the index's comma-separated author field into
// names. Nothing beyond whitespace is normalized; matching against
// stored authors is exact and case-sensitive.
func SplitAuthors(authors string) []string {
	parts := strings.Split(authors, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}

	return names
}
